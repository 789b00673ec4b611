package weather

import (
	"time"
)

// Location represents a logical place for which we render the dashboard.
// City must be provided; coordinates are filled in by a locator when known.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location in caches.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Query returns the "city,country" form accepted by weather APIs.
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + "," + l.Country
}

// CanonicalReading is the normalized current-conditions record every
// payload shape is converted into. Wind is always km/h.
type CanonicalReading struct {
	Temperature    float64    `json:"temperatureC"`
	FeelsLike      float64    `json:"feelsLikeC"`
	Humidity       float64    `json:"humidityPercent"`
	WindSpeed      float64    `json:"windSpeedKmh"`
	Visibility     int        `json:"visibilityM"`
	ConditionLabel string     `json:"condition"`
	IsHistorical   bool       `json:"isHistorical"`
	HistoricalDate *time.Time `json:"historicalDate,omitempty"`
	SourceMessage  string     `json:"sourceMessage,omitempty"`
	CityName       string     `json:"cityName,omitempty"`
	ObservedAt     time.Time  `json:"observedAt"`
}

// ForecastEntry is one raw forecast point before aggregation. Timestamp is
// set for time-series sources; RawDate is set for sources that report
// calendar dates as strings.
type ForecastEntry struct {
	Timestamp      time.Time
	RawDate        string
	TempMax        float64
	TempMin        float64
	Humidity       float64
	ConditionLabel string
}

// ForecastDay is one aggregated day of the forecast strip.
type ForecastDay struct {
	Date           time.Time `json:"date"`
	TempMax        float64   `json:"tempMaxC"`
	TempMin        float64   `json:"tempMinC"`
	ConditionLabel string    `json:"condition"`
	Icon           Icon      `json:"icon"`
}

// DefaultVisibility is used when a payload carries no visibility.
const DefaultVisibility = 10000

// msToKmh converts wind speed from meters per second.
const msToKmh = 3.6
