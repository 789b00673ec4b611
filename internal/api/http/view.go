package httpapi

import (
	"math"
	"time"

	"github.com/i474232898/sabia-weather/internal/i18n"
	"github.com/i474232898/sabia-weather/internal/maps"
	"github.com/i474232898/sabia-weather/internal/weather"
)

type dashboardView struct {
	Language   i18n.Language     `json:"language"`
	Location   locationView      `json:"location"`
	Current    currentView       `json:"current"`
	Theme      themeView         `json:"theme"`
	Bird       birdView          `json:"bird"`
	Alert      alertView         `json:"alert"`
	Historical *historicalView   `json:"historical,omitempty"`
	Forecast   []forecastCard    `json:"forecast"`
	Labels     map[string]string `json:"labels"`
	Source     string            `json:"source"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

type locationView struct {
	Name    string   `json:"name"`
	City    string   `json:"city"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

type currentView struct {
	Temperature  int    `json:"temperature"`
	FeelsLike    int    `json:"feelsLike"`
	Humidity     int    `json:"humidity"`
	WindSpeed    int    `json:"windSpeedKmh"`
	VisibilityKm int    `json:"visibilityKm"`
	Condition    string `json:"condition"`
	Label        string `json:"conditionLabel"`
}

type themeView struct {
	Key         weather.Theme `json:"key"`
	Description string        `json:"description"`
	Gradient    string        `json:"gradient"`
}

type birdView struct {
	State weather.BirdState `json:"state"`
	Asset string            `json:"asset"`
}

type alertView struct {
	Category weather.AlertCategory `json:"category,omitempty"`
	Icon     string                `json:"icon"`
	Message  string                `json:"message"`
	Advisory bool                  `json:"advisory"`
}

type historicalView struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

type forecastCard struct {
	Day       string       `json:"day"`
	Date      string       `json:"date"`
	Icon      weather.Icon `json:"icon"`
	High      int          `json:"high"`
	Low       int          `json:"low"`
	Condition string       `json:"condition"`
}

const advisoryIcon = "📢"

func renderDashboard(st weather.State, lang i18n.Language, defaultName string) dashboardView {
	r := st.Reading
	cls := st.Classification

	name := r.CityName
	if name == "" {
		name = st.Location.City
	}
	if name == "" {
		name = defaultName
	}

	alert := alertView{
		Category: cls.Alert.Category,
		Icon:     cls.Alert.Category.Icon(),
		Message:  i18n.AlertMessage(cls.Alert, lang),
		Advisory: cls.Alert.IsAdvisory(),
	}
	if alert.Advisory && alert.Icon == "" {
		alert.Icon = advisoryIcon
	}

	v := dashboardView{
		Language: lang,
		Location: locationView{
			Name:    name,
			City:    st.Location.City,
			Country: st.Location.Country,
			Lat:     st.Location.Lat,
			Lon:     st.Location.Lon,
		},
		Current: currentView{
			Temperature:  round(r.Temperature),
			FeelsLike:    round(r.FeelsLike),
			Humidity:     round(r.Humidity),
			WindSpeed:    round(r.WindSpeed),
			VisibilityKm: round(float64(r.Visibility) / 1000),
			Condition:    i18n.ConditionName(r.ConditionLabel, lang),
			Label:        r.ConditionLabel,
		},
		Theme: themeView{
			Key:         cls.Theme,
			Description: cls.Theme.Description(),
			Gradient:    cls.Theme.Gradient(),
		},
		Bird: birdView{
			State: cls.Bird,
			Asset: cls.Bird.Asset(),
		},
		Alert:     alert,
		Forecast:  make([]forecastCard, 0, len(st.Forecast)),
		Labels:    labels(lang),
		Source:    string(st.Source),
		UpdatedAt: st.UpdatedAt,
	}

	if r.IsHistorical && r.HistoricalDate != nil {
		v.Historical = &historicalView{
			Date:  r.HistoricalDate.Format(time.DateOnly),
			Label: i18n.Tf(lang, i18n.KeyHistoricalData, i18n.LongDate(lang, *r.HistoricalDate)),
		}
	}

	for _, d := range st.Forecast {
		v.Forecast = append(v.Forecast, forecastCard{
			Day:       i18n.DayName(lang, d.Date),
			Date:      i18n.ShortDate(lang, d.Date),
			Icon:      d.Icon,
			High:      round(d.TempMax),
			Low:       round(d.TempMin),
			Condition: i18n.ConditionName(d.ConditionLabel, lang),
		})
	}

	return v
}

var labelKeys = []i18n.Key{
	i18n.KeyTemperature,
	i18n.KeyFeelsLike,
	i18n.KeyHumidity,
	i18n.KeyWind,
	i18n.KeyVisibility,
	i18n.KeyForecast6Days,
	i18n.KeyChatTitle,
	i18n.KeyLoadingWeather,
}

func labels(lang i18n.Language) map[string]string {
	out := make(map[string]string, len(labelKeys))
	for _, k := range labelKeys {
		out[string(k)] = i18n.T(lang, k)
	}
	return out
}

type mapLayerView struct {
	Name    maps.Layer `json:"name"`
	Label   string     `json:"label"`
	TileURL string     `json:"tileUrl"`
	Active  bool       `json:"active"`
}

type mapView struct {
	Center          locationView   `json:"center"`
	Zoom            int            `json:"zoom"`
	BaseTileURL     string         `json:"baseTileUrl"`
	BaseAttribution string         `json:"baseAttribution"`
	OverlayOpacity  float64        `json:"overlayOpacity"`
	Layers          []mapLayerView `json:"layers"`
}

func renderMap(center weather.Location, active maps.Layer, lang i18n.Language, apiKey string) mapView {
	v := mapView{
		Center: locationView{
			Name:    center.City,
			City:    center.City,
			Country: center.Country,
			Lat:     center.Lat,
			Lon:     center.Lon,
		},
		Zoom:            maps.DefaultZoom,
		BaseTileURL:     maps.BaseTileURL,
		BaseAttribution: maps.BaseAttribution,
		OverlayOpacity:  maps.OverlayOpacity,
		Layers:          make([]mapLayerView, 0, len(maps.Layers)),
	}
	for _, l := range maps.Layers {
		v.Layers = append(v.Layers, mapLayerView{
			Name:    l,
			Label:   l.Label(lang),
			TileURL: l.TileURL(apiKey),
			Active:  l == active,
		})
	}
	return v
}

func round(v float64) int {
	return int(math.Round(v))
}
