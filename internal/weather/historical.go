package weather

import (
	"math"
	"time"

	"github.com/i474232898/sabia-weather/internal/common"
)

// historicalForecastDays is the length of a synthesized past forecast.
const historicalForecastDays = 5

// SynthesizeHistorical derives a reading for a past date from the current
// one by applying a deterministic sinusoidal perturbation keyed on the
// number of whole days between target and now. No archive is queried.
func SynthesizeHistorical(current CanonicalReading, target, now time.Time) CanonicalReading {
	daysDiff := math.Floor(now.Sub(target).Hours() / 24)

	tempVariation := math.Sin(daysDiff*0.1) * 5
	humidityVariation := math.Cos(daysDiff*0.2) * 10

	r := current
	r.Temperature = math.Round(current.Temperature + tempVariation)
	r.FeelsLike = math.Round(current.FeelsLike + tempVariation)
	r.Humidity = common.Clamp(math.Round(current.Humidity+humidityVariation), 0, 100)
	r.IsHistorical = true
	d := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, target.Location())
	r.HistoricalDate = &d
	r.ObservedAt = d
	return r
}

// SynthesizeHistoricalForecast produces five daily entries starting at
// target, alternating Clear and Clouds.
func SynthesizeHistoricalForecast(target time.Time) []ForecastEntry {
	start := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, target.Location())

	entries := make([]ForecastEntry, 0, historicalForecastDays)
	for i := 0; i < historicalForecastDays; i++ {
		base := 25 + math.Sin(float64(i)*0.5)*8
		label := "Clear"
		if i%2 != 0 {
			label = "Clouds"
		}
		entries = append(entries, ForecastEntry{
			Timestamp:      start.AddDate(0, 0, i),
			TempMax:        base + 3,
			TempMin:        base - 3,
			Humidity:       math.Round(60 + math.Cos(float64(i)*0.3)*20),
			ConditionLabel: label,
		})
	}
	return entries
}
