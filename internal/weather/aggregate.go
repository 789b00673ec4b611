package weather

import (
	"sort"
	"strings"
	"time"
)

// MaxForecastDays bounds the forecast strip.
const MaxForecastDays = 6

// Icon is the emoji shown on a forecast card.
type Icon string

const (
	IconSunny        Icon = "☀️"
	IconCloudy       Icon = "☁️"
	IconPartlyCloudy Icon = "⛅"
	IconRain         Icon = "🌧️"
	IconDrizzle      Icon = "🌦️"
	IconStorm        Icon = "⛈️"
	IconSnow         Icon = "❄️"
	IconFog          Icon = "🌫️"
	IconHot          Icon = "🔥"
	IconWindy        Icon = "💨"
	IconPartlySunny  Icon = "🌤️"
)

// forecastIcons is keyed by discrete labels, both the direct API's condition
// names and the prediction backend's classification tokens.
var forecastIcons = map[string]Icon{
	"clear":              IconSunny,
	"sunny":              IconSunny,
	"clouds":             IconCloudy,
	"cloudy":             IconCloudy,
	"partly cloudy":      IconPartlyCloudy,
	"rain":               IconRain,
	"rainy":              IconRain,
	"drizzle":            IconDrizzle,
	"storm":              IconStorm,
	"stormy":             IconStorm,
	"thunderstorm":       IconStorm,
	"snow":               IconSnow,
	"snowy":              IconSnow,
	"fog":                IconFog,
	"mist":               IconFog,
	"haze":               IconFog,
	"very_hot":           IconHot,
	"very_cold":          IconSnow,
	"very_windy":         IconWindy,
	"very_wet":           IconRain,
	"very_uncomfortable": IconHot,
	"normal":             IconPartlySunny,
}

// ForecastIcon looks up the card icon for a label. Comma-joined backend
// classifications use their first token.
func ForecastIcon(label string) Icon {
	key := strings.ToLower(strings.TrimSpace(label))
	if i := strings.IndexByte(key, ','); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	if icon, ok := forecastIcons[key]; ok {
		return icon
	}
	return IconPartlySunny
}

// AggregateFlatSeries groups time-series entries by calendar date in loc,
// keeps the first entry seen for each date, and returns at most
// MaxForecastDays days in ascending date order. Values are never averaged.
func AggregateFlatSeries(entries []ForecastEntry, loc *time.Location) []ForecastDay {
	if loc == nil {
		loc = time.UTC
	}

	firstByDay := make(map[string]ForecastEntry)
	for _, e := range entries {
		k := e.Timestamp.In(loc).Format(time.DateOnly)
		if _, seen := firstByDay[k]; !seen {
			firstByDay[k] = e
		}
	}

	keys := make([]string, 0, len(firstByDay))
	for k := range firstByDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) > MaxForecastDays {
		keys = keys[:MaxForecastDays]
	}

	days := make([]ForecastDay, 0, len(keys))
	for _, k := range keys {
		e := firstByDay[k]
		ts := e.Timestamp.In(loc)
		days = append(days, newForecastDay(e, time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc)))
	}
	return days
}

// SelectBackendDays drops element 0, which the backend reserves for the
// current day, and returns up to MaxForecastDays of the following elements
// in their original order.
func SelectBackendDays[T any](entries []T) []T {
	if len(entries) <= 1 {
		return nil
	}
	rest := entries[1:]
	if len(rest) > MaxForecastDays {
		rest = rest[:MaxForecastDays]
	}
	return rest
}

var backendDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
}

// AggregateBackendList builds forecast days from the prediction backend list.
// A date that fails to parse is replaced by base plus the element's position
// in days and reported as an *InvalidDateError; the day is still emitted.
func AggregateBackendList(entries []ForecastEntry, base time.Time) ([]ForecastDay, []error) {
	selected := SelectBackendDays(entries)
	baseDay := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())

	var errs []error
	days := make([]ForecastDay, 0, len(selected))
	for i, e := range selected {
		date, ok := parseBackendDate(e.RawDate, base.Location())
		if !ok {
			date = baseDay.AddDate(0, 0, i+1)
			errs = append(errs, &InvalidDateError{Value: e.RawDate, Fallback: date})
		}
		days = append(days, newForecastDay(e, date))
	}
	return days, errs
}

func parseBackendDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range backendDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

func newForecastDay(e ForecastEntry, date time.Time) ForecastDay {
	return ForecastDay{
		Date:           date,
		TempMax:        e.TempMax,
		TempMin:        e.TempMin,
		ConditionLabel: e.ConditionLabel,
		Icon:           ForecastIcon(e.ConditionLabel),
	}
}
