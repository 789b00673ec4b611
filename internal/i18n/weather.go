package i18n

import (
	"strings"

	"github.com/i474232898/sabia-weather/internal/weather"
)

var alertKeys = map[weather.AlertCategory]Key{
	weather.AlertHot:   KeyHotAlert,
	weather.AlertCold:  KeyColdAlert,
	weather.AlertRain:  KeyRainAlert,
	weather.AlertStorm: KeyStormAlert,
	weather.AlertWind:  KeyWindAlert,
	weather.AlertFog:   KeyFogAlert,
}

// AlertMessage renders an alert in lang. Backend advisories are returned
// verbatim regardless of language.
func AlertMessage(a weather.Alert, lang Language) string {
	if a.IsAdvisory() {
		return a.Advisory
	}
	key, ok := alertKeys[a.Category]
	if !ok {
		key = KeyHotAlert
	}
	return T(lang, key)
}

var conditionKeys = map[string]Key{
	"clear":            KeyClearSky,
	"clouds":           KeyCloudy,
	"rain":             KeyRain,
	"drizzle":          KeyDrizzle,
	"thunderstorm":     KeyThunderstorm,
	"snow":             KeySnow,
	"mist":             KeyMist,
	"fog":              KeyFog,
	"haze":             KeyFog,
	"smoke":            KeyFog,
	"dust":             KeyDust,
	"sand":             KeySand,
	"ash":              KeyVolcanicAsh,
	"squall":           KeySqualls,
	"tornado":          KeyTornado,
	"overcast clouds":  KeyOvercastClouds,
	"few clouds":       KeyFewClouds,
	"scattered clouds": KeyScatteredClouds,
}

// ConditionName translates a condition label. Labels without a translation
// are returned unchanged.
func ConditionName(label string, lang Language) string {
	key, ok := conditionKeys[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return label
	}
	return T(lang, key)
}
