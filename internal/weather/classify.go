package weather

import (
	"strings"

	"github.com/i474232898/sabia-weather/internal/common"
)

// Theme is the dashboard background. Values are the lowercase condition keys
// of the background table plus the two metric-driven themes humid and cold.
type Theme string

const (
	ThemeClear        Theme = "clear"
	ThemeClouds       Theme = "clouds"
	ThemeRain         Theme = "rain"
	ThemeDrizzle      Theme = "drizzle"
	ThemeThunderstorm Theme = "thunderstorm"
	ThemeSnow         Theme = "snow"
	ThemeMist         Theme = "mist"
	ThemeFog          Theme = "fog"
	ThemeHaze         Theme = "haze"
	ThemeDust         Theme = "dust"
	ThemeSand         Theme = "sand"
	ThemeAsh          Theme = "ash"
	ThemeSquall       Theme = "squall"
	ThemeTornado      Theme = "tornado"
	ThemeHumid        Theme = "humid"
	ThemeCold         Theme = "cold"
)

type themeStyle struct {
	description string
	gradient    string
}

var (
	gradientStorm = "linear-gradient(135deg, #191970 0%, #2F4F4F 50%, #696969 100%)"
	gradientFog   = "linear-gradient(135deg, #F5F5F5 0%, #DCDCDC 50%, #C0C0C0 100%)"
)

var themeStyles = map[Theme]themeStyle{
	ThemeClear:        {"sunny", "linear-gradient(135deg, #FFE4B5 0%, #FFD700 30%, #FFA500 60%, #FF7F50 100%)"},
	ThemeClouds:       {"cloudy", "linear-gradient(135deg, #E6E6FA 0%, #B0C4DE 50%, #87CEEB 100%)"},
	ThemeRain:         {"rainy", "linear-gradient(135deg, #4682B4 0%, #5F9EA0 50%, #708090 100%)"},
	ThemeDrizzle:      {"rainy", "linear-gradient(135deg, #87CEEB 0%, #5F9EA0 50%, #A9A9A9 100%)"},
	ThemeThunderstorm: {"stormy", gradientStorm},
	ThemeSnow:         {"snowy", "linear-gradient(135deg, #E6F3FF 0%, #B0E0E6 30%, #87CEEB 70%, #4682B4 100%)"},
	ThemeMist:         {"foggy", gradientFog},
	ThemeFog:          {"foggy", gradientFog},
	ThemeHaze:         {"foggy", gradientFog},
	ThemeDust:         {"dusty", "linear-gradient(135deg, #DEB887 0%, #D2B48C 50%, #F4A460 100%)"},
	ThemeSand:         {"sandy", "linear-gradient(135deg, #F4A460 0%, #DEB887 50%, #D2B48C 100%)"},
	ThemeAsh:          {"ashy", "linear-gradient(135deg, #696969 0%, #A9A9A9 50%, #C0C0C0 100%)"},
	ThemeSquall:       {"stormy", gradientStorm},
	ThemeTornado:      {"stormy", gradientStorm},
	ThemeHumid:        {"humid", "linear-gradient(135deg, #FFD700 0%, #FFA500 25%, #FF7F50 50%, #FF4500 75%, #DC143C 100%)"},
	ThemeCold:         {"cold", "linear-gradient(135deg, #B0E0E6 0%, #87CEEB 25%, #4682B4 50%, #2F4F4F 75%, #191970 100%)"},
}

// Description returns the coarse theme family (sunny, cloudy, rainy, ...).
func (t Theme) Description() string {
	if s, ok := themeStyles[t]; ok {
		return s.description
	}
	return themeStyles[ThemeClear].description
}

// Gradient returns the CSS background for the theme.
func (t Theme) Gradient() string {
	if s, ok := themeStyles[t]; ok {
		return s.gradient
	}
	return themeStyles[ThemeClear].gradient
}

// BirdState selects the animated mascot.
type BirdState string

const (
	BirdSunny         BirdState = "sunny"
	BirdWindy         BirdState = "windy"
	BirdVeryHot       BirdState = "very-hot"
	BirdCold          BirdState = "cold"
	BirdUncomfortable BirdState = "uncomfortable"
	BirdRainy         BirdState = "rainy"
	BirdStormy        BirdState = "stormy"
	BirdSnowy         BirdState = "snowy"
	BirdHumid         BirdState = "humid"
	BirdCloudy        BirdState = "cloudy"
)

var birdAssets = map[BirdState]string{
	BirdWindy:         "bird-windy.gif",
	BirdStormy:        "bird-windy.gif",
	BirdVeryHot:       "bird-very-hot.gif",
	BirdCold:          "bird-cold.gif",
	BirdSnowy:         "bird-cold.gif",
	BirdUncomfortable: "bird-uncomfortable.gif",
	BirdRainy:         "bird-rain.gif",
	BirdHumid:         "bird-humid.gif",
}

// Asset returns the GIF file name for the state.
func (b BirdState) Asset() string {
	if a, ok := birdAssets[b]; ok {
		return a
	}
	return "bird-summer-heat.gif"
}

// AlertCategory is the kind of advice shown under the current conditions.
type AlertCategory string

const (
	AlertHot   AlertCategory = "hot"
	AlertCold  AlertCategory = "cold"
	AlertRain  AlertCategory = "rain"
	AlertStorm AlertCategory = "storm"
	AlertWind  AlertCategory = "wind"
	AlertFog   AlertCategory = "fog"
)

var alertIcons = map[AlertCategory]string{
	AlertHot:   "🌡️",
	AlertCold:  "🧥",
	AlertRain:  "🌧️",
	AlertStorm: "⛈️",
	AlertWind:  "💨",
	AlertFog:   "🌫️",
}

// Icon returns the emoji shown next to the alert text.
func (a AlertCategory) Icon() string {
	return alertIcons[a]
}

// Alert is either a backend advisory passed through verbatim or a category
// whose text is resolved per language at render time.
type Alert struct {
	Category AlertCategory `json:"category,omitempty"`
	Advisory string        `json:"advisory,omitempty"`
}

// IsAdvisory reports whether the alert carries backend-supplied text.
func (a Alert) IsAdvisory() bool {
	return a.Advisory != ""
}

// ClassificationResult bundles the three classifier outputs for one reading.
type ClassificationResult struct {
	Theme Theme     `json:"theme"`
	Bird  BirdState `json:"birdState"`
	Alert Alert     `json:"alert"`
}

// rule is one step of a priority chain. Chains are evaluated in order and
// the first matching rule decides the result.
type rule[T any] struct {
	name   string
	match  func(CanonicalReading) bool
	result T
}

func firstMatch[T any](rules []rule[T], r CanonicalReading, def T) T {
	for _, rl := range rules {
		if rl.match(r) {
			return rl.result
		}
	}
	return def
}

func labelHas(subs ...string) func(CanonicalReading) bool {
	return func(r CanonicalReading) bool {
		return common.HasAny(r.ConditionLabel, subs...)
	}
}

func isHumid(r CanonicalReading) bool {
	return r.Humidity > 70 && r.Temperature > 20
}

func both(a, b func(CanonicalReading) bool) func(CanonicalReading) bool {
	return func(r CanonicalReading) bool { return a(r) && b(r) }
}

var themeRules = []rule[Theme]{
	{"humid", isHumid, ThemeHumid},
	{"cold", func(r CanonicalReading) bool {
		return r.Temperature <= 10 && !common.HasAny(r.ConditionLabel, "snow")
	}, ThemeCold},
}

var birdRules = []rule[BirdState]{
	{"strong wind", func(r CanonicalReading) bool { return r.WindSpeed > 60 }, BirdWindy},
	{"very hot", func(r CanonicalReading) bool { return r.Temperature > 35 }, BirdVeryHot},
	{"cold", func(r CanonicalReading) bool { return r.Temperature <= 10 }, BirdCold},
	{"uncomfortable", func(r CanonicalReading) bool {
		return r.Temperature >= 25 && r.Temperature <= 35 && r.Humidity > 60
	}, BirdUncomfortable},
	{"rain label", labelHas("rain", "drizzle"), BirdRainy},
	{"storm label", labelHas("storm", "thunder"), BirdStormy},
	{"snow label", labelHas("snow"), BirdSnowy},
	{"wind label", labelHas("wind", "breeze"), BirdWindy},
	{"humid clouds", both(labelHas("cloud"), isHumid), BirdHumid},
	{"clouds", labelHas("cloud"), BirdCloudy},
	{"humid haze", both(labelHas("humid", "mist", "fog"), isHumid), BirdHumid},
	{"haze", labelHas("humid", "mist", "fog"), BirdCloudy},
	{"clear label", labelHas("clear", "sunny"), BirdSunny},
}

var alertRules = []rule[AlertCategory]{
	{"cold", func(r CanonicalReading) bool { return r.Temperature < 10 }, AlertCold},
	{"rain label", labelHas("rain", "drizzle"), AlertRain},
	{"storm label", labelHas("storm", "thunder"), AlertStorm},
	{"strong wind", func(r CanonicalReading) bool { return r.WindSpeed > 60 }, AlertWind},
	{"fog label", labelHas("fog", "mist"), AlertFog},
}

// BackgroundTheme picks the dashboard theme for a reading.
func BackgroundTheme(r CanonicalReading) Theme {
	if t := firstMatch(themeRules, r, ""); t != "" {
		return t
	}
	key := Theme(strings.ToLower(strings.TrimSpace(r.ConditionLabel)))
	if _, ok := themeStyles[key]; ok && key != ThemeHumid && key != ThemeCold {
		return key
	}
	return ThemeClear
}

// BirdStateFor picks the mascot state for a reading.
func BirdStateFor(r CanonicalReading) BirdState {
	return firstMatch(birdRules, r, BirdSunny)
}

// AlertFor picks the alert for a reading. A backend advisory always wins.
// Otherwise the chain falls back to AlertHot when nothing else matches, even
// for mild temperatures.
func AlertFor(r CanonicalReading) Alert {
	if r.SourceMessage != "" {
		return Alert{Advisory: r.SourceMessage}
	}
	return Alert{Category: firstMatch(alertRules, r, AlertHot)}
}

// Classify runs all three chains.
func Classify(r CanonicalReading) ClassificationResult {
	return ClassificationResult{
		Theme: BackgroundTheme(r),
		Bird:  BirdStateFor(r),
		Alert: AlertFor(r),
	}
}
