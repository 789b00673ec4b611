package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reading(temp, humidity, wind float64, label string) CanonicalReading {
	return CanonicalReading{
		Temperature:    temp,
		FeelsLike:      temp,
		Humidity:       humidity,
		WindSpeed:      wind,
		Visibility:     DefaultVisibility,
		ConditionLabel: label,
	}
}

func TestBackgroundTheme(t *testing.T) {
	tests := []struct {
		name string
		r    CanonicalReading
		want Theme
	}{
		{"humid beats label", reading(25, 80, 5, "Snow"), ThemeHumid},
		{"humid beats rain", reading(21, 71, 5, "Rain"), ThemeHumid},
		{"humidity boundary not humid", reading(25, 70, 5, "Clouds"), ThemeClouds},
		{"temperature boundary not humid", reading(20, 90, 5, "Clouds"), ThemeClouds},
		{"cold", reading(10, 50, 5, "Clear"), ThemeCold},
		{"cold ignores label", reading(-3, 50, 5, "Thunderstorm"), ThemeCold},
		{"cold yields to snow", reading(-3, 50, 5, "Snow"), ThemeSnow},
		{"cold yields to light snow", reading(0, 50, 5, "light SNOW"), ThemeClear},
		{"table clouds", reading(18, 40, 5, "Clouds"), ThemeClouds},
		{"table case-insensitive", reading(18, 40, 5, "THUNDERSTORM"), ThemeThunderstorm},
		{"table haze", reading(18, 40, 5, "Haze"), ThemeHaze},
		{"table tornado", reading(18, 40, 5, "Tornado"), ThemeTornado},
		{"unknown label", reading(18, 40, 5, "very_hot"), ThemeClear},
		{"empty label", reading(18, 40, 5, ""), ThemeClear},
		{"label cannot select humid", reading(18, 40, 5, "humid"), ThemeClear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BackgroundTheme(tt.r))
		})
	}
}

func TestBackgroundTheme_HumidAlwaysWins(t *testing.T) {
	labels := []string{"Clear", "Clouds", "Rain", "Snow", "Fog", "Tornado", "", "garbage"}
	for _, label := range labels {
		for _, temp := range []float64{20.1, 25, 40} {
			for _, hum := range []float64{70.1, 85, 100} {
				assert.Equal(t, ThemeHumid, BackgroundTheme(reading(temp, hum, 0, label)), "%s %.1f %.1f", label, temp, hum)
			}
		}
	}
}

func TestBackgroundTheme_ColdUnlessSnow(t *testing.T) {
	labels := []string{"Clear", "Clouds", "Rain", "Fog", "", "garbage"}
	for _, label := range labels {
		for _, temp := range []float64{-20, 0, 10} {
			assert.Equal(t, ThemeCold, BackgroundTheme(reading(temp, 90, 0, label)), "%s %.1f", label, temp)
		}
	}
}

func TestThemeStyle(t *testing.T) {
	assert.Equal(t, "sunny", ThemeClear.Description())
	assert.Equal(t, "stormy", ThemeSquall.Description())
	assert.Equal(t, "foggy", ThemeHaze.Description())
	assert.Equal(t, ThemeThunderstorm.Gradient(), ThemeTornado.Gradient())
	assert.Equal(t, ThemeClear.Gradient(), Theme("bogus").Gradient())
	for theme := range themeStyles {
		assert.Contains(t, theme.Gradient(), "linear-gradient(135deg")
	}
}

func TestBirdStateFor(t *testing.T) {
	tests := []struct {
		name string
		r    CanonicalReading
		want BirdState
	}{
		{"wind beats very hot", reading(40, 10, 70, "Clear"), BirdWindy},
		{"very hot", reading(36, 10, 10, "Rain"), BirdVeryHot},
		{"cold", reading(10, 90, 10, "Clouds"), BirdCold},
		{"uncomfortable low bound", reading(25, 61, 10, "Rain"), BirdUncomfortable},
		{"uncomfortable high bound", reading(35, 61, 10, "Clear"), BirdUncomfortable},
		{"not uncomfortable at 60%", reading(30, 60, 10, "Clear"), BirdSunny},
		{"rain", reading(20, 50, 10, "light rain"), BirdRainy},
		{"drizzle", reading(20, 50, 10, "Drizzle"), BirdRainy},
		{"storm", reading(20, 50, 10, "Thunderstorm"), BirdStormy},
		{"snow", reading(20, 50, 10, "Snow"), BirdSnowy},
		{"wind label", reading(20, 50, 10, "very_windy"), BirdWindy},
		{"breeze label", reading(20, 50, 10, "Breeze"), BirdWindy},
		{"humid clouds", reading(22, 75, 10, "Clouds"), BirdHumid},
		{"plain clouds", reading(20, 75, 10, "Clouds"), BirdCloudy},
		{"humid mist", reading(24, 72, 10, "Mist"), BirdHumid},
		{"plain fog", reading(15, 50, 10, "Fog"), BirdCloudy},
		{"humid label not humid", reading(15, 50, 10, "very_humid"), BirdCloudy},
		{"clear", reading(20, 50, 10, "Clear"), BirdSunny},
		{"sunny", reading(20, 50, 10, "Sunny"), BirdSunny},
		{"default", reading(20, 50, 10, "Dust"), BirdSunny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BirdStateFor(tt.r))
		})
	}
}

func TestBirdRules_Order(t *testing.T) {
	names := make([]string, 0, len(birdRules))
	for _, r := range birdRules {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{
		"strong wind", "very hot", "cold", "uncomfortable",
		"rain label", "storm label", "snow label", "wind label",
		"humid clouds", "clouds", "humid haze", "haze", "clear label",
	}, names)
}

func TestBirdAssets(t *testing.T) {
	assert.Equal(t, "bird-windy.gif", BirdStormy.Asset())
	assert.Equal(t, "bird-cold.gif", BirdSnowy.Asset())
	assert.Equal(t, "bird-summer-heat.gif", BirdCloudy.Asset())
	assert.Equal(t, "bird-summer-heat.gif", BirdSunny.Asset())
}

func TestAlertFor(t *testing.T) {
	tests := []struct {
		name string
		r    CanonicalReading
		want AlertCategory
	}{
		{"cold", reading(9.9, 50, 80, "Thunderstorm"), AlertCold},
		{"ten is not cold", reading(10, 50, 5, "Clear"), AlertHot},
		{"rain", reading(20, 50, 80, "Rain"), AlertRain},
		{"drizzle", reading(20, 50, 5, "drizzle"), AlertRain},
		{"storm", reading(20, 50, 80, "Thunderstorm"), AlertStorm},
		{"wind", reading(20, 50, 61, "Fog"), AlertWind},
		{"wind boundary", reading(20, 50, 60, "Clear"), AlertHot},
		{"fog", reading(20, 50, 5, "Fog"), AlertFog},
		{"mist", reading(20, 50, 5, "Mist"), AlertFog},
		{"default hot on mild clouds", reading(15, 50, 5, "Clouds"), AlertHot},
		{"default hot on unknown", reading(12, 50, 5, "???"), AlertHot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlertFor(tt.r)
			assert.False(t, got.IsAdvisory())
			assert.Equal(t, tt.want, got.Category)
		})
	}
}

func TestAlertFor_AdvisoryBypassesChain(t *testing.T) {
	r := reading(-5, 50, 90, "Thunderstorm")
	r.SourceMessage = "Frio intenso e ventos fortes."

	got := AlertFor(r)
	assert.True(t, got.IsAdvisory())
	assert.Equal(t, "Frio intenso e ventos fortes.", got.Advisory)
	assert.Empty(t, got.Category)
}

func TestAlertIcons(t *testing.T) {
	assert.Equal(t, "🧥", AlertCold.Icon())
	assert.Equal(t, "🌫️", AlertFog.Icon())
}

func TestClassify_Fixture(t *testing.T) {
	got := Classify(reading(38, 50, 10, "Clear"))
	assert.Equal(t, ClassificationResult{
		Theme: ThemeClear,
		Bird:  BirdVeryHot,
		Alert: Alert{Category: AlertHot},
	}, got)
}
