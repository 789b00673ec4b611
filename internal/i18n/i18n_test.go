package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/sabia-weather/internal/weather"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Language
		wantOK bool
	}{
		{"pt", Portuguese, true},
		{"EN", English, true},
		{" es ", Spanish, true},
		{"fr", English, false},
		{"", English, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestAlertMessage(t *testing.T) {
	t.Run("category per language", func(t *testing.T) {
		a := weather.Alert{Category: weather.AlertCold}
		assert.Equal(t, "It's cold today! Dress warmly and stay warm.", AlertMessage(a, English))
		assert.Equal(t, "Está frio hoje! Vista-se bem e mantenha-se aquecido.", AlertMessage(a, Portuguese))
		assert.Equal(t, "¡Hace frío hoy! Abrígate bien y mantente caliente.", AlertMessage(a, Spanish))
	})

	t.Run("advisory is verbatim in every language", func(t *testing.T) {
		a := weather.Alert{Advisory: "Beba água."}
		for _, lang := range Supported {
			assert.Equal(t, "Beba água.", AlertMessage(a, lang))
		}
	})

	t.Run("every category has text in every language", func(t *testing.T) {
		for cat := range alertKeys {
			for _, lang := range Supported {
				msg := AlertMessage(weather.Alert{Category: cat}, lang)
				assert.NotEqual(t, string(alertKeys[cat]), msg, "%s/%s", cat, lang)
			}
		}
	})
}

func TestT_FallsBackToPortuguese(t *testing.T) {
	assert.Equal(t, T(Portuguese, KeyWind), T(Language("de"), KeyWind))
	assert.Equal(t, "missingKey", T(English, Key("missingKey")))
}

func TestDates(t *testing.T) {
	// 2025-05-05 is a Monday.
	d := time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Segunda", DayName(Portuguese, d))
	assert.Equal(t, "Monday", DayName(English, d))
	assert.Equal(t, "Lunes", DayName(Spanish, d))

	assert.Equal(t, "5 Mai", ShortDate(Portuguese, d))
	assert.Equal(t, "5 May", ShortDate(English, d))

	assert.Equal(t, "Segunda-feira, 5 de Maio de 2025", LongDate(Portuguese, d))
	assert.Equal(t, "Monday, 5 de May de 2025", LongDate(English, d))
	assert.Equal(t, "Lunes, 5 de Mayo de 2025", LongDate(Spanish, d))
}

func TestConditionName(t *testing.T) {
	assert.Equal(t, "céu limpo", ConditionName("Clear", Portuguese))
	assert.Equal(t, "volcanic ash", ConditionName("Ash", English))
	assert.Equal(t, "niebla", ConditionName("Haze", Spanish))
	assert.Equal(t, "very_hot", ConditionName("very_hot", English))
}
