package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	tests := []struct {
		name string
		s    string
		subs []string
		want bool
	}{
		{"exact", "rain", []string{"rain"}, true},
		{"mixed case input", "Light RAIN", []string{"rain"}, true},
		{"mixed case needle", "thunderstorm", []string{"Storm"}, true},
		{"second needle", "Drizzle", []string{"rain", "drizzle"}, true},
		{"no match", "Clear", []string{"rain", "snow"}, false},
		{"no needles", "Clear", nil, false},
		{"empty input", "", []string{"rain"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAny(tt.s, tt.subs...))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(130, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
}
