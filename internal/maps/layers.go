// Package maps describes the dashboard map: overlay tile layers and the
// lookup from a city name to coordinates.
package maps

import (
	"fmt"
	"net/url"

	"github.com/i474232898/sabia-weather/internal/i18n"
)

// Layer is an OpenWeatherMap tile overlay.
type Layer string

const (
	LayerPrecipitation Layer = "precipitation_new"
	LayerClouds        Layer = "clouds_new"
	LayerTemperature   Layer = "temp_new"
)

// Layers lists the overlays in toolbar order.
var Layers = []Layer{LayerPrecipitation, LayerClouds, LayerTemperature}

const (
	// BaseTileURL is the OpenStreetMap base layer.
	BaseTileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	// BaseAttribution credits the base layer.
	BaseAttribution = "© OpenStreetMap contributors"

	overlayTileURL = "https://tile.openweathermap.org/map/%s/{z}/{x}/{y}.png?appid=%s"

	// DefaultZoom is the initial map zoom.
	DefaultZoom = 10
	// OverlayOpacity is applied to weather overlays.
	OverlayOpacity = 0.6
)

var layerLabels = map[Layer]i18n.Key{
	LayerPrecipitation: i18n.KeyPrecipitation,
	LayerClouds:        i18n.KeyClouds,
	LayerTemperature:   i18n.KeyTemperatureMap,
}

// ParseLayer validates a layer name.
func ParseLayer(s string) (Layer, bool) {
	l := Layer(s)
	_, ok := layerLabels[l]
	return l, ok
}

// TileURL returns the overlay template for l. The API key is query-escaped.
func (l Layer) TileURL(apiKey string) string {
	return fmt.Sprintf(overlayTileURL, l, url.QueryEscape(apiKey))
}

// Label returns the toolbar caption for l in lang.
func (l Layer) Label(lang i18n.Language) string {
	return i18n.T(lang, layerLabels[l])
}
