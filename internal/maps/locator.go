package maps

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/sabia-weather/internal/weather"
)

// StaticLocator resolves every city to a location without coordinates,
// except the default city, which gets the configured coordinates.
type StaticLocator struct {
	Default weather.Location
}

func (s StaticLocator) Locate(_ context.Context, city string) (weather.Location, error) {
	if strings.EqualFold(strings.TrimSpace(city), s.Default.City) {
		return s.Default, nil
	}
	return weather.Location{City: city, Country: s.Default.Country}, nil
}

// geocodeFunc matches geocoder.Geocoding so tests can swap it.
type geocodeFunc func(geocoder.Address) (geocoder.Location, error)

// GoogleLocator resolves cities through the Google Geocoding API and caches
// results in memory. Lookup failures fall back to the static locator so a
// geocoding outage never blocks a dashboard load.
type GoogleLocator struct {
	fallback StaticLocator
	geocode  geocodeFunc
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string]weather.Location
}

// NewGoogleLocator configures the geocoder package with apiKey.
func NewGoogleLocator(apiKey string, def weather.Location, logger *slog.Logger) *GoogleLocator {
	geocoder.ApiKey = apiKey
	return &GoogleLocator{
		fallback: StaticLocator{Default: def},
		geocode:  geocoder.Geocoding,
		logger:   logger,
		cache:    make(map[string]weather.Location),
	}
}

func (g *GoogleLocator) Locate(ctx context.Context, city string) (weather.Location, error) {
	key := strings.ToLower(strings.TrimSpace(city))

	g.mu.RLock()
	loc, ok := g.cache[key]
	g.mu.RUnlock()
	if ok {
		return loc, nil
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	ch := make(chan result, 1)
	go func() {
		l, err := g.geocode(geocoder.Address{City: city, Country: g.fallback.Default.Country})
		ch <- result{l, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return weather.Location{}, ctx.Err()
	case res = <-ch:
	}

	if res.err != nil {
		g.logger.Warn("geocoding failed; using static location", "city", city, "error", res.err)
		return g.fallback.Locate(ctx, city)
	}

	lat, lon := res.loc.Latitude, res.loc.Longitude
	loc = weather.Location{City: city, Country: g.fallback.Default.Country, Lat: &lat, Lon: &lon}

	g.mu.Lock()
	g.cache[key] = loc
	g.mu.Unlock()

	g.logger.Debug("geocoded city", "city", city, "lat", lat, "lon", lon)
	return loc, nil
}
