package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/sabia-weather/internal/weather"
)

// DefaultOpenWeatherBaseURL is the public OpenWeatherMap data API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherSource implements weather.Source for the OpenWeatherMap
// current and forecast endpoints.
type OpenWeatherSource struct {
	name    string
	apiKey  string
	baseURL string
	lang    string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherSource creates the direct API source. An empty baseURL
// selects DefaultOpenWeatherBaseURL.
func NewOpenWeatherSource(cfg HTTPClientConfig, apiKey, baseURL string) *OpenWeatherSource {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	if cfg.Backoff == (BackoffConfig{}) {
		cfg.Backoff = DefaultBackoff
	}

	return &OpenWeatherSource{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		lang:    "en",
		httpCfg: cfg,
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherSource) Name() string {
	return p.name
}

func (p *OpenWeatherSource) Kind() weather.PayloadKind {
	return weather.KindDirectAPI
}

// Fetch issues the current and forecast requests in parallel and joins them.
// Either failing fails the whole fetch.
func (p *OpenWeatherSource) Fetch(ctx context.Context, loc weather.Location) (weather.RawPayload, error) {
	if p.apiKey == "" {
		return nil, &weather.TransportError{Op: p.name, Err: fmt.Errorf("openweather api key is not configured")}
	}

	var payload weather.DirectAPIPayload

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := fetchBody(gctx, "GET /weather", p.httpCfg, p.circuit, p.requestFor("weather", loc))
		payload.Current = body
		return err
	})
	g.Go(func() error {
		body, err := fetchBody(gctx, "GET /forecast", p.httpCfg, p.circuit, p.requestFor("forecast", loc))
		payload.Forecast = body
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return payload, nil
}

func (p *OpenWeatherSource) requestFor(endpoint string, loc weather.Location) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lang", p.lang)

		if loc.City == "" && loc.Lat != nil && loc.Lon != nil {
			values.Set("lat", fmt.Sprintf("%f", *loc.Lat))
			values.Set("lon", fmt.Sprintf("%f", *loc.Lon))
		} else {
			values.Set("q", loc.Query())
		}

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}
}
