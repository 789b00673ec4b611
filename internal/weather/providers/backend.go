package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/sabia-weather/internal/weather"
)

// PredictionBackendSource implements weather.Source for the custom
// prediction backend, which answers a POST {"name_city": ...} with a JSON
// array of daily predictions.
type PredictionBackendSource struct {
	name    string
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

type backendRequest struct {
	NameCity string `json:"name_city"`
}

// NewPredictionBackendSource creates the prediction backend source.
func NewPredictionBackendSource(cfg HTTPClientConfig, url string) *PredictionBackendSource {
	if cfg.Backoff == (BackoffConfig{}) {
		cfg.Backoff = DefaultBackoff
	}
	return &PredictionBackendSource{
		name:    "prediction-backend",
		url:     url,
		httpCfg: cfg,
		circuit: newBreaker("prediction-backend"),
	}
}

func (p *PredictionBackendSource) Name() string {
	return p.name
}

func (p *PredictionBackendSource) Kind() weather.PayloadKind {
	return weather.KindPredictionBackend
}

func (p *PredictionBackendSource) Fetch(ctx context.Context, loc weather.Location) (weather.RawPayload, error) {
	if p.url == "" {
		return nil, &weather.TransportError{Op: p.name, Err: fmt.Errorf("backend url is not configured")}
	}

	reqBody, err := json.Marshal(backendRequest{NameCity: loc.City})
	if err != nil {
		return nil, err
	}

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, p.url, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	body, err := fetchBody(ctx, "POST "+p.url, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	return weather.BackendPayload{Body: body}, nil
}
