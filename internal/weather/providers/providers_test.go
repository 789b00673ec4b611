package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/i474232898/sabia-weather/internal/observability"
	"github.com/i474232898/sabia-weather/internal/weather"
)

func fastConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Client: &http.Client{Timeout: 2 * time.Second},
		Backoff: BackoffConfig{
			MaxRetries:      2,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
		},
	}
}

func TestOpenWeatherSource_Fetch(t *testing.T) {
	var weatherHits, forecastHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "en", q.Get("lang"))
		assert.Equal(t, "Uberlândia,BR", q.Get("q"))

		switch r.URL.Path {
		case "/weather":
			weatherHits.Add(1)
			_, _ = w.Write([]byte(`{"main":{"temp":25},"wind":{"speed":1},"weather":[{"main":"Clear"}]}`))
		case "/forecast":
			forecastHits.Add(1)
			_, _ = w.Write([]byte(`{"list":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	src := NewOpenWeatherSource(fastConfig(), "test-key", srv.URL+"/")
	assert.Equal(t, weather.KindDirectAPI, src.Kind())

	p, err := src.Fetch(context.Background(), weather.Location{City: "Uberlândia", Country: "BR"})
	require.NoError(t, err)

	direct, ok := p.(weather.DirectAPIPayload)
	require.True(t, ok)
	assert.Contains(t, string(direct.Current), `"temp":25`)
	assert.JSONEq(t, `{"list":[]}`, string(direct.Forecast))
	assert.Equal(t, int32(1), weatherHits.Load())
	assert.Equal(t, int32(1), forecastHits.Load())
}

func TestOpenWeatherSource_CoordinatesWhenNoCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	lat, lon := -18.913889, -48.2325
	_, err := NewOpenWeatherSource(fastConfig(), "k", srv.URL).Fetch(context.Background(), weather.Location{Lat: &lat, Lon: &lon})
	require.NoError(t, err)
}

func TestOpenWeatherSource_OneSideFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/forecast" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewOpenWeatherSource(fastConfig(), "bad", srv.URL).Fetch(context.Background(), weather.Location{City: "X"})
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrTransport)

	var te *weather.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusUnauthorized, te.StatusCode)
}

func TestOpenWeatherSource_MissingKey(t *testing.T) {
	_, err := NewOpenWeatherSource(fastConfig(), "", "").Fetch(context.Background(), weather.Location{City: "X"})
	assert.ErrorIs(t, err, weather.ErrTransport)
}

func TestPredictionBackendSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"name_city": "Recife"}, body)

		_, _ = w.Write([]byte(`[{"classification":"normal"}]`))
	}))
	defer srv.Close()

	src := NewPredictionBackendSource(fastConfig(), srv.URL)
	assert.Equal(t, weather.KindPredictionBackend, src.Kind())

	p, err := src.Fetch(context.Background(), weather.Location{City: "Recife"})
	require.NoError(t, err)
	assert.Equal(t, weather.BackendPayload{Body: []byte(`[{"classification":"normal"}]`)}, p)
}

func TestPredictionBackendSource_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p, err := NewPredictionBackendSource(fastConfig(), srv.URL).Fetch(context.Background(), weather.Location{City: "X"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, []byte(`[]`), p.(weather.BackendPayload).Body)
}

func TestPredictionBackendSource_GivesUp(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewPredictionBackendSource(fastConfig(), srv.URL).Fetch(context.Background(), weather.Location{City: "X"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, weather.ErrTransport))
	assert.True(t, errors.Is(err, errServerError))
	assert.Equal(t, int32(3), hits.Load(), "initial attempt plus two retries")
}

func TestPredictionBackendSource_ClientErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewPredictionBackendSource(fastConfig(), srv.URL).Fetch(context.Background(), weather.Location{City: "X"})
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestDoRequestWithResilience_RateLimiterHonoursContext(t *testing.T) {
	cfg := fastConfig()
	cfg.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)
	cfg.Limiter.Allow() // drain the only token

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := doRequestWithResilience(ctx, cfg, newBreaker("test"), func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, "http://127.0.0.1:1", nil)
	})
	require.Error(t, err)
}

func TestDoRequestWithResilience_InvalidConfig(t *testing.T) {
	_, err := doRequestWithResilience(context.Background(), HTTPClientConfig{}, newBreaker("x"), nil)
	assert.ErrorIs(t, err, errNoHTTPClient)

	cfg := fastConfig()
	cfg.Backoff.InitialInterval = 0
	_, err = doRequestWithResilience(context.Background(), cfg, newBreaker("x"), nil)
	assert.ErrorIs(t, err, errInvalidConfig)
}

// countingSource counts fetches and returns a fixed payload.
type countingSource struct {
	n   int
	err error
}

func (c *countingSource) Name() string              { return "counting" }
func (c *countingSource) Kind() weather.PayloadKind { return weather.KindPredictionBackend }
func (c *countingSource) Fetch(context.Context, weather.Location) (weather.RawPayload, error) {
	c.n++
	if c.err != nil {
		return nil, c.err
	}
	return weather.BackendPayload{Body: []byte(`[]`)}, nil
}

func TestCachedSource(t *testing.T) {
	clk := clockwork.NewFakeClock()
	inner := &countingSource{}
	m := observability.NewMetricsForTesting()
	c := NewCachedSource(inner, 10*time.Minute, clk, m)
	ctx := context.Background()
	loc := weather.Location{City: "Uberlândia", Country: "BR"}

	_, err := c.Fetch(ctx, loc)
	require.NoError(t, err)
	_, err = c.Fetch(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.n, "second fetch served from cache")

	_, _ = c.Fetch(ctx, weather.Location{City: "Recife"})
	assert.Equal(t, 2, inner.n, "different location misses")

	clk.Advance(10 * time.Minute)
	_, _ = c.Fetch(ctx, loc)
	assert.Equal(t, 3, inner.n, "expired entry refetched")

	c.Invalidate(loc)
	_, _ = c.Fetch(ctx, loc)
	assert.Equal(t, 4, inner.n, "invalidated entry refetched")

	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchCache.WithLabelValues("hit")), 0.001)
	assert.InDelta(t, 4, testutil.ToFloat64(m.FetchCache.WithLabelValues("miss")), 0.001)
}

func TestCachedSource_DoesNotCacheErrors(t *testing.T) {
	inner := &countingSource{err: &weather.TransportError{Op: "x", Err: errors.New("down")}}
	c := NewCachedSource(inner, time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

	_, err := c.Fetch(context.Background(), weather.Location{City: "X"})
	require.Error(t, err)
	_, err = c.Fetch(context.Background(), weather.Location{City: "X"})
	require.Error(t, err)
	assert.Equal(t, 2, inner.n)
}

func TestCachedSource_MalformedPayloadIsRefetched(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		city := body["name_city"]

		mu.Lock()
		hits[city]++
		n := hits[city]
		mu.Unlock()

		// Recife answers without a message the first time only.
		if city == "Recife" && n == 1 {
			_, _ = w.Write([]byte(`[{"classification":"normal","T2M_prediction":20,"WS2M_prediction":1,"RH2M_prediction":50}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"classification":"normal","message":"Tudo certo.","T2M_prediction":20,"WS2M_prediction":1,"RH2M_prediction":50}]`))
	}))
	defer srv.Close()

	m := observability.NewMetricsForTesting()
	cached := NewCachedSource(NewPredictionBackendSource(fastConfig(), srv.URL), 10*time.Minute, clockwork.NewFakeClock(), m)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := weather.NewService(cached, nil, m, logger, weather.ServiceConfig{DefaultCity: "Uberlândia"})
	ctx := context.Background()

	_, err := svc.Load(ctx, weather.LoadRequest{City: "Uberlândia"})
	require.NoError(t, err)

	_, err = svc.Load(ctx, weather.LoadRequest{City: "Recife"})
	require.ErrorIs(t, err, weather.ErrMalformedPayload)

	st, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Recife", st.Location.City)

	// The good answer is cached now.
	_, err = svc.Load(ctx, weather.LoadRequest{City: "Recife"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, hits["Recife"])
	assert.Equal(t, 1, hits["Uberlândia"])
}
