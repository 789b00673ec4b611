package providers

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/sabia-weather/internal/observability"
	"github.com/i474232898/sabia-weather/internal/weather"
)

// CachedSource wraps a Source with a per-location TTL cache of raw payloads.
// Only successful fetches are cached.
type CachedSource struct {
	inner   weather.Source
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	payload   weather.RawPayload
	expiresAt time.Time
}

// NewCachedSource creates a cache decorator around a source. A nil clock
// uses real time.
func NewCachedSource(inner weather.Source, ttl time.Duration, clk clockwork.Clock, metrics *observability.Metrics) *CachedSource {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		clock:   clk,
		metrics: metrics,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSource) Name() string { return c.inner.Name() }

func (c *CachedSource) Kind() weather.PayloadKind { return c.inner.Kind() }

func (c *CachedSource) Fetch(ctx context.Context, loc weather.Location) (weather.RawPayload, error) {
	key := loc.Key()
	now := c.clock.Now()

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && now.Before(e.expiresAt) {
		c.mu.Unlock()
		c.metrics.FetchCache.WithLabelValues("hit").Inc()
		return e.payload, nil
	}
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	c.metrics.FetchCache.WithLabelValues("miss").Inc()

	start := c.clock.Now()
	payload, err := c.inner.Fetch(ctx, loc)
	c.metrics.FetchDuration.WithLabelValues(c.inner.Name()).Observe(c.clock.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.entries[key] = cacheEntry{payload: payload, expiresAt: c.clock.Now().Add(c.ttl)}
		c.mu.Unlock()
	}
	return payload, nil
}

// Invalidate drops the cached payload for loc.
func (c *CachedSource) Invalidate(loc weather.Location) {
	c.mu.Lock()
	delete(c.entries, loc.Key())
	c.mu.Unlock()
}
