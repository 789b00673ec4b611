package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/sabia-weather/internal/observability"
)

// LoadRequest selects what the dashboard shows. A nil Date means live data.
type LoadRequest struct {
	City string     `json:"city"`
	Date *time.Time `json:"date,omitempty"`
}

// State is the single application state rendered by the dashboard. It is
// rebuilt wholesale on each successful load and never partially updated.
type State struct {
	Location       Location             `json:"location"`
	Reading        CanonicalReading     `json:"reading"`
	Classification ClassificationResult `json:"classification"`
	Forecast       []ForecastDay        `json:"forecast"`
	Source         PayloadKind          `json:"source"`
	Request        LoadRequest          `json:"request"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// ServiceConfig carries the defaults the service falls back to.
type ServiceConfig struct {
	DefaultCity string
	Timezone    *time.Location
}

// Service owns the application state and orchestrates
// fetch, normalize, aggregate and classify.
type Service struct {
	source  Source
	locator Locator
	metrics *observability.Metrics
	logger  *slog.Logger
	cfg     ServiceConfig

	mu          sync.RWMutex
	state       *State
	lastReq     LoadRequest
	lastAttempt LoadRequest
}

// NewService creates a new Service. locator may be nil, in which case the
// city name is used as-is.
func NewService(source Source, locator Locator, metrics *observability.Metrics, logger *slog.Logger, cfg ServiceConfig) *Service {
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	return &Service{
		source:      source,
		locator:     locator,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
		lastReq:     LoadRequest{City: cfg.DefaultCity},
		lastAttempt: LoadRequest{City: cfg.DefaultCity},
	}
}

// Load fetches and renders a new state for req. On failure the previous
// state is kept and the error is returned; nothing is partially committed.
// Concurrent loads are not cancelled; the last one to finish wins.
func (s *Service) Load(ctx context.Context, req LoadRequest) (State, error) {
	req.City = strings.TrimSpace(req.City)
	if req.City == "" {
		req.City = s.cfg.DefaultCity
	}

	s.mu.Lock()
	s.lastAttempt = req
	s.mu.Unlock()

	start := clock.Now()
	st, err := s.build(ctx, req)
	s.metrics.LoadDuration.Observe(clock.Since(start).Seconds())
	s.metrics.LoadsTotal.WithLabelValues(string(s.source.Kind()), outcome(err)).Inc()

	if err != nil {
		s.logger.Error("dashboard load failed; keeping previous state",
			"city", req.City, "source", s.source.Name(), "error", err)
		return State{}, err
	}

	s.mu.Lock()
	s.state = &st
	s.lastReq = req
	s.mu.Unlock()

	s.logger.Info("dashboard loaded",
		"city", st.Location.City,
		"condition", st.Reading.ConditionLabel,
		"theme", st.Classification.Theme,
		"forecast_days", len(st.Forecast),
		"historical", st.Reading.IsHistorical,
	)
	return st, nil
}

// Refresh is the explicit user retry. It repeats the most recent request,
// including one that failed, bypassing any cached payload for its location.
func (s *Service) Refresh(ctx context.Context) (State, error) {
	s.mu.RLock()
	req := s.lastAttempt
	s.mu.RUnlock()

	s.invalidate(ctx, req.City)
	return s.Load(ctx, req)
}

// RefreshCurrent repeats the last successful request, bypassing any cached
// payload. Background refreshes use it so a failed request is never retried
// without the user asking.
func (s *Service) RefreshCurrent(ctx context.Context) (State, error) {
	s.mu.RLock()
	req := s.lastReq
	s.mu.RUnlock()

	s.invalidate(ctx, req.City)
	return s.Load(ctx, req)
}

// Current returns the last successfully loaded state.
func (s *Service) Current() (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return State{}, false
	}
	return *s.state, true
}

// LastRequest returns the last request that loaded successfully.
func (s *Service) LastRequest() LoadRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReq
}

func (s *Service) build(ctx context.Context, req LoadRequest) (State, error) {
	loc, err := s.locate(ctx, req.City)
	if err != nil {
		return State{}, err
	}

	payload, err := s.source.Fetch(ctx, loc)
	if err != nil {
		return State{}, err
	}

	reading, diag, err := Normalize(payload)
	if err != nil {
		s.drop(loc)
		return State{}, err
	}
	if len(diag.Defaulted) > 0 {
		s.logger.Debug("normalizer defaulted fields", "kind", diag.Kind, "fields", diag.Defaulted)
		for _, f := range diag.Defaulted {
			s.metrics.DefaultedFields.WithLabelValues(f).Inc()
		}
	}

	entries, err := NormalizeForecast(payload)
	if err != nil {
		s.drop(loc)
		return State{}, err
	}

	now := clock.Now().In(s.cfg.Timezone)

	var forecast []ForecastDay
	switch {
	case req.Date != nil:
		reading = SynthesizeHistorical(reading, *req.Date, now)
		forecast = AggregateFlatSeries(SynthesizeHistoricalForecast(*req.Date), s.cfg.Timezone)
	case payload.Kind() == KindPredictionBackend:
		var dateErrs []error
		forecast, dateErrs = AggregateBackendList(entries, now)
		for _, de := range dateErrs {
			s.metrics.InvalidDates.Inc()
			s.logger.Warn("forecast date recovered", "error", de)
		}
	default:
		forecast = AggregateFlatSeries(entries, s.cfg.Timezone)
	}

	if reading.CityName != "" && loc.City == "" {
		loc.City = reading.CityName
	}

	return State{
		Location:       loc,
		Reading:        reading,
		Classification: Classify(reading),
		Forecast:       forecast,
		Source:         payload.Kind(),
		Request:        req,
		UpdatedAt:      now,
	}, nil
}

func (s *Service) locate(ctx context.Context, city string) (Location, error) {
	if s.locator == nil {
		return Location{City: city}, nil
	}
	loc, err := s.locator.Locate(ctx, city)
	if err != nil {
		return Location{}, fmt.Errorf("locate %q: %w", city, err)
	}
	return loc, nil
}

// invalidate drops the cached payload for city, if the source caches.
func (s *Service) invalidate(ctx context.Context, city string) {
	if _, ok := s.source.(Invalidator); !ok {
		return
	}
	loc, err := s.locate(ctx, city)
	if err != nil {
		return
	}
	s.drop(loc)
}

// drop evicts a payload that failed to normalize so the next fetch for loc
// goes back to the backend.
func (s *Service) drop(loc Location) {
	if inv, ok := s.source.(Invalidator); ok {
		inv.Invalidate(loc)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed"
	case errors.Is(err, ErrEmptyDataset):
		return "empty"
	default:
		return "error"
	}
}
