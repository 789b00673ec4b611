package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard service.
type Metrics struct {
	// Dashboard loads.
	LoadsTotal      *prometheus.CounterVec // labels: source={direct-api,prediction-backend}, outcome={success,transport,malformed,empty,error}
	LoadDuration    prometheus.Histogram
	DefaultedFields *prometheus.CounterVec // labels: field
	InvalidDates    prometheus.Counter

	// Outbound fetches.
	FetchCache    *prometheus.CounterVec // labels: result={hit,miss}
	FetchDuration *prometheus.HistogramVec

	// Chat and scheduler.
	ChatMessages  *prometheus.CounterVec // labels: topic
	SchedulerRuns *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.LoadsTotal,
		m.LoadDuration,
		m.DefaultedFields,
		m.InvalidDates,
		m.FetchCache,
		m.FetchDuration,
		m.ChatMessages,
		m.SchedulerRuns,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		LoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sabia",
			Name:      "dashboard_loads_total",
			Help:      help("Dashboard loads by source and outcome."),
		}, []string{"source", "outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sabia",
			Name:      "dashboard_load_duration_seconds",
			Help:      help("Duration of a fetch-normalize-classify cycle."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DefaultedFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sabia",
			Name:      "normalizer_defaulted_fields_total",
			Help:      help("Optional payload fields replaced by a default."),
		}, []string{"field"}),
		InvalidDates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sabia",
			Name:      "forecast_invalid_dates_total",
			Help:      help("Forecast dates that failed to parse and were synthesized."),
		}),
		FetchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sabia",
			Name:      "fetch_cache_total",
			Help:      help("Payload cache lookups by result."),
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sabia",
			Name:      "fetch_duration_seconds",
			Help:      help("Outbound backend request duration in seconds."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		ChatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sabia",
			Name:      "chat_messages_total",
			Help:      help("Chat messages answered by matched topic."),
		}, []string{"topic"}),
		SchedulerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sabia",
			Name:      "scheduler_runs_total",
			Help:      help("Background refresh runs by outcome."),
		}, []string{"outcome"}),
	}
}
