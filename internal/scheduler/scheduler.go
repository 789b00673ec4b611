package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/sabia-weather/internal/observability"
	"github.com/i474232898/sabia-weather/internal/weather"
)

// Refresher is the part of weather.Service the scheduler drives.
type Refresher interface {
	RefreshCurrent(ctx context.Context) (weather.State, error)
}

// Scheduler periodically refreshes the dashboard state so it stays current
// without a user action. Failures are logged and the previous state stays.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	interval  time.Duration
	timeout   time.Duration
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, service Refresher, metrics *observability.Metrics, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		timeout:   30 * time.Second,
		metrics:   metrics,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.logger.Debug("scheduler: refreshing dashboard")
	st, err := s.service.RefreshCurrent(ctx)
	if err != nil {
		s.metrics.SchedulerRuns.WithLabelValues("error").Inc()
		s.logger.Warn("scheduler: refresh failed", "error", err)
		return
	}
	s.metrics.SchedulerRuns.WithLabelValues("success").Inc()
	s.logger.Debug("scheduler: refresh complete", "city", st.Location.City)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
