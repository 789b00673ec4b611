package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpapi "github.com/i474232898/sabia-weather/internal/api/http"
	"github.com/i474232898/sabia-weather/internal/chat"
	"github.com/i474232898/sabia-weather/internal/config"
	"github.com/i474232898/sabia-weather/internal/maps"
	"github.com/i474232898/sabia-weather/internal/observability"
	"github.com/i474232898/sabia-weather/internal/scheduler"
	"github.com/i474232898/sabia-weather/internal/store"
	"github.com/i474232898/sabia-weather/internal/weather"
	"github.com/i474232898/sabia-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Shared HTTP client and limiter for outbound calls.
	clientCfg := providers.HTTPClientConfig{
		Client:  &http.Client{Timeout: cfg.HTTPTimeout},
		Backoff: providers.DefaultBackoff,
	}
	if cfg.RateLimitRPS > 0 {
		clientCfg.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	var source weather.Source
	switch cfg.BackendMode {
	case weather.KindDirectAPI:
		source = providers.NewOpenWeatherSource(clientCfg, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)
	default:
		source = providers.NewPredictionBackendSource(clientCfg, cfg.BackendURL)
	}
	// A zero CACHE_DURATION keeps the wrapper for fetch metrics but stores nothing.
	source = providers.NewCachedSource(source, cfg.CacheDuration, clockwork.NewRealClock(), metrics)

	var locator weather.Locator = maps.StaticLocator{Default: cfg.DefaultLocation}
	if cfg.GeocoderAPIKey != "" {
		locator = maps.NewGoogleLocator(cfg.GeocoderAPIKey, cfg.DefaultLocation, log)
	}

	service := weather.NewService(source, locator, metrics, log, weather.ServiceConfig{
		DefaultCity: cfg.DefaultLocation.City,
		Timezone:    cfg.Timezone,
	})

	// Language preference survives restarts only with a database.
	var kv store.KV = store.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		kv = pg
	}

	// Periodic refresh of the last request; the first run loads the dashboard.
	sched := scheduler.New(cfg.RefreshInterval, service, metrics, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "sabia-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "sabia-weather",
			"backend": cfg.BackendMode,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, httpapi.Dependencies{
		Service:      service,
		Preferences:  store.NewPreferences(kv),
		Chat:         chat.NewSession(cfg.ChatMaxMessages, nil),
		Metrics:      metrics,
		Logger:       log,
		MapAPIKey:    cfg.OpenWeatherAPIKey,
		Default:      cfg.DefaultLocation,
		LocationName: cfg.DefaultLocationName,
		Timezone:     cfg.Timezone,
		LoadTimeout:  cfg.HTTPTimeout * 2,
		MaxDate:      cfg.MaxDate,
	})

	go func() {
		log.Info("listening", "port", cfg.Port, "backend", cfg.BackendMode)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}

func newLogger(cfg *config.AppConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
