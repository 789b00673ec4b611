package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in minimal images

	"github.com/joho/godotenv"

	"github.com/i474232898/sabia-weather/internal/weather"
)

const (
	DefaultCity         = "Uberlândia"
	DefaultCountry      = "BR"
	DefaultLocationName = "Parque do Sabiá"
	DefaultLat          = -18.913889
	DefaultLon          = -48.2325
	DefaultBackendURL   = "https://web-production-ba0a.up.railway.app/infos/GetDataLocation"
)

type AppConfig struct {
	Port string

	// BackendMode picks the active Source.
	BackendMode        weather.PayloadKind
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	BackendURL         string

	DefaultLocation     weather.Location
	DefaultLocationName string
	Timezone            *time.Location
	// MaxDate caps the date a dashboard request may ask for. Nil means no cap.
	MaxDate *time.Time

	HTTPTimeout     time.Duration
	CacheDuration   time.Duration
	RefreshInterval time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int

	// DatabaseURL enables the Postgres preference store when set.
	DatabaseURL    string
	GeocoderAPIKey string

	ChatMaxMessages int

	LogLevel  slog.Level
	LogFormat string // json or text
}

// Load reads configuration from the environment, after merging a .env file
// if one exists.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	mode, ok := weather.ParsePayloadKind(getenvDefault("BACKEND_MODE", string(weather.KindPredictionBackend)))
	if !ok {
		return nil, fmt.Errorf("invalid BACKEND_MODE %q: want %s or %s", os.Getenv("BACKEND_MODE"), weather.KindDirectAPI, weather.KindPredictionBackend)
	}
	cfg.BackendMode = mode
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	cfg.BackendURL = getenvDefault("BACKEND_URL", DefaultBackendURL)

	if cfg.BackendMode == weather.KindDirectAPI && cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required when BACKEND_MODE=%s", weather.KindDirectAPI)
	}

	loc, err := loadDefaultLocation()
	if err != nil {
		return nil, err
	}
	cfg.DefaultLocation = loc
	cfg.DefaultLocationName = getenvDefault("DEFAULT_LOCATION_NAME", DefaultLocationName)

	tz, err := time.LoadLocation(getenvDefault("TIMEZONE", "America/Sao_Paulo"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	if v := os.Getenv("MAX_DATE"); v != "" {
		d, err := time.ParseInLocation(time.DateOnly, v, tz)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_DATE %q: want YYYY-MM-DD", v)
		}
		cfg.MaxDate = &d
	}

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheDuration, err = getenvDuration("CACHE_DURATION", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}

	rps, err := strconv.ParseFloat(getenvDefault("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || rps < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q", os.Getenv("RATE_LIMIT_RPS"))
	}
	cfg.RateLimitRPS = rps
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", 10)

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.ChatMaxMessages = getenvInt("CHAT_MAX_MESSAGES", 50)
	cfg.Port = getenvDefault("PORT", "8080")

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "json"))
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}

	return cfg, nil
}

func loadDefaultLocation() (weather.Location, error) {
	lat, err := strconv.ParseFloat(getenvDefault("DEFAULT_LAT", strconv.FormatFloat(DefaultLat, 'f', -1, 64)), 64)
	if err != nil {
		return weather.Location{}, fmt.Errorf("invalid DEFAULT_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(getenvDefault("DEFAULT_LON", strconv.FormatFloat(DefaultLon, 'f', -1, 64)), 64)
	if err != nil {
		return weather.Location{}, fmt.Errorf("invalid DEFAULT_LON: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return weather.Location{}, fmt.Errorf("default coordinates out of range: %f,%f", lat, lon)
	}

	return weather.Location{
		City:    getenvDefault("DEFAULT_CITY", DefaultCity),
		Country: getenvDefault("DEFAULT_COUNTRY", DefaultCountry),
		Lat:     &lat,
		Lon:     &lon,
	}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
