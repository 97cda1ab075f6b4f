// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/briangreenhill/recogate/tmdb"
)

// Config holds all application configuration
type Config struct {
	Port      string `env:"PORT" envDefault:"8000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	TMDB     TMDBConfig
	Books    UpstreamConfig `envPrefix:"BOOKS_"`
	Products UpstreamConfig `envPrefix:"PRODUCTS_"`
	Cache    CacheConfig    `envPrefix:"CACHE_"`
	HTTP     HTTPConfig

	SummaryTemplatePath string `env:"SUMMARY_TEMPLATE_PATH"`
	DiscoverFanout      int64  `env:"DISCOVER_FANOUT" envDefault:"4"`
}

// TMDBConfig holds TMDB-specific configuration
type TMDBConfig struct {
	APIKey          string        `env:"TMDB_API_KEY"`
	BaseURL         string        `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	ImageBaseURL    string        `env:"TMDB_IMAGE_BASE_URL" envDefault:"https://image.tmdb.org/t/p/w500"`
	Timeout         time.Duration `env:"TMDB_TIMEOUT" envDefault:"30s"`
	RateLimit       float64       `env:"TMDB_RATE_LIMIT" envDefault:"20"`
	RateBurst       int           `env:"TMDB_RATE_BURST" envDefault:"10"`
	BreakerFailures uint32        `env:"TMDB_BREAKER_FAILURES" envDefault:"5"`
	BreakerCooldown time.Duration `env:"TMDB_BREAKER_COOLDOWN" envDefault:"30s"`
}

// UpstreamConfig holds settings for a keyless JSON upstream
type UpstreamConfig struct {
	BaseURL string        `env:"BASE_URL"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// CacheConfig holds response cache settings
type CacheConfig struct {
	TTL           time.Duration `env:"TTL" envDefault:"10m"`
	SweepSchedule string        `env:"SWEEP_SCHEDULE" envDefault:"@every 1m"`
	WarmTrending  bool          `env:"WARM_TRENDING" envDefault:"false"`
}

// HTTPConfig holds inbound HTTP settings
type HTTPConfig struct {
	CORSOrigins       []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"120"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// Load reads configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// TMDBKeyStatus reports whether the TMDB key is usable
func (c *Config) TMDBKeyStatus() tmdb.KeyStatus {
	return tmdb.CheckKey(c.TMDB.APIKey)
}

// HasTMDB returns true if a real TMDB key is configured
func (c *Config) HasTMDB() bool {
	return c.TMDBKeyStatus() == tmdb.KeyConfigured
}

// Validate rejects settings the server cannot run with. A missing TMDB
// key is not an error: movie searches fall back to static data.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	if c.HTTP.RateLimitRequests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must not be negative, got %d", c.HTTP.RateLimitRequests)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}
