package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Store     StoreConfig     `yaml:"store"`
	Cache     CacheConfig     `yaml:"cache"`
	Forecast  ForecastConfig  `yaml:"forecast"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Seed      SeedConfig      `yaml:"seed"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// StoreConfig contains DSN and pooling settings for Postgres.
type StoreConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// CacheConfig contains connection information for the report cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Addr      string        `yaml:"addr"`
	ReportTTL time.Duration `yaml:"reportTtl"`
}

// ForecastConfig drives the prediction pipeline.
type ForecastConfig struct {
	HistoryWindow time.Duration `yaml:"historyWindow"`
	HistoryLimit  int           `yaml:"historyLimit"`
}

// DashboardConfig drives the aggregation reporter.
type DashboardConfig struct {
	TrailingWindow time.Duration `yaml:"trailingWindow"`
	InsightLimit   int           `yaml:"insightLimit"`
}

// SeedConfig controls sample data generation.
type SeedConfig struct {
	Days      int `yaml:"days"`
	BatchSize int `yaml:"batchSize"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("STORE_POSTGRES_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("STORE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("CACHE_REPORT_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.ReportTTL = parsed
		}
	}
	if v := os.Getenv("FORECAST_HISTORY_WINDOW"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Forecast.HistoryWindow = parsed
		}
	}
	if v := os.Getenv("FORECAST_HISTORY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.HistoryLimit = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_TRAILING_WINDOW"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Dashboard.TrailingWindow = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_INSIGHT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.InsightLimit = parsed
		}
	}
	if v := os.Getenv("SEED_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Seed.Days = parsed
		}
	}
	if v := os.Getenv("SEED_BATCH_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Seed.BatchSize = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Store: StoreConfig{
			DSN:      "",
			MaxConns: 4,
			MinConns: 0,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Addr:      "",
			ReportTTL: 30 * time.Second,
		},
		Forecast: ForecastConfig{
			HistoryWindow: 24 * time.Hour,
			HistoryLimit:  24,
		},
		Dashboard: DashboardConfig{
			TrailingWindow: 24 * time.Hour,
			InsightLimit:   5,
		},
		Seed: SeedConfig{
			Days:      7,
			BatchSize: 1000,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Forecast.HistoryWindow <= 0 {
		return errors.New("forecast.historyWindow must be positive")
	}
	if c.Forecast.HistoryLimit <= 0 {
		return errors.New("forecast.historyLimit must be positive")
	}
	if c.Dashboard.TrailingWindow <= 0 {
		return errors.New("dashboard.trailingWindow must be positive")
	}
	if c.Dashboard.InsightLimit <= 0 {
		return errors.New("dashboard.insightLimit must be positive")
	}
	if c.Seed.Days <= 0 {
		return errors.New("seed.days must be positive")
	}
	if c.Seed.BatchSize <= 0 {
		return errors.New("seed.batchSize must be positive")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when the report cache is enabled")
	}
	if c.Cache.ReportTTL < 0 {
		return errors.New("cache.reportTtl cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
