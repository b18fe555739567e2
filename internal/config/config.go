// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// CMS connection
	CMSBaseURL   string        `env:"CMS_BASE_URL" envDefault:"http://localhost:1337"`
	CMSAPIToken  string        `env:"CMS_API_TOKEN"`
	CMSOffline   bool          `env:"CMS_OFFLINE" envDefault:"false"`
	CMSSampleDir string        `env:"CMS_SAMPLE_DIR"`                   // Optional override dir for offline sample data
	CMSCacheTTL  time.Duration `env:"CMS_CACHE_TTL" envDefault:"1h"`    // Lifetime of cached CMS responses
	CMSTimeout   time.Duration `env:"CMS_TIMEOUT" envDefault:"10s"`     // Per-request CMS timeout

	// Site
	SiteURL          string `env:"SITE_URL" envDefault:"https://fiftyfifty.example.org"`
	GAMeasurementID  string `env:"GA_MEASUREMENT_ID"`
	RevalidateSecret string `env:"REVALIDATE_SECRET"`

	// Server
	ServerHost string `env:"TOOLKIT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"TOOLKIT_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"TOOLKIT_ENV" envDefault:"development"`
	LogLevel   string `env:"TOOLKIT_LOG_LEVEL" envDefault:"info"`
	CSRFKey    string `env:"TOOLKIT_CSRF_KEY"`

	// Cache configuration
	RedisURL     string `env:"TOOLKIT_REDIS_URL"`                            // Optional Redis URL for shared caching
	CachePrefix  string `env:"TOOLKIT_CACHE_PREFIX" envDefault:"toolkit:"`   // Redis key prefix
	CacheMaxSize int    `env:"TOOLKIT_CACHE_MAX_SIZE" envDefault:"10000"`    // Max memory cache entries

	// Background jobs and limits
	WarmSchedule string  `env:"TOOLKIT_WARM_SCHEDULE" envDefault:"*/15 * * * *"` // Cron spec for the content warmer, empty disables
	RateLimit    float64 `env:"TOOLKIT_RATE_LIMIT" envDefault:"5"`               // Requests per second per client on API endpoints
	RateBurst    int     `env:"TOOLKIT_RATE_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// RevalidationConfigured returns true if the revalidation webhook has a secret.
func (c Config) RevalidationConfigured() bool {
	return c.RevalidateSecret != ""
}

// AnalyticsEnabled returns true if a GA4 measurement ID is configured.
func (c Config) AnalyticsEnabled() bool {
	return c.GAMeasurementID != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.CMSBaseURL = strings.TrimRight(cfg.CMSBaseURL, "/")
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if !cfg.CMSOffline {
		if _, err := url.ParseRequestURI(cfg.CMSBaseURL); err != nil {
			return nil, fmt.Errorf("CMS_BASE_URL is not a valid URL: %w", err)
		}
	}
	if _, err := url.ParseRequestURI(cfg.SiteURL); err != nil {
		return nil, fmt.Errorf("SITE_URL is not a valid URL: %w", err)
	}
	if cfg.CMSCacheTTL < 0 {
		return nil, fmt.Errorf("CMS_CACHE_TTL must not be negative, got %s", cfg.CMSCacheTTL)
	}

	return cfg, nil
}
