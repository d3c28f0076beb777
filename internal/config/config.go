// Package config provides environment-driven configuration for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings holds all runtime configuration, loaded once at startup and
// passed explicitly into constructors. There is no global instance.
type Settings struct {
	// Google Gemini API key. May be empty at startup so that health checks
	// still work on a misconfigured deploy; agents are only created when set.
	GeminiAPIKey string

	// GeminiModel overrides the default model for the standard tier.
	// Empty keeps the built-in default.
	GeminiModel string

	Environment string // "production" or "development"
	Port        int

	// Logging
	LogJSON bool
	Debug   bool

	// Timeouts
	RequestTimeout time.Duration // whole extract+generate request
	ScrapeTimeout  time.Duration // single HTTP fetch

	// CORS allowed origins for the HTTP API.
	CORSOrigins []string

	// Rate limiting (requests per minute per client IP).
	MaxRequestsPerMinute int

	// UseBrowser enables the headless-browser render stage for
	// JavaScript-heavy pages. Requires Chrome/Chromium on the host.
	UseBrowser bool
}

// Defaults mirrored from the service's historical deployment values.
const (
	DefaultPort                 = 8000
	DefaultRequestTimeout       = 300 * time.Second
	DefaultScrapeTimeout        = 30 * time.Second
	DefaultMaxRequestsPerMinute = 60
)

// Load reads settings from environment variables, applying defaults for
// anything unset. It returns an error only for values that are present
// but unparseable.
func Load() (*Settings, error) {
	s := &Settings{
		GeminiAPIKey:         strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:          strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		Environment:          envOr("ENVIRONMENT", "production"),
		Port:                 DefaultPort,
		RequestTimeout:       DefaultRequestTimeout,
		ScrapeTimeout:        DefaultScrapeTimeout,
		MaxRequestsPerMinute: DefaultMaxRequestsPerMinute,
		LogJSON:              envOr("LOG_FORMAT", "json") == "json",
		Debug:                envBool("DEBUG"),
		UseBrowser:           envBool("USE_BROWSER"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		s.Port = port
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %w", err)
		}
		s.RequestTimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("SCRAPING_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRAPING_TIMEOUT_SECONDS: %w", err)
		}
		s.ScrapeTimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("MAX_REQUESTS_PER_MINUTE"); v != "" {
		rpm, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_REQUESTS_PER_MINUTE: %w", err)
		}
		s.MaxRequestsPerMinute = rpm
	}

	s.CORSOrigins = parseOrigins(os.Getenv("CORS_ORIGINS"))

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks numeric ranges. It does not require the API key; that is
// reported separately via IsConfigured.
func (s *Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("config error: port must be in 1..65535, got %d", s.Port)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("config error: request timeout must be positive")
	}
	if s.ScrapeTimeout <= 0 {
		return fmt.Errorf("config error: scraping timeout must be positive")
	}
	if s.MaxRequestsPerMinute < 1 {
		return fmt.Errorf("config error: max requests per minute must be at least 1")
	}
	return nil
}

// IsConfigured reports whether a usable Gemini API key is present.
// Placeholder values from .env templates are treated as missing.
func (s *Settings) IsConfigured() bool {
	key := strings.ToLower(s.GeminiAPIKey)
	return key != "" && !strings.Contains(key, "your_") && !strings.Contains(key, "example")
}

// parseOrigins splits a comma-separated origin list, falling back to the
// local development origins when unset.
func parseOrigins(v string) []string {
	if strings.TrimSpace(v) == "" {
		return []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"http://localhost:5174",
		}
	}
	var origins []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes"
}
