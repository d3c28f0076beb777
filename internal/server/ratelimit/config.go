package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig overrides the default limit for one endpoint. Path supports
// prefix matching when it ends with "/".
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window; <= 0 means unlimited
	Window time.Duration
	Burst  int // burst capacity, defaults to Limit when 0
}

// Config holds the limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() *Config {
	return NewConfig(60)
}

// NewConfig builds the limiter configuration from the per-minute request
// budget. Generation endpoints each trigger a model call, so they get a
// quarter of the budget; RATE_LIMIT_ENABLED and RATE_LIMIT_WHITELIST remain
// as operator escape hatches.
func NewConfig(requestsPerMinute int) *Config {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	generationLimit := max(1, requestsPerMinute/4)

	return &Config{
		Enabled:         envBool("RATE_LIMIT_ENABLED", true),
		DefaultLimit:    requestsPerMinute,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       parseClientList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseClientList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: []EndpointConfig{
			{Path: "/generate-complete", Method: "POST", Limit: generationLimit, Window: time.Minute},
			{Path: "/generate-materials", Method: "POST", Limit: generationLimit, Window: time.Minute},
		},
	}
}

// matchEndpoint finds the override for a path and method, or nil for the
// default. Health checks are never throttled.
func matchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		ec := &configs[i]
		if ec.Path == path && ec.Method == method {
			return ec
		}
	}
	for i := range configs {
		ec := &configs[i]
		if ec.Method == method && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			return ec
		}
	}
	return nil
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// parseClientList parses a comma-separated list of client IPs into a set.
func parseClientList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
