package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, DefaultRequestTimeout, s.RequestTimeout)
	assert.Equal(t, DefaultScrapeTimeout, s.ScrapeTimeout)
	assert.Equal(t, DefaultMaxRequestsPerMinute, s.MaxRequestsPerMinute)
	assert.Equal(t, "production", s.Environment)
	assert.Empty(t, s.GeminiModel)
	assert.True(t, s.LogJSON)
	assert.NotEmpty(t, s.CORSOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "abc123")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("PORT", "9001")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "120")
	t.Setenv("SCRAPING_TIMEOUT_SECONDS", "15")
	t.Setenv("MAX_REQUESTS_PER_MINUTE", "30")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("DEBUG", "true")
	t.Setenv("USE_BROWSER", "1")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "abc123", s.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", s.GeminiModel)
	assert.Equal(t, 9001, s.Port)
	assert.Equal(t, "development", s.Environment)
	assert.Equal(t, 120*time.Second, s.RequestTimeout)
	assert.Equal(t, 15*time.Second, s.ScrapeTimeout)
	assert.Equal(t, 30, s.MaxRequestsPerMinute)
	assert.False(t, s.LogJSON)
	assert.True(t, s.Debug)
	assert.True(t, s.UseBrowser)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, s.CORSOrigins)
}

func TestLoadRejectsUnparseableValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port", key: "PORT", value: "eighty"},
		{name: "request timeout", key: "REQUEST_TIMEOUT_SECONDS", value: "5m"},
		{name: "scrape timeout", key: "SCRAPING_TIMEOUT_SECONDS", value: "abc"},
		{name: "rate limit", key: "MAX_REQUESTS_PER_MINUTE", value: "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() *Settings {
		return &Settings{
			Port:                 8000,
			RequestTimeout:       time.Minute,
			ScrapeTimeout:        time.Second,
			MaxRequestsPerMinute: 10,
		}
	}

	assert.NoError(t, base().Validate())

	s := base()
	s.Port = 0
	assert.Error(t, s.Validate())

	s = base()
	s.Port = 70000
	assert.Error(t, s.Validate())

	s = base()
	s.RequestTimeout = 0
	assert.Error(t, s.Validate())

	s = base()
	s.MaxRequestsPerMinute = 0
	assert.Error(t, s.Validate())
}

func TestIsConfigured(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{key: "", want: false},
		{key: "your_api_key_here", want: false},
		{key: "EXAMPLE-key", want: false},
		{key: "AIzaSyReal-Looking-Key", want: true},
	}

	for _, tt := range tests {
		s := &Settings{GeminiAPIKey: tt.key}
		assert.Equal(t, tt.want, s.IsConfigured(), "key %q", tt.key)
	}
}

func TestParseOriginsFallback(t *testing.T) {
	origins := parseOrigins("")
	assert.Contains(t, origins, "http://localhost:5173")

	origins = parseOrigins(" https://a.example ,, https://b.example ")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins)
}
