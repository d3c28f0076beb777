package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(limit int) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  limit,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
	}
}

func TestAllowWithinLimit(t *testing.T) {
	l := NewLimiter(testConfig(5))
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/extract-job-details", "POST")
		assert.True(t, allowed, "request %d should be allowed", i)
		assert.Equal(t, 5, info.Limit)
	}
}

func TestAllowDeniesOverLimit(t *testing.T) {
	l := NewLimiter(testConfig(3))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/extract-job-details", "POST")
		require.True(t, allowed)
	}

	allowed, info := l.Allow("10.0.0.1", "/extract-job-details", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
	assert.Positive(t, info.RetryAfter)
}

func TestClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig(1))
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/extract-job-details", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/extract-job-details", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/extract-job-details", "POST")
	assert.True(t, allowed, "a second client must have its own bucket")
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	cfg := testConfig(1)
	cfg.Enabled = false
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("10.0.0.1", "/generate-materials", "POST")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestWhitelistBypassesLimit(t *testing.T) {
	cfg := testConfig(1)
	cfg.Whitelist["10.0.0.9"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/generate-materials", "POST")
		assert.True(t, allowed)
	}
}

func TestBlacklistAlwaysDenied(t *testing.T) {
	cfg := testConfig(100)
	cfg.Blacklist["10.0.0.66"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.66", "/health", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestHealthCheckUnlimited(t *testing.T) {
	l := NewLimiter(testConfig(1))
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, info := l.Allow("10.0.0.1", "/health", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestGenerationEndpointStricter(t *testing.T) {
	cfg := NewConfig(60)
	l := NewLimiter(cfg)
	defer l.Stop()

	_, info := l.Allow("10.0.0.1", "/generate-complete", "POST")
	assert.Equal(t, 15, info.Limit)

	_, info = l.Allow("10.0.0.1", "/extract-job-details", "POST")
	assert.Equal(t, 60, info.Limit)
}

func TestTokensRefill(t *testing.T) {
	// 600/min = 10 tokens per second.
	cfg := testConfig(600)
	cfg.EndpointConfigs = []EndpointConfig{
		{Path: "/extract-job-details", Method: "POST", Limit: 600, Window: time.Minute, Burst: 1},
	}
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/extract-job-details", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/extract-job-details", "POST")
	require.False(t, allowed)

	time.Sleep(150 * time.Millisecond)

	allowed, _ = l.Allow("10.0.0.1", "/extract-job-details", "POST")
	assert.True(t, allowed, "bucket must refill over time")
}

func TestConcurrentClients(t *testing.T) {
	l := NewLimiter(testConfig(1000))
	defer l.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client := fmt.Sprintf("10.0.%d.1", n)
			for j := 0; j < 20; j++ {
				l.Allow(client, "/extract-job-details", "POST")
			}
		}(i)
	}
	wg.Wait()
}

func TestParseClientList(t *testing.T) {
	assert.Empty(t, parseClientList(""))
	assert.Equal(t, map[string]bool{"1.2.3.4": true, "5.6.7.8": true},
		parseClientList(" 1.2.3.4, 5.6.7.8 ,"))
}

func TestNewConfigFloorsBudget(t *testing.T) {
	cfg := NewConfig(0)
	assert.Equal(t, 1, cfg.DefaultLimit)
	require.NotEmpty(t, cfg.EndpointConfigs)
	assert.Equal(t, 1, cfg.EndpointConfigs[0].Limit)
}
