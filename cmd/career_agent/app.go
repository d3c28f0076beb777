package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vagacerta/career-agent/internal/config"
	"github.com/vagacerta/career-agent/internal/extraction"
	"github.com/vagacerta/career-agent/internal/fetch"
	"github.com/vagacerta/career-agent/internal/generation"
	"github.com/vagacerta/career-agent/internal/llm"
	"github.com/vagacerta/career-agent/internal/logger"
	"github.com/vagacerta/career-agent/internal/scrape"
)

// app bundles the wired service components shared by the commands.
type app struct {
	settings  *config.Settings
	log       *zap.Logger
	fetcher   *fetch.Fetcher
	client    llm.Client
	extractor *extraction.Agent
	generator *generation.Generator
}

// newApp loads settings and wires the full pipeline. When requireKey is
// false a deploy without an API key still comes up (serve mode), just with
// nil agents.
func newApp(ctx context.Context, requireKey bool) (*app, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(settings.LogJSON, settings.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{
		settings: settings,
		log:      log,
		fetcher: fetch.New(&fetch.Options{
			Timeout: settings.ScrapeTimeout,
		}),
	}

	if !settings.IsConfigured() {
		if requireKey {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
		log.Warn("GEMINI_API_KEY not configured, agents disabled")
		return a, nil
	}

	modelCfg := llm.DefaultConfig()
	if settings.GeminiModel != "" {
		modelCfg = modelCfg.WithModel(llm.TierStandard, settings.GeminiModel)
	}

	base, err := llm.NewClient(ctx, modelCfg, settings.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	a.client = llm.WithRetry(base, log)

	scraper := scrape.NewScraper(a.fetcher, log, scrape.Options{
		UseBrowser: settings.UseBrowser,
	})
	a.extractor = extraction.NewAgent(scraper, a.client, log)
	a.generator = generation.NewGenerator(a.client, log)

	return a, nil
}

// Close releases the shared HTTP and model clients.
func (a *app) Close() {
	a.fetcher.Close()
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.log.Warn("model client close failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
