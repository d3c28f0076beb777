package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vagacerta/career-agent/internal/fetch"
)

// Strategy names reported on scrape results.
const (
	StrategyDirect  = "direct"
	StrategyProxy   = "cors_proxy"
	StrategyBrowser = "browser"
)

// ErrAllStrategiesFailed is returned when no retrieval strategy produced
// usable content.
var ErrAllStrategiesFailed = errors.New("all scraping strategies failed")

// FailedError carries the attempted strategies and user-facing remediation
// hints for a scrape that exhausted every strategy.
type FailedError struct {
	URL       string
	Attempted []string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf(
		"falha ao extrair conteúdo da URL: %s\n"+
			"Possíveis causas:\n"+
			"- Site bloqueia scraping/bots\n"+
			"- CORS está bloqueando acesso\n"+
			"- URL requer autenticação/login\n"+
			"- Página usa JavaScript para renderizar conteúdo",
		e.URL)
}

func (e *FailedError) Unwrap() error { return ErrAllStrategiesFailed }

// Result pairs the parsed posting with the strategy that produced it.
type Result struct {
	Posting  *Posting
	Strategy string
}

// Options configures the Scraper.
type Options struct {
	// UseBrowser enables the headless-browser stage after the proxies.
	UseBrowser bool
	// BrowserTimeout bounds a single render. Zero uses fetch.DefaultTimeout.
	BrowserTimeout time.Duration
}

// Scraper retrieves and parses job postings with automatic strategy
// fallback: direct request, then CORS proxies, then optionally a headless
// browser. Concurrent scrapes of the same URL are collapsed into one.
type Scraper struct {
	fetcher *fetch.Fetcher
	log     *zap.Logger
	opts    Options
	group   singleflight.Group

	// proxyURLs builds the relay URLs for a target; swapped in tests.
	proxyURLs func(string) []string
}

// NewScraper creates a Scraper around an existing Fetcher. The Fetcher's
// lifecycle stays with the caller.
func NewScraper(fetcher *fetch.Fetcher, log *zap.Logger, opts Options) *Scraper {
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = fetch.DefaultTimeout
	}
	return &Scraper{fetcher: fetcher, log: log, opts: opts, proxyURLs: fetch.ProxyURLs}
}

// Scrape extracts posting data from a URL. Invalid URLs fail immediately
// with fetch.ErrInvalidURL; exhausting all strategies returns *FailedError.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Result, error) {
	if err := fetch.ValidateURL(url); err != nil {
		return nil, err
	}

	v, err, shared := s.group.Do(url, func() (any, error) {
		return s.scrape(ctx, url)
	})
	if shared {
		s.log.Debug("scrape shared with in-flight request", zap.String("url", url))
	}
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (s *Scraper) scrape(ctx context.Context, url string) (*Result, error) {
	s.log.Info("starting scrape", zap.String("url", url))
	platform := fetch.DetectPlatform(url)
	attempted := make([]string, 0, 3)

	attempted = append(attempted, StrategyDirect)
	if posting, err := s.tryDirect(ctx, url, platform); err == nil {
		s.log.Info("direct scrape succeeded", zap.String("url", url))
		return &Result{Posting: posting, Strategy: StrategyDirect}, nil
	} else {
		s.log.Warn("direct scrape failed", zap.String("url", url), zap.Error(err))
	}

	attempted = append(attempted, StrategyProxy)
	if posting, err := s.tryProxies(ctx, url, platform); err == nil {
		s.log.Info("proxy scrape succeeded", zap.String("url", url))
		return &Result{Posting: posting, Strategy: StrategyProxy}, nil
	} else {
		s.log.Warn("proxy scrape failed", zap.String("url", url), zap.Error(err))
	}

	if s.opts.UseBrowser {
		attempted = append(attempted, StrategyBrowser)
		if posting, err := s.tryBrowser(ctx, url, platform); err == nil {
			s.log.Info("browser scrape succeeded", zap.String("url", url))
			return &Result{Posting: posting, Strategy: StrategyBrowser}, nil
		} else {
			s.log.Warn("browser scrape failed", zap.String("url", url), zap.Error(err))
		}
	}

	return nil, &FailedError{URL: url, Attempted: attempted}
}

func (s *Scraper) tryDirect(ctx context.Context, url string, platform fetch.Platform) (*Posting, error) {
	result, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	posting, err := Parse(result.HTML, platform)
	if err != nil {
		return nil, err
	}
	// A parseable page can still be a JavaScript shell with no real text;
	// fail the stage so the ladder can try a strategy that renders it.
	if fetch.ShouldUseBrowser(posting.FullText) {
		return nil, fmt.Errorf("direct fetch returned too little text (%d chars)", len(posting.FullText))
	}
	return posting, nil
}

func (s *Scraper) tryProxies(ctx context.Context, url string, platform fetch.Platform) (*Posting, error) {
	var lastErr error
	for _, proxyURL := range s.proxyURLs(url) {
		result, err := s.fetcher.Get(ctx, proxyURL)
		if err != nil {
			lastErr = err
			continue
		}

		posting, err := Parse(result.HTML, platform)
		if err != nil {
			lastErr = err
			continue
		}
		// Also guards against proxies returning their own error pages
		// with a 200 status.
		if !fetch.ShouldUseBrowser(posting.FullText) {
			return posting, nil
		}
		lastErr = fmt.Errorf("proxy returned too little text (%d chars)", len(posting.FullText))
	}
	if lastErr == nil {
		lastErr = errors.New("no proxies configured")
	}
	return nil, lastErr
}

func (s *Scraper) tryBrowser(ctx context.Context, url string, platform fetch.Platform) (*Posting, error) {
	rendered, err := fetch.WithBrowser(ctx, s.log, url, s.opts.BrowserTimeout)
	if err != nil {
		return nil, err
	}
	return Parse(rendered, platform)
}
