// Package extraction orchestrates the multi-strategy acquisition of posting
// content and details: scraping first, the model as fallback, validation
// gating every hand-off.
package extraction

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/vagacerta/career-agent/internal/fetch"
	"github.com/vagacerta/career-agent/internal/llm"
	"github.com/vagacerta/career-agent/internal/logger"
	"github.com/vagacerta/career-agent/internal/scrape"
	"github.com/vagacerta/career-agent/internal/validation"
)

// logPreviewLength bounds content excerpts in log fields.
const logPreviewLength = 120

// Provenance values reported on extraction results.
const (
	SourceWebScraping = "web_scraping"
	SourceLLMFallback = "llm_fallback"
	SourceLLM         = "llm"
)

// minDetailsContentLength is the minimum content size for a details
// extraction to be meaningful.
const minDetailsContentLength = 100

// Scraper is the slice of scrape.Scraper the agent needs.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*scrape.Result, error)
}

// ContentResult is the outcome of ExtractContent. Title and Company are
// only filled when scraping produced them; the model fallback leaves them
// empty for the details step.
type ContentResult struct {
	Content    string            `json:"content"`
	Title      string            `json:"title"`
	Company    string            `json:"company"`
	Validation validation.Result `json:"validation"`
	Source     string            `json:"source"`
}

// DetailsResult is the outcome of ExtractDetails.
type DetailsResult struct {
	JobTitle   string            `json:"job_title"`
	Company    string            `json:"company"`
	Validation validation.Result `json:"validation"`
	Source     string            `json:"source"`
}

// Agent extracts posting content and details, preferring scraping and
// falling back to the model.
type Agent struct {
	scraper Scraper
	client  llm.Client
	log     *zap.Logger

	contentTier llm.ModelTier
	detailsTier llm.ModelTier
}

// NewAgent creates an extraction Agent. A nil scraper disables the scraping
// stage, sending every request straight to the model.
func NewAgent(scraper Scraper, client llm.Client, log *zap.Logger) *Agent {
	return &Agent{
		scraper:     scraper,
		client:      client,
		log:         log,
		contentTier: llm.TierStandard,
		// Title and company are a two-field pull; the lite tier is enough.
		detailsTier: llm.TierLite,
	}
}

// ExtractContent acquires posting content from a URL: scraping first, then
// the model. Content from either path must pass the content validator.
func (a *Agent) ExtractContent(ctx context.Context, jobURL string) (*ContentResult, error) {
	a.log.Info("starting content extraction", zap.String("url", jobURL))

	if err := fetch.ValidateURL(jobURL); err != nil {
		return nil, err
	}

	if a.scraper != nil {
		result, err := a.scraper.Scrape(ctx, jobURL)
		if err == nil {
			check := validation.ScoreContent(result.Posting.FullText)
			if check.IsValid {
				a.log.Info("content extracted via scraping",
					zap.String("url", jobURL),
					zap.String("strategy", result.Strategy),
					zap.Int("score", check.Score),
					zap.String("preview", logger.Truncate(result.Posting.FullText, logPreviewLength)))
				return &ContentResult{
					Content:    result.Posting.FullText,
					Title:      result.Posting.Title,
					Company:    result.Posting.Company,
					Validation: check,
					Source:     SourceWebScraping,
				}, nil
			}
			a.log.Warn("scraped content failed validation, falling back to model",
				zap.String("url", jobURL),
				zap.Int("score", check.Score),
				zap.Strings("reasons", check.Reasons))
		} else {
			a.log.Warn("scraping failed, falling back to model",
				zap.String("url", jobURL), zap.Error(err))
		}
	}

	content, err := a.client.GenerateContent(ctx, contentFallbackPrompt(jobURL), a.contentTier)
	if err != nil {
		a.log.Error("model content fallback failed", zap.String("url", jobURL), zap.Error(err))
		return nil, &ExhaustionError{URL: jobURL, Cause: err}
	}

	check := validation.ScoreContent(content)
	if !check.IsValid {
		a.log.Error("model content failed validation",
			zap.String("url", jobURL),
			zap.Int("score", check.Score),
			zap.Strings("reasons", check.Reasons))
		return nil, &ContentFallbackError{URL: jobURL, Score: check.Score, Reasons: check.Reasons}
	}

	a.log.Info("content extracted via model fallback",
		zap.String("url", jobURL),
		zap.Int("score", check.Score),
		zap.String("preview", logger.Truncate(content, logPreviewLength)))
	return &ContentResult{
		Content:    content,
		Validation: check,
		Source:     SourceLLMFallback,
	}, nil
}

// ExtractDetails extracts the job title and company from posting content.
// When a URL is given, scraping is tried first; the model handles the rest.
func (a *Agent) ExtractDetails(ctx context.Context, content, jobURL string) (*DetailsResult, error) {
	a.log.Info("extracting job details")

	if utf8.RuneCountInString(strings.TrimSpace(content)) < minDetailsContentLength {
		return nil, ErrContentTooShort
	}

	scrapeAttempted := false
	if jobURL != "" && a.scraper != nil {
		scrapeAttempted = true
		if details := a.detailsFromScrape(ctx, jobURL); details != nil {
			return details, nil
		}
	}

	// Quoting in the prompt is the primary defense; here suspicious content
	// is flagged and redacted before it reaches the model.
	if check := validation.CheckBasicHeuristics(content); !check.IsSafe {
		validation.LogInjectionWarning(a.log, check, "job posting content")
		content = validation.StripInjectionAttempts(content)
	}

	raw, err := a.client.GenerateJSON(ctx, detailsPrompt(content), a.detailsTier)
	if err != nil {
		return nil, fmt.Errorf("falha crítica na extração de título/empresa: %w", err)
	}

	decoded, err := decodeDetails(raw)
	if err != nil {
		a.log.Error("details JSON decode failed", zap.Error(err))
		return nil, err
	}
	if !decoded.Strict {
		a.log.Warn("details payload needed lenient decoding")
	}

	check := validation.ScoreDetails(decoded.Title, decoded.Company)
	if !check.IsValid {
		a.log.Error("model details failed validation",
			zap.String("title", decoded.Title),
			zap.String("company", decoded.Company),
			zap.Int("score", check.Score),
			zap.Strings("reasons", check.Reasons))
		return nil, &DetailsValidationError{
			Title:   decoded.Title,
			Company: decoded.Company,
			Score:   check.Score,
			Reasons: check.Reasons,
		}
	}

	source := SourceLLM
	if scrapeAttempted {
		source = SourceLLMFallback
	}

	a.log.Info("job details extracted via model",
		zap.String("title", decoded.Title),
		zap.String("company", decoded.Company),
		zap.Int("score", check.Score),
		zap.String("source", source))
	return &DetailsResult{
		JobTitle:   decoded.Title,
		Company:    decoded.Company,
		Validation: check,
		Source:     source,
	}, nil
}

// detailsFromScrape returns a validated result or nil when the model
// fallback should run instead.
func (a *Agent) detailsFromScrape(ctx context.Context, jobURL string) *DetailsResult {
	result, err := a.scraper.Scrape(ctx, jobURL)
	if err != nil {
		a.log.Warn("details scraping failed, falling back to model",
			zap.String("url", jobURL), zap.Error(err))
		return nil
	}

	title := strings.TrimSpace(result.Posting.Title)
	company := strings.TrimSpace(result.Posting.Company)
	if title == "" || company == "" {
		a.log.Warn("scrape missing title or company, falling back to model",
			zap.Bool("has_title", title != ""),
			zap.Bool("has_company", company != ""))
		return nil
	}

	check := validation.ScoreDetails(title, company)
	if !check.IsValid {
		a.log.Warn("scraped details failed validation, falling back to model",
			zap.String("title", title),
			zap.String("company", company),
			zap.Int("score", check.Score),
			zap.Strings("reasons", check.Reasons))
		return nil
	}

	a.log.Info("job details extracted via scraping",
		zap.String("title", title),
		zap.String("company", company),
		zap.Int("score", check.Score))
	return &DetailsResult{
		JobTitle:   title,
		Company:    company,
		Validation: check,
		Source:     SourceWebScraping,
	}
}
