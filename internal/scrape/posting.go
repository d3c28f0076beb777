// Package scrape extracts job-posting fields from HTML and orchestrates the
// direct and proxy retrieval strategies.
package scrape

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/vagacerta/career-agent/internal/fetch"
)

// minDescriptionLength filters out stub description containers.
const minDescriptionLength = 200

// Posting holds the fields extracted from a job posting page. Any field may
// be empty; validation of the extracted values happens downstream.
type Posting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	FullText    string `json:"fullText"`
}

var (
	titleSuffixPattern = regexp.MustCompile(`(?i)\s*[-|]\s*(LinkedIn|Indeed|Glassdoor).*$`)
	blankLinesPattern  = regexp.MustCompile(`\n\s*\n\s*\n+`)
	multiSpacePattern  = regexp.MustCompile(` +`)
)

// Parse extracts posting fields from HTML. Structured JSON-LD data wins;
// platform selectors and generic heuristics fill whatever it lacks.
func Parse(rawHTML string, platform fetch.Platform) (*Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	structured := extractStructuredData(doc)

	title := structured.Title
	if title == "" {
		title = extractTitle(doc)
	}

	company := structured.Company
	if company == "" {
		company = extractCompany(doc)
	}

	description := structured.Description
	if description == "" {
		description = extractDescription(rawHTML, doc, platform)
	}

	return &Posting{
		Title:       strings.TrimSpace(title),
		Company:     strings.TrimSpace(company),
		Description: strings.TrimSpace(description),
		FullText:    strings.TrimSpace(extractFullText(doc)),
	}, nil
}

type structuredData struct {
	Title       string
	Company     string
	Description string
}

// extractStructuredData scans JSON-LD blocks for a JobPosting item. The
// first match wins; malformed blocks are skipped.
func extractStructuredData(doc *goquery.Document) structuredData {
	var result structuredData

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}

		items, ok := raw.([]any)
		if !ok {
			items = []any{raw}
		}

		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok || obj["@type"] != "JobPosting" {
				continue
			}

			result.Title = stringField(obj, "title")
			if result.Title == "" {
				result.Title = stringField(obj, "name")
			}

			switch org := obj["hiringOrganization"].(type) {
			case map[string]any:
				result.Company = stringField(org, "name")
			case string:
				result.Company = org
			}

			result.Description = stringField(obj, "description")
			return false
		}
		return true
	})

	return result
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

// extractTitle tries meta tags, the title tag (with job-board suffixes
// stripped) and the first h1.
func extractTitle(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && content != "" {
		return content
	}
	if content, ok := doc.Find(`meta[name="twitter:title"]`).Attr("content"); ok && content != "" {
		return content
	}
	if title := doc.Find("title").First().Text(); title != "" {
		return strings.TrimSpace(titleSuffixPattern.ReplaceAllString(title, ""))
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractCompany looks for common company-name markers on job boards.
func extractCompany(doc *goquery.Document) string {
	if link := doc.Find(`a[class*="company"]`).First(); link.Length() > 0 {
		return strings.TrimSpace(link.Text())
	}
	if name, ok := doc.Find("[data-company-name]").First().Attr("data-company-name"); ok {
		return name
	}
	return ""
}

// extractDescription tries platform-specific selectors first, then generic
// description containers. Candidates under minDescriptionLength are skipped.
func extractDescription(rawHTML string, doc *goquery.Document, platform fetch.Platform) string {
	if selectors := fetch.PlatformContentSelectors(platform); len(selectors) > 0 {
		noise := fetch.PlatformNoiseSelectors(platform)
		if text, err := fetch.ExtractMainText(rawHTML, selectors, noise...); err == nil {
			if len(text) >= minDescriptionLength {
				return text
			}
		}
	}

	generic := []string{
		`div[class*="description"]`,
		`section[class*="job-description"]`,
		`div[id*="job-details"]`,
	}
	for _, selector := range generic {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := nodeText(sel); len(text) > minDescriptionLength {
			return text
		}
	}
	return ""
}

// extractFullText removes non-content elements and returns the cleaned page
// text. Mutates the document; call it last.
func extractFullText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header").Remove()

	text := nodeText(doc.Selection)
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	text = multiSpacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// nodeText walks text nodes joining them with newlines, so that adjacent
// elements do not glue their words together the way Selection.Text does.
func nodeText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				parts = append(parts, trimmed)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}
