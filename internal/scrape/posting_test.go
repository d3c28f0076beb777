package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vagacerta/career-agent/internal/fetch"
)

const jsonLDPage = `<html><head>
<title>Some Job - LinkedIn</title>
<script type="application/ld+json">
{
  "@type": "JobPosting",
  "title": "Senior Backend Engineer",
  "hiringOrganization": {"@type": "Organization", "name": "Acme Corp"},
  "description": "Build and operate distributed systems at scale."
}
</script>
</head><body><h1>Other heading</h1></body></html>`

func TestParseStructuredDataWins(t *testing.T) {
	posting, err := Parse(jsonLDPage, fetch.PlatformUnknown)
	require.NoError(t, err)

	assert.Equal(t, "Senior Backend Engineer", posting.Title)
	assert.Equal(t, "Acme Corp", posting.Company)
	assert.Equal(t, "Build and operate distributed systems at scale.", posting.Description)
}

func TestParseStructuredDataArray(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	[{"@type": "WebPage"},
	 {"@type": "JobPosting", "name": "Data Engineer", "hiringOrganization": "DataCo"}]
	</script></head><body></body></html>`

	posting, err := Parse(page, fetch.PlatformUnknown)
	require.NoError(t, err)

	assert.Equal(t, "Data Engineer", posting.Title, "name is the fallback for title")
	assert.Equal(t, "DataCo", posting.Company, "string hiringOrganization is used as-is")
}

func TestParseMalformedJSONLDIgnored(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">{not valid json</script>
	<meta property="og:title" content="Platform Engineer"/>
	</head><body></body></html>`

	posting, err := Parse(page, fetch.PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", posting.Title)
}

func TestParseTitleFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og:title preferred",
			html: `<html><head><meta property="og:title" content="Engineer A"/><title>Engineer B</title></head><body></body></html>`,
			want: "Engineer A",
		},
		{
			name: "twitter:title second",
			html: `<html><head><meta name="twitter:title" content="Engineer C"/><title>Engineer B</title></head><body></body></html>`,
			want: "Engineer C",
		},
		{
			name: "title tag with board suffix stripped",
			html: `<html><head><title>Engenheiro de Dados - LinkedIn Brasil</title></head><body></body></html>`,
			want: "Engenheiro de Dados",
		},
		{
			name: "pipe suffix stripped",
			html: `<html><head><title>DevOps Engineer | Indeed.com</title></head><body></body></html>`,
			want: "DevOps Engineer",
		},
		{
			name: "h1 last resort",
			html: `<html><head></head><body><h1> QA Analyst </h1></body></html>`,
			want: "QA Analyst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posting, err := Parse(tt.html, fetch.PlatformUnknown)
			require.NoError(t, err)
			assert.Equal(t, tt.want, posting.Title)
		})
	}
}

func TestParseCompanyHeuristics(t *testing.T) {
	withLink := `<html><body><a class="topcard__org-name company-link">  Acme Corp  </a></body></html>`
	posting, err := Parse(withLink, fetch.PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", posting.Company)

	withAttr := `<html><body><div data-company-name="Beta Ltda">Beta</div></body></html>`
	posting, err = Parse(withAttr, fetch.PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Beta Ltda", posting.Company)
}

func TestParseDescriptionMinLength(t *testing.T) {
	longText := strings.Repeat("Work on backend services. ", 20)

	tooShort := `<html><body><div class="job-description">Short text</div></body></html>`
	posting, err := Parse(tooShort, fetch.PlatformUnknown)
	require.NoError(t, err)
	assert.Empty(t, posting.Description, "stub containers are skipped")

	longEnough := `<html><body><div class="job-description">` + longText + `</div></body></html>`
	posting, err = Parse(longEnough, fetch.PlatformUnknown)
	require.NoError(t, err)
	assert.Contains(t, posting.Description, "Work on backend services.")
}

func TestParseFullTextStripsChrome(t *testing.T) {
	page := `<html><body>
	<nav>Menu items</nav>
	<header>Site header</header>
	<script>var x = 1;</script>
	<style>.a { color: red }</style>
	<main><p>Vaga de engenheiro.</p><p>Requisitos claros.</p></main>
	<footer>Copyright</footer>
	</body></html>`

	posting, err := Parse(page, fetch.PlatformUnknown)
	require.NoError(t, err)

	assert.Contains(t, posting.FullText, "Vaga de engenheiro.")
	assert.Contains(t, posting.FullText, "Requisitos claros.")
	assert.NotContains(t, posting.FullText, "Menu items")
	assert.NotContains(t, posting.FullText, "Site header")
	assert.NotContains(t, posting.FullText, "var x = 1")
	assert.NotContains(t, posting.FullText, "Copyright")
}

func TestParseFullTextSeparatesElements(t *testing.T) {
	page := `<html><body><h2>Requisitos</h2><p>Python</p></body></html>`

	posting, err := Parse(page, fetch.PlatformUnknown)
	require.NoError(t, err)
	assert.NotContains(t, posting.FullText, "RequisitosPython")
	assert.Contains(t, posting.FullText, "Requisitos")
	assert.Contains(t, posting.FullText, "Python")
}

func TestParseEmptyPage(t *testing.T) {
	posting, err := Parse("<html><body></body></html>", fetch.PlatformUnknown)
	require.NoError(t, err)

	assert.Empty(t, posting.Title)
	assert.Empty(t, posting.Company)
	assert.Empty(t, posting.Description)
	assert.Empty(t, posting.FullText)
}
