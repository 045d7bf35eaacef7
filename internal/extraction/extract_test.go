package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-consultant/internal/types"
)

const richPage = `<!DOCTYPE html>
<html>
<head>
<title>Complete SEO Guide</title>
<meta name="description" content="A practical guide to technical SEO.">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"FAQPage"}</script>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article"}</script>
</head>
<body>
<nav>Site navigation links</nav>
<div class="breadcrumb">Home / Guides</div>
<div class="toc">Contents</div>
<h1>Complete SEO Guide</h1>
<div class="content-section">
<h2>What is SEO?</h2>
<p>What is SEO? The answer is simple: visibility. In summary, rank well.</p>
<img src="a.png" alt="diagram">
<img src="b.png">
<a href="/guides">Guides</a>
<a href="https://external.example.org/ref">Reference</a>
</div>
<div class="content-section">
<h2>Steps</h2>
<p>First, audit the site. Then fix issues. Finally, measure results.</p>
</div>
<div class="content-section">
<h4>Deep dive</h4>
<p>FAQ: frequently asked questions are listed here.</p>
</div>
<footer>Footer boilerplate</footer>
</body>
</html>`

func TestExtract_RichPage(t *testing.T) {
	features := Extract(richPage, "https://example.com/guide")

	assert.Equal(t, "https://example.com/guide", features.URL)
	assert.Equal(t, "Complete SEO Guide", features.Title.Text)
	assert.Equal(t, 3, features.Title.WordCount)
	assert.True(t, features.Title.Present())

	assert.Equal(t, "A practical guide to technical SEO.", features.MetaDescription.Text)
	assert.True(t, features.MetaDescription.Present())

	assert.Equal(t, 1, features.Headings.H1.Count)
	assert.Equal(t, 2, features.Headings.H2.Count)
	assert.Equal(t, 1, features.Headings.H4.Count)
	assert.Equal(t, 4, features.Headings.TotalCount)
	assert.True(t, features.Headings.HasH1)
	assert.False(t, features.Headings.MultipleH1)
	assert.True(t, features.Headings.SingleH1())
	require.Len(t, features.Headings.HierarchyIssues, 1)
	assert.Equal(t, "Jump from H2 to H4", features.Headings.HierarchyIssues[0])

	assert.Equal(t, 2, features.Images.Total)
	assert.Equal(t, 1, features.Images.WithAlt)
	assert.Equal(t, 1, features.Images.WithoutAlt)

	assert.Equal(t, 1, features.Links.Internal)
	assert.Equal(t, 1, features.Links.External)

	assert.Equal(t, 2, features.Schema.Count)
	assert.True(t, features.Schema.HasFAQSchema)
	assert.False(t, features.Schema.HasQASchema)

	assert.True(t, features.HasTOC)
	assert.True(t, features.HasBreadcrumbs)
	assert.GreaterOrEqual(t, features.ContentSections, 3)

	assert.Positive(t, features.QuestionCount)
	assert.NotEmpty(t, features.Questions)
	assert.NotEmpty(t, features.FAQIndicators)
	assert.Positive(t, features.AnswerPatterns)
	assert.Positive(t, features.ListPatterns)
	assert.Positive(t, features.WordCount)
	require.NotNil(t, features.Keywords)
	assert.Positive(t, features.Keywords.TotalWords)
}

func TestExtract_EmptyInput(t *testing.T) {
	features := Extract("", "https://example.com")

	assert.Equal(t, "https://example.com", features.URL)
	assert.False(t, features.Title.Present())
	assert.False(t, features.MetaDescription.Present())
	assert.Equal(t, 0, features.Headings.TotalCount)
	assert.False(t, features.Headings.HasH1)
	assert.Equal(t, 0, features.Schema.Count)
	assert.Equal(t, 0, features.QuestionCount)
	assert.Equal(t, 0, features.WordCount)
}

func TestExtract_MalformedHTML(t *testing.T) {
	// Unclosed tags must degrade, not fail
	features := Extract("<html><body><h1>Broken page<h2>Still broken", "https://example.com")

	assert.Equal(t, 1, features.Headings.H1.Count)
	assert.Equal(t, 1, features.Headings.H2.Count)
	assert.True(t, features.Headings.HasH1)
	assert.Empty(t, features.Headings.HierarchyIssues)
}

func TestExtract_MultipleH1(t *testing.T) {
	html := "<html><body><h1>One</h1><h1>Two</h1><h1>Three</h1></body></html>"
	features := Extract(html, "https://example.com")

	assert.Equal(t, 3, features.Headings.H1.Count)
	assert.True(t, features.Headings.HasH1)
	assert.True(t, features.Headings.MultipleH1)
	assert.False(t, features.Headings.SingleH1())
}

func TestExtract_HierarchyIssues(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantIssues []string
	}{
		{
			name:       "clean descent",
			html:       "<body><h1>A</h1><h2>B</h2><h3>C</h3></body>",
			wantIssues: nil,
		},
		{
			name:       "single skip",
			html:       "<body><h1>A</h1><h3>B</h3></body>",
			wantIssues: []string{"Jump from H1 to H3"},
		},
		{
			name:       "skip after ascent",
			html:       "<body><h2>A</h2><h4>B</h4><h2>C</h2><h5>D</h5></body>",
			wantIssues: []string{"Jump from H2 to H4", "Jump from H2 to H5"},
		},
		{
			name:       "ascending back up is not an issue",
			html:       "<body><h1>A</h1><h2>B</h2><h1>C</h1></body>",
			wantIssues: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := Extract(tt.html, "https://example.com")
			assert.Equal(t, tt.wantIssues, features.Headings.HierarchyIssues)
		})
	}
}

func TestExtract_QASchemaFlag(t *testing.T) {
	html := `<head><script type="application/ld+json">{"@type":"QAPage"}</script></head>`
	features := Extract(html, "https://example.com")

	assert.Equal(t, 1, features.Schema.Count)
	assert.True(t, features.Schema.HasQASchema)
	assert.False(t, features.Schema.HasFAQSchema)
}

type fakeEntityExtractor struct {
	entities []types.Entity
}

func (f *fakeEntityExtractor) Extract(_ string) []types.Entity {
	return f.entities
}

func TestExtractor_WithEntityCollaborator(t *testing.T) {
	extractor := &Extractor{
		Entities: &fakeEntityExtractor{entities: []types.Entity{{Text: "Acme", Label: "ORG"}}},
	}

	features := extractor.Extract("<body><p>Acme builds tools.</p></body>", "https://acme.com")
	require.Len(t, features.Entities, 1)
	assert.Equal(t, "Acme", features.Entities[0].Text)
}

func TestExtractor_NoEntityCollaborator(t *testing.T) {
	features := NewExtractor().Extract("<body><p>Acme builds tools.</p></body>", "https://acme.com")
	assert.Empty(t, features.Entities)
}

func TestVisibleText_StripsNoise(t *testing.T) {
	html := `<html><body>
<nav>NAVIGATION</nav>
<script>var x = "SCRIPTCODE";</script>
<style>.hidden{}</style>
<p>Visible paragraph text.</p>
<footer>FOOTERTEXT</footer>
</body></html>`

	text := VisibleText(html)
	assert.Contains(t, text, "Visible paragraph text.")
	assert.NotContains(t, text, "NAVIGATION")
	assert.NotContains(t, text, "SCRIPTCODE")
	assert.NotContains(t, text, "FOOTERTEXT")
	assert.False(t, strings.Contains(text, ".hidden"))
}
