package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/seo-consultant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintCrawl(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	pages := []types.CrawledPage{
		{URL: "https://example.com", StatusCode: 200, LoadTime: 0.4},
		{URL: "https://example.com/about", StatusCode: 200, LoadTime: 0.6},
	}

	p.PrintCrawl("example.com", pages)
	output := buf.String()

	assert.Contains(t, output, "CRAWL SUMMARY")
	assert.Contains(t, output, "example.com")
	assert.Contains(t, output, "Pages:    2")
	assert.Contains(t, output, "Avg load: 0.50s")
	assert.Contains(t, output, "[200]")
}

func TestPrintCrawl_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCrawl("example.com", nil)

	assert.Empty(t, buf.String())
}

func TestPrintCrawl_TruncatesPageList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	pages := make([]types.CrawledPage, 8)
	for i := range pages {
		pages[i] = types.CrawledPage{URL: "https://example.com/page", StatusCode: 200}
	}

	p.PrintCrawl("example.com", pages)
	output := buf.String()

	assert.Contains(t, output, "... and 3 more")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	analysis := &types.SiteAnalysis{
		Domain:       "example.com",
		PagesCrawled: 5,
		CMS:          "WordPress",
		Scores: types.ScoreBreakdown{
			Technical:    80,
			ContentDepth: 55,
			AIReadiness:  62.5,
			Structure:    70,
		},
		SiteOverall: 66.4,
	}

	p.PrintAnalysis(analysis)
	output := buf.String()

	assert.Contains(t, output, "SITE ANALYSIS")
	assert.Contains(t, output, "example.com")
	assert.Contains(t, output, "WordPress")
	assert.Contains(t, output, "Technical")
	assert.Contains(t, output, "62.5")
	assert.Contains(t, output, "66.4/100")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)

	assert.Empty(t, buf.String())
}

func TestPrintIssues_Clean(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIssues(&types.SiteAnalysis{Domain: "example.com"})

	assert.Contains(t, buf.String(), "✅ NO ISSUES FOUND")
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	analysis := &types.SiteAnalysis{
		Domain:             "example.com",
		TechnicalIssues:    []string{"Missing title tag", "No H1 tag found"},
		ContentSuggestions: []string{"Consider adding FAQ section"},
	}

	p.PrintIssues(analysis)
	output := buf.String()

	assert.Contains(t, output, "ISSUES & SUGGESTIONS")
	assert.Contains(t, output, "Found 2 issues")
	assert.Contains(t, output, "⚠ Missing title tag")
	assert.Contains(t, output, "⚠ No H1 tag found")
	assert.Contains(t, output, "• Consider adding FAQ section")
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ComparisonResult{
		Primary: &types.SiteAnalysis{Domain: "example.com"},
		Competitors: map[string]*types.SiteAnalysis{
			"rival.io": {Domain: "rival.io"},
		},
		AIComparison: types.AIReadinessComparison{
			YourScore:         62.5,
			CompetitorAverage: 70,
			Performance:       "below average",
		},
		Insights: []types.Insight{
			{Type: types.InsightContentGap, Message: "Competitors have deeper content"},
		},
		Skipped: []types.SkippedCompetitor{
			{Domain: "down.example", Reason: "crawl failed"},
		},
	}

	p.PrintComparison(result)
	output := buf.String()

	assert.Contains(t, output, "COMPETITIVE COMPARISON")
	assert.Contains(t, output, "Primary:  example.com")
	assert.Contains(t, output, "Against:  1 competitors")
	assert.Contains(t, output, "62.5 vs 70.0 avg (below average)")
	assert.Contains(t, output, "Competitors have deeper content")
	assert.Contains(t, output, "✗ down.example")
}

func TestPrintComparison_NilPrimary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintComparison(&types.ComparisonResult{})

	assert.Empty(t, buf.String())
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	recs := []types.Recommendation{
		{Category: "content", Priority: types.PriorityHigh, Title: "Expand pillar pages"},
		{Category: "technical", Priority: types.PriorityMedium, Title: "Fix heading hierarchy"},
	}

	p.PrintRecommendations(recs)
	output := buf.String()

	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "Total: 2")
	assert.Contains(t, output, "#1  Expand pillar pages")
	assert.Contains(t, output, "[high] content")
	assert.Contains(t, output, "#2  Fix heading hierarchy")
}

func TestPrintTrends(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.TrendReport{
		Domain:      "example.com",
		GeneratedAt: time.Now(),
		Trends: map[string]types.TrendResult{
			types.MetricAICitations: {
				Metric:    types.MetricAICitations,
				Direction: types.TrendUp,
				Strength:  25.0,
			},
			types.MetricAvgPosition: {
				Metric:    types.MetricAvgPosition,
				Direction: types.TrendDown,
				Strength:  -8.0,
			},
		},
		Insights: []string{"Your AI citations are growing"},
	}

	p.PrintTrends(report)
	output := buf.String()

	assert.Contains(t, output, "PERFORMANCE TRENDS")
	assert.Contains(t, output, "AI Citations")
	assert.Contains(t, output, "📈 up 25.0%")
	assert.Contains(t, output, "Average Position")
	assert.Contains(t, output, "Your AI citations are growing")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	analysis := &types.SiteAnalysis{
		Domain:          "a-very-long-domain-name-that-should-be-truncated-to-fit.example.com",
		TechnicalIssues: []string{strings.Repeat("long issue text ", 10)},
	}

	p.PrintIssues(analysis)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}

func TestScoreBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", 10), scoreBar(100))
	assert.Equal(t, strings.Repeat("░", 10), scoreBar(0))
	assert.Equal(t, "█████░░░░░", scoreBar(55))
	assert.Equal(t, strings.Repeat("█", 10), scoreBar(140))
}
