// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/seo-consultant/internal/trends"
	"github.com/jonathan/seo-consultant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCrawl outputs a summary of the crawled pages.
func (p *Printer) PrintCrawl(domain string, pages []types.CrawledPage) {
	if len(pages) == 0 {
		return
	}

	var totalLoad float64
	for _, page := range pages {
		totalLoad += page.LoadTime
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Domain:   %s\n", domain))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", len(pages)))
	sb.WriteString(fmt.Sprintf("Avg load: %.2fs\n", totalLoad/float64(len(pages))))
	sb.WriteString("\n")

	count := min(len(pages), maxItemsToShow)
	for i := 0; i < count; i++ {
		url := pages[i].URL
		if len(url) > 45 {
			url = url[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("  • [%d] %s\n", pages[i].StatusCode, url))
	}
	if len(pages) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(pages)-maxItemsToShow))
	}

	p.printBox("CRAWL SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the score breakdown for an analyzed site.
func (p *Printer) PrintAnalysis(analysis *types.SiteAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Domain:   %s\n", analysis.Domain))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", analysis.PagesCrawled))
	if analysis.CMS != "" {
		sb.WriteString(fmt.Sprintf("CMS:      %s\n", analysis.CMS))
	}
	sb.WriteString("\n")

	sb.WriteString("Scores:\n")
	sb.WriteString(fmt.Sprintf("  Technical      %s %.1f\n", scoreBar(analysis.Scores.Technical), analysis.Scores.Technical))
	sb.WriteString(fmt.Sprintf("  Content depth  %s %.1f\n", scoreBar(analysis.Scores.ContentDepth), analysis.Scores.ContentDepth))
	sb.WriteString(fmt.Sprintf("  AI readiness   %s %.1f\n", scoreBar(analysis.Scores.AIReadiness), analysis.Scores.AIReadiness))
	sb.WriteString(fmt.Sprintf("  Structure      %s %.1f\n", scoreBar(analysis.Scores.Structure), analysis.Scores.Structure))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall:  %.1f/100", analysis.SiteOverall))

	p.printBox("SITE ANALYSIS", sb.String())
}

// PrintIssues outputs the technical issues and content suggestions found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(analysis *types.SiteAnalysis) {
	if analysis == nil {
		return
	}

	if len(analysis.TechnicalIssues) == 0 && len(analysis.ContentSuggestions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ISSUES FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	if len(analysis.TechnicalIssues) > 0 {
		sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(analysis.TechnicalIssues)))
		for _, issue := range analysis.TechnicalIssues {
			if len(issue) > 50 {
				issue = issue[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ %s\n", issue))
		}
	}
	if len(analysis.ContentSuggestions) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Suggestions:\n")
		for _, suggestion := range analysis.ContentSuggestions {
			if len(suggestion) > 50 {
				suggestion = suggestion[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", suggestion))
		}
	}

	p.printBox("ISSUES & SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs the competitive standing with ranked competitors.
func (p *Printer) PrintComparison(result *types.ComparisonResult) {
	if result == nil || result.Primary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Primary:  %s\n", result.Primary.Domain))
	sb.WriteString(fmt.Sprintf("Against:  %d competitors\n", len(result.Competitors)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("AI readiness: %.1f vs %.1f avg (%s)\n",
		result.AIComparison.YourScore,
		result.AIComparison.CompetitorAverage,
		result.AIComparison.Performance))

	if len(result.Insights) > 0 {
		sb.WriteString("\nInsights:\n")
		count := min(len(result.Insights), maxItemsToShow)
		for i := 0; i < count; i++ {
			message := result.Insights[i].Message
			if len(message) > 50 {
				message = message[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", message))
		}
		if len(result.Insights) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Insights)-maxItemsToShow))
		}
	}

	if len(result.Skipped) > 0 {
		sb.WriteString("\nSkipped:\n")
		for _, skipped := range result.Skipped {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", skipped.Domain))
		}
	}

	p.printBox("COMPETITIVE COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the prioritized recommendation list.
func (p *Printer) PrintRecommendations(recommendations []types.Recommendation) {
	if len(recommendations) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(recommendations)))

	count := min(len(recommendations), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := recommendations[i]
		title := rec.Title
		if len(title) > 42 {
			title = title[:39] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    [%s] %s\n", rec.Priority, rec.Category))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recommendations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(recommendations)-maxItemsToShow))
	}

	p.printBox("RECOMMENDATIONS", sb.String())
}

// PrintTrends outputs per-metric movement for a performance report.
func (p *Printer) PrintTrends(report *types.TrendReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Domain:   %s\n\n", report.Domain))

	for _, metric := range trends.TrackedMetrics {
		trend, ok := report.Trends[metric]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-17s %s\n", trends.MetricLabel(metric), trends.DescribeTrend(trend)))
	}

	if len(report.Insights) > 0 {
		sb.WriteString("\nInsights:\n")
		count := min(len(report.Insights), 3)
		for i := 0; i < count; i++ {
			insight := report.Insights[i]
			if len(insight) > 50 {
				insight = insight[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", insight))
		}
		if len(report.Insights) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Insights)-3))
		}
	}

	p.printBox("PERFORMANCE TRENDS", strings.TrimSuffix(sb.String(), "\n"))
}

// scoreBar renders a ten-segment bar for a 0-100 score.
func scoreBar(score float64) string {
	filled := int(score / 10)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
