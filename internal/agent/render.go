package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/seo-consultant/internal/trends"
	"github.com/jonathan/seo-consultant/internal/types"
)

// renderToolResults formats executed tool output as a chat reply when no
// language model is available. Engine results still reach the user, just
// without the conversational wrap.
func renderToolResults(results []toolResult) string {
	var sections []string
	for _, result := range results {
		sections = append(sections, strings.TrimSpace(renderToolResult(result)))
	}
	return strings.Join(sections, "\n\n")
}

func renderToolResult(result toolResult) string {
	if result.err != nil {
		return fmt.Sprintf("%s failed: %s", result.name, result.err)
	}

	switch payload := result.payload.(type) {
	case *types.SiteAnalysis:
		return renderAnalysis(payload)
	case *types.ComparisonResult:
		return renderComparison(payload)
	case *types.TrendReport:
		return trends.RenderMarkdown(payload)
	default:
		data, err := json.MarshalIndent(result.payload, "", "  ")
		if err != nil {
			return fmt.Sprintf("%s: %v", result.name, result.payload)
		}
		return fmt.Sprintf("%s:\n%s", result.name, data)
	}
}

func renderAnalysis(analysis *types.SiteAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# SEO Analysis: %s\n\n", analysis.Domain)
	fmt.Fprintf(&b, "Pages crawled: %d\n", analysis.PagesCrawled)
	if analysis.CMS != "" {
		fmt.Fprintf(&b, "CMS: %s\n", analysis.CMS)
	}
	fmt.Fprintf(&b, "Overall score: %.1f/100\n\n", analysis.SiteOverall)

	b.WriteString("## Scores\n\n")
	fmt.Fprintf(&b, "- Technical: %.1f\n", analysis.Scores.Technical)
	fmt.Fprintf(&b, "- Content depth: %.1f\n", analysis.Scores.ContentDepth)
	fmt.Fprintf(&b, "- AI readiness: %.1f\n", analysis.Scores.AIReadiness)
	fmt.Fprintf(&b, "- Structure: %.1f\n", analysis.Scores.Structure)

	if len(analysis.TechnicalIssues) > 0 {
		b.WriteString("\n## Technical Issues\n\n")
		for _, issue := range analysis.TechnicalIssues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	if len(analysis.ContentSuggestions) > 0 {
		b.WriteString("\n## Content Suggestions\n\n")
		for _, suggestion := range analysis.ContentSuggestions {
			fmt.Fprintf(&b, "- %s\n", suggestion)
		}
	}

	return b.String()
}

func renderComparison(comparison *types.ComparisonResult) string {
	var b strings.Builder

	domain := ""
	if comparison.Primary != nil {
		domain = comparison.Primary.Domain
	}
	fmt.Fprintf(&b, "# Competitive Comparison: %s\n\n", domain)
	fmt.Fprintf(&b, "Competitors analyzed: %d\n", len(comparison.Competitors))

	ai := comparison.AIComparison
	fmt.Fprintf(&b, "AI readiness: %.1f vs %.1f competitor average (best %.1f), %s\n",
		ai.YourScore, ai.CompetitorAverage, ai.BestCompetitor, ai.Performance)

	if len(comparison.Insights) > 0 {
		b.WriteString("\n## Insights\n\n")
		for _, insight := range comparison.Insights {
			fmt.Fprintf(&b, "- %s\n", insight.Message)
		}
	}

	if len(comparison.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, rec := range comparison.Recommendations {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", rec.Priority, rec.Title, rec.Description)
		}
	}

	if len(comparison.Skipped) > 0 {
		b.WriteString("\n## Skipped\n\n")
		for _, skipped := range comparison.Skipped {
			fmt.Fprintf(&b, "- %s: %s\n", skipped.Domain, skipped.Reason)
		}
	}

	return b.String()
}
