package trends

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/seo-consultant/internal/types"
)

// RenderMarkdown formats a trend report for terminal or chat display.
func RenderMarkdown(report *types.TrendReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# SEO Performance Report: %s\n\n", report.Domain)
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Current Metrics\n\n")
	for _, metric := range TrackedMetrics {
		if value, ok := report.Current[metric]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", MetricLabel(metric), formatValue(value))
		}
	}

	b.WriteString("\n## Trends\n\n")
	for _, metric := range TrackedMetrics {
		trend, ok := report.Trends[metric]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", MetricLabel(metric), DescribeTrend(trend))
	}

	if len(report.Insights) > 0 {
		b.WriteString("\n## Key Insights\n\n")
		for _, insight := range report.Insights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
	}

	return b.String()
}

// ExportJSON serializes the full report with indentation.
func ExportJSON(report *types.TrendReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExportCSV flattens the report to one row per tracked metric.
func ExportCSV(report *types.TrendReport) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"metric", "current", "direction", "strength_percent"}); err != nil {
		return "", err
	}
	for _, metric := range TrackedMetrics {
		trend := report.Trends[metric]
		row := []string{
			metric,
			strconv.FormatFloat(report.Current[metric], 'g', -1, 64),
			string(trend.Direction),
			strconv.FormatFloat(trend.Strength, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// DescribeTrend renders one trend result as a direction emoji plus the
// percentage change.
func DescribeTrend(trend types.TrendResult) string {
	switch trend.Direction {
	case types.TrendUp:
		return fmt.Sprintf("📈 up %.1f%%", trend.Strength)
	case types.TrendDown:
		return fmt.Sprintf("📉 down %.1f%%", trend.Strength)
	case types.TrendStable:
		return fmt.Sprintf("➡️ stable (%.1f%%)", trend.Strength)
	default:
		return "❓ insufficient data"
	}
}

// MetricLabel maps a metric key to its display name.
func MetricLabel(metric string) string {
	switch metric {
	case types.MetricAICitations:
		return "AI Citations"
	case types.MetricOrganicSessions:
		return "Organic Sessions"
	case types.MetricAvgPosition:
		return "Average Position"
	case types.MetricPageSpeed:
		return "Page Speed"
	default:
		return metric
	}
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
