package trends

import (
	"fmt"
	"time"

	"github.com/jonathan/seo-consultant/internal/types"
)

// TrackedMetrics is the fixed set of series every performance report covers.
var TrackedMetrics = []string{
	types.MetricAICitations,
	types.MetricOrganicSessions,
	types.MetricAvgPosition,
	types.MetricPageSpeed,
}

const (
	aiGrowthInsightThreshold = 10.0
	slowPageSpeedThreshold   = 70.0
)

// BuildReport assembles per-metric trends and insight lines for one domain.
// current maps metric name to the freshly observed value; series maps metric
// name to its ordered history.
func BuildReport(domain string, current map[string]float64, series map[string][]types.MetricPoint) *types.TrendReport {
	trendsByMetric := make(map[string]types.TrendResult, len(TrackedMetrics))
	for _, metric := range TrackedMetrics {
		trendsByMetric[metric] = AnalyzeTrend(metric, series[metric], current[metric])
	}

	return &types.TrendReport{
		Domain:      domain,
		GeneratedAt: time.Now().UTC(),
		Current:     current,
		Trends:      trendsByMetric,
		Insights:    buildInsights(trendsByMetric, current),
	}
}

func buildInsights(trendsByMetric map[string]types.TrendResult, current map[string]float64) []string {
	var insights []string

	ai := trendsByMetric[types.MetricAICitations]
	switch {
	case ai.Direction == types.TrendUp && ai.Strength > aiGrowthInsightThreshold:
		insights = append(insights, fmt.Sprintf("✅ AI Citations Growing: citations are trending up by %.1f%%. Keep optimizing for question-answer content.", ai.Strength))
	case ai.Direction == types.TrendDown:
		insights = append(insights, fmt.Sprintf("⚠️ AI Citations Declining: citations dropped by %.1f%%. Review content structure and FAQ sections.", ai.Strength))
	}

	if traffic := trendsByMetric[types.MetricOrganicSessions]; traffic.Direction == types.TrendUp {
		insights = append(insights, fmt.Sprintf("✅ Traffic Growth Detected: organic sessions increased by %.1f%%.", traffic.Strength))
	}

	if ranking := trendsByMetric[types.MetricAvgPosition]; ranking.Direction == types.TrendUp {
		insights = append(insights, "✅ Rankings Improving: your average search position is improving.")
	}

	if speed, ok := current[types.MetricPageSpeed]; ok && speed < slowPageSpeedThreshold {
		insights = append(insights, fmt.Sprintf("⚠️ Page Speed Needs Improvement: page speed score is %.0f/100. This affects both user experience and AI crawler efficiency.", speed))
	}

	return insights
}
