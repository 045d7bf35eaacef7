package comparison

import (
	"fmt"
	"math"

	"github.com/jonathan/seo-consultant/internal/types"
)

const (
	aiOpportunityGap      = 20.0
	contentOpportunityGap = 15.0
)

// buildInsights compares the primary's scores against the analyzed
// competitors. Competitors that failed analysis are absent from analyses and
// contribute nothing. Insight order is fixed: AI readiness, content gap,
// technical, then per-competitor opportunities in input order.
func buildInsights(primary *types.SiteAnalysis, order []string, analyses map[string]*types.SiteAnalysis) (types.AIReadinessComparison, []types.Insight) {
	if len(analyses) == 0 {
		return types.AIReadinessComparison{}, nil
	}

	yourAI := primary.Scores.AIReadiness
	yourContent := primary.Scores.ContentDepth
	yourTech := primary.Scores.Technical

	avgAI, bestAI := 0.0, 0.0
	avgContent, avgTech := 0.0, 0.0
	for _, analysis := range analyses {
		avgAI += analysis.Scores.AIReadiness
		avgContent += analysis.Scores.ContentDepth
		avgTech += analysis.Scores.Technical
		bestAI = math.Max(bestAI, analysis.Scores.AIReadiness)
	}
	n := float64(len(analyses))
	avgAI /= n
	avgContent /= n
	avgTech /= n

	performance := "below average"
	if yourAI > avgAI {
		performance = "above average"
	}
	aiComparison := types.AIReadinessComparison{
		YourScore:         yourAI,
		CompetitorAverage: round1(avgAI),
		BestCompetitor:    round1(bestAI),
		Performance:       performance,
	}

	var insights []types.Insight
	insights = append(insights, types.Insight{
		Type:    types.InsightAIReadiness,
		Message: fmt.Sprintf("AI readiness %s (%.0f vs %.1f)", performance, yourAI, avgAI),
		Delta:   yourAI - avgAI,
	})

	if yourContent < avgContent {
		insights = append(insights, types.Insight{
			Type:    types.InsightContentGap,
			Message: fmt.Sprintf("Content depth below competitor average (%.0f vs %.1f)", yourContent, avgContent),
			Delta:   yourContent - avgContent,
		})
	}

	if yourTech > avgTech {
		insights = append(insights, types.Insight{
			Type:    types.InsightTechnicalAdvantage,
			Message: fmt.Sprintf("Technical SEO above average (%.0f vs %.1f)", yourTech, avgTech),
			Delta:   yourTech - avgTech,
		})
	} else {
		insights = append(insights, types.Insight{
			Type:    types.InsightTechnicalDisadvantage,
			Message: fmt.Sprintf("Technical SEO below average (%.0f vs %.1f)", yourTech, avgTech),
			Delta:   yourTech - avgTech,
		})
	}

	for _, domain := range order {
		analysis, ok := analyses[domain]
		if !ok {
			continue
		}
		if analysis.Scores.AIReadiness > yourAI+aiOpportunityGap {
			insights = append(insights, types.Insight{
				Type:       types.InsightOpportunity,
				Message:    fmt.Sprintf("AI optimization: %s scores significantly higher (%.0f vs %.0f)", domain, analysis.Scores.AIReadiness, yourAI),
				Competitor: domain,
				Delta:      yourAI - analysis.Scores.AIReadiness,
			})
		}
		if analysis.Scores.ContentDepth > yourContent+contentOpportunityGap {
			insights = append(insights, types.Insight{
				Type:       types.InsightOpportunity,
				Message:    fmt.Sprintf("Content strategy: Learn from %s's content approach", domain),
				Competitor: domain,
				Delta:      yourContent - analysis.Scores.ContentDepth,
			})
		}
	}

	return aiComparison, insights
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
