package comparison

import (
	"fmt"

	"github.com/jonathan/seo-consultant/internal/types"
)

const maxOpportunityRecommendations = 3

// buildRecommendations maps insight categories to fixed recommendation
// templates. Below-average AI readiness and any technical disadvantage rank
// high; content gaps and the top opportunities rank medium.
func buildRecommendations(ai types.AIReadinessComparison, insights []types.Insight) []types.Recommendation {
	var recommendations []types.Recommendation

	if ai.Performance == "below average" {
		recommendations = append(recommendations, types.Recommendation{
			Category:        "AI Optimization",
			Priority:        types.PriorityHigh,
			Title:           "Improve AI Search Readiness",
			Description:     fmt.Sprintf("Your AI score (%.0f) is below the competitor average. Focus on FAQ content and structured data.", ai.YourScore),
			EstimatedImpact: types.PriorityHigh,
		})
	}

	if hasInsight(insights, types.InsightContentGap) {
		recommendations = append(recommendations, types.Recommendation{
			Category:        "Content Strategy",
			Priority:        types.PriorityMedium,
			Title:           "Address Content Depth Gaps",
			Description:     "Competitors have more comprehensive content. Consider expanding topic coverage and article length.",
			EstimatedImpact: types.PriorityMedium,
		})
	}

	if hasInsight(insights, types.InsightTechnicalDisadvantage) {
		recommendations = append(recommendations, types.Recommendation{
			Category:        "Technical SEO",
			Priority:        types.PriorityHigh,
			Title:           "Improve Technical Foundation",
			Description:     "Your technical SEO is lagging behind competitors. Focus on page speed, schema markup, and on-page optimization.",
			EstimatedImpact: types.PriorityHigh,
		})
	}

	opportunities := 0
	for _, insight := range insights {
		if insight.Type != types.InsightOpportunity {
			continue
		}
		if opportunities == maxOpportunityRecommendations {
			break
		}
		opportunities++
		recommendations = append(recommendations, types.Recommendation{
			Category:        "Competitive Opportunity",
			Priority:        types.PriorityMedium,
			Title:           "Competitive Gap Analysis",
			Description:     insight.Message,
			EstimatedImpact: types.PriorityMedium,
		})
	}

	return recommendations
}

func hasInsight(insights []types.Insight, kind types.InsightType) bool {
	for _, insight := range insights {
		if insight.Type == kind {
			return true
		}
	}
	return false
}
