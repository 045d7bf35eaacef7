// Package types provides type definitions for structured data used throughout the seo-consultant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// InsightType classifies a competitive insight.
type InsightType string

const (
	// InsightContentGap flags primary content depth below the competitor mean.
	InsightContentGap InsightType = "content_gap"
	// InsightTechnicalAdvantage flags primary technical score above the competitor mean.
	InsightTechnicalAdvantage InsightType = "technical_advantage"
	// InsightTechnicalDisadvantage flags primary technical score at or below the competitor mean.
	InsightTechnicalDisadvantage InsightType = "technical_disadvantage"
	// InsightAIReadiness compares primary AI-readiness to the competitor field.
	InsightAIReadiness InsightType = "ai_readiness_comparison"
	// InsightOpportunity names one competitor with a large score lead.
	InsightOpportunity InsightType = "opportunity"
)

// Priority labels recommendation urgency.
type Priority string

// Priority and impact levels used by recommendations.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is one typed observation from a competitive comparison.
type Insight struct {
	Type       InsightType `json:"type"`
	Message    string      `json:"message"`
	Competitor string      `json:"competitor,omitempty"` // set for opportunity insights
	Delta      float64     `json:"delta,omitempty"`      // score gap where relevant
}

// AIReadinessComparison summarizes how the primary's AI-readiness stands
// against the competitor field.
type AIReadinessComparison struct {
	YourScore         float64 `json:"your_score"`
	CompetitorAverage float64 `json:"competitor_average"`
	BestCompetitor    float64 `json:"best_competitor"`
	Performance       string  `json:"performance"` // "above average" or "below average"
}

// Recommendation is one actionable suggestion derived from insights.
type Recommendation struct {
	Category        string   `json:"category"`
	Priority        Priority `json:"priority"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	EstimatedImpact Priority `json:"estimated_impact"`
}

// SkippedCompetitor records a competitor omitted from a comparison because
// its analysis failed. Skips are informational, never fatal.
type SkippedCompetitor struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// ComparisonResult is the immutable record produced by one competitive
// comparison. Competitors is keyed by domain; analysis order is not
// preserved and carries no meaning.
type ComparisonResult struct {
	Primary         *SiteAnalysis            `json:"primary"`
	Competitors     map[string]*SiteAnalysis `json:"competitors"`
	AIComparison    AIReadinessComparison    `json:"ai_comparison"`
	Insights        []Insight                `json:"insights"`
	Recommendations []Recommendation         `json:"recommendations"`
	Skipped         []SkippedCompetitor      `json:"skipped,omitempty"`
	ComparedAt      time.Time                `json:"compared_at"`
}
