// Package types provides type definitions for structured data used throughout the seo-consultant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ScoreBreakdown holds the four heuristic sub-scores plus the per-page
// overall score. Every sub-score is an additive point table clamped to
// [0,100]. PageOverall is distinct from SiteAnalysis.SiteOverall: the two
// are intentionally separate metrics at different granularities.
type ScoreBreakdown struct {
	Technical    float64 `json:"technical"`
	ContentDepth float64 `json:"content_depth"`
	AIReadiness  float64 `json:"ai_readiness"`
	Structure    float64 `json:"structure"`
	PageOverall  float64 `json:"page_overall"`
}
