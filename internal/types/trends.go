// Package types provides type definitions for structured data used throughout the seo-consultant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Metric names tracked by the performance store.
const (
	MetricAICitations     = "ai_citations"
	MetricOrganicSessions = "organic_sessions"
	MetricAvgPosition     = "avg_position"
	MetricPageSpeed       = "page_speed"
)

// TrendDirection classifies metric movement over the comparison window.
type TrendDirection string

const (
	// TrendUp means the metric is improving.
	TrendUp TrendDirection = "up"
	// TrendDown means the metric is declining.
	TrendDown TrendDirection = "down"
	// TrendStable means movement stayed inside the stability band.
	TrendStable TrendDirection = "stable"
	// TrendInsufficientData means fewer than two usable points were available.
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// MetricPoint is one observation in a performance series.
type MetricPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TrendResult classifies one metric's movement. Strength is the percentage
// change between the window's first and last values.
type TrendResult struct {
	Metric    string         `json:"metric"`
	Direction TrendDirection `json:"direction"`
	Strength  float64        `json:"strength"`
	First     float64        `json:"first"`
	Last      float64        `json:"last"`
}

// TrendReport bundles per-metric trends with the freshly observed values
// and derived insight lines for one domain.
type TrendReport struct {
	Domain      string                 `json:"domain"`
	GeneratedAt time.Time              `json:"generated_at"`
	Current     map[string]float64     `json:"current"`
	Trends      map[string]TrendResult `json:"trends"`
	Insights    []string               `json:"insights,omitempty"`
}
