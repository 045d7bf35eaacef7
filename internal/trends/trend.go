// Package trends classifies metric movement for tracked domains and renders
// performance reports.
package trends

import (
	"math"

	"github.com/jonathan/seo-consultant/internal/types"
)

const (
	// WindowSize bounds how many recent historical points feed a trend.
	WindowSize = 7
	// stableBandPercent is the change magnitude below which movement counts
	// as stable rather than a trend.
	stableBandPercent = 5.0
)

// AnalyzeTrend classifies one metric's movement using up to WindowSize
// recent historical points plus the current value as the comparison window.
// Fewer than two historical points, or a window starting at zero, yield
// insufficient-data rather than a division. Average search position improves
// downward, so its polarity is inverted.
func AnalyzeTrend(metric string, historical []types.MetricPoint, current float64) types.TrendResult {
	result := types.TrendResult{Metric: metric, Direction: types.TrendInsufficientData}
	if len(historical) < 2 {
		return result
	}

	window := historical
	if len(window) > WindowSize {
		window = window[len(window)-WindowSize:]
	}
	first := window[0].Value
	last := current
	if first == 0 {
		return result
	}

	result.First = first
	result.Last = last
	change := math.Abs(last-first) / first * 100
	result.Strength = round1(change)

	improving := last > first
	if metric == types.MetricAvgPosition {
		improving = last < first
	}
	switch {
	case change < stableBandPercent:
		result.Direction = types.TrendStable
	case improving:
		result.Direction = types.TrendUp
	default:
		result.Direction = types.TrendDown
	}
	return result
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
