package trends

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-consultant/internal/types"
)

func fixedReport() *types.TrendReport {
	return &types.TrendReport{
		Domain:      "example.com",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Current: map[string]float64{
			types.MetricAICitations:     42,
			types.MetricOrganicSessions: 5200,
			types.MetricAvgPosition:     8.4,
			types.MetricPageSpeed:       77,
		},
		Trends: map[string]types.TrendResult{
			types.MetricAICitations:     {Metric: types.MetricAICitations, Direction: types.TrendUp, Strength: 12.5, First: 37, Last: 42},
			types.MetricOrganicSessions: {Metric: types.MetricOrganicSessions, Direction: types.TrendStable, Strength: 1.2, First: 5140, Last: 5200},
			types.MetricAvgPosition:     {Metric: types.MetricAvgPosition, Direction: types.TrendDown, Strength: 8, First: 7.8, Last: 8.4},
			types.MetricPageSpeed:       {Metric: types.MetricPageSpeed, Direction: types.TrendInsufficientData},
		},
		Insights: []string{"✅ AI Citations Growing: citations are trending up by 12.5%. Keep optimizing for question-answer content."},
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(fixedReport())

	assert.Contains(t, out, "# SEO Performance Report: example.com")
	assert.Contains(t, out, "Generated: 2026-03-01 12:00:00 UTC")
	assert.Contains(t, out, "- AI Citations: 42")
	assert.Contains(t, out, "- Organic Sessions: 5200")
	assert.Contains(t, out, "- Average Position: 8.4")
	assert.Contains(t, out, "📈 up 12.5%")
	assert.Contains(t, out, "➡️ stable (1.2%)")
	assert.Contains(t, out, "📉 down 8.0%")
	assert.Contains(t, out, "❓ insufficient data")
	assert.Contains(t, out, "## Key Insights")
	assert.Contains(t, out, "AI Citations Growing")
}

func TestExportCSV(t *testing.T) {
	out, err := ExportCSV(fixedReport())
	require.NoError(t, err)

	want := "metric,current,direction,strength_percent\n" +
		"ai_citations,42,up,12.5\n" +
		"organic_sessions,5200,stable,1.2\n" +
		"avg_position,8.4,down,8\n" +
		"page_speed,77,insufficient_data,0\n"
	assert.Equal(t, want, out)
}

func TestExportJSON(t *testing.T) {
	out, err := ExportJSON(fixedReport())
	require.NoError(t, err)

	var decoded types.TrendReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "example.com", decoded.Domain)
	assert.Equal(t, fixedReport().Current, decoded.Current)
	assert.Equal(t, fixedReport().Trends, decoded.Trends)
	assert.Equal(t, fixedReport().Insights, decoded.Insights)
}
