package comparison

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-consultant/internal/types"
)

type fakeSource struct {
	mu       sync.Mutex
	analyses map[string]*types.SiteAnalysis
	failures map[string]error
	calls    []string

	delay     time.Duration
	active    int32
	maxActive int32
}

func (f *fakeSource) Analyze(_ context.Context, domain string) (*types.SiteAnalysis, error) {
	current := atomic.AddInt32(&f.active, 1)
	for {
		observed := atomic.LoadInt32(&f.maxActive)
		if current <= observed || atomic.CompareAndSwapInt32(&f.maxActive, observed, current) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	atomic.AddInt32(&f.active, -1)

	f.mu.Lock()
	f.calls = append(f.calls, domain)
	f.mu.Unlock()

	if err, ok := f.failures[domain]; ok {
		return nil, err
	}
	if analysis, ok := f.analyses[domain]; ok {
		return analysis, nil
	}
	return nil, errors.New("unknown domain")
}

func siteWithScores(domain string, technical, content, ai float64) *types.SiteAnalysis {
	return &types.SiteAnalysis{
		Domain: domain,
		Scores: types.ScoreBreakdown{Technical: technical, ContentDepth: content, AIReadiness: ai},
	}
}

func TestCompare_PrimaryFailureIsFatal(t *testing.T) {
	cause := errors.New("fetch timeout")
	source := &fakeSource{failures: map[string]error{"primary.example": cause}}

	result, err := NewComparator(source, 0).Compare(context.Background(), "primary.example", []string{"a.example"})

	require.Error(t, err)
	assert.Nil(t, result)

	var primaryErr *PrimaryAnalysisError
	require.True(t, errors.As(err, &primaryErr))
	assert.Equal(t, "primary.example", primaryErr.Domain)
	assert.True(t, errors.Is(err, cause))

	// The primary failure short-circuits before any competitor work.
	assert.Equal(t, []string{"primary.example"}, source.calls)
}

func TestCompare_CompetitorFailureIsSkippedNotFatal(t *testing.T) {
	source := &fakeSource{
		analyses: map[string]*types.SiteAnalysis{
			"primary.example": siteWithScores("primary.example", 70, 60, 50),
			"a.example":       siteWithScores("a.example", 60, 55, 45),
			"c.example":       siteWithScores("c.example", 65, 50, 40),
		},
		failures: map[string]error{"b.example": errors.New("connection refused")},
	}

	result, err := NewComparator(source, 0).Compare(context.Background(), "primary.example", []string{"a.example", "b.example", "c.example"})
	require.NoError(t, err)

	assert.Len(t, result.Competitors, 2)
	assert.Contains(t, result.Competitors, "a.example")
	assert.Contains(t, result.Competitors, "c.example")

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "b.example", result.Skipped[0].Domain)
	assert.Equal(t, "connection refused", result.Skipped[0].Reason)
}

func TestCompare_TruncatesCompetitorsToFive(t *testing.T) {
	analyses := map[string]*types.SiteAnalysis{"primary.example": siteWithScores("primary.example", 50, 50, 50)}
	domains := []string{"c1.example", "c2.example", "c3.example", "c4.example", "c5.example", "c6.example", "c7.example"}
	for _, domain := range domains {
		analyses[domain] = siteWithScores(domain, 40, 40, 40)
	}
	source := &fakeSource{analyses: analyses}

	result, err := NewComparator(source, 0).Compare(context.Background(), "primary.example", domains)
	require.NoError(t, err)

	assert.Len(t, result.Competitors, 5)
	assert.NotContains(t, result.Competitors, "c6.example")
	assert.NotContains(t, result.Competitors, "c7.example")
	assert.Empty(t, result.Skipped)
	assert.NotContains(t, source.calls, "c6.example")
	assert.NotContains(t, source.calls, "c7.example")
}

func TestCompare_InsightsAndRecommendations(t *testing.T) {
	source := &fakeSource{
		analyses: map[string]*types.SiteAnalysis{
			"primary.example": siteWithScores("primary.example", 70, 40, 30),
			"a.example":       siteWithScores("a.example", 50, 60, 55),
			"b.example":       siteWithScores("b.example", 60, 58, 80),
		},
	}

	result, err := NewComparator(source, 0).Compare(context.Background(), "primary.example", []string{"a.example", "b.example"})
	require.NoError(t, err)

	assert.Equal(t, types.AIReadinessComparison{
		YourScore:         30,
		CompetitorAverage: 67.5,
		BestCompetitor:    80,
		Performance:       "below average",
	}, result.AIComparison)

	require.Len(t, result.Insights, 7)
	assert.Equal(t, types.InsightAIReadiness, result.Insights[0].Type)
	assert.Equal(t, "AI readiness below average (30 vs 67.5)", result.Insights[0].Message)
	assert.InDelta(t, -37.5, result.Insights[0].Delta, 1e-9)

	assert.Equal(t, types.InsightContentGap, result.Insights[1].Type)
	assert.Equal(t, "Content depth below competitor average (40 vs 59.0)", result.Insights[1].Message)

	assert.Equal(t, types.InsightTechnicalAdvantage, result.Insights[2].Type)
	assert.Equal(t, "Technical SEO above average (70 vs 55.0)", result.Insights[2].Message)

	// Opportunities follow competitor input order, AI check before content.
	assert.Equal(t, "AI optimization: a.example scores significantly higher (55 vs 30)", result.Insights[3].Message)
	assert.Equal(t, "a.example", result.Insights[3].Competitor)
	assert.Equal(t, "Content strategy: Learn from a.example's content approach", result.Insights[4].Message)
	assert.Equal(t, "AI optimization: b.example scores significantly higher (80 vs 30)", result.Insights[5].Message)
	assert.Equal(t, "Content strategy: Learn from b.example's content approach", result.Insights[6].Message)

	require.Len(t, result.Recommendations, 5)
	assert.Equal(t, "Improve AI Search Readiness", result.Recommendations[0].Title)
	assert.Equal(t, types.PriorityHigh, result.Recommendations[0].Priority)
	assert.Equal(t, "Your AI score (30) is below the competitor average. Focus on FAQ content and structured data.", result.Recommendations[0].Description)
	assert.Equal(t, "Address Content Depth Gaps", result.Recommendations[1].Title)

	// Four opportunity insights exist but only the top three become
	// recommendations.
	for i, wantDescription := range []string{
		"AI optimization: a.example scores significantly higher (55 vs 30)",
		"Content strategy: Learn from a.example's content approach",
		"AI optimization: b.example scores significantly higher (80 vs 30)",
	} {
		rec := result.Recommendations[2+i]
		assert.Equal(t, "Competitive Gap Analysis", rec.Title)
		assert.Equal(t, wantDescription, rec.Description)
	}
}

func TestCompare_TiesCountAsBelowAverage(t *testing.T) {
	source := &fakeSource{
		analyses: map[string]*types.SiteAnalysis{
			"primary.example": siteWithScores("primary.example", 50, 50, 50),
			"twin.example":    siteWithScores("twin.example", 50, 50, 50),
		},
	}

	result, err := NewComparator(source, 0).Compare(context.Background(), "primary.example", []string{"twin.example"})
	require.NoError(t, err)

	assert.Equal(t, "below average", result.AIComparison.Performance)
	assert.True(t, hasInsight(result.Insights, types.InsightTechnicalDisadvantage))
	assert.False(t, hasInsight(result.Insights, types.InsightTechnicalAdvantage))
	// Equal content depth is not a gap.
	assert.False(t, hasInsight(result.Insights, types.InsightContentGap))
}

func TestCompare_NoCompetitors(t *testing.T) {
	source := &fakeSource{
		analyses: map[string]*types.SiteAnalysis{"primary.example": siteWithScores("primary.example", 70, 60, 50)},
	}

	result, err := NewComparator(source, 0).Compare(context.Background(), "primary.example", nil)
	require.NoError(t, err)

	assert.Empty(t, result.Competitors)
	assert.Empty(t, result.Insights)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, types.AIReadinessComparison{}, result.AIComparison)
}

func TestCompare_BoundsConcurrency(t *testing.T) {
	analyses := map[string]*types.SiteAnalysis{"primary.example": siteWithScores("primary.example", 50, 50, 50)}
	domains := []string{"c1.example", "c2.example", "c3.example", "c4.example", "c5.example"}
	for _, domain := range domains {
		analyses[domain] = siteWithScores(domain, 40, 40, 40)
	}
	source := &fakeSource{analyses: analyses, delay: 10 * time.Millisecond}

	_, err := NewComparator(source, 2).Compare(context.Background(), "primary.example", domains)
	require.NoError(t, err)

	assert.LessOrEqual(t, source.maxActive, int32(2))
}
