// Package comparison fans a site analyzer out across a primary domain and
// its competitors, then derives insights and recommendations from the score
// deltas.
package comparison

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/seo-consultant/internal/types"
)

const (
	// MaxCompetitors caps how many competitor domains one comparison
	// analyzes. Extra entries are dropped.
	MaxCompetitors = 5
	// DefaultConcurrency bounds simultaneous competitor analyses.
	DefaultConcurrency = 3
)

// SiteSource produces a full site analysis for one domain, typically by
// crawling it. Implementations must be safe for concurrent use.
type SiteSource interface {
	Analyze(ctx context.Context, domain string) (*types.SiteAnalysis, error)
}

// Comparator runs competitive comparisons against a SiteSource.
type Comparator struct {
	source      SiteSource
	concurrency int
}

// NewComparator creates a comparator. A non-positive concurrency falls back
// to DefaultConcurrency.
func NewComparator(source SiteSource, concurrency int) *Comparator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Comparator{source: source, concurrency: concurrency}
}

// Compare analyzes the primary domain and up to MaxCompetitors competitors,
// then derives insights and recommendations from the results. A primary
// analysis failure is fatal and surfaces as PrimaryAnalysisError. A
// competitor failure only records that competitor as skipped; its siblings
// keep running.
func (c *Comparator) Compare(ctx context.Context, primary string, competitors []string) (*types.ComparisonResult, error) {
	if len(competitors) > MaxCompetitors {
		competitors = competitors[:MaxCompetitors]
	}

	primaryAnalysis, err := c.source.Analyze(ctx, primary)
	if err != nil {
		return nil, &PrimaryAnalysisError{Domain: primary, Cause: err}
	}

	analyses := make(map[string]*types.SiteAnalysis, len(competitors))
	failures := make(map[string]string)
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, domain := range competitors {
		g.Go(func() error {
			analysis, err := c.source.Analyze(gCtx, domain)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[domain] = err.Error()
				return nil
			}
			analyses[domain] = analysis
			return nil
		})
	}
	// Workers isolate their failures, so Wait cannot return an error.
	_ = g.Wait()

	// Report skips in input order, not completion order.
	var skipped []types.SkippedCompetitor
	for _, domain := range competitors {
		if reason, ok := failures[domain]; ok {
			skipped = append(skipped, types.SkippedCompetitor{Domain: domain, Reason: reason})
		}
	}

	aiComparison, insights := buildInsights(primaryAnalysis, competitors, analyses)
	return &types.ComparisonResult{
		Primary:         primaryAnalysis,
		Competitors:     analyses,
		AIComparison:    aiComparison,
		Insights:        insights,
		Recommendations: buildRecommendations(aiComparison, insights),
		Skipped:         skipped,
		ComparedAt:      time.Now().UTC(),
	}, nil
}
