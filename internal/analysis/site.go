// Package analysis orchestrates feature extraction and scoring for a single
// site, producing one immutable SiteAnalysis record per call.
package analysis

import (
	"time"

	"github.com/jonathan/seo-consultant/internal/extraction"
	"github.com/jonathan/seo-consultant/internal/readability"
	"github.com/jonathan/seo-consultant/internal/scoring"
	"github.com/jonathan/seo-consultant/internal/types"
)

// Analyzer computes SiteAnalysis records from crawled pages. The zero value
// uses a default extractor; set Extractor to inject the optional entity
// collaborator.
type Analyzer struct {
	Extractor *extraction.Extractor
}

// NewAnalyzer returns an analyzer with a default extractor and no optional
// collaborators.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Extractor: extraction.NewExtractor()}
}

// Analyze builds the SiteAnalysis for domain from its crawled pages. The
// first page is treated as the home page: features, readability and the
// score breakdown come from it, while aggregates span every page. An empty
// page list returns NoPagesCrawledError.
//
// Analyze is deterministic: identical inputs produce identical records
// (timestamps aside), and authority signals depend only on the domain
// string.
func (a *Analyzer) Analyze(domain string, pages []types.CrawledPage) (*types.SiteAnalysis, error) {
	if len(pages) == 0 {
		return nil, &NoPagesCrawledError{Domain: domain}
	}

	extractor := a.Extractor
	if extractor == nil {
		extractor = extraction.NewExtractor()
	}

	home := pages[0]
	features := extractor.Extract(home.HTML, home.URL)

	// Blank home-page content leaves readability nil: "analysis
	// unavailable", not a failure.
	var stats *types.ReadabilityStats
	if s, err := readability.Analyze(extraction.VisibleText(home.HTML)); err == nil {
		stats = s
	}

	aggregates := aggregate(extractor, features, pages)

	breakdown := types.ScoreBreakdown{
		Technical:    scoring.TechnicalScore(features, aggregates.AvgLoadTime),
		ContentDepth: scoring.ContentDepthScore(aggregates.AvgWordsPerPage, aggregates.TotalQuestions, aggregates.TotalHeadings, len(pages)),
		AIReadiness:  scoring.AIReadinessScore(features),
		Structure:    scoring.StructureScore(features),
	}
	breakdown.PageOverall = scoring.PageOverall(features, breakdown.AIReadiness, breakdown.Structure)

	return &types.SiteAnalysis{
		Domain:             domain,
		AnalyzedAt:         time.Now().UTC(),
		PagesCrawled:       len(pages),
		HomePage:           features,
		Readability:        stats,
		Scores:             breakdown,
		Aggregates:         aggregates,
		Authority:          Signals(domain),
		SiteOverall:        scoring.SiteOverall(breakdown),
		TechnicalIssues:    TechnicalIssues(features),
		ContentSuggestions: ContentSuggestions(features),
	}, nil
}

// aggregate computes cross-page statistics. The home page's features are
// reused rather than re-extracted.
func aggregate(extractor *extraction.Extractor, home *types.PageFeatures, pages []types.CrawledPage) types.SiteAggregates {
	totalLoad := 0.0
	totalWords := 0
	totalQuestions := 0
	totalHeadings := 0

	for i, page := range pages {
		totalLoad += page.LoadTime

		features := home
		if i > 0 {
			features = extractor.Extract(page.HTML, page.URL)
		}
		totalWords += features.WordCount
		totalQuestions += features.QuestionCount
		totalHeadings += features.Headings.TotalCount
	}

	n := float64(len(pages))
	return types.SiteAggregates{
		AvgLoadTime:     totalLoad / n,
		AvgWordsPerPage: float64(totalWords) / n,
		TotalQuestions:  totalQuestions,
		TotalHeadings:   totalHeadings,
	}
}
