package scoring

import (
	"math"

	"github.com/jonathan/seo-consultant/internal/types"
)

// Site-level overall weights. These intentionally differ from the per-page
// overall formula below: the two are separate metrics at different
// granularities, not two renderings of one number.
const (
	siteContentWeight   = 0.40
	siteTechnicalWeight = 0.35
	siteAIWeight        = 0.25
)

// PageOverall computes the per-page overall score: a word-count band, an
// SEO-elements subtotal, and a quarter each of the AI-readiness and
// structure sub-scores. The parts sum to at most 100 by construction, so no
// extra clamp is applied.
func PageOverall(f *types.PageFeatures, aiScore, structureScore float64) float64 {
	var base float64
	switch {
	case f.WordCount >= 300 && f.WordCount <= 2500:
		base = 25
	case f.WordCount > 2500:
		base = 20
	case f.WordCount >= 100:
		base = 15
	default:
		base = 5
	}

	elements := 0.0
	if f.Title.Present() {
		elements += 8
	}
	if f.MetaDescription.Present() {
		elements += 8
	}
	if f.Headings.SingleH1() {
		elements += 9
	}

	return base + elements + aiScore/4 + structureScore/4
}

// SiteOverall computes the site-level overall score as a weighted average of
// three sub-scores, rounded to one decimal.
func SiteOverall(b types.ScoreBreakdown) float64 {
	score := b.ContentDepth*siteContentWeight +
		b.Technical*siteTechnicalWeight +
		b.AIReadiness*siteAIWeight
	return math.Round(score*10) / 10
}

// ComputePage scores a single page as a one-page site: content-depth
// aggregates collapse to the page's own counts.
func ComputePage(f *types.PageFeatures, loadTime float64) types.ScoreBreakdown {
	ai := AIReadinessScore(f)
	structure := StructureScore(f)

	return types.ScoreBreakdown{
		Technical:    TechnicalScore(f, loadTime),
		ContentDepth: ContentDepthScore(float64(f.WordCount), f.QuestionCount, f.Headings.TotalCount, 1),
		AIReadiness:  ai,
		Structure:    structure,
		PageOverall:  PageOverall(f, ai, structure),
	}
}
