// Package scoring turns extracted page features into the four heuristic
// sub-scores (technical, content-depth, AI-readiness, structure) and the two
// overall scores built on them. Every function here is pure: identical
// inputs always produce identical scores.
//
// The point tables are the product's observable behavior and are fixed.
// Adjusting any constant shifts every stored and compared score.
package scoring

import (
	"github.com/jonathan/seo-consultant/internal/types"
)

// Load-time point bands for the technical score, in seconds.
const (
	fastLoadThreshold     = 2.0
	moderateLoadThreshold = 4.0

	fastLoadPoints     = 25.0
	moderateLoadPoints = 15.0
	slowLoadPoints     = 5.0
)

// Point caps for repeated-element contributions.
const (
	technicalSchemaCap = 20.0
	contentQuestionCap = 30.0
	contentHeadingCap  = 20.0
	contentPageCap     = 10.0
	aiQuestionCap      = 30.0
	aiSchemaCap        = 25.0
	aiAnswerCap        = 15.0
	aiListCap          = 10.0
)

// TechnicalScore computes the technical sub-score for one page: load speed,
// presence of title and meta description, schema markup, H1 discipline, and
// heading coverage. Clamped to [0,100].
func TechnicalScore(f *types.PageFeatures, loadTime float64) float64 {
	score := 0.0

	switch {
	case loadTime < fastLoadThreshold:
		score += fastLoadPoints
	case loadTime < moderateLoadThreshold:
		score += moderateLoadPoints
	default:
		score += slowLoadPoints
	}

	if f.Title.Present() {
		score += 15
	}
	if f.MetaDescription.Present() {
		score += 15
	}

	score += capped(float64(f.Schema.Count)*5, technicalSchemaCap)

	if f.Headings.SingleH1() {
		score += 15
	} else if f.Headings.MultipleH1 {
		score += 5
	}

	if f.Headings.TotalCount >= 3 {
		score += 10
	}

	return clampScore(score)
}

// ContentDepthScore computes the content-depth sub-score from cross-page
// aggregates: average words per page, total questions, total headings, and
// page count. Clamped to [0,100].
func ContentDepthScore(avgWordsPerPage float64, questions, headings, pages int) float64 {
	score := 0.0

	switch {
	case avgWordsPerPage >= 1500:
		score += 40
	case avgWordsPerPage >= 800:
		score += 30
	case avgWordsPerPage >= 300:
		score += 20
	default:
		score += 10
	}

	score += capped(float64(questions)*3, contentQuestionCap)
	score += capped(float64(headings)*2, contentHeadingCap)
	score += capped(float64(pages)*2, contentPageCap)

	return clampScore(score)
}

// AIReadinessScore computes the AI-readiness sub-score: how well the page's
// content suits being cited by generative AI systems. Q&A structure, FAQ
// signals, schema markup, direct-answer phrasing, and list patterns all
// contribute. Clamped to [0,100].
func AIReadinessScore(f *types.PageFeatures) float64 {
	score := 0.0

	score += capped(float64(f.QuestionCount)*5, aiQuestionCap)

	if len(f.FAQIndicators) > 0 {
		score += 20
	}

	score += capped(float64(f.Schema.Count)*8, aiSchemaCap)
	score += capped(float64(f.AnswerPatterns)*3, aiAnswerCap)
	score += capped(float64(f.ListPatterns)*2, aiListCap)

	return clampScore(score)
}

// StructureScore computes the structure sub-score: heading discipline,
// navigation markers, and content sectioning. The +20 bonus applies only
// when the running subtotal reaches 60 with at least five headings.
// Clamped to [0,100].
func StructureScore(f *types.PageFeatures) float64 {
	score := 0.0

	if f.Headings.SingleH1() {
		score += 15
	}
	if len(f.Headings.HierarchyIssues) == 0 {
		score += 10
	}
	if f.Headings.TotalCount >= 3 {
		score += 15
	}
	if f.HasTOC {
		score += 20
	}

	if f.ContentSections >= 3 {
		score += 20
	} else if f.ContentSections >= 1 {
		score += 10
	}

	if score >= 60 && f.Headings.TotalCount >= 5 {
		score += 20
	}

	return clampScore(score)
}

func capped(points, limit float64) float64 {
	if points > limit {
		return limit
	}
	return points
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
