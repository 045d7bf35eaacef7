package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/seo-consultant/internal/types"
)

func TestTechnicalScore_SparsePageWithFastLoad(t *testing.T) {
	// No title, no meta, no H1, no schema: only load time and the
	// heading-count threshold contribute. 25 + 10 = 35.
	f := &types.PageFeatures{
		Headings: types.HeadingInfo{
			H2:         types.HeadingLevel{Count: 4},
			TotalCount: 4,
		},
	}

	assert.Equal(t, 35.0, TechnicalScore(f, 1.5))
}

func TestTechnicalScore_LoadTimeBands(t *testing.T) {
	f := &types.PageFeatures{}

	tests := []struct {
		name     string
		loadTime float64
		want     float64
	}{
		{"fast", 1.0, 25},
		{"just under fast threshold", 1.99, 25},
		{"moderate", 2.0, 15},
		{"just under moderate threshold", 3.99, 15},
		{"slow", 4.0, 5},
		{"very slow", 12.0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TechnicalScore(f, tt.loadTime))
		})
	}
}

func TestTechnicalScore_SchemaCap(t *testing.T) {
	f := &types.PageFeatures{
		Schema: types.SchemaInfo{Count: 7},
	}

	// 7 schemas would be 35 points uncapped; the cap holds it at 20.
	assert.Equal(t, 5.0+20.0, TechnicalScore(f, 10.0))
}

func TestTechnicalScore_H1Contributions(t *testing.T) {
	tests := []struct {
		name    string
		h1Count int
		want    float64
	}{
		{"no H1", 0, 5},
		{"single H1", 1, 5 + 15},
		{"multiple H1s", 3, 5 + 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &types.PageFeatures{
				Headings: types.HeadingInfo{
					H1:         types.HeadingLevel{Count: tt.h1Count},
					MultipleH1: tt.h1Count > 1,
					TotalCount: tt.h1Count,
				},
			}
			assert.Equal(t, tt.want, TechnicalScore(f, 5.0))
		})
	}
}

func TestTechnicalScore_FullPageReaches100(t *testing.T) {
	f := &types.PageFeatures{
		Title:           types.TitleInfo{Text: "Title", Length: 5},
		MetaDescription: types.MetaInfo{Text: "Desc", Length: 4},
		Schema:          types.SchemaInfo{Count: 4},
		Headings: types.HeadingInfo{
			H1:         types.HeadingLevel{Count: 1},
			H2:         types.HeadingLevel{Count: 4},
			TotalCount: 5,
		},
	}

	// 25 + 15 + 15 + 20 + 15 + 10 = 100
	assert.Equal(t, 100.0, TechnicalScore(f, 1.0))
}

func TestContentDepthScore_WordBands(t *testing.T) {
	tests := []struct {
		name     string
		avgWords float64
		want     float64
	}{
		{"rich content", 1500, 40},
		{"substantial content", 800, 30},
		{"moderate content", 300, 20},
		{"thin content", 120, 10},
		{"empty", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Isolate the word band: no questions, headings, or page points
			assert.Equal(t, tt.want, ContentDepthScore(tt.avgWords, 0, 0, 0))
		})
	}
}

func TestContentDepthScore_Caps(t *testing.T) {
	// 20 questions (60 uncapped -> 30), 15 headings (30 -> 20),
	// 9 pages (18 -> 10): word band 10 + 30 + 20 + 10 = 70.
	assert.Equal(t, 70.0, ContentDepthScore(0, 20, 15, 9))
}

func TestContentDepthScore_Clamp(t *testing.T) {
	score := ContentDepthScore(2000, 100, 100, 100)
	assert.Equal(t, 100.0, score)
}

func TestAIReadinessScore_MixedSignals(t *testing.T) {
	// 6 questions (30, capped), FAQ present (20), 2 schemas (16),
	// no answer patterns, 3 list patterns (6) = 72.
	f := &types.PageFeatures{
		QuestionCount: 6,
		FAQIndicators: []string{"faq"},
		Schema:        types.SchemaInfo{Count: 2},
		ListPatterns:  3,
	}

	assert.Equal(t, 72.0, AIReadinessScore(f))
}

func TestAIReadinessScore_AllCaps(t *testing.T) {
	f := &types.PageFeatures{
		QuestionCount:  50,
		FAQIndicators:  []string{"faq", "q&a"},
		Schema:         types.SchemaInfo{Count: 10},
		AnswerPatterns: 20,
		ListPatterns:   30,
	}

	// 30 + 20 + 25 + 15 + 10 = 100
	assert.Equal(t, 100.0, AIReadinessScore(f))
}

func TestAIReadinessScore_EmptyPage(t *testing.T) {
	assert.Equal(t, 0.0, AIReadinessScore(&types.PageFeatures{}))
}

func TestStructureScore_WellStructuredPage(t *testing.T) {
	// Single H1, no hierarchy issues, 6 headings, TOC, 3 sections:
	// 15 + 10 + 15 + 20 + 20 = 80, then the bonus fires (80 >= 60 with
	// >= 5 headings) and the clamp holds the result at 100.
	f := &types.PageFeatures{
		Headings: types.HeadingInfo{
			H1:         types.HeadingLevel{Count: 1},
			H2:         types.HeadingLevel{Count: 5},
			TotalCount: 6,
		},
		HasTOC:          true,
		ContentSections: 3,
	}

	assert.Equal(t, 100.0, StructureScore(f))
}

func TestStructureScore_BonusAtExactThreshold(t *testing.T) {
	// Without a TOC: 15 + 10 + 15 + 20 = 60 exactly, headings >= 5,
	// so the bonus lands the score at 80.
	f := &types.PageFeatures{
		Headings: types.HeadingInfo{
			H1:         types.HeadingLevel{Count: 1},
			H2:         types.HeadingLevel{Count: 5},
			TotalCount: 6,
		},
		ContentSections: 3,
	}

	assert.Equal(t, 80.0, StructureScore(f))
}

func TestStructureScore_BonusRequiresBothConditions(t *testing.T) {
	t.Run("subtotal 60 but too few headings", func(t *testing.T) {
		f := &types.PageFeatures{
			Headings: types.HeadingInfo{
				H1:         types.HeadingLevel{Count: 1},
				H2:         types.HeadingLevel{Count: 2},
				TotalCount: 3,
			},
			ContentSections: 3,
		}
		// 15 + 10 + 15 + 20 = 60, but only 3 headings: no bonus
		assert.Equal(t, 60.0, StructureScore(f))
	})

	t.Run("enough headings but subtotal below 60", func(t *testing.T) {
		f := &types.PageFeatures{
			Headings: types.HeadingInfo{
				H1:         types.HeadingLevel{Count: 2},
				H2:         types.HeadingLevel{Count: 4},
				TotalCount: 6,
				MultipleH1: true,
			},
			ContentSections: 1,
		}
		// No single H1 (0), no issues (10), headings (15), no TOC,
		// one section (10) = 35: no bonus
		assert.Equal(t, 35.0, StructureScore(f))
	})
}

func TestStructureScore_SectionTiers(t *testing.T) {
	base := types.HeadingInfo{} // zero issues contributes 10

	tests := []struct {
		name     string
		sections int
		want     float64
	}{
		{"no sections", 0, 10},
		{"one section", 1, 20},
		{"two sections", 2, 20},
		{"three sections", 3, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &types.PageFeatures{Headings: base, ContentSections: tt.sections}
			assert.Equal(t, tt.want, StructureScore(f))
		})
	}
}

func TestSubScores_AlwaysWithinBounds(t *testing.T) {
	extremes := []*types.PageFeatures{
		{},
		{
			Title:           types.TitleInfo{Text: "T", Length: 1},
			MetaDescription: types.MetaInfo{Text: "M", Length: 1},
			Headings: types.HeadingInfo{
				H1:         types.HeadingLevel{Count: 1},
				H2:         types.HeadingLevel{Count: 50},
				TotalCount: 51,
			},
			Schema:          types.SchemaInfo{Count: 100},
			QuestionCount:   1000,
			FAQIndicators:   []string{"faq"},
			AnswerPatterns:  1000,
			ListPatterns:    1000,
			HasTOC:          true,
			ContentSections: 100,
			WordCount:       100000,
		},
	}

	for _, f := range extremes {
		for _, loadTime := range []float64{0, 1.9, 3.9, 100} {
			b := ComputePage(f, loadTime)
			for name, score := range map[string]float64{
				"technical":     b.Technical,
				"content_depth": b.ContentDepth,
				"ai_readiness":  b.AIReadiness,
				"structure":     b.Structure,
				"page_overall":  b.PageOverall,
			} {
				assert.GreaterOrEqual(t, score, 0.0, name)
				assert.LessOrEqual(t, score, 100.0, name)
			}
		}
	}
}
