package analysis

import "github.com/jonathan/seo-consultant/internal/types"

// Technical and content thresholds for issue detection.
const (
	maxTitleLength    = 60
	maxMetaDescLength = 160
	thinContentWords  = 300
)

// TechnicalIssues lists on-page technical SEO problems found on the home
// page. A clean page yields an empty list.
func TechnicalIssues(features *types.PageFeatures) []string {
	var issues []string

	if !features.Title.Present() {
		issues = append(issues, "Missing title tag")
	} else if features.Title.Length > maxTitleLength {
		issues = append(issues, "Title tag too long (>60 characters)")
	}

	if !features.MetaDescription.Present() {
		issues = append(issues, "Missing meta description")
	} else if features.MetaDescription.Length > maxMetaDescLength {
		issues = append(issues, "Meta description too long (>160 characters)")
	}

	switch {
	case !features.Headings.HasH1:
		issues = append(issues, "No H1 tag found")
	case features.Headings.MultipleH1:
		issues = append(issues, "Multiple H1 tags found")
	}

	return issues
}

// ContentSuggestions lists content improvements aimed at AI citation
// potential.
func ContentSuggestions(features *types.PageFeatures) []string {
	var suggestions []string

	if features.WordCount < thinContentWords {
		suggestions = append(suggestions, "Content appears thin (<300 words)")
	}
	if features.QuestionCount == 0 {
		suggestions = append(suggestions, "Consider adding FAQ section for better AI citation potential")
	}
	if features.Schema.Count == 0 {
		suggestions = append(suggestions, "Add structured data (Schema.org) for better AI understanding")
	}

	return suggestions
}
