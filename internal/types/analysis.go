// Package types provides type definitions for structured data used throughout the seo-consultant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SiteAnalysis is the immutable record produced by one site analysis call.
// Features, readability and scores come from the home page; Aggregates span
// every crawled page. A fresh analysis always produces a fresh record.
type SiteAnalysis struct {
	Domain             string            `json:"domain"`
	AnalyzedAt         time.Time         `json:"analyzed_at"`
	PagesCrawled       int               `json:"pages_crawled"`
	CMS                string            `json:"cms,omitempty"`
	HomePage           *PageFeatures     `json:"home_page"`
	Readability        *ReadabilityStats `json:"readability,omitempty"` // nil when content was blank
	Scores             ScoreBreakdown    `json:"scores"`
	Aggregates         SiteAggregates    `json:"aggregates"`
	Authority          AuthoritySignals  `json:"authority"`
	SiteOverall        float64           `json:"site_overall"`
	TechnicalIssues    []string          `json:"technical_issues,omitempty"`
	ContentSuggestions []string          `json:"content_suggestions,omitempty"`
}

// SiteAggregates are cross-page statistics over every crawled page.
type SiteAggregates struct {
	AvgLoadTime     float64 `json:"avg_load_time"`
	AvgWordsPerPage float64 `json:"avg_words_per_page"`
	TotalQuestions  int     `json:"total_questions"`
	TotalHeadings   int     `json:"total_headings"`
}

// AuthoritySignals are simulated authority estimates derived
// deterministically from the domain string. They are stable across runs for
// the same domain and carry no real-world meaning.
type AuthoritySignals struct {
	DomainAuthority  int `json:"domain_authority"`
	Backlinks        int `json:"backlinks"`
	ReferringDomains int `json:"referring_domains"`
	ContentFreshness int `json:"content_freshness"`
	SocialSignals    int `json:"social_signals"`
	BrandMentions    int `json:"brand_mentions"`
}
