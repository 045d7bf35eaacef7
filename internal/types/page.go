// Package types provides type definitions for structured data used throughout the seo-consultant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PageFeatures is the structured feature set extracted from one page's HTML.
// Extraction never fails: missing elements degrade to zero values, so every
// count here is >= 0.
type PageFeatures struct {
	URL             string       `json:"url"`
	Title           TitleInfo    `json:"title"`
	MetaDescription MetaInfo     `json:"meta_description"`
	Headings        HeadingInfo  `json:"headings"`
	Images          ImageStats   `json:"images"`
	Links           LinkStats    `json:"links"`
	Schema          SchemaInfo   `json:"schema"`
	WordCount       int          `json:"word_count"`
	QuestionCount   int          `json:"question_count"`
	Questions       []string     `json:"questions"` // bounded sample, first 5 matches
	FAQIndicators   []string     `json:"faq_indicators"`
	ListPatterns    int          `json:"list_patterns"`
	AnswerPatterns  int          `json:"answer_patterns"`
	HasTOC          bool         `json:"has_toc"`
	ContentSections int          `json:"content_sections"`
	HasBreadcrumbs  bool         `json:"has_breadcrumbs"`
	Entities        []Entity     `json:"entities,omitempty"`
	Keywords        *KeywordStats `json:"keywords,omitempty"`
}

// TitleInfo describes the page <title> element.
type TitleInfo struct {
	Text      string `json:"text"`
	Length    int    `json:"length"`
	WordCount int    `json:"word_count"`
}

// Present reports whether the page carries a non-empty title tag.
func (t TitleInfo) Present() bool {
	return t.Length > 0
}

// MetaInfo describes the meta description tag.
type MetaInfo struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// Present reports whether the page carries a non-empty meta description.
func (m MetaInfo) Present() bool {
	return m.Length > 0
}

// HeadingLevel holds the count and texts for one heading level.
type HeadingLevel struct {
	Count int      `json:"count"`
	Texts []string `json:"texts,omitempty"`
}

// HeadingInfo describes the page heading hierarchy.
// HasH1 is true iff at least one H1 exists; MultipleH1 iff more than one.
type HeadingInfo struct {
	H1              HeadingLevel `json:"h1"`
	H2              HeadingLevel `json:"h2"`
	H3              HeadingLevel `json:"h3"`
	H4              HeadingLevel `json:"h4"`
	H5              HeadingLevel `json:"h5"`
	H6              HeadingLevel `json:"h6"`
	HierarchyIssues []string     `json:"hierarchy_issues,omitempty"`
	HasH1           bool         `json:"has_h1"`
	MultipleH1      bool         `json:"multiple_h1"`
	TotalCount      int          `json:"total_count"`
}

// SingleH1 reports whether the page has exactly one H1.
func (h HeadingInfo) SingleH1() bool {
	return h.H1.Count == 1
}

// ImageStats holds image alt-text coverage counts.
type ImageStats struct {
	Total      int `json:"total"`
	WithAlt    int `json:"with_alt"`
	WithoutAlt int `json:"without_alt"`
}

// LinkStats holds internal/external link counts.
type LinkStats struct {
	Internal int `json:"internal"`
	External int `json:"external"`
}

// SchemaInfo describes structured-data (JSON-LD) blocks found on the page.
type SchemaInfo struct {
	Count        int      `json:"count"`
	Payloads     []string `json:"payloads,omitempty"`
	HasFAQSchema bool     `json:"has_faq_schema"`
	HasQASchema  bool     `json:"has_qa_schema"`
}

// Entity is a named entity extracted from page text by an optional NLP
// collaborator. When no extractor is configured the list is simply empty.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// CrawledPage is one fetched page handed to the site analyzer: the raw HTML,
// its URL, the observed load time in seconds, and the HTTP status.
type CrawledPage struct {
	URL        string  `json:"url"`
	HTML       string  `json:"-"`
	LoadTime   float64 `json:"load_time"`
	StatusCode int     `json:"status_code"`
}
