// Package types provides type definitions for structured data used throughout the seo-consultant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ReadabilityStats holds text statistics for a page's visible content.
// EaseScore follows the 0-100 reading-ease convention (higher = easier);
// Level is derived from it via fixed thresholds.
type ReadabilityStats struct {
	WordCount       int     `json:"word_count"`
	SentenceCount   int     `json:"sentence_count"`
	ParagraphCount  int     `json:"paragraph_count"`
	AvgWordsPerSent float64 `json:"avg_words_per_sentence"`
	AvgWordLength   float64 `json:"avg_word_length"`
	LongWordPercent float64 `json:"long_word_percent"`
	EaseScore       float64 `json:"ease_score"`
	Level           string  `json:"level"`
}

// KeywordStats summarizes keyword frequency in page text.
type KeywordStats struct {
	TopKeywords        []KeywordCount     `json:"top_keywords"`
	Density            map[string]float64 `json:"density"` // top-10 terms, percent of total words
	TotalWords         int                `json:"total_words"`
	UniqueWords        int                `json:"unique_words"`
	VocabularyRichness float64            `json:"vocabulary_richness"`
}

// KeywordCount is one keyword with its occurrence count.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
