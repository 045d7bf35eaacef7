// Package readability computes text statistics for page content: word,
// sentence and paragraph counts, a Flesch reading-ease score, and a reading
// level derived from fixed thresholds.
package readability

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/seo-consultant/internal/types"
)

// Reading level thresholds, inclusive on the lower bound of each band.
const (
	levelVeryEasy        = 90.0
	levelEasy            = 80.0
	levelFairlyEasy      = 70.0
	levelStandard        = 60.0
	levelFairlyDifficult = 50.0
	levelDifficult       = 30.0
)

const longWordLength = 6 // words longer than this count as "long"

var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
)

// Analyze computes readability statistics for text. Blank or whitespace-only
// input returns an EmptyContentError; callers treat that as "analysis
// unavailable", not as a failure of the page itself.
func Analyze(text string) (*types.ReadabilityStats, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyContentError{}
	}

	words := strings.Fields(text)
	wordCount := len(words)

	sentences := splitSentences(text)
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}

	paragraphCount := countParagraphs(text)

	totalChars := 0
	longWords := 0
	syllables := 0
	for _, w := range words {
		totalChars += len(w)
		if len(w) > longWordLength {
			longWords++
		}
		syllables += CountSyllables(w)
	}

	avgWordsPerSent := float64(wordCount) / float64(sentenceCount)
	avgWordLength := float64(totalChars) / float64(wordCount)
	longWordPct := float64(longWords) / float64(wordCount) * 100

	ease := fleschReadingEase(wordCount, sentenceCount, syllables)

	return &types.ReadabilityStats{
		WordCount:       wordCount,
		SentenceCount:   sentenceCount,
		ParagraphCount:  paragraphCount,
		AvgWordsPerSent: round1(avgWordsPerSent),
		AvgWordLength:   round1(avgWordLength),
		LongWordPercent: round1(longWordPct),
		EaseScore:       round1(ease),
		Level:           Level(ease),
	}, nil
}

// Level maps a reading-ease score to its categorical label.
func Level(ease float64) string {
	switch {
	case ease >= levelVeryEasy:
		return "Very Easy"
	case ease >= levelEasy:
		return "Easy"
	case ease >= levelFairlyEasy:
		return "Fairly Easy"
	case ease >= levelStandard:
		return "Standard"
	case ease >= levelFairlyDifficult:
		return "Fairly Difficult"
	case ease >= levelDifficult:
		return "Difficult"
	default:
		return "Very Difficult"
	}
}

// fleschReadingEase applies the standard Flesch formula and clamps the
// result to [0,100].
func fleschReadingEase(words, sentences, syllables int) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	score := 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))
	return math.Max(0, math.Min(100, score))
}

func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, strings.TrimSpace(p))
		}
	}
	return sentences
}

func countParagraphs(text string) int {
	parts := paragraphSplitRe.Split(strings.TrimSpace(text), -1)
	count := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
