package extraction

import (
	"regexp"
	"strings"
)

// MaxQuestionSample caps how many detected question sentences are retained
// on the feature record. The question count is not capped.
const MaxQuestionSample = 5

// Pattern vocabularies for AI-readiness detection. These are fixed: scoring
// point tables are calibrated against them.
var (
	questionRe = regexp.MustCompile(`(?i)\b(?:what|how|why|when|where|who|which|can|could|should|will|would|is|are|do|does|did)\b[^.!?]*\?`)
	faqRe      = regexp.MustCompile(`(?i)\b(?:faq|frequently asked|common questions|q&a)\b`)
	answerRe   = regexp.MustCompile(`(?i)\b(?:the answer is|in summary|to summarize|in conclusion|simply put)\b`)
	listRe     = regexp.MustCompile(`(?im)(?:^\d+\.|^[•\-*]\s|first|second|third|next|then|finally)`)
)

// DetectQuestions finds question-style fragments: text ending in "?" that
// opens with an interrogative word. Returns a bounded sample plus the total
// match count.
func DetectQuestions(text string) ([]string, int) {
	matches := questionRe.FindAllString(text, -1)
	sample := make([]string, 0, MaxQuestionSample)
	for _, m := range matches {
		if len(sample) >= MaxQuestionSample {
			break
		}
		sample = append(sample, strings.TrimSpace(m))
	}
	return sample, len(matches)
}

// FindFAQIndicators returns the FAQ vocabulary phrases present in the text.
func FindFAQIndicators(text string) []string {
	matches := faqRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	indicators := make([]string, 0, len(matches))
	for _, m := range matches {
		key := strings.ToLower(m)
		if !seen[key] {
			seen[key] = true
			indicators = append(indicators, key)
		}
	}
	return indicators
}

// CountAnswerPatterns counts direct-answer phrasings ("the answer is",
// "in summary", ...) in the text.
func CountAnswerPatterns(text string) int {
	return len(answerRe.FindAllString(text, -1))
}

// CountListPatterns counts list and step markers: numbered or bulleted line
// starts plus ordinal sequence words anywhere in the text.
func CountListPatterns(text string) int {
	return len(listRe.FindAllString(text, -1))
}
