package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectQuestions(t *testing.T) {
	text := `What is SEO? How does crawling work? Why do rankings change?
When should you audit? Where do backlinks come from? Who benefits most?
This sentence has no question. Bananas are yellow.`

	sample, total := DetectQuestions(text)

	assert.Equal(t, 6, total)
	require.Len(t, sample, MaxQuestionSample)
	assert.Equal(t, "What is SEO?", sample[0])
}

func TestDetectQuestions_NoInterrogative(t *testing.T) {
	// A question mark alone is not enough without an interrogative word
	sample, total := DetectQuestions("Bananas? Seriously?")
	assert.Empty(t, sample)
	assert.Equal(t, 0, total)
}

func TestDetectQuestions_MidSentenceInterrogative(t *testing.T) {
	sample, total := DetectQuestions("I keep wondering what the crawler actually does?")
	assert.Equal(t, 1, total)
	require.Len(t, sample, 1)
	assert.Equal(t, "what the crawler actually does?", sample[0])
}

func TestDetectQuestions_Empty(t *testing.T) {
	sample, total := DetectQuestions("")
	assert.Empty(t, sample)
	assert.Zero(t, total)
}

func TestFindFAQIndicators(t *testing.T) {
	text := "Visit our FAQ page. Frequently asked questions are below. The FAQ covers Q&A topics."

	indicators := FindFAQIndicators(text)

	assert.Equal(t, []string{"faq", "frequently asked", "q&a"}, indicators)
}

func TestFindFAQIndicators_None(t *testing.T) {
	assert.Nil(t, FindFAQIndicators("No matching vocabulary here."))
}

func TestCountAnswerPatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"none", "Plain prose without signals.", 0},
		{"single", "The answer is caching.", 1},
		{"several", "The answer is caching. In summary, cache. To summarize: cache. In conclusion, cache. Simply put, cache.", 5},
		{"case insensitive", "THE ANSWER IS yes.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountAnswerPatterns(tt.text))
		})
	}
}

func TestCountListPatterns(t *testing.T) {
	text := "1. Audit the site\n2. Fix the issues\n- bullet item\n* starred item\nFirst do this, then that. Finally, review."

	// Two numbered markers, two bullet markers, and the sequence words
	// "First", "then", "Finally".
	assert.Equal(t, 7, CountListPatterns(text))
}

func TestCountListPatterns_MarkersRequireLineStart(t *testing.T) {
	// A dash mid-line is not a list marker
	assert.Equal(t, 0, CountListPatterns("pre - post"))
	assert.Equal(t, 1, CountListPatterns("- post"))
}
