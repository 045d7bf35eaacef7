package readability

import "strings"

// CountSyllables estimates the syllable count of an English word by counting
// vowel groups, with a silent-e adjustment. Every word counts as at least
// one syllable. This is a heuristic: the reading-ease formula treats the
// syllable metric as pluggable, and vowel-group counting is the standard
// approximation.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return r < 'a' || r > 'z'
	}))
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	// Trailing silent e: "make" is one syllable, not two
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
