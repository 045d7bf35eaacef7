package extraction

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/seo-consultant/internal/types"
)

const (
	topKeywordCount = 20
	densityTermCount = 10
)

var wordRe = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// stopWords are excluded from keyword statistics.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"day": true, "get": true, "has": true, "him": true, "his": true,
	"how": true, "its": true, "may": true, "new": true, "now": true,
	"old": true, "see": true, "two": true, "who": true, "boy": true,
	"did": true, "man": true, "men": true, "put": true, "say": true,
	"she": true, "too": true, "use": true,
}

// AnalyzeKeywords computes keyword frequency statistics over page text:
// top terms, top-10 density percentages, and vocabulary richness. Ties in
// frequency order alphabetically so results are deterministic.
func AnalyzeKeywords(text string) *types.KeywordStats {
	words := wordRe.FindAllString(strings.ToLower(text), -1)

	freq := make(map[string]int)
	total := 0
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		freq[w]++
		total++
	}

	stats := &types.KeywordStats{
		TotalWords:  total,
		UniqueWords: len(freq),
		Density:     map[string]float64{},
	}
	if total == 0 {
		return stats
	}

	ranked := make([]types.KeywordCount, 0, len(freq))
	for w, c := range freq {
		ranked = append(ranked, types.KeywordCount{Word: w, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if len(ranked) > topKeywordCount {
		stats.TopKeywords = ranked[:topKeywordCount]
	} else {
		stats.TopKeywords = ranked
	}

	for i, kw := range ranked {
		if i >= densityTermCount {
			break
		}
		stats.Density[kw.Word] = math.Round(float64(kw.Count)/float64(total)*100*100) / 100
	}

	stats.VocabularyRichness = math.Round(float64(len(freq))/float64(total)*1000) / 1000
	return stats
}
