package metrics

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/jonathan/seo-consultant/internal/types"
)

// AICitationMetrics describes how AI assistants cite the domain.
type AICitationMetrics struct {
	Count            int            `json:"count"`
	GrowthRate       float64        `json:"growth_rate"`
	TopCitingQueries []string       `json:"top_citing_queries,omitempty"`
	Platforms        map[string]int `json:"ai_platforms"`
}

// TrafficMetrics describes organic search traffic.
type TrafficMetrics struct {
	Sessions           int     `json:"sessions"`
	Pageviews          int     `json:"pageviews"`
	AvgSessionDuration int     `json:"avg_session_duration"`
	BounceRate         float64 `json:"bounce_rate"`
	ConversionRate     float64 `json:"conversion_rate"`
}

// RankingMetrics describes search ranking positions.
type RankingMetrics struct {
	AvgPosition      float64 `json:"avg_position"`
	KeywordsRanking  int     `json:"keywords_ranking"`
	Top10Keywords    int     `json:"top_10_keywords"`
	FeaturedSnippets int     `json:"featured_snippets"`
}

// TechnicalMetrics describes site health scores.
type TechnicalMetrics struct {
	PageSpeedScore       int `json:"page_speed_score"`
	CoreWebVitalsScore   int `json:"core_web_vitals_score"`
	MobileUsabilityScore int `json:"mobile_usability_score"`
	CrawlErrors          int `json:"crawl_errors"`
}

// ContentMetrics describes indexing and markup coverage.
type ContentMetrics struct {
	PagesIndexed           int     `json:"pages_indexed"`
	ContentFreshnessScore  int     `json:"content_freshness_score"`
	DuplicateContentIssues int     `json:"duplicate_content_issues"`
	SchemaMarkupCoverage   float64 `json:"schema_markup_coverage"`
}

// Sample is one observation of every tracked metric for a domain. Content
// metrics are reported but not persisted as a series.
type Sample struct {
	Domain      string            `json:"domain"`
	ObservedAt  time.Time         `json:"observed_at"`
	AICitations AICitationMetrics `json:"ai_citations"`
	Traffic     TrafficMetrics    `json:"organic_traffic"`
	Rankings    RankingMetrics    `json:"search_rankings"`
	Technical   TechnicalMetrics  `json:"technical_metrics"`
	Content     ContentMetrics    `json:"content_metrics"`
}

// Values flattens the sample to the four persisted metric series.
func (s Sample) Values() map[string]float64 {
	return map[string]float64{
		types.MetricAICitations:     float64(s.AICitations.Count),
		types.MetricOrganicSessions: float64(s.Traffic.Sessions),
		types.MetricAvgPosition:     s.Rankings.AvgPosition,
		types.MetricPageSpeed:       float64(s.Technical.PageSpeedScore),
	}
}

// Simulate derives plausible current metrics from the domain string and
// observation time. Identical inputs always produce identical samples; a
// real analytics or search-console integration would replace this.
func Simulate(domain string, at time.Time) Sample {
	base := sampleHash(domain)
	dateFactor := at.Day()

	return Sample{
		Domain:     domain,
		ObservedAt: at,
		AICitations: AICitationMetrics{
			Count:            int(base%100) + dateFactor,
			GrowthRate:       (float64(base%20) - 10) / 100,
			TopCitingQueries: sampleQueries(domain, base),
			Platforms: map[string]int{
				"chatgpt":    int(base%30) + 10,
				"claude":     int(base%25) + 8,
				"perplexity": int(base%20) + 5,
				"gemini":     int(base%15) + 3,
			},
		},
		Traffic: TrafficMetrics{
			Sessions:           int(base%10000) + 1000,
			Pageviews:          int(base%50000) + 5000,
			AvgSessionDuration: int(base%300) + 60,
			BounceRate:         (float64(base%40) + 30) / 100,
			ConversionRate:     (float64(base%5) + 1) / 100,
		},
		Rankings: RankingMetrics{
			AvgPosition:      math.Round((float64(base%50)+5)/5*10) / 10,
			KeywordsRanking:  int(base%500) + 50,
			Top10Keywords:    int(base%50) + 5,
			FeaturedSnippets: int(base%20) + 1,
		},
		Technical: TechnicalMetrics{
			PageSpeedScore:       int(base%30) + 70,
			CoreWebVitalsScore:   int(base%20) + 80,
			MobileUsabilityScore: int(base%15) + 85,
			CrawlErrors:          int(base % 10),
		},
		Content: ContentMetrics{
			PagesIndexed:           int(base%1000) + 100,
			ContentFreshnessScore:  int(base%30) + 70,
			DuplicateContentIssues: int(base % 5),
			SchemaMarkupCoverage:   (float64(base%80) + 20) / 100,
		},
	}
}

// sampleQueries picks up to three queries likely to cite the domain, keyed
// off its first label.
func sampleQueries(domain string, base uint64) []string {
	name := strings.Split(strings.TrimSpace(domain), ".")[0]
	candidates := []string{
		fmt.Sprintf("best practices for %s", name),
		fmt.Sprintf("how to use %s", name),
		fmt.Sprintf("%s tutorial", name),
		fmt.Sprintf("%s vs alternatives", name),
		fmt.Sprintf("%s pricing", name),
	}

	var selected []string
	for i, query := range candidates {
		if (base+uint64(i))%3 == 0 {
			selected = append(selected, query)
		}
	}
	if len(selected) > 3 {
		selected = selected[:3]
	}
	return selected
}

func sampleHash(domain string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(domain))))
	return h.Sum64()
}
