package analysis

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/jonathan/seo-consultant/internal/types"
)

// Signals derives simulated authority metrics from the domain string. The
// same domain always yields the same signals; real backlink providers can
// replace this without touching callers.
func Signals(domain string) types.AuthoritySignals {
	h := domainHash(domain)
	return types.AuthoritySignals{
		DomainAuthority:  int(math.Round(40 + float64(h%100)*0.6)),
		Backlinks:        int(h%10000) + 100,
		ReferringDomains: int(h%1000) + 50,
		ContentFreshness: int((h * 13) % 100),
		SocialSignals:    int(h%500) + 10,
		BrandMentions:    int(h%200) + 5,
	}
}

// domainHash maps a domain to a stable 64-bit value. Case is ignored so
// "Example.com" and "example.com" share signals.
func domainHash(domain string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(normalizeDomain(domain)))
	return h.Sum64()
}

// normalizeDomain folds the trivial spelling variants of a domain so hashes
// and cache keys agree.
func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
