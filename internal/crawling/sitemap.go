package crawling

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	"github.com/jonathan/seo-consultant/internal/fetch"
)

// maxSitemapDepth bounds recursion through sitemap index files.
const maxSitemapDepth = 2

// commonSitemapPaths are checked in addition to robots.txt declarations.
// wp-sitemap.xml is the WordPress core default.
var commonSitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/wp-sitemap.xml",
}

// SitemapEntry is one URL record from an XML sitemap.
type SitemapEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name       `xml:"urlset"`
	URLs    []SitemapEntry `xml:"url"`
}

type sitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	Sitemaps []sitemapChild `xml:"sitemap"`
}

type sitemapChild struct {
	Loc string `xml:"loc"`
}

// DiscoverSitemaps returns candidate sitemap URLs for a site: robots.txt
// Sitemap declarations first, then the common well-known paths. Candidates
// are not verified; ParseSitemap skips the ones that do not resolve.
func DiscoverSitemaps(ctx context.Context, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil
	}

	seen := make(map[string]bool)
	candidates := make([]string, 0, len(commonSitemapPaths)+1)

	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if result, err := fetch.URL(ctx, robotsURL, nil); err == nil {
		for _, line := range strings.Split(result.HTML, "\n") {
			line = strings.TrimSpace(line)
			if len(line) < 8 || !strings.EqualFold(line[:8], "sitemap:") {
				continue
			}
			declared := strings.TrimSpace(line[8:])
			if declared != "" && !seen[declared] {
				seen[declared] = true
				candidates = append(candidates, declared)
			}
		}
	}

	for _, p := range commonSitemapPaths {
		candidate := base.ResolveReference(&url.URL{Path: p}).String()
		if !seen[candidate] {
			seen[candidate] = true
			candidates = append(candidates, candidate)
		}
	}

	return candidates
}

// ParseSitemap fetches and parses one XML sitemap. Index files are followed
// recursively up to maxSitemapDepth; child sitemaps that fail to fetch or
// parse are skipped.
func ParseSitemap(ctx context.Context, sitemapURL string) ([]SitemapEntry, error) {
	return parseSitemap(ctx, sitemapURL, 0)
}

func parseSitemap(ctx context.Context, sitemapURL string, depth int) ([]SitemapEntry, error) {
	if depth > maxSitemapDepth {
		return nil, nil
	}

	result, err := fetch.URL(ctx, sitemapURL, nil)
	if err != nil {
		return nil, &SitemapError{
			URL:     sitemapURL,
			Message: "failed to fetch sitemap",
			Cause:   err,
		}
	}

	data := []byte(result.HTML)

	var set urlSet
	if err := xml.Unmarshal(data, &set); err == nil {
		entries := make([]SitemapEntry, 0, len(set.URLs))
		for _, entry := range set.URLs {
			entry.Loc = strings.TrimSpace(entry.Loc)
			if entry.Loc == "" {
				continue
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	var index sitemapIndex
	if err := xml.Unmarshal(data, &index); err == nil {
		var entries []SitemapEntry
		for _, child := range index.Sitemaps {
			childURL := strings.TrimSpace(child.Loc)
			if childURL == "" {
				continue
			}
			childEntries, err := parseSitemap(ctx, childURL, depth+1)
			if err != nil {
				continue
			}
			entries = append(entries, childEntries...)
		}
		return entries, nil
	}

	return nil, &SitemapError{
		URL:     sitemapURL,
		Message: "content is not a recognized sitemap format",
	}
}

// CollectSitemapURLs gathers up to limit same-host page URLs from every
// discovered sitemap, deduplicated in discovery order.
func CollectSitemapURLs(ctx context.Context, baseURL string, limit int) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil
	}

	seen := make(map[string]bool)
	urls := make([]string, 0)

	for _, sitemapURL := range DiscoverSitemaps(ctx, baseURL) {
		if len(urls) >= limit {
			break
		}
		entries, err := ParseSitemap(ctx, sitemapURL)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if len(urls) >= limit {
				break
			}
			parsed, err := url.Parse(entry.Loc)
			if err != nil || parsed.Host != base.Host {
				continue
			}
			parsed.Fragment = ""
			normalized := strings.TrimSuffix(parsed.String(), "/")
			if !seen[normalized] {
				seen[normalized] = true
				urls = append(urls, normalized)
			}
		}
	}

	return urls
}
