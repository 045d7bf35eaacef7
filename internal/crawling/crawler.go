package crawling

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/seo-consultant/internal/fetch"
	"github.com/jonathan/seo-consultant/internal/types"
)

const (
	// MaxPagesLimit is the hard maximum number of pages to crawl
	MaxPagesLimit = 15
	// DefaultMaxPages is used when no page budget is given
	DefaultMaxPages = 10
	// DefaultRateLimitDelay is the delay between HTTP requests
	DefaultRateLimitDelay = 1 * time.Second

	// maxLinksPerPage bounds how many new links one page may add to the
	// frontier, so a link-heavy homepage does not starve deeper pages.
	maxLinksPerPage = 5
	// maxSitemapSeeds bounds how many sitemap URLs seed the frontier.
	maxSitemapSeeds = 30
)

// Options configures a site crawl.
type Options struct {
	MaxPages       int
	Delay          time.Duration
	DisableSitemap bool
	// BrowserFallback re-renders a thin homepage in headless Chrome.
	// Off by default; it needs a local browser.
	BrowserFallback bool
	BrowserTimeout  time.Duration
}

// DefaultOptions returns the crawl defaults.
func DefaultOptions() *Options {
	return &Options{
		MaxPages:       DefaultMaxPages,
		Delay:          DefaultRateLimitDelay,
		BrowserTimeout: 30 * time.Second,
	}
}

// Crawler walks one site breadth-first from its homepage, reusing a shared
// page cache so a domain audited twice in a session is fetched once.
type Crawler struct {
	fetcher *fetch.CachedFetcher
	opts    Options
}

// NewCrawler creates a crawler over the given fetcher. A nil opts uses
// DefaultOptions.
func NewCrawler(fetcher *fetch.CachedFetcher, opts *Options) *Crawler {
	if opts == nil {
		opts = DefaultOptions()
	}
	resolved := *opts
	if resolved.MaxPages < 1 {
		resolved.MaxPages = DefaultMaxPages
	}
	if resolved.MaxPages > MaxPagesLimit {
		resolved.MaxPages = MaxPagesLimit
	}
	if resolved.BrowserTimeout <= 0 {
		resolved.BrowserTimeout = 30 * time.Second
	}
	return &Crawler{fetcher: fetcher, opts: resolved}
}

// Crawl fetches up to MaxPages pages of a site and returns them with the
// homepage first, which is the order the analyzer expects. The frontier is
// seeded from the site's sitemaps when present, then from same-host links
// on each crawled page. Pages that fail to fetch are skipped; a homepage
// failure aborts the crawl.
func (c *Crawler) Crawl(ctx context.Context, domain string) ([]types.CrawledPage, error) {
	homeURL, err := normalizeStartURL(domain)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{homeURL: true}

	home, err := c.fetcher.Fetch(ctx, homeURL)
	if err != nil {
		return nil, &CrawlError{
			URL:     homeURL,
			Message: "failed to fetch homepage",
			Cause:   err,
		}
	}

	homeHTML := home.HTML
	if c.opts.BrowserFallback && fetch.ShouldUseBrowser(home.Text) {
		if rendered, err := fetch.WithBrowser(ctx, homeURL, c.opts.BrowserTimeout, false); err == nil {
			homeHTML = rendered
		}
		// On browser failure the static HTML still stands
	}

	pages := []types.CrawledPage{{
		URL:        homeURL,
		HTML:       homeHTML,
		LoadTime:   home.LoadTime,
		StatusCode: home.StatusCode,
	}}

	frontier := make([]string, 0)
	if !c.opts.DisableSitemap {
		frontier = append(frontier, CollectSitemapURLs(ctx, homeURL, maxSitemapSeeds)...)
	}
	if links, err := ExtractLinks(homeHTML, homeURL); err == nil {
		frontier = appendFrontier(frontier, links, visited, maxLinksPerPage)
	}

	for len(frontier) > 0 && len(pages) < c.opts.MaxPages {
		next := frontier[0]
		frontier = frontier[1:]
		if visited[next] {
			continue
		}
		visited[next] = true

		result, err := c.fetcher.Fetch(ctx, next)
		if err != nil {
			// Skip pages that fail; the crawl carries on
			continue
		}

		pages = append(pages, types.CrawledPage{
			URL:        next,
			HTML:       result.HTML,
			LoadTime:   result.LoadTime,
			StatusCode: result.StatusCode,
		})

		if links, err := ExtractLinks(result.HTML, next); err == nil {
			frontier = appendFrontier(frontier, links, visited, maxLinksPerPage)
		}

		// Politeness delay, only after real network fetches
		if !result.FromCache && c.opts.Delay > 0 && len(frontier) > 0 && len(pages) < c.opts.MaxPages {
			time.Sleep(c.opts.Delay)
		}
	}

	return pages, nil
}

// appendFrontier adds up to limit unvisited links to the frontier.
func appendFrontier(frontier, links []string, visited map[string]bool, limit int) []string {
	added := 0
	for _, link := range links {
		if added >= limit {
			break
		}
		if visited[link] {
			continue
		}
		frontier = append(frontier, link)
		added++
	}
	return frontier
}

// normalizeStartURL turns a bare domain into a crawlable homepage URL.
func normalizeStartURL(domain string) (string, error) {
	trimmed := strings.TrimSpace(domain)
	if trimmed == "" {
		return "", &CrawlError{URL: domain, Message: "no domain provided"}
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return "", &CrawlError{
			URL:     domain,
			Message: "invalid domain",
			Cause:   err,
		}
	}
	return strings.TrimSuffix(trimmed, "/"), nil
}
