// Package crawling discovers and fetches the pages of a site that feed the
// SEO analyzer: the homepage, sitemap-declared URLs and same-host links.
package crawling

import "fmt"

// describe joins the parts of a crawl-stage error, dropping a nil cause.
func describe(scope, message string, cause error) string {
	if cause != nil {
		return fmt.Sprintf("%s: %s: %v", scope, message, cause)
	}
	return fmt.Sprintf("%s: %s", scope, message)
}

// CrawlError is a failure while crawling a site, tied to the URL that
// caused it.
type CrawlError struct {
	URL     string
	Message string
	Cause   error
}

func (e *CrawlError) Error() string {
	return describe("crawl error for "+e.URL, e.Message, e.Cause)
}

func (e *CrawlError) Unwrap() error { return e.Cause }

// LinkExtractionError is a failure to pull links out of fetched HTML.
type LinkExtractionError struct {
	Message string
	Cause   error
}

func (e *LinkExtractionError) Error() string {
	return describe("link extraction error", e.Message, e.Cause)
}

func (e *LinkExtractionError) Unwrap() error { return e.Cause }

// SitemapError is a failure to fetch or parse an XML sitemap.
type SitemapError struct {
	URL     string
	Message string
	Cause   error
}

func (e *SitemapError) Error() string {
	return describe("sitemap error for "+e.URL, e.Message, e.Cause)
}

func (e *SitemapError) Unwrap() error { return e.Cause }
