package crawling

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// assetExtensions lists path suffixes that never lead to crawlable HTML.
var assetExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".css": true, ".js": true,
	".zip": true, ".gz": true, ".mp3": true, ".mp4": true, ".xml": true,
}

// ExtractLinks pulls every same-host page link out of htmlContent. Hrefs are
// resolved against baseURL, stripped of fragments and trailing slashes, and
// returned deduplicated in document order. Asset links and anything pointing
// off-host are dropped.
func ExtractLinks(htmlContent string, baseURL string) ([]string, error) {
	base, err := parseCrawlBase(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &LinkExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	var (
		seen  = make(map[string]struct{})
		links []string
	)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		target, ok := resolvePageLink(base, href)
		if !ok {
			return
		}
		if _, dup := seen[target]; dup {
			return
		}
		seen[target] = struct{}{}
		links = append(links, target)
	})
	return links, nil
}

// parseCrawlBase checks that baseURL is absolute enough to resolve relative
// hrefs against.
func parseCrawlBase(baseURL string) (*url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &LinkExtractionError{Message: "failed to parse base URL", Cause: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &LinkExtractionError{
			Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL),
		}
	}
	return base, nil
}

// resolvePageLink turns an href into a normalized absolute URL, or reports
// false for links the crawler has no business following.
func resolvePageLink(base *url.URL, href string) (string, bool) {
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	// Off-host links, mailto: and tel: all fail the host comparison.
	if abs.Host != base.Host {
		return "", false
	}
	if assetExtensions[strings.ToLower(path.Ext(abs.Path))] {
		return "", false
	}
	abs.Fragment = ""
	return strings.TrimSuffix(abs.String(), "/"), true
}
