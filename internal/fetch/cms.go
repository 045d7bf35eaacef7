// Package fetch - cms.go provides CMS detection and CMS-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// CMS represents a known content management system.
type CMS string

const (
	// CMSWordPress is the WordPress platform
	CMSWordPress CMS = "wordpress"
	// CMSShopify is the Shopify platform
	CMSShopify CMS = "shopify"
	// CMSSquarespace is the Squarespace platform
	CMSSquarespace CMS = "squarespace"
	// CMSWix is the Wix platform
	CMSWix CMS = "wix"
	// CMSUnknown is an unrecognized platform
	CMSUnknown CMS = "unknown"
)

// DetectCMS identifies the content management system behind a page from its
// URL and markup. Host patterns are checked first, then asset and generator
// markers in the HTML.
func DetectCMS(urlStr, html string) CMS {
	if parsed, err := url.Parse(urlStr); err == nil {
		host := strings.ToLower(parsed.Host)

		if strings.Contains(host, "myshopify.com") {
			return CMSShopify
		}
		if strings.Contains(host, "wixsite.com") {
			return CMSWix
		}
		if strings.Contains(host, "squarespace.com") {
			return CMSSquarespace
		}
		if strings.Contains(host, "wordpress.com") {
			return CMSWordPress
		}
	}

	markup := strings.ToLower(html)

	if strings.Contains(markup, "wp-content") || strings.Contains(markup, "wp-includes") {
		return CMSWordPress
	}
	if strings.Contains(markup, "cdn.shopify.com") || strings.Contains(markup, "shopify.theme") {
		return CMSShopify
	}
	if strings.Contains(markup, "static1.squarespace.com") || strings.Contains(markup, `content="squarespace`) {
		return CMSSquarespace
	}
	if strings.Contains(markup, "wixstatic.com") || strings.Contains(markup, `content="wix.com`) {
		return CMSWix
	}

	return CMSUnknown
}

// CMSContentSelectors returns content selectors optimized for a specific CMS.
func CMSContentSelectors(cms CMS) []string {
	switch cms {
	case CMSWordPress:
		return []string{
			".entry-content", // Primary WordPress selector
			".post-content",
			"article",
			".site-content",
			"#content",
		}
	case CMSShopify:
		return []string{
			".product__description",
			".rte",
			".shopify-section main",
			"main",
			"#MainContent",
		}
	case CMSSquarespace:
		return []string{
			".sqs-block-content",
			".Main-content",
			"main",
			"#content",
		}
	case CMSWix:
		return []string{
			"#PAGES_CONTAINER",
			"main",
			"#SITE_CONTAINER",
		}
	default:
		return DefaultTextSelectors()
	}
}

// CMSNoiseSelectors returns noise exclusion selectors for a specific CMS.
func CMSNoiseSelectors(cms CMS) []string {
	// Common noise selectors for all platforms
	common := []string{
		// Comment threads
		"#comments",
		".comments-area",
		".comment-list",

		// Newsletter and signup prompts
		".newsletter-signup",
		".subscribe-form",
		".email-capture",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Generic navigation already handled in fetch.go
	}

	switch cms {
	case CMSWordPress:
		return append(common,
			".widget-area",
			".wp-block-comments",
			"#secondary",
			".related-posts",
		)
	case CMSShopify:
		return append(common,
			".announcement-bar",
			".cart-drawer",
			".shopify-section--announcement",
			".product-recommendations",
		)
	case CMSSquarespace:
		return append(common,
			".sqs-announcement-bar",
			".sqs-cookie-banner-v2",
			".sqs-popup-overlay",
		)
	case CMSWix:
		return append(common,
			"#WIX_ADS",
			"#SITE_FOOTER",
		)
	default:
		return common
	}
}
