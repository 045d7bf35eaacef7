// Package fetch retrieves pages over HTTP and reduces their HTML to main
// body text. The crawler and the consulting pipeline both go through it:
// load time is measured here because it feeds the technical score, and the
// extracted text feeds content depth and readability.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the crawler to the sites it audits.
const DefaultUserAgent = "Mozilla/5.0 (compatible; SEOConsultant/1.0)"

// Result holds the raw and processed content from one fetch. LoadTime is
// wall-clock seconds from request start to body read.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
	LoadTime    float64
}

// Error reports a failed fetch along with the URL that caused it.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func fetchErr(url, message string, cause error) *Error {
	return &Error{URL: url, Message: message, Cause: cause}
}

// Options configures one fetch.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the stock fetch settings.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent}
}

// URL fetches a page and returns its body with timing attached. A non-200
// response returns both the partial Result and an Error, so the caller can
// still inspect status and body.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fetchErr(urlStr, "invalid URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fetchErr(urlStr, "failed to create request", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: opts.Timeout}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fetchErr(urlStr, "HTTP request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fetchErr(urlStr, "failed to read response body", err)
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		LoadTime:    time.Since(start).Seconds(),
	}
	if resp.StatusCode != http.StatusOK {
		return result, fetchErr(urlStr, fmt.Sprintf("HTTP status %d", resp.StatusCode), nil)
	}
	return result, nil
}

// boilerplateSelector matches chrome that never counts as page content.
var boilerplateSelector = strings.Join([]string{
	"nav", "footer", "header", "script", "style", "noscript",
	".ad", ".advertisement", ".ads", ".sidebar", ".cookie-banner", ".popup",
}, ", ")

// ExtractMainText reduces HTML to readable body text. Boilerplate and any
// extra noise selectors are dropped first, then the first matching content
// selector wins. Pages without a recognizable content region fall back to
// the whole body.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(boilerplateSelector).Remove()
	if extra := strings.Join(noiseSelectors, ", "); extra != "" {
		doc.Find(extra).Remove()
	}

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if match := doc.Find(selector); match.Length() > 0 {
			content = match.First()
			break
		}
	}

	return collapseBlankLines(content.Text()), nil
}

// DefaultTextSelectors lists content regions in preference order.
func DefaultTextSelectors() []string {
	return []string{
		"main",
		"article",
		".content",
		"#content",
		".main-content",
		"#main-content",
	}
}

// collapseBlankLines trims every line and drops the empty ones.
func collapseBlankLines(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
