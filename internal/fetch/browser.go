package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the extracted-text length below which a page is
// treated as JavaScript-rendered and worth a headless re-fetch.
const MinContentLength = 500

// Settle times after navigation: scripts get renderSettle to populate the
// DOM, and bannerSettle covers re-layout after a cookie banner is closed.
const (
	renderSettle = 3 * time.Second
	bannerSettle = 1 * time.Second
)

// ShouldUseBrowser reports whether the plain HTTP fetch produced too little
// text to score, which is the signature of a client-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// headlessOptions configures the Chrome process for unattended operation.
func headlessOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
}

// dismissCookieBanner clicks anything that looks like a consent button.
// Failure to find one is not an error.
func dismissCookieBanner() chromedp.ActionFunc {
	return func(ctx context.Context) error {
		sel := `button[id*="accept"], button[class*="accept"], button:contains("OK"), button:contains("Accept")`
		_ = chromedp.Click(sel, chromedp.NodeVisible).Do(ctx)
		return nil
	}
}

// WithBrowser loads a page in headless Chrome and returns the DOM after
// scripts have run. Chrome or Chromium must be installed on the host.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[browser] rendering %s", url)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, headlessOptions()...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		dismissCookieBanner(),
		chromedp.Sleep(bannerSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[browser] rendered %s: %d bytes", url, len(html))
	}
	return html, nil
}
