// Package pipeline wires crawling, analysis, comparison and performance
// tracking into one service shared by the CLI, the HTTP server and the chat
// consultant.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/seo-consultant/internal/analysis"
	"github.com/jonathan/seo-consultant/internal/comparison"
	"github.com/jonathan/seo-consultant/internal/crawling"
	"github.com/jonathan/seo-consultant/internal/db"
	"github.com/jonathan/seo-consultant/internal/fetch"
	"github.com/jonathan/seo-consultant/internal/metrics"
	"github.com/jonathan/seo-consultant/internal/observability"
	"github.com/jonathan/seo-consultant/internal/trends"
	"github.com/jonathan/seo-consultant/internal/types"
)

// Step names reported through progress events.
const (
	StepCrawl   = "crawl"
	StepAnalyze = "analyze"
	StepCompare = "compare"
	StepTrack   = "track"
)

const (
	// trendWindow bounds how far back the performance series reaches.
	trendWindow = 30 * 24 * time.Hour
	// backfillDays of simulated history are seeded the first time a domain
	// is tracked, so the first report already shows movement.
	backfillDays = 14
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Domain  string `json:"domain,omitempty"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures a pipeline instance. Zero values fall back to the
// collaborators' own defaults.
type Options struct {
	MaxPages    int
	CrawlDelay  time.Duration
	Concurrency int           // parallel competitor analyses
	CacheTTL    time.Duration // page and analysis cache lifetime
	UseBrowser  bool
	Verbose     bool
	MetricsDB   string // SQLite path; empty disables performance history
	DatabaseURL string // optional PostgreSQL for report persistence
	OnProgress  ProgressCallback
	Out         io.Writer // verbose output target, defaults to stdout
}

// RunOptions holds the targets for a one-shot end-to-end run.
type RunOptions struct {
	Options
	Website     string
	Competitors []string
	Track       bool
}

// Pipeline owns the analysis stack: a shared page cache feeding the
// crawler, the site analyzer with its result cache, the competitor
// comparator, and the optional metric and report stores.
type Pipeline struct {
	fetcher    *fetch.CachedFetcher
	crawler    *crawling.Crawler
	analyzer   *analysis.Analyzer
	cache      *analysis.Cache
	comparator *comparison.Comparator
	metrics    *metrics.Store
	database   *db.DB
	printer    *observability.Printer
	opts       Options
}

// New builds a pipeline. Missing metric or report stores degrade with a
// warning instead of failing: analyses still run, history is just not kept.
func New(ctx context.Context, opts Options) (*Pipeline, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	fetcher, err := fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{CacheTTL: opts.CacheTTL})
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	cache, err := analysis.NewCache(opts.CacheTTL)
	if err != nil {
		fetcher.Close()
		return nil, fmt.Errorf("failed to create analysis cache: %w", err)
	}

	p := &Pipeline{
		fetcher:  fetcher,
		analyzer: analysis.NewAnalyzer(),
		cache:    cache,
		printer:  observability.NewPrinter(opts.Out),
		opts:     opts,
	}
	p.crawler = p.newCrawler(opts.MaxPages)
	p.comparator = comparison.NewComparator(p, opts.Concurrency)

	if opts.MetricsDB != "" {
		store, err := metrics.Open(opts.MetricsDB)
		if err != nil {
			fmt.Printf("Warning: Failed to open metrics store: %v\n", err)
			fmt.Printf("Continuing without performance history...\n")
		} else {
			p.metrics = store
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Metrics store: %s\n", opts.MetricsDB)
			}
		}
	}

	if opts.DatabaseURL != "" {
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without report persistence...\n")
		} else {
			p.database = database
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	return p, nil
}

// Close releases the pipeline's caches and store connections.
func (p *Pipeline) Close() {
	p.fetcher.Close()
	p.cache.Close()
	if p.metrics != nil {
		_ = p.metrics.Close()
	}
	if p.database != nil {
		p.database.Close()
	}
}

// Database exposes the report store, nil when none is connected.
func (p *Pipeline) Database() *db.DB {
	return p.database
}

// WithProgress returns a pipeline view whose events reach cb instead of the
// configured callback. The view shares the parent's caches and stores; only
// the parent should be closed.
func (p *Pipeline) WithProgress(cb ProgressCallback) *Pipeline {
	clone := *p
	clone.opts.OnProgress = cb
	clone.comparator = comparison.NewComparator(&clone, clone.opts.Concurrency)
	return &clone
}

// newCrawler builds a crawler over the shared page cache.
func (p *Pipeline) newCrawler(maxPages int) *crawling.Crawler {
	return crawling.NewCrawler(p.fetcher, &crawling.Options{
		MaxPages:        maxPages,
		Delay:           p.opts.CrawlDelay,
		BrowserFallback: p.opts.UseBrowser,
	})
}

// emit calls the progress callback if configured
func (p *Pipeline) emit(step, domain, message string, content any) {
	if p.opts.OnProgress != nil {
		p.opts.OnProgress(ProgressEvent{
			Step:    step,
			Domain:  domain,
			Message: message,
			Content: content,
		})
	}
}

// Analyze crawls a site and produces its full analysis. Results are cached
// per domain for the configured TTL, so a site compared right after an
// audit is not crawled twice. Analyze is the comparison.SiteSource the
// comparator fans out over, which makes it safe for concurrent use.
func (p *Pipeline) Analyze(ctx context.Context, site string) (*types.SiteAnalysis, error) {
	return p.AnalyzeWithLimit(ctx, site, 0)
}

// AnalyzeWithLimit is Analyze with a per-call page budget; zero keeps the
// configured default. The result lands in the same domain-keyed cache, so
// whichever depth ran first is what later calls see until the entry expires.
func (p *Pipeline) AnalyzeWithLimit(ctx context.Context, site string, maxPages int) (*types.SiteAnalysis, error) {
	domain := canonicalDomain(site)
	if cached, ok := p.cache.Get(domain); ok {
		p.emit(StepAnalyze, domain, "Using cached analysis", nil)
		return cached, nil
	}

	crawler := p.crawler
	if maxPages > 0 {
		crawler = p.newCrawler(maxPages)
	}

	p.emit(StepCrawl, domain, fmt.Sprintf("Crawling %s", domain), nil)
	pages, err := crawler.Crawl(ctx, site)
	if err != nil {
		return nil, err
	}
	if p.opts.Verbose {
		p.printer.PrintCrawl(domain, pages)
	}
	p.emit(StepCrawl, domain, fmt.Sprintf("Crawled %d pages", len(pages)), nil)

	result, err := p.analyzer.Analyze(domain, pages)
	if err != nil {
		return nil, err
	}
	if cms := fetch.DetectCMS(pages[0].URL, pages[0].HTML); cms != fetch.CMSUnknown {
		result.CMS = string(cms)
	}
	if p.opts.Verbose {
		p.printer.PrintAnalysis(result)
		p.printer.PrintIssues(result)
	}

	p.cache.Set(result)
	p.persistReport(ctx, domain, db.ReportKindAnalysis, result)
	p.emit(StepAnalyze, domain, fmt.Sprintf("Analyzed %s: %.1f/100", domain, result.SiteOverall), result)
	return result, nil
}

// AnalyzeWebsite is the chat-tool entry point for a single-site audit.
func (p *Pipeline) AnalyzeWebsite(ctx context.Context, site string) (*types.SiteAnalysis, error) {
	return p.Analyze(ctx, site)
}

// CompareCompetitors analyzes the primary site and its competitors and
// derives the competitive standing.
func (p *Pipeline) CompareCompetitors(ctx context.Context, primary string, competitors []string) (*types.ComparisonResult, error) {
	domain := canonicalDomain(primary)
	p.emit(StepCompare, domain, fmt.Sprintf("Comparing %s against %d competitors", domain, len(competitors)), nil)

	result, err := p.comparator.Compare(ctx, primary, competitors)
	if err != nil {
		return nil, err
	}
	if p.opts.Verbose {
		p.printer.PrintComparison(result)
		p.printer.PrintRecommendations(result.Recommendations)
	}

	p.persistReport(ctx, domain, db.ReportKindComparison, result)
	p.emit(StepCompare, domain, fmt.Sprintf("Compared %d competitors, %d skipped", len(result.Competitors), len(result.Skipped)), result)
	return result, nil
}

// TrackPerformance samples the domain's current metrics, appends them to
// the performance series and builds the trend report. The first time a
// domain is tracked its recent history is seeded from the deterministic
// sampler, so trends are visible immediately.
func (p *Pipeline) TrackPerformance(ctx context.Context, site string) (*types.TrendReport, error) {
	domain := canonicalDomain(site)
	now := time.Now().UTC()

	p.emit(StepTrack, domain, fmt.Sprintf("Sampling performance metrics for %s", domain), nil)
	sample := metrics.Simulate(domain, now)

	var series map[string][]types.MetricPoint
	if p.metrics != nil {
		since := now.Add(-trendWindow)

		existing, err := p.metrics.Series(ctx, domain, since)
		if err != nil {
			fmt.Printf("Warning: Failed to load performance history: %v\n", err)
		} else if len(existing) == 0 {
			for d := backfillDays; d >= 1; d-- {
				if err := p.metrics.Record(ctx, metrics.Simulate(domain, now.AddDate(0, 0, -d))); err != nil {
					fmt.Printf("Warning: Failed to seed performance history: %v\n", err)
					break
				}
			}
		}

		if err := p.metrics.Record(ctx, sample); err != nil {
			fmt.Printf("Warning: Failed to record metrics: %v\n", err)
		}
		if series, err = p.metrics.Series(ctx, domain, since); err != nil {
			fmt.Printf("Warning: Failed to load performance history: %v\n", err)
			series = nil
		}
	}

	report := trends.BuildReport(domain, sample.Values(), series)
	if p.opts.Verbose {
		p.printer.PrintTrends(report)
	}

	p.persistReport(ctx, domain, db.ReportKindTrends, report)
	p.emit(StepTrack, domain, fmt.Sprintf("Tracked %d metrics for %s", len(report.Trends), domain), report)
	return report, nil
}

// Trends rebuilds the trend report from stored history without recording a
// new observation. Current values come from the deterministic sampler, so
// repeated reads within a day return the same report.
func (p *Pipeline) Trends(ctx context.Context, site string) (*types.TrendReport, error) {
	domain := canonicalDomain(site)
	now := time.Now().UTC()
	sample := metrics.Simulate(domain, now)

	var series map[string][]types.MetricPoint
	if p.metrics != nil {
		var err error
		if series, err = p.metrics.Series(ctx, domain, now.Add(-trendWindow)); err != nil {
			return nil, fmt.Errorf("failed to load performance history: %w", err)
		}
	}

	return trends.BuildReport(domain, sample.Values(), series), nil
}

// persistReport saves a report when a database is connected.
func (p *Pipeline) persistReport(ctx context.Context, domain, kind string, payload any) {
	if p.database == nil {
		return
	}
	if err := p.database.SaveReport(ctx, domain, kind, payload); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
}

// Run executes the pipeline end to end: analyze the website, then run the
// comparison and tracking stages in parallel where requested.
func Run(ctx context.Context, opts RunOptions) error {
	p, err := New(ctx, opts.Options)
	if err != nil {
		return err
	}
	defer p.Close()

	total := 1
	if len(opts.Competitors) > 0 {
		total++
	}
	if opts.Track {
		total++
	}

	fmt.Printf("Step 1/%d: Analyzing %s...\n", total, opts.Website)
	result, err := p.Analyze(ctx, opts.Website)
	if err != nil {
		return fmt.Errorf("site analysis failed: %w", err)
	}
	fmt.Printf("Overall score: %.1f/100 (%d pages crawled)\n", result.SiteOverall, result.PagesCrawled)

	if total == 1 {
		fmt.Printf("✅ Analysis complete for %s.\n", result.Domain)
		return nil
	}

	// The remaining stages are independent; run them as parallel branches.
	// The analysis cache makes the comparator's re-analysis of the primary
	// domain a lookup, not a second crawl.
	fmt.Printf("\n🚀 Running remaining stages in parallel...\n\n")

	g, gCtx := errgroup.WithContext(ctx)
	step := 1

	if len(opts.Competitors) > 0 {
		step++
		stepNum := step
		g.Go(func() error {
			fmt.Printf("%sStep %d/%d: Comparing against %d competitors...\n", prefixCompare, stepNum, total, len(opts.Competitors))
			compared, err := p.CompareCompetitors(gCtx, opts.Website, opts.Competitors)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			fmt.Printf("%s✅ Comparison complete: %d insights, %d recommendations.\n", prefixCompare, len(compared.Insights), len(compared.Recommendations))
			return nil
		})
	}

	if opts.Track {
		step++
		stepNum := step
		g.Go(func() error {
			fmt.Printf("%sStep %d/%d: Tracking performance...\n", prefixTrack, stepNum, total)
			report, err := p.TrackPerformance(gCtx, opts.Website)
			if err != nil {
				return fmt.Errorf("performance tracking failed: %w", err)
			}
			fmt.Printf("%s✅ Tracking complete: %d metric series.\n", prefixTrack, len(report.Trends))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("\n✅ Analysis complete for %s.\n", result.Domain)
	return nil
}

// logPrefix is used to distinguish concurrent log output
type logPrefix string

const (
	prefixCompare logPrefix = "[Compare] "
	prefixTrack   logPrefix = "[Track]   "
)

// canonicalDomain folds a website argument to the host form used for cache
// keys, report rows and metric series.
func canonicalDomain(site string) string {
	trimmed := strings.TrimSpace(site)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
		return strings.ToLower(parsed.Host)
	}
	return strings.ToLower(strings.TrimSpace(site))
}
