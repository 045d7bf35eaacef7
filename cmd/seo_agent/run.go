package main

import (
	"context"
	"fmt"

	"github.com/jonathan/seo-consultant/internal/pipeline"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis pipeline end-to-end",
	Long: `Orchestrates the entire consulting flow: crawl -> site analysis -> competitor comparison -> performance tracking.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runWebsite     string
	runCompetitors []string
	runTrackFlag   bool
	runMaxPages    int
	runCrawlDelay  int
	runConcurrency int
	runUseBrowser  bool
	runMetricsDB   string
	runDatabaseURL string
)

func init() {
	runCommand.Flags().StringVarP(&runWebsite, "website", "w", "", "Website URL to analyze (required via flag or config)")
	runCommand.Flags().StringSliceVar(&runCompetitors, "competitors", nil, "Competitor URLs to compare against")
	runCommand.Flags().BoolVar(&runTrackFlag, "track", false, "Record performance metrics and report trends")
	runCommand.Flags().IntVar(&runMaxPages, "max-pages", 0, "Maximum pages to crawl per site")
	runCommand.Flags().IntVar(&runCrawlDelay, "crawl-delay", 0, "Delay between page fetches in milliseconds")
	runCommand.Flags().IntVar(&runConcurrency, "concurrency", 0, "Parallel competitor analyses")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for JS-rendered sites (requires Chrome)")
	runCommand.Flags().StringVar(&runMetricsDB, "metrics-db", "", "SQLite file holding the performance series")
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Command-line args take priority; only override when the flag was
	// explicitly set.
	if cmd.Flags().Changed("website") {
		cfg.Website = runWebsite
	}
	if cmd.Flags().Changed("competitors") {
		cfg.Competitors = runCompetitors
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages = runMaxPages
	}
	if cmd.Flags().Changed("crawl-delay") {
		cfg.CrawlDelayMS = runCrawlDelay
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = runConcurrency
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("metrics-db") {
		cfg.MetricsDB = runMetricsDB
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	if cfg.Website == "" {
		return fmt.Errorf("--website must be provided (via flag or config)")
	}

	opts := pipeline.RunOptions{
		Options:     pipelineOptions(cfg),
		Website:     cfg.Website,
		Competitors: cfg.Competitors,
		Track:       runTrackFlag,
	}

	return pipeline.Run(context.Background(), opts)
}
