package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/seo-consultant/internal/pipeline"
	"github.com/jonathan/seo-consultant/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <domain>",
	Short: "Crawl a website and score its SEO and AI readiness",
	Long:  "Crawls the website starting from its homepage, extracts SEO features from every page and prints the score breakdown with the issues and suggestions found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var analyzeMaxPages int

func init() {
	analyzeCmd.Flags().IntVar(&analyzeMaxPages, "max-pages", 0, "Maximum pages to crawl (overrides config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages = analyzeMaxPages
	}

	ctx := context.Background()
	p, err := pipeline.New(ctx, pipelineOptions(cfg))
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.Analyze(ctx, args[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if rootJSON {
		return printJSON(result)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Analyzed %s (%d pages)\n", result.Domain, result.PagesCrawled)
	if result.CMS != "" {
		_, _ = fmt.Fprintf(os.Stdout, "CMS: %s\n", result.CMS)
	}
	printScores(result)
	printIssues(result)
	return nil
}

// printScores writes the score breakdown for an analyzed site.
func printScores(result *types.SiteAnalysis) {
	_, _ = fmt.Fprintf(os.Stdout, "\nScores:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Technical      %.1f\n", result.Scores.Technical)
	_, _ = fmt.Fprintf(os.Stdout, "  Content depth  %.1f\n", result.Scores.ContentDepth)
	_, _ = fmt.Fprintf(os.Stdout, "  AI readiness   %.1f\n", result.Scores.AIReadiness)
	_, _ = fmt.Fprintf(os.Stdout, "  Structure      %.1f\n", result.Scores.Structure)
	_, _ = fmt.Fprintf(os.Stdout, "\nOverall: %.1f/100\n", result.SiteOverall)
}

// printIssues lists the technical issues and content suggestions found.
func printIssues(result *types.SiteAnalysis) {
	if len(result.TechnicalIssues) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "\nIssues (%d):\n", len(result.TechnicalIssues))
		for _, issue := range result.TechnicalIssues {
			_, _ = fmt.Fprintf(os.Stdout, "  ⚠ %s\n", issue)
		}
	}
	if len(result.ContentSuggestions) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "\nSuggestions (%d):\n", len(result.ContentSuggestions))
		for _, suggestion := range result.ContentSuggestions {
			_, _ = fmt.Fprintf(os.Stdout, "  • %s\n", suggestion)
		}
	}
}
