package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/seo-consultant/internal/pipeline"
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Audit a single page for SEO and AI readiness",
	Long:  "Fetches one page, extracts its SEO features and prints the score breakdown with the technical issues and content suggestions found. Use analyze for a full site crawl.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	p, err := pipeline.New(ctx, pipelineOptions(cfg))
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.AnalyzeWithLimit(ctx, args[0], 1)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if rootJSON {
		return printJSON(result)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Audited %s\n", result.Domain)
	if result.HomePage != nil && result.HomePage.Title.Present() {
		_, _ = fmt.Fprintf(os.Stdout, "Title: %q\n", result.HomePage.Title.Text)
	}
	if result.CMS != "" {
		_, _ = fmt.Fprintf(os.Stdout, "CMS: %s\n", result.CMS)
	}
	printScores(result)
	printIssues(result)
	return nil
}
