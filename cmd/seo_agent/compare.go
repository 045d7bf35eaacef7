package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/seo-consultant/internal/pipeline"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <domain>",
	Short: "Compare a website against its competitors",
	Long:  "Analyzes the website and each competitor, ranks them on AI readiness and prints the competitive insights and prioritized recommendations.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

var compareCompetitors []string

func init() {
	compareCmd.Flags().StringSliceVar(&compareCompetitors, "competitors", nil, "Competitor URLs (comma separated or repeated)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	competitors := compareCompetitors
	if len(competitors) == 0 {
		competitors = cfg.Competitors
	}
	if len(competitors) == 0 {
		return fmt.Errorf("at least one competitor is required (via --competitors or config)")
	}

	ctx := context.Background()
	p, err := pipeline.New(ctx, pipelineOptions(cfg))
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.CompareCompetitors(ctx, args[0], competitors)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if rootJSON {
		return printJSON(result)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Compared %s against %d competitors\n", result.Primary.Domain, len(result.Competitors))
	_, _ = fmt.Fprintf(os.Stdout, "AI readiness: %.1f vs %.1f average (%s)\n",
		result.AIComparison.YourScore, result.AIComparison.CompetitorAverage, result.AIComparison.Performance)
	for _, skipped := range result.Skipped {
		_, _ = fmt.Fprintf(os.Stdout, "Skipped %s: %s\n", skipped.Domain, skipped.Reason)
	}

	if len(result.Insights) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "\nInsights:\n")
		for _, insight := range result.Insights {
			_, _ = fmt.Fprintf(os.Stdout, "  • %s\n", insight.Message)
		}
	}
	if len(result.Recommendations) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "\nRecommendations:\n")
		for i, rec := range result.Recommendations {
			_, _ = fmt.Fprintf(os.Stdout, "  #%d [%s] %s\n", i+1, rec.Priority, rec.Title)
		}
	}
	return nil
}
