package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/seo-consultant/internal/pipeline"
	"github.com/jonathan/seo-consultant/internal/trends"
	"github.com/jonathan/seo-consultant/internal/types"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track <domain>",
	Short: "Record today's performance metrics and report trends",
	Long:  "Samples the domain's performance metrics, appends them to the local history and prints the direction and strength of each metric over the last 30 days.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

var (
	trackExport string
	trackOut    string
)

func init() {
	trackCmd.Flags().StringVar(&trackExport, "export", "", "Export format: csv, json or markdown")
	trackCmd.Flags().StringVarP(&trackOut, "out", "o", "", "Write the export to a file instead of stdout")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(_ *cobra.Command, args []string) error {
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

	report, err := p.TrackPerformance(ctx, args[0])
	if err != nil {
		return fmt.Errorf("performance tracking failed: %w", err)
	}

	if trackExport != "" {
		return writeExport(report, trackExport, trackOut)
	}
	if rootJSON {
		return printJSON(report)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Tracked %s\n\n", report.Domain)
	for _, metric := range trends.TrackedMetrics {
		trend, ok := report.Trends[metric]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(os.Stdout, "  %-17s %s\n", trends.MetricLabel(metric), trends.DescribeTrend(trend))
	}
	if len(report.Insights) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "\nInsights:\n")
		for _, insight := range report.Insights {
			_, _ = fmt.Fprintf(os.Stdout, "  • %s\n", insight)
		}
	}
	return nil
}

// writeExport renders the report in the requested format and writes it to
// the given path, or stdout when none is set.
func writeExport(report *types.TrendReport, format, path string) error {
	var out string
	var err error

	switch format {
	case "csv":
		if out, err = trends.ExportCSV(report); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
	case "json":
		if out, err = trends.ExportJSON(report); err != nil {
			return fmt.Errorf("failed to export JSON: %w", err)
		}
	case "markdown", "md":
		out = trends.RenderMarkdown(report)
	default:
		return fmt.Errorf("unknown export format %q (want csv, json or markdown)", format)
	}

	if path == "" {
		_, _ = fmt.Fprint(os.Stdout, out)
		return nil
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Export written: %s\n", path)
	return nil
}
