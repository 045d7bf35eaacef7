// Package main implements the seo_agent CLI for site audits, competitor
// comparison, performance tracking and the conversational SEO consultant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seo_agent",
	Short: "AI-era SEO consultant",
	Long:  "seo_agent audits websites for SEO and AI search readiness, compares them against competitors, tracks performance trends, and answers questions through a conversational consultant.",
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootJSON       bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfigPath, "config", "c", "", "Path to config.json file (flags override config values)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed progress and formatted result boxes")
	rootCmd.PersistentFlags().BoolVar(&rootJSON, "json", false, "Print results as raw JSON instead of summaries")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
