package main

import (
	"fmt"

	"github.com/jonathan/seo-consultant/internal/config"
	"github.com/jonathan/seo-consultant/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the analysis, comparison, tracking, trends and chat endpoints.`,
	RunE:  runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		CORSOrigin: cfg.CORSOrigin,
		APIKey:     cfg.ResolveAPIKey(),
		Models:     modelConfig(cfg),
		Pipeline:   pipelineOptions(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
