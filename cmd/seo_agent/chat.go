package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/seo-consultant/internal/agent"
	"github.com/jonathan/seo-consultant/internal/db"
	"github.com/jonathan/seo-consultant/internal/llm"
	"github.com/jonathan/seo-consultant/internal/pipeline"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the SEO consultant",
	Long: `Starts an interactive conversation with the SEO consultant. The consultant
runs audits, comparisons and performance checks on request and remembers
your website across the conversation. Type 'exit' to leave.`,
	RunE: runChat,
}

var (
	chatWebsite string
	chatUser    string
)

func init() {
	chatCmd.Flags().StringVarP(&chatWebsite, "website", "w", "", "Website to preload as conversation context")
	chatCmd.Flags().StringVar(&chatUser, "user", "", "User ID for session continuity (defaults to a shared local user)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
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

	// Without a model key the consultant still works, it just answers with
	// deterministic replies instead of generated ones.
	var client llm.Client
	if apiKey := cfg.ResolveAPIKey(); apiKey != "" {
		created, err := llm.NewClient(ctx, modelConfig(cfg), apiKey)
		if err != nil {
			fmt.Printf("Warning: Failed to create model client: %v\n", err)
			fmt.Printf("Continuing with deterministic replies...\n")
		} else {
			client = created
			defer created.Close()
		}
	}

	var store db.SessionStore = db.NewMemorySessionStore()
	if database := p.Database(); database != nil {
		store = database
	}

	consultant := agent.NewConsultant(client, p, store)

	welcome, err := consultant.StartConversation(ctx, chatUser, chatWebsite)
	if err != nil {
		return fmt.Errorf("failed to start conversation: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Consultant: %s\n\n", welcome)
	_, _ = fmt.Fprintf(os.Stdout, "Type 'exit' to end the conversation.\n\n")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		_, _ = fmt.Fprint(os.Stdout, "You: ")
		if !scanner.Scan() {
			break
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		reply, err := consultant.Chat(ctx, message)
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintf(os.Stdout, "\nConsultant: %s\n\n", reply)
	}

	_, _ = fmt.Fprintln(os.Stdout, "\nGoodbye!")
	return scanner.Err()
}
