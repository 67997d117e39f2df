package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "lpscorer",
		Short: "Marketplace product research with LLM-powered landing page scoring",
		Long: `lpscorer searches Rakuten Ichiba for products, scrapes product pages for
additional images and content, and scores product pages as landing pages
against a fixed conversion rubric using an LLM (Gemini, OpenAI or Ollama).

It can run as a JSON HTTP service or be used directly from the command line.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newPromptCmd())
	cmd.AddCommand(newSummarizeCmd())

	return cmd
}
