package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/ectool/lpscorer/internal/models"
	"github.com/ectool/lpscorer/internal/rakuten"
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var inputPath, pageURL string
	var provider, model string
	var output, format string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a landing page with an LLM",
		Long: `Scores a landing page against the conversion rubric.

The page is read either from an LPInput file (JSON or YAML, "-" for stdin)
or extracted from a live product page with --url.`,
		Example: `  # Score a prepared input with the default provider
  lpscorer score --input lp.json

  # Extract a product page and score it with a local model
  lpscorer score --url https://item.rakuten.co.jp/shop/item-1/ --provider ollama --model llama3

  # Save the stored record as JSON
  lpscorer score --input lp.yaml --output score.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (inputPath == "") == (pageURL == "") {
				return fmt.Errorf("exactly one of --input or --url is required")
			}

			svc, err := loadServices()
			if err != nil {
				return err
			}

			var input lpscore.LPInput
			if inputPath != "" {
				if err := readInput(inputPath, &input); err != nil {
					return err
				}
			} else {
				page, err := svc.extractor.Extract(cmd.Context(), pageURL)
				if err != nil {
					return fmt.Errorf("failed to extract product page: %w", err)
				}
				input = page.LPInput(rakuten.DefaultCTATexts)
			}

			scorer, err := svc.scorer(provider, model)
			if err != nil {
				return err
			}

			score, err := scorer.Score(cmd.Context(), input)
			if err != nil {
				return err
			}

			record := models.NewScoreRecord(pageURL, scorer.Provider(), scorer.Model(), input, *score)
			slog.Info("Scoring complete", "id", record.ID, "overall", score.OverallScore)

			return writeOutput(cmd.OutOrStdout(), output, format, record)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "LPInput file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&pageURL, "url", "", "Product page to extract and score")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider: gemini, openai or ollama (default $LP_PROVIDER or gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default depends on provider)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the score record to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "Output format: yaml or json (default from file extension, else yaml)")

	return cmd
}
