package cmd

import (
	"fmt"
	"os"

	"github.com/ectool/lpscorer/internal/export"
	"github.com/ectool/lpscorer/internal/models"
	"github.com/ectool/lpscorer/internal/summary"
	"github.com/spf13/cobra"
)

func newSummarizeCmd() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "summarize FILE...",
		Short: "Summarize exported score records",
		Long: `Aggregates score records exported from /api/scores/export (JSON, YAML or
Parquet, chosen by file extension) and prints average overall, category and
image scores with per-category score distributions.`,
		Example: `  lpscorer summarize lp-scores-2025-07-01.parquet

  # Machine-readable summary
  lpscorer summarize week1.json week2.json --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []*models.ScoreRecord
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				recs, err := export.Read(data, export.FormatFromPath(path))
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", path, err)
				}
				records = append(records, recs...)
			}

			s := summary.Aggregate(records)
			if format == "" && output == "" {
				s.Print(cmd.OutOrStdout())
				return nil
			}
			return writeOutput(cmd.OutOrStdout(), output, format, s)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the summary to a file instead of printing it")
	cmd.Flags().StringVar(&format, "format", "", "Output format: yaml or json (default: human-readable text)")

	return cmd
}
