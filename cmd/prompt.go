package cmd

import (
	"fmt"

	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the scoring prompt for an LPInput",
		Long:  `Renders the exact prompt that score would send to the model, without calling it.`,
		Example: `  lpscorer prompt --input lp.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input lpscore.LPInput
			if err := readInput(inputPath, &input); err != nil {
				return err
			}
			if err := input.Validate(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), lpscore.BuildPrompt(input))
			return err
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "LPInput file (JSON or YAML, - for stdin)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
