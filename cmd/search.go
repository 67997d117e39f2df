package cmd

import (
	"strings"

	"github.com/ectool/lpscorer/internal/rakuten"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var opts rakuten.SearchOptions
	var output, format string

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the marketplace for products",
		Long: `Searches Rakuten Ichiba and prints the matching items.

With --scraping, the first five items are enriched with images scraped
from their product pages. Requires RAKUTEN_APP_ID.`,
		Example: `  # Top 20 items by review count
  lpscorer search "緑茶"

  # Include scraped images and write JSON
  lpscorer search "緑茶" --scraping --output items.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices()
			if err != nil {
				return err
			}

			result, err := svc.search.Search(cmd.Context(), strings.Join(args, " "), opts)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, format, result)
		},
	}

	cmd.Flags().BoolVar(&opts.Scraping, "scraping", false, "Scrape product pages of the leading items for more images")
	cmd.Flags().IntVar(&opts.Hits, "hits", rakuten.DefaultHits, "Number of items to request (max 30)")
	cmd.Flags().StringVar(&opts.Sort, "sort", rakuten.DefaultSort, "Marketplace sort order")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write results to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "Output format: yaml or json (default from file extension, else yaml)")

	return cmd
}
