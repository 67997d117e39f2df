package cmd

import (
	"github.com/ectool/lpscorer/internal/images"
	"github.com/ectool/lpscorer/internal/rakuten"
	"github.com/spf13/cobra"
)

func newScrapeCmd() *cobra.Command {
	var apiImages []string
	var imagesOnly bool
	var output, format string

	cmd := &cobra.Command{
		Use:   "scrape URL",
		Short: "Extract a product page",
		Long: `Fetches a product page and prints its title, headings, description,
prices, CTA texts, shop and review information and ranked product images,
together with the landing page input derived from them.

With --images-only, only the ranked images are printed, merged after any
--api-image values.`,
		Example: `  lpscorer scrape https://item.rakuten.co.jp/shop/item-1/

  lpscorer scrape https://item.rakuten.co.jp/shop/item-1/ --images-only \
    --api-image https://thumbnail.image.rakuten.co.jp/@0_mall/shop/cabinet/1.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices()
			if err != nil {
				return err
			}
			pageURL := args[0]

			if imagesOnly {
				scraped, err := svc.scraper.Scrape(cmd.Context(), pageURL)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), output, format, map[string]any{
					"images": images.Merge(apiImages, scraped),
				})
			}

			page, err := svc.extractor.Extract(cmd.Context(), pageURL)
			if err != nil {
				return err
			}
			page.Images = images.Merge(apiImages, page.Images)

			return writeOutput(cmd.OutOrStdout(), output, format, map[string]any{
				"page":     page,
				"lp_input": page.LPInput(rakuten.DefaultCTATexts),
			})
		},
	}

	cmd.Flags().StringSliceVar(&apiImages, "api-image", nil, "Image URLs already known for the item; kept first")
	cmd.Flags().BoolVar(&imagesOnly, "images-only", false, "Only print ranked images")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write results to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "Output format: yaml or json (default from file extension, else yaml)")

	return cmd
}
