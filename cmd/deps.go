package cmd

import (
	"fmt"

	"github.com/ectool/lpscorer/internal/config"
	"github.com/ectool/lpscorer/internal/images"
	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/ectool/lpscorer/internal/product"
	"github.com/ectool/lpscorer/internal/rakuten"
)

// services are the components shared by the subcommands
type services struct {
	cfg       *config.Config
	scraper   *images.Scraper
	extractor *product.Extractor
	search    *rakuten.Client
}

func loadServices() (*services, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	rules, err := images.LoadRules(cfg.ScrapeRules)
	if err != nil {
		return nil, err
	}
	selectors, err := product.LoadSelectors(cfg.ProductSelectors)
	if err != nil {
		return nil, err
	}

	scraper := images.NewScraper(images.NewFetcher(cfg.ScrapeTimeout), rules)

	return &services{
		cfg:       cfg,
		scraper:   scraper,
		extractor: product.NewExtractor(scraper, selectors),
		search: rakuten.NewClient(rakuten.Options{
			AppID:   cfg.RakutenAppID,
			BaseURL: cfg.RakutenAPIURL,
			Scraper: scraper,
		}),
	}, nil
}

// scorer builds a scoring service. Empty arguments fall back to the configuration.
func (s *services) scorer(provider, model string) (*lpscore.Service, error) {
	if provider == "" {
		provider = s.cfg.Provider
	}
	if model == "" {
		model = s.cfg.ModelFor(provider)
	}

	p, err := lpscore.NewProvider(provider, s.cfg.ProviderSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	return lpscore.NewService(p, lpscore.Options{
		Model:   model,
		Timeout: s.cfg.ModelTimeout,
	}), nil
}
