package rakuten

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ectool/lpscorer/internal/images"
)

const (
	DefaultEnrichCount = 5
	DefaultStagger     = 500 * time.Millisecond
)

// EnrichOptions bounds image enrichment of search results
type EnrichOptions struct {
	// Count is how many leading items are scraped
	Count int
	// Stagger delays item i by i*Stagger; negative disables the delay
	Stagger time.Duration
}

func (o EnrichOptions) withDefaults() EnrichOptions {
	if o.Count <= 0 {
		o.Count = DefaultEnrichCount
	}
	if o.Stagger == 0 {
		o.Stagger = DefaultStagger
	}
	return o
}

// Enrich scrapes the first opts.Count items concurrently, item i starting after
// i*opts.Stagger, and merges the found images after the API images. It returns
// once every scrape has finished. Items whose scrape fails or is cancelled keep
// their API images.
func Enrich(ctx context.Context, items []Item, scraper ImageScraper, opts EnrichOptions) {
	opts = opts.withDefaults()
	n := min(opts.Count, len(items))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			if delay := time.Duration(i) * opts.Stagger; delay > 0 {
				timer := time.NewTimer(delay)
				defer timer.Stop()
				select {
				case <-ctx.Done():
					return
				case <-timer.C:
				}
			}

			item := &items[i]
			scraped := scraper.Images(ctx, item.URL)
			merged := images.Merge(item.Images, scraped)
			slog.Info("Enriched item images", "item", item.Name, "api", len(item.Images), "scraped", len(scraped), "total", len(merged))

			item.Images = merged
			if len(merged) > 0 {
				item.Image = merged[0]
			}
		}(i)
	}
	wg.Wait()
}
