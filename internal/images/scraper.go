package images

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ectool/lpscorer/internal/metrics"
)

// Candidate is an accepted image URL with its quality score
type Candidate struct {
	URL   string
	Score int
}

// Scraper finds additional product images on marketplace item pages
type Scraper struct {
	fetcher *Fetcher
	rules   *Rules
}

// NewScraper creates a scraper. Nil arguments fall back to defaults.
func NewScraper(fetcher *Fetcher, rules *Rules) *Scraper {
	if fetcher == nil {
		fetcher = NewFetcher(DefaultTimeout)
	}
	if rules == nil {
		rules = DefaultRules()
	}
	return &Scraper{
		fetcher: fetcher,
		rules:   rules,
	}
}

// Fetcher exposes the underlying page fetcher so other extractors can share it
func (s *Scraper) Fetcher() *Fetcher {
	return s.fetcher
}

// Rules returns the rules the scraper filters with
func (s *Scraper) Rules() *Rules {
	return s.rules
}

// Scrape fetches pageURL and returns its product images, best first.
// Every failure is reported through the error; see Images for the best-effort form.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) ([]string, error) {
	doc, base, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return s.Extract(doc, base), nil
}

// Images is the best-effort form of Scrape. Failures are logged and yield an empty
// slice so image problems never abort a search or scoring request.
func (s *Scraper) Images(ctx context.Context, pageURL string) []string {
	slog.Info("Scraping product images", "url", pageURL)

	found, err := s.Scrape(ctx, pageURL)
	if err != nil {
		var statusErr *StatusError
		switch {
		case errors.As(err, &statusErr):
			metrics.IncScrape("status")
		case errors.Is(err, context.DeadlineExceeded):
			metrics.IncScrape("timeout")
		default:
			metrics.IncScrape("failed")
		}
		slog.Warn("Image scraping failed", "url", pageURL, "err", err)
		return []string{}
	}

	metrics.IncScrape("ok")
	metrics.ObserveScrapedImages(len(found))
	slog.Info("Image scraping finished", "url", pageURL, "count", len(found))
	return found
}

// Extract applies the selector groups to doc and returns accepted image URLs,
// deduplicated and ordered by descending quality score.
func (s *Scraper) Extract(doc *goquery.Document, base *url.URL) []string {
	candidates := s.Candidates(doc, base)
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.URL
	}
	return out
}

// Candidates is Extract with the scores kept
func (s *Scraper) Candidates(doc *goquery.Document, base *url.URL) []Candidate {
	var candidates []Candidate
	seen := make(map[string]struct{})

	for _, group := range s.rules.Selectors {
		for _, selector := range group.Selectors {
			doc.Find(selector).Each(func(_ int, img *goquery.Selection) {
				src := imageSource(img)
				if src == "" {
					return
				}
				src = normalizeURL(src, base)
				if _, ok := seen[src]; ok {
					return
				}
				if !s.rules.IsValidImageURL(src) {
					slog.Debug("Rejected image candidate", "group", group.Name, "url", src)
					return
				}
				seen[src] = struct{}{}
				candidates = append(candidates, Candidate{URL: src, Score: QualityScore(src)})
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// imageSource reads src, then data-src, then data-original
func imageSource(img *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-original"} {
		if v, ok := img.Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// normalizeURL rewrites protocol-relative and root-relative references against
// the page origin. Anything else is returned as is.
func normalizeURL(src string, base *url.URL) string {
	if base == nil {
		return src
	}
	switch {
	case strings.HasPrefix(src, "//"):
		return base.Scheme + ":" + src
	case strings.HasPrefix(src, "/"):
		return base.Scheme + "://" + base.Host + src
	default:
		return src
	}
}
