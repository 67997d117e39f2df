package product

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ectool/lpscorer/internal/images"
	"golang.org/x/net/html"
)

const (
	// MaxImages caps the images kept per page
	MaxImages = 10

	minDescriptionRunes = 50
	maxCTARunes         = 50
	maxHeadingRunes     = 200
)

// Extractor pulls landing page content out of marketplace product pages
type Extractor struct {
	scraper   *images.Scraper
	selectors *Selectors
}

// NewExtractor creates an extractor sharing scraper's fetcher and image rules.
// Nil arguments fall back to defaults.
func NewExtractor(scraper *images.Scraper, selectors *Selectors) *Extractor {
	if scraper == nil {
		scraper = images.NewScraper(nil, nil)
	}
	if selectors == nil {
		selectors = DefaultSelectors()
	}
	return &Extractor{
		scraper:   scraper,
		selectors: selectors,
	}
}

// Extract fetches pageURL and extracts its content
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Page, error) {
	slog.Info("Extracting product page", "url", pageURL)

	doc, base, err := e.scraper.Fetcher().Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	page := e.ExtractDocument(doc, base)
	slog.Info("Extracted product page", "url", pageURL, "title", page.Title, "images", len(page.Images), "cta", len(page.CTATexts))
	return page, nil
}

// ExtractDocument extracts content from an already parsed page
func (e *Extractor) ExtractDocument(doc *goquery.Document, base *url.URL) *Page {
	sel := e.selectors

	page := &Page{
		Title:          e.title(doc),
		Headings:       collect(doc, sel.Headings, maxHeadingRunes),
		Body:           description(doc, sel.Description),
		Features:       collect(doc, sel.Features, 0),
		PriceTexts:     []string{},
		OriginalPrice:  first(doc, sel.OriginalPrice),
		DiscountRate:   first(doc, sel.DiscountRate),
		CTATexts:       collect(doc, sel.CTA, maxCTARunes),
		ShopName:       first(doc, sel.Shop),
		ReviewAverage:  first(doc, sel.ReviewAverage),
		ReviewCount:    first(doc, sel.ReviewCount),
		Specifications: specifications(doc, sel.SpecRows),
		Breadcrumbs:    collect(doc, sel.Breadcrumbs, 0),
	}
	if base != nil {
		page.URL = base.String()
	}
	if price := first(doc, sel.Price); price != "" {
		page.PriceTexts = append(page.PriceTexts, price)
	}

	imgs := e.scraper.Extract(doc, base)
	if len(imgs) > MaxImages {
		imgs = imgs[:MaxImages]
	}
	page.Images = imgs

	return page
}

func (e *Extractor) title(doc *goquery.Document) string {
	if t := first(doc, e.selectors.Title); t != "" {
		return t
	}
	t := strings.TrimSpace(doc.Find("title").First().Text())
	for _, s := range e.selectors.TitleStrip {
		t = strings.ReplaceAll(t, s, "")
	}
	return strings.TrimSpace(t)
}

// first returns the text of the first selector that matches a non-empty element
func first(doc *goquery.Document, selectors []string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(doc.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// collect returns the deduplicated texts of every match. maxRunes of zero disables the length cap.
func collect(doc *goquery.Document, selectors []string, maxRunes int) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, s := range selectors {
		doc.Find(s).Each(func(_ int, el *goquery.Selection) {
			text := elementText(el)
			if text == "" {
				return
			}
			if maxRunes > 0 && utf8.RuneCountInString(text) >= maxRunes {
				return
			}
			if _, ok := seen[text]; ok {
				return
			}
			seen[text] = struct{}{}
			out = append(out, text)
		})
	}
	return out
}

// elementText is the trimmed text of el, falling back to the value attribute for inputs
func elementText(el *goquery.Selection) string {
	if text := strings.TrimSpace(el.Text()); text != "" {
		return text
	}
	if goquery.NodeName(el) == "input" {
		return strings.TrimSpace(el.AttrOr("value", ""))
	}
	return ""
}

func description(doc *goquery.Document, selectors []string) string {
	var parts []string
	seen := make(map[string]struct{})
	for _, s := range selectors {
		doc.Find(s).Each(func(_ int, el *goquery.Selection) {
			text := blockText(el)
			if utf8.RuneCountInString(text) <= minDescriptionRunes {
				return
			}
			if _, ok := seen[text]; ok {
				return
			}
			seen[text] = struct{}{}
			parts = append(parts, text)
		})
	}
	return strings.Join(parts, "\n\n")
}

// blockText joins the trimmed text nodes under el with newlines, skipping scripts and styles
func blockText(el *goquery.Selection) string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range el.Nodes {
		walk(n)
	}
	return strings.Join(lines, "\n")
}

func specifications(doc *goquery.Document, selectors []string) map[string]string {
	specs := make(map[string]string)
	for _, s := range selectors {
		doc.Find(s).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("th, td")
			if cells.Length() < 2 {
				return
			}
			key := strings.TrimSpace(cells.Eq(0).Text())
			value := strings.TrimSpace(cells.Eq(1).Text())
			if key != "" && value != "" {
				specs[key] = value
			}
		})
	}
	return specs
}
