package product

import (
	"strings"

	"github.com/ectool/lpscorer/internal/lpscore"
)

// Page is the information extracted from one product page
type Page struct {
	URL            string            `json:"url" yaml:"url"`
	Title          string            `json:"title" yaml:"title"`
	Headings       []string          `json:"headings" yaml:"headings"`
	Body           string            `json:"body" yaml:"body"`
	Features       []string          `json:"features" yaml:"features"`
	PriceTexts     []string          `json:"price_texts" yaml:"price_texts"`
	OriginalPrice  string            `json:"original_price,omitempty" yaml:"original_price,omitempty"`
	DiscountRate   string            `json:"discount_rate,omitempty" yaml:"discount_rate,omitempty"`
	CTATexts       []string          `json:"cta_texts" yaml:"cta_texts"`
	Images         []string          `json:"images" yaml:"images"`
	ShopName       string            `json:"shop_name,omitempty" yaml:"shop_name,omitempty"`
	ReviewAverage  string            `json:"review_average,omitempty" yaml:"review_average,omitempty"`
	ReviewCount    string            `json:"review_count,omitempty" yaml:"review_count,omitempty"`
	Specifications map[string]string `json:"specifications" yaml:"specifications"`
	Breadcrumbs    []string          `json:"breadcrumbs" yaml:"breadcrumbs"`
}

// LPInput converts the page into scoring input. fallbackCTAs is used only
// when the page exposed no CTA text of its own.
func (p *Page) LPInput(fallbackCTAs []string) lpscore.LPInput {
	headings := p.Headings
	if len(headings) == 0 && p.Title != "" {
		headings = []string{p.Title}
	}

	parts := []string{p.Body}
	if len(p.Features) > 0 {
		parts = append(parts, strings.Join(p.Features, "\n"))
	}
	if p.ShopName != "" {
		parts = append(parts, p.ShopName+"の商品です。")
	}
	if len(p.PriceTexts) > 0 {
		parts = append(parts, "価格: "+p.PriceTexts[0])
	}
	if p.ReviewAverage != "" {
		parts = append(parts, "レビュー平均: "+p.ReviewAverage)
	}
	if p.ReviewCount != "" {
		parts = append(parts, "レビュー数: "+p.ReviewCount)
	}

	body := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			body = append(body, part)
		}
	}

	ctas := p.CTATexts
	if len(ctas) == 0 {
		ctas = fallbackCTAs
	}

	return lpscore.LPInput{
		Title:      p.Title,
		Headings:   append([]string{}, headings...),
		Body:       strings.Join(body, "\n\n"),
		Images:     append([]string{}, p.Images...),
		PriceTexts: append([]string{}, p.PriceTexts...),
		CTATexts:   append([]string{}, ctas...),
	}
}
