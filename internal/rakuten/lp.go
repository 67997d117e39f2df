package rakuten

import (
	"strconv"
	"strings"

	"github.com/ectool/lpscorer/internal/lpscore"
)

// DefaultCTATexts are the purchase prompts every marketplace item page carries
var DefaultCTATexts = []string{"商品を見る", "購入する", "カートに入れる"}

// LPInput builds the scoring input for a search result
func (it Item) LPInput() lpscore.LPInput {
	headings := []string{it.Name}
	if it.Catchcopy != "" {
		headings = append(headings, it.Catchcopy)
	}

	price := FormatYen(it.Price)

	lines := []string{
		it.Name,
		it.Catchcopy,
		it.Description,
		it.Shop + "の商品です。",
		"価格: " + price,
	}
	if it.ReviewAverage != nil && *it.ReviewAverage != 0 {
		lines = append(lines, "レビュー平均: "+strconv.FormatFloat(*it.ReviewAverage, 'f', -1, 64)+"点")
	}
	if it.ReviewCount != 0 {
		lines = append(lines, "レビュー数: "+strconv.Itoa(it.ReviewCount)+"件")
	}

	body := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			body = append(body, line)
		}
	}

	imgs := it.Images
	if len(imgs) == 0 && it.Image != "" {
		imgs = []string{it.Image}
	}

	return lpscore.LPInput{
		Title:      it.Name,
		Headings:   headings,
		Body:       strings.Join(body, "\n\n"),
		Images:     append([]string{}, imgs...),
		PriceTexts: []string{price},
		CTATexts:   append([]string{}, DefaultCTATexts...),
	}
}

// FormatYen renders a price as ¥ with thousands separators
func FormatYen(price int) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = -price
	}
	digits := strconv.Itoa(price)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "¥" + b.String()
}
