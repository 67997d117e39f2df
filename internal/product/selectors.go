package product

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var defaultSelectors []byte

// Selectors lists the CSS selectors tried for each product page field
type Selectors struct {
	Title         []string `yaml:"title"`
	TitleStrip    []string `yaml:"title_strip"`
	Price         []string `yaml:"price"`
	OriginalPrice []string `yaml:"original_price"`
	DiscountRate  []string `yaml:"discount_rate"`
	Description   []string `yaml:"description"`
	Features      []string `yaml:"features"`
	Headings      []string `yaml:"headings"`
	Shop          []string `yaml:"shop"`
	ReviewAverage []string `yaml:"review_average"`
	ReviewCount   []string `yaml:"review_count"`
	SpecRows      []string `yaml:"spec_rows"`
	Breadcrumbs   []string `yaml:"breadcrumbs"`
	CTA           []string `yaml:"cta"`
}

// DefaultSelectors returns the embedded selector set
func DefaultSelectors() *Selectors {
	sel, err := ParseSelectors(defaultSelectors)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded product selectors: %v", err))
	}
	return sel
}

// LoadSelectors reads a selector file. An empty path returns the defaults.
func LoadSelectors(path string) (*Selectors, error) {
	if path == "" {
		return DefaultSelectors(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product selectors: %w", err)
	}
	return ParseSelectors(data)
}

// ParseSelectors decodes a YAML selector document. Title selectors are required.
func ParseSelectors(data []byte) (*Selectors, error) {
	var sel Selectors
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("failed to parse product selectors: %w", err)
	}
	if len(sel.Title) == 0 {
		return nil, fmt.Errorf("product selectors: title list is empty")
	}
	return &sel, nil
}
