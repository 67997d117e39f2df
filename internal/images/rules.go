package images

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// SelectorGroup is a named, ordered list of CSS selectors
type SelectorGroup struct {
	Name      string   `yaml:"name"`
	Selectors []string `yaml:"selectors"`
}

// Rules holds the marketplace-specific lists used to find and filter product images.
// They live in YAML so they can follow markup changes without code changes.
type Rules struct {
	Selectors  []SelectorGroup `yaml:"selectors"`
	Domains    []string        `yaml:"domains"`
	Extensions []string        `yaml:"extensions"`
	Exclude    []string        `yaml:"exclude"`
}

// DefaultRules returns the embedded Rakuten rules
func DefaultRules() *Rules {
	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded image rules are invalid: %v", err))
	}
	return rules
}

// LoadRules reads rules from a YAML file. An empty path yields the defaults.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes and checks a YAML rules document
func ParseRules(data []byte) (*Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(rules.Selectors) == 0 {
		return nil, fmt.Errorf("at least one selector group is required")
	}
	for i, group := range rules.Selectors {
		if len(group.Selectors) == 0 {
			return nil, fmt.Errorf("selector group %d (%q) is empty", i, group.Name)
		}
	}
	if len(rules.Domains) == 0 {
		return nil, fmt.Errorf("domain allow-list is empty")
	}
	if len(rules.Extensions) == 0 {
		return nil, fmt.Errorf("extension list is empty")
	}

	return &rules, nil
}

// AllSelectors flattens the selector groups in order
func (r *Rules) AllSelectors() []string {
	var out []string
	for _, group := range r.Selectors {
		out = append(out, group.Selectors...)
	}
	return out
}
