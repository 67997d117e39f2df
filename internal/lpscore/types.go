package lpscore

import (
	"errors"
	"strings"
)

// ErrMissingTitle is returned when an LPInput has no usable title
var ErrMissingTitle = errors.New("landing page title is required")

// LPInput describes the landing page sent for scoring. Slice order is the order
// used in the prompt.
type LPInput struct {
	Title      string   `json:"title" yaml:"title"`
	Headings   []string `json:"headings" yaml:"headings"`
	Body       string   `json:"body" yaml:"body"`
	Images     []string `json:"images" yaml:"images"`
	PriceTexts []string `json:"price_texts" yaml:"price_texts"`
	CTATexts   []string `json:"cta_texts" yaml:"cta_texts"`
}

// Validate checks the fields required before a model call is made
func (in LPInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrMissingTitle
	}
	return nil
}

// LPScore is the validated rubric result for one landing page
type LPScore struct {
	OverallScore  float64         `json:"overallScore" yaml:"overallScore"`
	Scores        []CategoryScore `json:"scores" yaml:"scores"`
	Improvements  []string        `json:"improvements" yaml:"improvements"`
	ImageAnalysis []ImageAnalysis `json:"imageAnalysis" yaml:"imageAnalysis"`
}

// CategoryScore is the score for one rubric category
type CategoryScore struct {
	Category string `json:"category" yaml:"category"`
	Score    int    `json:"score" yaml:"score"`
	Feedback string `json:"feedback" yaml:"feedback"`
}

// ImageAnalysis is the model's assessment of a single image
type ImageAnalysis struct {
	ImageURL    string   `json:"imageUrl" yaml:"imageUrl"`
	Analysis    string   `json:"analysis" yaml:"analysis"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
	Score       int      `json:"score" yaml:"score"`
}

// Score bounds shared by overall, category and image scores
const (
	MinScore = 1
	MaxScore = 5
)
