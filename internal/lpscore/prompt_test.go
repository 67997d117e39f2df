package lpscore

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	input := LPInput{
		Title:      "T",
		Headings:   []string{"H1", "H2"},
		Body:       "B",
		PriceTexts: []string{"¥100"},
		CTATexts:   []string{"Buy"},
	}

	prompt := BuildPrompt(input)

	for _, want := range []string{"Title: T", "H1, H2", "Description: B", "¥100", "Buy", "Number of images: 0", `"imageAnalysis" as an empty array []`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	for _, category := range Categories {
		if !strings.Contains(prompt, category) {
			t.Errorf("prompt missing category %q", category)
		}
	}
	if !strings.Contains(prompt, "No images were supplied") {
		t.Error("prompt should state that no images were supplied")
	}
}

func TestBuildPromptWithImages(t *testing.T) {
	long := strings.Repeat("説明", 5000)
	input := LPInput{
		Title:  "T",
		Body:   long,
		Images: []string{"https://image.rakuten.co.jp/a.jpg", "https://image.rakuten.co.jp/b.jpg"},
	}

	prompt := BuildPrompt(input)

	if !strings.Contains(prompt, "https://image.rakuten.co.jp/a.jpg, https://image.rakuten.co.jp/b.jpg") {
		t.Error("prompt should list image URLs joined by commas")
	}
	if !strings.Contains(prompt, "Number of images: 2") {
		t.Error("prompt should state the image count")
	}
	if !strings.Contains(prompt, long) {
		t.Error("body must not be truncated")
	}
	if strings.Contains(prompt, "No images were supplied") {
		t.Error("prompt should not claim that images are missing")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	input := LPInput{Title: "T", Headings: []string{"a"}, CTATexts: []string{"b"}}
	if BuildPrompt(input) != BuildPrompt(input) {
		t.Error("BuildPrompt should be deterministic")
	}
}

func TestLPInputValidate(t *testing.T) {
	tests := []struct {
		title string
		ok    bool
	}{
		{"T", true},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		err := LPInput{Title: tt.title}.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%q) = %v, want ok=%v", tt.title, err, tt.ok)
		}
	}
}
