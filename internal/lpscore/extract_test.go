package lpscore

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const validScore = `{
  "overallScore": 3.5,
  "scores": [
    {"category": "Appeal-axis clarity", "score": 4, "feedback": "商品名が明確です"},
    {"category": "Trust signals", "score": 2, "feedback": "レビュー情報が不足しています"}
  ],
  "improvements": ["レビューを掲載する", "送料を明記する"],
  "imageAnalysis": [
    {"imageUrl": "https://image.rakuten.co.jp/a.jpg", "analysis": "メイン画像", "suggestions": ["背景を白に"], "score": 3}
  ]
}`

func wantValidScore() *LPScore {
	return &LPScore{
		OverallScore: 3.5,
		Scores: []CategoryScore{
			{Category: "Appeal-axis clarity", Score: 4, Feedback: "商品名が明確です"},
			{Category: "Trust signals", Score: 2, Feedback: "レビュー情報が不足しています"},
		},
		Improvements: []string{"レビューを掲載する", "送料を明記する"},
		ImageAnalysis: []ImageAnalysis{
			{ImageURL: "https://image.rakuten.co.jp/a.jpg", Analysis: "メイン画像", Suggestions: []string{"背景を白に"}, Score: 3},
		},
	}
}

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bare object", validScore},
		{"fenced block", "Here is the result:\n```json\n" + validScore + "\n```\nThanks"},
		{"uppercase fence", "```JSON\n" + validScore + "\n```"},
		{"prose around object", "Sure! " + validScore + " Let me know if you need more."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractScore(tt.text)
			if err != nil {
				t.Fatalf("ExtractScore failed: %v", err)
			}
			if diff := cmp.Diff(wantValidScore(), got); diff != "" {
				t.Errorf("ExtractScore mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractScoreFencedBlockWins(t *testing.T) {
	text := `{"overallScore": 9} ` + "```json\n" + validScore + "\n```"
	got, err := ExtractScore(text)
	if err != nil {
		t.Fatalf("ExtractScore failed: %v", err)
	}
	if got.OverallScore != 3.5 {
		t.Errorf("expected fenced object to be used, got overallScore %v", got.OverallScore)
	}
}

func TestExtractScoreTolerantDecoding(t *testing.T) {
	text := `{
  // model commentary
  overallScore: 4,
  'scores': [{"category": "Price appeal", "score": 5, "feedback": "安い",},],
  "improvements": [],
}`
	got, err := ExtractScore(text)
	if err != nil {
		t.Fatalf("ExtractScore failed: %v", err)
	}
	want := &LPScore{
		OverallScore:  4,
		Scores:        []CategoryScore{{Category: "Price appeal", Score: 5, Feedback: "安い"}},
		Improvements:  []string{},
		ImageAnalysis: []ImageAnalysis{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractScore mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractScoreMalformed(t *testing.T) {
	tests := map[string]string{
		"no braces":        "I cannot score this page.",
		"empty":            "",
		"only closing":     "} nothing {",
		"broken object":    `{"overallScore": 4, "scores": [}`,
		"broken fence":     "```json\nnot json\n```",
		"top-level string": "```json\n\"text\"\n```",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractScore(text)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestExtractScoreSchemaViolation(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
	}{
		{
			"category score out of range",
			`{"overallScore": 4, "scores": [{"category": "a", "score": 9, "feedback": "f"}], "improvements": []}`,
			"scores[0].score",
		},
		{
			"category score zero",
			`{"overallScore": 4, "scores": [{"category": "a", "score": 4, "feedback": "f"}, {"category": "b", "score": 0, "feedback": "f"}], "improvements": []}`,
			"scores[1].score",
		},
		{
			"fractional category score",
			`{"overallScore": 4, "scores": [{"category": "a", "score": 3.5, "feedback": "f"}], "improvements": []}`,
			"scores[0].score",
		},
		{
			"overall above range",
			`{"overallScore": 5.5, "scores": [], "improvements": []}`,
			"overallScore",
		},
		{
			"overall NaN",
			`{"overallScore": NaN, "scores": [], "improvements": []}`,
			"overallScore",
		},
		{
			"overall Infinity",
			`{"overallScore": Infinity, "scores": [], "improvements": []}`,
			"overallScore",
		},
		{
			"category score NaN",
			`{"overallScore": 4, "scores": [{"category": "a", "score": NaN, "feedback": "f"}], "improvements": []}`,
			"scores[0].score",
		},
		{
			"overall missing",
			`{"scores": [], "improvements": []}`,
			"overallScore",
		},
		{
			"overall as string",
			`{"overallScore": "4", "scores": [], "improvements": []}`,
			"overallScore",
		},
		{
			"scores missing",
			`{"overallScore": 4, "improvements": []}`,
			"scores",
		},
		{
			"feedback missing",
			`{"overallScore": 4, "scores": [{"category": "a", "score": 3}], "improvements": []}`,
			"scores[0].feedback",
		},
		{
			"improvement not a string",
			`{"overallScore": 4, "scores": [], "improvements": ["ok", 3]}`,
			"improvements[1]",
		},
		{
			"image score out of range",
			`{"overallScore": 4, "scores": [], "improvements": [], "imageAnalysis": [{"imageUrl": "u", "analysis": "a", "suggestions": [], "score": 6}]}`,
			"imageAnalysis[0].score",
		},
		{
			"imageAnalysis wrong type",
			`{"overallScore": 4, "scores": [], "improvements": [], "imageAnalysis": "none"}`,
			"imageAnalysis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractScore(tt.text)
			if !errors.Is(err, ErrSchemaViolation) {
				t.Fatalf("expected ErrSchemaViolation, got %v", err)
			}
			var violation *SchemaViolationError
			if !errors.As(err, &violation) {
				t.Fatalf("expected *SchemaViolationError, got %T", err)
			}
			if violation.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, violation.Field)
			}
		})
	}
}

func TestExtractScoreEmptyImageAnalysis(t *testing.T) {
	for name, text := range map[string]string{
		"absent": `{"overallScore": 2, "scores": [], "improvements": []}`,
		"null":   `{"overallScore": 2, "scores": null, "improvements": null, "imageAnalysis": null}`,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ExtractScore(text)
			if err != nil {
				t.Fatalf("ExtractScore failed: %v", err)
			}
			if got.ImageAnalysis == nil || len(got.ImageAnalysis) != 0 {
				t.Errorf("expected empty imageAnalysis, got %#v", got.ImageAnalysis)
			}
		})
	}
}

func TestExtractScoreRoundTrip(t *testing.T) {
	want := wantValidScore()
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	got, err := ExtractScore("```json\n" + string(data) + "\n```")
	if err != nil {
		t.Fatalf("ExtractScore failed: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractScoreRoundTripFenceInsideStrings(t *testing.T) {
	want := &LPScore{
		OverallScore: 3,
		Scores: []CategoryScore{
			{Category: "Call-to-action clarity", Score: 3, Feedback: "wrap output in ```json {} ``` please"},
		},
		Improvements: []string{"```json\n{\"a\": 1}\n```"},
		ImageAnalysis: []ImageAnalysis{
			{ImageURL: "https://image.rakuten.co.jp/a.jpg", Analysis: "```json", Suggestions: []string{"```"}, Score: 2},
		},
	}
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for name, text := range map[string]string{
		"bare":   string(data),
		"fenced": "```json\n" + string(data) + "\n```",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ExtractScore(text)
			if err != nil {
				t.Fatalf("ExtractScore failed: %v", err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
