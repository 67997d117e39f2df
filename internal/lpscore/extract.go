package lpscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/titanous/json5"
)

var (
	// ErrMalformedResponse is returned when no JSON object can be recovered from model output
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrSchemaViolation is matched by every *SchemaViolationError
	ErrSchemaViolation = errors.New("model response violates score schema")
)

// SchemaViolationError names the offending field and the constraint it broke
type SchemaViolationError struct {
	Field      string
	Constraint string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Constraint)
}

// Is reports whether target is ErrSchemaViolation
func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

func violation(field, format string, args ...any) error {
	return &SchemaViolationError{Field: field, Constraint: fmt.Sprintf(format, args...)}
}

var fencedJSON = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")

// ExtractScore recovers the LPScore JSON object from free-form model output and
// validates it. A fenced json block wins over any bare object in the text, unless
// the whole text is itself one object.
func ExtractScore(text string) (*LPScore, error) {
	candidates := locateObjects(text)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	var firstErr error
	for _, candidate := range candidates {
		raw, err := decodeObject(candidate)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return validateScore(raw)
	}
	return nil, firstErr
}

// locateObjects lists the spans that may hold the score object, most specific first
func locateObjects(text string) []string {
	var out []string

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		out = append(out, trimmed)
	}
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		out = append(out, m[1])
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		out = append(out, text[start:end+1])
	}
	return out
}

// decodeObject tries strict JSON first and falls back to JSON5, which accepts the
// trailing commas, comments and single quotes models tend to emit.
func decodeObject(candidate string) (map[string]any, error) {
	var raw any
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		if err5 := json5.Unmarshal([]byte(candidate), &raw); err5 != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedResponse)
	}
	return obj, nil
}

func validateScore(raw map[string]any) (*LPScore, error) {
	var score LPScore

	overall, err := requireNumber(raw, "overallScore", "overallScore")
	if err != nil {
		return nil, err
	}
	if !(overall >= MinScore && overall <= MaxScore) {
		return nil, violation("overallScore", "must be between %d and %d, got %v", MinScore, MaxScore, overall)
	}
	score.OverallScore = overall

	scores, err := requireList(raw, "scores", "scores")
	if err != nil {
		return nil, err
	}
	score.Scores = make([]CategoryScore, 0, len(scores))
	for i, item := range scores {
		path := fmt.Sprintf("scores[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, violation(path, "must be an object")
		}
		cs, err := categoryScore(obj, path)
		if err != nil {
			return nil, err
		}
		score.Scores = append(score.Scores, cs)
	}

	improvements, err := requireList(raw, "improvements", "improvements")
	if err != nil {
		return nil, err
	}
	score.Improvements, err = stringList(improvements, "improvements")
	if err != nil {
		return nil, err
	}

	score.ImageAnalysis = []ImageAnalysis{}
	if v, ok := raw["imageAnalysis"]; ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			return nil, violation("imageAnalysis", "must be a list")
		}
		for i, item := range list {
			path := fmt.Sprintf("imageAnalysis[%d]", i)
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, violation(path, "must be an object")
			}
			ia, err := imageAnalysis(obj, path)
			if err != nil {
				return nil, err
			}
			score.ImageAnalysis = append(score.ImageAnalysis, ia)
		}
	}

	return &score, nil
}

func categoryScore(obj map[string]any, path string) (CategoryScore, error) {
	category, err := requireString(obj, "category", path+".category")
	if err != nil {
		return CategoryScore{}, err
	}
	value, err := requireScore(obj, "score", path+".score")
	if err != nil {
		return CategoryScore{}, err
	}
	feedback, err := requireString(obj, "feedback", path+".feedback")
	if err != nil {
		return CategoryScore{}, err
	}
	return CategoryScore{Category: category, Score: value, Feedback: feedback}, nil
}

func imageAnalysis(obj map[string]any, path string) (ImageAnalysis, error) {
	imageURL, err := requireString(obj, "imageUrl", path+".imageUrl")
	if err != nil {
		return ImageAnalysis{}, err
	}
	analysis, err := requireString(obj, "analysis", path+".analysis")
	if err != nil {
		return ImageAnalysis{}, err
	}
	rawSuggestions, err := requireList(obj, "suggestions", path+".suggestions")
	if err != nil {
		return ImageAnalysis{}, err
	}
	suggestions, err := stringList(rawSuggestions, path+".suggestions")
	if err != nil {
		return ImageAnalysis{}, err
	}
	value, err := requireScore(obj, "score", path+".score")
	if err != nil {
		return ImageAnalysis{}, err
	}
	return ImageAnalysis{
		ImageURL:    imageURL,
		Analysis:    analysis,
		Suggestions: suggestions,
		Score:       value,
	}, nil
}

func requireNumber(obj map[string]any, key, path string) (float64, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return 0, violation(path, "is required")
	}
	n, ok := v.(float64)
	if !ok {
		return 0, violation(path, "must be a number")
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, violation(path, "must be a finite number, got %v", n)
	}
	return n, nil
}

func requireScore(obj map[string]any, key, path string) (int, error) {
	n, err := requireNumber(obj, key, path)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) {
		return 0, violation(path, "must be an integer, got %v", n)
	}
	if !(n >= MinScore && n <= MaxScore) {
		return 0, violation(path, "must be between %d and %d, got %v", MinScore, MaxScore, n)
	}
	return int(n), nil
}

func requireString(obj map[string]any, key, path string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", violation(path, "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", violation(path, "must be a string")
	}
	return s, nil
}

// requireList reads a list field; an explicit null is treated as an empty list
func requireList(obj map[string]any, key, path string) ([]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, violation(path, "is required")
	}
	if v == nil {
		return []any{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, violation(path, "must be a list")
	}
	return list, nil
}

func stringList(list []any, path string) ([]string, error) {
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, violation(fmt.Sprintf("%s[%d]", path, i), "must be a string")
		}
		out = append(out, s)
	}
	return out, nil
}
