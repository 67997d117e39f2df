package models

import (
	"time"

	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/google/uuid"
)

// ScoreRecord is one stored landing page scoring result
type ScoreRecord struct {
	ID        string          `json:"id" yaml:"id"`
	ItemURL   string          `json:"item_url,omitempty" yaml:"item_url,omitempty"`
	Title     string          `json:"title" yaml:"title"`
	Provider  string          `json:"provider" yaml:"provider"`
	Model     string          `json:"model" yaml:"model"`
	Input     lpscore.LPInput `json:"input" yaml:"input"`
	Score     lpscore.LPScore `json:"score" yaml:"score"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
}

// NewScoreRecord creates a record with a fresh id and the current time
func NewScoreRecord(itemURL, provider, model string, input lpscore.LPInput, score lpscore.LPScore) *ScoreRecord {
	return &ScoreRecord{
		ID:        uuid.NewString(),
		ItemURL:   itemURL,
		Title:     input.Title,
		Provider:  provider,
		Model:     model,
		Input:     input,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}
}
