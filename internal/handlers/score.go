package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/ectool/lpscorer/internal/models"
	"github.com/ectool/lpscorer/internal/providers"
)

// HandleScore serves POST /api/lp-scorer. The body is an LPInput; the optional
// item_url query parameter is stored with the result.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input lpscore.LPInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	if h.scorer == nil {
		h.writeError(w, "Scoring is not configured", http.StatusInternalServerError)
		return
	}

	score, err := h.scorer.Score(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, lpscore.ErrMissingTitle):
			h.writeErrorDetails(w, "Invalid landing page input", err.Error(), http.StatusBadRequest)
		case errors.Is(err, lpscore.ErrModelTimeout):
			h.writeErrorDetails(w, "Scoring timed out", err.Error(), http.StatusGatewayTimeout)
		case errors.Is(err, lpscore.ErrMalformedResponse), errors.Is(err, lpscore.ErrSchemaViolation):
			h.writeErrorDetails(w, "Model returned an invalid score", err.Error(), http.StatusBadGateway)
		case errors.Is(err, providers.ErrMissingCredentials):
			h.writeErrorDetails(w, "Model provider is not configured", err.Error(), http.StatusInternalServerError)
		default:
			h.writeErrorDetails(w, "Scoring failed", err.Error(), http.StatusInternalServerError)
		}
		return
	}

	record := models.NewScoreRecord(r.URL.Query().Get("item_url"), h.scorer.Provider(), h.scorer.Model(), input, *score)
	h.scoreStore.Add(record)
	slog.Info("Stored score", "id", record.ID, "title", record.Title, "overall", score.OverallScore)

	w.Header().Set("X-Score-ID", record.ID)
	h.writeJSON(w, score)
}
