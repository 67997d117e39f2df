package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

type healthResponse struct {
	OK        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// HandleHealth serves GET /api/health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, healthResponse{
		OK:        true,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Status:    "healthy",
	})
}

// HandleHealthcheck serves the plain-text liveness probe
func (h *Handler) HandleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Unable to write healthcheck", "err", err)
	}
}
