package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ectool/lpscorer/internal/export"
	"github.com/ectool/lpscorer/internal/summary"
)

func (h *Handler) HandleScores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, h.scoreStore.List())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleScoreDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/scores/")

	record, ok := h.getRecordOrError(w, id)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, record)
	case http.MethodDelete:
		h.scoreStore.Delete(id)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleExport serves GET /api/scores/export?format=json|yaml|parquet
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, h.scoreStore.List()); err != nil {
		h.writeErrorDetails(w, "Export failed", err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("lp-scores-%s.%s", time.Now().Format("2006-01-02_15-04-05"), format.Extension())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = w.Write(buf.Bytes())
}

// HandleSummary serves GET /api/scores/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, summary.Aggregate(h.scoreStore.List()))
}
