package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ectool/lpscorer/internal/images"
	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/ectool/lpscorer/internal/models"
	"github.com/ectool/lpscorer/internal/product"
	"github.com/ectool/lpscorer/internal/rakuten"
	"github.com/ectool/lpscorer/internal/storage"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

type Handler struct {
	searchClient *rakuten.Client
	scraper      *images.Scraper
	extractor    *product.Extractor
	scorer       *lpscore.Service
	scoreStore   *storage.ScoreStore
}

// Deps are the services the handlers dispatch to
type Deps struct {
	Search    *rakuten.Client
	Scraper   *images.Scraper
	Extractor *product.Extractor
	Scorer    *lpscore.Service
	Store     *storage.ScoreStore
}

func New(deps Deps) *Handler {
	if deps.Scraper == nil {
		deps.Scraper = images.NewScraper(nil, nil)
	}
	if deps.Extractor == nil {
		deps.Extractor = product.NewExtractor(deps.Scraper, nil)
	}
	if deps.Store == nil {
		deps.Store = storage.New()
	}
	return &Handler{
		searchClient: deps.Search,
		scraper:      deps.Scraper,
		extractor:    deps.Extractor,
		scorer:       deps.Scorer,
		scoreStore:   deps.Store,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorDetails(w, message, "", code)
}

func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message, "details", details, "status", code)
	} else {
		slog.Warn(message, "details", details, "status", code)
	}
	h.writeJSONStatus(w, code, errorResponse{Error: message, Details: details})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeErrorDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// Score record helpers
func (h *Handler) getRecordOrError(w http.ResponseWriter, id string) (*models.ScoreRecord, bool) {
	record, exists := h.scoreStore.Get(id)
	if !exists {
		h.writeError(w, "Score not found", http.StatusNotFound)
		return nil, false
	}
	return record, true
}
