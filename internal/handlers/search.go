package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ectool/lpscorer/internal/rakuten"
)

// HandleSearch serves GET /api/rakuten?q=&scraping=true&hits=
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	opts := rakuten.SearchOptions{
		Scraping: q.Get("scraping") == "true",
		Sort:     q.Get("sort"),
	}
	if hits := q.Get("hits"); hits != "" {
		n, err := strconv.Atoi(hits)
		if err != nil || n <= 0 {
			h.writeError(w, `Query parameter "hits" must be a positive integer`, http.StatusBadRequest)
			return
		}
		opts.Hits = n
	}

	if h.searchClient == nil {
		h.writeError(w, "Marketplace search is not configured", http.StatusInternalServerError)
		return
	}

	result, err := h.searchClient.Search(r.Context(), q.Get("q"), opts)
	if err != nil {
		var upstream *rakuten.UpstreamError
		switch {
		case errors.Is(err, rakuten.ErrEmptyQuery):
			h.writeError(w, `Query parameter "q" is required`, http.StatusBadRequest)
		case errors.Is(err, rakuten.ErrMissingAppID):
			h.writeErrorDetails(w, "RAKUTEN_APP_ID is not configured",
				"Register an application at https://webservice.rakuten.co.jp/ and set RAKUTEN_APP_ID", http.StatusInternalServerError)
		case errors.As(err, &upstream):
			h.writeErrorDetails(w, "Failed to fetch data from the marketplace API", err.Error(), http.StatusBadGateway)
		case errors.Is(err, rakuten.ErrSchemaViolation):
			h.writeErrorDetails(w, "Marketplace API response has an unexpected format", err.Error(), http.StatusBadGateway)
		default:
			h.writeErrorDetails(w, "Internal server error", err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, result)
}
