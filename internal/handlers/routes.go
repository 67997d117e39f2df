package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes registers every endpoint on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/rakuten", h.HandleSearch)
	mux.HandleFunc("/api/lp-scorer", h.HandleScore)
	mux.HandleFunc("/api/scrape-product", h.HandleScrapeProduct)
	mux.HandleFunc("/api/scrape-images", h.HandleScrapeImages)
	mux.HandleFunc("/api/scores", h.HandleScores)
	mux.HandleFunc("/api/scores/export", h.HandleExport)
	mux.HandleFunc("/api/scores/summary", h.HandleSummary)
	mux.HandleFunc("/api/scores/", h.HandleScoreDetail)
	mux.HandleFunc("/api/health", h.HandleHealth)
	mux.HandleFunc("/healthcheck", h.HandleHealthcheck)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
