package handlers

import (
	"net/http"
	"strings"

	"github.com/ectool/lpscorer/internal/images"
	"github.com/ectool/lpscorer/internal/lpscore"
	"github.com/ectool/lpscorer/internal/product"
	"github.com/ectool/lpscorer/internal/rakuten"
)

type scrapeProductRequest struct {
	ProductURL string `json:"productUrl"`
}

type scrapeProductResponse struct {
	Success bool            `json:"success"`
	Data    *product.Page   `json:"data"`
	LPInput lpscore.LPInput `json:"lpInput"`
}

// HandleScrapeProduct serves POST /api/scrape-product
func (h *Handler) HandleScrapeProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scrapeProductRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ProductURL) == "" {
		h.writeError(w, "productUrl is required", http.StatusBadRequest)
		return
	}

	page, err := h.extractor.Extract(r.Context(), req.ProductURL)
	if err != nil {
		h.writeErrorDetails(w, "Failed to scrape product page", err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, scrapeProductResponse{
		Success: true,
		Data:    page,
		LPInput: page.LPInput(rakuten.DefaultCTATexts),
	})
}

type scrapeImagesRequest struct {
	ProductURL string   `json:"productUrl"`
	APIImages  []string `json:"apiImages"`
}

type scrapeImagesResponse struct {
	Images  []string `json:"images"`
	Scraped int      `json:"scraped"`
}

// HandleScrapeImages serves POST /api/scrape-images. Scrape failures are not
// errors; the API images come back unchanged.
func (h *Handler) HandleScrapeImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scrapeImagesRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ProductURL) == "" {
		h.writeError(w, "productUrl is required", http.StatusBadRequest)
		return
	}

	scraped := h.scraper.Images(r.Context(), req.ProductURL)
	h.writeJSON(w, scrapeImagesResponse{
		Images:  images.Merge(req.APIImages, scraped),
		Scraped: len(scraped),
	})
}
