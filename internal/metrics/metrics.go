package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lpscorer_search_requests_total",
		Help: "Marketplace search calls by outcome",
	}, []string{"outcome"}) // ok, upstream_error, schema_violation, failed

	scrapeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lpscorer_scrape_requests_total",
		Help: "Product page scrapes by outcome",
	}, []string{"outcome"}) // ok, status, timeout, failed

	scrapedImages = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lpscorer_scraped_images",
		Help:    "Number of accepted images per scraped page",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	scoreRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lpscorer_score_requests_total",
		Help: "Landing page scoring calls by outcome",
	}, []string{"provider", "outcome"}) // ok, malformed, schema_violation, timeout, failed

	modelLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lpscorer_model_call_seconds",
		Help:    "Latency of LLM completion calls",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
	}, []string{"provider"})
)

func IncSearch(outcome string) {
	searchRequests.WithLabelValues(outcome).Inc()
}

func IncScrape(outcome string) {
	scrapeRequests.WithLabelValues(outcome).Inc()
}

func ObserveScrapedImages(n int) {
	scrapedImages.Observe(float64(n))
}

func IncScore(provider, outcome string) {
	scoreRequests.WithLabelValues(provider, outcome).Inc()
}

func ObserveModelLatency(provider string, seconds float64) {
	modelLatency.WithLabelValues(provider).Observe(seconds)
}
