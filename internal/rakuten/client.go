package rakuten

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ectool/lpscorer/internal/metrics"
	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the public Rakuten Web Service host
	DefaultBaseURL = "https://app.rakuten.co.jp"
	searchPath     = "/services/api/IchibaItem/Search/20220601"

	// UserAgent identifies this tool to the marketplace API
	UserAgent = "EC-Tool-Template/1.0"

	// PlaceholderAppID is the value shipped in sample env files
	PlaceholderAppID = "your-rakuten-app-id-here"

	DefaultHits = 20
	MaxHits     = 30
	DefaultSort = "-reviewCount"
)

var (
	// ErrEmptyQuery is returned for a blank search keyword
	ErrEmptyQuery = errors.New("search query is required")
	// ErrMissingAppID is returned when no real application id is configured
	ErrMissingAppID = errors.New("RAKUTEN_APP_ID is not configured")
)

// UpstreamError reports a failed call to the marketplace API
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("marketplace request failed: %v", e.Err)
	}
	return fmt.Sprintf("marketplace API returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ImageScraper finds extra product images for an item page. Implementations
// must swallow their own failures.
type ImageScraper interface {
	Images(ctx context.Context, pageURL string) []string
}

// Options configures a Client
type Options struct {
	AppID    string
	BaseURL  string
	Timeout  time.Duration
	Interval time.Duration
	Scraper  ImageScraper
	Enrich   EnrichOptions
}

// SearchOptions controls a single search
type SearchOptions struct {
	Hits     int
	Sort     string
	Scraping bool
}

// Client is a Rakuten Ichiba item search client. Each client owns its spacer.
type Client struct {
	http    *resty.Client
	appID   string
	spacer  *Spacer
	scraper ImageScraper
	enrich  EnrichOptions
}

// NewClient creates a new search client
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	client.SetHeader("User-Agent", UserAgent)
	client.SetTimeout(opts.Timeout)

	return &Client{
		http:    client,
		appID:   opts.AppID,
		spacer:  NewSpacer(opts.Interval),
		scraper: opts.Scraper,
		enrich:  opts.Enrich.withDefaults(),
	}
}

// Search queries the item search API and returns transformed items. With
// Scraping set, the leading items are enriched with scraped images.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if c.appID == "" || c.appID == PlaceholderAppID {
		return nil, ErrMissingAppID
	}

	hits := opts.Hits
	if hits <= 0 {
		hits = DefaultHits
	}
	if hits > MaxHits {
		hits = MaxHits
	}
	sort := opts.Sort
	if sort == "" {
		sort = DefaultSort
	}

	if err := c.spacer.Wait(ctx); err != nil {
		return nil, err
	}

	slog.Info("Searching marketplace", "query", query, "hits", hits, "sort", sort)

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":        "json",
			"keyword":       query,
			"applicationId": c.appID,
			"hits":          strconv.Itoa(hits),
			"sort":          sort,
		}).
		Get(searchPath)
	if err != nil {
		metrics.IncSearch("upstream_error")
		return nil, &UpstreamError{Err: err}
	}
	if !res.IsSuccess() {
		metrics.IncSearch("upstream_error")
		slog.Error("Marketplace search failed", "status", res.StatusCode(), "body", res.String())
		return nil, &UpstreamError{StatusCode: res.StatusCode(), Body: res.String()}
	}

	var payload searchResponse
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		metrics.IncSearch("schema_violation")
		return nil, &SchemaViolationError{Field: "body", Constraint: err.Error()}
	}
	if err := payload.validate(); err != nil {
		metrics.IncSearch("schema_violation")
		return nil, err
	}

	items := make([]Item, 0, len(payload.Items))
	for _, entry := range payload.Items {
		items = append(items, entry.Item.toItem())
	}

	if opts.Scraping && c.scraper != nil {
		Enrich(ctx, items, c.scraper, c.enrich)
	}

	metrics.IncSearch("ok")
	slog.Info("Marketplace search finished", "query", query, "count", len(items), "scraping", opts.Scraping)

	return &SearchResult{Items: items, Total: len(items)}, nil
}
