package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeout bounds a single product page fetch
	DefaultTimeout = 30 * time.Second

	maxPageBytes = 10 * 1024 * 1024

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// StatusError is returned when a page answers with a non-2xx status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("page %s returned status %d", e.URL, e.StatusCode)
}

// Fetcher retrieves product pages and parses them into documents
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new page fetcher. A zero timeout uses DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch issues one GET for pageURL and returns the parsed document together with the
// parsed page URL, which callers use as the base for relative references.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, *url.URL, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid page URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, nil, fmt.Errorf("page URL must be http or https: %s", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.7,en;q=0.3")
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	// Rakuten shop pages are still often served as EUC-JP or Shift_JIS
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read page body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, base, nil
}
