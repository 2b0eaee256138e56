package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"rfpflow/internal/port"
)

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 10 << 20

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPFetcher performs a single bounded GET per page. It never retries.
type HTTPFetcher struct {
	client  *http.Client
	ua      string
	timeout time.Duration
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.ua = ua
		}
	}
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// NewHTTPFetcher creates a fetcher with a 10 second timeout.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:  &http.Client{},
		ua:      defaultUserAgent,
		timeout: 10 * time.Second,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

var _ port.PageFetcher = (*HTTPFetcher)(nil)

// Fetch GETs pageURL. Transport errors, timeouts and statuses >= 400 are
// returned as errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*port.FetchedPage, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fetcher: new request: %w", err)
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetcher: do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetcher: %d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetcher: read body: %w", err)
	}

	return &port.FetchedPage{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
