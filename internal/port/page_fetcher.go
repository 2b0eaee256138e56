package port

import "context"

// FetchedPage is the raw response of a page fetch.
type FetchedPage struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// PageFetcher retrieves a remote RFP page. Implementations must bound the
// request duration and treat HTTP error statuses as failures.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*FetchedPage, error)
}
