package siteinv

import (
	"context"
	"strings"
)

// Response is the successful outcome of fetching a single URL.
type Response struct {
	// URL is the URL that was requested.
	URL string

	// StatusCode is the HTTP status; always 2xx for a returned Response.
	StatusCode int

	// ContentType is the raw Content-Type header value (may include parameters).
	ContentType string

	// Body holds the response body. For rendering fetchers this is the
	// serialized DOM after scripts have run.
	Body string
}

// IsHTML reports whether the response carries an HTML document that may
// contain further links.
func (r *Response) IsHTML() bool {
	ct := strings.ToLower(r.ContentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}

// Fetcher retrieves resources from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch issues a GET for url and returns the response.
	// Network errors, timeouts, and non-2xx statuses are all returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// LinkExtractor extracts raw link targets from HTML.
type LinkExtractor interface {
	// ExtractLinks parses html and returns href/src targets in document order,
	// exactly as written (before resolution against baseURL or normalization).
	ExtractLinks(html string, baseURL string) ([]string, error)
}
