// Package http provides HTTP-based implementations of gigarip.PageFetcher
// and gigarip.TileFetcher. Tile hosts serve static content, so plain
// requests suffice; no JavaScript rendering is involved.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gigarip/gigarip"
)

// DefaultPageTimeout is the default timeout for landing-page requests.
const DefaultPageTimeout = 10 * time.Second

// Ensure PageFetcher implements gigarip.PageFetcher at compile time.
var _ gigarip.PageFetcher = (*PageFetcher)(nil)

// PageFetcher retrieves landing-page HTML over HTTP.
type PageFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// PageOption configures a PageFetcher.
type PageOption func(*PageFetcher)

// WithPageTimeout sets the timeout for page requests.
// Defaults to DefaultPageTimeout if not specified.
func WithPageTimeout(d time.Duration) PageOption {
	return func(f *PageFetcher) {
		f.timeout = d
	}
}

// NewPageFetcher creates a new HTTP-based PageFetcher.
func NewPageFetcher(opts ...PageOption) *PageFetcher {
	f := &PageFetcher{
		timeout: DefaultPageTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", gigarip.Errorf(gigarip.EINVALID, "invalid source URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", gigarip.Errorf(gigarip.EINTERNAL, "page fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", gigarip.Errorf(gigarip.ENOTFOUND, "no page found at %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", gigarip.Errorf(gigarip.EINTERNAL, "page fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", gigarip.Errorf(gigarip.EINTERNAL, "page fetch %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. A no-op for plain HTTP.
func (f *PageFetcher) Close() error {
	return nil
}
