package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gigarip/gigarip"
)

// DefaultTileTimeout is the default timeout for tile requests. Tiles
// are larger than pages and some hosts are slow at deep zoom levels.
const DefaultTileTimeout = 30 * time.Second

// Ensure TileFetcher implements gigarip.TileFetcher at compile time.
var _ gigarip.TileFetcher = (*TileFetcher)(nil)

// TileFetcher retrieves tiles from a tile host. A 404 response is the
// designed probing terminator and is returned as a TileNotFound result,
// not an error; every other failure is an error.
type TileFetcher struct {
	client  *http.Client
	host    string
	timeout time.Duration
}

// TileOption configures a TileFetcher.
type TileOption func(*TileFetcher)

// WithTileTimeout sets the timeout for tile requests.
// Defaults to DefaultTileTimeout if not specified.
func WithTileTimeout(d time.Duration) TileOption {
	return func(f *TileFetcher) {
		f.timeout = d
	}
}

// NewTileFetcher creates a TileFetcher for the given tile host base
// URL, e.g. gigarip.DefaultTileHost.
func NewTileFetcher(host string, opts ...TileOption) *TileFetcher {
	f := &TileFetcher{
		host:    host,
		timeout: DefaultTileTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// TileURL builds the fetch URL for a tile: <host>/<token>=x<x>-y<y>-z<z>.
func (f *TileFetcher) TileURL(thumbToken string, coord gigarip.TileCoordinate) string {
	return fmt.Sprintf("%s/%s=%s", f.host, thumbToken, coord)
}

// FetchTile fetches one tile and classifies the response: success with
// bytes, not-found, or error.
func (f *TileFetcher) FetchTile(ctx context.Context, thumbToken string, coord gigarip.TileCoordinate) (*gigarip.TileFetchResult, error) {
	url := f.TileURL(thumbToken, coord)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, gigarip.Errorf(gigarip.EINVALID, "invalid tile URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, gigarip.Errorf(gigarip.EINTERNAL, "tile fetch %s: %v", coord, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &gigarip.TileFetchResult{Status: gigarip.TileNotFound}, nil
	case resp.StatusCode != http.StatusOK:
		// An ambiguous failure is never a valid absence signal.
		return nil, gigarip.Errorf(gigarip.EINTERNAL, "tile fetch %s: HTTP %d", coord, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, gigarip.Errorf(gigarip.EINTERNAL, "tile fetch %s: %v", coord, err)
	}

	return &gigarip.TileFetchResult{Status: gigarip.TileFound, Data: data}, nil
}
