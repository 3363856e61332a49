// Package mock provides mock implementations of gigarip interfaces for
// testing.
package mock

import (
	"context"

	"github.com/gigarip/gigarip"
)

// Compile-time interface verification.
var (
	_ gigarip.PageFetcher    = (*PageFetcher)(nil)
	_ gigarip.TileFetcher    = (*TileFetcher)(nil)
	_ gigarip.TokenExtractor = (*TokenExtractor)(nil)
)

// PageFetcher is a mock implementation of gigarip.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *PageFetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// TileFetcher is a mock implementation of gigarip.TileFetcher.
type TileFetcher struct {
	FetchTileFn func(ctx context.Context, thumbToken string, coord gigarip.TileCoordinate) (*gigarip.TileFetchResult, error)
}

func (f *TileFetcher) FetchTile(ctx context.Context, thumbToken string, coord gigarip.TileCoordinate) (*gigarip.TileFetchResult, error) {
	return f.FetchTileFn(ctx, thumbToken, coord)
}

// TokenExtractor is a mock implementation of gigarip.TokenExtractor.
type TokenExtractor struct {
	ExtractFn func(html string) (*gigarip.Tokens, error)
}

func (e *TokenExtractor) Extract(html string) (*gigarip.Tokens, error) {
	return e.ExtractFn(html)
}
