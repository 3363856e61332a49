// Package slog provides logging decorators for gigarip interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/gigarip/gigarip"
)

// Compile-time interface verification.
var (
	_ gigarip.PageFetcher = (*LoggingPageFetcher)(nil)
	_ gigarip.TileFetcher = (*LoggingTileFetcher)(nil)
)

// LoggingPageFetcher wraps a PageFetcher with request logging.
type LoggingPageFetcher struct {
	next   gigarip.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next gigarip.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs URL, size and duration.
func (f *LoggingPageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("page fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return "", err
	}
	f.logger.Info("page fetch",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingPageFetcher) Close() error {
	return f.next.Close()
}

// LoggingTileFetcher wraps a TileFetcher with per-tile debug logging.
type LoggingTileFetcher struct {
	next   gigarip.TileFetcher
	logger *slog.Logger
}

// NewLoggingTileFetcher creates a new LoggingTileFetcher.
func NewLoggingTileFetcher(next gigarip.TileFetcher, logger *slog.Logger) *LoggingTileFetcher {
	return &LoggingTileFetcher{next: next, logger: logger}
}

// FetchTile delegates to the wrapped fetcher and logs coordinate,
// status, byte count and duration.
func (f *LoggingTileFetcher) FetchTile(ctx context.Context, thumbToken string, coord gigarip.TileCoordinate) (*gigarip.TileFetchResult, error) {
	begin := time.Now()
	res, err := f.next.FetchTile(ctx, thumbToken, coord)
	if err != nil {
		f.logger.Error("tile fetch",
			"tile", coord.String(),
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return nil, err
	}

	status := "found"
	if res.Status == gigarip.TileNotFound {
		status = "not_found"
	}
	f.logger.Debug("tile fetch",
		"tile", coord.String(),
		"status", status,
		"bytes", len(res.Data),
		"duration", time.Since(begin),
	)
	return res, nil
}
