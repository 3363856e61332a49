package mock

import (
	"context"

	"github.com/gigarip/gigarip"
)

// Compile-time interface verification.
var (
	_ gigarip.TileStore  = (*TileStore)(nil)
	_ gigarip.Compositor = (*Compositor)(nil)
	_ gigarip.Tagger     = (*Tagger)(nil)
	_ gigarip.Revealer   = (*Revealer)(nil)
)

// TileStore is a mock implementation of gigarip.TileStore.
type TileStore struct {
	ExistsFn     func(id string, zoom, x, y int) bool
	PutFn        func(id string, zoom, x, y int, data []byte) error
	TilePathFn   func(id string, x, y int) string
	RowPathFn    func(id string, zoom, y int) string
	OutputPathFn func(id string) string
}

func (s *TileStore) Exists(id string, zoom, x, y int) bool {
	return s.ExistsFn(id, zoom, x, y)
}

func (s *TileStore) Put(id string, zoom, x, y int, data []byte) error {
	return s.PutFn(id, zoom, x, y, data)
}

func (s *TileStore) TilePath(id string, x, y int) string {
	return s.TilePathFn(id, x, y)
}

func (s *TileStore) RowPath(id string, zoom, y int) string {
	return s.RowPathFn(id, zoom, y)
}

func (s *TileStore) OutputPath(id string) string {
	return s.OutputPathFn(id)
}

// Compositor is a mock implementation of gigarip.Compositor.
type Compositor struct {
	JoinHorizontalFn func(ctx context.Context, srcs []string, dst string) error
	JoinVerticalFn   func(ctx context.Context, srcs []string, dst string) error
	BorderTrimFn     func(ctx context.Context, src, dst string) error
}

func (c *Compositor) JoinHorizontal(ctx context.Context, srcs []string, dst string) error {
	return c.JoinHorizontalFn(ctx, srcs, dst)
}

func (c *Compositor) JoinVertical(ctx context.Context, srcs []string, dst string) error {
	return c.JoinVerticalFn(ctx, srcs, dst)
}

func (c *Compositor) BorderTrim(ctx context.Context, src, dst string) error {
	return c.BorderTrimFn(ctx, src, dst)
}

// Tagger is a mock implementation of gigarip.Tagger.
type Tagger struct {
	TagFn func(ctx context.Context, outputPath string, meta gigarip.OutputMetadata) error
}

func (t *Tagger) Tag(ctx context.Context, outputPath string, meta gigarip.OutputMetadata) error {
	return t.TagFn(ctx, outputPath, meta)
}

// Revealer is a mock implementation of gigarip.Revealer.
type Revealer struct {
	RevealFn func(path string) error
}

func (r *Revealer) Reveal(path string) error {
	return r.RevealFn(path)
}
