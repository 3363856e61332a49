package gigarip

import (
	"context"
	"fmt"
)

// TileCoordinate identifies one fetchable tile within the pyramid.
// It is a value type and is never mutated after construction.
type TileCoordinate struct {
	X    int
	Y    int
	Zoom int
}

// String renders the coordinate in tile-URL suffix form.
func (c TileCoordinate) String() string {
	return fmt.Sprintf("x%d-y%d-z%d", c.X, c.Y, c.Zoom)
}

// TileStatus classifies the outcome of a tile fetch.
type TileStatus int

const (
	// TileFound means the tile exists and its bytes were retrieved.
	TileFound TileStatus = iota

	// TileNotFound means the server reported the tile absent (HTTP 404).
	// This is the designed terminator for probing loops, not an error.
	TileNotFound
)

// TileFetchResult is the tri-state outcome of a tile fetch: found with
// data, not found, or a genuine error (returned separately as error).
// Only a not-found status may terminate probing; any other failure is
// fatal to the session and must be returned as an error, never as a
// status.
type TileFetchResult struct {
	Status TileStatus
	Data   []byte
}

// Grid describes the discovered dense tile rectangle at a single zoom
// level. Bounds are zero-based and inclusive: every coordinate (x, y)
// with 0 <= x <= MaxX and 0 <= y <= MaxY exists at the chosen zoom.
//
// Row widths are assumed uniform across all rows; only row 0 determines
// MaxX. A source with genuinely irregular row widths would produce an
// incorrect grid. This is a documented invariant, not verified
// exhaustively beyond the probing walk itself.
type Grid struct {
	MaxX int
	MaxY int
}

// Tiles returns the number of tiles in the grid.
func (g Grid) Tiles() int {
	return (g.MaxX + 1) * (g.MaxY + 1)
}

// TileFetcher retrieves individual tiles by coordinate.
type TileFetcher interface {
	// FetchTile fetches the tile addressed by the thumbnail token and
	// coordinate. A 404-equivalent response yields TileNotFound with a
	// nil error; any other failure yields a non-nil error.
	FetchTile(ctx context.Context, thumbToken string, coord TileCoordinate) (*TileFetchResult, error)
}

// TileStore persists downloaded tile bytes keyed by permanent
// identifier, zoom and coordinate. Deterministic naming lets repeated
// runs address the same location, so an interrupted run can resume by
// skipping files that already exist. There is no eviction; tiles
// persist until external cleanup.
type TileStore interface {
	// Exists reports whether the tile has already been persisted.
	Exists(id string, zoom, x, y int) bool

	// Put persists tile bytes. Writing an existing tile overwrites it.
	Put(id string, zoom, x, y int, data []byte) error

	// TilePath returns the deterministic location of a tile file.
	TilePath(id string, x, y int) string

	// RowPath returns the deterministic location of a row-strip file.
	RowPath(id string, zoom, y int) string

	// OutputPath returns the location of the final assembled image.
	OutputPath(id string) string
}
