package download

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gigarip/gigarip"
)

// provisionalBound is the upper bound on either grid dimension before
// the real boundary has been discovered.
const provisionalBound = 1 << 16

// DiscoverGrid populates the tile store with every tile of the dense
// rectangle at the session's zoom level and returns its bounds.
//
// Row 0 is walked tile by tile to learn the width: the first not-found
// at (x, 0) puts the boundary at x-1. Every row is assumed to have the
// same width, so later rows are fetched only up to the known width and
// the first not-found at any (x, y>0) puts the bottom boundary at y-1
// and ends discovery. Probe cost is O(width + height) fetch attempts,
// not O(width × height).
//
// Tiles already present in the store are skipped, which lets an
// interrupted run resume. Any fetch failure other than the not-found
// signal aborts the session; it is not retried automatically.
func (r *Runner) DiscoverGrid(ctx context.Context, s *gigarip.Session) (gigarip.Grid, error) {
	maxX, err := r.discoverRowZero(ctx, s)
	if err != nil {
		return gigarip.Grid{}, err
	}
	r.emit(ProgressEvent{Type: ProgressRowCompleted, Session: s, Row: 0})

	for y := 1; y <= provisionalBound; y++ {
		end, err := r.fetchRow(ctx, s, y, maxX)
		if err != nil {
			return gigarip.Grid{}, err
		}
		if end {
			return gigarip.Grid{MaxX: maxX, MaxY: y - 1}, nil
		}
		r.emit(ProgressEvent{Type: ProgressRowCompleted, Session: s, Row: y})
	}

	return gigarip.Grid{MaxX: maxX, MaxY: provisionalBound}, nil
}

// discoverRowZero walks row 0 left to right until the not-found signal
// and returns the discovered maxX.
func (r *Runner) discoverRowZero(ctx context.Context, s *gigarip.Session) (int, error) {
	for x := 0; x <= provisionalBound; x++ {
		found, err := r.fetchAndStore(ctx, s, x, 0)
		if err != nil {
			return 0, err
		}
		if !found {
			if x == 0 {
				return 0, gigarip.Errorf(gigarip.ENOTFOUND, "no tiles at zoom %d for %s", s.Zoom, s.SourceURL)
			}
			return x - 1, nil
		}
	}
	return provisionalBound, nil
}

// fetchRow fetches row y using the known width. It returns end=true
// when the not-found signal marks this row as one past the grid.
func (r *Runner) fetchRow(ctx context.Context, s *gigarip.Session, y, maxX int) (end bool, err error) {
	// The row's leading tile is a boundary probe and always sequential.
	found, err := r.fetchAndStore(ctx, s, 0, y)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}

	if r.Workers > 1 {
		return r.fetchRowParallel(ctx, s, y, maxX)
	}

	for x := 1; x <= maxX; x++ {
		found, err := r.fetchAndStore(ctx, s, x, y)
		if err != nil {
			return false, err
		}
		if !found {
			return true, nil
		}
	}
	return false, nil
}

// fetchRowParallel fetches the remainder of a row concurrently. Only
// tiles whose presence is implied by the known width go through here;
// the boundary probes themselves stay sequential.
func (r *Runner) fetchRowParallel(ctx context.Context, s *gigarip.Session, y, maxX int) (end bool, err error) {
	var missing atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for x := 1; x <= maxX; x++ {
		x := x
		g.Go(func() error {
			found, err := r.fetchAndStore(gctx, s, x, y)
			if err != nil {
				return err
			}
			if !found {
				missing.Store(true)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	return missing.Load(), nil
}

// fetchAndStore fetches one tile unless it is already stored. It
// returns found=false only on the not-found signal.
func (r *Runner) fetchAndStore(ctx context.Context, s *gigarip.Session, x, y int) (found bool, err error) {
	if r.Store.Exists(s.PermaID, s.Zoom, x, y) {
		return true, nil
	}

	coord := gigarip.TileCoordinate{X: x, Y: y, Zoom: s.Zoom}
	res, err := r.fetchTile(ctx, s.ThumbToken, coord)
	if err != nil {
		return false, err
	}
	if res.Status == gigarip.TileNotFound {
		return false, nil
	}

	if err := r.Store.Put(s.PermaID, s.Zoom, x, y, res.Data); err != nil {
		return false, err
	}
	r.emit(ProgressEvent{Type: ProgressTileFetched, Session: s, Coord: coord})
	return true, nil
}
