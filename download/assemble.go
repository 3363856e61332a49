package download

import (
	"context"

	"github.com/gigarip/gigarip"
)

// Assemble composes the stored tiles into the final image file and
// returns its path. Composition is two-phase on purpose: each row is
// first joined into a strip, then the strips are joined top-to-bottom,
// which bounds the peak working set to one row on grids of thousands
// of tiles. The joined image is then border-trimmed to drop the solid
// filler sources pad the rightmost column and bottom row with.
func (r *Runner) Assemble(ctx context.Context, s *gigarip.Session) (string, error) {
	rowPaths := make([]string, 0, s.Grid.MaxY+1)
	for y := 0; y <= s.Grid.MaxY; y++ {
		srcs := make([]string, 0, s.Grid.MaxX+1)
		for x := 0; x <= s.Grid.MaxX; x++ {
			srcs = append(srcs, r.Store.TilePath(s.PermaID, x, y))
		}

		rowPath := r.Store.RowPath(s.PermaID, s.Zoom, y)
		if err := r.Compositor.JoinHorizontal(ctx, srcs, rowPath); err != nil {
			return "", err
		}
		rowPaths = append(rowPaths, rowPath)
	}

	out := r.Store.OutputPath(s.PermaID)
	if err := r.Compositor.JoinVertical(ctx, rowPaths, out); err != nil {
		return "", err
	}
	if err := r.Compositor.BorderTrim(ctx, out, out); err != nil {
		return "", err
	}
	return out, nil
}
