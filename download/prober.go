package download

import (
	"context"

	"github.com/gigarip/gigarip"
)

// ProbeZoom finds the highest zoom level z in [0, MaxZoom] at which
// tile (0,0,z) exists. Probing stops at the first not-found; if the
// ceiling is reached without one, the ceiling is returned and the
// download silently proceeds at that lower resolution (the true
// maximum is not probed further).
func (r *Runner) ProbeZoom(ctx context.Context, s *gigarip.Session) (int, error) {
	best := -1
	for z := 0; z <= r.Config.MaxZoom; z++ {
		res, err := r.fetchTile(ctx, s.ThumbToken, gigarip.TileCoordinate{Zoom: z})
		if err != nil {
			return 0, err
		}
		if res.Status == gigarip.TileNotFound {
			if best < 0 {
				return 0, gigarip.Errorf(gigarip.ENOTFOUND, "no image found for %s", s.SourceURL)
			}
			return best, nil
		}
		best = z
	}
	return r.Config.MaxZoom, nil
}
