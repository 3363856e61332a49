// Package download orchestrates one download session: identify the
// image from its landing page, probe the maximum zoom level, discover
// the tile grid, and assemble the tiles into the final image.
package download

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/gigarip/gigarip"
)

// Runner wires the collaborators for download sessions. All fields
// except Tagger, Revealer, Limiter, Logger and Progress are required.
type Runner struct {
	Pages      gigarip.PageFetcher
	Extractor  gigarip.TokenExtractor
	Tiles      gigarip.TileFetcher
	Store      gigarip.TileStore
	Compositor gigarip.Compositor

	// Tagger and Revealer are cosmetic; their failures are logged as
	// warnings and never abort a download.
	Tagger   gigarip.Tagger
	Revealer gigarip.Revealer

	Config gigarip.Config

	// Limiter, when set, paces every page and tile fetch.
	Limiter *rate.Limiter

	// Workers bounds within-row fetch parallelism for rows whose width
	// is already known. Values <= 1 mean strictly sequential fetching,
	// which is the reference behavior.
	Workers int

	Logger   *slog.Logger
	Progress ProgressFunc
}

// Preflight verifies prerequisites once, up front. A failure here is
// fatal to the entire run, not just one session.
func (r *Runner) Preflight() error {
	if err := r.Config.Validate(); err != nil {
		return err
	}
	for _, dir := range []string{r.Config.TempDir, r.Config.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return gigarip.Errorf(gigarip.EUNAVAILABLE, "directory %s unavailable: %v", dir, err)
		}
	}
	return nil
}

// Download runs one complete session for a source URL. The returned
// session reflects how far the pipeline got; on error its state is
// StateFailed. Partially downloaded tiles are left on disk so a later
// run can resume.
func (r *Runner) Download(ctx context.Context, sourceURL string) (*gigarip.Session, error) {
	s := gigarip.NewSession(sourceURL)

	run := func() error {
		if err := validateSource(sourceURL); err != nil {
			return err
		}

		if err := r.wait(ctx); err != nil {
			return err
		}
		html, err := r.Pages.Fetch(ctx, sourceURL)
		if err != nil {
			return err
		}

		tokens, err := r.Extractor.Extract(html)
		if err != nil {
			return err
		}
		if err := s.Identify(*tokens); err != nil {
			return err
		}
		r.emit(ProgressEvent{Type: ProgressIdentified, Session: s})

		zoom, err := r.ProbeZoom(ctx, s)
		if err != nil {
			return err
		}
		if err := s.SetZoom(zoom); err != nil {
			return err
		}
		r.emit(ProgressEvent{Type: ProgressZoomFound, Session: s, Zoom: zoom})

		grid, err := r.DiscoverGrid(ctx, s)
		if err != nil {
			return err
		}
		if err := s.SetGrid(grid); err != nil {
			return err
		}

		out, err := r.Assemble(ctx, s)
		if err != nil {
			return err
		}
		if err := s.MarkAssembled(out); err != nil {
			return err
		}
		r.emit(ProgressEvent{Type: ProgressAssembled, Session: s, Path: out})

		r.finish(ctx, s, out)
		return s.Complete()
	}

	if err := run(); err != nil {
		s.Fail()
		return s, err
	}
	return s, nil
}

// finish applies the cosmetic post-steps: metadata tagging and
// revealing the output.
func (r *Runner) finish(ctx context.Context, s *gigarip.Session, out string) {
	if r.Tagger != nil {
		meta := gigarip.OutputMetadata{
			SourceURL: s.SourceURL,
			PermaID:   s.PermaID,
			Zoom:      s.Zoom,
			TilesX:    s.Grid.MaxX + 1,
			TilesY:    s.Grid.MaxY + 1,
			CreatedAt: time.Now(),
		}
		if err := r.Tagger.Tag(ctx, out, meta); err != nil {
			r.logger().Warn("tag output", "path", out, "err", err.Error())
		}
	}
	if r.Revealer != nil {
		if err := r.Revealer.Reveal(out); err != nil {
			r.logger().Warn("reveal output", "path", out, "err", err.Error())
		}
	}
}

// wait blocks on the rate limiter, if one is configured.
func (r *Runner) wait(ctx context.Context) error {
	if r.Limiter == nil {
		return nil
	}
	return r.Limiter.Wait(ctx)
}

// fetchTile paces and fetches one tile.
func (r *Runner) fetchTile(ctx context.Context, thumbToken string, coord gigarip.TileCoordinate) (*gigarip.TileFetchResult, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.Tiles.FetchTile(ctx, thumbToken, coord)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (r *Runner) emit(event ProgressEvent) {
	if r.Progress != nil {
		r.Progress(event)
	}
}

func validateSource(sourceURL string) error {
	u, err := url.Parse(sourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return gigarip.Errorf(gigarip.EINVALID, "not a recognized source URL: %q", sourceURL)
	}
	return nil
}
