// Package fs provides file-based implementations of gigarip.TileStore
// and gigarip.Tagger. Deterministic naming is the resume mechanism:
// a re-run addresses the same files and skips the ones that exist.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gigarip/gigarip"
)

// Ensure Store implements gigarip.TileStore at compile time.
var _ gigarip.TileStore = (*Store)(nil)

// Store persists tiles and row strips under a temp directory and the
// final image under an output directory. Each tile file is written
// exactly once by the session owning its permanent identifier, so no
// locking is needed. Tile filenames carry no zoom level; a re-run at a
// different zoom must use a fresh temp directory.
type Store struct {
	tempDir   string
	outputDir string
}

// NewStore creates a Store over the given directories.
func NewStore(tempDir, outputDir string) *Store {
	return &Store{
		tempDir:   tempDir,
		outputDir: outputDir,
	}
}

// TilePath returns <tempDir>/gap-<id>-tile-<x>-<y>.jpg.
func (s *Store) TilePath(id string, x, y int) string {
	return filepath.Join(s.tempDir, fmt.Sprintf("gap-%s-tile-%d-%d.jpg", id, x, y))
}

// RowPath returns <tempDir>/gap-<id>-row-<zoom>-<y>.jpg.
func (s *Store) RowPath(id string, zoom, y int) string {
	return filepath.Join(s.tempDir, fmt.Sprintf("gap-%s-row-%d-%d.jpg", id, zoom, y))
}

// OutputPath returns <outputDir>/<id>.jpg.
func (s *Store) OutputPath(id string) string {
	return filepath.Join(s.outputDir, id+".jpg")
}

// Exists reports whether the tile file is already on disk.
func (s *Store) Exists(id string, zoom, x, y int) bool {
	_, err := os.Stat(s.TilePath(id, x, y))
	return err == nil
}

// Put writes tile bytes to the deterministic tile location.
func (s *Store) Put(id string, zoom, x, y int, data []byte) error {
	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return gigarip.Errorf(gigarip.EINTERNAL, "create temp dir %s: %v", s.tempDir, err)
	}
	if err := os.WriteFile(s.TilePath(id, x, y), data, 0644); err != nil {
		return gigarip.Errorf(gigarip.EINTERNAL, "write tile (%d,%d) for %s: %v", x, y, id, err)
	}
	return nil
}
