package gigarip

import (
	"context"
	"time"
)

// OutputMetadata describes an assembled image for the metadata sidecar.
type OutputMetadata struct {
	SourceURL   string    `json:"sourceUrl"`
	PermaID     string    `json:"permaId"`
	Zoom        int       `json:"zoom"`
	TilesX      int       `json:"tilesX"`
	TilesY      int       `json:"tilesY"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Tagger records provenance metadata for an assembled image. Tagging is
// cosmetic: failures are reported but never abort a download.
type Tagger interface {
	Tag(ctx context.Context, outputPath string, meta OutputMetadata) error
}

// Revealer shows a finished file in the platform file browser. Purely
// cosmetic; failures never abort a download.
type Revealer interface {
	Reveal(path string) error
}
