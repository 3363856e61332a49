package download

import "github.com/gigarip/gigarip"

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressIdentified fires after the page tokens are extracted.
	ProgressIdentified ProgressType = iota

	// ProgressZoomFound fires once the maximum zoom level is known.
	ProgressZoomFound

	// ProgressTileFetched fires after a tile is downloaded and stored.
	ProgressTileFetched

	// ProgressRowCompleted fires after a full tile row is on disk.
	ProgressRowCompleted

	// ProgressAssembled fires once the final image file exists.
	ProgressAssembled
)

// ProgressEvent reports progress during a download session.
type ProgressEvent struct {
	Type    ProgressType
	Session *gigarip.Session
	Zoom    int
	Coord   gigarip.TileCoordinate
	Row     int
	Path    string
}

// ProgressFunc is a callback for reporting session progress.
type ProgressFunc func(event ProgressEvent)
