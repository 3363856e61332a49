package gigarip

import (
	"github.com/google/uuid"
)

// SessionState tracks a session through the download pipeline:
//
//	StateInit → StateIdentified → StateZoomKnown → StateGridKnown →
//	StateAssembled → StateDone
//
// StateFailed is terminal and reachable from any non-terminal state.
// No transition skips a state.
type SessionState int

const (
	StateInit SessionState = iota
	StateIdentified
	StateZoomKnown
	StateGridKnown
	StateAssembled
	StateDone
	StateFailed
)

// String returns the state name for logging.
func (s SessionState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateIdentified:
		return "identified"
	case StateZoomKnown:
		return "zoom_known"
	case StateGridKnown:
		return "grid_known"
	case StateAssembled:
		return "assembled"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Session ties together one source URL, the tokens derived from its
// landing page, and the grid discovered for it. A session is created
// per input URL, lives for exactly one download run, and is discarded
// after. The session exclusively owns its Grid and chosen zoom; the
// tile store is namespaced by permanent identifier so tiles from
// different sessions never collide and survive for resumed runs.
type Session struct {
	// ID correlates log lines for one run of this session.
	ID string

	// SourceURL is the landing page the session was created for.
	SourceURL string

	// ThumbToken is the opaque identifier used to build tile URLs.
	// It may vary across fetches of the same image.
	ThumbToken string

	// PermaID is the stable identifier used to name persisted files.
	PermaID string

	// Zoom is the chosen zoom level, valid from StateZoomKnown.
	Zoom int

	// Grid holds the discovered bounds, valid from StateGridKnown.
	Grid Grid

	// OutputPath is the final image location, set at StateAssembled.
	OutputPath string

	State SessionState
}

// NewSession creates a session in StateInit for the given source URL.
func NewSession(sourceURL string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		SourceURL: sourceURL,
		State:     StateInit,
	}
}

func (s *Session) advance(from, to SessionState) error {
	if s.State != from {
		return Errorf(EINTERNAL, "invalid session transition %s → %s (current state %s)", from, to, s.State)
	}
	s.State = to
	return nil
}

// Identify records the tokens extracted from the landing page.
func (s *Session) Identify(tok Tokens) error {
	if err := s.advance(StateInit, StateIdentified); err != nil {
		return err
	}
	s.ThumbToken = tok.ThumbToken
	s.PermaID = tok.PermaID
	return nil
}

// SetZoom records the chosen zoom level.
func (s *Session) SetZoom(zoom int) error {
	if err := s.advance(StateIdentified, StateZoomKnown); err != nil {
		return err
	}
	s.Zoom = zoom
	return nil
}

// SetGrid records the discovered grid bounds.
func (s *Session) SetGrid(g Grid) error {
	if err := s.advance(StateZoomKnown, StateGridKnown); err != nil {
		return err
	}
	s.Grid = g
	return nil
}

// MarkAssembled records the assembled output file location.
func (s *Session) MarkAssembled(outputPath string) error {
	if err := s.advance(StateGridKnown, StateAssembled); err != nil {
		return err
	}
	s.OutputPath = outputPath
	return nil
}

// Complete marks the session done.
func (s *Session) Complete() error {
	return s.advance(StateAssembled, StateDone)
}

// Fail moves the session to the terminal failed state. Failing an
// already-terminal session is a no-op.
func (s *Session) Fail() {
	if s.State == StateDone || s.State == StateFailed {
		return
	}
	s.State = StateFailed
}

// Tokens are the two identifiers extracted from a source landing page.
type Tokens struct {
	ThumbToken string
	PermaID    string
}

// DefaultMaxZoom bounds upward zoom probing to guard against
// pathologically deep pyramids. If the true maximum zoom exceeds the
// ceiling the download silently proceeds at the ceiling, producing a
// lower-resolution image. This is a documented limitation, not a bug.
const DefaultMaxZoom = 10

// DefaultTileHost serves tiles addressed by thumbnail token.
const DefaultTileHost = "https://lh3.googleusercontent.com"

// Config carries the directories and bounds resolved once at process
// start. Core logic performs no hidden global lookups.
type Config struct {
	// TempDir holds tile and row-strip files across runs.
	TempDir string

	// OutputDir receives the final assembled images.
	OutputDir string

	// MaxZoom is the inclusive upper bound for zoom probing.
	MaxZoom int

	// TileHost is the base URL tiles are fetched from.
	TileHost string
}

// Validate returns an error if the configuration is unusable.
func (c Config) Validate() error {
	if c.TempDir == "" {
		return Errorf(EINVALID, "temp directory required")
	}
	if c.OutputDir == "" {
		return Errorf(EINVALID, "output directory required")
	}
	if c.MaxZoom < 0 {
		return Errorf(EINVALID, "max zoom must be non-negative, got %d", c.MaxZoom)
	}
	if c.TileHost == "" {
		return Errorf(EINVALID, "tile host required")
	}
	return nil
}
