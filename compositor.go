package gigarip

import "context"

// Compositor joins and trims image files. The core discovery and
// ordering algorithms depend only on this narrow interface so they can
// be tested with a fake compositor, independently of any image library.
type Compositor interface {
	// JoinHorizontal concatenates the source images left-to-right with
	// zero inter-image spacing and writes the result to dst.
	JoinHorizontal(ctx context.Context, srcs []string, dst string) error

	// JoinVertical concatenates the source images top-to-bottom with
	// zero inter-image spacing and writes the result to dst.
	JoinVertical(ctx context.Context, srcs []string, dst string) error

	// BorderTrim adds a 1-pixel uniform border of the padding fill
	// color, then trims away the contiguous border region of that
	// color. The added border gives the trim a color reference distinct
	// from genuine image content touching the edge, so real content
	// that is itself black at the edge is not over-trimmed. Trimming an
	// already-trimmed image is a no-op. src and dst may be equal.
	BorderTrim(ctx context.Context, src, dst string) error
}
