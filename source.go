package gigarip

import "context"

// PageFetcher retrieves HTML from source landing pages.
type PageFetcher interface {
	// Fetch retrieves the HTML content at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources.
	Close() error
}

// TokenExtractor extracts the thumbnail token and permanent identifier
// from landing-page HTML. Failure to find either token is an ENOTFOUND
// error: the page exists but does not describe a tiled image.
type TokenExtractor interface {
	Extract(html string) (*Tokens, error)
}
