// Package goquery extracts the thumbnail token and permanent identifier
// from a source landing page using CSS selectors over the page metadata,
// with a raw pattern match as fallback.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gigarip/gigarip"
)

// thumbURLPattern matches a tile-host thumbnail URL embedded anywhere in
// the page. The first capture group is the opaque thumbnail token.
var thumbURLPattern = regexp.MustCompile(`https?://lh\d+\.(?:googleusercontent|ggpht)\.com/([A-Za-z0-9_\-]{20,})`)

// Ensure Extractor implements gigarip.TokenExtractor at compile time.
var _ gigarip.TokenExtractor = (*Extractor)(nil)

// Extractor extracts session tokens from landing-page HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract finds the thumbnail token and the permanent identifier.
// The thumbnail token comes from the og:image thumbnail URL; the
// permanent identifier is the trailing path segment of the canonical
// page URL. Either token missing is an ENOTFOUND error.
func (e *Extractor) Extract(html string) (*gigarip.Tokens, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, gigarip.Errorf(gigarip.EINVALID, "failed to parse page HTML: %v", err)
	}

	thumb := extractThumbToken(doc, html)
	if thumb == "" {
		return nil, gigarip.Errorf(gigarip.ENOTFOUND, "no image found: page has no thumbnail token")
	}

	permaID := extractPermaID(doc)
	if permaID == "" {
		return nil, gigarip.Errorf(gigarip.ENOTFOUND, "no image found: page has no permanent identifier")
	}

	return &gigarip.Tokens{ThumbToken: thumb, PermaID: permaID}, nil
}

// extractThumbToken prefers the og:image metadata and falls back to the
// first tile-host URL anywhere in the raw HTML.
func extractThumbToken(doc *goquery.Document, html string) string {
	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		if m := thumbURLPattern.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}

	if m := thumbURLPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}

	return ""
}

// extractPermaID reads the canonical URL (or og:url) and returns its
// trailing path segment, which is stable across thumbnail-token changes.
func extractPermaID(doc *goquery.Document) string {
	raw, ok := doc.Find(`link[rel="canonical"]`).Attr("href")
	if !ok || raw == "" {
		raw, _ = doc.Find(`meta[property="og:url"]`).Attr("content")
	}
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return ""
	}
	return last
}
