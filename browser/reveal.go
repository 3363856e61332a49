// Package browser reveals finished files using the platform's default
// file handler.
package browser

import (
	"github.com/pkg/browser"

	"github.com/gigarip/gigarip"
)

// Ensure Revealer implements gigarip.Revealer at compile time.
var _ gigarip.Revealer = (*Revealer)(nil)

// Revealer opens a finished image with the platform's default viewer.
type Revealer struct{}

// NewRevealer creates a new Revealer.
func NewRevealer() *Revealer {
	return &Revealer{}
}

// Reveal opens the file. Failures are cosmetic and must be handled as
// warnings by the caller.
func (r *Revealer) Reveal(path string) error {
	return browser.OpenFile(path)
}
