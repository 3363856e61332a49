package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gigarip/gigarip"
)

// Ensure Tagger implements gigarip.Tagger at compile time.
var _ gigarip.Tagger = (*Tagger)(nil)

// Tagger records provenance for an assembled image in a JSON sidecar
// next to the output file. The sidecar carries the source URL and an
// xxhash of the image content so a later run can tell whether the
// output changed.
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// SidecarPath returns the sidecar location for an output file,
// replacing its extension with .json.
func SidecarPath(outputPath string) string {
	if i := strings.LastIndex(outputPath, "."); i > 0 {
		return outputPath[:i] + ".json"
	}
	return outputPath + ".json"
}

// Tag hashes the output file and writes the metadata sidecar.
func (t *Tagger) Tag(ctx context.Context, outputPath string, meta gigarip.OutputMetadata) error {
	data, err := os.ReadFile(outputPath)
	if err != nil {
		return gigarip.Errorf(gigarip.EINTERNAL, "tag %s: %v", outputPath, err)
	}
	meta.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64(data))

	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return gigarip.Errorf(gigarip.EINTERNAL, "tag %s: %v", outputPath, err)
	}

	if err := os.WriteFile(SidecarPath(outputPath), encoded, 0644); err != nil {
		return gigarip.Errorf(gigarip.EINTERNAL, "tag %s: %v", outputPath, err)
	}
	return nil
}
