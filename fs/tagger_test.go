package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gigarip/gigarip"
	"github.com/gigarip/gigarip/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecarPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/out/P1.json", fs.SidecarPath("/out/P1.jpg"))
	assert.Equal(t, "/out/noext.json", fs.SidecarPath("/out/noext"))
}

func TestTagger_Tag(t *testing.T) {
	t.Parallel()

	t.Run("writes sidecar with content hash", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		outputPath := filepath.Join(dir, "P1.jpg")
		require.NoError(t, os.WriteFile(outputPath, []byte("image-bytes"), 0644))

		tagger := fs.NewTagger()
		err := tagger.Tag(context.Background(), outputPath, gigarip.OutputMetadata{
			SourceURL: "https://example.com/asset/x/P1",
			PermaID:   "P1",
			Zoom:      3,
			TilesX:    3,
			TilesY:    2,
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		})
		require.NoError(t, err)

		raw, err := os.ReadFile(filepath.Join(dir, "P1.json"))
		require.NoError(t, err)

		var meta gigarip.OutputMetadata
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "https://example.com/asset/x/P1", meta.SourceURL)
		assert.Equal(t, "P1", meta.PermaID)
		assert.Equal(t, 3, meta.Zoom)
		assert.Len(t, meta.ContentHash, 16)
	})

	t.Run("missing output file is an error", func(t *testing.T) {
		t.Parallel()

		tagger := fs.NewTagger()
		err := tagger.Tag(context.Background(), filepath.Join(t.TempDir(), "absent.jpg"), gigarip.OutputMetadata{})
		require.Error(t, err)
	})
}
