package main_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/gigarip/gigarip/cmd/gigarip"
	"github.com/gigarip/gigarip/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "AbCdEfGhIjKlMnOpQrStUvWx"

// newPageServer serves a landing page whose metadata carries the
// thumbnail token and the canonical permanent identifier.
func newPageServer(t *testing.T, permaID string) *httptest.Server {
	t.Helper()

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<link rel="canonical" href="https://example.com/asset/test-piece/%s"/>
<meta property="og:image" content="https://lh3.googleusercontent.com/%s=w400"/>
<title>Test Piece</title>
</head>
<body></body>
</html>`, permaID, testToken)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTileServer serves real JPEG tiles for a width x height grid and
// 404s everything outside it. Probe requests at (0,0) succeed at every
// zoom level, so the discovered zoom is the configured ceiling.
func newTileServer(t *testing.T, width, height int) *httptest.Server {
	t.Helper()

	tile := whiteTile(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var x, y, z int
		format := "/" + testToken + "=x%d-y%d-z%d"
		if _, err := fmt.Sscanf(r.URL.Path, format, &x, &y, &z); err != nil {
			http.NotFound(w, r)
			return
		}
		if x >= width || y >= height {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(tile)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// whiteTile encodes a 16x16 all-white JPEG tile.
func whiteTile(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	pageSrv := newPageServer(t, "XyZ123")
	tileSrv := newTileServer(t, 2, 2)

	outDir := t.TempDir()
	tempDir := t.TempDir()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	m := main.NewMain()
	err := m.Run(context.Background(), []string{
		pageSrv.URL + "/asset/test-piece/XyZ123",
		"--tile-host", tileSrv.URL,
		"--out", outDir,
		"--temp", tempDir,
		"--max-zoom", "2",
		"--rate", "0",
		"--no-reveal",
	}, stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	// The 2x2 grid of 16x16 tiles assembles into a 32x32 image. The
	// tiles are all white, so border trimming removes nothing.
	outputPath := filepath.Join(outDir, "XyZ123.jpg")
	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	// Tagging is on by default and writes a sidecar next to the output.
	sidecar, err := os.ReadFile(fs.SidecarPath(outputPath))
	require.NoError(t, err)
	assert.Contains(t, string(sidecar), pageSrv.URL)

	assert.Contains(t, stdout.String(), "Saved "+outputPath)
	assert.Contains(t, stdout.String(), "4 tiles at zoom 2")
}

func TestMain_Run_NoTagSkipsSidecar(t *testing.T) {
	t.Parallel()

	pageSrv := newPageServer(t, "NoTag1")
	tileSrv := newTileServer(t, 1, 1)

	outDir := t.TempDir()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	m := main.NewMain()
	err := m.Run(context.Background(), []string{
		pageSrv.URL + "/asset/test-piece/NoTag1",
		"--tile-host", tileSrv.URL,
		"--out", outDir,
		"--temp", t.TempDir(),
		"--max-zoom", "1",
		"--rate", "0",
		"--no-reveal",
		"--no-tag",
	}, stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	outputPath := filepath.Join(outDir, "NoTag1.jpg")
	_, err = os.Stat(outputPath)
	require.NoError(t, err)

	_, err = os.Stat(fs.SidecarPath(outputPath))
	assert.True(t, os.IsNotExist(err), "sidecar should not be written with --no-tag")
}

func TestMain_Run_FailureIsolation(t *testing.T) {
	t.Parallel()

	pageSrv := newPageServer(t, "Good42")
	tileSrv := newTileServer(t, 1, 1)

	// A page with no thumbnail token fails identification for that
	// source only; the next source still completes.
	badSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>nothing here</title></head></html>"))
	}))
	t.Cleanup(badSrv.Close)

	outDir := t.TempDir()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	m := main.NewMain()
	err := m.Run(context.Background(), []string{
		badSrv.URL + "/asset/broken",
		pageSrv.URL + "/asset/test-piece/Good42",
		"--tile-host", tileSrv.URL,
		"--out", outDir,
		"--temp", t.TempDir(),
		"--max-zoom", "1",
		"--rate", "0",
		"--no-reveal",
	}, stdout, stderr)
	require.NoError(t, err, "one success should make the run succeed")

	assert.Contains(t, stderr.String(), badSrv.URL)
	assert.Contains(t, stdout.String(), "Good42.jpg")

	_, err = os.Stat(filepath.Join(outDir, "Good42.jpg"))
	assert.NoError(t, err)
}

func TestMain_Run_AllSourcesFailed(t *testing.T) {
	t.Parallel()

	badSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(badSrv.Close)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	m := main.NewMain()
	err := m.Run(context.Background(), []string{
		badSrv.URL + "/asset/missing",
		"--out", t.TempDir(),
		"--temp", t.TempDir(),
		"--no-reveal",
	}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image could be downloaded")
	assert.Contains(t, stderr.String(), badSrv.URL)
}

func TestMain_Run_InvalidSourceURL(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	m := main.NewMain()
	err := m.Run(context.Background(), []string{
		"::not-a-url",
		"--out", t.TempDir(),
		"--temp", t.TempDir(),
		"--no-reveal",
	}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "::not-a-url")
}
