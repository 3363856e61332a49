package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gigarip/gigarip"
	gighttp "github.com/gigarip/gigarip/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileFetcher_TileURL(t *testing.T) {
	t.Parallel()

	fetcher := gighttp.NewTileFetcher("https://tiles.example.com")
	url := fetcher.TileURL("TOKEN", gigarip.TileCoordinate{X: 2, Y: 1, Zoom: 3})

	assert.Equal(t, "https://tiles.example.com/TOKEN=x2-y1-z3", url)
}

func TestTileFetcher_FetchTile(t *testing.T) {
	t.Parallel()

	t.Run("200 returns found with bytes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/TOKEN=x0-y0-z2", r.URL.Path)
			_, _ = w.Write([]byte("jpeg-bytes"))
		}))
		defer server.Close()

		fetcher := gighttp.NewTileFetcher(server.URL)
		res, err := fetcher.FetchTile(context.Background(), "TOKEN", gigarip.TileCoordinate{Zoom: 2})

		require.NoError(t, err)
		assert.Equal(t, gigarip.TileFound, res.Status)
		assert.Equal(t, []byte("jpeg-bytes"), res.Data)
	})

	t.Run("404 returns not-found result, not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := gighttp.NewTileFetcher(server.URL)
		res, err := fetcher.FetchTile(context.Background(), "TOKEN", gigarip.TileCoordinate{X: 3})

		require.NoError(t, err)
		assert.Equal(t, gigarip.TileNotFound, res.Status)
		assert.Nil(t, res.Data)
	})

	t.Run("server error is EINTERNAL, never treated as absence", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := gighttp.NewTileFetcher(server.URL)
		res, err := fetcher.FetchTile(context.Background(), "TOKEN", gigarip.TileCoordinate{X: 1, Y: 1})

		require.Error(t, err)
		assert.Nil(t, res)
		assert.Equal(t, gigarip.EINTERNAL, gigarip.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("tile"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := gighttp.NewTileFetcher(server.URL)
		_, err := fetcher.FetchTile(ctx, "TOKEN", gigarip.TileCoordinate{})
		require.Error(t, err)
	})
}
