package download_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/gigarip/gigarip"
)

// gridFetcher fakes a tile host with a dense w×h grid available at
// every zoom level in [0, maxZoom]. It counts fetches by outcome.
type gridFetcher struct {
	w, h    int
	maxZoom int

	// failures maps coordinates to injected errors.
	failures map[gigarip.TileCoordinate]error

	mu       sync.Mutex
	found    int
	notFound int
}

func newGridFetcher(w, h, maxZoom int) *gridFetcher {
	return &gridFetcher{w: w, h: h, maxZoom: maxZoom}
}

func (f *gridFetcher) failAt(coord gigarip.TileCoordinate, err error) {
	if f.failures == nil {
		f.failures = make(map[gigarip.TileCoordinate]error)
	}
	f.failures[coord] = err
}

func (f *gridFetcher) FetchTile(ctx context.Context, thumbToken string, coord gigarip.TileCoordinate) (*gigarip.TileFetchResult, error) {
	if err, ok := f.failures[coord]; ok {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if coord.X < f.w && coord.Y < f.h && coord.Zoom <= f.maxZoom {
		f.found++
		return &gigarip.TileFetchResult{
			Status: gigarip.TileFound,
			Data:   []byte(coord.String()),
		}, nil
	}
	f.notFound++
	return &gigarip.TileFetchResult{Status: gigarip.TileNotFound}, nil
}

func (f *gridFetcher) counts() (found, notFound int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.found, f.notFound
}

// memStore is an in-memory gigarip.TileStore.
type memStore struct {
	mu    sync.Mutex
	tiles map[string][]byte
	puts  int
}

func newMemStore() *memStore {
	return &memStore{tiles: make(map[string][]byte)}
}

func (s *memStore) key(id string, x, y int) string {
	return fmt.Sprintf("%s/%d/%d", id, x, y)
}

func (s *memStore) Exists(id string, zoom, x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tiles[s.key(id, x, y)]
	return ok
}

func (s *memStore) Put(id string, zoom, x, y int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiles[s.key(id, x, y)] = data
	s.puts++
	return nil
}

func (s *memStore) TilePath(id string, x, y int) string {
	return fmt.Sprintf("mem/gap-%s-tile-%d-%d.jpg", id, x, y)
}

func (s *memStore) RowPath(id string, zoom, y int) string {
	return fmt.Sprintf("mem/gap-%s-row-%d-%d.jpg", id, zoom, y)
}

func (s *memStore) OutputPath(id string) string {
	return fmt.Sprintf("mem/%s.jpg", id)
}

func (s *memStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tiles)
}

func (s *memStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}
