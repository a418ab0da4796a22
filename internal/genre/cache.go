// Package genre persists artist-to-genre mappings fetched from the Spotify
// Web API, so enrichment survives across runs without refetching.
package genre

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// Cache is an on-disk JSON map of artist name to genre list. An artist
// present with an empty list is a completed lookup that returned nothing;
// an absent artist has never been looked up.
type Cache struct {
	path string
	log  *zap.Logger

	mu      sync.Mutex
	entries model.GenreMap
}

// Open loads the cache at path. A missing file yields an empty cache; an
// unreadable or corrupt one is logged and treated as empty rather than
// failing the command.
func Open(path string, log *zap.Logger) *Cache {
	c := &Cache{path: path, log: log, entries: make(model.GenreMap)}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c
	}
	if err != nil {
		log.Warn("reading genre cache", zap.String("path", path), zap.Error(err))
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Warn("genre cache is corrupt, starting empty", zap.String("path", path), zap.Error(err))
		c.entries = make(model.GenreMap)
	}
	return c
}

// Lookup splits artists into those already cached and those still pending a
// fetch. Cached empty lists count as cached.
func (c *Cache) Lookup(artists []string) (cached model.GenreMap, pending []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached = make(model.GenreMap)
	for _, artist := range artists {
		if genres, ok := c.entries[artist]; ok {
			cached[artist] = genres
		} else {
			pending = append(pending, artist)
		}
	}
	return cached, pending
}

// Merge adds fetched mappings and writes the whole cache back to disk. The
// write goes to a temp file in the same directory and is renamed into
// place, so a crash mid-write never corrupts the existing cache. The
// in-memory entries stay valid even when the write fails.
func (c *Cache) Merge(fetched model.GenreMap) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for artist, genres := range fetched {
		if genres == nil {
			genres = []string{}
		}
		c.entries[artist] = genres
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding genre cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating genre cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".genre-cache-*")
	if err != nil {
		return fmt.Errorf("creating genre cache temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing genre cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing genre cache temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing genre cache: %w", err)
	}
	return nil
}

// All returns a copy of every cached mapping.
func (c *Cache) All() model.GenreMap {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(model.GenreMap, len(c.entries))
	for artist, genres := range c.entries {
		out[artist] = genres
	}
	return out
}

// Len reports how many artists have completed lookups.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
