package termimg

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheMaxAge   = 30 * 24 * time.Hour // 30 days
	pruneInterval = 24 * time.Hour
)

// Cache stores downloaded image bytes on disk, keyed by URL.
type Cache struct {
	dir        string
	lastPruned time.Time
}

// NewCache creates the cache directory and prunes old entries in the
// background.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{dir: dir}
	go c.pruneOldEntries()

	return c, nil
}

func cacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(url string) string {
	return filepath.Join(c.dir, cacheKey(url)+".img")
}

// Get returns the cached bytes for url, or nil.
func (c *Cache) Get(url string) []byte {
	if c == nil {
		return nil
	}

	path := c.path(url)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// Touch so frequently viewed images survive pruning.
	now := time.Now()
	_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort

	return data
}

// Put stores data for url.
func (c *Cache) Put(url string, data []byte) error {
	if c == nil {
		return nil
	}
	tmp, err := os.CreateTemp(c.dir, cacheKey(url)+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.path(url))
}

// Remove deletes the entry for url.
func (c *Cache) Remove(url string) {
	if c == nil {
		return
	}
	_ = os.Remove(c.path(url)) //nolint:errcheck // best-effort
}

// pruneOldEntries removes cache entries older than cacheMaxAge.
func (c *Cache) pruneOldEntries() {
	if c == nil {
		return
	}

	if time.Since(c.lastPruned) < pruneInterval {
		return
	}
	c.lastPruned = time.Now()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-cacheMaxAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}
