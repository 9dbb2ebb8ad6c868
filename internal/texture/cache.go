package texture

import (
	"image"
	"sync"
)

// Cache is a concurrency-safe decode cache keyed by path. Failed loads are
// cached too, so a broken file is decoded (and reported) at most once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Load decodes path, caching the result. Concurrent callers may race to
// decode the same path once; the first write wins.
func (c *Cache) Load(path string) (*image.NRGBA, error) {
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	img, err := Load(path)

	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	c.mu.Unlock()

	return img, err
}
