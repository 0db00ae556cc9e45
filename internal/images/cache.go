package images

import (
	"context"
	"sync"
)

// Cache keeps fetched image bytes in memory for the session. Preloads run
// from bubbletea command goroutines, so access is guarded.
type Cache struct {
	mu      sync.Mutex
	fetcher *Fetcher
	data    map[string][]byte
	pending map[string]bool
}

func NewCache(fetcher *Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		data:    make(map[string][]byte),
		pending: make(map[string]bool),
	}
}

// Get returns cached bytes without fetching.
func (c *Cache) Get(imagePath string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[imagePath]
	return data, ok
}

// Fetch returns cached bytes or loads and caches them.
func (c *Cache) Fetch(ctx context.Context, imagePath string) ([]byte, error) {
	if data, ok := c.Get(imagePath); ok {
		return data, nil
	}
	data, err := c.fetcher.Fetch(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.data[imagePath] = data
	c.mu.Unlock()
	return data, nil
}

// Preload fetches imagePath unless it is already cached or in flight. It is
// fire-and-forget: failures are swallowed, a later on-demand Fetch retries.
func (c *Cache) Preload(ctx context.Context, imagePath string) {
	if imagePath == "" {
		return
	}
	c.mu.Lock()
	if _, ok := c.data[imagePath]; ok || c.pending[imagePath] {
		c.mu.Unlock()
		return
	}
	c.pending[imagePath] = true
	c.mu.Unlock()

	data, err := c.fetcher.Fetch(ctx, imagePath)

	c.mu.Lock()
	delete(c.pending, imagePath)
	if err == nil {
		c.data[imagePath] = data
	}
	c.mu.Unlock()
}
