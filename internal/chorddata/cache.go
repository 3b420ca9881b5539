package chorddata

import (
	"sync"

	"github.com/alnah/go-chordsheet/internal/chords"
)

// Cache memoizes the first successful Load of a Loader.
// Failed loads are not cached and are retried on the next call.
type Cache struct {
	loader Loader

	mu   sync.Mutex
	dict chords.MapDictionary
}

// NewCache wraps loader.
func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader}
}

// Load returns the cached dictionary, loading it on first use.
func (c *Cache) Load() (chords.MapDictionary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dict != nil {
		return c.dict, nil
	}
	d, err := c.loader.Load()
	if err != nil {
		return nil, err
	}
	c.dict = d
	return d, nil
}

// Compile-time interface check.
var _ Loader = (*Cache)(nil)
