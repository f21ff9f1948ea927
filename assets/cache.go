// Package assets provides lazily loaded, cached asset handles.
package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

var (
	// ErrNotFound is returned by loaders when the asset file does not exist.
	ErrNotFound = errors.New("asset not found")
	// ErrInvalid is returned by loaders when the file exists but cannot be decoded.
	ErrInvalid = errors.New("asset invalid")
)

// LoadFunc loads the asset stored at path.
type LoadFunc[T any] func(path string) (T, error)

// UnloadFunc releases a loaded asset.
type UnloadFunc[T any] func(T)

// Cache maps an asset identifier (its file path) to a loaded handle.
// The cache owns every handle it returns; callers borrow them and must not
// release them. Failed loads are not remembered, so asking again retries.
type Cache[T any] struct {
	load   LoadFunc[T]
	unload UnloadFunc[T]
	items  map[string]T
}

// NewCache creates a cache backed by the given loader. unload may be nil.
func NewCache[T any](load LoadFunc[T], unload UnloadFunc[T]) *Cache[T] {
	return &Cache[T]{
		load:   load,
		unload: unload,
		items:  make(map[string]T),
	}
}

// Load returns the cached handle for id, loading it on first use.
func (c *Cache[T]) Load(id string) (T, error) {
	if item, ok := c.items[id]; ok {
		return item, nil
	}

	item, err := c.load(id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("loading %q: %w", id, err)
	}

	c.items[id] = item
	slog.Debug("asset loaded", "path", id, "cached", len(c.items))
	return item, nil
}

// Has reports whether id is already loaded.
func (c *Cache[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Len returns the number of cached handles.
func (c *Cache[T]) Len() int {
	return len(c.items)
}

// Unload releases every cached handle in path order and empties the cache.
func (c *Cache[T]) Unload() {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if c.unload != nil {
			c.unload(c.items[id])
		}
		delete(c.items, id)
	}
}
