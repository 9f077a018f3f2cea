package texture

import (
	"sync"

	"softrender/internal/raster"
)

// Resolver resolves a texture name to an uploaded texture.
type Resolver interface {
	Resolve(texName string) *raster.Texture
}

// Cache is a concurrency-safe texture cache. Textures it returns are shared
// by every caller and must not be destroyed individually; use Release.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	tex *raster.Texture
	err error // load or upload failure; tex is nil
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found or
// not decodable; failures are cached too.
func (c *Cache) Resolve(texName string) *raster.Texture {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.tex
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	tex, err := Load(path)
	if err != nil {
		raster.Logger().Debug("texture load failed", "name", texName, "path", path, "err", err)
	}

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		if tex != nil {
			tex.Destroy()
		}
		return entry.tex
	}
	c.items[path] = &cacheEntry{tex: tex, err: err}
	c.mu.Unlock()

	return tex
}

// Err returns the cached load error for texName, if any.
func (c *Cache) Err(texName string) error {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, exists := c.items[path]; exists {
		return entry.err
	}
	return nil
}

// Release destroys every cached texture. Call it once no context still has
// one bound.
func (c *Cache) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, entry := range c.items {
		entry.tex.Destroy()
		delete(c.items, path)
	}
}
