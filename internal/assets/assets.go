// Package assets loads the scene descriptor and sound clips from disk.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

//go:embed data
var builtin embed.FS

// ErrNotFound is returned when no root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager loads files from a list of directories, with a built-in fallback.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates an asset manager searching roots. Later roots win.
func NewManager(roots ...string) *Manager {
	m := &Manager{cache: NewCache()}
	for _, r := range roots {
		m.AddRoot(r)
	}
	return m
}

// AddRoot adds a directory with higher priority than every root before it.
func (m *Manager) AddRoot(dir string) {
	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()
}

// Load returns the contents of path from the highest-priority root holding
// it, or from the built-in data when no root does.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	roots := m.roots
	m.mu.RUnlock()

	for i := len(roots) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(roots[i], path))
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", path, roots[i], err)
		}
	}

	data, err := builtin.ReadFile("data/" + filepath.ToSlash(path))
	if err == nil {
		m.cache.Set(path, data)
		return data, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
