package texture

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Resolver resolves a texture reference to a decoded NRGBA image.
type Resolver interface {
	Resolve(ref string) *image.NRGBA
}

// Cache resolves texture references for one package directory and keeps
// decoded images for reuse across liveries. Safe for concurrent use.
type Cache struct {
	dir   string
	index *Index

	mu    sync.RWMutex
	items map[string]*image.NRGBA
}

// NewCache creates a cache rooted at a package directory and backed by its
// stem index.
func NewCache(pkgDir string, index *Index) *Cache {
	return &Cache{
		dir:   pkgDir,
		index: index,
		items: make(map[string]*image.NRGBA),
	}
}

// Resolve loads and caches the texture a reference points at. It returns
// nil when the reference cannot be matched to a decodable file, and a
// failed decode is cached too so each bad file costs one attempt.
func (c *Cache) Resolve(ref string) *image.NRGBA {
	path, ok := c.locate(ref)
	if !ok {
		return nil
	}

	c.mu.RLock()
	if img, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	img, _ := Load(path)

	c.mu.Lock()
	if cached, exists := c.items[path]; exists {
		c.mu.Unlock()
		return cached
	}
	c.items[path] = img
	c.mu.Unlock()

	return img
}

// locate tries the reference as a package-relative path before falling back
// to the case-insensitive stem index.
func (c *Cache) locate(ref string) (string, bool) {
	rel := filepath.FromSlash(strings.ReplaceAll(ref, `\`, "/"))
	direct := filepath.Join(c.dir, rel)
	if _, ok := formatRank[strings.ToLower(filepath.Ext(direct))]; ok {
		if info, err := os.Stat(direct); err == nil && !info.IsDir() {
			return direct, true
		}
	}
	return c.index.ResolvePath(ref)
}
