package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// formats maps accepted file extensions to the codec name reported by
// LoadImageInfo.
var formats = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".bmp":  "bmp",
}

// FormatFromPath returns the codec for path based on its extension.
//
// Returns an error wrapping ErrInvalidArgument for anything other than
// jpg, jpeg, png, gif and bmp.
func FormatFromPath(path string) (string, error) {
	format, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", invalidf("unsupported image format %q (want jpg, png, gif or bmp)", filepath.Ext(path))
	}
	return format, nil
}

// Load decodes the image file at path into a new grid.
//
// The format is inferred from the extension. Any failure (unsupported
// extension, missing file, corrupt data) wraps ErrInvalidArgument.
func Load(path string) (*Grid, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %v: %w", path, err, ErrInvalidArgument)
	}
	return FromImage(img)
}

// Save encodes g to path in the format named by the extension.
//
// Any failure wraps ErrInvalidArgument.
func Save(g *Grid, path string) error {
	if err := requireGrid(g); err != nil {
		return err
	}
	if _, err := FormatFromPath(path); err != nil {
		return err
	}
	if err := imaging.Save(g.Image(), path); err != nil {
		return fmt.Errorf("failed to save image %s: %v: %w", path, err, ErrInvalidArgument)
	}
	return nil
}

// GridCache provides thread-safe caching of decoded grids to avoid redundant
// disk reads.
//
// The cache keeps its own copy of every grid. Load hands out clones, so a
// caller may mutate what it receives without affecting the cache or other
// callers.
//
// # Memory Management
//
// Cached grids remain in memory until explicitly removed via Evict() or
// Clear(). Save evicts the path it writes.
type GridCache struct {
	mu    sync.RWMutex
	grids map[string]*Grid
}

// NewGridCache creates and initializes a new empty grid cache.
func NewGridCache() *GridCache {
	return &GridCache{
		grids: make(map[string]*Grid),
	}
}

// Load returns a private copy of the grid decoded from path, reading the
// file only on the first request.
//
// The grid is cached using the exact path string provided. Different paths
// to the same file (e.g., relative vs absolute) result in separate entries.
func (c *GridCache) Load(path string) (*Grid, error) {
	c.mu.RLock()
	if g, ok := c.grids[path]; ok {
		c.mu.RUnlock()
		return g.Clone(), nil
	}
	c.mu.RUnlock()

	g, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.grids[path] = g
	c.mu.Unlock()

	return g.Clone(), nil
}

// Save writes g to path and evicts any cached copy of that path.
func (c *GridCache) Save(g *Grid, path string) error {
	if err := Save(g, path); err != nil {
		return err
	}
	c.Evict(path)
	return nil
}

// Clear removes all grids from the cache.
func (c *GridCache) Clear() {
	c.mu.Lock()
	c.grids = make(map[string]*Grid)
	c.mu.Unlock()
}

// Evict removes a specific grid from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *GridCache) Evict(path string) {
	c.mu.Lock()
	delete(c.grids, path)
	c.mu.Unlock()
}

// Len reports the number of cached grids.
func (c *GridCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.grids)
}

// ImageInfo describes the current grid, and its file when it came from one.
type ImageInfo struct {
	// Width is the grid width in pixels.
	Width int `json:"width"`

	// Height is the grid height in pixels.
	Height int `json:"height"`

	// Format is the codec inferred from Path's extension, empty for grids
	// that were generated rather than loaded.
	Format string `json:"format,omitempty"`

	// Path is the file the grid was last loaded from or saved to.
	Path string `json:"path,omitempty"`

	// FileSizeBytes is the size of Path on disk, 0 if unknown.
	FileSizeBytes int64 `json:"file_size_bytes,omitempty"`
}

// LoadImageInfo describes g and, when path is not empty, the file behind it.
func LoadImageInfo(g *Grid, path string) (*ImageInfo, error) {
	if err := requireGrid(g); err != nil {
		return nil, err
	}
	info := &ImageInfo{Width: g.width, Height: g.height}
	if path == "" {
		return info, nil
	}

	info.Path = path
	if format, err := FormatFromPath(path); err == nil {
		info.Format = format
	}
	if stat, err := os.Stat(path); err == nil {
		info.FileSizeBytes = stat.Size()
	}
	return info, nil
}
