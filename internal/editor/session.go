// Package editor holds the state an interactive or scripted front end keeps
// around the imaging engine: one current grid, an undo history, the random
// source used by mosaic, and a grid cache for file loads.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/ironsheep/pixel-editor-mcp/internal/imaging"
)

// ErrNoImage is returned by operations that need a current grid when none
// has been loaded or generated yet.
var ErrNoImage = fmt.Errorf("no image loaded: %w", imaging.ErrInvalidArgument)

// ErrNothingToUndo is returned by Undo when the history is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// DefaultHistory is the undo depth used when Options.History is zero.
const DefaultHistory = 10

// Options configures a Session.
type Options struct {
	// Rand drives mosaic seed sampling. Nil means a PCG source seeded from
	// Seed.
	Rand imaging.RandomSource

	// Seed seeds the default random source. Zero means the current time.
	Seed uint64

	// History is the maximum number of undo steps. Zero means
	// DefaultHistory; negative disables undo.
	History int

	// Cache is shared between sessions that load the same files. Nil means
	// a private cache.
	Cache *imaging.GridCache

	// Logger receives one debug record per applied command. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Session owns exactly one current grid and applies engine operations to it
// one at a time. A Session is not safe for concurrent use.
type Session struct {
	grid    *imaging.Grid
	path    string
	history []*imaging.Grid
	limit   int
	rng     imaging.RandomSource
	cache   *imaging.GridCache
	log     *slog.Logger
}

// New creates an empty session.
func New(opts Options) *Session {
	s := &Session{
		limit: opts.History,
		rng:   opts.Rand,
		cache: opts.Cache,
		log:   opts.Logger,
	}
	if s.limit == 0 {
		s.limit = DefaultHistory
	}
	if s.rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		s.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if s.cache == nil {
		s.cache = imaging.NewGridCache()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Grid returns the current grid, or nil. The caller must not mutate it.
func (s *Session) Grid() *imaging.Grid { return s.grid }

// Path returns the file the current grid was last loaded from or saved to.
func (s *Session) Path() string { return s.path }

// HistoryLen reports how many undo steps are available.
func (s *Session) HistoryLen() int { return len(s.history) }

// Info describes the current grid.
func (s *Session) Info() (*imaging.ImageInfo, error) {
	if s.grid == nil {
		return nil, ErrNoImage
	}
	return imaging.LoadImageInfo(s.grid, s.path)
}

// push records the current grid before it is replaced or mutated.
func (s *Session) push() {
	if s.grid == nil || s.limit < 0 {
		return
	}
	s.history = append(s.history, s.grid.Clone())
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
}

// Undo restores the grid as it was before the last successful command.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		return ErrNothingToUndo
	}
	last := len(s.history) - 1
	s.grid = s.history[last]
	s.history[last] = nil
	s.history = s.history[:last]
	s.logApplied("undo")
	return nil
}

// mutate runs an in-place engine operation on a working copy and commits it
// only on success, so a failed command never leaves a half-written grid.
func (s *Session) mutate(name string, op func(*imaging.Grid) error, args ...any) error {
	if s.grid == nil {
		return ErrNoImage
	}
	work := s.grid.Clone()
	if err := op(work); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	s.push()
	s.grid = work
	s.logApplied(name, args...)
	return nil
}

// replace installs a grid produced by crop or a generator.
func (s *Session) replace(name string, g *imaging.Grid, err error, args ...any) error {
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	s.push()
	s.grid = g
	s.logApplied(name, args...)
	return nil
}

func (s *Session) logApplied(name string, args ...any) {
	attrs := append([]any{"command", name}, args...)
	if s.grid != nil {
		attrs = append(attrs, "width", s.grid.Width(), "height", s.grid.Height())
	}
	s.log.Debug("applied", attrs...)
}

// Load replaces the current grid with the image at path.
func (s *Session) Load(path string) error {
	g, err := s.cache.Load(path)
	if err := s.replace("load", g, err, "path", path); err != nil {
		return err
	}
	s.path = path
	return nil
}

// Save writes the current grid to path.
func (s *Session) Save(path string) error {
	if s.grid == nil {
		return ErrNoImage
	}
	if err := s.cache.Save(s.grid, path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.path = path
	s.log.Debug("saved", "path", path)
	return nil
}

// Blur applies the 3x3 blur filter.
func (s *Session) Blur() error { return s.mutate("blur", imaging.Blur) }

// Sharpen applies the 5x5 sharpen filter.
func (s *Session) Sharpen() error { return s.mutate("sharpen", imaging.Sharpen) }

// Greyscale converts to luma.
func (s *Session) Greyscale() error { return s.mutate("greyscale", imaging.Greyscale) }

// Sepia applies the sepia tone.
func (s *Session) Sepia() error { return s.mutate("sepia", imaging.Sepia) }

// Dither reduces to black and white with error diffusion.
func (s *Session) Dither() error { return s.mutate("dither", imaging.Dither) }

// Mosaic recolours into seedCount Voronoi cells.
func (s *Session) Mosaic(seedCount int) error {
	return s.mutate("mosaic", func(g *imaging.Grid) error {
		return imaging.Mosaic(g, seedCount, s.rng)
	}, "seeds", seedCount)
}

// DetectEdges replaces the image with its Sobel edge map.
func (s *Session) DetectEdges() error { return s.mutate("edgeDetection", imaging.DetectEdges) }

// Equalize applies greyscale histogram equalisation.
func (s *Session) Equalize() error { return s.mutate("greyscaleEnhancement", imaging.Equalize) }

// Crop replaces the current grid with the given sub-rectangle.
func (s *Session) Crop(x, y, width, height int) error {
	if s.grid == nil {
		return ErrNoImage
	}
	g, err := imaging.Crop(s.grid, x, y, width, height)
	return s.replace("imagecropping", g, err, "x", x, "y", y, "w", width, "h", height)
}

// CropCorners crops to the rectangle spanned by two arbitrary corners, as
// picked with a pointer. Corners are clamped into the grid first; a
// selection with zero width or height is rejected.
func (s *Session) CropCorners(x1, y1, x2, y2 int) error {
	if s.grid == nil {
		return ErrNoImage
	}
	r := imaging.SpanRect(x1, y1, x2, y2, s.grid.Width(), s.grid.Height())
	return s.Crop(r.X, r.Y, r.Width, r.Height)
}

// Rainbow generates a striped rainbow.
func (s *Session) Rainbow(width, height int, o imaging.Orientation) error {
	g, err := imaging.Rainbow(width, height, o)
	return s.replace("rainbow", g, err, "orientation", o.String(), "w", width, "h", height)
}

// Checkerboard generates a two-colour board.
func (s *Session) Checkerboard(height, squares int, first, second imaging.RGB) error {
	g, err := imaging.Checkerboard(height, squares, first, second)
	return s.replace("checkboard", g, err, "h", height, "n", squares)
}

// Flag generates a national flag.
func (s *Session) Flag(f imaging.Flag, width int) error {
	g, err := imaging.NationalFlag(f, width)
	return s.replace(string(f), g, err, "w", width)
}

// SampleColor reports the pixel at (row, col) of the current grid.
func (s *Session) SampleColor(row, col int) (*imaging.ColorResult, error) {
	if s.grid == nil {
		return nil, ErrNoImage
	}
	return imaging.SampleColor(s.grid, row, col)
}
