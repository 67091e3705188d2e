package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
)

// Channel indices within a pixel.
const (
	Red = iota
	Green
	Blue

	channels = 3
)

// RGB is one pixel: red, green and blue channel values.
//
// Channels are plain ints so that unclamped intermediate results can be
// represented. Any grid handed back to a caller satisfies 0 <= c <= 255.
type RGB [channels]int

// Valid reports whether every channel lies in [0,255].
func (c RGB) Valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// Grid is an owned height×width grid of RGB pixels stored row-major.
//
// The dimensions are fixed for the lifetime of a Grid. Operations that change
// dimensions (crop, pattern generation) return a new Grid instead.
//
// A Grid is not safe for concurrent use; the engine assumes exclusive access
// for the duration of each call.
type Grid struct {
	height int
	width  int
	pix    []int
}

// MaxPixels bounds the area of any grid the engine allocates.
const MaxPixels = 1 << 25

// NewGrid allocates a black grid with the given dimensions.
func NewGrid(height, width int) (*Grid, error) {
	if err := checkSize(height, width); err != nil {
		return nil, err
	}
	return newGrid(height, width), nil
}

// checkSize rejects non-positive dimensions and areas above MaxPixels
// without overflowing.
func checkSize(height, width int) error {
	if height < 1 || width < 1 {
		return invalidf("grid dimensions must be positive, got %dx%d", width, height)
	}
	if width > MaxPixels/height {
		return invalidf("grid %dx%d exceeds %d pixels", width, height, MaxPixels)
	}
	return nil
}

func newGrid(height, width int) *Grid {
	return &Grid{
		height: height,
		width:  width,
		pix:    make([]int, height*width*channels),
	}
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

func (g *Grid) offset(row, col int) int {
	return (row*g.width + col) * channels
}

// In reports whether (row, col) lies inside the grid.
func (g *Grid) In(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the pixel at (row, col). It panics if the coordinates are
// outside the grid, like slice indexing.
func (g *Grid) At(row, col int) RGB {
	o := g.offset(row, col)
	return RGB{g.pix[o], g.pix[o+1], g.pix[o+2]}
}

// Set writes the pixel at (row, col).
func (g *Grid) Set(row, col int, c RGB) {
	o := g.offset(row, col)
	g.pix[o] = c[Red]
	g.pix[o+1] = c[Green]
	g.pix[o+2] = c[Blue]
}

// Fill paints the half-open rectangle rows [r0,r1) × cols [c0,c1), clipped
// to the grid.
func (g *Grid) Fill(r0, c0, r1, c1 int, c RGB) {
	r0, r1 = max(r0, 0), min(r1, g.height)
	c0, c1 = max(c0, 0), min(c1, g.width)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			g.Set(row, col, c)
		}
	}
}

// Clone returns an independent deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{height: g.height, width: g.width, pix: make([]int, len(g.pix))}
	copy(out.pix, g.pix)
	return out
}

// Equal reports whether both grids have the same dimensions and pixels.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.height != other.height || g.width != other.width {
		return false
	}
	for i, v := range g.pix {
		if other.pix[i] != v {
			return false
		}
	}
	return true
}

// InRange reports whether every channel of every pixel lies in [0,255].
func (g *Grid) InRange() bool {
	for _, v := range g.pix {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// FromImage copies any image.Image into a new grid. Alpha is discarded.
func FromImage(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, invalidf("image is nil")
	}
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	g, err := NewGrid(bounds.Dy(), bounds.Dx())
	if err != nil {
		return nil, err
	}
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			i := rgba.PixOffset(bounds.Min.X+col, bounds.Min.Y+row)
			g.Set(row, col, RGB{int(rgba.Pix[i]), int(rgba.Pix[i+1]), int(rgba.Pix[i+2])})
		}
	}
	return g, nil
}

// Image renders the grid as an opaque NRGBA image. Channels are clamped so
// that an out-of-range grid never produces wrapped bytes.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			c := g.At(row, col)
			img.SetNRGBA(col, row, color.NRGBA{
				R: uint8(clampChannel(c[Red])),
				G: uint8(clampChannel(c[Green])),
				B: uint8(clampChannel(c[Blue])),
				A: 255,
			})
		}
	}
	return img
}

// clampChannel restricts v to [0,255].
func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
