package imaging

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// ColorMatrix is a 3x3 linear map from (R,G,B) to (R',G',B').
//
// Row i holds the weights producing output channel i.
type ColorMatrix struct {
	m *mat.Dense
}

// NewColorMatrix builds a colour matrix from its rows.
func NewColorMatrix(rows [3][3]float64) ColorMatrix {
	data := make([]float64, 0, 9)
	for _, r := range rows {
		data = append(data, r[:]...)
	}
	return ColorMatrix{m: mat.NewDense(3, 3, data)}
}

// At returns the weight of input channel in for output channel out.
func (cm ColorMatrix) At(out, in int) float64 { return cm.m.At(out, in) }

var (
	// GreyscaleMatrix replicates Rec. 709 luma into all three channels.
	GreyscaleMatrix = NewColorMatrix([3][3]float64{
		{0.2126, 0.7152, 0.0722},
		{0.2126, 0.7152, 0.0722},
		{0.2126, 0.7152, 0.0722},
	})

	// SepiaMatrix gives the classic warm brown tone.
	SepiaMatrix = NewColorMatrix([3][3]float64{
		{0.393, 0.769, 0.189},
		{0.349, 0.686, 0.168},
		{0.272, 0.534, 0.131},
	})
)

// Transform applies cm to every pixel of g in place.
//
// Each output channel is Σ cm[c][k]*in[k], truncated toward zero and then
// clamped to [0,255].
func Transform(g *Grid, cm ColorMatrix) error {
	if err := requireGrid(g); err != nil {
		return err
	}
	if cm.m == nil {
		return invalidf("colour matrix is empty")
	}
	transform(g, cm)
	return nil
}

// transform multiplies the pixel matrix (one row per pixel) by the transpose
// of cm, so row p of the product is cm applied to pixel p.
func transform(g *Grid, cm ColorMatrix) {
	in := make([]float64, len(g.pix))
	for i, v := range g.pix {
		in[i] = float64(v)
	}
	n := len(g.pix) / channels
	out := mat.NewDense(n, channels, nil)
	out.Mul(mat.NewDense(n, channels, in), cm.m.T())

	raw := out.RawMatrix()
	for p := 0; p < n; p++ {
		row := raw.Data[p*raw.Stride : p*raw.Stride+channels]
		for ch, v := range row {
			g.pix[p*channels+ch] = clampChannel(truncate(v))
		}
	}
}

// Greyscale converts g to luma in place; afterwards R=G=B for every pixel.
func Greyscale(g *Grid) error {
	return Transform(g, GreyscaleMatrix)
}

// Sepia tones g in place.
func Sepia(g *Grid) error {
	return Transform(g, SepiaMatrix)
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a pixel value in several representations.
type ColorResult struct {
	Row int      `json:"row"`
	Col int      `json:"col"`
	Hex string   `json:"hex"` // "#rrggbb"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// SampleColor reports the pixel at (row, col).
//
// Returns an error wrapping ErrInvalidArgument if the coordinates are outside
// the grid.
func SampleColor(g *Grid, row, col int) (*ColorResult, error) {
	if err := requireGrid(g); err != nil {
		return nil, err
	}
	if !g.In(row, col) {
		return nil, invalidf("coordinates (row %d, col %d) outside %dx%d grid", row, col, g.width, g.height)
	}

	px := g.At(row, col)
	c := colorful.Color{
		R: float64(px[Red]) / 255.0,
		G: float64(px[Green]) / 255.0,
		B: float64(px[Blue]) / 255.0,
	}
	r8, g8, b8 := c.RGB255()
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		Row: row,
		Col: col,
		Hex: c.Hex(),
		RGB: RGBColor{R: r8, G: g8, B: b8},
		HSL: HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
	}, nil
}

// ParseColor accepts "#rrggbb" or "#rgb" and returns the pixel value.
func ParseColor(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, invalidf("bad colour %q", s)
	}
	r, g, b := c.RGB255()
	return RGB{int(r), int(g), int(b)}, nil
}

// String renders an RGB as "(r,g,b)".
func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c[Red], c[Green], c[Blue])
}
