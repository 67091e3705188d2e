package imaging

import (
	"gonum.org/v1/gonum/mat"
)

// Kernel is a square matrix of correlation weights with an odd side length.
type Kernel struct {
	m      *mat.Dense
	side   int
	radius int
}

// NewKernel builds a kernel from row-major weights. rows must be square with
// an odd side length.
func NewKernel(rows [][]float64) (Kernel, error) {
	side := len(rows)
	if side == 0 || side%2 == 0 {
		return Kernel{}, invalidf("kernel side must be odd, got %d", side)
	}
	data := make([]float64, 0, side*side)
	for i, r := range rows {
		if len(r) != side {
			return Kernel{}, invalidf("kernel row %d has %d weights, want %d", i, len(r), side)
		}
		data = append(data, r...)
	}
	return Kernel{m: mat.NewDense(side, side, data), side: side, radius: side / 2}, nil
}

// mustKernel is for the fixed kernels below.
func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Side returns the kernel's side length.
func (k Kernel) Side() int { return k.side }

// Radius returns floor(side/2).
func (k Kernel) Radius() int { return k.radius }

// At returns the weight at (kr, kc).
func (k Kernel) At(kr, kc int) float64 { return k.m.At(kr, kc) }

var (
	// BlurKernel is the 3x3 Gaussian approximation {1,2,1}⊗{1,2,1}/16.
	BlurKernel = mustKernel([][]float64{
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
		{1.0 / 8, 1.0 / 4, 1.0 / 8},
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
	})

	// SharpenKernel boosts the centre against a negative 5x5 ring.
	SharpenKernel = mustKernel([][]float64{
		{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
	})

	// SobelX responds to horizontal intensity changes.
	SobelX = mustKernel([][]float64{
		{1, 0, -1},
		{2, 0, -2},
		{1, 0, -1},
	})

	// SobelY responds to vertical intensity changes.
	SobelY = mustKernel([][]float64{
		{1, 2, 1},
		{0, 0, 0},
		{-1, -2, -1},
	})
)

// Correlate computes the 2D correlation of g with k and returns a new grid
// with the same dimensions.
//
// For every pixel at least Radius() away from all borders, each channel is
// the sum of its side×side neighbourhood's weighted terms, each term
// truncated toward zero before it is added:
//
//	out[r][c][ch] = Σ trunc(k[kr][kc] * g[r-radius+kr][c-radius+kc][ch])
//
// Fractional weights therefore lose up to one unit per term; a uniform 255
// grid blurs to 247.
//
// # Border pixels
//
// The kernel never reads outside the grid. Pixels within Radius() of a
// border are handled per mode:
//   - clamp=true (filters): the source pixel is copied unchanged.
//   - clamp=false (gradient fields): the pixel is zero, meaning "no gradient".
//
// With clamp=true every channel is clamped to [0,255]. With clamp=false the
// raw integers are written; such grids are internal to this package and are
// never returned to callers.
func Correlate(g *Grid, k Kernel, clamp bool) (*Grid, error) {
	if err := requireGrid(g); err != nil {
		return nil, err
	}
	if k.m == nil {
		return nil, invalidf("kernel is empty")
	}
	return correlate(g, k, clamp), nil
}

func correlate(g *Grid, k Kernel, clamp bool) *Grid {
	var out *Grid
	if clamp {
		out = g.Clone()
	} else {
		out = newGrid(g.height, g.width)
	}

	radius := k.radius
	weights := k.m.RawMatrix()
	for row := radius; row < g.height-radius; row++ {
		for col := radius; col < g.width-radius; col++ {
			var sum RGB
			for kr := 0; kr < k.side; kr++ {
				src := g.offset(row-radius+kr, col-radius)
				krow := weights.Data[kr*weights.Stride : kr*weights.Stride+k.side]
				for kc, w := range krow {
					o := src + kc*channels
					sum[Red] += truncate(w * float64(g.pix[o]))
					sum[Green] += truncate(w * float64(g.pix[o+1]))
					sum[Blue] += truncate(w * float64(g.pix[o+2]))
				}
			}
			o := out.offset(row, col)
			for ch := 0; ch < channels; ch++ {
				v := sum[ch]
				if clamp {
					v = clampChannel(v)
				}
				out.pix[o+ch] = v
			}
		}
	}
	return out
}

// Blur smooths the grid in place with BlurKernel.
func Blur(g *Grid) error {
	return filterInPlace(g, BlurKernel)
}

// Sharpen enhances edges in place with SharpenKernel.
func Sharpen(g *Grid) error {
	return filterInPlace(g, SharpenKernel)
}

func filterInPlace(g *Grid, k Kernel) error {
	out, err := Correlate(g, k, true)
	if err != nil {
		return err
	}
	g.pix = out.pix
	return nil
}

// truncEpsilon absorbs float error in colour matrix sums whose weights add up
// to an exact integer multiple (for example 0.2126+0.7152+0.0722 = 1).
const truncEpsilon = 1e-9

// truncate rounds v toward zero. Values within truncEpsilon of the next
// integer away from zero snap to that integer.
func truncate(v float64) int {
	if v >= 0 {
		return int(v + truncEpsilon)
	}
	return int(v - truncEpsilon)
}
