package imaging

import (
	"math"
)

// RandomSource draws uniform integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Point is a pixel coordinate. Points compare by value.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SampleSeeds draws count distinct points uniformly from the grid. Duplicate
// draws are rejected and redrawn. The returned order is the draw order.
func SampleSeeds(g *Grid, count int, rng RandomSource) ([]Point, error) {
	if err := requireGrid(g); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, invalidf("random source is nil")
	}
	if count < 1 {
		return nil, invalidf("seed count must be positive, got %d", count)
	}
	return sampleSeeds(g, min(count, g.height*g.width), rng), nil
}

func sampleSeeds(g *Grid, count int, rng RandomSource) []Point {
	seen := make(map[Point]struct{}, count)
	seeds := make([]Point, 0, count)
	for len(seeds) < count {
		p := Point{Row: rng.IntN(g.height), Col: rng.IntN(g.width)}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		seeds = append(seeds, p)
	}
	return seeds
}

// Mosaic partitions g into Voronoi cells around seedCount random seeds and
// paints every pixel with its nearest seed's colour, in place.
//
// Nearest means smallest Euclidean distance; on ties the seed drawn first
// wins. A seed is at distance zero from itself, so seed pixels keep their
// colour and the in-place scan never corrupts a colour before it is copied.
// seedCount larger than the pixel count is reduced to the pixel count.
//
// Returns an error wrapping ErrInvalidArgument if seedCount < 1. Nothing is
// mutated on error.
func Mosaic(g *Grid, seedCount int, rng RandomSource) error {
	seeds, err := SampleSeeds(g, seedCount, rng)
	if err != nil {
		return err
	}
	paintNearest(g, seeds)
	return nil
}

// paintNearest recolours every pixel with the colour of its nearest seed.
func paintNearest(g *Grid, seeds []Point) {
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			best := math.Inf(1)
			var nearest Point
			for _, s := range seeds {
				dr := float64(row - s.Row)
				dc := float64(col - s.Col)
				d := math.Sqrt(dr*dr + dc*dc)
				if d < best {
					best = d
					nearest = s
				}
			}
			g.Set(row, col, g.At(nearest.Row, nearest.Col))
		}
	}
}
