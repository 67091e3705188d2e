package imaging

import (
	"math"
	"slices"
)

// GreyLevel is one observed grey value and its statistics.
type GreyLevel struct {
	Value      int     `json:"value"`
	Count      int     `json:"count"`
	Cumulative float64 `json:"cumulative"`
	Mapped     int     `json:"mapped"`
}

// GreyHistogram builds the equalisation table for an already greyscale grid
// from channel 0. Only values that occur are present, in ascending order.
func GreyHistogram(g *Grid) []GreyLevel {
	counts := make(map[int]int)
	for o := 0; o < len(g.pix); o += channels {
		counts[g.pix[o]]++
	}

	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	slices.Sort(values)

	total := float64(g.height * g.width)
	levels := make([]GreyLevel, len(values))
	var cumulative float64
	for i, v := range values {
		cumulative += float64(counts[v]) / total
		levels[i] = GreyLevel{
			Value:      v,
			Count:      counts[v],
			Cumulative: cumulative,
			Mapped:     int(math.Round(cumulative * 255)),
		}
	}
	return levels
}

// Equalize converts g to greyscale and spreads its contrast by histogram
// equalisation, in place.
//
// Each grey value v present in the image maps to
// round(CDF(v) * 255), where CDF sums the relative frequencies of all present
// values <= v. The result stays greyscale (R=G=B).
func Equalize(g *Grid) error {
	if err := requireGrid(g); err != nil {
		return err
	}
	transform(g, GreyscaleMatrix)

	mapping := make(map[int]int)
	for _, level := range GreyHistogram(g) {
		mapping[level.Value] = level.Mapped
	}
	for o := 0; o < len(g.pix); o += channels {
		v := mapping[g.pix[o]]
		g.pix[o], g.pix[o+1], g.pix[o+2] = v, v, v
	}
	return nil
}
