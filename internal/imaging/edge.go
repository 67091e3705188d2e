package imaging

import (
	"math"
)

// DetectEdges replaces g in place with a greyscale edge-strength map.
//
// # Algorithm
//
//  1. Correlate g, unclamped, with SobelX and SobelY to get gx and gy.
//     Border pixels have zero gradient.
//  2. magnitude = floor(sqrt(gx² + gy²)) per pixel and channel.
//  3. Stretch each channel to the full range:
//     (magnitude - min) * 255 / (max - min), integer division, where min and
//     max are taken over the whole grid for that channel. A channel with
//     max == min has no edges and becomes 0.
//  4. Convert the stretched result to greyscale.
//
// A flat image therefore comes out black.
func DetectEdges(g *Grid) error {
	if err := requireGrid(g); err != nil {
		return err
	}

	magnitude := gradientMagnitude(g)
	normalizeChannels(magnitude)
	transform(magnitude, GreyscaleMatrix)

	g.pix = magnitude.pix
	return nil
}

// gradientMagnitude returns the per-channel Sobel magnitude of g. The result
// is unclamped but never negative.
func gradientMagnitude(g *Grid) *Grid {
	gx := correlate(g, SobelX, false)
	gy := correlate(g, SobelY, false)
	for i, x := range gx.pix {
		y := gy.pix[i]
		gx.pix[i] = int(math.Sqrt(float64(x*x + y*y)))
	}
	return gx
}

// normalizeChannels linearly maps each channel's [min,max] onto [0,255].
// Channels with max == min are set to 0.
func normalizeChannels(g *Grid) {
	lo, hi := channelRange(g)
	for o := 0; o < len(g.pix); o += channels {
		for ch := 0; ch < channels; ch++ {
			span := hi[ch] - lo[ch]
			if span == 0 {
				g.pix[o+ch] = 0
				continue
			}
			g.pix[o+ch] = (g.pix[o+ch] - lo[ch]) * 255 / span
		}
	}
}

// channelRange returns the per-channel minimum and maximum over g.
func channelRange(g *Grid) (lo, hi RGB) {
	for ch := 0; ch < channels; ch++ {
		lo[ch] = math.MaxInt
		hi[ch] = math.MinInt
	}
	for o := 0; o < len(g.pix); o += channels {
		for ch := 0; ch < channels; ch++ {
			v := g.pix[o+ch]
			lo[ch] = min(lo[ch], v)
			hi[ch] = max(hi[ch], v)
		}
	}
	return lo, hi
}
