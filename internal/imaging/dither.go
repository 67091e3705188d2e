package imaging

// Error diffusion weights, in sixteenths, for the four not-yet-visited
// neighbours of the current pixel.
var diffusion = [...]struct {
	dr, dc int
	weight float64
}{
	{0, 1, 7.0 / 16},
	{1, -1, 3.0 / 16},
	{1, 0, 5.0 / 16},
	{1, 1, 1.0 / 16},
}

// Dither converts g in place to a black and white image by greyscale
// conversion followed by Floyd-Steinberg error diffusion.
//
// Only interior pixels (rows 1..h-2, columns 1..w-2) are thresholded, in
// row-major order: each channel becomes 0 if <= 127 and 255 otherwise, and the
// quantisation error is added, truncated toward zero and unclamped, to the
// right, lower-left, lower and lower-right neighbours. Neighbours on the
// border are never thresholded and keep their greyscale value, so they do
// not receive error either. Interior values may leave [0,255] between visits
// but every one is thresholded before the call returns.
//
// The traversal is strictly sequential: later pixels read error already
// diffused into them by earlier ones.
func Dither(g *Grid) error {
	if err := requireGrid(g); err != nil {
		return err
	}
	transform(g, GreyscaleMatrix)

	for row := 1; row < g.height-1; row++ {
		for col := 1; col < g.width-1; col++ {
			o := g.offset(row, col)
			for ch := 0; ch < channels; ch++ {
				old := g.pix[o+ch]
				quantised := 0
				if old > 127 {
					quantised = 255
				}
				g.pix[o+ch] = quantised

				diff := float64(old - quantised)
				for _, d := range diffusion {
					r, c := row+d.dr, col+d.dc
					if !g.interior(r, c) {
						continue
					}
					g.pix[g.offset(r, c)+ch] += int(diff * d.weight)
				}
			}
		}
	}
	return nil
}

// interior reports whether (row, col) is at least one pixel away from every
// border.
func (g *Grid) interior(row, col int) bool {
	return row >= 1 && row < g.height-1 && col >= 1 && col < g.width-1
}
