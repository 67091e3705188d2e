package imaging

// Crop extracts the rectangle with top-left corner (x, y) and the given
// width and height into a new, independent grid. x is a column and y a row.
//
// The rectangle must lie entirely within g and have positive width and
// height; otherwise an error wrapping ErrInvalidArgument is returned. The
// engine does not clamp: interactive callers clamp before calling.
func Crop(g *Grid, x, y, width, height int) (*Grid, error) {
	if err := requireGrid(g); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, invalidf("crop size must be positive, got %dx%d", width, height)
	}
	if x < 0 || y < 0 || x >= g.width || y >= g.height || width > g.width-x || height > g.height-y {
		return nil, invalidf("crop region %dx%d at (%d,%d) outside image bounds %dx%d",
			width, height, x, y, g.width, g.height)
	}

	out := newGrid(height, width)
	for row := 0; row < height; row++ {
		src := g.offset(y+row, x)
		copy(out.pix[out.offset(row, 0):out.offset(row+1, 0)], g.pix[src:src+width*channels])
	}
	return out, nil
}

// Rect is a crop rectangle: top-left (X, Y), X a column and Y a row.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SpanRect clamps two arbitrary corners into a width×height grid and returns
// the rectangle they span, in either drag direction. Coordinates are clamped
// to [0,width] and [0,height] so a corner may sit on the far edge. The
// result may have zero width or height.
func SpanRect(x1, y1, x2, y2, width, height int) Rect {
	x1, x2 = clampInt(x1, 0, width), clampInt(x2, 0, width)
	y1, y2 = clampInt(y1, 0, height), clampInt(y2, 0, height)
	return Rect{
		X:      min(x1, x2),
		Y:      min(y1, y2),
		Width:  max(x1, x2) - min(x1, x2),
		Height: max(y1, y2) - min(y1, y2),
	}
}

// clampInt constrains an integer value to the range [lo, hi].
func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
