package imaging

import (
	"math"
)

// RainbowColors are the seven bands, top-to-bottom or left-to-right.
var RainbowColors = [7]RGB{
	{255, 0, 0},   // red
	{255, 127, 0}, // orange
	{255, 255, 0}, // yellow
	{0, 255, 0},   // green
	{0, 0, 255},   // blue
	{75, 0, 130},  // indigo
	{148, 0, 211}, // violet
}

// Orientation selects the direction in which rainbow bands are stacked.
type Orientation int

const (
	// Horizontal bands are stacked top to bottom.
	Horizontal Orientation = iota
	// Vertical bands are laid out left to right.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// roundHalfUp rounds a positive ratio to the nearest integer, halves up.
func roundHalfUp(num, den int) int {
	return int(math.Floor(float64(num)/float64(den) + 0.5))
}

// Rainbow generates seven equal bands of RainbowColors.
//
// Horizontal needs width >= 1 and height >= 7; each band is round(height/7)
// rows so the actual height is 7*round(height/7). Vertical needs width >= 7
// and height >= 1 and scales the width the same way.
func Rainbow(width, height int, o Orientation) (*Grid, error) {
	switch o {
	case Horizontal:
		if width < 1 || height < 7 {
			return nil, invalidf("horizontal rainbow needs width >= 1 and height >= 7, got %dx%d", width, height)
		}
		if err := checkSize(height, width); err != nil {
			return nil, err
		}
		band := roundHalfUp(height, 7)
		g, err := NewGrid(band*7, width)
		if err != nil {
			return nil, err
		}
		for i, c := range RainbowColors {
			g.Fill(i*band, 0, (i+1)*band, width, c)
		}
		return g, nil
	case Vertical:
		if width < 7 || height < 1 {
			return nil, invalidf("vertical rainbow needs width >= 7 and height >= 1, got %dx%d", width, height)
		}
		if err := checkSize(height, width); err != nil {
			return nil, err
		}
		band := roundHalfUp(width, 7)
		g, err := NewGrid(height, band*7)
		if err != nil {
			return nil, err
		}
		for i, c := range RainbowColors {
			g.Fill(0, i*band, height, (i+1)*band, c)
		}
		return g, nil
	default:
		return nil, invalidf("unknown rainbow orientation %d", int(o))
	}
}

// Checkerboard generates a square board of numberOfSquares×numberOfSquares
// squares alternating first and second, first in the top-left corner.
//
// Each square's side is round(totalHeight/numberOfSquares); the board is
// always square with side squareSide*numberOfSquares.
func Checkerboard(totalHeight, numberOfSquares int, first, second RGB) (*Grid, error) {
	if totalHeight < 1 || numberOfSquares < 1 {
		return nil, invalidf("checkerboard needs height >= 1 and squares >= 1, got %d and %d", totalHeight, numberOfSquares)
	}
	if !first.Valid() || !second.Valid() {
		return nil, invalidf("checkerboard colours must be within 0-255, got %v and %v", first, second)
	}
	if err := checkSize(totalHeight, totalHeight); err != nil {
		return nil, err
	}
	square := roundHalfUp(totalHeight, numberOfSquares)
	if square < 1 {
		return nil, invalidf("checkerboard of height %d cannot hold %d squares", totalHeight, numberOfSquares)
	}

	side := square * numberOfSquares
	g, err := NewGrid(side, side)
	if err != nil {
		return nil, err
	}
	colors := [2]RGB{first, second}
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			g.Set(row, col, colors[(row/square+col/square)%2])
		}
	}
	return g, nil
}

// Flag identifies one of the built-in national flags.
type Flag string

const (
	Norway      Flag = "norway"
	Greece      Flag = "greece"
	Switzerland Flag = "switzerland"
)

// band is a rectangle in flag units: rows [r0,r1) × cols [c0,c1). A bound of
// -1 stands for the full flag extent.
type band struct {
	r0, c0, r1, c1 int
	color          RGB
}

// flagSpec describes a flag as a background plus bands painted in order.
type flagSpec struct {
	unitsWide  int
	unitsHigh  int
	background RGB
	bands      []band
}

var (
	norwayRed  = RGB{186, 12, 47}
	norwayBlue = RGB{0, 32, 91}
	greeceBlue = RGB{0, 20, 137}
	swissRed   = RGB{218, 41, 28}
	white      = RGB{255, 255, 255}
)

var flags = map[Flag]flagSpec{
	Norway: {
		unitsWide:  22,
		unitsHigh:  16,
		background: norwayRed,
		bands: []band{
			{0, 6, -1, 10, white},
			{6, 0, 10, -1, white},
			{0, 7, -1, 9, norwayBlue},
			{7, 0, 9, -1, norwayBlue},
		},
	},
	Greece: {
		unitsWide:  27,
		unitsHigh:  18,
		background: greeceBlue,
		bands: []band{
			{0, 4, 10, 6, white},
			{2, 10, 4, -1, white},
			{4, 0, 6, 10, white},
			{6, 10, 8, -1, white},
			{10, 0, 12, -1, white},
			{14, 0, 16, -1, white},
		},
	},
	Switzerland: {
		unitsWide:  32,
		unitsHigh:  32,
		background: swissRed,
		bands: []band{
			{6, 13, 26, 19, white},
			{13, 6, 19, 26, white},
		},
	},
}

// Flags lists the supported flags.
func Flags() []Flag {
	return []Flag{Norway, Greece, Switzerland}
}

// MinFlagWidth returns the narrowest width accepted for f.
func MinFlagWidth(f Flag) (int, bool) {
	fs, ok := flags[f]
	return fs.unitsWide, ok
}

// NationalFlag renders f at scale round(width/unitsWide). The actual width is
// scale*unitsWide; the height keeps the flag's unit proportions.
//
// Widths below one unit per column (Norway 22, Greece 27, Switzerland 32)
// are rejected.
func NationalFlag(f Flag, width int) (*Grid, error) {
	fs, ok := flags[f]
	if !ok {
		return nil, invalidf("unknown flag %q", f)
	}
	if width < fs.unitsWide {
		return nil, invalidf("%s flag needs width >= %d, got %d", f, fs.unitsWide, width)
	}

	if err := checkSize(1, width); err != nil {
		return nil, err
	}

	scale := roundHalfUp(width, fs.unitsWide)
	height, actualWidth := fs.unitsHigh*scale, fs.unitsWide*scale
	g, err := NewGrid(height, actualWidth)
	if err != nil {
		return nil, err
	}
	g.Fill(0, 0, height, actualWidth, fs.background)
	for _, b := range fs.bands {
		r1, c1 := b.r1*scale, b.c1*scale
		if b.r1 < 0 {
			r1 = height
		}
		if b.c1 < 0 {
			c1 = actualWidth
		}
		g.Fill(b.r0*scale, b.c0*scale, r1, c1, b.color)
	}
	return g, nil
}
