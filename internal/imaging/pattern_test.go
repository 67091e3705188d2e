package imaging

import (
	"errors"
	"math"
	"testing"
)

func TestRainbow_Horizontal(t *testing.T) {
	g, err := Rainbow(10, 7, Horizontal)
	if err != nil {
		t.Fatalf("Rainbow failed: %v", err)
	}
	if g.Height() != 7 || g.Width() != 10 {
		t.Fatalf("dimensions: got %dx%d, want 10x7", g.Width(), g.Height())
	}
	for r := 0; r < 7; r++ {
		for c := 0; c < 10; c++ {
			if got := g.At(r, c); got != RainbowColors[r] {
				t.Fatalf("pixel (%d,%d): got %v, want %v", r, c, got, RainbowColors[r])
			}
		}
	}
}

func TestRainbow_ActualSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		o             Orientation
		wantW, wantH  int
	}{
		{"horizontal rounds band down", 5, 10, Horizontal, 5, 7},
		{"horizontal rounds band up", 5, 11, Horizontal, 5, 14},
		{"vertical rounds band", 18, 3, Vertical, 21, 3},
		{"vertical exact", 14, 1, Vertical, 14, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Rainbow(tt.width, tt.height, tt.o)
			if err != nil {
				t.Fatalf("Rainbow failed: %v", err)
			}
			if g.Width() != tt.wantW || g.Height() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", g.Width(), g.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRainbow_VerticalBands(t *testing.T) {
	g, err := Rainbow(14, 2, Vertical)
	if err != nil {
		t.Fatalf("Rainbow failed: %v", err)
	}
	for c := 0; c < 14; c++ {
		if got := g.At(1, c); got != RainbowColors[c/2] {
			t.Errorf("column %d: got %v, want %v", c, got, RainbowColors[c/2])
		}
	}
}

func TestRainbow_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		o             Orientation
	}{
		{"horizontal too short", 10, 6, Horizontal},
		{"horizontal zero width", 0, 7, Horizontal},
		{"vertical too narrow", 6, 10, Vertical},
		{"vertical zero height", 7, 0, Vertical},
		{"unknown orientation", 10, 10, Orientation(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Rainbow(tt.width, tt.height, tt.o); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestCheckerboard(t *testing.T) {
	red, blue := RGB{255, 0, 0}, RGB{0, 0, 255}

	g, err := Checkerboard(4, 2, red, blue)
	if err != nil {
		t.Fatalf("Checkerboard failed: %v", err)
	}
	if g.Height() != 4 || g.Width() != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", g.Width(), g.Height())
	}

	want := [4][4]RGB{
		{red, red, blue, blue},
		{red, red, blue, blue},
		{blue, blue, red, red},
		{blue, blue, red, red},
	}
	for r := range want {
		for c := range want[r] {
			if got := g.At(r, c); got != want[r][c] {
				t.Errorf("pixel (%d,%d): got %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}

func TestCheckerboard_AlwaysSquare(t *testing.T) {
	// round(10/3) = 3, board side 9
	g, err := Checkerboard(10, 3, RGB{0, 0, 0}, RGB{255, 255, 255})
	if err != nil {
		t.Fatalf("Checkerboard failed: %v", err)
	}
	if g.Height() != 9 || g.Width() != 9 {
		t.Errorf("dimensions: got %dx%d, want 9x9", g.Width(), g.Height())
	}
	if got := g.At(8, 8); got != (RGB{0, 0, 0}) {
		t.Errorf("bottom-right of odd board: got %v, want first colour", got)
	}
}

func TestCheckerboard_Invalid(t *testing.T) {
	ok := RGB{1, 2, 3}
	tests := []struct {
		name          string
		height, count int
		first, second RGB
	}{
		{"zero height", 0, 2, ok, ok},
		{"zero squares", 4, 0, ok, ok},
		{"channel above 255", 4, 2, RGB{256, 0, 0}, ok},
		{"negative channel", 4, 2, ok, RGB{0, -1, 0}},
		{"squares exceed height", 1, 3, ok, ok},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Checkerboard(tt.height, tt.count, tt.first, tt.second); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNationalFlag_Dimensions(t *testing.T) {
	tests := []struct {
		flag         Flag
		width        int
		wantW, wantH int
	}{
		{Norway, 22, 22, 16},
		{Norway, 50, 44, 32},
		{Greece, 27, 27, 18},
		{Greece, 70, 81, 54},
		{Switzerland, 32, 32, 32},
		{Switzerland, 100, 96, 96},
	}

	for _, tt := range tests {
		t.Run(string(tt.flag), func(t *testing.T) {
			g, err := NationalFlag(tt.flag, tt.width)
			if err != nil {
				t.Fatalf("NationalFlag failed: %v", err)
			}
			if g.Width() != tt.wantW || g.Height() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", g.Width(), g.Height(), tt.wantW, tt.wantH)
			}
			assertInRange(t, g)
		})
	}
}

func TestNationalFlag_Norway(t *testing.T) {
	g, err := NationalFlag(Norway, 44) // scale 2
	if err != nil {
		t.Fatalf("NationalFlag failed: %v", err)
	}

	tests := []struct {
		name     string
		row, col int
		want     RGB
	}{
		{"red canton", 0, 0, norwayRed},
		{"red fly", 31, 43, norwayRed},
		{"white vertical arm", 0, 12, white},
		{"white horizontal arm", 12, 40, white},
		{"blue vertical arm", 0, 14, norwayBlue},
		{"blue horizontal arm", 16, 0, norwayBlue},
		{"blue centre", 16, 16, norwayBlue},
		{"white just past blue", 18, 19, white},
	}
	for _, tt := range tests {
		if got := g.At(tt.row, tt.col); got != tt.want {
			t.Errorf("%s (%d,%d): got %v, want %v", tt.name, tt.row, tt.col, got, tt.want)
		}
	}
}

func TestNationalFlag_Greece(t *testing.T) {
	g, err := NationalFlag(Greece, 27) // scale 1
	if err != nil {
		t.Fatalf("NationalFlag failed: %v", err)
	}

	tests := []struct {
		name     string
		row, col int
		want     RGB
	}{
		{"canton blue", 0, 0, greeceBlue},
		{"canton cross vertical", 0, 4, white},
		{"canton cross horizontal", 4, 0, white},
		{"first stripe blue", 0, 20, greeceBlue},
		{"second stripe white", 2, 20, white},
		{"third stripe blue", 4, 20, greeceBlue},
		{"fourth stripe white", 6, 20, white},
		{"canton bottom blue", 8, 0, greeceBlue},
		{"full width stripe", 10, 0, white},
		{"lower blue", 12, 26, greeceBlue},
		{"lower white", 15, 13, white},
		{"bottom blue", 17, 26, greeceBlue},
	}
	for _, tt := range tests {
		if got := g.At(tt.row, tt.col); got != tt.want {
			t.Errorf("%s (%d,%d): got %v, want %v", tt.name, tt.row, tt.col, got, tt.want)
		}
	}
}

func TestNationalFlag_Switzerland(t *testing.T) {
	g, err := NationalFlag(Switzerland, 32)
	if err != nil {
		t.Fatalf("NationalFlag failed: %v", err)
	}

	tests := []struct {
		name     string
		row, col int
		want     RGB
	}{
		{"corner", 0, 0, swissRed},
		{"centre", 16, 16, white},
		{"top of vertical arm", 6, 13, white},
		{"above vertical arm", 5, 16, swissRed},
		{"left of horizontal arm", 16, 5, swissRed},
		{"beside vertical arm", 8, 12, swissRed},
		{"end of horizontal arm", 18, 25, white},
		{"past horizontal arm", 18, 26, swissRed},
	}
	for _, tt := range tests {
		if got := g.At(tt.row, tt.col); got != tt.want {
			t.Errorf("%s (%d,%d): got %v, want %v", tt.name, tt.row, tt.col, got, tt.want)
		}
	}
}

func TestNationalFlag_Invalid(t *testing.T) {
	tests := []struct {
		flag  Flag
		width int
	}{
		{Norway, 21},
		{Greece, 26},
		{Switzerland, 31},
		{Flag("atlantis"), 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.flag), func(t *testing.T) {
			if _, err := NationalFlag(tt.flag, tt.width); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestGenerators_TooLarge(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (*Grid, error)
	}{
		{"rainbow horizontal huge width", func() (*Grid, error) { return Rainbow(math.MaxInt/2, 7, Horizontal) }},
		{"rainbow horizontal huge height", func() (*Grid, error) { return Rainbow(1, math.MaxInt, Horizontal) }},
		{"rainbow vertical huge width", func() (*Grid, error) { return Rainbow(math.MaxInt, 1, Vertical) }},
		// 32 rows fit exactly; rounding up to 35 does not
		{"rainbow rounded past limit", func() (*Grid, error) { return Rainbow(1<<20, 32, Horizontal) }},
		{"checkerboard huge", func() (*Grid, error) { return Checkerboard(math.MaxInt, 2, RGB{}, RGB{}) }},
		{"checkerboard just past limit", func() (*Grid, error) { return Checkerboard(5793, 1, RGB{}, RGB{}) }},
		{"flag huge", func() (*Grid, error) { return NationalFlag(Norway, math.MaxInt) }},
		{"flag area past limit", func() (*Grid, error) { return NationalFlag(Greece, 100000) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.fn()
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
			if g != nil {
				t.Error("expected no grid")
			}
		})
	}
}

func TestMinFlagWidth(t *testing.T) {
	for flag, want := range map[Flag]int{Norway: 22, Greece: 27, Switzerland: 32} {
		got, ok := MinFlagWidth(flag)
		if !ok || got != want {
			t.Errorf("MinFlagWidth(%s): got %d, %v; want %d", flag, got, ok, want)
		}
	}
	if _, ok := MinFlagWidth("atlantis"); ok {
		t.Error("MinFlagWidth should not know atlantis")
	}
}
