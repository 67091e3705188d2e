package imaging

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the single failure category of the engine.
//
// Every precondition failure (nil grid, non-positive seed count, generator
// dimensions below a shape's minimum, crop rectangles outside the grid,
// colour channels outside [0,255]) and every codec failure wraps this error.
// Callers test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// invalidf formats a message and wraps ErrInvalidArgument.
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// requireGrid rejects a nil or empty grid.
func requireGrid(g *Grid) error {
	if g == nil {
		return invalidf("grid is nil")
	}
	if g.height < 1 || g.width < 1 {
		return invalidf("grid is empty (%dx%d)", g.width, g.height)
	}
	return nil
}
