// Package imaging is the pixel-transformation engine of the editor.
//
// It owns the Grid data model (a height×width grid of integer RGB triples)
// and implements every operation on it: kernel correlation (blur, sharpen),
// 3x3 colour matrices (greyscale, sepia), error-diffusion dithering, seeded
// mosaic clustering, Sobel edge detection with per-channel range
// normalisation, histogram equalisation, the rainbow/checkerboard/flag
// generators, cropping, and decoding/encoding files into grids.
//
// # Coordinate System
//
// Grids are addressed as (row, col) with (0,0) at the top-left corner. Crop
// takes the conventional (x, y, width, height) where x is a column and y a
// row.
//
// # Ownership
//
// In-place operations (Blur, Sharpen, Greyscale, Sepia, Transform, Dither,
// Mosaic, DetectEdges, Equalize) mutate the grid they are given and return
// only an error. Crop and the generators return a brand-new grid. The
// package keeps no reference to a grid after a call returns.
//
// # Thread Safety
//
// Operations are synchronous and single-threaded. A Grid must not be passed
// to two operations concurrently. GridCache is safe for concurrent use.
//
// # Error Handling
//
// Every failure wraps ErrInvalidArgument. Preconditions are checked before
// any pixel is written, so a failed call leaves its grid untouched. Requests
// for a grid larger than MaxPixels are rejected the same way.
//
// # Value Range
//
// Every grid returned by this package satisfies 0 <= channel <= 255. Values
// outside that range exist only inside DetectEdges (gradient fields) and
// transiently inside Dither.
package imaging
