package server

import (
	"fmt"

	"github.com/ironsheep/pixel-editor-mcp/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func intProp(description string, minimum int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     minimum,
	}
}

func colorProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description + ` as "#rrggbb" or [r, g, b] with channels 0-255`,
		"oneOf": []interface{}{
			map[string]interface{}{"type": "string", "pattern": "^#([0-9a-fA-F]{3}){1,2}$"},
			map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
				"minItems": 3,
				"maxItems": 3,
			},
		},
	}
}

func pathProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description + " (.jpg, .jpeg, .png, .gif or .bmp)",
	}
}

// noArgs is the schema of tools that act on the current image only.
func noArgs() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	flagNames := make([]string, 0, len(imaging.Flags()))
	flagHelp := ""
	for i, f := range imaging.Flags() {
		flagNames = append(flagNames, string(f))
		w, _ := imaging.MinFlagWidth(f)
		if i > 0 {
			flagHelp += ", "
		}
		flagHelp += fmt.Sprintf("%s >= %d", f, w)
	}

	return []Tool{
		// Session and files
		{
			Name:        "image_load",
			Description: "Load an image file as the current image. Returns its dimensions and format.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp("Absolute path to the image file"),
			}, "path"),
		},
		{
			Name:        "image_save",
			Description: "Save the current image. The format follows the file extension.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp("Destination path"),
			}, "path"),
		},
		{
			Name:        "image_info",
			Description: "Report the current image's dimensions and, if it came from a file, its path, format and size.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_undo",
			Description: "Restore the image as it was before the last successful editing tool.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_preview",
			Description: "Return the current image as a base64-encoded PNG.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the colour of the pixel at (x, y) as RGB, hex and HSL.",
			InputSchema: objectSchema(map[string]interface{}{
				"x": intProp("Column, 0-based", 0),
				"y": intProp("Row, 0-based", 0),
			}, "x", "y"),
		},
		{
			Name: "image_run_script",
			Description: "Run a batch script against the current image, one command per line: " +
				"load, save, blur, sharpen, greyscale, sepia, dither, mosaic <seeds>, " +
				"rainbowH <w> <h>, rainbowV <w> <h>, checkboard <h> <n> <r g b> <r g b>, " +
				"norway <w>, greece <w>, swizerland <w>, edgeDetection, greyscaleEnhancement, " +
				"imagecropping <x> <y> <w> <h>, undo. The whole script is checked before any line runs.",
			InputSchema: objectSchema(map[string]interface{}{
				"script": map[string]interface{}{
					"type":        "string",
					"description": "Script text; blank lines and lines starting with # are ignored",
				},
			}, "script"),
		},

		// Filters and colour transforms
		{
			Name:        "image_blur",
			Description: "Blur with a 3x3 weighted kernel. Border pixels are kept.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_sharpen",
			Description: "Sharpen with a 5x5 kernel. Border pixels are kept.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_greyscale",
			Description: "Convert to greyscale using Rec. 709 luma weights.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_sepia",
			Description: "Apply a sepia tone.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_dither",
			Description: "Reduce to black and white with Floyd-Steinberg error diffusion.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_mosaic",
			Description: "Recolour into Voronoi cells around randomly chosen seed pixels.",
			InputSchema: objectSchema(map[string]interface{}{
				"seeds": intProp("Number of seed pixels; capped at the pixel count", 1),
			}, "seeds"),
		},
		{
			Name:        "image_edge_detect",
			Description: "Replace the image with its Sobel gradient magnitude, normalised per channel and converted to greyscale.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_equalize",
			Description: "Greyscale histogram equalisation to spread contrast.",
			InputSchema: noArgs(),
		},

		// Geometry
		{
			Name:        "image_crop",
			Description: "Crop to a rectangle that must lie fully inside the image.",
			InputSchema: objectSchema(map[string]interface{}{
				"x":      intProp("Left edge, 0-based", 0),
				"y":      intProp("Top edge, 0-based", 0),
				"width":  intProp("Width in pixels", 1),
				"height": intProp("Height in pixels", 1),
			}, "x", "y", "width", "height"),
		},
		{
			Name:        "image_crop_corners",
			Description: "Crop to the rectangle spanned by two corners in any order. Corners outside the image are clamped to its edges.",
			InputSchema: objectSchema(map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer", "description": "First corner X"},
				"y1": map[string]interface{}{"type": "integer", "description": "First corner Y"},
				"x2": map[string]interface{}{"type": "integer", "description": "Second corner X"},
				"y2": map[string]interface{}{"type": "integer", "description": "Second corner Y"},
			}, "x1", "y1", "x2", "y2"),
		},

		// Generators
		{
			Name:        "image_rainbow",
			Description: "Replace the image with 7 rainbow stripes. Horizontal needs height >= 7, vertical needs width >= 7; the striped side is rounded to a multiple of 7.",
			InputSchema: objectSchema(map[string]interface{}{
				"width":  intProp("Requested width", 1),
				"height": intProp("Requested height", 1),
				"orientation": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"horizontal", "vertical"},
					"description": "Stripe direction. Default horizontal",
					"default":     "horizontal",
				},
			}, "width", "height"),
		},
		{
			Name:        "image_checkerboard",
			Description: "Replace the image with a square two-colour checkerboard.",
			InputSchema: objectSchema(map[string]interface{}{
				"height":  intProp("Requested board side; rounded to a multiple of squares", 1),
				"squares": intProp("Squares per side", 1),
				"first":   colorProp("Top-left square colour"),
				"second":  colorProp("Alternate square colour"),
			}, "height", "squares", "first", "second"),
		},
		{
			Name:        "image_flag",
			Description: "Replace the image with a national flag. Minimum widths: " + flagHelp + ".",
			InputSchema: objectSchema(map[string]interface{}{
				"country": map[string]interface{}{
					"type": "string",
					"enum": flagNames,
				},
				"width": intProp("Requested width; rounded to whole flag units", 1),
			}, "country", "width"),
		},
	}
}
