package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-editor-mcp/internal/editor"
	pixel "github.com/ironsheep/pixel-editor-mcp/internal/imaging"
	"github.com/ironsheep/pixel-editor-mcp/internal/script"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_blur").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Info("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Editing tools apply one operation to the session grid and report the
// resulting dimensions; a failed tool leaves the grid unchanged.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session and files
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_info":
		return s.session.Info()
	case "image_undo":
		return s.edited("undo", s.session.Undo())
	case "image_preview":
		return s.handleImagePreview()
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_run_script":
		return s.handleImageRunScript(ctx, args)

	// Filters and colour transforms
	case "image_blur":
		return s.edited(name, s.session.Blur())
	case "image_sharpen":
		return s.edited(name, s.session.Sharpen())
	case "image_greyscale":
		return s.edited(name, s.session.Greyscale())
	case "image_sepia":
		return s.edited(name, s.session.Sepia())
	case "image_dither":
		return s.edited(name, s.session.Dither())
	case "image_mosaic":
		return s.handleImageMosaic(args)
	case "image_edge_detect":
		return s.edited(name, s.session.DetectEdges())
	case "image_equalize":
		return s.edited(name, s.session.Equalize())

	// Geometry
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_corners":
		return s.handleImageCropCorners(args)

	// Generators
	case "image_rainbow":
		return s.handleImageRainbow(args)
	case "image_checkerboard":
		return s.handleImageCheckerboard(args)
	case "image_flag":
		return s.handleImageFlag(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, treating absent arguments as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %v: %w", err, pixel.ErrInvalidArgument)
	}
	return nil
}

// EditResult describes the session after an editing tool.
type EditResult struct {
	Operation string `json:"operation"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	UndoSteps int    `json:"undo_steps"`
}

func (s *Server) edited(op string, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	res := &EditResult{Operation: op, UndoSteps: s.session.HistoryLen()}
	if g := s.session.Grid(); g != nil {
		res.Width, res.Height = g.Width(), g.Height()
	}
	return res, nil
}

// === Session and File Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.Load(a.Path); err != nil {
		return nil, err
	}
	return s.session.Info()
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.Save(a.Path); err != nil {
		return nil, err
	}
	return s.session.Info()
}

// PreviewResult carries the current grid as an inline PNG.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleImagePreview() (interface{}, error) {
	g := s.session.Grid()
	if g == nil {
		return nil, editor.ErrNoImage
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, g.Image(), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       g.Width(),
		Height:      g.Height(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

type imageSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.session.SampleColor(a.Y, a.X)
}

type imageRunScriptArgs struct {
	Script string `json:"script"`
}

// ScriptResult reports how far a script got.
type ScriptResult struct {
	Applied int `json:"applied"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

func (s *Server) handleImageRunScript(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRunScriptArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	n, err := script.Run(ctx, strings.NewReader(a.Script), s.session)
	if err != nil {
		var lineErr *script.LineError
		if errors.As(err, &lineErr) {
			return nil, fmt.Errorf("script stopped after %d commands: %w", n, err)
		}
		return nil, err
	}

	res := &ScriptResult{Applied: n}
	if g := s.session.Grid(); g != nil {
		res.Width, res.Height = g.Width(), g.Height()
	}
	return res, nil
}

// === Transformation Handlers ===

type imageMosaicArgs struct {
	Seeds int `json:"seeds"`
}

func (s *Server) handleImageMosaic(args json.RawMessage) (interface{}, error) {
	var a imageMosaicArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.edited("image_mosaic", s.session.Mosaic(a.Seeds))
}

type imageCropArgs struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.edited("image_crop", s.session.Crop(a.X, a.Y, a.Width, a.Height))
}

type imageCropCornersArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (s *Server) handleImageCropCorners(args json.RawMessage) (interface{}, error) {
	var a imageCropCornersArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.edited("image_crop_corners", s.session.CropCorners(a.X1, a.Y1, a.X2, a.Y2))
}

// === Generator Handlers ===

type imageRainbowArgs struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Orientation string `json:"orientation"`
}

func (s *Server) handleImageRainbow(args json.RawMessage) (interface{}, error) {
	var a imageRainbowArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var o pixel.Orientation
	switch strings.ToLower(a.Orientation) {
	case "", "horizontal":
		o = pixel.Horizontal
	case "vertical":
		o = pixel.Vertical
	default:
		return nil, fmt.Errorf("orientation must be horizontal or vertical, got %q: %w", a.Orientation, pixel.ErrInvalidArgument)
	}
	return s.edited("image_rainbow", s.session.Rainbow(a.Width, a.Height, o))
}

// colorArg accepts either "#rrggbb" or [r, g, b].
type colorArg pixel.RGB

func (c *colorArg) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		rgb, err := pixel.ParseColor(hex)
		if err != nil {
			return err
		}
		*c = colorArg(rgb)
		return nil
	}

	var channels []int
	if err := json.Unmarshal(data, &channels); err != nil {
		return fmt.Errorf("colour must be \"#rrggbb\" or [r, g, b]")
	}
	if len(channels) != 3 {
		return fmt.Errorf("colour needs 3 channels, got %d", len(channels))
	}
	*c = colorArg{channels[0], channels[1], channels[2]}
	return nil
}

type imageCheckerboardArgs struct {
	Height  int      `json:"height"`
	Squares int      `json:"squares"`
	First   colorArg `json:"first"`
	Second  colorArg `json:"second"`
}

func (s *Server) handleImageCheckerboard(args json.RawMessage) (interface{}, error) {
	var a imageCheckerboardArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.edited("image_checkerboard",
		s.session.Checkerboard(a.Height, a.Squares, pixel.RGB(a.First), pixel.RGB(a.Second)))
}

type imageFlagArgs struct {
	Country string `json:"country"`
	Width   int    `json:"width"`
}

func (s *Server) handleImageFlag(args json.RawMessage) (interface{}, error) {
	var a imageFlagArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.edited("image_flag", s.session.Flag(pixel.Flag(strings.ToLower(a.Country)), a.Width))
}
