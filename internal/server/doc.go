// Package server implements the MCP (Model Context Protocol) server for the
// pixel editor.
//
// This package provides a JSON-RPC 2.0 server that exposes one editing
// session through the MCP protocol. A client loads or generates an image,
// applies filters and transforms one tool call at a time, and saves the
// result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session and files:
//   - image_load, image_save: Read or write the current image
//   - image_info: Dimensions, path, format and file size
//   - image_undo: Step back one edit
//   - image_preview: Current image as base64 PNG
//   - image_sample_color: Pixel value as RGB, hex and HSL
//   - image_run_script: Apply a batch script
//
// Filters and colour transforms:
//   - image_blur, image_sharpen
//   - image_greyscale, image_sepia
//   - image_dither, image_mosaic
//   - image_edge_detect, image_equalize
//
// Geometry and generators:
//   - image_crop, image_crop_corners
//   - image_rainbow, image_checkerboard, image_flag
//
// # State
//
// All tools share one editor.Session, so requests are handled strictly in
// order. Loaded files are cached by path for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// A failed tool never changes the current image.
//
// # Usage
//
//	srv := server.New(server.Options{Logger: logger})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
