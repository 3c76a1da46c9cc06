// Package server implements the MCP (Model Context Protocol) server for the
// sketch board.
//
// This package provides a JSON-RPC 2.0 server that exposes one drawing board
// with shape recognition, undo history and export through the MCP protocol.
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
// Board State:
//   - canvas_info: Size, tool, style, grid, recognition and history state
//
// Drawing:
//   - canvas_stroke: Draw a complete stroke
//   - canvas_hand_event: Feed one hand-tracker sample
//
// History:
//   - canvas_undo, canvas_redo: Move through the undo history
//   - canvas_clear: Erase the board and reset history
//
// Settings:
//   - canvas_set_tool, canvas_set_style: Tool, color and width
//   - canvas_set_recognition: Circle and line cleanup
//   - canvas_set_grid: Presentation grid
//
// Files:
//   - canvas_export: PNG or PDF, base64 or file
//   - canvas_load: Load an image onto the board
//
// Inspection:
//   - canvas_sample_color: Ink color at a pixel
//   - canvas_ocr: Read handwritten text
//
// Shape Analysis:
//   - shape_simplify: Douglas-Peucker simplification of a point list
//   - shape_classify: Circle/line/none classification of a point list
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC error responses with:
//   - code: -32602 for invalid arguments or unknown tools, -32000 for any
//     other tool failure, -32601 for unknown methods
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(b, logger, false)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
