package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pointsSchema describes an ordered list of {x, y} points.
func pointsSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x": map[string]interface{}{"type": "number"},
				"y": map[string]interface{}{"type": "number"},
			},
			"required": []string{"x", "y"},
		},
	}
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Board State
		{
			Name:        "canvas_info",
			Description: "Get the board size, current tool, color, width, grid and recognition settings, and undo/redo availability.",
			InputSchema: emptySchema(),
		},

		// Drawing
		{
			Name:        "canvas_stroke",
			Description: "Draw one complete stroke. With recognition enabled, strokes of more than 10 points that look like a circle or a straight line are replaced by a clean shape. Each stroke adds exactly one undo step.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointsSchema("Stroke points in drawing order, in pixels (or 0-1 when normalized is true)"),
					"normalized": map[string]interface{}{
						"type":        "boolean",
						"description": "Treat coordinates as fractions of the board width and height. Default false",
						"default":     false,
					},
					"tool": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"pencil", "brush", "eraser"},
						"description": "Optional tool to select before drawing",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Optional ink color as #RRGGBB or #RRGGBBAA",
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Optional line width in pixels",
					},
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "canvas_hand_event",
			Description: "Feed one hand-tracker sample. 'draw' starts or extends a stroke, 'erase' clears a box around the hand, any other gesture or null coordinates end the stroke.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        []string{"number", "null"},
						"description": "Horizontal position, 0-1 across the board; null when the hand is lost",
					},
					"y": map[string]interface{}{
						"type":        []string{"number", "null"},
						"description": "Vertical position, 0-1 down the board; null when the hand is lost",
					},
					"gesture": map[string]interface{}{
						"type":        "string",
						"description": "Gesture label: draw, erase, or anything else",
					},
				},
				"required": []string{"gesture"},
			},
		},

		// History
		{
			Name:        "canvas_undo",
			Description: "Undo the last stroke, load or clear step. No-op when there is nothing to undo.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "canvas_redo",
			Description: "Redo the last undone step. No-op when there is nothing to redo.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "canvas_clear",
			Description: "Erase the whole board and reset undo history.",
			InputSchema: emptySchema(),
		},

		// Settings
		{
			Name:        "canvas_set_tool",
			Description: "Select pencil, brush or eraser. Selecting the eraser turns shape recognition off.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tool": map[string]interface{}{
						"type": "string",
						"enum": []string{"pencil", "brush", "eraser"},
					},
				},
				"required": []string{"tool"},
			},
		},
		{
			Name:        "canvas_set_style",
			Description: "Set ink color and/or line width. Choosing a color while the eraser is active switches back to the pencil.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Ink color as #RGB, #RRGGBB or #RRGGBBAA",
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Line width in pixels",
					},
				},
			},
		},
		{
			Name:        "canvas_set_recognition",
			Description: "Turn shape recognition (circle and line cleanup) on or off. Fails while the eraser is selected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"enabled": map[string]interface{}{"type": "boolean"},
				},
				"required": []string{"enabled"},
			},
		},
		{
			Name:        "canvas_set_grid",
			Description: "Show or hide the background grid. The grid is never part of the drawing or its undo history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"enabled": map[string]interface{}{"type": "boolean"},
					"spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Optional distance between grid lines in pixels",
					},
				},
				"required": []string{"enabled"},
			},
		},

		// Files
		{
			Name:        "canvas_export",
			Description: "Export the board on a white background as PNG or PDF. Returns base64 data, or writes to path when given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "pdf"},
						"description": "Output format. Default png, or inferred from path",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute file path to write",
					},
					"include_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the grid into the export. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "canvas_load",
			Description: "Load a PNG or JPEG onto the board at the top-left corner, replacing the current drawing. Undoable.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Inspection
		{
			Name:        "canvas_sample_color",
			Description: "Get the ink color at a board pixel in hex, RGBA and HSL. Undrawn pixels are fully transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{"type": "integer"},
					"y": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "canvas_ocr",
			Description: "Read handwritten text on the board with Tesseract OCR. Returns the full text and word bounding boxes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default eng",
						"default":     "eng",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional region to read",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
			},
		},

		// Shape Analysis
		{
			Name:        "shape_simplify",
			Description: "Simplify a point list with the Douglas-Peucker algorithm without drawing anything.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointsSchema("Points in drawing order"),
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum distance in pixels a dropped point may lie from the result. Default is the board's recognition tolerance",
					},
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "shape_classify",
			Description: "Classify a point list as circle, line or none using the board's recognition thresholds, without drawing anything.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointsSchema("Raw stroke points in drawing order"),
				},
				"required": []string{"points"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
