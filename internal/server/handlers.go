package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/sketchpad-mcp/internal/board"
	"github.com/ironsheep/sketchpad-mcp/internal/detection"
	"github.com/ironsheep/sketchpad-mcp/internal/export"
	"github.com/ironsheep/sketchpad-mcp/internal/imaging"
	"github.com/ironsheep/sketchpad-mcp/internal/ocr"
	"github.com/ironsheep/sketchpad-mcp/internal/tracker"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "canvas_stroke", "canvas_undo").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramError marks a tool failure caused by the caller's arguments.
type paramError struct {
	err error
}

func (e *paramError) Error() string { return e.err.Error() }
func (e *paramError) Unwrap() error { return e.err }

func invalidParams(format string, args ...interface{}) error {
	return &paramError{err: fmt.Errorf(format, args...)}
}

// decodeArgs unmarshals tool arguments. Absent arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &paramError{err: fmt.Errorf("invalid arguments: %w", err)}
	}
	return nil
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return JSON-RPC code -32602; any other tool failure
// returns -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		var pe *paramError
		if errors.As(err, &pe) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Board State
	case "canvas_info":
		return s.board.Info(), nil

	// Drawing
	case "canvas_stroke":
		return s.handleCanvasStroke(ctx, args)
	case "canvas_hand_event":
		return s.handleCanvasHandEvent(ctx, args)

	// History
	case "canvas_undo":
		return s.handleCanvasHistory(ctx, s.board.Undo)
	case "canvas_redo":
		return s.handleCanvasHistory(ctx, s.board.Redo)
	case "canvas_clear":
		return s.handleCanvasClear()

	// Settings
	case "canvas_set_tool":
		return s.handleCanvasSetTool(args)
	case "canvas_set_style":
		return s.handleCanvasSetStyle(args)
	case "canvas_set_recognition":
		return s.handleCanvasSetRecognition(args)
	case "canvas_set_grid":
		return s.handleCanvasSetGrid(args)

	// Files
	case "canvas_export":
		return s.handleCanvasExport(args)
	case "canvas_load":
		return s.handleCanvasLoad(ctx, args)

	// Inspection
	case "canvas_sample_color":
		return s.handleCanvasSampleColor(args)
	case "canvas_ocr":
		return s.handleCanvasOCR(args)

	// Shape Analysis
	case "shape_simplify":
		return s.handleShapeSimplify(args)
	case "shape_classify":
		return s.handleShapeClassify(args)

	default:
		return nil, invalidParams("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Drawing Handlers ===

type canvasStrokeArgs struct {
	Points     []detection.Point `json:"points"`
	Normalized bool              `json:"normalized"`
	Tool       string            `json:"tool"`
	Color      string            `json:"color"`
	Width      *float64          `json:"width"`
}

func (s *Server) handleCanvasStroke(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a canvasStrokeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, invalidParams("points must contain at least one point")
	}

	var tool board.Tool
	if a.Tool != "" {
		t, err := board.ParseTool(a.Tool)
		if err != nil {
			return nil, &paramError{err: err}
		}
		tool = t
	}
	st, err := parseStyle(a.Color, a.Width)
	if err != nil {
		return nil, err
	}

	// Nothing is applied until every argument has been validated.
	if a.Tool != "" {
		s.board.SetTool(tool)
	}
	if err := st.apply(s.board); err != nil {
		return nil, err
	}

	points := a.Points
	if a.Normalized {
		w, h := s.board.Size()
		points = make([]detection.Point, len(a.Points))
		for i, p := range a.Points {
			points[i] = detection.Point{X: p.X * float64(w), Y: p.Y * float64(h)}
		}
	}

	return s.board.Stroke(ctx, points)
}

func (s *Server) handleCanvasHandEvent(ctx context.Context, args json.RawMessage) (interface{}, error) {
	ev, err := tracker.ParseEvent(args)
	if err != nil {
		return nil, &paramError{err: err}
	}
	return s.board.HandleEvent(ctx, ev)
}

// === History Handlers ===

type historyResult struct {
	Changed bool       `json:"changed"`
	Board   board.Info `json:"board"`
}

func (s *Server) handleCanvasHistory(ctx context.Context, step func(context.Context) (bool, error)) (interface{}, error) {
	changed, err := step(ctx)
	if err != nil {
		return nil, err
	}
	return historyResult{Changed: changed, Board: s.board.Info()}, nil
}

func (s *Server) handleCanvasClear() (interface{}, error) {
	if err := s.board.Clear(); err != nil {
		return nil, err
	}
	return s.board.Info(), nil
}

// === Settings Handlers ===

type canvasSetToolArgs struct {
	Tool string `json:"tool"`
}

func (s *Server) handleCanvasSetTool(args json.RawMessage) (interface{}, error) {
	var a canvasSetToolArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	tool, err := board.ParseTool(a.Tool)
	if err != nil {
		return nil, &paramError{err: err}
	}
	s.board.SetTool(tool)
	return s.board.Info(), nil
}

type canvasSetStyleArgs struct {
	Color string   `json:"color"`
	Width *float64 `json:"width"`
}

func (s *Server) handleCanvasSetStyle(args json.RawMessage) (interface{}, error) {
	var a canvasSetStyleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" && a.Width == nil {
		return nil, invalidParams("at least one of color or width is required")
	}
	st, err := parseStyle(a.Color, a.Width)
	if err != nil {
		return nil, err
	}
	if err := st.apply(s.board); err != nil {
		return nil, err
	}
	return s.board.Info(), nil
}

// styleChange holds validated optional color and width arguments.
type styleChange struct {
	color *color.NRGBA
	width *float64
}

func parseStyle(hex string, width *float64) (styleChange, error) {
	var st styleChange
	if hex != "" {
		c, err := imaging.ParseColor(hex)
		if err != nil {
			return st, &paramError{err: err}
		}
		st.color = &c
	}
	if width != nil {
		if *width <= 0 {
			return st, invalidParams("width must be positive, got %g", *width)
		}
		st.width = width
	}
	return st, nil
}

func (st styleChange) apply(b *board.Board) error {
	if st.color != nil {
		b.SetColor(*st.color)
	}
	if st.width != nil {
		if err := b.SetWidth(*st.width); err != nil {
			return &paramError{err: err}
		}
	}
	return nil
}

type canvasSetRecognitionArgs struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleCanvasSetRecognition(args json.RawMessage) (interface{}, error) {
	var a canvasSetRecognitionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.board.SetRecognition(a.Enabled); err != nil {
		return nil, err
	}
	return s.board.Info(), nil
}

type canvasSetGridArgs struct {
	Enabled bool `json:"enabled"`
	Spacing int  `json:"spacing"`
}

func (s *Server) handleCanvasSetGrid(args json.RawMessage) (interface{}, error) {
	var a canvasSetGridArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.board.SetGrid(a.Enabled, a.Spacing); err != nil {
		return nil, &paramError{err: err}
	}
	return s.board.Info(), nil
}

// === File Handlers ===

type canvasExportArgs struct {
	Format      string `json:"format"`
	Path        string `json:"path"`
	IncludeGrid bool   `json:"include_grid"`
}

type exportResult struct {
	Format   export.Format `json:"format"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Path     string        `json:"path,omitempty"`
	MimeType string        `json:"mime_type,omitempty"`
	Data     string        `json:"data,omitempty"`
}

func (s *Server) handleCanvasExport(args json.RawMessage) (interface{}, error) {
	var a canvasExportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	format, err := export.ParseFormat(a.Format)
	if a.Format == "" && a.Path != "" {
		format, err = export.FormatForPath(a.Path)
	}
	if err != nil {
		return nil, &paramError{err: err}
	}

	var layers []image.Image
	if a.IncludeGrid {
		layers = append(layers, s.board.GridLayer())
	}
	page := export.Flatten(s.board.Ink(), color.White, layers...)

	result := exportResult{
		Format: format,
		Width:  page.Bounds().Dx(),
		Height: page.Bounds().Dy(),
	}

	if a.Path != "" {
		if err := export.Save(page, a.Path, format, "Sketchpad"); err != nil {
			return nil, err
		}
		result.Path = a.Path
		return result, nil
	}

	switch format {
	case export.FormatPDF:
		var buf bytes.Buffer
		if err := export.WritePDF(&buf, page, "Sketchpad"); err != nil {
			return nil, err
		}
		result.MimeType = "application/pdf"
		result.Data = base64.StdEncoding.EncodeToString(buf.Bytes())
	default:
		data, err := export.Base64PNG(page)
		if err != nil {
			return nil, err
		}
		result.MimeType = "image/png"
		result.Data = data
	}
	return result, nil
}

type canvasLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleCanvasLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a canvasLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}

	img, err := imaging.Open(a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.board.Load(ctx, img); err != nil {
		return nil, err
	}
	return s.board.Info(), nil
}

// === Inspection Handlers ===

type canvasSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleCanvasSampleColor(args json.RawMessage) (interface{}, error) {
	var a canvasSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	res, err := s.board.SampleColor(a.X, a.Y)
	if err != nil {
		return nil, &paramError{err: err}
	}
	return res, nil
}

type canvasOCRArgs struct {
	Language string `json:"language"`
	Region   *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region"`
}

func (s *Server) handleCanvasOCR(args json.RawMessage) (interface{}, error) {
	var a canvasOCRArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	ink := s.board.Ink()
	if a.Region != nil {
		return ocr.RecognizeRegion(ink, image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2), a.Language)
	}
	return ocr.Recognize(ink, a.Language)
}

// === Shape Analysis Handlers ===

type shapeSimplifyArgs struct {
	Points    []detection.Point `json:"points"`
	Tolerance *float64          `json:"tolerance"`
}

type simplifyResult struct {
	Points    []detection.Point `json:"points"`
	Count     int               `json:"count"`
	Original  int               `json:"original"`
	Tolerance float64           `json:"tolerance"`
}

func (s *Server) handleShapeSimplify(args json.RawMessage) (interface{}, error) {
	var a shapeSimplifyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	tol := s.board.Thresholds().Tolerance
	if a.Tolerance != nil {
		tol = *a.Tolerance
	}
	out := detection.Simplify(a.Points, tol)
	return simplifyResult{
		Points:    out,
		Count:     len(out),
		Original:  len(a.Points),
		Tolerance: tol,
	}, nil
}

type shapeClassifyArgs struct {
	Points []detection.Point `json:"points"`
}

type classifyResult struct {
	Shape      detection.Shape `json:"shape"`
	Points     int             `json:"points"`
	Simplified int             `json:"simplified"`
}

func (s *Server) handleShapeClassify(args json.RawMessage) (interface{}, error) {
	var a shapeClassifyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	th := s.board.Thresholds()
	c := detection.NewClassifier(th)
	return classifyResult{
		Shape:      c.Detect(a.Points),
		Points:     len(a.Points),
		Simplified: len(detection.Simplify(a.Points, th.Tolerance)),
	}, nil
}
