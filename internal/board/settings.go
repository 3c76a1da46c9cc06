package board

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/sketchpad-mcp/internal/detection"
	"github.com/ironsheep/sketchpad-mcp/internal/imaging"
)

// Info is a summary of the board state.
type Info struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Tool         string  `json:"tool"`
	Color        string  `json:"color"`
	BrushWidth   float64 `json:"brush_width"`
	Recognition  bool    `json:"recognition"`
	Grid         bool    `json:"grid"`
	GridSpacing  int     `json:"grid_spacing"`
	Drawing      bool    `json:"drawing"`
	HistoryLen   int     `json:"history_length"`
	HistoryIndex int     `json:"history_index"`
	CanUndo      bool    `json:"can_undo"`
	CanRedo      bool    `json:"can_redo"`
	Blank        bool    `json:"blank"`
}

// Info returns the current board state.
func (b *Board) Info() Info {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Info{
		Width:        b.surface.Width(),
		Height:       b.surface.Height(),
		Tool:         b.tool.String(),
		Color:        imaging.HexColor(b.style.Color),
		BrushWidth:   b.style.Width,
		Recognition:  b.recognize,
		Grid:         b.gridOn,
		GridSpacing:  b.grid.Spacing(),
		Drawing:      b.active != nil,
		HistoryLen:   b.history.Len(),
		HistoryIndex: b.history.Index(),
		CanUndo:      b.history.CanUndo(),
		CanRedo:      b.history.CanRedo(),
		Blank:        b.surface.IsBlank(),
	}
}

// Size returns the surface dimensions in pixels.
func (b *Board) Size() (width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Width(), b.surface.Height()
}

// Thresholds returns the recognition thresholds in use.
func (b *Board) Thresholds() detection.Thresholds {
	return b.recognizer.Thresholds()
}

// SetTool selects the tool for subsequent strokes. Selecting the eraser
// turns shape recognition off.
func (b *Board) SetTool(t Tool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tool = t
	if t == ToolEraser && b.recognize {
		b.recognize = false
		b.debugf("recognition disabled by eraser")
	}
}

// SetColor sets the ink color for subsequent strokes. Choosing a color while
// the eraser is selected switches back to the pencil.
func (b *Board) SetColor(c color.NRGBA) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.style.Color = c
	if b.tool == ToolEraser {
		b.tool = ToolPencil
	}
}

// SetWidth sets the line width for subsequent strokes. For the eraser it is
// the erased disc diameter.
func (b *Board) SetWidth(w float64) error {
	if w <= 0 {
		return fmt.Errorf("width must be positive, got %g", w)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.style.Width = w
	return nil
}

// SetRecognition turns shape recognition on or off. It cannot be turned on
// while the eraser is selected.
func (b *Board) SetRecognition(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if on && b.tool == ToolEraser {
		return ErrRecognitionWithEraser
	}
	b.recognize = on
	return nil
}

// SetGrid shows or hides the grid. A positive spacing also changes the grid
// line distance; zero keeps the current spacing.
func (b *Board) SetGrid(on bool, spacing int) error {
	if spacing < 0 {
		return fmt.Errorf("grid spacing must not be negative, got %d", spacing)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if spacing > 0 && spacing != b.grid.Spacing() {
		g, err := imaging.NewGrid(spacing, b.grid.Color())
		if err != nil {
			return err
		}
		b.grid = g
	}
	b.gridOn = on
	b.viewStale = true
	return nil
}

// View returns what the user sees: the ink layer with the grid composed on
// top when it is enabled. The returned image is a copy.
func (b *Board) View() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.viewStale || b.view == nil {
		if b.gridOn {
			b.view = b.grid.Apply(b.surface.Ink())
		} else {
			b.view = b.surface.Clone()
		}
		b.viewStale = false
	}

	out := image.NewRGBA(b.view.Bounds())
	copy(out.Pix, b.view.Pix)
	return out
}

// Ink returns a copy of the ink layer without any presentation overlay.
func (b *Board) Ink() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Clone()
}

// GridLayer returns the grid lines alone at surface size, regardless of
// whether the grid is shown.
func (b *Board) GridLayer() *image.NRGBA {
	b.mu.Lock()
	defer b.mu.Unlock()

	layer := b.grid.Layer(b.surface.Width(), b.surface.Height())
	out := image.NewNRGBA(layer.Bounds())
	copy(out.Pix, layer.Pix)
	return out
}

// SampleColor reads the ink layer at (x, y).
func (b *Board) SampleColor(x, y int) (*imaging.ColorResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return imaging.SampleColor(b.surface.Ink(), x, y)
}
