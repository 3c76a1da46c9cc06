package board

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/ironsheep/sketchpad-mcp/internal/config"
	"github.com/ironsheep/sketchpad-mcp/internal/detection"
	"github.com/ironsheep/sketchpad-mcp/internal/history"
	"github.com/ironsheep/sketchpad-mcp/internal/imaging"
)

var (
	// ErrNoStroke indicates a stroke operation without an active stroke.
	ErrNoStroke = errors.New("no active stroke")

	// ErrRecognitionWithEraser indicates an attempt to enable recognition
	// while the eraser is selected.
	ErrRecognitionWithEraser = errors.New("shape recognition cannot be used with the eraser; select pencil or brush first")
)

// brushTrail is how many recent points the brush smudge covers.
const brushTrail = 5

// stroke is the input gesture in progress.
type stroke struct {
	points []detection.Point
	pre    imaging.Snapshot
	tool   Tool
	style  imaging.Style
}

// Board is a drawing surface with undo history and shape recognition.
type Board struct {
	mu sync.Mutex

	surface    *imaging.Surface
	history    *history.History[imaging.Snapshot]
	recognizer *Recognizer

	grid      *imaging.Grid
	gridOn    bool
	view      *image.RGBA
	viewStale bool

	recognize bool
	tool      Tool
	style     imaging.Style
	eraseBox  int
	active    *stroke

	logger *log.Logger
	debug  bool
}

// New creates a board from a validated configuration. The history starts
// with one baseline entry holding the blank surface.
func New(cfg config.Config, logger *log.Logger) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	surface, err := imaging.NewSurface(cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		return nil, err
	}
	tool, err := ParseTool(cfg.Brush.Tool)
	if err != nil {
		return nil, err
	}
	ink, err := imaging.ParseColor(cfg.Brush.Color)
	if err != nil {
		return nil, err
	}
	gridColor, err := imaging.ParseColor(cfg.Grid.Color)
	if err != nil {
		return nil, err
	}
	grid, err := imaging.NewGrid(cfg.Grid.Spacing, gridColor)
	if err != nil {
		return nil, err
	}

	b := &Board{
		surface:    surface,
		history:    history.New[imaging.Snapshot](cfg.History.Limit),
		recognizer: NewRecognizer(cfg.Thresholds(), logger),
		grid:       grid,
		gridOn:     cfg.Grid.Enabled,
		viewStale:  true,
		recognize:  cfg.Recognition.Enabled && tool.Additive(),
		tool:       tool,
		style:      imaging.Style{Color: ink, Width: cfg.Brush.Width},
		eraseBox:   cfg.Tracker.EraseBox,
		logger:     logger,
		debug:      cfg.Debug(),
	}

	baseline, err := surface.Snapshot()
	if err != nil {
		return nil, err
	}
	b.history.Reset(baseline)
	return b, nil
}

func (b *Board) debugf(format string, args ...interface{}) {
	if b.debug {
		b.logger.Printf("[board] "+format, args...)
	}
}

// BeginStroke starts a stroke at p with the current tool and style. An
// unfinished stroke is finalized first.
func (b *Board) BeginStroke(ctx context.Context, p detection.Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beginStroke(ctx, p)
}

// ExtendStroke adds p to the active stroke and renders the new ink.
func (b *Board) ExtendStroke(p detection.Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.extendStroke(p)
}

// EndStroke finishes the active stroke. Without an active stroke it is a
// no-op returning a zero Outcome.
func (b *Board) EndStroke(ctx context.Context) (Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.endStroke(ctx, true)
}

// Stroke draws a complete stroke in one call. An empty point list is a no-op.
func (b *Board) Stroke(ctx context.Context, points []detection.Point) (Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(points) == 0 {
		return Outcome{}, nil
	}
	if err := b.beginStroke(ctx, points[0]); err != nil {
		return Outcome{}, err
	}
	for _, p := range points[1:] {
		if err := b.extendStroke(p); err != nil {
			return Outcome{}, err
		}
	}
	return b.endStroke(ctx, true)
}

func (b *Board) beginStroke(ctx context.Context, p detection.Point) error {
	if b.active != nil {
		if _, err := b.endStroke(ctx, true); err != nil {
			return err
		}
	}

	pre, err := b.surface.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to capture pre-stroke snapshot: %w", err)
	}
	b.active = &stroke{
		points: []detection.Point{p},
		pre:    pre,
		tool:   b.tool,
		style:  b.style,
	}
	if b.tool == ToolEraser {
		b.surface.EraseDisc(p, b.style.Width/2)
		b.viewStale = true
	}
	b.debugf("stroke started at (%.1f,%.1f) with %s", p.X, p.Y, b.tool)
	return nil
}

func (b *Board) extendStroke(p detection.Point) error {
	s := b.active
	if s == nil {
		return ErrNoStroke
	}
	s.points = append(s.points, p)

	switch s.tool {
	case ToolEraser:
		b.surface.EraseDisc(p, s.style.Width/2)
	case ToolBrush:
		b.surface.DrawInkTail(s.points, s.style)
		b.surface.DrawSmudge(tail(s.points, brushTrail), s.style)
	default:
		b.surface.DrawInkTail(s.points, s.style)
	}
	b.viewStale = true
	return nil
}

// endStroke finalizes the active stroke. recognize=false commits the rough
// ink without classification.
func (b *Board) endStroke(ctx context.Context, recognize bool) (Outcome, error) {
	s := b.active
	if s == nil {
		return Outcome{}, nil
	}
	b.active = nil

	if s.tool.Additive() {
		b.surface.FinishInk(s.points, s.style)
	}
	b.viewStale = true

	th := b.recognizer.Thresholds()
	if recognize && b.recognize && s.tool.Additive() && len(s.points) > th.MinPoints {
		out, err := b.recognizer.FinalizeStroke(ctx, boardTarget{b}, s.points, s.pre, s.style)
		if err != nil {
			return out, fmt.Errorf("failed to commit stroke: %w", err)
		}
		b.debugf("stroke of %d points finalized as %s (applied=%v)", out.Points, out.Shape.Kind, out.Applied)
		return out, nil
	}

	snap, err := b.commit()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to commit stroke: %w", err)
	}
	b.debugf("stroke of %d points committed as drawn", len(s.points))
	return Outcome{
		Shape:      detection.Shape{Kind: detection.ShapeNone},
		Points:     len(s.points),
		SnapshotID: snap.ID,
	}, nil
}

func tail(points []detection.Point, n int) []detection.Point {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

// commit pushes the current ink layer onto the history.
func (b *Board) commit() (imaging.Snapshot, error) {
	snap, err := b.surface.Snapshot()
	if err != nil {
		return imaging.Snapshot{}, err
	}
	b.history.Push(snap)
	return snap, nil
}

// Undo steps back one history entry and restores the surface from it.
// Returns false without error when there is nothing to undo. An active
// stroke is committed first.
func (b *Board) Undo(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.endStroke(ctx, false); err != nil {
		return false, err
	}
	snap, ok := b.history.Undo()
	if !ok {
		return false, nil
	}
	if err := b.surface.Restore(ctx, snap); err != nil {
		b.history.Redo()
		return false, fmt.Errorf("failed to restore snapshot: %w", err)
	}
	b.viewStale = true
	b.debugf("undo to entry %d", b.history.Index())
	return true, nil
}

// Redo steps forward one history entry and restores the surface from it.
// Returns false without error when there is nothing to redo.
func (b *Board) Redo(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		if _, err := b.endStroke(ctx, false); err != nil {
			return false, err
		}
	}
	snap, ok := b.history.Redo()
	if !ok {
		return false, nil
	}
	if err := b.surface.Restore(ctx, snap); err != nil {
		b.history.Undo()
		return false, fmt.Errorf("failed to restore snapshot: %w", err)
	}
	b.viewStale = true
	b.debugf("redo to entry %d", b.history.Index())
	return true, nil
}

// Clear wipes the surface, drops any active stroke and resets the history
// to a single baseline entry.
func (b *Board) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.active = nil
	b.surface.Clear()
	b.viewStale = true

	snap, err := b.surface.Snapshot()
	if err != nil {
		return err
	}
	b.history.Reset(snap)
	b.debugf("board cleared")
	return nil
}

// Load replaces the surface with img, drawn at the origin without scaling,
// and commits it as a new history entry. An active stroke is committed
// first.
func (b *Board) Load(ctx context.Context, img image.Image) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.endStroke(ctx, false); err != nil {
		return err
	}
	b.surface.Replace(img)
	b.viewStale = true
	if _, err := b.commit(); err != nil {
		return fmt.Errorf("failed to commit loaded image: %w", err)
	}
	return nil
}

// boardTarget exposes the board to the Recognizer. Its methods run with the
// board mutex already held.
type boardTarget struct {
	b *Board
}

func (t boardTarget) Restore(ctx context.Context, snap imaging.Snapshot) error {
	return t.b.surface.Restore(ctx, snap)
}

func (t boardTarget) Render(shape detection.Shape, style imaging.Style) bool {
	return t.b.surface.DrawShape(shape, style)
}

func (t boardTarget) Refresh() {
	t.b.viewStale = true
}

func (t boardTarget) Commit() (imaging.Snapshot, error) {
	return t.b.commit()
}
