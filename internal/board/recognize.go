package board

import (
	"context"
	"log"

	"github.com/ironsheep/sketchpad-mcp/internal/detection"
	"github.com/ironsheep/sketchpad-mcp/internal/imaging"
)

// Target is the surface a Recognizer finalizes strokes on.
type Target interface {
	// Restore replaces the surface content with snap. On error the surface
	// must be left unchanged.
	Restore(ctx context.Context, snap imaging.Snapshot) error

	// Render draws a recognized shape and reports whether anything was
	// drawn.
	Render(shape detection.Shape, style imaging.Style) bool

	// Refresh reapplies presentation overlays such as the grid.
	Refresh()

	// Commit records the current surface as a new history entry.
	Commit() (imaging.Snapshot, error)
}

// Outcome describes how a finished stroke was committed.
type Outcome struct {
	// Shape is the classification result; ShapeNone when nothing matched or
	// recognition did not run.
	Shape detection.Shape `json:"shape"`

	// Applied is true when the rough ink was replaced by Shape.
	Applied bool `json:"applied"`

	// RestoreFailed is true when a shape matched but the pre-stroke snapshot
	// could not be decoded, so the rough ink was kept.
	RestoreFailed bool `json:"restore_failed,omitempty"`

	// Points is the raw point count of the stroke.
	Points int `json:"points"`

	// SnapshotID identifies the committed history entry.
	SnapshotID string `json:"snapshot_id,omitempty"`
}

// Recognizer finalizes finished strokes, replacing rough ink with a clean
// primitive when the stroke is recognized.
type Recognizer struct {
	classifier *detection.Classifier
	logger     *log.Logger
}

// NewRecognizer creates a recognizer. A nil logger uses log.Default().
func NewRecognizer(th detection.Thresholds, logger *log.Logger) *Recognizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Recognizer{
		classifier: detection.NewClassifier(th),
		logger:     logger,
	}
}

// Thresholds returns the recognition thresholds in use.
func (r *Recognizer) Thresholds() detection.Thresholds {
	return r.classifier.Thresholds()
}

// FinalizeStroke classifies a finished stroke and commits exactly one
// history entry for it.
//
// The rough ink is expected to be on the target already. When the stroke is
// not recognized it is committed as drawn. When it is, the target is first
// restored to pre, which removes the rough ink, then the shape is rendered
// with style, overlays are refreshed and the result is committed. Applied
// reports whether Render drew the shape.
//
// A failure to restore pre is not returned: it is logged, the rough ink is
// committed instead and the outcome reports RestoreFailed. The only error
// returned is a failed commit.
func (r *Recognizer) FinalizeStroke(ctx context.Context, t Target, raw []detection.Point, pre imaging.Snapshot, style imaging.Style) (Outcome, error) {
	out := Outcome{
		Shape:  r.classifier.Detect(raw),
		Points: len(raw),
	}

	if out.Shape.Matched() {
		if err := t.Restore(ctx, pre); err != nil {
			r.logger.Printf("Warning: keeping rough ink, pre-stroke snapshot unusable: %v", err)
			out.RestoreFailed = true
		} else {
			out.Applied = t.Render(out.Shape, style)
			t.Refresh()
		}
	}

	snap, err := t.Commit()
	if err != nil {
		return out, err
	}
	out.SnapshotID = snap.ID
	return out, nil
}
