package board

import (
	"context"

	"github.com/ironsheep/sketchpad-mcp/internal/tracker"
)

// HandAction names what a tracker event did to the board.
type HandAction string

const (
	HandLost  HandAction = "lost"
	HandDraw  HandAction = "draw"
	HandErase HandAction = "erase"
	HandIdle  HandAction = "idle"
)

// HandResult reports the effect of one tracker event.
type HandResult struct {
	Action HandAction `json:"action"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`

	// Outcome is set when the event finished a stroke.
	Outcome *Outcome `json:"outcome,omitempty"`
}

// HandleEvent applies one hand-tracker event.
//
//   - Lost hand: the active stroke, if any, is finished.
//   - "draw": starts a stroke at the pixel position or extends the active one.
//   - "erase": commits the active stroke as drawn, then clears a square of
//     the configured erase box size around the position. The erasure itself
//     is not committed; it becomes part of the next history entry.
//   - Any other gesture finishes the active stroke.
func (b *Board) HandleEvent(ctx context.Context, ev tracker.Event) (HandResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := ev.ToPixel(b.surface.Width(), b.surface.Height())
	if !ok {
		out, err := b.finishForHand(ctx, true)
		return HandResult{Action: HandLost, Outcome: out}, err
	}
	res := HandResult{X: p.X, Y: p.Y}

	switch ev.Gesture {
	case tracker.GestureDraw:
		res.Action = HandDraw
		if b.active == nil {
			return res, b.beginStroke(ctx, p)
		}
		return res, b.extendStroke(p)

	case tracker.GestureErase:
		res.Action = HandErase
		out, err := b.finishForHand(ctx, false)
		res.Outcome = out
		if err != nil {
			return res, err
		}
		b.surface.EraseBox(p, b.eraseBox)
		b.viewStale = true
		return res, nil

	default:
		res.Action = HandIdle
		out, err := b.finishForHand(ctx, true)
		res.Outcome = out
		return res, err
	}
}

// finishForHand ends the active stroke, returning nil when there was none.
func (b *Board) finishForHand(ctx context.Context, recognize bool) (*Outcome, error) {
	if b.active == nil {
		return nil, nil
	}
	out, err := b.endStroke(ctx, recognize)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
