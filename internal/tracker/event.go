// Package tracker consumes the hand-tracking event feed.
//
// A tracker reports the fingertip position normalized to [0,1] relative to
// the surface, together with a gesture label. The feed is a websocket whose
// text frames each carry one event, either as a JSON object or as a JSON
// string wrapping that object.
package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/sketchpad-mcp/internal/detection"
)

// Gesture is the label the tracker attaches to a position.
type Gesture string

const (
	// GestureDraw extends the current stroke.
	GestureDraw Gesture = "draw"
	// GestureErase clears a box around the position.
	GestureErase Gesture = "erase"
	// GestureNone is any other pose; it ends the current stroke.
	GestureNone Gesture = "none"
)

// ErrMalformedEvent indicates a frame that is not a tracker event.
var ErrMalformedEvent = errors.New("malformed tracker event")

// Event is one tracker sample. X and Y are nil when the hand is lost.
type Event struct {
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	Gesture Gesture  `json:"gesture"`
}

// Lost reports whether the event carries no position.
func (e Event) Lost() bool {
	return e.X == nil || e.Y == nil
}

// ToPixel converts the normalized position to surface pixels.
// The second result is false when the hand is lost.
func (e Event) ToPixel(width, height int) (detection.Point, bool) {
	if e.Lost() {
		return detection.Point{}, false
	}
	return detection.Point{
		X: *e.X * float64(width),
		Y: *e.Y * float64(height),
	}, true
}

// ParseEvent decodes one frame.
//
// Both `{"x":0.5,"y":0.5,"gesture":"draw"}` and the same object encoded as a
// JSON string are accepted. Missing or null coordinates mean the hand is
// lost.
func ParseEvent(data []byte) (Event, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		data = bytes.TrimSpace([]byte(inner))
	}
	if len(data) == 0 || data[0] != '{' {
		return Event{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedEvent)
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	for _, v := range []*float64{ev.X, ev.Y} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return Event{}, fmt.Errorf("%w: non-finite coordinate", ErrMalformedEvent)
		}
	}
	return ev, nil
}
