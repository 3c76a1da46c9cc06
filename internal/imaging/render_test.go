package imaging

import (
	"image/color"
	"testing"

	"github.com/ironsheep/sketchpad-mcp/internal/detection"
)

var blackInk = Style{Color: color.NRGBA{0, 0, 0, 255}, Width: 4}

func TestDrawShape_Circle(t *testing.T) {
	s, _ := NewSurface(200, 200)

	ok := s.DrawShape(detection.Shape{
		Kind:   detection.ShapeCircle,
		Center: detection.Point{X: 100, Y: 100},
		Radius: 50,
	}, blackInk)
	if !ok {
		t.Fatal("DrawShape should draw a circle")
	}

	// On the outline.
	for _, p := range [][2]int{{150, 100}, {50, 100}, {100, 150}, {100, 50}} {
		if s.Ink().RGBAAt(p[0], p[1]).A == 0 {
			t.Errorf("(%d,%d) on the circle should carry ink", p[0], p[1])
		}
	}
	// Outline only, no fill.
	if s.Ink().RGBAAt(100, 100).A != 0 {
		t.Error("circle center should stay empty")
	}
}

func TestDrawShape_Line(t *testing.T) {
	s, _ := NewSurface(200, 100)

	ok := s.DrawShape(detection.Shape{
		Kind:  detection.ShapeLine,
		Start: detection.Point{X: 10, Y: 50},
		End:   detection.Point{X: 190, Y: 50},
	}, blackInk)
	if !ok {
		t.Fatal("DrawShape should draw a line")
	}

	if s.Ink().RGBAAt(100, 50).A < 200 {
		t.Error("line midpoint should be inked")
	}
	if s.Ink().RGBAAt(100, 80).A != 0 {
		t.Error("pixel far from the line should stay empty")
	}
}

func TestDrawShape_None(t *testing.T) {
	s, _ := NewSurface(50, 50)
	if s.DrawShape(detection.Shape{Kind: detection.ShapeNone}, blackInk) {
		t.Error("DrawShape(ShapeNone) should report false")
	}
	if !s.IsBlank() {
		t.Error("DrawShape(ShapeNone) should not draw")
	}
}

func TestDrawInkTail_NeedsThreePoints(t *testing.T) {
	s, _ := NewSurface(50, 50)
	s.DrawInkTail([]detection.Point{{X: 10, Y: 10}, {X: 40, Y: 10}}, blackInk)
	if !s.IsBlank() {
		t.Error("two points should not draw a tail yet")
	}

	s.DrawInkTail([]detection.Point{{X: 10, Y: 10}, {X: 25, Y: 10}, {X: 40, Y: 10}}, blackInk)
	if s.Ink().RGBAAt(20, 10).A == 0 {
		t.Error("three collinear points should ink the first half")
	}
}

func TestFinishInk(t *testing.T) {
	tests := []struct {
		name   string
		points []detection.Point
		inked  [2]int
	}{
		{"single point", []detection.Point{{X: 20, Y: 20}}, [2]int{20, 20}},
		{"two points", []detection.Point{{X: 5, Y: 20}, {X: 35, Y: 20}}, [2]int{20, 20}},
		{"last half segment", []detection.Point{{X: 5, Y: 5}, {X: 5, Y: 20}, {X: 35, Y: 20}}, [2]int{30, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := NewSurface(40, 40)
			s.FinishInk(tt.points, blackInk)
			if s.Ink().RGBAAt(tt.inked[0], tt.inked[1]).A == 0 {
				t.Errorf("(%d,%d) should carry ink", tt.inked[0], tt.inked[1])
			}
		})
	}

	s, _ := NewSurface(10, 10)
	s.FinishInk(nil, blackInk)
	if !s.IsBlank() {
		t.Error("empty stroke should draw nothing")
	}
}

func TestDrawSmudge(t *testing.T) {
	s, _ := NewSurface(60, 20)
	s.DrawSmudge([]detection.Point{{X: 10, Y: 10}, {X: 50, Y: 10}}, blackInk)

	a := float64(s.Ink().RGBAAt(30, 10).A)
	want := 255 * SmudgeIntensity
	if a < want-10 || a > want+10 {
		t.Errorf("smudge alpha: got %.0f, want about %.0f", a, want)
	}

	blank, _ := NewSurface(10, 10)
	blank.DrawSmudge([]detection.Point{{X: 5, Y: 5}}, blackInk)
	if !blank.IsBlank() {
		t.Error("single-point trail should not smudge")
	}
}
