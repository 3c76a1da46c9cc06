package imaging

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/ironsheep/sketchpad-mcp/internal/detection"
)

// Style is the ink color and line width used for rendering.
type Style struct {
	Color color.NRGBA
	Width float64
}

// SmudgeIntensity is the opacity of the brush smudge trail.
const SmudgeIntensity = 0.3

// context returns a gg drawing context writing straight into the ink layer.
func (s *Surface) context(style Style) *gg.Context {
	dc := gg.NewContextForRGBA(s.ink)
	dc.SetColor(style.Color)
	dc.SetLineWidth(style.Width)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return dc
}

// DrawShape renders a recognized primitive as a clean outline.
// ShapeNone draws nothing and returns false.
func (s *Surface) DrawShape(shape detection.Shape, style Style) bool {
	dc := s.context(style)
	switch shape.Kind {
	case detection.ShapeCircle:
		dc.DrawCircle(shape.Center.X, shape.Center.Y, shape.Radius)
	case detection.ShapeLine:
		dc.DrawLine(shape.Start.X, shape.Start.Y, shape.End.X, shape.End.Y)
	default:
		return false
	}
	dc.Stroke()
	return true
}

// DrawInkTail renders the part of a live stroke that became drawable when
// its newest point arrived.
//
// Ink is smoothed with quadratic curves: each sampled point is a control
// point and the curve passes through the midpoints between samples. With
// fewer than three points nothing is drawn yet.
func (s *Surface) DrawInkTail(points []detection.Point, style Style) {
	n := len(points)
	if n < 3 {
		return
	}

	start := points[0]
	if n > 3 {
		start = midpoint(points[n-3], points[n-2])
	}
	ctrl := points[n-2]
	end := midpoint(points[n-2], points[n-1])

	dc := s.context(style)
	dc.MoveTo(start.X, start.Y)
	dc.QuadraticTo(ctrl.X, ctrl.Y, end.X, end.Y)
	dc.Stroke()
}

// FinishInk renders what DrawInkTail leaves open once the stroke ends: the
// last half segment, or the whole stroke when it was too short to smooth.
func (s *Surface) FinishInk(points []detection.Point, style Style) {
	dc := s.context(style)
	switch n := len(points); {
	case n == 0:
		return
	case n == 1:
		dc.DrawPoint(points[0].X, points[0].Y, style.Width/2)
		dc.Fill()
		return
	case n == 2:
		dc.DrawLine(points[0].X, points[0].Y, points[1].X, points[1].Y)
	default:
		from := midpoint(points[n-2], points[n-1])
		dc.DrawLine(from.X, from.Y, points[n-1].X, points[n-1].Y)
	}
	dc.Stroke()
}

// DrawSmudge renders the brush trail: consecutive trail points joined at
// reduced opacity, each segment wider than the one before.
func (s *Surface) DrawSmudge(trail []detection.Point, style Style) {
	if len(trail) < 2 {
		return
	}
	faded := style
	faded.Color.A = uint8(float64(style.Color.A) * SmudgeIntensity)

	for i := 0; i < len(trail)-1; i++ {
		faded.Width = style.Width * (1 + float64(i)*0.2)
		dc := s.context(faded)
		dc.DrawLine(trail[i].X, trail[i].Y, trail[i+1].X, trail[i+1].Y)
		dc.Stroke()
	}
}

func midpoint(a, b detection.Point) detection.Point {
	return detection.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
