package detection

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

// circleStroke samples n points on a slightly wobbly circle, stopping one
// step short of closing it.
func circleStroke(cx, cy, r float64, n int, wobble float64) []Point {
	points := make([]Point, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		rr := r + wobble*math.Sin(7*angle)
		points[i] = Point{X: cx + rr*math.Cos(angle), Y: cy + rr*math.Sin(angle)}
	}
	return points
}

// lineStroke samples n points from (x1,y1) to (x2,y2) with alternating
// perpendicular jitter on interior points.
func lineStroke(x1, y1, x2, y2 float64, n int, jitter float64) []Point {
	points := make([]Point, n)
	length := math.Hypot(x2-x1, y2-y1)
	nx, ny := -(y2-y1)/length, (x2-x1)/length
	for i := range points {
		t := float64(i) / float64(n-1)
		off := 0.0
		if i > 0 && i < n-1 {
			off = jitter
			if i%2 == 0 {
				off = -jitter
			}
		}
		points[i] = Point{X: x1 + t*(x2-x1) + off*nx, Y: y1 + t*(y2-y1) + off*ny}
	}
	return points
}

// squareStroke traces a closed square starting at its top-left corner.
func squareStroke(x, y, side float64, perSide int) []Point {
	points := []Point{}
	step := side / float64(perSide)
	for i := 0; i < perSide; i++ {
		points = append(points, Point{X: x + float64(i)*step, Y: y})
	}
	for i := 0; i < perSide; i++ {
		points = append(points, Point{X: x + side, Y: y + float64(i)*step})
	}
	for i := 0; i < perSide; i++ {
		points = append(points, Point{X: x + side - float64(i)*step, Y: y + side})
	}
	for i := 0; i <= perSide; i++ {
		points = append(points, Point{X: x, Y: y + side - float64(i)*step})
	}
	return points
}

func TestDetect_Circle(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	stroke := circleStroke(100, 100, 50, 40, 2)

	if d := stroke[0].Distance(stroke[len(stroke)-1]); d >= 15 {
		t.Fatalf("test stroke closes at %.1f px, want < 15", d)
	}

	shape := c.Detect(stroke)
	if shape.Kind != ShapeCircle {
		t.Fatalf("Kind: got %v, want circle", shape.Kind)
	}
	if shape.Center.Distance(Point{X: 100, Y: 100}) > 5 {
		t.Errorf("Center: got %v, want (100,100) within 5px", shape.Center)
	}
	if math.Abs(shape.Radius-50) > 10 {
		t.Errorf("Radius: got %.2f, want 50 within 10", shape.Radius)
	}
}

func TestDetect_Line(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	stroke := lineStroke(0, 0, 200, 0, 15, 4)

	shape := c.Detect(stroke)
	if shape.Kind != ShapeLine {
		t.Fatalf("Kind: got %v, want line", shape.Kind)
	}
	if shape.Start.Distance(Point{X: 0, Y: 0}) > 1e-9 {
		t.Errorf("Start: got %v, want (0,0)", shape.Start)
	}
	if shape.End.Distance(Point{X: 200, Y: 0}) > 1e-9 {
		t.Errorf("End: got %v, want (200,0)", shape.End)
	}
}

func TestDetect_DiagonalLine(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	shape := c.Detect(lineStroke(10, 300, 250, 40, 30, 3))
	if shape.Kind != ShapeLine {
		t.Fatalf("Kind: got %v, want line", shape.Kind)
	}
}

func TestDetect_BelowGate(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		name   string
		stroke []Point
	}{
		{"line", lineStroke(0, 0, 200, 0, 5, 0)},
		{"circle", circleStroke(100, 100, 50, 5, 0)},
		{"single point", []Point{{X: 3, Y: 3}}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if shape := c.Detect(tt.stroke); shape.Kind != ShapeNone {
				t.Errorf("Kind: got %v, want none", shape.Kind)
			}
		})
	}
}

func TestDetect_SquareIsNotCircleOrLine(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	shape := c.Detect(squareStroke(50, 50, 100, 10))
	if shape.Kind != ShapeNone {
		t.Errorf("Kind: got %v, want none", shape.Kind)
	}
}

func TestDetect_ZigzagIsNone(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	var stroke []Point
	for i := 0; i < 20; i++ {
		y := 0.0
		if i%2 == 1 {
			y = 80
		}
		stroke = append(stroke, Point{X: float64(i) * 15, Y: y})
	}

	if shape := c.Detect(stroke); shape.Kind != ShapeNone {
		t.Errorf("Kind: got %v, want none", shape.Kind)
	}
}

func TestDetect_OpenArcFallsBackToNone(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	// Half circle: far from closed, far from straight.
	var stroke []Point
	for i := 0; i <= 30; i++ {
		angle := math.Pi * float64(i) / 30
		stroke = append(stroke, Point{X: 100 + 60*math.Cos(angle), Y: 100 + 60*math.Sin(angle)})
	}

	if shape := c.Detect(stroke); shape.Kind != ShapeNone {
		t.Errorf("Kind: got %v, want none", shape.Kind)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	inputs := [][]Point{
		Simplify(circleStroke(200, 150, 70, 60, 3), 5),
		Simplify(lineStroke(0, 0, 100, 100, 25, 2), 5),
		Simplify(squareStroke(0, 0, 80, 8), 5),
	}

	for i, in := range inputs {
		first := c.Classify(in)
		for run := 0; run < 5; run++ {
			if got := c.Classify(in); got != first {
				t.Fatalf("input %d run %d: got %+v, want %+v", i, run, got, first)
			}
		}
	}
}

func TestClassify_ClosedCoincidentEndpointsIsNone(t *testing.T) {
	// A there-and-back scribble is closed but not round; the coincident
	// endpoints define no line either.
	c := NewClassifier(DefaultThresholds())
	points := []Point{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 0, Y: 0}}
	if shape := c.Classify(points); shape.Kind != ShapeNone {
		t.Errorf("Kind: got %v, want none", shape.Kind)
	}
}

func TestClassify_TooFewPoints(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	if shape := c.Classify([]Point{{X: 1, Y: 1}}); shape.Kind != ShapeNone {
		t.Errorf("Kind: got %v, want none", shape.Kind)
	}
}

func TestIsClosed(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		name string
		end  Point
		want bool
	}{
		{"touching", Point{X: 0, Y: 0}, true},
		{"near", Point{X: 20, Y: 0}, true},
		{"at threshold", Point{X: 30, Y: 0}, false},
		{"far", Point{X: 200, Y: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := []Point{{X: 0, Y: 0}, {X: 50, Y: 50}, tt.end}
			if got := c.IsClosed(points); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngularMatches(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	center := Point{X: 0, Y: 0}

	full := circleStroke(0, 0, 50, 32, 0)
	if got := c.angularMatches(full, center, 50); got != 16 {
		t.Errorf("full circle: got %d matches, want 16", got)
	}

	single := []Point{{X: 50, Y: 0}}
	if got := c.angularMatches(single, center, 50); got != 3 {
		t.Errorf("one point: got %d matches, want 3", got)
	}
}

func TestBoundingBox(t *testing.T) {
	box := BoundingBox([]Point{{X: 10, Y: 40}, {X: -5, Y: 2}, {X: 30, Y: 8}})
	want := Box{MinX: -5, MinY: 2, MaxX: 30, MaxY: 40}
	if box != want {
		t.Errorf("got %+v, want %+v", box, want)
	}
	if c := box.Center(); c != (Point{X: 12.5, Y: 21}) {
		t.Errorf("Center: got %v, want (12.5,21)", c)
	}
	if empty := BoundingBox(nil); empty != (Box{}) {
		t.Errorf("empty: got %+v, want zero box", empty)
	}
}

func TestShape_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		want    []string
		notWant []string
	}{
		{
			"circle",
			Shape{Kind: ShapeCircle, Center: Point{X: 1, Y: 2}, Radius: 3},
			[]string{`"kind":"circle"`, `"center":{"x":1,"y":2}`, `"radius":3`},
			[]string{`"start"`},
		},
		{
			"line",
			Shape{Kind: ShapeLine, Start: Point{X: 0, Y: 0}, End: Point{X: 5, Y: 0}},
			[]string{`"kind":"line"`, `"end":{"x":5,"y":0}`},
			[]string{`"radius"`},
		},
		{
			"none",
			Shape{},
			[]string{`"kind":"none"`},
			[]string{`"center"`, `"start"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.shape)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			s := string(b)
			for _, w := range tt.want {
				if !strings.Contains(s, w) {
					t.Errorf("%s missing %s", s, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(s, nw) {
					t.Errorf("%s should not contain %s", s, nw)
				}
			}
		})
	}
}
