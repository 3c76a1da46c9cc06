package detection

import (
	"encoding/json"
	"math"
)

// ShapeKind identifies the primitive a stroke was recognized as.
type ShapeKind int

const (
	// ShapeNone indicates no primitive fits; the rough ink is kept.
	ShapeNone ShapeKind = iota

	// ShapeCircle indicates a closed, roughly round stroke.
	ShapeCircle

	// ShapeLine indicates a roughly straight stroke.
	ShapeLine
)

// String returns the lowercase name used in tool results.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ShapeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Shape is the classification result for one finished stroke.
// The Kind field indicates which parameters are meaningful:
//   - ShapeCircle: Center and Radius
//   - ShapeLine: Start and End
//   - ShapeNone: nothing
type Shape struct {
	Kind   ShapeKind
	Center Point
	Radius float64
	Start  Point
	End    Point
}

// Matched reports whether a primitive was recognized.
func (s Shape) Matched() bool {
	return s.Kind != ShapeNone
}

// MarshalJSON emits only the fields that belong to the shape's kind.
func (s Shape) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ShapeCircle:
		return json.Marshal(struct {
			Kind   ShapeKind `json:"kind"`
			Center Point     `json:"center"`
			Radius float64   `json:"radius"`
		}{s.Kind, s.Center, s.Radius})
	case ShapeLine:
		return json.Marshal(struct {
			Kind  ShapeKind `json:"kind"`
			Start Point     `json:"start"`
			End   Point     `json:"end"`
		}{s.Kind, s.Start, s.End})
	default:
		return json.Marshal(struct {
			Kind ShapeKind `json:"kind"`
		}{s.Kind})
	}
}

// Thresholds holds the tunable recognition constants. All distances are in
// surface pixels.
type Thresholds struct {
	// Tolerance is the Douglas-Peucker simplification tolerance.
	Tolerance float64 `json:"tolerance"`

	// ClosureDistance is the start-to-end distance below which a stroke is
	// treated as closed and tested for a circle.
	ClosureDistance float64 `json:"closure_distance"`

	// CircleVariance is the ceiling (squared pixels) on the variance of the
	// point distances to the bounding-box center.
	CircleVariance float64 `json:"circle_variance"`

	// CircleSamples is the number of evenly spaced angles checked for
	// angular coverage.
	CircleSamples int `json:"circle_samples"`

	// CircleMinMatches is how many sampled angles need a nearby point.
	CircleMinMatches int `json:"circle_min_matches"`

	// CircleMatchDistance is how close a point must be to a sampled angle's
	// position on the fitted circle to count as a match.
	CircleMatchDistance float64 `json:"circle_match_distance"`

	// LineDeviation is the ceiling on the perpendicular distance of any
	// simplified point from the candidate line.
	LineDeviation float64 `json:"line_deviation"`

	// MinPoints is the smallest raw stroke length that is classified at all.
	MinPoints int `json:"min_points"`
}

// DefaultThresholds returns the empirically tuned recognition constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Tolerance:           5,
		ClosureDistance:     30,
		CircleVariance:      500,
		CircleSamples:       16,
		CircleMinMatches:    6,
		CircleMatchDistance: 20,
		LineDeviation:       20,
		MinPoints:           10,
	}
}

// Box is an axis-aligned bounding box over real-valued points.
type Box struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Center returns the midpoint of the box.
func (b Box) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// BoundingBox computes the bounding box of points. An empty slice yields the
// zero Box.
func BoundingBox(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Classifier turns finished strokes into shapes using fixed thresholds.
// A Classifier holds no mutable state and is safe for concurrent use.
type Classifier struct {
	th Thresholds
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(th Thresholds) *Classifier {
	return &Classifier{th: th}
}

// Thresholds returns the thresholds the classifier was built with.
func (c *Classifier) Thresholds() Thresholds {
	return c.th
}

// Detect gates, simplifies and classifies a raw stroke.
//
// Strokes shorter than MinPoints always yield ShapeNone regardless of their
// geometry. Otherwise the stroke is simplified with Tolerance and handed to
// Classify.
func (c *Classifier) Detect(raw []Point) Shape {
	if len(raw) < c.th.MinPoints {
		return Shape{Kind: ShapeNone}
	}
	return c.Classify(Simplify(raw, c.th.Tolerance))
}

// Classify returns the best-fit primitive for a simplified polyline.
//
// # Algorithm
//
//  1. Bounding box of the simplified points; its midpoint is the center
//  2. Closure: first and last point closer than ClosureDistance
//  3. Circle fit, closed strokes only (variance of center distances, then
//     angular coverage)
//  4. Line fit through the first and last point, attempted whenever the
//     circle test is skipped or fails
//  5. ShapeNone when neither fits
func (c *Classifier) Classify(points []Point) Shape {
	if len(points) < 2 {
		return Shape{Kind: ShapeNone}
	}

	center := BoundingBox(points).Center()

	if c.IsClosed(points) {
		if shape, ok := c.fitCircle(points, center); ok {
			return shape
		}
	}

	if shape, ok := c.fitLine(points); ok {
		return shape
	}

	return Shape{Kind: ShapeNone}
}

// IsClosed reports whether the polyline ends within ClosureDistance of where
// it started.
func (c *Classifier) IsClosed(points []Point) bool {
	if len(points) == 0 {
		return false
	}
	return points[0].Distance(points[len(points)-1]) < c.th.ClosureDistance
}

// fitCircle tests the points against a circle around center.
//
// The radius is the mean distance to center. The fit is rejected when the
// variance of those distances exceeds CircleVariance or when too few sampled
// angles of the fitted circle have a point nearby.
func (c *Classifier) fitCircle(points []Point, center Point) (Shape, bool) {
	distances := make([]float64, len(points))
	var sum float64
	for i, p := range points {
		distances[i] = p.Distance(center)
		sum += distances[i]
	}
	avg := sum / float64(len(points))

	var variance float64
	for _, d := range distances {
		variance += (d - avg) * (d - avg)
	}
	variance /= float64(len(points))

	if variance > c.th.CircleVariance {
		return Shape{}, false
	}
	if c.angularMatches(points, center, avg) < c.th.CircleMinMatches {
		return Shape{}, false
	}

	return Shape{Kind: ShapeCircle, Center: center, Radius: avg}, true
}

// angularMatches counts the sampled angles around the circle (center, radius)
// that have at least one point within CircleMatchDistance of the expected
// position.
func (c *Classifier) angularMatches(points []Point, center Point, radius float64) int {
	if c.th.CircleSamples <= 0 {
		return 0
	}
	step := 2 * math.Pi / float64(c.th.CircleSamples)

	matched := 0
	for i := 0; i < c.th.CircleSamples; i++ {
		angle := float64(i) * step
		expected := Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		for _, p := range points {
			if p.Distance(expected) < c.th.CircleMatchDistance {
				matched++
				break
			}
		}
	}
	return matched
}

// fitLine tests the points against the infinite line through the first and
// last point, written as a*x + b*y + c = 0. Coincident endpoints define no
// line and are rejected.
func (c *Classifier) fitLine(points []Point) (Shape, bool) {
	start := points[0]
	end := points[len(points)-1]

	a := end.Y - start.Y
	b := start.X - end.X
	k := end.X*start.Y - start.X*end.Y

	norm := math.Hypot(a, b)
	if norm == 0 {
		return Shape{}, false
	}

	var maxDistance float64
	for _, p := range points {
		maxDistance = math.Max(maxDistance, math.Abs(a*p.X+b*p.Y+k)/norm)
	}

	if maxDistance >= c.th.LineDeviation {
		return Shape{}, false
	}

	return Shape{Kind: ShapeLine, Start: start, End: end}, true
}
