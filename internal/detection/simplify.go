package detection

import "math"

// Point is a sampled stroke position in surface pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Simplify reduces a stroke with the Douglas-Peucker algorithm.
//
// Parameters:
//   - points: The raw stroke, in sampling order.
//   - tolerance: Maximum distance (pixels) a discarded point may lie from the
//     simplified polyline. Negative values are treated as 0.
//
// Returns an ordered subsequence of points that always contains the first and
// last input point. Inputs with two or fewer points are returned unchanged
// (as a copy). The input slice is never modified.
//
// # Algorithm
//
// For the current range [first, last], every interior point is measured
// against the segment first-last (point-to-segment distance, so projections
// beyond either end fall back to the nearer endpoint). When the farthest point
// lies beyond the tolerance it is kept and both halves are simplified
// independently; otherwise the whole interior is dropped. Distances are
// compared squared to avoid square roots.
func Simplify(points []Point, tolerance float64) []Point {
	if len(points) <= 2 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}
	if tolerance < 0 {
		tolerance = 0
	}

	last := len(points) - 1
	out := make([]Point, 0, len(points))
	out = append(out, points[0])
	out = simplifyRange(points, 0, last, tolerance*tolerance, out)
	return append(out, points[last])
}

// simplifyRange appends the kept interior points of (first, last) to out.
// The endpoints themselves are appended by the caller, so a split point is
// emitted exactly once.
func simplifyRange(points []Point, first, last int, sqTolerance float64, out []Point) []Point {
	maxSqDist := sqTolerance
	index := -1

	for i := first + 1; i < last; i++ {
		d := sqSegmentDistance(points[i], points[first], points[last])
		if d > maxSqDist {
			index = i
			maxSqDist = d
		}
	}

	if index < 0 {
		return out
	}

	out = simplifyRange(points, first, index, sqTolerance, out)
	out = append(out, points[index])
	return simplifyRange(points, index, last, sqTolerance, out)
}

// sqSegmentDistance returns the squared distance from p to the segment a-b.
// A zero-length segment degrades to the squared distance from p to a.
func sqSegmentDistance(p, a, b Point) float64 {
	x, y := a.X, a.Y
	dx := b.X - x
	dy := b.Y - y

	if dx != 0 || dy != 0 {
		t := ((p.X-x)*dx + (p.Y-y)*dy) / (dx*dx + dy*dy)
		if t > 1 {
			x, y = b.X, b.Y
		} else if t > 0 {
			x += dx * t
			y += dy * t
		}
	}

	dx = p.X - x
	dy = p.Y - y
	return dx*dx + dy*dy
}
