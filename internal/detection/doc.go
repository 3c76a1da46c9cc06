// Package detection recognizes clean geometric primitives in hand-drawn strokes.
//
// A stroke is the ordered list of points sampled during one continuous input
// gesture (pointer-down to pointer-up, or a tracked "draw" gesture from start
// to end). Recognition runs once the stroke is finished and decides whether
// the rough ink should be replaced by a circle or a straight line.
//
// # Pipeline
//
//  1. Gate: strokes with fewer than Thresholds.MinPoints raw samples are never
//     classified and always yield ShapeNone.
//  2. Simplify: Douglas-Peucker reduction with Thresholds.Tolerance removes
//     sampling jitter while keeping the first and last point.
//  3. Classify: bounding-box center, closure test, circle fit (closed strokes
//     only), then line fit.
//
// # Coordinate System
//
// Points are real-valued surface pixels with the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Determinism
//
// Simplify and Classify are pure functions of their input and thresholds.
// There is no randomness and no dependence on previously classified strokes,
// so identical strokes always produce identical shapes.
//
// # Limitations
//
// Only single-stroke circles and lines are recognized. Ellipses, polygons and
// shapes composed from several strokes are reported as ShapeNone.
package detection
