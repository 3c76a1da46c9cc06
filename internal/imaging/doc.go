// Package imaging provides the raster drawing surface behind the sketch board.
//
// The surface is a single transparent RGBA ink layer. Everything the user
// draws ends up there: live rough ink, recognized primitives, and erasures.
// Presentation extras such as the grid are separate layers composed on top
// when a view is requested and are never written into the ink layer, so they
// can never leak into a snapshot.
//
// # Coordinate System
//
// All coordinates are surface pixels:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Real-valued positions are rendered with anti-aliasing
//
// # Snapshots
//
// A Snapshot is a self-contained PNG encoding of the ink layer. Restoring a
// snapshot decodes it completely before touching the surface, so a corrupt
// or missing snapshot leaves the surface exactly as it was.
//
// # Thread Safety
//
// Surface and Grid are not safe for concurrent use. The board serializes all
// access to them.
//
// # Color Representation
//
// Colors are accepted as hex strings:
//   - "#RGB" and "#RRGGBB": opaque colors
//   - "#RRGGBBAA": colors with alpha
//
// Sampled colors are reported as hex, RGBA and HSL.
package imaging
