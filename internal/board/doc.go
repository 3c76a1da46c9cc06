// Package board ties the drawing surface, the undo history and shape
// recognition together.
//
// A Board owns one imaging.Surface and one history of its snapshots. Input
// arrives as strokes (BeginStroke, ExtendStroke, EndStroke, or Stroke for a
// complete point list) and as hand-tracker events (HandleEvent). Rough ink
// is rendered live while a stroke is in progress. When the stroke ends it is
// either committed as drawn or, with recognition enabled, handed to the
// Recognizer, which may replace the rough ink with a clean circle or line.
//
// # History
//
// Every finished stroke produces exactly one history entry, whatever the
// recognition outcome. Clear resets the history to a single baseline entry.
// Undo and Redo move the history cursor and restore the surface from the
// snapshot that becomes current.
//
// # Grid
//
// The grid is a presentation layer composed over the ink by View. It is
// never drawn into the surface and therefore never captured in a snapshot.
//
// # Thread Safety
//
// All Board methods are safe for concurrent use. A single mutex serializes
// them, so a snapshot restore and the commit that follows it can never
// interleave with another mutation.
package board
