// Package history keeps an ordered, cursor-indexed sequence of snapshots for
// linear undo and redo.
//
// The cursor always points at the snapshot currently reflected on the
// visible surface. Undo and redo only move the cursor; Push is the only
// operation that grows the sequence, and it first discards every entry after
// the cursor, so a new edit after one or more undos makes the undone
// entries unrecoverable.
//
// Underflow and overflow are not errors: Undo at the oldest entry and Redo at
// the newest entry return false and leave the state unchanged. Callers
// observe availability through CanUndo and CanRedo.
//
// A History is not safe for concurrent use. Owners that share it between
// goroutines must serialize access themselves.
package history
