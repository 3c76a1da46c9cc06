package history

// History is an ordered sequence of snapshots plus a cursor.
//
// The zero value is not ready for use; create one with New.
type History[S any] struct {
	entries []S
	index   int
	limit   int
}

// New creates an empty history. The cursor starts at -1.
//
// A positive limit caps the number of retained entries; once exceeded, the
// oldest entries are dropped and the cursor shifts with them. A limit of 0
// or less keeps every entry.
func New[S any](limit int) *History[S] {
	if limit < 0 {
		limit = 0
	}
	return &History[S]{
		index: -1,
		limit: limit,
	}
}

// Push discards every entry after the cursor, appends snapshot and moves the
// cursor onto it.
func (h *History[S]) Push(snapshot S) {
	// Clear the tail so pruned snapshots can be garbage collected.
	var zero S
	for i := h.index + 1; i < len(h.entries); i++ {
		h.entries[i] = zero
	}
	h.entries = append(h.entries[:h.index+1], snapshot)
	h.index++

	if h.limit > 0 && len(h.entries) > h.limit {
		excess := len(h.entries) - h.limit
		for i := 0; i < excess; i++ {
			h.entries[i] = zero
		}
		h.entries = h.entries[excess:]
		h.index -= excess
	}
}

// Undo moves the cursor back one entry and returns the snapshot now current.
// It returns false without changing anything when the cursor is at the
// oldest entry or the history is empty.
func (h *History[S]) Undo() (S, bool) {
	if h.index <= 0 {
		var zero S
		return zero, false
	}
	h.index--
	return h.entries[h.index], true
}

// Redo moves the cursor forward one entry and returns the snapshot now
// current. It returns false without changing anything when the cursor is at
// the newest entry.
func (h *History[S]) Redo() (S, bool) {
	if h.index >= len(h.entries)-1 {
		var zero S
		return zero, false
	}
	h.index++
	return h.entries[h.index], true
}

// CanUndo reports whether Undo would move the cursor.
func (h *History[S]) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether Redo would move the cursor.
func (h *History[S]) CanRedo() bool {
	return h.index < len(h.entries)-1
}

// Reset clears the sequence and pushes initial as the only entry, making it
// the undo baseline.
func (h *History[S]) Reset(initial S) {
	var zero S
	for i := range h.entries {
		h.entries[i] = zero
	}
	h.entries = h.entries[:0]
	h.index = -1
	h.Push(initial)
}

// Current returns the snapshot under the cursor, or false when empty.
func (h *History[S]) Current() (S, bool) {
	if h.index < 0 {
		var zero S
		return zero, false
	}
	return h.entries[h.index], true
}

// Len returns the number of retained entries.
func (h *History[S]) Len() int {
	return len(h.entries)
}

// Index returns the cursor position, -1 when empty.
func (h *History[S]) Index() int {
	return h.index
}
