package session

// History is a bounded snapshot log with a cursor. The entry at the cursor is
// the current state; entries after it are the redo tail.
type History struct {
	entries []*Grid
	cursor  int
	max     int
}

// NewHistory builds a history holding at most max snapshots. A max below 2
// still keeps room for a baseline and one edit.
func NewHistory(max int) *History {
	if max < 2 {
		max = 2
	}
	return &History{max: max, cursor: -1}
}

// Reset discards everything and installs g as the baseline entry.
func (h *History) Reset(g *Grid) {
	h.entries = []*Grid{g.Clone()}
	h.cursor = 0
}

// Commit truncates any redo tail, appends a snapshot of g, and evicts the
// oldest entry when over capacity. The cursor always lands on the new entry.
func (h *History) Commit(g *Grid) {
	h.entries = h.entries[:h.cursor+1]
	h.entries = append(h.entries, g.Clone())
	h.cursor++
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
		h.cursor--
	}
}

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Undo steps the cursor back and returns a copy of that snapshot, or nil at
// the baseline.
func (h *History) Undo() *Grid {
	if !h.CanUndo() {
		return nil
	}
	h.cursor--
	return h.entries[h.cursor].Clone()
}

// Redo steps the cursor forward and returns a copy of that snapshot, or nil
// when no redo tail exists.
func (h *History) Redo() *Grid {
	if !h.CanRedo() {
		return nil
	}
	h.cursor++
	return h.entries[h.cursor].Clone()
}

// Len reports how many snapshots are held, baseline included.
func (h *History) Len() int { return len(h.entries) }
