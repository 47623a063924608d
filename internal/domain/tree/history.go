package tree

import "github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"

// HistoryLimit is the maximum number of snapshots kept for undo/redo.
const HistoryLimit = 10

// PushHistory appends a deep copy of tree after index, discarding any redo branch, and evicts
// the oldest snapshots beyond limit. It returns the new entries and the new index.
func PushHistory(tree []*builder.ComponentNode, entries [][]*builder.ComponentNode, index, limit int) ([][]*builder.ComponentNode, int) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	keep := index + 1
	if keep < 0 {
		keep = 0
	}
	if keep > len(entries) {
		keep = len(entries)
	}
	next := make([][]*builder.ComponentNode, 0, keep+1)
	next = append(next, entries[:keep]...)
	next = append(next, builder.CloneTree(tree))
	if over := len(next) - limit; over > 0 {
		next = next[over:]
	}
	return next, len(next) - 1
}

// History is the bounded undo/redo buffer of full tree snapshots. It is not safe for concurrent
// use; the owning editor session serializes access.
type History struct {
	entries [][]*builder.ComponentNode
	index   int
	limit   int
}

// NewHistory creates an empty buffer. Limits outside 1..HistoryLimit use HistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	return &History{index: -1, limit: limit}
}

// Push records a snapshot and moves to it.
func (h *History) Push(tree []*builder.ComponentNode) {
	h.entries, h.index = PushHistory(tree, h.entries, h.index, h.limit)
}

// Undo moves one step back. At the oldest entry, or on an empty buffer, it does not move and
// reports false.
func (h *History) Undo() ([]*builder.ComponentNode, bool) {
	if h.index <= 0 {
		snapshot, _ := h.Current()
		return snapshot, false
	}
	h.index--
	snapshot, _ := h.Current()
	return snapshot, true
}

// Redo moves one step forward. At the newest entry it does not move and reports false.
func (h *History) Redo() ([]*builder.ComponentNode, bool) {
	if h.index < 0 || h.index >= len(h.entries)-1 {
		snapshot, _ := h.Current()
		return snapshot, false
	}
	h.index++
	snapshot, _ := h.Current()
	return snapshot, true
}

// Current returns a copy of the snapshot at the current position.
func (h *History) Current() ([]*builder.ComponentNode, bool) {
	if h.index < 0 || h.index >= len(h.entries) {
		return nil, false
	}
	return builder.CloneTree(h.entries[h.index]), true
}

// Index is the current position, -1 when empty.
func (h *History) Index() int { return h.index }

// Len is the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool { return h.index >= 0 && h.index < len(h.entries)-1 }
