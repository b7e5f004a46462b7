package editor

import (
	"sync"

	"vitae/internal/domain"
)

// maxHistory bounds the undo stack, matching the persisted undo
// pruning limit used by earlier releases.
const maxHistory = 40

// History keeps an in-memory stack of document snapshots for
// undo/redo. Snapshots are whole documents: restoring one fully syncs
// the store, so history can never desynchronize blocks from layouts.
type History struct {
	mu     sync.Mutex
	past   []domain.Document
	future []domain.Document
}

// Push records a snapshot taken before a mutation and clears the redo
// stack. Oldest entries are dropped past the limit.
func (h *History) Push(snap domain.Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.past = append(h.past, snap.Clone())
	if len(h.past) > maxHistory {
		h.past = h.past[len(h.past)-maxHistory:]
	}
	h.future = nil
}

// Undo pops the most recent snapshot. current is pushed onto the redo
// stack. Returns false when there is nothing to undo.
func (h *History) Undo(current domain.Document) (domain.Document, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.past) == 0 {
		return domain.Document{}, false
	}
	snap := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current.Clone())
	return snap, true
}

// Redo pops from the redo stack. current is pushed back onto the undo
// stack. Returns false when there is nothing to redo.
func (h *History) Redo(current domain.Document) (domain.Document, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.future) == 0 {
		return domain.Document{}, false
	}
	snap := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current.Clone())
	return snap, true
}
