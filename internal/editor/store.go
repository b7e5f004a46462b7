package editor

import (
	"sync"

	"github.com/google/uuid"

	"vitae/internal/content"
	"vitae/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Store — authoritative container for one open document
// ─────────────────────────────────────────────────────────────

// Subscriber receives a fresh snapshot after every mutation.
type Subscriber func(domain.Document)

// Store holds the ordered block list and layout for a single open
// document. It is the only owner of the mutable document; everything
// handed out is a deep copy, so observers can diff snapshots by value
// without ever seeing a partially applied mutation.
type Store struct {
	mu   sync.Mutex
	doc  domain.Document
	subs []Subscriber
}

// NewStore creates a store hydrated from doc (pass an empty document
// for a fresh resume).
func NewStore(doc domain.Document) *Store {
	return &Store{doc: doc.Clone()}
}

// Subscribe registers fn to be called with a snapshot after each
// mutation. Callbacks run synchronously on the mutating call, in
// registration order.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Snapshot returns an immutable copy of the current document.
func (s *Store) Snapshot() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// SetDocumentID records the persistence identifier assigned by the
// backend after the first flush.
func (s *Store) SetDocumentID(id string) {
	s.mu.Lock()
	s.doc.ID = id
	s.mu.Unlock()
}

// InsertBlock appends or inserts a new block with a freshly generated
// id and a default layout slot below the existing blocks. Out-of-range
// positions are clamped.
func (s *Store) InsertBlock(frag content.Fragment, pos int) domain.Block {
	s.mu.Lock()
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.doc.Blocks) {
		pos = len(s.doc.Blocks)
	}

	b := domain.Block{
		ID:      uuid.New().String(),
		Content: frag.Clone(),
	}
	b.Layout = domain.Layout{I: b.ID, X: 0, Y: s.nextRowLocked(), W: domain.GridCols, H: 4}

	blocks := make([]domain.Block, 0, len(s.doc.Blocks)+1)
	blocks = append(blocks, s.doc.Blocks[:pos]...)
	blocks = append(blocks, b)
	blocks = append(blocks, s.doc.Blocks[pos:]...)
	s.doc.Blocks = blocks

	inserted := b.Clone()
	s.notifyLocked()
	return inserted
}

// UpdateBlockContent replaces the content of the block with id. A
// missing id is a benign no-op so content edits racing a delete never
// fail.
func (s *Store) UpdateBlockContent(id string, frag content.Fragment) {
	s.mu.Lock()
	for i := range s.doc.Blocks {
		if s.doc.Blocks[i].ID == id {
			s.doc.Blocks[i].Content = frag.Clone()
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// UpdateLayout applies each entry to the block whose id matches its I
// field. Entries with no matching block are ignored. Invalid entries
// (negative coordinates, zero size) are skipped so a bad drag can
// never leave the grid in an illegal state.
func (s *Store) UpdateLayout(entries []domain.Layout) {
	s.mu.Lock()
	changed := false
	for _, e := range entries {
		if !e.Valid() {
			continue
		}
		for i := range s.doc.Blocks {
			if s.doc.Blocks[i].ID == e.I {
				s.doc.Blocks[i].Layout = e
				changed = true
				break
			}
		}
	}
	if changed {
		s.notifyLocked()
		return
	}
	s.mu.Unlock()
}

// RemoveBlock deletes the block and its layout entry. Idempotent.
func (s *Store) RemoveBlock(id string) {
	s.mu.Lock()
	for i := range s.doc.Blocks {
		if s.doc.Blocks[i].ID == id {
			s.doc.Blocks = append(s.doc.Blocks[:i:i], s.doc.Blocks[i+1:]...)
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// SetRegions replaces the split-region tree.
func (s *Store) SetRegions(r *domain.Region) {
	s.mu.Lock()
	s.doc.Regions = r.Clone()
	s.notifyLocked()
}

// Replace swaps in a whole new document state. Used for hydration,
// undo/redo restore, and AI-produced replacement snapshots. The
// persisted identifier is kept unless the replacement carries one.
func (s *Store) Replace(doc domain.Document) {
	s.mu.Lock()
	id := s.doc.ID
	s.doc = doc.Clone()
	if s.doc.ID == "" {
		s.doc.ID = id
	}
	s.notifyLocked()
}

// nextRowLocked returns the first free row below all existing blocks.
func (s *Store) nextRowLocked() int {
	y := 0
	for _, b := range s.doc.Blocks {
		if bottom := b.Layout.Y + b.Layout.H; bottom > y {
			y = bottom
		}
	}
	return y
}

// notifyLocked snapshots the document, releases the lock, and fans the
// snapshot out to subscribers. Must be called with the lock held.
func (s *Store) notifyLocked() {
	snap := s.doc.Clone()
	subs := s.subs
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
