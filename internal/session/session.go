package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"vitae/internal/docstore"
	"vitae/internal/domain"
	"vitae/internal/editor"
	"vitae/internal/layout"
	"vitae/internal/service"
	"vitae/internal/syncer"
)

// Session binds the pieces that make one open document editable: the
// in-memory store, the undo history, and the sync controller. The app
// layer holds exactly one session per open document.
type Session struct {
	Store   *editor.Store
	History *editor.History
	Sync    *syncer.Controller
}

// Open hydrates a session from a persisted record, or starts a fresh
// document when id is empty.
func Open(ctx context.Context, backend docstore.Store, emitter service.EventEmitter, id string, opts ...syncer.Option) (*Session, error) {
	var doc domain.Document
	if id != "" {
		rec, err := backend.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load document %s: %w", id, err)
		}
		if err := json.Unmarshal(rec.Data, &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		if err := layout.ValidateRegions(doc.Regions); err != nil {
			return nil, fmt.Errorf("document %s has a corrupt layout: %w", id, err)
		}
		doc.ID = rec.ID
		doc.Title = rec.Title
	} else {
		doc = domain.Document{Title: "Untitled resume"}
	}

	store := editor.NewStore(doc)
	// the backend-assigned id flows back into the snapshot so GetDocument
	// reflects it after the first create
	opts = append([]syncer.Option{syncer.WithIDCallback(store.SetDocumentID)}, opts...)
	s := &Session{
		Store:   store,
		History: &editor.History{},
		Sync:    syncer.New(backend, emitter, opts...),
	}
	if id != "" {
		s.Sync.SetDocumentID(id)
	}

	// every committed snapshot feeds persistence; undo checkpoints are
	// taken explicitly before each user-initiated mutation
	s.Store.Subscribe(s.Sync.Note)
	return s, nil
}

// Checkpoint records the current state as an undo point. Call before a
// user-initiated mutation; restores from Undo/Redo must not checkpoint
// or stepping back would immediately step forward again.
func (s *Session) Checkpoint() {
	s.History.Push(s.Store.Snapshot())
}

// Close flushes pending edits and stops the sync controller. The
// returned error reports the final flush outcome; the session is
// closed either way.
func (s *Session) Close() error {
	err := s.Sync.FlushNow()
	s.Sync.Close()
	if err != nil {
		log.Printf("[SESSION] close flush: %v", err)
	}
	return err
}

// Undo steps the store back one snapshot. Returns false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	prev, ok := s.History.Undo(s.Store.Snapshot())
	if !ok {
		return false
	}
	s.Store.Replace(prev)
	return true
}

// Redo re-applies the most recently undone snapshot.
func (s *Session) Redo() bool {
	next, ok := s.History.Redo(s.Store.Snapshot())
	if !ok {
		return false
	}
	s.Store.Replace(next)
	return true
}
