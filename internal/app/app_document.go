package app

import (
	"fmt"

	"vitae/internal/docstore"
	"vitae/internal/domain"
	"vitae/internal/session"
	"vitae/internal/syncer"
)

// ============================================================
// Document catalog & session lifecycle
// ============================================================

// ListDocuments returns the persisted resume catalog, newest first.
func (a *App) ListDocuments() ([]docstore.Info, error) {
	return a.docs.List(a.ctx)
}

// NewDocument opens a fresh unsaved document, closing any open one.
func (a *App) NewDocument(title string) (domain.Document, error) {
	sess, err := a.openSession("")
	if err != nil {
		return domain.Document{}, err
	}
	if title != "" {
		doc := sess.Store.Snapshot()
		doc.Title = title
		sess.Store.Replace(doc)
	}
	return sess.Store.Snapshot(), nil
}

// OpenDocument hydrates a persisted document into a new editing
// session, closing any open one.
func (a *App) OpenDocument(id string) (domain.Document, error) {
	sess, err := a.openSession(id)
	if err != nil {
		return domain.Document{}, err
	}
	return sess.Store.Snapshot(), nil
}

// CloseDocument flushes and tears down the current session.
func (a *App) CloseDocument() error {
	a.mu.Lock()
	sess := a.sess
	a.sess = nil
	a.mu.Unlock()
	if sess == nil {
		return nil
	}
	return sess.Close()
}

// DeleteDocument removes a document from the backend. The open session
// is untouched: its next flush re-creates the document, which is the
// sync protocol's documented behavior for remote deletes.
func (a *App) DeleteDocument(id string) error {
	return a.docs.Delete(a.ctx, id)
}

// GetDocument returns a snapshot of the open document.
func (a *App) GetDocument() (domain.Document, error) {
	sess, err := a.currentSession()
	if err != nil {
		return domain.Document{}, err
	}
	return sess.Store.Snapshot(), nil
}

// RenameDocument retitles the open document.
func (a *App) RenameDocument(title string) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}
	sess.Checkpoint()
	doc := sess.Store.Snapshot()
	doc.Title = title
	sess.Store.Replace(doc)
	return nil
}

// SaveNow flushes the open document immediately, bypassing the
// debounce. Used before export and by the manual save shortcut.
func (a *App) SaveNow() (string, error) {
	sess, err := a.currentSession()
	if err != nil {
		return "", err
	}
	// make sure the latest snapshot is what gets written
	sess.Sync.Note(sess.Store.Snapshot())
	if err := sess.Sync.FlushNow(); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	return sess.Sync.DocumentID(), nil
}

// Undo steps the open document back one mutation.
func (a *App) Undo() (bool, error) {
	sess, err := a.currentSession()
	if err != nil {
		return false, err
	}
	return sess.Undo(), nil
}

// Redo re-applies the most recently undone mutation.
func (a *App) Redo() (bool, error) {
	sess, err := a.currentSession()
	if err != nil {
		return false, err
	}
	return sess.Redo(), nil
}

func (a *App) openSession(id string) (*session.Session, error) {
	a.mu.Lock()
	old := a.sess
	a.sess = nil
	a.mu.Unlock()
	if old != nil {
		old.Close()
	}

	sess, err := session.Open(a.ctx, a.docs, emitter{app: a}, id, syncer.WithDebounce(syncer.DefaultDebounce))
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.sess = sess
	a.mu.Unlock()
	return sess, nil
}
