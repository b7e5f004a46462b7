package session_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"vitae/internal/content"
	"vitae/internal/docstore"
	"vitae/internal/domain"
	"vitae/internal/service"
	"vitae/internal/session"
	"vitae/internal/syncer"
)

// memStore is a minimal in-memory backend for session tests.
type memStore struct {
	docs map[string]*docstore.Record
	next int
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]*docstore.Record)}
}

func (m *memStore) Get(_ context.Context, id string) (*docstore.Record, error) {
	rec, ok := m.docs[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memStore) Create(_ context.Context, title string, data []byte) (string, error) {
	m.next++
	id := "mem-" + string(rune('0'+m.next))
	m.docs[id] = &docstore.Record{ID: id, Title: title, Data: append([]byte(nil), data...)}
	return id, nil
}

func (m *memStore) Update(_ context.Context, id, title string, data []byte) error {
	m.docs[id] = &docstore.Record{ID: id, Title: title, Data: append([]byte(nil), data...)}
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error { delete(m.docs, id); return nil }
func (m *memStore) List(context.Context) ([]docstore.Info, error) {
	var infos []docstore.Info
	for _, r := range m.docs {
		infos = append(infos, docstore.Info{ID: r.ID, Title: r.Title})
	}
	return infos, nil
}
func (m *memStore) Close() error { return nil }

func openTestSession(t *testing.T, backend docstore.Store, id string) *session.Session {
	t.Helper()
	sess, err := session.Open(context.Background(), backend, &service.MockEmitter{}, id,
		syncer.WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	return sess
}

func TestSession_HydratesPersistedDocument(t *testing.T) {
	backend := newMemStore()
	doc := domain.Document{Title: "stored", Blocks: []domain.Block{
		{ID: "b1", Content: content.Fragment{content.Paragraph("hello")},
			Layout: domain.Layout{I: "b1", X: 0, Y: 0, W: 24, H: 4}},
	}}
	data, _ := json.Marshal(doc)
	id, _ := backend.Create(context.Background(), doc.Title, data)

	sess := openTestSession(t, backend, id)
	snap := sess.Store.Snapshot()
	if snap.ID != id || snap.Title != "stored" || len(snap.Blocks) != 1 {
		t.Errorf("hydrated snapshot: %+v", snap)
	}
}

func TestSession_OpenMissingDocument(t *testing.T) {
	backend := newMemStore()
	if _, err := session.Open(context.Background(), backend, &service.MockEmitter{}, "ghost"); err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestSession_OpenRejectsCorruptRegionTree(t *testing.T) {
	backend := newMemStore()
	raw := []byte(`{"title":"bad","blocks":[],"regions":
		{"id":"root","ratios":[60],"children":[{"id":"a"},{"id":"b"}]}}`)
	id, _ := backend.Create(context.Background(), "bad", raw)

	if _, err := session.Open(context.Background(), backend, &service.MockEmitter{}, id); err == nil {
		t.Fatal("a snapshot with a corrupt region tree must not hydrate")
	}
}

func TestSession_EditsReachBackend(t *testing.T) {
	backend := newMemStore()
	sess := openTestSession(t, backend, "")

	sess.Store.InsertBlock(content.Fragment{content.Paragraph("first edit")}, 0)
	if err := sess.Sync.FlushNow(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	id := sess.Sync.DocumentID()
	if id == "" {
		t.Fatal("first flush should capture the assigned id")
	}
	rec, err := backend.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var stored domain.Document
	if err := json.Unmarshal(rec.Data, &stored); err != nil {
		t.Fatalf("decode stored snapshot: %v", err)
	}
	if len(stored.Blocks) != 1 {
		t.Errorf("stored snapshot blocks: %d", len(stored.Blocks))
	}
	if snap := sess.Store.Snapshot(); snap.ID != id {
		t.Errorf("snapshot should carry the assigned id %q, got %q", id, snap.ID)
	}
}

func TestSession_UndoRedo(t *testing.T) {
	backend := newMemStore()
	sess := openTestSession(t, backend, "")

	sess.Checkpoint()
	b := sess.Store.InsertBlock(content.Fragment{content.Paragraph("v1")}, 0)
	sess.Checkpoint()
	sess.Store.UpdateBlockContent(b.ID, content.Fragment{content.Paragraph("v2")})

	if !sess.Undo() {
		t.Fatal("undo should succeed")
	}
	if got := sess.Store.Snapshot().Blocks[0].Content[0].PlainText(); got != "v1" {
		t.Errorf("after undo: %q", got)
	}

	if !sess.Redo() {
		t.Fatal("redo should succeed")
	}
	if got := sess.Store.Snapshot().Blocks[0].Content[0].PlainText(); got != "v2" {
		t.Errorf("after redo: %q", got)
	}
}

func TestSession_UndoExhausted(t *testing.T) {
	backend := newMemStore()
	sess := openTestSession(t, backend, "")
	if sess.Undo() {
		t.Error("undo with no checkpoints should report false")
	}
	if sess.Redo() {
		t.Error("redo with no undos should report false")
	}
}
