package editor_test

import (
	"testing"

	"vitae/internal/content"
	"vitae/internal/domain"
	"vitae/internal/editor"
)

// ─────────────────────────────────────────────────────────────
// Store unit tests
// ─────────────────────────────────────────────────────────────

func TestStore_InsertBlock_AssignsUniqueIDs(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		b := s.InsertBlock(content.Fragment{content.Paragraph("x")}, i)
		if b.ID == "" {
			t.Fatal("expected non-empty block id")
		}
		if seen[b.ID] {
			t.Fatalf("duplicate block id %s", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestStore_InsertBlock_LayoutMatchesBlock(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	b := s.InsertBlock(content.Fragment{content.Paragraph("x")}, 0)

	if b.Layout.I != b.ID {
		t.Errorf("layout entry %q does not reference block %q", b.Layout.I, b.ID)
	}
	if !b.Layout.Valid() {
		t.Errorf("default layout %+v is invalid", b.Layout)
	}
	if b.Layout.W != domain.GridCols {
		t.Errorf("expected full-width default, got w=%d", b.Layout.W)
	}
}

func TestStore_InsertBlock_StacksBelowExisting(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	first := s.InsertBlock(content.Fragment{content.Paragraph("a")}, 0)
	second := s.InsertBlock(content.Fragment{content.Paragraph("b")}, 1)

	if second.Layout.Y < first.Layout.Y+first.Layout.H {
		t.Errorf("second block at y=%d overlaps first (y=%d h=%d)",
			second.Layout.Y, first.Layout.Y, first.Layout.H)
	}
}

func TestStore_InsertBlock_ClampsPosition(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	s.InsertBlock(content.Fragment{content.Paragraph("a")}, 0)
	b := s.InsertBlock(content.Fragment{content.Paragraph("b")}, 99)

	doc := s.Snapshot()
	if doc.Blocks[len(doc.Blocks)-1].ID != b.ID {
		t.Error("out-of-range position should append at the end")
	}

	c := s.InsertBlock(content.Fragment{content.Paragraph("c")}, -5)
	doc = s.Snapshot()
	if doc.Blocks[0].ID != c.ID {
		t.Error("negative position should insert at the front")
	}
}

func TestStore_InsertBlock_PreservesOrder(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	a := s.InsertBlock(content.Fragment{content.Paragraph("a")}, 0)
	c := s.InsertBlock(content.Fragment{content.Paragraph("c")}, 1)
	b := s.InsertBlock(content.Fragment{content.Paragraph("b")}, 1)

	doc := s.Snapshot()
	want := []string{a.ID, b.ID, c.ID}
	for i, id := range want {
		if doc.Blocks[i].ID != id {
			t.Fatalf("block order wrong at %d: got %s want %s", i, doc.Blocks[i].ID, id)
		}
	}
}

func TestStore_UpdateBlockContent_MissingIDIsNoOp(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	s.InsertBlock(content.Fragment{content.Paragraph("a")}, 0)
	before := s.Snapshot()

	notified := 0
	s.Subscribe(func(domain.Document) { notified++ })
	s.UpdateBlockContent("no-such-id", content.Fragment{content.Paragraph("x")})

	if notified != 0 {
		t.Error("no-op update should not notify subscribers")
	}
	after := s.Snapshot()
	if len(after.Blocks) != len(before.Blocks) {
		t.Error("no-op update changed the document")
	}
}

func TestStore_RemoveBlock_Idempotent(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	b := s.InsertBlock(content.Fragment{content.Paragraph("a")}, 0)

	s.RemoveBlock(b.ID)
	s.RemoveBlock(b.ID) // second delete of the same id must be harmless

	if got := len(s.Snapshot().Blocks); got != 0 {
		t.Errorf("expected 0 blocks, got %d", got)
	}
}

func TestStore_UpdateLayout_SkipsInvalidEntries(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	b := s.InsertBlock(content.Fragment{content.Paragraph("a")}, 0)

	s.UpdateLayout([]domain.Layout{
		{I: b.ID, X: -1, Y: 0, W: 4, H: 4}, // negative x: invalid
		{I: b.ID, X: 0, Y: 0, W: 0, H: 4},  // zero width: invalid
	})

	got := s.Snapshot().Blocks[0].Layout
	if got.X != b.Layout.X || got.W != b.Layout.W {
		t.Errorf("invalid entries were applied: %+v", got)
	}
}

func TestStore_UpdateLayout_AppliesBatch(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	a := s.InsertBlock(content.Fragment{content.Paragraph("a")}, 0)
	b := s.InsertBlock(content.Fragment{content.Paragraph("b")}, 1)

	s.UpdateLayout([]domain.Layout{
		{I: a.ID, X: 0, Y: 0, W: 12, H: 6},
		{I: b.ID, X: 12, Y: 0, W: 12, H: 6},
		{I: "ghost", X: 3, Y: 3, W: 3, H: 3}, // unmatched id: ignored
	})

	doc := s.Snapshot()
	if doc.Blocks[0].Layout.W != 12 || doc.Blocks[1].Layout.X != 12 {
		t.Errorf("batch layout not applied: %+v %+v", doc.Blocks[0].Layout, doc.Blocks[1].Layout)
	}
}

func TestStore_Snapshot_IsIsolated(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	s.InsertBlock(content.Fragment{content.Paragraph("original")}, 0)

	snap := s.Snapshot()
	snap.Blocks[0].Content = content.Fragment{content.Paragraph("mutated")}
	snap.Blocks[0].Layout.X = 99

	doc := s.Snapshot()
	if doc.Blocks[0].Layout.X == 99 {
		t.Error("mutating a snapshot leaked into the store")
	}
	if doc.Blocks[0].Content[0].PlainText() != "original" {
		t.Error("mutating snapshot content leaked into the store")
	}
}

func TestStore_Subscribe_ReceivesSnapshotPerMutation(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	var got []int
	s.Subscribe(func(d domain.Document) { got = append(got, len(d.Blocks)) })

	s.InsertBlock(content.Fragment{content.Paragraph("a")}, 0)
	b := s.InsertBlock(content.Fragment{content.Paragraph("b")}, 1)
	s.RemoveBlock(b.ID)

	want := []int{1, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d: got %d blocks, want %d", i, got[i], want[i])
		}
	}
}

func TestStore_Replace_KeepsPersistedID(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	s.SetDocumentID("doc-1")

	s.Replace(domain.Document{Title: "replacement"})
	if got := s.Snapshot().ID; got != "doc-1" {
		t.Errorf("replace dropped the persisted id: %q", got)
	}

	s.Replace(domain.Document{ID: "doc-2", Title: "other"})
	if got := s.Snapshot().ID; got != "doc-2" {
		t.Errorf("replace should honor an explicit id: %q", got)
	}
}

func TestStore_ContentAndLayoutUpdatesBothLand(t *testing.T) {
	s := editor.NewStore(domain.Document{})
	b := s.InsertBlock(content.Fragment{content.Paragraph("v1")}, 0)

	// a content edit and a layout commit arriving back to back must
	// both survive into the next snapshot
	s.UpdateBlockContent(b.ID, content.Fragment{content.Paragraph("v2")})
	s.UpdateLayout([]domain.Layout{{I: b.ID, X: 6, Y: 2, W: 12, H: 8}})

	got, ok := s.Snapshot().BlockByID(b.ID)
	if !ok {
		t.Fatal("block vanished")
	}
	if got.Content[0].PlainText() != "v2" {
		t.Errorf("content edit lost: %q", got.Content[0].PlainText())
	}
	if got.Layout.X != 6 || got.Layout.Y != 2 || got.Layout.W != 12 || got.Layout.H != 8 {
		t.Errorf("layout commit lost: %+v", got.Layout)
	}

	// and in the reverse order
	s.UpdateLayout([]domain.Layout{{I: b.ID, X: 0, Y: 0, W: 24, H: 4}})
	s.UpdateBlockContent(b.ID, content.Fragment{content.Paragraph("v3")})

	got, _ = s.Snapshot().BlockByID(b.ID)
	if got.Content[0].PlainText() != "v3" || got.Layout.W != 24 {
		t.Errorf("reverse-order updates lost state: %q %+v", got.Content[0].PlainText(), got.Layout)
	}
}
