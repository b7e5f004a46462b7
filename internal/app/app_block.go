package app

import (
	"encoding/json"
	"fmt"

	"vitae/internal/content"
	"vitae/internal/domain"
	"vitae/internal/layout"
)

// ============================================================
// Blocks & grid layout
// ============================================================

// InsertBlock inserts a new block at pos. contentJSON is the wire-form
// node array; empty means an empty paragraph.
func (a *App) InsertBlock(contentJSON string, pos int) (domain.Block, error) {
	sess, err := a.currentSession()
	if err != nil {
		return domain.Block{}, err
	}

	frag := content.Fragment{content.Paragraph("")}
	if contentJSON != "" {
		if err := json.Unmarshal([]byte(contentJSON), &frag); err != nil {
			return domain.Block{}, fmt.Errorf("parse content: %w", err)
		}
	}

	sess.Checkpoint()
	return sess.Store.InsertBlock(frag, pos), nil
}

// UpdateBlockContent replaces a block's content from wire-form JSON.
func (a *App) UpdateBlockContent(blockID, contentJSON string) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}
	var frag content.Fragment
	if err := json.Unmarshal([]byte(contentJSON), &frag); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}
	sess.Checkpoint()
	sess.Store.UpdateBlockContent(blockID, frag)
	return nil
}

// UpdateLayout applies a batch of layout entries, as produced by a
// grid drag or resize gesture ending.
func (a *App) UpdateLayout(entries []domain.Layout) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}
	sess.Checkpoint()
	sess.Store.UpdateLayout(entries)
	return nil
}

// MoveBlock validates and applies a single-block move.
func (a *App) MoveBlock(blockID string, x, y int) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}
	entries := blockLayouts(sess.Store.Snapshot())
	moved, err := layout.Move(entries, blockID, x, y)
	if err != nil {
		return err
	}
	sess.Checkpoint()
	sess.Store.UpdateLayout(moved)
	return nil
}

// ResizeBlock validates and applies a single-block resize.
func (a *App) ResizeBlock(blockID string, w, h int) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}
	entries := blockLayouts(sess.Store.Snapshot())
	resized, err := layout.Resize(entries, blockID, w, h)
	if err != nil {
		return err
	}
	sess.Checkpoint()
	sess.Store.UpdateLayout(resized)
	return nil
}

// RemoveBlock deletes a block. Idempotent, so a double-fired delete
// gesture is harmless.
func (a *App) RemoveBlock(blockID string) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}
	sess.Checkpoint()
	sess.Store.RemoveBlock(blockID)
	return nil
}

// DropContent commits a content drag: the dragged nodes leave the
// source block and land in the target block at pos. A vanished source
// block is tolerated, the fragment is still inserted at the target.
func (a *App) DropContent(payload content.DragPayload, targetBlockID string, pos int) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}
	doc := sess.Store.Snapshot()

	var target *domain.Block
	for i := range doc.Blocks {
		if doc.Blocks[i].ID == targetBlockID {
			target = &doc.Blocks[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("drop target %s not found", targetBlockID)
	}

	sess.Checkpoint()

	if payload.SourceBlockID != targetBlockID {
		for _, b := range doc.Blocks {
			if b.ID != payload.SourceBlockID {
				continue
			}
			trimmed := b.Content
			for i := 0; i < payload.Size; i++ {
				trimmed = content.DeleteNodeAt(trimmed, payload.SourcePos)
			}
			sess.Store.UpdateBlockContent(b.ID, trimmed)
			break
		}
	} else {
		trimmed := target.Content
		for i := 0; i < payload.Size; i++ {
			trimmed = content.DeleteNodeAt(trimmed, payload.SourcePos)
		}
		target.Content = trimmed
		if pos > payload.SourcePos {
			pos -= payload.Size
		}
	}

	updated := target.Content
	for i, n := range payload.Fragment {
		updated = content.InsertAt(updated, pos+i, n)
	}
	sess.Store.UpdateBlockContent(target.ID, updated)
	return nil
}

// ============================================================
// Badges
// ============================================================

// BadgeShorthandResult is what the frontend needs to rewrite the inline
// run after the "::label," shorthand fires.
type BadgeShorthandResult struct {
	Fired  bool          `json:"fired"`
	Before string        `json:"before"`
	Badge  *content.Node `json:"badge,omitempty"`
}

// ApplyBadgeShorthand checks typed text for the trailing badge
// shorthand and returns the conversion result.
func (a *App) ApplyBadgeShorthand(text string) BadgeShorthandResult {
	before, badge, ok := content.ApplyBadgeShorthand(text)
	if !ok {
		return BadgeShorthandResult{}
	}
	return BadgeShorthandResult{Fired: true, Before: before, Badge: &badge}
}

// BadgeEscapeResult carries the rewritten inline run and new cursor
// after a badge escape key.
type BadgeEscapeResult struct {
	Fired  bool              `json:"fired"`
	Inline content.Fragment  `json:"inline"`
	Cursor content.CursorPos `json:"cursor"`
}

// EscapeBadge runs the badge escape state machine for a key press at
// the given inline cursor position.
func (a *App) EscapeBadge(inlineJSON string, cursor content.CursorPos, key string) (BadgeEscapeResult, error) {
	var inline content.Fragment
	if err := json.Unmarshal([]byte(inlineJSON), &inline); err != nil {
		return BadgeEscapeResult{}, fmt.Errorf("parse inline run: %w", err)
	}
	out, pos, ok := content.EscapeBadge(inline, cursor, content.EscapeKey(key))
	return BadgeEscapeResult{Fired: ok, Inline: out, Cursor: pos}, nil
}

func blockLayouts(doc domain.Document) []domain.Layout {
	entries := make([]domain.Layout, len(doc.Blocks))
	for i, b := range doc.Blocks {
		entries[i] = b.Layout
	}
	return entries
}
