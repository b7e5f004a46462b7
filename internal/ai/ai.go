package ai

import (
	"context"
	"errors"

	"vitae/internal/domain"
	"vitae/internal/layout"
)

// ─────────────────────────────────────────────────────────────
// AI collaborators — capability interfaces
// ─────────────────────────────────────────────────────────────

// ErrMalformedResponse signals that a collaborator returned output
// that could not be decoded into the expected structure. It is a
// recoverable error: the caller reports it and keeps editor state.
var ErrMalformedResponse = errors.New("ai: malformed structured response")

// ResumeParser turns an unstructured source file into a structured
// resume record.
type ResumeParser interface {
	ParseResume(ctx context.Context, data []byte, mimeType string) (*domain.Resume, error)
}

// InstructionEditor rewrites a whole document snapshot according to a
// natural-language instruction. The returned snapshot fully replaces
// the current one.
type InstructionEditor interface {
	EditDocument(ctx context.Context, doc domain.Document, instruction string) (*domain.Document, error)
}

// MarkupRenderer produces presentational markup for export preview.
type MarkupRenderer interface {
	RenderMarkup(ctx context.Context, doc domain.Document) (string, error)
}

// validateDocument rejects replacement snapshots that would corrupt
// the store: duplicate or empty block ids, layouts that don't
// reference their own block, or a region tree violating the split
// invariants (rendering such a tree would panic).
func validateDocument(doc *domain.Document) error {
	seen := make(map[string]bool, len(doc.Blocks))
	for _, b := range doc.Blocks {
		if b.ID == "" || seen[b.ID] {
			return ErrMalformedResponse
		}
		seen[b.ID] = true
		if b.Layout.I != b.ID || !b.Layout.Valid() {
			return ErrMalformedResponse
		}
	}
	if err := layout.ValidateRegions(doc.Regions); err != nil {
		return ErrMalformedResponse
	}
	return nil
}
