package layout

import (
	"errors"

	"vitae/internal/domain"
)

// ErrInvalidBounds signals a move/resize that would push a block
// outside the grid's legal range. The caller must not apply any part
// of the rejected mutation.
var ErrInvalidBounds = errors.New("layout: coordinates must be >= 0 and size >= 1")

// Move returns a new entry slice with the block's position updated.
// Coordinates below zero are rejected. An id with no entry leaves the
// slice unchanged (tolerates races with deletion). Overlap between
// blocks is deliberately not prevented: the grid is free-form.
func Move(entries []domain.Layout, id string, x, y int) ([]domain.Layout, error) {
	if x < 0 || y < 0 {
		return nil, ErrInvalidBounds
	}
	out := append([]domain.Layout(nil), entries...)
	for i := range out {
		if out[i].I == id {
			out[i].X = x
			out[i].Y = y
			break
		}
	}
	return out, nil
}

// Resize returns a new entry slice with the block's size updated.
// Sizes below one cell are rejected.
func Resize(entries []domain.Layout, id string, w, h int) ([]domain.Layout, error) {
	if w < 1 || h < 1 {
		return nil, ErrInvalidBounds
	}
	out := append([]domain.Layout(nil), entries...)
	for i := range out {
		if out[i].I == id {
			out[i].W = w
			out[i].H = h
			break
		}
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────
// Auto placement — used when blocks are created by the MCP server
// or AI import rather than a user drag, so new blocks don't land on
// top of existing ones.
// ─────────────────────────────────────────────────────────────

type cell struct{ x, y, w, h int }

func (a cell) intersects(b cell) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// NextPosition scans rows top-to-bottom, columns left-to-right, and
// returns the first free slot for a block of size (w, h).
func NextPosition(entries []domain.Layout, w, h int) (int, int) {
	if len(entries) == 0 {
		return 0, 0
	}
	if w > domain.GridCols {
		w = domain.GridCols
	}

	occupied := make([]cell, len(entries))
	maxY := 0
	for i, e := range entries {
		occupied[i] = cell{e.X, e.Y, e.W, e.H}
		if bottom := e.Y + e.H; bottom > maxY {
			maxY = bottom
		}
	}

	for y := 0; y <= maxY; y++ {
		for x := 0; x+w <= domain.GridCols; x++ {
			candidate := cell{x, y, w, h}
			free := true
			for _, occ := range occupied {
				if candidate.intersects(occ) {
					free = false
					break
				}
			}
			if free {
				return x, y
			}
		}
	}
	return 0, maxY
}

// ArrangeGroup re-packs the given entries left-to-right, wrapping at
// the grid edge, starting from startY. Entry order is preserved.
func ArrangeGroup(entries []domain.Layout, startY int) []domain.Layout {
	out := append([]domain.Layout(nil), entries...)
	x, y := 0, startY
	rowH := 0
	for i := range out {
		w := out[i].W
		if w > domain.GridCols {
			w = domain.GridCols
		}
		if x+w > domain.GridCols {
			x = 0
			y += rowH
			rowH = 0
		}
		out[i].X = x
		out[i].Y = y
		x += w
		if out[i].H > rowH {
			rowH = out[i].H
		}
	}
	return out
}
