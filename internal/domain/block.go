package domain

import "vitae/internal/content"

// GridCols is the fixed column count of the layout grid.
const GridCols = 24

// Layout is one block's slot in the grid. I mirrors the owning
// block's ID — the two are kept equal by the editor store.
type Layout struct {
	I string `json:"i"`
	X int    `json:"x"`
	Y int    `json:"y"`
	W int    `json:"w"`
	H int    `json:"h"`
}

// Valid reports whether the layout satisfies the grid constraints:
// non-negative coordinates and a size of at least one cell.
func (l Layout) Valid() bool {
	return l.X >= 0 && l.Y >= 0 && l.W >= 1 && l.H >= 1
}

// Block is one unit of document content plus its grid slot.
type Block struct {
	ID      string           `json:"id"`
	Content content.Fragment `json:"content"`
	Layout  Layout           `json:"layout"`
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	out.Content = b.Content.Clone()
	return out
}
