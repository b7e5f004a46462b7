package domain

// Document is the ordered collection of blocks under one persistence
// identifier. Slice order is display/tab order; render order is
// driven by layout coordinates. Regions is the optional split-pane
// layout for multi-column sections; nil means a flat grid.
type Document struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Blocks  []Block `json:"blocks"`
	Regions *Region `json:"regions,omitempty"`
}

// Clone returns a deep copy of the document. Snapshots handed to
// observers are clones so no caller can alias store-internal state.
func (d Document) Clone() Document {
	out := d
	if d.Blocks != nil {
		out.Blocks = make([]Block, len(d.Blocks))
		for i, b := range d.Blocks {
			out.Blocks[i] = b.Clone()
		}
	}
	out.Regions = d.Regions.Clone()
	return out
}

// BlockByID returns the block with the given id, or false.
func (d Document) BlockByID(id string) (Block, bool) {
	for _, b := range d.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}
