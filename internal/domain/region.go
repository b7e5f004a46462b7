package domain

// SplitDirection is the axis along which a region divides its children.
type SplitDirection string

const (
	SplitRow    SplitDirection = "row"
	SplitColumn SplitDirection = "column"
)

// Region is one node of the recursive split-pane tree. A leaf renders
// a single block's content (BlockID set, no children). An internal
// node has at least two children with Ratios percentages summing to
// 100. Direction is an explicit override; when empty, the effective
// direction alternates row/column by nesting depth.
type Region struct {
	ID        string         `json:"id"`
	Direction SplitDirection `json:"direction,omitempty"`
	Ratios    []float64      `json:"ratios,omitempty"`
	Children  []*Region      `json:"children,omitempty"`
	BlockID   string         `json:"blockId,omitempty"`
}

// Leaf reports whether the region renders one block directly.
func (r *Region) Leaf() bool {
	return r != nil && len(r.Children) == 0
}

// Clone returns a deep copy of the region tree.
func (r *Region) Clone() *Region {
	if r == nil {
		return nil
	}
	out := &Region{
		ID:        r.ID,
		Direction: r.Direction,
		BlockID:   r.BlockID,
	}
	if r.Ratios != nil {
		out.Ratios = append([]float64(nil), r.Ratios...)
	}
	for _, c := range r.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// Find returns the region with the given id, searching depth-first.
func (r *Region) Find(id string) *Region {
	if r == nil {
		return nil
	}
	if r.ID == id {
		return r
	}
	for _, c := range r.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}
