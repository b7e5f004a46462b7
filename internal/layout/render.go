package layout

import (
	"vitae/internal/content"
	"vitae/internal/domain"
)

// Rect is a fractional rectangle in the unit square. The presentation
// layer multiplies by its pixel viewport; this package never touches
// pixels or any rendering technology.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RenderNode is one node of the render instruction tree produced from
// a split-region tree.
type RenderNode struct {
	RegionID  string                `json:"regionId"`
	BlockID   string                `json:"blockId,omitempty"`
	Direction domain.SplitDirection `json:"direction,omitempty"`
	Rect      Rect                  `json:"rect"`
	Children  []RenderNode          `json:"children,omitempty"`
}

// RenderTree walks the region tree and computes fractional rects for
// every pane. Pure data recursion: no side effects, no UI coupling.
// A nil tree yields a zero node.
func RenderTree(root *domain.Region) RenderNode {
	if root == nil {
		return RenderNode{}
	}
	return renderRegion(root, Rect{X: 0, Y: 0, W: 1, H: 1}, 0)
}

func renderRegion(r *domain.Region, bounds Rect, depth int) RenderNode {
	node := RenderNode{RegionID: r.ID, Rect: bounds}
	if r.Leaf() {
		node.BlockID = r.BlockID
		return node
	}

	dir := EffectiveDirection(r, depth)
	node.Direction = dir

	offset := 0.0
	for i, child := range r.Children {
		frac := r.Ratios[i] / 100
		var childBounds Rect
		if dir == domain.SplitRow {
			childBounds = Rect{X: bounds.X + offset*bounds.W, Y: bounds.Y, W: frac * bounds.W, H: bounds.H}
		} else {
			childBounds = Rect{X: bounds.X, Y: bounds.Y + offset*bounds.H, W: bounds.W, H: frac * bounds.H}
		}
		node.Children = append(node.Children, renderRegion(child, childBounds, depth+1))
		offset += frac
	}
	return node
}

// DetectNestedColumns reports whether a content node represents
// exactly two sub-columns, which is the trigger for recursing into a
// nested split render instead of rendering flat content. Pure
// predicate; never mutates the node.
func DetectNestedColumns(n content.Node) bool {
	if n.Kind != content.KindColumnPair {
		return false
	}
	if len(n.Children) != 2 {
		return false
	}
	for _, c := range n.Children {
		if c.Kind != content.KindColumn {
			return false
		}
	}
	return true
}
