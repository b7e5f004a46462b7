package app

import (
	"fmt"

	"vitae/internal/domain"
	"vitae/internal/layout"
)

// ============================================================
// Split regions
// ============================================================

// SplitRegion splits a leaf region into panes sized by ratios
// (percentages summing to 100). An empty direction lets the axis
// alternate by nesting depth. An empty regionId splits the root,
// creating it first if the document has no splits yet.
func (a *App) SplitRegion(regionID, direction string, ratios []float64) (*domain.Region, error) {
	sess, err := a.currentSession()
	if err != nil {
		return nil, err
	}

	var dir domain.SplitDirection
	switch direction {
	case "row":
		dir = domain.SplitRow
	case "column":
		dir = domain.SplitColumn
	case "":
	default:
		return nil, fmt.Errorf("direction must be row or column")
	}

	doc := sess.Store.Snapshot()
	root := doc.Regions
	if root == nil {
		root = &domain.Region{ID: "root"}
	}
	if regionID == "" {
		regionID = root.ID
	}

	split, err := layout.Split(root, regionID, dir, ratios)
	if err != nil {
		return nil, err
	}

	sess.Checkpoint()
	sess.Store.SetRegions(split)
	return split, nil
}

// ResizeSplit replaces the ratios of an existing split, as a divider
// drag ends.
func (a *App) ResizeSplit(regionID string, ratios []float64) (*domain.Region, error) {
	sess, err := a.currentSession()
	if err != nil {
		return nil, err
	}
	doc := sess.Store.Snapshot()
	if doc.Regions == nil {
		return nil, fmt.Errorf("document has no splits")
	}
	resized, err := layout.ResizeSplit(doc.Regions, regionID, ratios)
	if err != nil {
		return nil, err
	}
	sess.Checkpoint()
	sess.Store.SetRegions(resized)
	return resized, nil
}

// SwapSplitChildren exchanges two panes of a split.
func (a *App) SwapSplitChildren(regionID string, i, j int) (*domain.Region, error) {
	sess, err := a.currentSession()
	if err != nil {
		return nil, err
	}
	doc := sess.Store.Snapshot()
	if doc.Regions == nil {
		return nil, fmt.Errorf("document has no splits")
	}
	swapped, err := layout.SwapChildren(doc.Regions, regionID, i, j)
	if err != nil {
		return nil, err
	}
	sess.Checkpoint()
	sess.Store.SetRegions(swapped)
	return swapped, nil
}

// RenderLayout resolves the split tree into normalized rectangles for
// the frontend to position panes with.
func (a *App) RenderLayout() (*layout.RenderNode, error) {
	sess, err := a.currentSession()
	if err != nil {
		return nil, err
	}
	doc := sess.Store.Snapshot()
	if doc.Regions == nil {
		return nil, nil
	}
	tree := layout.RenderTree(doc.Regions)
	return &tree, nil
}
