package layout_test

import (
	"errors"
	"math"
	"testing"

	"vitae/internal/content"
	"vitae/internal/domain"
	"vitae/internal/layout"
)

func leaf(id, blockID string) *domain.Region {
	return &domain.Region{ID: id, BlockID: blockID}
}

func TestSplit_RejectsRatiosNotSummingTo100(t *testing.T) {
	root := leaf("root", "b1")

	if _, err := layout.Split(root, "root", domain.SplitRow, []float64{60, 30}); !errors.Is(err, layout.ErrInvalidRatios) {
		t.Errorf("[60, 30]: got %v, want ErrInvalidRatios", err)
	}
	if _, err := layout.Split(root, "root", domain.SplitRow, []float64{-10, 110}); !errors.Is(err, layout.ErrInvalidRatios) {
		t.Errorf("negative ratio: got %v, want ErrInvalidRatios", err)
	}
	if _, err := layout.Split(root, "root", domain.SplitRow, []float64{100}); !errors.Is(err, layout.ErrInvalidRatios) {
		t.Errorf("single ratio: got %v, want ErrInvalidRatios", err)
	}
}

func TestSplit_AcceptsNearHundredSums(t *testing.T) {
	// three-way 33.33 splits sum to 99.99 and must be accepted
	root := leaf("root", "b1")
	if _, err := layout.Split(root, "root", domain.SplitRow, []float64{33.33, 33.33, 33.33}); err != nil {
		t.Errorf("33.33 x3: unexpected error %v", err)
	}
}

func TestSplit_FirstChildInheritsBlock(t *testing.T) {
	root := leaf("root", "b1")
	out, err := layout.Split(root, "root", domain.SplitRow, []float64{60, 40})
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	if out.Leaf() {
		t.Fatal("split root should be internal")
	}
	if out.BlockID != "" {
		t.Error("internal node should not carry a block")
	}
	if out.Children[0].BlockID != "b1" {
		t.Errorf("first child should inherit block, got %q", out.Children[0].BlockID)
	}
	if out.Children[1].BlockID != "" {
		t.Error("second child should start empty")
	}
	if out.Children[0].ID == "" || out.Children[0].ID == out.Children[1].ID {
		t.Error("children need distinct non-empty ids")
	}
	// input tree untouched
	if !root.Leaf() || root.BlockID != "b1" {
		t.Error("Split mutated the input tree")
	}
}

func TestSplit_NonLeafRejected(t *testing.T) {
	root := leaf("root", "b1")
	once, err := layout.Split(root, "root", domain.SplitRow, []float64{50, 50})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if _, err := layout.Split(once, "root", domain.SplitRow, []float64{50, 50}); !errors.Is(err, layout.ErrNotLeaf) {
		t.Errorf("splitting an internal node: got %v, want ErrNotLeaf", err)
	}
}

func TestSplit_UnknownRegion(t *testing.T) {
	root := leaf("root", "b1")
	if _, err := layout.Split(root, "nope", domain.SplitRow, []float64{50, 50}); !errors.Is(err, layout.ErrRegionNotFound) {
		t.Errorf("got %v, want ErrRegionNotFound", err)
	}
}

func TestResizeSplit_RatioCountMustMatchChildren(t *testing.T) {
	root := leaf("root", "b1")
	once, _ := layout.Split(root, "root", domain.SplitRow, []float64{50, 50})

	if _, err := layout.ResizeSplit(once, "root", []float64{30, 30, 40}); !errors.Is(err, layout.ErrInvalidRatios) {
		t.Errorf("3 ratios for 2 children: got %v, want ErrInvalidRatios", err)
	}

	resized, err := layout.ResizeSplit(once, "root", []float64{70, 30})
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if resized.Ratios[0] != 70 || resized.Ratios[1] != 30 {
		t.Errorf("ratios not applied: %v", resized.Ratios)
	}
}

func TestSwapChildren_SwapsPanesAndRatios(t *testing.T) {
	root := leaf("root", "b1")
	once, _ := layout.Split(root, "root", domain.SplitRow, []float64{60, 40})

	swapped, err := layout.SwapChildren(once, "root", 0, 1)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if swapped.Children[1].BlockID != "b1" {
		t.Error("block did not move with its pane")
	}
	if swapped.Ratios[0] != 40 || swapped.Ratios[1] != 60 {
		t.Errorf("ratios should follow panes: %v", swapped.Ratios)
	}
}

func TestEffectiveDirection_AlternatesByDepth(t *testing.T) {
	r := &domain.Region{ID: "x"}
	if got := layout.EffectiveDirection(r, 0); got != domain.SplitRow {
		t.Errorf("depth 0: got %s, want row", got)
	}
	if got := layout.EffectiveDirection(r, 1); got != domain.SplitColumn {
		t.Errorf("depth 1: got %s, want column", got)
	}
	if got := layout.EffectiveDirection(r, 2); got != domain.SplitRow {
		t.Errorf("depth 2: got %s, want row", got)
	}
}

func TestEffectiveDirection_OverrideWins(t *testing.T) {
	r := &domain.Region{ID: "x", Direction: domain.SplitColumn}
	if got := layout.EffectiveDirection(r, 0); got != domain.SplitColumn {
		t.Errorf("explicit direction ignored: got %s", got)
	}
}

func TestRenderTree_ComputesFractionalRects(t *testing.T) {
	root := leaf("root", "b1")
	once, _ := layout.Split(root, "root", domain.SplitRow, []float64{25, 75})

	tree := layout.RenderTree(once)
	if tree.Rect != (layout.Rect{X: 0, Y: 0, W: 1, H: 1}) {
		t.Errorf("root rect should be the unit square: %+v", tree.Rect)
	}
	left, right := tree.Children[0], tree.Children[1]
	if math.Abs(left.Rect.W-0.25) > 1e-9 || math.Abs(right.Rect.W-0.75) > 1e-9 {
		t.Errorf("row split widths wrong: %v %v", left.Rect.W, right.Rect.W)
	}
	if math.Abs(right.Rect.X-0.25) > 1e-9 {
		t.Errorf("second pane should start where the first ends: %v", right.Rect.X)
	}
	if left.BlockID != "b1" {
		t.Errorf("leaf render node should carry its block, got %q", left.BlockID)
	}
}

func TestRenderTree_NestedSplitUsesAlternatedAxis(t *testing.T) {
	root := leaf("root", "b1")
	once, _ := layout.Split(root, "root", domain.SplitRow, []float64{50, 50})
	childID := once.Children[1].ID
	twice, err := layout.Split(once, childID, "", []float64{50, 50})
	if err != nil {
		t.Fatalf("nested split: %v", err)
	}

	tree := layout.RenderTree(twice)
	nested := tree.Children[1]
	if nested.Direction != domain.SplitColumn {
		t.Errorf("depth-1 split should default to column, got %s", nested.Direction)
	}
	top, bottom := nested.Children[0], nested.Children[1]
	if math.Abs(top.Rect.H-0.5) > 1e-9 || math.Abs(bottom.Rect.Y-0.5) > 1e-9 {
		t.Errorf("column split rects wrong: %+v %+v", top.Rect, bottom.Rect)
	}
}

func TestRenderTree_NilTree(t *testing.T) {
	if got := layout.RenderTree(nil); got.RegionID != "" || got.Children != nil {
		t.Errorf("nil tree should render as a zero node, got %+v", got)
	}
}

func TestValidateRegions_AcceptsBuiltTrees(t *testing.T) {
	if err := layout.ValidateRegions(nil); err != nil {
		t.Errorf("nil tree: %v", err)
	}
	if err := layout.ValidateRegions(leaf("root", "b1")); err != nil {
		t.Errorf("leaf: %v", err)
	}

	root := leaf("root", "b1")
	once, _ := layout.Split(root, "root", domain.SplitRow, []float64{50, 50})
	twice, _ := layout.Split(once, once.Children[1].ID, "", []float64{33.33, 33.33, 33.33})
	if err := layout.ValidateRegions(twice); err != nil {
		t.Errorf("nested split built by Split: %v", err)
	}
}

func TestValidateRegions_RejectsCorruptTrees(t *testing.T) {
	cases := []struct {
		name string
		root *domain.Region
	}{
		{"ratio count mismatch", &domain.Region{ID: "root",
			Ratios:   []float64{60},
			Children: []*domain.Region{leaf("a", ""), leaf("b", "")}}},
		{"ratios off 100", &domain.Region{ID: "root",
			Ratios:   []float64{60, 20},
			Children: []*domain.Region{leaf("a", ""), leaf("b", "")}}},
		{"negative ratio", &domain.Region{ID: "root",
			Ratios:   []float64{-10, 110},
			Children: []*domain.Region{leaf("a", ""), leaf("b", "")}}},
		{"single child", &domain.Region{ID: "root",
			Ratios:   []float64{100},
			Children: []*domain.Region{leaf("a", "")}}},
		{"internal node with block", &domain.Region{ID: "root", BlockID: "b1",
			Ratios:   []float64{50, 50},
			Children: []*domain.Region{leaf("a", ""), leaf("b", "")}}},
		{"corrupt grandchild", &domain.Region{ID: "root",
			Ratios: []float64{50, 50},
			Children: []*domain.Region{
				leaf("a", ""),
				{ID: "b", Ratios: []float64{70},
					Children: []*domain.Region{leaf("c", ""), leaf("d", "")}},
			}}},
	}
	for _, tc := range cases {
		if err := layout.ValidateRegions(tc.root); err == nil {
			t.Errorf("%s: corrupt tree accepted", tc.name)
		}
	}
}

func TestDetectNestedColumns(t *testing.T) {
	pair := content.ColumnPair(
		content.Fragment{content.Paragraph("left")},
		content.Fragment{content.Paragraph("right")},
	)
	if !layout.DetectNestedColumns(pair) {
		t.Error("well-formed column pair not detected")
	}

	if layout.DetectNestedColumns(content.Paragraph("plain")) {
		t.Error("paragraph misdetected as column pair")
	}

	odd := pair.Clone()
	odd.Children = odd.Children[:1]
	if layout.DetectNestedColumns(odd) {
		t.Error("single-column pair should not be detected")
	}
}
