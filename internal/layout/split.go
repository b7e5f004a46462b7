package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"vitae/internal/domain"
)

// ratioEpsilon is the tolerance when checking that ratios sum to 100,
// so three-way 33.33/33.33/33.34 splits are accepted.
const ratioEpsilon = 0.1

var (
	ErrRegionNotFound = errors.New("layout: region not found")
	ErrNotLeaf        = errors.New("layout: region is not a leaf")
	ErrNotInternal    = errors.New("layout: region has no children")
	ErrInvalidRatios  = errors.New("layout: ratios must be positive and sum to 100")
)

func validRatios(ratios []float64) bool {
	if len(ratios) < 2 {
		return false
	}
	sum := 0.0
	for _, r := range ratios {
		if r <= 0 {
			return false
		}
		sum += r
	}
	return math.Abs(sum-100) <= ratioEpsilon
}

// Split converts the leaf region with regionID into an internal node
// with len(ratios) children sized per ratios. The first child inherits
// the leaf's block; the rest start empty. The input tree is never
// mutated — a new tree is returned, so a failed split leaves no
// partial state behind.
func Split(root *domain.Region, regionID string, dir domain.SplitDirection, ratios []float64) (*domain.Region, error) {
	if !validRatios(ratios) {
		return nil, ErrInvalidRatios
	}
	out := root.Clone()
	target := out.Find(regionID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}
	if !target.Leaf() {
		return nil, fmt.Errorf("%w: %s", ErrNotLeaf, regionID)
	}

	children := make([]*domain.Region, len(ratios))
	for i := range ratios {
		children[i] = &domain.Region{ID: uuid.New().String()}
	}
	children[0].BlockID = target.BlockID

	target.BlockID = ""
	target.Direction = dir
	target.Ratios = append([]float64(nil), ratios...)
	target.Children = children
	return out, nil
}

// ResizeSplit replaces the ratios of an internal node. The ratio count
// must match the child count and pass the same validation as Split.
func ResizeSplit(root *domain.Region, regionID string, ratios []float64) (*domain.Region, error) {
	if !validRatios(ratios) {
		return nil, ErrInvalidRatios
	}
	out := root.Clone()
	target := out.Find(regionID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}
	if target.Leaf() {
		return nil, fmt.Errorf("%w: %s", ErrNotInternal, regionID)
	}
	if len(ratios) != len(target.Children) {
		return nil, fmt.Errorf("%w: %d ratios for %d children", ErrInvalidRatios, len(ratios), len(target.Children))
	}
	target.Ratios = append([]float64(nil), ratios...)
	return out, nil
}

// SwapChildren exchanges two children of an internal node along with
// their ratios.
func SwapChildren(root *domain.Region, regionID string, a, b int) (*domain.Region, error) {
	out := root.Clone()
	target := out.Find(regionID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, regionID)
	}
	if target.Leaf() {
		return nil, fmt.Errorf("%w: %s", ErrNotInternal, regionID)
	}
	if a < 0 || b < 0 || a >= len(target.Children) || b >= len(target.Children) {
		return nil, fmt.Errorf("layout: child index out of range")
	}
	target.Children[a], target.Children[b] = target.Children[b], target.Children[a]
	target.Ratios[a], target.Ratios[b] = target.Ratios[b], target.Ratios[a]
	return out, nil
}

// ValidateRegions checks the structural invariants of a whole region
// tree: an internal node has at least two children, exactly one
// positive ratio per child, ratios summing to 100, and no block of its
// own. Leaves always pass. Used to vet region trees that arrive from
// outside the layout operations — collaborator replacements and
// persisted snapshots — before they can reach rendering.
func ValidateRegions(root *domain.Region) error {
	if root == nil || root.Leaf() {
		return nil
	}
	if len(root.Children) < 2 {
		return fmt.Errorf("layout: region %s has %d children, need at least 2", root.ID, len(root.Children))
	}
	if len(root.Ratios) != len(root.Children) {
		return fmt.Errorf("%w: %d ratios for %d children in region %s", ErrInvalidRatios, len(root.Ratios), len(root.Children), root.ID)
	}
	if !validRatios(root.Ratios) {
		return fmt.Errorf("%w: region %s", ErrInvalidRatios, root.ID)
	}
	if root.BlockID != "" {
		return fmt.Errorf("layout: internal region %s carries a block", root.ID)
	}
	for _, c := range root.Children {
		if err := ValidateRegions(c); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveDirection resolves a region's split axis: an explicit
// override wins, otherwise the axis alternates by nesting depth (row
// at depth 0, column at depth 1, ...).
func EffectiveDirection(r *domain.Region, depth int) domain.SplitDirection {
	if r != nil && r.Direction != "" {
		return r.Direction
	}
	if depth%2 == 0 {
		return domain.SplitRow
	}
	return domain.SplitColumn
}
