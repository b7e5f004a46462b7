package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"vitae/internal/domain"
	"vitae/internal/layout"
)

func (s *Server) registerLayoutTools() {
	// ── split_region ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("split_region",
		mcp.WithDescription("Split a leaf region of the page into sized panes. Ratios are percentages that must sum to 100. Direction defaults to alternating by depth."),
		mcp.WithString("regionId", mcp.Description("Leaf region ID (empty splits the root)")),
		mcp.WithString("direction", mcp.Description("row or column (optional)")),
		mcp.WithArray("ratios", mcp.Description("Pane sizes in percent, e.g. [60, 40]"), mcp.Required()),
	), s.handleSplitRegion)

	// ── resize_split ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_split",
		mcp.WithDescription("Change the pane ratios of an existing split"),
		mcp.WithString("regionId", mcp.Description("Internal region ID"), mcp.Required()),
		mcp.WithArray("ratios", mcp.Description("New pane sizes in percent"), mcp.Required()),
	), s.handleResizeSplit)

	// ── swap_split_children ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("swap_split_children",
		mcp.WithDescription("Swap two panes of a split, keeping their sizes"),
		mcp.WithString("regionId", mcp.Description("Internal region ID"), mcp.Required()),
		mcp.WithNumber("a", mcp.Description("First pane index"), mcp.Required()),
		mcp.WithNumber("b", mcp.Description("Second pane index"), mcp.Required()),
	), s.handleSwapSplitChildren)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleSplitRegion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	ratios := getRatios(args)
	if ratios == nil {
		return nil, fmt.Errorf("ratios must be an array of numbers")
	}

	var dir domain.SplitDirection
	switch d, _ := args["direction"].(string); d {
	case "row":
		dir = domain.SplitRow
	case "column":
		dir = domain.SplitColumn
	case "":
		// resolved later by nesting depth
	default:
		return nil, fmt.Errorf("direction must be row or column")
	}

	doc := sess.Store.Snapshot()
	root := doc.Regions
	if root == nil {
		root = &domain.Region{ID: "root"}
	}

	regionID, _ := args["regionId"].(string)
	if regionID == "" {
		regionID = root.ID
	}

	split, err := layout.Split(root, regionID, dir, ratios)
	if err != nil {
		return nil, fmt.Errorf("split region: %w", err)
	}

	sess.Checkpoint()
	sess.Store.SetRegions(split)

	s.emitDocumentChanged(ctx)
	return jsonResult(split)
}

func (s *Server) handleResizeSplit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	regionID, _ := args["regionId"].(string)
	ratios := getRatios(args)
	if ratios == nil {
		return nil, fmt.Errorf("ratios must be an array of numbers")
	}

	doc := sess.Store.Snapshot()
	if doc.Regions == nil {
		return nil, fmt.Errorf("document has no splits")
	}

	resized, err := layout.ResizeSplit(doc.Regions, regionID, ratios)
	if err != nil {
		return nil, fmt.Errorf("resize split: %w", err)
	}

	sess.Checkpoint()
	sess.Store.SetRegions(resized)

	s.emitDocumentChanged(ctx)
	return textResult(fmt.Sprintf("Region %s resized", regionID)), nil
}

func (s *Server) handleSwapSplitChildren(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	regionID, _ := args["regionId"].(string)
	a := getInt(args, "a", -1)
	b := getInt(args, "b", -1)

	doc := sess.Store.Snapshot()
	if doc.Regions == nil {
		return nil, fmt.Errorf("document has no splits")
	}

	swapped, err := layout.SwapChildren(doc.Regions, regionID, a, b)
	if err != nil {
		return nil, fmt.Errorf("swap children: %w", err)
	}

	sess.Checkpoint()
	sess.Store.SetRegions(swapped)

	s.emitDocumentChanged(ctx)
	return textResult(fmt.Sprintf("Swapped panes %d and %d of region %s", a, b, regionID)), nil
}
