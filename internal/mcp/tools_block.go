package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"vitae/internal/content"
	"vitae/internal/domain"
	"vitae/internal/layout"
)

func (s *Server) registerBlockTools() {
	// ── insert_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("insert_block",
		mcp.WithDescription("Insert a new content block into the open resume. Content is a JSON array of nodes (paragraph, heading, bulletList, ...). Plain text may be passed instead via the text argument."),
		mcp.WithString("content", mcp.Description("JSON node array for the block content")),
		mcp.WithString("text", mcp.Description("Plain text shortcut: becomes a single paragraph")),
		mcp.WithNumber("position", mcp.Description("Insert position in the block list (appends if omitted)")),
	), s.handleInsertBlock)

	// ── update_block_content ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_block_content",
		mcp.WithDescription("Replace the content of an existing block"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("JSON node array"), mcp.Required()),
	), s.handleUpdateBlockContent)

	// ── list_blocks ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List the blocks of the open resume with their grid layout and a text preview"),
	), s.handleListBlocks)

	// ── remove_block (destructive) ─────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_block",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove a block. Requires user approval."),
		mcp.WithString("blockId", mcp.Description("Block ID to remove"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveBlock)

	// ── move_block ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_block",
		mcp.WithDescription("Move a block to a new grid position (24-column grid, origin top-left)"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New column (0-based)"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New row (0-based)"), mcp.Required()),
	), s.handleMoveBlock)

	// ── resize_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_block",
		mcp.WithDescription("Resize a block in grid cells"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width in columns (1-24)"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("New height in rows"), mcp.Required()),
	), s.handleResizeBlock)

	// ── arrange_blocks ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("arrange_blocks",
		mcp.WithDescription("Re-pack all blocks left-to-right, wrapping at the grid edge"),
		mcp.WithNumber("startY", mcp.Description("Starting row (default 0)")),
	), s.handleArrangeBlocks)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleInsertBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	var frag content.Fragment
	switch {
	case args["content"] != nil:
		raw, _ := args["content"].(string)
		if err := json.Unmarshal([]byte(raw), &frag); err != nil {
			return nil, fmt.Errorf("parse content JSON: %w", err)
		}
	case args["text"] != nil:
		text, _ := args["text"].(string)
		frag = content.Fragment{content.Paragraph(text)}
	default:
		return nil, fmt.Errorf("content or text is required")
	}

	pos := getInt(args, "position", len(sess.Store.Snapshot().Blocks))
	sess.Checkpoint()
	block := sess.Store.InsertBlock(frag, pos)

	s.emitDocumentChanged(ctx)
	return jsonResult(blockSummaryOf(block))
}

func (s *Server) handleUpdateBlockContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	blockID, _ := args["blockId"].(string)
	if blockID == "" {
		return nil, fmt.Errorf("blockId is required")
	}
	raw, _ := args["content"].(string)
	var frag content.Fragment
	if err := json.Unmarshal([]byte(raw), &frag); err != nil {
		return nil, fmt.Errorf("parse content JSON: %w", err)
	}

	sess.Checkpoint()
	sess.Store.UpdateBlockContent(blockID, frag)

	s.emitDocumentChanged(ctx)
	return textResult(fmt.Sprintf("Block %s content updated", blockID)), nil
}

func (s *Server) handleListBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}

	doc := sess.Store.Snapshot()
	summaries := make([]blockSummary, len(doc.Blocks))
	for i, b := range doc.Blocks {
		summaries[i] = blockSummaryOf(b)
	}
	return jsonResult(summaries)
}

func (s *Server) handleRemoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	blockID, _ := args["blockId"].(string)
	if blockID == "" {
		return nil, fmt.Errorf("blockId is required")
	}

	meta := fmt.Sprintf(`{"blockIds":["%s"]}`, blockID)
	approved, err := s.approval.Request("remove_block",
		fmt.Sprintf("Remove block %s", blockID), meta)
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}

	sess.Checkpoint()
	sess.Store.RemoveBlock(blockID)

	s.emitDocumentChanged(ctx)
	return textResult(fmt.Sprintf("Block %s removed", blockID)), nil
}

func (s *Server) handleMoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	blockID, _ := args["blockId"].(string)
	x := getInt(args, "x", 0)
	y := getInt(args, "y", 0)

	entries := layoutEntries(sess.Store.Snapshot())
	moved, err := layout.Move(entries, blockID, x, y)
	if err != nil {
		return nil, fmt.Errorf("move block: %w", err)
	}

	sess.Checkpoint()
	sess.Store.UpdateLayout(moved)

	s.emitDocumentChanged(ctx)
	return textResult(fmt.Sprintf("Block %s moved to (%d, %d)", blockID, x, y)), nil
}

func (s *Server) handleResizeBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	blockID, _ := args["blockId"].(string)
	w := getInt(args, "width", 0)
	h := getInt(args, "height", 0)

	entries := layoutEntries(sess.Store.Snapshot())
	resized, err := layout.Resize(entries, blockID, w, h)
	if err != nil {
		return nil, fmt.Errorf("resize block: %w", err)
	}

	sess.Checkpoint()
	sess.Store.UpdateLayout(resized)

	s.emitDocumentChanged(ctx)
	return textResult(fmt.Sprintf("Block %s resized to (%d × %d)", blockID, w, h)), nil
}

func (s *Server) handleArrangeBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	args := req.GetArguments()

	entries := layoutEntries(sess.Store.Snapshot())
	arranged := layout.ArrangeGroup(entries, getInt(args, "startY", 0))

	sess.Checkpoint()
	sess.Store.UpdateLayout(arranged)

	s.emitDocumentChanged(ctx)
	return textResult(fmt.Sprintf("Arranged %d blocks", len(arranged))), nil
}

// ── Helper types ───────────────────────────────────────────

type blockSummary struct {
	ID      string `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Preview string `json:"preview"` // first 200 chars of plain text
}

func blockSummaryOf(b domain.Block) blockSummary {
	var parts []string
	for _, n := range b.Content {
		if t := n.PlainText(); t != "" {
			parts = append(parts, t)
		}
	}
	preview := strings.Join(parts, "\n")
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return blockSummary{
		ID:      b.ID,
		X:       b.Layout.X,
		Y:       b.Layout.Y,
		Width:   b.Layout.W,
		Height:  b.Layout.H,
		Preview: preview,
	}
}

func layoutEntries(doc domain.Document) []domain.Layout {
	entries := make([]domain.Layout, len(doc.Blocks))
	for i, b := range doc.Blocks {
		entries[i] = b.Layout
	}
	return entries
}
