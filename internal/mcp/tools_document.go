package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDocumentTools() {
	// ── get_document ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Return the full document snapshot: blocks, layout, and split regions"),
	), s.handleGetDocument)

	// ── list_documents ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List all persisted resumes in the backend catalog"),
	), s.handleListDocuments)

	// ── save_now ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_now",
		mcp.WithDescription("Flush the open document to the backend immediately, bypassing the debounce"),
	), s.handleSaveNow)

	// ── undo / redo ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last mutation on the open document"),
	), s.handleUndo)
	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the most recently undone mutation"),
	), s.handleRedo)

	// ── export_pdf ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_pdf",
		mcp.WithDescription("Render the open document to a PDF file on disk"),
		mcp.WithString("path", mcp.Description("Destination file path"), mcp.Required()),
	), s.handleExportPDF)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleGetDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	return jsonResult(sess.Store.Snapshot())
}

func (s *Server) handleListDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return jsonResult(infos)
}

func (s *Server) handleSaveNow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	if err := sess.Sync.FlushNow(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return textResult(fmt.Sprintf("Saved as document %s", sess.Sync.DocumentID())), nil
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	if !sess.Undo() {
		return textResult("Nothing to undo"), nil
	}
	s.emitDocumentChanged(ctx)
	return textResult("Undone"), nil
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	if !sess.Redo() {
		return textResult("Nothing to redo"), nil
	}
	s.emitDocumentChanged(ctx)
	return textResult("Redone"), nil
}

func (s *Server) handleExportPDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	if s.exporter == nil {
		return nil, fmt.Errorf("pdf export is unavailable (no usable font)")
	}

	path, _ := req.GetArguments()["path"].(string)
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := s.exporter.Render(sess.Store.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return textResult(fmt.Sprintf("Exported %d bytes to %s", len(data), path)), nil
}
