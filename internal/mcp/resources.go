package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── vitae://documents ──────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"vitae://documents",
		"Resume Catalog",
		mcp.WithMIMEType("application/json"),
	), s.handleDocumentsResource)

	// ── vitae://document/active ────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"vitae://document/active",
		"Open Resume",
		mcp.WithMIMEType("application/json"),
	), s.handleActiveDocumentResource)
}

func (s *Server) handleDocumentsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	infos, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleActiveDocumentResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(sess.Store.Snapshot(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
