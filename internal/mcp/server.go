package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vitae/internal/docstore"
	"vitae/internal/export"
	"vitae/internal/session"
)

// Server exposes the resume editor to AI agents over MCP: tools for
// block and layout mutations, resources for reading document state.
type Server struct {
	mcp      *server.MCPServer
	emitter  EventEmitter
	approval *ApprovalQueue

	docs     docstore.Store
	active   func() *session.Session
	exporter *export.PDFExporter
}

// Deps holds everything injected from the app layer.
type Deps struct {
	Emitter EventEmitter
	Docs    docstore.Store
	// Active returns the session for the currently open document, or
	// nil when no document is open.
	Active   func() *session.Session
	Exporter *export.PDFExporter
	// AutoApprove skips the human approval round-trip for destructive
	// tools. Set in standalone mode, where no frontend is attached.
	AutoApprove bool
}

// New creates and configures an MCP server with all tools and resources.
func New(ctx context.Context, deps Deps) *Server {
	approval := NewApprovalQueue(ctx, deps.Emitter)
	approval.autoApprove = deps.AutoApprove

	s := &Server{
		emitter:  deps.Emitter,
		approval: approval,
		docs:     deps.Docs,
		active:   deps.Active,
		exporter: deps.Exporter,
	}

	s.mcp = server.NewMCPServer(
		"vitae-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerBlockTools()
	s.registerLayoutTools()
	s.registerDocumentTools()
	s.registerResources()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) {
	s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) {
	s.approval.Reject(actionID)
}

// ── Helpers ────────────────────────────────────────────────

// activeSession returns the open session or an error for tool handlers.
func (s *Server) activeSession() (*session.Session, error) {
	sess := s.active()
	if sess == nil {
		return nil, fmt.Errorf("no document is open")
	}
	return sess, nil
}

// emitDocumentChanged notifies the frontend that an agent mutated the
// document.
func (s *Server) emitDocumentChanged(ctx context.Context) {
	s.emitter.Emit(ctx, "mcp:document-changed", nil)
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func getInt(args map[string]any, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func getRatios(args map[string]any) []float64 {
	raw, ok := args["ratios"].([]any)
	if !ok {
		return nil
	}
	ratios := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil
		}
		ratios = append(ratios, f)
	}
	return ratios
}
