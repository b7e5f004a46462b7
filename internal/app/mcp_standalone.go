package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"vitae/internal/docstore"
	"vitae/internal/export"
	mcpserver "vitae/internal/mcp"
	"vitae/internal/service"
	"vitae/internal/session"
	"vitae/internal/syncer"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails
// frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

var _ service.EventEmitter = noopEmitter{}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout
// with no GUI. Agents get the same tools as in-app, operating on a
// session opened over the most recently updated document (or a fresh
// one when the catalog is empty). Destructive tools auto-approve since
// there is no user to ask.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := LoadConfig()
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data dir: %v", err)
	}

	docs, err := docstore.Open(cfg.Docstore)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer docs.Close()

	docID := ""
	if infos, err := docs.List(ctx); err == nil && len(infos) > 0 {
		docID = infos[0].ID
	}

	sess, err := session.Open(ctx, docs, noopEmitter{}, docID, syncer.WithDebounce(syncer.DefaultDebounce))
	if err != nil {
		log.Fatalf("Failed to open document session: %v", err)
	}
	defer sess.Close()

	exporter, err := export.NewPDFExporter()
	if err != nil {
		log.Printf("[MCP] PDF export unavailable: %v", err)
	}

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter:     noopEmitter{},
		Docs:        docs,
		Active:      func() *session.Session { return sess },
		Exporter:    exporter,
		AutoApprove: true,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
