package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"vitae/internal/ai"
	"vitae/internal/backup"
	"vitae/internal/docstore"
	"vitae/internal/export"
	"vitae/internal/importer"
	mcpserver "vitae/internal/mcp"
	"vitae/internal/session"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg Config

	docs     docstore.Store
	exporter *export.PDFExporter
	ai       *ai.HTTPClient
	inbox    *importer.Inbox
	backups  *backup.Scheduler
	mcpSrv   *mcpserver.Server

	mu   sync.Mutex
	sess *session.Session
}

// New creates a new App.
func New() *App {
	return &App{cfg: LoadConfig()}
}

// emitter adapts wailsRuntime.EventsEmit to the EventEmitter interface
// the core packages depend on.
type emitter struct {
	app *App
}

func (e emitter) Emit(_ context.Context, event string, data any) {
	if e.app.ctx != nil {
		wailsRuntime.EventsEmit(e.app.ctx, event, data)
	}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	if err := os.MkdirAll(a.cfg.DataDir, 0755); err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to create data dir: %v", err)
		return
	}

	docs, err := docstore.Open(a.cfg.Docstore)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open document store: %v", err)
		return
	}
	a.docs = docs

	if a.cfg.AIBaseURL != "" {
		a.ai = ai.NewHTTPClient(a.cfg.AIBaseURL)
	}

	exporter, err := export.NewPDFExporter()
	if err != nil {
		// export stays disabled; everything else works
		wailsRuntime.LogErrorf(ctx, "PDF export unavailable: %v", err)
	}
	a.exporter = exporter

	inbox, err := importer.New(a.cfg.InboxDir(), a.onInboxFile)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Import inbox unavailable: %v", err)
	}
	a.inbox = inbox

	a.backups = backup.New(docs, a.cfg.BackupDir())
	if err := a.backups.Start(a.cfg.BackupSchedule); err != nil {
		wailsRuntime.LogErrorf(ctx, "Backup scheduler: %v", err)
	}

	a.mcpSrv = mcpserver.New(ctx, mcpserver.Deps{
		Emitter:  emitter{app: a},
		Docs:     docs,
		Active:   a.activeSession,
		Exporter: exporter,
	})
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	a.mu.Lock()
	sess := a.sess
	a.sess = nil
	a.mu.Unlock()
	if sess != nil {
		sess.Close()
	}

	if a.backups != nil {
		a.backups.Stop()
	}
	if a.inbox != nil {
		a.inbox.Close()
	}
	if a.docs != nil {
		a.docs.Close()
	}
}

// activeSession is handed to the MCP server so agent tools operate on
// whatever document the user has open.
func (a *App) activeSession() *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sess
}

// currentSession returns the open session or an error for bindings.
func (a *App) currentSession() (*session.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sess == nil {
		return nil, fmt.Errorf("no document is open")
	}
	return a.sess, nil
}

// ApproveAction forwards a user approval for a pending MCP action.
func (a *App) ApproveAction(actionID string) {
	if a.mcpSrv != nil {
		a.mcpSrv.Approve(actionID)
	}
}

// RejectAction forwards a user rejection for a pending MCP action.
func (a *App) RejectAction(actionID string) {
	if a.mcpSrv != nil {
		a.mcpSrv.Reject(actionID)
	}
}
