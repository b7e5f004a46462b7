package app

import (
	"fmt"
	"os"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// ============================================================
// PDF export
// ============================================================

// ExportPDF flushes pending edits, renders the open document, and
// writes the PDF to path. Only a complete snapshot is ever rendered.
func (a *App) ExportPDF(path string) error {
	if a.exporter == nil {
		return fmt.Errorf("pdf export is unavailable (no usable font)")
	}
	sess, err := a.currentSession()
	if err != nil {
		return err
	}

	if err := sess.Sync.FlushNow(); err != nil {
		// persistence failure doesn't block export; the user still
		// gets their PDF
		wailsRuntime.LogErrorf(a.ctx, "flush before export: %v", err)
	}

	data, err := a.exporter.Render(sess.Store.Snapshot())
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// PickExportPath opens a native save dialog for the PDF destination.
func (a *App) PickExportPath(defaultName string) (string, error) {
	if defaultName == "" {
		defaultName = "resume.pdf"
	}
	return wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export PDF",
		DefaultFilename: defaultName,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "PDF", Pattern: "*.pdf"},
		},
	})
}

// RunBackupNow takes an immediate local backup of all documents.
func (a *App) RunBackupNow() error {
	if a.backups == nil {
		return fmt.Errorf("backup scheduler is not running")
	}
	return a.backups.RunOnce(a.ctx)
}
