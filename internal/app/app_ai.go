package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"vitae/internal/domain"
	"vitae/internal/session"
)

// ============================================================
// AI collaborators: import, instruction edit, preview
// ============================================================

// ImportResumeFile reads a source file and builds a new document from
// the parsed resume. The document opens as the active session.
func (a *App) ImportResumeFile(path string) (domain.Document, error) {
	if a.ai == nil {
		return domain.Document{}, fmt.Errorf("ai gateway is not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read file: %w", err)
	}

	resume, err := a.ai.ParseResume(a.ctx, data, mimeForPath(path))
	if err != nil {
		return domain.Document{}, fmt.Errorf("parse resume: %w", err)
	}

	sess, err := a.openSession("")
	if err != nil {
		return domain.Document{}, err
	}

	doc := sess.Store.Snapshot()
	doc.Title = importTitle(resume, path)
	sess.Store.Replace(doc)

	for _, frag := range session.BlocksFromResume(*resume) {
		sess.Store.InsertBlock(frag, len(sess.Store.Snapshot().Blocks))
	}
	return sess.Store.Snapshot(), nil
}

// EditWithInstruction sends the open document plus a natural-language
// instruction to the AI gateway and swaps in the replacement snapshot.
// Failures keep the current state untouched.
func (a *App) EditWithInstruction(instruction string) (domain.Document, error) {
	if a.ai == nil {
		return domain.Document{}, fmt.Errorf("ai gateway is not configured")
	}
	sess, err := a.currentSession()
	if err != nil {
		return domain.Document{}, err
	}

	edited, err := a.ai.EditDocument(a.ctx, sess.Store.Snapshot(), instruction)
	if err != nil {
		return domain.Document{}, fmt.Errorf("edit document: %w", err)
	}

	sess.Checkpoint()
	sess.Store.Replace(*edited)
	return sess.Store.Snapshot(), nil
}

// RenderPreview asks the gateway for print-ready markup of the open
// document.
func (a *App) RenderPreview() (string, error) {
	if a.ai == nil {
		return "", fmt.Errorf("ai gateway is not configured")
	}
	sess, err := a.currentSession()
	if err != nil {
		return "", err
	}
	return a.ai.RenderMarkup(a.ctx, sess.Store.Snapshot())
}

// PickResumeFile opens a native file picker for resume source files.
func (a *App) PickResumeFile() (string, error) {
	return wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Select Resume File",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Resumes", Pattern: "*.pdf;*.docx;*.txt;*.md"},
			{DisplayName: "All Files", Pattern: "*.*"},
		},
	})
}

// onInboxFile handles a resume source file landing in the inbox
// directory: parse it and announce the imported document.
func (a *App) onInboxFile(path string, data []byte, mimeType string) {
	if a.ai == nil {
		log.Printf("[IMPORT] %s ignored: ai gateway is not configured", path)
		return
	}
	resume, err := a.ai.ParseResume(a.ctx, data, mimeType)
	if err != nil {
		log.Printf("[IMPORT] parse %s: %v", path, err)
		emitter{app: a}.Emit(a.ctx, "import:failed", map[string]string{
			"path": path, "error": err.Error(),
		})
		return
	}

	sess, err := a.openSession("")
	if err != nil {
		log.Printf("[IMPORT] open session: %v", err)
		return
	}
	doc := sess.Store.Snapshot()
	doc.Title = importTitle(resume, path)
	sess.Store.Replace(doc)
	for _, frag := range session.BlocksFromResume(*resume) {
		sess.Store.InsertBlock(frag, len(sess.Store.Snapshot().Blocks))
	}

	emitter{app: a}.Emit(a.ctx, "import:completed", map[string]string{"path": path})
}

func importTitle(r *domain.Resume, path string) string {
	if r.Personal.Name != "" {
		return r.Personal.Name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".md":
		return "text/markdown"
	default:
		return "text/plain"
	}
}
