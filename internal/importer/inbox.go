package importer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileHandler is called with the contents of a resume file dropped
// into the inbox directory.
type FileHandler func(path string, data []byte, mimeType string)

// mimeTypes maps the source-file extensions the parse collaborator
// accepts. Anything else in the inbox is ignored.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".md":   "text/markdown",
}

// Inbox watches a drop directory for resume source files. When a file
// lands (or is rewritten), the handler receives its bytes, typically to
// forward to the AI parse endpoint.
type Inbox struct {
	watcher *fsnotify.Watcher
	handler FileHandler
	dir     string

	mu   sync.Mutex
	seen map[string]int64 // path -> size at last dispatch, dedupes write bursts
}

// New creates an inbox watching dir, creating it if needed.
func New(dir string, handler FileHandler) (*Inbox, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create inbox dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch inbox dir: %w", err)
	}

	in := &Inbox{
		watcher: watcher,
		handler: handler,
		dir:     dir,
		seen:    make(map[string]int64),
	}
	go in.watchLoop()
	return in, nil
}

// Dir returns the watched directory.
func (in *Inbox) Dir() string {
	return in.dir
}

// Close stops the watcher.
func (in *Inbox) Close() error {
	return in.watcher.Close()
}

func (in *Inbox) watchLoop() {
	for {
		select {
		case event, ok := <-in.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				in.dispatch(event.Name)
			}
		case err, ok := <-in.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[IMPORT] watcher error: %v", err)
		}
	}
}

func (in *Inbox) dispatch(path string) {
	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return
	}

	in.mu.Lock()
	if in.seen[path] == info.Size() {
		in.mu.Unlock()
		return
	}
	in.seen[path] = info.Size()
	in.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[IMPORT] read %s: %v", path, err)
		return
	}
	if in.handler != nil {
		in.handler(path, data, mime)
	}
}
