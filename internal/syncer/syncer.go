package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"vitae/internal/docstore"
	"vitae/internal/domain"
	"vitae/internal/service"
)

// DefaultDebounce is the quiet period after the last edit before a
// flush is attempted.
const DefaultDebounce = 1000 * time.Millisecond

// Events emitted toward the UI. Save failures are reported under
// their own event so the user is never misled about whether edits
// reached the backend.
const (
	EventSaved      = "document:saved"
	EventSaveFailed = "document:save-failed"
)

// Controller keeps the persistence backend eventually consistent with
// the editor store, without flooding it with writes.
//
// Mechanics: every snapshot restarts a trailing debounce timer; only
// the latest snapshot inside the quiet period is flushed. At most one
// flush is in flight per document — a debounce firing mid-flush sets
// a queued flag and the queued flush runs right after, so the backend
// always sees a monotonically later snapshot, never an interleaving.
type Controller struct {
	store    docstore.Store
	emitter  service.EventEmitter
	debounce time.Duration

	onID func(string)

	mu       sync.Mutex
	timer    *time.Timer
	latest   *domain.Document
	docID    string
	inFlight bool
	queued   bool
	closed   bool
	lastErr  error
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the debounce window (tests use a short one).
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithIDCallback registers fn to receive the id the backend assigns
// whenever a flush creates the document. Called outside the
// controller's lock, after the id has been captured.
func WithIDCallback(fn func(string)) Option {
	return func(c *Controller) { c.onID = fn }
}

// New creates a controller writing to store. If the document was
// hydrated from a persisted snapshot, seed the identifier with
// SetDocumentID before the first edit.
func New(store docstore.Store, emitter service.EventEmitter, opts ...Option) *Controller {
	c := &Controller{store: store, emitter: emitter, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDocumentID seeds the persisted identifier for an existing document.
func (c *Controller) SetDocumentID(id string) {
	c.mu.Lock()
	c.docID = id
	c.mu.Unlock()
}

// DocumentID returns the identifier captured from the backend, or ""
// if the document has never been flushed.
func (c *Controller) DocumentID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docID
}

// LastError returns the error from the most recent flush attempt, or
// nil. A successful flush clears it.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Note records a new snapshot and (re)starts the debounce timer. This
// is the Subscriber the editor store fans out to. Restarting the timer
// cancels the pending flush's scheduling but never an in-flight write.
func (c *Controller) Note(doc domain.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.latest = &doc
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.flush)
}

// FlushNow bypasses the debounce and persists the latest snapshot
// synchronously. Used before export and on document close.
func (c *Controller) FlushNow() error {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.flush()
	return c.LastError()
}

// Close stops the pending timer. An in-flight flush runs to completion.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) flush() {
	c.mu.Lock()
	if c.inFlight {
		// a flush is already running: queue exactly one follow-up
		c.queued = true
		c.mu.Unlock()
		return
	}
	if c.latest == nil {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	doc := *c.latest
	docID := c.docID
	c.mu.Unlock()

	newID, err := c.write(docID, doc)

	c.mu.Lock()
	c.inFlight = false
	c.lastErr = err
	if err == nil && newID != "" {
		c.docID = newID
	}
	rerun := c.queued
	c.queued = false
	c.mu.Unlock()

	if err == nil && newID != "" && c.onID != nil {
		c.onID(newID)
	}

	ctx := context.Background()
	if err != nil {
		log.Printf("[SYNC] flush failed: %v", err)
		c.emitter.Emit(ctx, EventSaveFailed, map[string]string{"error": err.Error()})
	} else {
		c.emitter.Emit(ctx, EventSaved, map[string]string{"id": c.DocumentID()})
	}

	if rerun {
		c.flush()
	}
}

// write persists one snapshot. The create-vs-update decision is a
// deliberate two-step protocol: (1) query the backend by id, (2)
// branch to insert or update. A document that was deleted remotely is
// therefore re-created rather than erroring.
func (c *Controller) write(docID string, doc domain.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	ctx := context.Background()

	if docID == "" {
		return c.store.Create(ctx, doc.Title, data)
	}

	_, err = c.store.Get(ctx, docID)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return c.store.Create(ctx, doc.Title, data)
	case err != nil:
		return "", err
	default:
		return "", c.store.Update(ctx, docID, doc.Title, data)
	}
}
