package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get when no document has the given id.
// The sync controller branches on it to decide create vs update.
var ErrNotFound = errors.New("docstore: document not found")

// Record is one persisted document: opaque snapshot bytes keyed by a
// store-assigned identifier.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Data      []byte    `json:"data"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Info is a catalog entry (no snapshot payload), used by the document
// picker.
type Info struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store abstracts the persistence backend for resume documents.
type Store interface {
	// Get fetches a document by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Create persists a new document and returns the backend-assigned
	// identifier.
	Create(ctx context.Context, title string, data []byte) (string, error)

	// Update replaces the snapshot of an existing document.
	Update(ctx context.Context, id string, title string, data []byte) error

	// Delete removes a document. Idempotent.
	Delete(ctx context.Context, id string) error

	// List returns catalog entries, most recently updated first.
	List(ctx context.Context) ([]Info, error)

	// Close releases the underlying connection.
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	Driver string // "sqlite" (default), "postgres", "mysql", "mongo"
	Path   string // sqlite file path
	DSN    string // postgres/mysql DSN or mongo URI
	DBName string // mongo database name
}

// Open creates a Store for the configured driver.
func Open(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return openSQLite(cfg.Path)
	case "postgres":
		return openSQL("postgres", cfg.DSN)
	case "mysql":
		return openSQL("mysql", cfg.DSN)
	case "mongo":
		return openMongo(cfg.DSN, cfg.DBName)
	default:
		return nil, fmt.Errorf("docstore: unsupported driver %q", cfg.Driver)
	}
}
