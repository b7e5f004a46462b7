package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// sqliteStore is the local backend: a single-file SQLite database.
type sqliteStore struct {
	db *sql.DB
}

func openSQLite(path string) (*sqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer — limit to single connection to prevent SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &sqliteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *sqliteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		data TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*Record, error) {
	r := &Record{}
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, data, updated_at FROM documents WHERE id = ?`, id,
	).Scan(&r.ID, &r.Title, &data, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	r.Data = []byte(data)
	return r, nil
}

func (s *sqliteStore) Create(ctx context.Context, title string, data []byte) (string, error) {
	id := uuid.New().String()
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, title, string(data), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	return id, nil
}

func (s *sqliteStore) Update(ctx context.Context, id string, title string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE documents SET title = ?, data = ?, updated_at = ? WHERE id = ?`,
		title, string(data), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	return err
}

func (s *sqliteStore) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, updated_at FROM documents ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var in Info
		if err := rows.Scan(&in.ID, &in.Title, &in.UpdatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, in)
	}
	return infos, rows.Err()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
