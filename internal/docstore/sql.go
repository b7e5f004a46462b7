package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/google/uuid"
)

// sqlStore is the shared implementation for MySQL and Postgres. The
// two differ only in placeholder syntax.
type sqlStore struct {
	driverName string
	db         *sql.DB
}

func openSQL(driverName, dsn string) (*sqlStore, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	// Sensible pool settings for a desktop app
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	s := &sqlStore{driverName: driverName, db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *sqlStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		id VARCHAR(64) PRIMARY KEY,
		title TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	return err
}

// placeholder renders the n-th bind parameter for the active driver
// ($1 for postgres, ? for mysql).
func (s *sqlStore) placeholder(n int) string {
	if s.driverName == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *sqlStore) Get(ctx context.Context, id string) (*Record, error) {
	r := &Record{}
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, data, updated_at FROM documents WHERE id = `+s.placeholder(1), id,
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

func (s *sqlStore) Create(ctx context.Context, title string, data []byte) (string, error) {
	id := uuid.New().String()
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO documents (id, title, data, created_at, updated_at) VALUES (%s, %s, %s, %s, %s)`,
			s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4), s.placeholder(5)),
		id, title, string(data), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	return id, nil
}

func (s *sqlStore) Update(ctx context.Context, id string, title string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE documents SET title = %s, data = %s, updated_at = %s WHERE id = %s`,
			s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4)),
		title, string(data), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE id = `+s.placeholder(1), id)
	return err
}

func (s *sqlStore) List(ctx context.Context) ([]Info, error) {
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

func (s *sqlStore) Close() error {
	return s.db.Close()
}
