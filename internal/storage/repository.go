package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Keys for the persisted state. Nothing else is stored.
const (
	KeyDisclaimerAccepted = "disclaimer.accepted"
	KeySessionFragment    = "session.fragment"
)

// Repository is a small sqlite-backed key-value store. It holds the one-time
// disclaimer acknowledgment and the resume fragment.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *Repository) CheckWritable(ctx context.Context) error {
	if err := r.Set(ctx, "health.check", "ok"); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// Get returns the stored value. found is false for unknown keys.
func (r *Repository) Get(ctx context.Context, key string) (value string, found bool, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the value in place, so repeated writes to the same key
// never accumulate history.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO kv (key, value)
VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *Repository) GetBool(ctx context.Context, key string) (bool, error) {
	value, found, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return found && value == "true", nil
}

func (r *Repository) SetBool(ctx context.Context, key string, v bool) error {
	value := "false"
	if v {
		value = "true"
	}
	return r.Set(ctx, key, value)
}
