// Package sqlite implements the key-value driver on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/hrygo/studybuddy/internal/profile"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// DB is the SQLite key-value driver.
type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens the SQLite database at the profile DSN and ensures the kv
// table exists.
func NewDB(profile *profile.Profile) (*DB, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn is required for sqlite driver")
	}

	sqlDB, err := sql.Open("sqlite", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db %q", profile.DSN)
	}

	if _, err := sqlDB.Exec(createTableStmt); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to create kv table")
	}

	return &DB{db: sqlDB, profile: profile}, nil
}

func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to get key %q", key)
	}
	return value, true, nil
}

func (d *DB) Set(ctx context.Context, key string, value string) error {
	_, err := d.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return errors.Wrapf(err, "failed to set key %q", key)
	}
	return nil
}

func (d *DB) Remove(ctx context.Context, key string) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return errors.Wrapf(err, "failed to remove key %q", key)
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
