// Package postgres implements the key-value driver on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"

	// Import the postgres driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/hrygo/studybuddy/internal/profile"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// DB is the PostgreSQL key-value driver.
type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens the database at the profile DSN and ensures the kv table exists.
func NewDB(profile *profile.Profile) (*DB, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn is required for postgres driver")
	}

	sqlDB, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres db")
	}

	if _, err := sqlDB.Exec(createTableStmt); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to create kv table")
	}

	return &DB{db: sqlDB, profile: profile}, nil
}

func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = $1", key).Scan(&value)
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
		"INSERT INTO kv (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
		key, value)
	if err != nil {
		return errors.Wrapf(err, "failed to set key %q", key)
	}
	return nil
}

func (d *DB) Remove(ctx context.Context, key string) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM kv WHERE key = $1", key); err != nil {
		return errors.Wrapf(err, "failed to remove key %q", key)
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
