// Package sqlite provides a durable kvstore backend backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/kvstore"
	"github.com/louisbranch/storyfront/internal/platform/kvstore/sqlite/migrations"
	"github.com/louisbranch/storyfront/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists kvstore entries in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ kvstore.Backend = (*Store)(nil)

// Open opens and migrates a kvstore SQLite database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the value stored for key in namespace.
func (s *Store) Load(ctx context.Context, namespace string, key string) (string, bool, error) {
	if s == nil || s.sqlDB == nil {
		return "", false, fmt.Errorf("storage is not configured")
	}
	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load kv entry: %w", err)
	}
	return value, true, nil
}

// Save upserts value for key in namespace.
func (s *Store) Save(ctx context.Context, namespace string, key string, value string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO kv_entries (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET
		    value = excluded.value,
		    updated_at = excluded.updated_at`,
		namespace, key, value, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save kv entry: %w", err)
	}
	return nil
}
