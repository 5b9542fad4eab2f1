// Package sqlite implements the storage interfaces on an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/untoldecay/entitylink/internal/storage"
)

// SQLiteStorage is a knowledge base and page cache backed by one database file.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	readOnly bool
}

var (
	_ storage.KnowledgeBase = (*SQLiteStorage)(nil)
	_ storage.PageCache     = (*SQLiteStorage)(nil)
)

// New opens (creating if needed) a read-write database at path and applies the schema.
func New(ctx context.Context, path string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := open(ctx, "file:"+path+"?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStorage{db: db, dbPath: path}, nil
}

// NewReadOnly opens an existing database without write access.
// Returns storage.ErrDBNotInitialized if path does not exist.
func NewReadOnly(ctx context.Context, path string) (*SQLiteStorage, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrDBNotInitialized, path)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	db, err := open(ctx, "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	var n int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('entities', 'aliases')`).Scan(&n)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to inspect database: %w", err)
	}
	if n != 2 {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s has no knowledge-base tables", storage.ErrDBNotInitialized, path)
	}
	return &SQLiteStorage{db: db, dbPath: path, readOnly: true}, nil
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single connection keeps pragmas and the read-only mode consistent.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// UnderlyingDB exposes the connection for ad-hoc queries.
func (s *SQLiteStorage) UnderlyingDB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// GetMetadata returns the value for key, or "" if unset.
func (s *SQLiteStorage) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata %s: %w", key, err)
	}
	return value, nil
}

// SetMetadata upserts a metadata value.
func (s *SQLiteStorage) SetMetadata(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata %s: %w", key, err)
	}
	return nil
}
