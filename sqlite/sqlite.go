// Package sqlite provides a SQLite-backed harvest knowledge base.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// schema holds one row per harvested article URL.
const schema = `
CREATE TABLE IF NOT EXISTS records (
	id           TEXT PRIMARY KEY,
	url          TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	body         TEXT NOT NULL DEFAULT '',
	author       TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL DEFAULT '',
	crawl_time   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_category ON records(category);
CREATE INDEX IF NOT EXISTS idx_records_crawl_time ON records(crawl_time);
`

// DB is the knowledge base database handle.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a DB for the file at path. Use ":memory:" in tests.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects to the database, applies pragmas and creates the schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", db.path, err)
	}
	// One writer at a time; workers queue on the single connection.
	conn.SetMaxOpenConns(1)

	statements := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != memoryPath {
		statements = append(statements, "PRAGMA journal_mode = WAL")
	}
	statements = append(statements, schema)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connect %s: %w", db.path, err)
	}
	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return fmt.Errorf("init %s: %w", db.path, err)
		}
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query that returns at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement without returning rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
