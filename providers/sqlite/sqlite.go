// Package sqlite provides a SQLite document backend for the store package.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hengadev/serx/store"
)

const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		body BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (collection, id)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
`

// Backend keeps documents in a single SQLite table.
type Backend struct {
	db *sql.DB
}

var _ store.Backend = (*Backend)(nil)

// Open opens (or creates) the database at path. Use ":memory:" for a throwaway store.
func Open(path string) (*Backend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at '%s': %w", path, err)
	}
	// each connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database connection test failed for '%s': %w", path, err)
	}

	b, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

// New wraps an open database and creates the documents table when missing.
func New(db *sql.DB) (*Backend, error) {
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}
	return &Backend{db: db}, nil
}

// Put inserts or replaces a document.
func (b *Backend) Put(ctx context.Context, collection, id string, doc []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, collection, id, doc, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Get returns the document body or store.ErrNotFound.
func (b *Backend) Get(ctx context.Context, collection, id string) ([]byte, error) {
	row := b.db.QueryRowContext(ctx, `
		SELECT body FROM documents WHERE collection = ? AND id = ?
	`, collection, id)
	var body []byte
	err := row.Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return body, nil
}

// Delete removes a document or returns store.ErrNotFound.
func (b *Backend) Delete(ctx context.Context, collection, id string) error {
	res, err := b.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = ? AND id = ?
	`, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns the ids of a collection in ascending order.
func (b *Backend) List(ctx context.Context, collection string) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT id FROM documents WHERE collection = ? ORDER BY id
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}
