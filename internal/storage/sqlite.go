package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements RecentStore using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	max int
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string, limit int) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, max: maxOrDefault(limit)}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS recent_searches (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		query TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Add records query at the front, replacing an earlier identical entry and pruning the oldest.
func (s *SQLiteStore) Add(ctx context.Context, query string) error {
	query = normalizeQuery(query)
	if query == "" {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recent_searches WHERE query = ?`, query); err != nil {
		return fmt.Errorf("failed to remove duplicate: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO recent_searches (id, query, created_at) VALUES (?, ?, ?)`,
		uuid.New().String(), query, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert recent search: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recent_searches WHERE seq NOT IN (SELECT seq FROM recent_searches ORDER BY seq DESC LIMIT ?)`,
		s.max,
	); err != nil {
		return fmt.Errorf("failed to prune recent searches: %w", err)
	}
	return tx.Commit()
}

// List returns entries most recent first.
func (s *SQLiteStore) List(ctx context.Context) ([]RecentSearch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, created_at FROM recent_searches ORDER BY seq DESC LIMIT ?`, s.max)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent searches: %w", err)
	}
	defer rows.Close()

	var out []RecentSearch
	for rows.Next() {
		var r RecentSearch
		if err := rows.Scan(&r.ID, &r.Query, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear removes all entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recent_searches`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
