// Package history keeps a local archive of completed shopping lists in a
// SQLite database. The archive is purely local and never synchronized with
// the remote store.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/justin-mueller/Einkaufsliste/internal/daily"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS lists (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    completed_at TIMESTAMP NOT NULL,
    item_count   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS list_items (
    list_id  INTEGER NOT NULL REFERENCES lists(id),
    name     TEXT NOT NULL,
    category TEXT NOT NULL,
    checked  INTEGER NOT NULL DEFAULT 0
);
`

// Entry is one archived list as returned by Recent.
type Entry struct {
	ID          int64
	CompletedAt time.Time
	Items       []daily.Item
}

// Archive stores completed lists in a local SQLite database in WAL mode.
type Archive struct {
	db *sql.DB
}

// Open opens (or creates) the archive database at dbPath, creating parent
// directories as needed.
func Open(ctx context.Context, dbPath string) (*Archive, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// SQLite supports a single writer; one pooled connection avoids
	// SQLITE_BUSY contention between connections that each need their own
	// PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record archives a list in a single transaction. Empty lists are skipped.
func (a *Archive) Record(ctx context.Context, items []daily.Item, completedAt time.Time) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO lists (completed_at, item_count) VALUES (?, ?)",
		completedAt.UTC(), len(items))
	if err != nil {
		return fmt.Errorf("history: insert list: %w", err)
	}
	listID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: list id: %w", err)
	}

	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO list_items (list_id, name, category, checked) VALUES (?, ?, ?, ?)",
			listID, it.Name, it.Category, it.Checked); err != nil {
			return fmt.Errorf("history: insert item %q: %w", it.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit: %w", err)
	}
	return nil
}

// Recent returns the most recently archived lists, newest first, with their
// items in insertion order.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT id, completed_at FROM lists ORDER BY completed_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("history: query lists: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("history: scan list: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate lists: %w", err)
	}

	for i := range entries {
		items, err := a.listItems(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Items = items
	}
	return entries, nil
}

func (a *Archive) listItems(ctx context.Context, listID int64) ([]daily.Item, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT name, category, checked FROM list_items WHERE list_id = ? ORDER BY rowid", listID)
	if err != nil {
		return nil, fmt.Errorf("history: query items: %w", err)
	}
	defer rows.Close()

	var items []daily.Item
	for rows.Next() {
		var it daily.Item
		if err := rows.Scan(&it.Name, &it.Category, &it.Checked); err != nil {
			return nil, fmt.Errorf("history: scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
