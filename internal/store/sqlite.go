package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/pokerbot/internal/game"

	_ "modernc.org/sqlite"
)

// SQLite stores table snapshots as JSON rows in a SQLite database
type SQLite struct {
	*keyedMutex
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the database at path. ":memory:"
// gives a private in-memory database.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if path != ":memory:" {
		parent := filepath.Dir(path)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pragmas := []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{keyedMutex: newKeyedMutex(), db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS tables (
    id TEXT PRIMARY KEY,
    state_json TEXT NOT NULL,
    hand_number INTEGER NOT NULL DEFAULT 0,
    created_at_ms INTEGER NOT NULL,
    updated_at_ms INTEGER NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("create tables schema: %w", err)
	}
	return nil
}

func (s *SQLite) Create(ctx context.Context, t *game.Table) error {
	state, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode table %s: %w", t.ID, err)
	}
	nowMs := time.Now().UTC().UnixMilli()

	res, err := s.db.ExecContext(ctx, `
INSERT INTO tables (id, state_json, hand_number, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING
`, t.ID, string(state), t.HandNumber, nowMs, nowMs)
	if err != nil {
		return fmt.Errorf("insert table %s: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrExists, t.ID)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, id string) (*game.Table, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `SELECT state_json FROM tables WHERE id = ?`, id).Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load table %s: %w", id, err)
	}

	var t game.Table
	if err := json.Unmarshal([]byte(state), &t); err != nil {
		return nil, fmt.Errorf("decode table %s: %w", id, err)
	}
	return &t, nil
}

func (s *SQLite) Save(ctx context.Context, t *game.Table) error {
	state, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode table %s: %w", t.ID, err)
	}

	res, err := s.db.ExecContext(ctx, `
UPDATE tables SET state_json = ?, hand_number = ?, updated_at_ms = ?
WHERE id = ?
`, string(state), t.HandNumber, time.Now().UTC().UnixMilli(), t.ID)
	if err != nil {
		return fmt.Errorf("update table %s: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, t.ID)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tables WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete table %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM tables ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
