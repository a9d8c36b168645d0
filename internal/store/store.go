// Package store keeps tables between commands. Stores hand out copies of
// tables, never shared pointers, and own the per-table locks callers use to
// serialize commands against one table.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/pokerbot/internal/game"
)

var (
	// ErrNotFound is returned when no table exists for an id
	ErrNotFound = errors.New("table not found")
	// ErrExists is returned when creating a table whose id is taken
	ErrExists = errors.New("table already exists")
)

// Store persists tables by id
type Store interface {
	// Create stores a new table. It fails with ErrExists if the id is taken.
	Create(ctx context.Context, t *game.Table) error
	// Load returns a copy of the stored table
	Load(ctx context.Context, id string) (*game.Table, error)
	// Save replaces a stored table
	Save(ctx context.Context, t *game.Table) error
	// Delete removes a table
	Delete(ctx context.Context, id string) error
	// List returns the ids of all stored tables in ascending order
	List(ctx context.Context) ([]string, error)
	// Lock blocks until the caller holds the table's lock
	Lock(id string) (unlock func())
	Close() error
}

// Open creates the store named by driver: "memory" or "sqlite"
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		s, err := NewSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
