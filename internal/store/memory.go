package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/lox/pokerbot/internal/game"
)

// Memory is an in-process Store
type Memory struct {
	*keyedMutex

	mu     sync.RWMutex
	tables map[string]*game.Table
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		keyedMutex: newKeyedMutex(),
		tables:     make(map[string]*game.Table),
	}
}

func (m *Memory) Create(_ context.Context, t *game.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrExists, t.ID)
	}
	m.tables[t.ID] = t.Snapshot()
	return nil
}

func (m *Memory) Load(_ context.Context, id string) (*game.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t.Snapshot(), nil
}

func (m *Memory) Save(_ context.Context, t *game.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[t.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, t.ID)
	}
	m.tables[t.ID] = t.Snapshot()
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.tables, id)
	return nil
}

func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.tables))
	for id := range m.tables {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *Memory) Close() error {
	return nil
}
