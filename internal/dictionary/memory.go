package dictionary

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// NewMemoryRepository creates an empty in-memory dictionary repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]*Entry),
	}
}

// List returns all entries in insertion order.
func (m *MemoryRepository) List(_ context.Context) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Entry, 0, len(m.entries))
	for _, key := range m.order {
		out = append(out, m.entries[key].Clone())
	}
	return out, nil
}

// GetByKey retrieves an entry by its public key.
func (m *MemoryRepository) GetByKey(_ context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, &EntryNotFoundError{Key: key}
	}
	return entry.Clone(), nil
}

// Upsert inserts or replaces an entry by key.
func (m *MemoryRepository) Upsert(_ context.Context, entry *Entry) (*Entry, error) {
	if entry == nil || entry.Key == "" {
		return nil, ErrKeyRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := entry.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if _, exists := m.entries[copied.Key]; !exists {
		m.order = append(m.order, copied.Key)
	}
	m.entries[copied.Key] = copied
	return copied.Clone(), nil
}
