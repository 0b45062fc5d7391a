package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Record is satisfied by every catalog entity stored in memory repositories.
type Record[T any] interface {
	Clone() T
	GetID() string
}

// MemoryRepository is the in-memory store backing one entity collection.
// Reads and writes exchange clones so callers never observe a partially
// mutated record; insertion order is preserved because reconciled rows keep
// source order.
type MemoryRepository[T Record[T]] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	setID func(T, string)
}

// NewMemoryRepository constructs an empty repository. setID assigns a
// generated identifier on create when the record arrives without one.
func NewMemoryRepository[T Record[T]](setID func(T, string)) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		items: make(map[string]T),
		setID: setID,
	}
}

// Create inserts the record, generating an id when absent, and returns the
// stored clone.
func (m *MemoryRepository[T]) Create(_ context.Context, record T) (T, error) {
	var zero T
	copied := record.Clone()
	if copied.GetID() == "" {
		if m.setID == nil {
			return zero, ErrIDRequired
		}
		m.setID(copied, uuid.NewString())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := copied.GetID()
	if _, exists := m.items[id]; !exists {
		m.order = append(m.order, id)
	}
	m.items[id] = copied
	return copied.Clone(), nil
}

// Update replaces an existing record.
func (m *MemoryRepository[T]) Update(_ context.Context, record T) (T, error) {
	var zero T
	id := record.GetID()
	if id == "" {
		return zero, ErrIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[id]; !exists {
		return zero, &NotFoundError{Resource: "record", Key: id}
	}
	copied := record.Clone()
	m.items[id] = copied
	return copied.Clone(), nil
}

// Delete removes a record by id.
func (m *MemoryRepository[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[id]; !exists {
		return &NotFoundError{Resource: "record", Key: id}
	}
	delete(m.items, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetByID retrieves a record by id.
func (m *MemoryRepository[T]) GetByID(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.items[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{Resource: "record", Key: id}
	}
	return record.Clone(), nil
}

// List returns all records in insertion order.
func (m *MemoryRepository[T]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.items))
	for _, id := range m.order {
		out = append(out, m.items[id].Clone())
	}
	return out, nil
}

// ReplaceAll swaps the repository contents with the supplied records,
// preserving their order. Used by bulk loads.
func (m *MemoryRepository[T]) ReplaceAll(_ context.Context, records []T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]T, len(records))
	m.order = m.order[:0]
	for _, record := range records {
		id := record.GetID()
		if id == "" {
			continue
		}
		if _, exists := m.items[id]; !exists {
			m.order = append(m.order, id)
		}
		m.items[id] = record.Clone()
	}
}

// Len reports the number of stored records.
func (m *MemoryRepository[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
