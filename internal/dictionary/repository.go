package dictionary

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository stores dictionary entries keyed by their public entry key.
type Repository interface {
	List(ctx context.Context) ([]*Entry, error)
	GetByKey(ctx context.Context, key string) (*Entry, error)
	Upsert(ctx context.Context, entry *Entry) (*Entry, error)
}

// NewEntryRepository builds the bun-backed repository handlers for entries.
func NewEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(e *Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(e *Entry) string {
			return e.Key
		},
	})
}
