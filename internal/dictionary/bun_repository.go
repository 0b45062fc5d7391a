package dictionary

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists dictionary entries through bun.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Entry]
}

// NewBunRepository constructs a Repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a Repository backed by bun with
// optional read caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewEntryRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

// List returns every dictionary entry.
func (r *BunRepository) List(ctx context.Context) ([]*Entry, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "entries")
	}
	return records, nil
}

// GetByKey resolves an entry by its public key.
func (r *BunRepository) GetByKey(ctx context.Context, key string) (*Entry, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.key = ?", key)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	if len(records) == 0 {
		return nil, &EntryNotFoundError{Key: key}
	}
	return records[0], nil
}

// Upsert inserts or updates the entry identified by its key.
func (r *BunRepository) Upsert(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry == nil || entry.Key == "" {
		return nil, ErrKeyRequired
	}

	existing, err := r.GetByKey(ctx, entry.Key)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		created, err := r.repo.Create(ctx, entry)
		if err != nil {
			return nil, mapRepositoryError(err, entry.Key)
		}
		return created, nil
	}

	entry.ID = existing.ID
	updated, err := r.repo.Update(ctx, entry,
		repository.UpdateByID(entry.ID.String()),
		repository.UpdateColumns("source_list", "original", "translations", "last_updated"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, entry.Key)
	}
	return updated, nil
}

var _ Repository = (*BunRepository)(nil)

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &EntryNotFoundError{Key: key}
	}
	return fmt.Errorf("dictionary repository error: %w", err)
}

func wrapWithCache(base repository.Repository[*Entry], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[*Entry] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

// EnsureSchema creates the dictionary table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*Entry)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// NewEntryID generates an identifier for freshly created entries.
func NewEntryID() uuid.UUID {
	return uuid.New()
}
