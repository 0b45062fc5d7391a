package dictionary_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-console/internal/dictionary"
	"github.com/goliatone/go-console/internal/domain"
	"github.com/goliatone/go-console/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newBunRepository(t *testing.T) *dictionary.BunRepository {
	t.Helper()
	sqldb, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := dictionary.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return dictionary.NewBunRepository(db)
}

func TestBunRepositoryUpsertCreatesThenUpdates(t *testing.T) {
	repo := newBunRepository(t)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, &dictionary.Entry{
		ID:           dictionary.NewEntryID(),
		Key:          "n1",
		SourceList:   domain.SourceNews,
		Original:     "Launch",
		Translations: map[string]string{"de": "Start"},
		LastUpdated:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Upsert(ctx, &dictionary.Entry{
		Key:          "n1",
		SourceList:   domain.SourceNews,
		Original:     "Launch v2",
		Translations: map[string]string{"de": "Start", "fr": "Lancement"},
		LastUpdated:  time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("update must reuse the existing row id")
	}

	stored, err := repo.GetByKey(ctx, "n1")
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if stored.Original != "Launch v2" {
		t.Errorf("original not updated, got %q", stored.Original)
	}
	if stored.Translations["fr"] != "Lancement" {
		t.Errorf("translations not updated, got %v", stored.Translations)
	}
}

func TestBunRepositoryGetByKeyNotFound(t *testing.T) {
	repo := newBunRepository(t)

	_, err := repo.GetByKey(context.Background(), "missing")
	if !dictionary.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestBunRepositoryListReturnsEveryEntry(t *testing.T) {
	repo := newBunRepository(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b"} {
		if _, err := repo.Upsert(ctx, &dictionary.Entry{
			ID:         dictionary.NewEntryID(),
			Key:        key,
			SourceList: domain.SourceEvents,
			Original:   key,
		}); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}
