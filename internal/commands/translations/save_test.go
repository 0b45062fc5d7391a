package translationscmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/dictionary"
	"github.com/goliatone/go-console/internal/reconcile"
	goerrors "github.com/goliatone/go-errors"
)

func newReconciler(t *testing.T) (*reconcile.Service, *catalog.Store, *dictionary.Service) {
	t.Helper()
	store := catalog.NewStore()
	dict := dictionary.NewService(dictionary.NewMemoryRepository())
	return reconcile.NewService(store, dict), store, dict
}

func TestSaveTranslationHandlerWritesThroughReconciler(t *testing.T) {
	svc, store, dict := newReconciler(t)
	ctx := context.Background()

	if _, err := store.SaveNews(ctx, &catalog.NewsItem{ID: "n1", Title: "Launch"}); err != nil {
		t.Fatalf("seed news: %v", err)
	}

	handler := NewSaveTranslationHandler(svc, nil)
	err := handler.Execute(ctx, SaveTranslationCommand{
		Source: "News",
		RowID:  "n1",
		Lang:   "de",
		Fields: map[string]string{"title": "Start"},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	stored, err := store.News.GetByID(ctx, "n1")
	if err != nil {
		t.Fatalf("reload news: %v", err)
	}
	if got := stored.Translations["de"]["title"]; got != "Start" {
		t.Errorf("entity not updated, got %q", got)
	}
	entry, err := dict.GetByKey(ctx, "n1")
	if err != nil {
		t.Fatalf("dictionary entry: %v", err)
	}
	if entry.Translations["de"] != "Start" {
		t.Errorf("dictionary not updated, got %q", entry.Translations["de"])
	}
}

func TestSaveTranslationHandlerRejectsIncompleteCommand(t *testing.T) {
	svc, _, _ := newReconciler(t)
	handler := NewSaveTranslationHandler(svc, nil)

	err := handler.Execute(context.Background(), SaveTranslationCommand{Source: "News"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSaveTranslationHandlerUnknownRow(t *testing.T) {
	svc, _, _ := newReconciler(t)
	handler := NewSaveTranslationHandler(svc, nil)

	err := handler.Execute(context.Background(), SaveTranslationCommand{
		Source: "News",
		RowID:  "missing",
		Lang:   "de",
		Fields: map[string]string{"title": "x"},
	})
	if !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}
