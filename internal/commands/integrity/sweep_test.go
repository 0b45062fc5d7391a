package integritycmd

import (
	"context"
	"testing"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/integrity"
	goerrors "github.com/goliatone/go-errors"
)

func seedStore(t *testing.T) *catalog.Store {
	t.Helper()
	store := catalog.NewStore()
	ctx := context.Background()

	if _, err := store.SaveEvent(ctx, &catalog.Event{ID: "e1", Title: "Kept"}); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	if _, err := store.SavePage(ctx, &catalog.Page{
		ID:   "home",
		Slug: "home",
		Containers: []*catalog.Container{
			{
				ID:     "c1",
				PageID: "home",
				Type:   "events",
				Settings: catalog.ContainerSettings{
					Source:      "Events",
					TaggedItems: []string{"e1", "ghost"},
				},
			},
		},
	}); err != nil {
		t.Fatalf("seed page: %v", err)
	}
	return store
}

func containerItems(t *testing.T, store *catalog.Store, id string) []string {
	t.Helper()
	containers, err := store.Containers(context.Background())
	if err != nil {
		t.Fatalf("list containers: %v", err)
	}
	for _, container := range containers {
		if container.ID == id {
			return container.Settings.TaggedItems
		}
	}
	t.Fatalf("container %s not found", id)
	return nil
}

func TestValidateTaggedItemsHandlerPrunesGhosts(t *testing.T) {
	store := seedStore(t)
	handler := NewValidateTaggedItemsHandler(integrity.NewService(store), nil)

	if err := handler.Execute(context.Background(), ValidateTaggedItemsCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	items := containerItems(t, store, "c1")
	if len(items) != 1 || items[0] != "e1" {
		t.Fatalf("expected ghost pruned, got %v", items)
	}
}

func TestRemoveItemHandlerCascades(t *testing.T) {
	store := seedStore(t)
	handler := NewRemoveItemHandler(integrity.NewService(store), nil)

	if err := handler.Execute(context.Background(), RemoveItemCommand{ItemID: "e1"}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	items := containerItems(t, store, "c1")
	for _, id := range items {
		if id == "e1" {
			t.Fatalf("expected e1 removed, got %v", items)
		}
	}
}

func TestRemoveItemHandlerRequiresItemID(t *testing.T) {
	store := seedStore(t)
	handler := NewRemoveItemHandler(integrity.NewService(store), nil)

	err := handler.Execute(context.Background(), RemoveItemCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
