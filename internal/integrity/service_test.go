package integrity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/pkg/interfaces"
)

type captureOutbox struct {
	mu    sync.Mutex
	specs []interfaces.IntentSpec
}

func (c *captureOutbox) Enqueue(_ context.Context, spec interfaces.IntentSpec) (*interfaces.Intent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specs = append(c.specs, spec)
	return &interfaces.Intent{ID: "intent", Op: spec.Op, Entity: spec.Entity, Key: spec.Key}, nil
}

func (c *captureOutbox) ListDue(context.Context, time.Time, int) ([]*interfaces.Intent, error) {
	return nil, nil
}

func (c *captureOutbox) MarkDone(context.Context, string) error { return nil }

func (c *captureOutbox) MarkFailed(context.Context, string, error) error { return nil }

func (c *captureOutbox) Pending(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.specs), nil
}

func (c *captureOutbox) take() []interfaces.IntentSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]interfaces.IntentSpec, len(c.specs))
	copy(out, c.specs)
	return out
}

func (c *captureOutbox) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specs = nil
}

func seedStore(t *testing.T, ctx context.Context) *catalog.Store {
	t.Helper()
	store := catalog.NewStore()

	if _, err := store.SaveEvent(ctx, &catalog.Event{ID: "e1", Title: "Town hall"}); err != nil {
		t.Fatalf("SaveEvent error: %v", err)
	}
	if _, err := store.SaveEvent(ctx, &catalog.Event{ID: "mock_e1", Title: "Mock one"}); err != nil {
		t.Fatalf("SaveEvent error: %v", err)
	}
	if _, err := store.SaveEvent(ctx, &catalog.Event{ID: "mock_e2", Title: "Mock two"}); err != nil {
		t.Fatalf("SaveEvent error: %v", err)
	}

	pages := []*catalog.Page{
		{
			ID:   "home",
			Slug: "home",
			Containers: []*catalog.Container{
				{
					ID: "c1", PageID: "home", Type: "grid", Title: "Upcoming",
					Settings: catalog.ContainerSettings{Source: "Events", TaggedItems: []string{"e1", "mock_e1", "mock_e2"}},
				},
			},
		},
		{
			ID:   "about",
			Slug: "about",
			Containers: []*catalog.Container{
				{
					ID: "c2", PageID: "about", Type: "list", Title: "Highlights",
					Settings: catalog.ContainerSettings{Source: "Events", TaggedItems: []string{"mock_e1", "e1"}},
				},
				{
					ID: "c3", PageID: "about", Type: "hero", Title: "Banner",
					Settings: catalog.ContainerSettings{Source: "Events"},
				},
			},
		},
	}
	for _, page := range pages {
		if _, err := store.SavePage(ctx, page); err != nil {
			t.Fatalf("SavePage error: %v", err)
		}
	}
	return store
}

func TestRemoveItemFromContainersCascadesAcrossPages(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, ctx)
	outbox := &captureOutbox{}
	svc := NewService(store, WithOutbox(outbox))

	changed, err := svc.RemoveItemFromContainers(ctx, "e1")
	if err != nil {
		t.Fatalf("RemoveItemFromContainers error: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected two corrected containers, got %d", changed)
	}

	home, err := store.Pages.GetByID(ctx, "home")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	got := home.Containers[0].Settings.TaggedItems
	if len(got) != 2 || got[0] != "mock_e1" || got[1] != "mock_e2" {
		t.Fatalf("expected remaining ids in original order, got %v", got)
	}

	about, err := store.Pages.GetByID(ctx, "about")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got := about.Containers[0].Settings.TaggedItems; len(got) != 1 || got[0] != "mock_e1" {
		t.Fatalf("expected e1 removed from second container, got %v", got)
	}

	specs := outbox.take()
	if len(specs) != 2 {
		t.Fatalf("expected two container updates, got %d", len(specs))
	}
	for _, spec := range specs {
		if spec.Entity != catalog.EntityContainer || spec.Op != interfaces.IntentOpUpsert {
			t.Fatalf("unexpected intent %+v", spec)
		}
		// Whole-record payload, not just the settings delta.
		for _, field := range []string{"type", "order", "settings", "content", "visible", "title", "button_label"} {
			if _, ok := spec.Payload[field]; !ok {
				t.Fatalf("expected whole-record payload field %q, got %v", field, spec.Payload)
			}
		}
	}
}

func TestRemoveItemFromContainersIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, ctx)
	outbox := &captureOutbox{}
	svc := NewService(store, WithOutbox(outbox))

	if _, err := svc.RemoveItemFromContainers(ctx, "e1"); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	outbox.reset()

	changed, err := svc.RemoveItemFromContainers(ctx, "e1")
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if changed != 0 {
		t.Fatalf("expected no further changes, got %d", changed)
	}
	if specs := outbox.take(); len(specs) != 0 {
		t.Fatalf("expected zero persistence calls on second run, got %d", len(specs))
	}
}

func TestValidateTaggedItemsPurgesGhostReferences(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, ctx)
	outbox := &captureOutbox{}
	svc := NewService(store, WithOutbox(outbox))

	home, err := store.Pages.GetByID(ctx, "home")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	home.Containers[0].Settings.TaggedItems = append(home.Containers[0].Settings.TaggedItems, "ghost_7")
	if err := store.ReplacePage(ctx, home); err != nil {
		t.Fatalf("ReplacePage error: %v", err)
	}

	changed, err := svc.ValidateTaggedItems(ctx)
	if err != nil {
		t.Fatalf("ValidateTaggedItems error: %v", err)
	}
	if changed != 1 {
		t.Fatalf("expected exactly one corrected container, got %d", changed)
	}

	reloaded, err := store.Pages.GetByID(ctx, "home")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	for _, id := range reloaded.Containers[0].Settings.TaggedItems {
		if id == "ghost_7" {
			t.Fatalf("expected ghost_7 to be purged, got %v", reloaded.Containers[0].Settings.TaggedItems)
		}
	}

	specs := outbox.take()
	if len(specs) != 1 || specs[0].Key != "c1" {
		t.Fatalf("expected exactly one persistence update for c1, got %v", specs)
	}
}

func TestValidateTaggedItemsSecondRunIssuesNoPersistence(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, ctx)
	outbox := &captureOutbox{}
	svc := NewService(store, WithOutbox(outbox))

	home, err := store.Pages.GetByID(ctx, "home")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	home.Containers[0].Settings.TaggedItems = []string{"ghost_1", "e1"}
	if err := store.ReplacePage(ctx, home); err != nil {
		t.Fatalf("ReplacePage error: %v", err)
	}

	if _, err := svc.ValidateTaggedItems(ctx); err != nil {
		t.Fatalf("first sweep error: %v", err)
	}
	first, err := store.Pages.GetByID(ctx, "home")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	outbox.reset()

	changed, err := svc.ValidateTaggedItems(ctx)
	if err != nil {
		t.Fatalf("second sweep error: %v", err)
	}
	if changed != 0 {
		t.Fatalf("expected idempotent second sweep, got %d changes", changed)
	}
	second, err := store.Pages.GetByID(ctx, "home")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(first.Containers[0].Settings.TaggedItems) != len(second.Containers[0].Settings.TaggedItems) {
		t.Fatalf("expected identical container state across sweeps")
	}
	if specs := outbox.take(); len(specs) != 0 {
		t.Fatalf("expected zero persistence calls on second sweep, got %d", len(specs))
	}
}
