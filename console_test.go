package console

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/domain"
)

type stubLoader struct {
	events []*catalog.Event
	pages  []*catalog.Page
}

func (l stubLoader) News(context.Context) ([]*catalog.NewsItem, error)             { return nil, nil }
func (l stubLoader) Events(context.Context) ([]*catalog.Event, error)              { return l.events, nil }
func (l stubLoader) Documents(context.Context) ([]*catalog.Document, error)        { return nil, nil }
func (l stubLoader) NavItems(context.Context) ([]*catalog.NavItem, error)          { return nil, nil }
func (l stubLoader) ContainerItems(context.Context) ([]*catalog.ContainerItem, error) {
	return nil, nil
}
func (l stubLoader) Contacts(context.Context) ([]*catalog.Contact, error)       { return nil, nil }
func (l stubLoader) SliderItems(context.Context) ([]*catalog.SliderItem, error) { return nil, nil }
func (l stubLoader) Pages(context.Context) ([]*catalog.Page, error)             { return l.pages, nil }
func (l stubLoader) Footer(context.Context) (*catalog.FooterConfig, error)      { return nil, nil }

func testLoader() stubLoader {
	return stubLoader{
		events: []*catalog.Event{{ID: "e1", Title: "Kept"}},
		pages: []*catalog.Page{
			{
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
			},
		},
	}
}

func taggedItems(t *testing.T, m *Module, containerID string) []string {
	t.Helper()
	containers, err := m.Store().Containers(context.Background())
	if err != nil {
		t.Fatalf("list containers: %v", err)
	}
	for _, container := range containers {
		if container.ID == containerID {
			return container.Settings.TaggedItems
		}
	}
	t.Fatalf("container %s not found", containerID)
	return nil
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLocale = ""

	if _, err := New(cfg); !errors.Is(err, ErrDefaultLocaleRequired) {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestNewRequiresDSNForBunStorage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = ""

	if _, err := New(cfg); !errors.Is(err, ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestNewOpensSQLiteForBunStorage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.DSN = "file::memory:?cache=shared"

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if m.Dictionary() == nil {
		t.Fatal("expected dictionary service")
	}
}

func TestLoadRunsIntegritySweep(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	if err := m.Load(context.Background(), testLoader()); err != nil {
		t.Fatalf("load: %v", err)
	}

	items := taggedItems(t, m, "c1")
	if len(items) != 1 || items[0] != "e1" {
		t.Fatalf("expected ghost reference pruned on load, got %v", items)
	}
}

func TestDeleteCascadesIntoContainers(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	ctx := context.Background()

	if err := m.Load(ctx, testLoader()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := m.Store().DeleteEvent(ctx, "e1"); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	items := taggedItems(t, m, "c1")
	for _, id := range items {
		if id == "e1" {
			t.Fatalf("expected e1 removed from container, got %v", items)
		}
	}
}

func TestReconcilerWiredToDictionary(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	ctx := context.Background()

	if err := m.Load(ctx, testLoader()); err != nil {
		t.Fatalf("load: %v", err)
	}

	rows, err := m.Reconciler().BuildRows(ctx, domain.SourceEvents, "")
	if err != nil {
		t.Fatalf("build rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if err := m.Reconciler().SaveTranslation(ctx, rows[0], "de", map[string]string{"title": "Beibehalten"}); err != nil {
		t.Fatalf("save translation: %v", err)
	}

	entry, err := m.Dictionary().GetByKey(ctx, "e1")
	if err != nil {
		t.Fatalf("dictionary entry: %v", err)
	}
	if entry.Translations["de"] != "Beibehalten" {
		t.Fatalf("dictionary not updated, got %q", entry.Translations["de"])
	}
}

func TestOutboxCollectsIntents(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	ctx := context.Background()

	if _, err := m.Store().SaveNews(ctx, &catalog.NewsItem{Title: "Fresh"}); err != nil {
		t.Fatalf("save news: %v", err)
	}

	pending, err := m.Outbox().Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if pending != 1 {
		t.Fatalf("expected 1 pending intent, got %d", pending)
	}
}

func TestCommandHandlersWiredToServices(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	ctx := context.Background()

	if err := m.Load(ctx, testLoader()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := m.SaveTranslations().Execute(ctx, SaveTranslationCommand{
		Source: string(domain.SourceEvents),
		RowID:  "e1",
		Lang:   "de",
		Fields: map[string]string{"title": "Behalten"},
	}); err != nil {
		t.Fatalf("save command: %v", err)
	}

	entry, err := m.Dictionary().GetByKey(ctx, "e1")
	if err != nil {
		t.Fatalf("dictionary entry: %v", err)
	}
	if entry.Translations["de"] != "Behalten" {
		t.Fatalf("dictionary not updated through command, got %q", entry.Translations["de"])
	}

	if err := m.ValidateIntegrity().Execute(ctx, ValidateTaggedItemsCommand{}); err != nil {
		t.Fatalf("validate command: %v", err)
	}

	if err := m.RemoveItem().Execute(ctx, RemoveItemCommand{ItemID: "e1"}); err != nil {
		t.Fatalf("remove command: %v", err)
	}
	for _, id := range taggedItems(t, m, "c1") {
		if id == "e1" {
			t.Fatalf("expected e1 removed via command")
		}
	}
}
