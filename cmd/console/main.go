package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	console "github.com/goliatone/go-console"
	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/domain"
	"github.com/goliatone/go-console/pkg/interfaces"
)

// demoLoader simulates the backend fetches a real deployment would issue
// against its content API.
type demoLoader struct{}

func (demoLoader) News(context.Context) ([]*catalog.NewsItem, error) {
	return []*catalog.NewsItem{
		{
			ID:       "n1",
			Title:    "Product Launch",
			Modified: "2024-03-05 10:00:00",
			Translations: catalog.Translations{
				"de": {"title": "Produktstart"},
			},
		},
	}, nil
}

func (demoLoader) Events(context.Context) ([]*catalog.Event, error) {
	return []*catalog.Event{
		{ID: "e1", Title: "Open House", Location: "Main Hall"},
	}, nil
}

func (demoLoader) Documents(context.Context) ([]*catalog.Document, error)   { return nil, nil }
func (demoLoader) NavItems(context.Context) ([]*catalog.NavItem, error)     { return nil, nil }
func (demoLoader) Contacts(context.Context) ([]*catalog.Contact, error)     { return nil, nil }
func (demoLoader) SliderItems(context.Context) ([]*catalog.SliderItem, error) { return nil, nil }

func (demoLoader) ContainerItems(context.Context) ([]*catalog.ContainerItem, error) {
	return []*catalog.ContainerItem{
		{ID: "ci1", Title: "Feature Card"},
	}, nil
}

func (demoLoader) Pages(context.Context) ([]*catalog.Page, error) {
	return []*catalog.Page{
		{
			ID:    "home",
			Slug:  "home",
			Title: domain.MultilingualText{"en": "Home"},
			Containers: []*catalog.Container{
				{
					ID:     "c1",
					PageID: "home",
					Type:   "cards",
					Settings: catalog.ContainerSettings{
						Source:      "ContainerItems",
						TaggedItems: []string{"ci1", "ghost_item"},
					},
				},
			},
		},
	}, nil
}

func (demoLoader) Footer(context.Context) (*catalog.FooterConfig, error) {
	return &catalog.FooterConfig{
		ID: "global",
		Columns: []*catalog.FooterColumn{
			{
				ID:    "col1",
				Title: "Company",
				Links: []*catalog.FooterLink{{ID: "lnk1", Label: "Imprint"}},
			},
		},
		SubFooter: catalog.SubFooterText{Text: "All rights reserved"},
		Copyright: domain.MultilingualText{"en": "© ACME"},
	}, nil
}

// logAdapter stands in for a real backend writer: it prints every delivered
// intent instead of issuing HTTP calls.
type logAdapter struct{}

func (logAdapter) Apply(_ context.Context, intent interfaces.Intent) error {
	fmt.Printf("  -> delivered %s %s/%s\n", intent.Op, intent.Entity, intent.Key)
	return nil
}

func main() {
	ctx := context.Background()

	cfg := console.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "info"

	module, err := console.New(cfg, console.WithPersistenceAdapter(logAdapter{}))
	if err != nil {
		log.Fatalf("console: %v", err)
	}

	if err := module.Load(ctx, demoLoader{}); err != nil {
		log.Fatalf("load: %v", err)
	}

	fmt.Println("== container after load (ghost reference pruned) ==")
	containers, err := module.Store().Containers(ctx)
	if err != nil {
		log.Fatalf("containers: %v", err)
	}
	for _, container := range containers {
		fmt.Printf("  %s tagged=%v\n", container.ID, container.Settings.TaggedItems)
	}

	fmt.Println("== translation rows for News ==")
	rows, err := module.Reconciler().BuildRows(ctx, domain.SourceNews, "")
	if err != nil {
		log.Fatalf("rows: %v", err)
	}
	dump(rows)

	fmt.Println("== saving a French title ==")
	if err := module.SaveTranslations().Execute(ctx, console.SaveTranslationCommand{
		Source: string(domain.SourceNews),
		RowID:  rows[0].ID,
		Lang:   "fr",
		Fields: map[string]string{"title": "Lancement du produit"},
	}); err != nil {
		log.Fatalf("save: %v", err)
	}

	entry, err := module.Dictionary().GetByKey(ctx, "n1")
	if err != nil {
		log.Fatalf("dictionary: %v", err)
	}
	dump(entry)

	fmt.Println("== flushing the persistence outbox ==")
	deadline, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := module.Worker().Process(deadline); err != nil {
		log.Fatalf("outbox: %v", err)
	}
}

func dump(v any) {
	encoded, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Fprintln(os.Stdout, "  "+string(encoded))
}
