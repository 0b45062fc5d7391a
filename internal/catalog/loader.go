package catalog

import (
	"context"
	"sync"

	"github.com/goliatone/go-console/internal/logging"
)

// Loader fans out the bulk fetches of a full data load. Each method is an
// independent remote call; implementations should return their own errors
// and leave fault tolerance to the store.
type Loader interface {
	News(ctx context.Context) ([]*NewsItem, error)
	Events(ctx context.Context) ([]*Event, error)
	Documents(ctx context.Context) ([]*Document, error)
	NavItems(ctx context.Context) ([]*NavItem, error)
	ContainerItems(ctx context.Context) ([]*ContainerItem, error)
	Contacts(ctx context.Context) ([]*Contact, error)
	SliderItems(ctx context.Context) ([]*SliderItem, error)
	Pages(ctx context.Context) ([]*Page, error)
	Footer(ctx context.Context) (*FooterConfig, error)
}

// LoadAll issues the loader fetches in parallel and replaces every
// collection once all of them settle. A failed fetch logs a warning and
// loads an empty collection; sibling results are still applied. Callers run
// the referential-integrity validation pass after LoadAll returns.
func (s *Store) LoadAll(ctx context.Context, loader Loader) {
	if loader == nil {
		return
	}

	var (
		wg             sync.WaitGroup
		news           []*NewsItem
		events         []*Event
		documents      []*Document
		navItems       []*NavItem
		containerItems []*ContainerItem
		contacts       []*Contact
		sliderItems    []*SliderItem
		pages          []*Page
		footer         *FooterConfig
	)

	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				logging.WithFields(s.logger, map[string]any{
					"collection": name,
				}).Warn("catalog.load.fetch_failed", "error", err)
			}
		}()
	}

	fetch("news", func() (err error) { news, err = loader.News(ctx); return })
	fetch("events", func() (err error) { events, err = loader.Events(ctx); return })
	fetch("documents", func() (err error) { documents, err = loader.Documents(ctx); return })
	fetch("nav_items", func() (err error) { navItems, err = loader.NavItems(ctx); return })
	fetch("container_items", func() (err error) { containerItems, err = loader.ContainerItems(ctx); return })
	fetch("contacts", func() (err error) { contacts, err = loader.Contacts(ctx); return })
	fetch("slider_items", func() (err error) { sliderItems, err = loader.SliderItems(ctx); return })
	fetch("pages", func() (err error) { pages, err = loader.Pages(ctx); return })
	fetch("footer", func() (err error) { footer, err = loader.Footer(ctx); return })

	wg.Wait()

	s.News.ReplaceAll(ctx, news)
	s.Events.ReplaceAll(ctx, events)
	s.Documents.ReplaceAll(ctx, documents)
	s.NavItems.ReplaceAll(ctx, navItems)
	s.ContainerItems.ReplaceAll(ctx, containerItems)
	s.Contacts.ReplaceAll(ctx, contacts)
	s.SliderItems.ReplaceAll(ctx, sliderItems)
	s.Pages.ReplaceAll(ctx, pages)

	s.footerMu.Lock()
	s.footer = footer.Clone()
	s.footerMu.Unlock()
}
