package catalog

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/goliatone/go-console/internal/logging"
	"github.com/goliatone/go-console/pkg/interfaces"
)

// Entity kinds carried on persistence intents.
const (
	EntityNews          = "news"
	EntityEvent         = "event"
	EntityDocument      = "document"
	EntityNavItem       = "nav_item"
	EntityContainerItem = "container_item"
	EntityContact       = "contact"
	EntitySliderItem    = "slider_item"
	EntityPage          = "page"
	EntityContainer     = "container"
	EntityFooter        = "footer_config"
)

// DeleteHook is invoked after an entity leaves its store so dependent state
// (container tagged items) can be corrected in the same logical step.
type DeleteHook func(ctx context.Context, itemID string)

// Store aggregates the typed entity collections of the console. Mutations
// are optimistic: local state is updated first and a persistence intent is
// enqueued for the backing store; enqueue failures are logged, never
// propagated, and never rolled back.
type Store struct {
	News           *MemoryRepository[*NewsItem]
	Events         *MemoryRepository[*Event]
	Documents      *MemoryRepository[*Document]
	NavItems       *MemoryRepository[*NavItem]
	ContainerItems *MemoryRepository[*ContainerItem]
	Contacts       *MemoryRepository[*Contact]
	SliderItems    *MemoryRepository[*SliderItem]
	Pages          *MemoryRepository[*Page]

	footerMu sync.RWMutex
	footer   *FooterConfig

	outbox   interfaces.Outbox
	logger   interfaces.Logger
	onDelete DeleteHook
}

// StoreOption mutates store construction.
type StoreOption func(*Store)

// WithOutbox attaches the persistence outbox used for fire-and-forget saves.
func WithOutbox(outbox interfaces.Outbox) StoreOption {
	return func(s *Store) {
		s.outbox = outbox
	}
}

// WithLogger overrides the store logger.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore constructs an empty store with all collections initialised.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		News:           NewMemoryRepository[*NewsItem](func(n *NewsItem, id string) { n.ID = id }),
		Events:         NewMemoryRepository[*Event](func(e *Event, id string) { e.ID = id }),
		Documents:      NewMemoryRepository[*Document](func(d *Document, id string) { d.ID = id }),
		NavItems:       NewMemoryRepository[*NavItem](func(n *NavItem, id string) { n.ID = id }),
		ContainerItems: NewMemoryRepository[*ContainerItem](func(c *ContainerItem, id string) { c.ID = id }),
		Contacts:       NewMemoryRepository[*Contact](func(c *Contact, id string) { c.ID = id }),
		SliderItems:    NewMemoryRepository[*SliderItem](func(s *SliderItem, id string) { s.ID = id }),
		Pages:          NewMemoryRepository[*Page](func(p *Page, id string) { p.ID = id }),
		logger:         logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnItemDeleted registers the cascade hook run after content-item deletes.
func (s *Store) OnItemDeleted(hook DeleteHook) {
	s.onDelete = hook
}

// SaveNews creates or updates a news item and queues its persistence.
func (s *Store) SaveNews(ctx context.Context, record *NewsItem) (*NewsItem, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	stored, err := upsert(ctx, s.News, record)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, EntityNews, stored.ID, stored)
	return stored, nil
}

// DeleteNews removes a news item, cascades tagged-item cleanup, and queues
// the remote delete.
func (s *Store) DeleteNews(ctx context.Context, id string) error {
	if err := s.News.Delete(ctx, id); err != nil {
		return err
	}
	s.cascade(ctx, id)
	s.persistDelete(ctx, EntityNews, id)
	return nil
}

// SaveEvent creates or updates an event and queues its persistence.
func (s *Store) SaveEvent(ctx context.Context, record *Event) (*Event, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	stored, err := upsert(ctx, s.Events, record)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, EntityEvent, stored.ID, stored)
	return stored, nil
}

// DeleteEvent removes an event with tagged-item cascade.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if err := s.Events.Delete(ctx, id); err != nil {
		return err
	}
	s.cascade(ctx, id)
	s.persistDelete(ctx, EntityEvent, id)
	return nil
}

// SaveDocument creates or updates a document and queues its persistence.
func (s *Store) SaveDocument(ctx context.Context, record *Document) (*Document, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	stored, err := upsert(ctx, s.Documents, record)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, EntityDocument, stored.ID, stored)
	return stored, nil
}

// DeleteDocument removes a document with tagged-item cascade.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	if err := s.Documents.Delete(ctx, id); err != nil {
		return err
	}
	s.cascade(ctx, id)
	s.persistDelete(ctx, EntityDocument, id)
	return nil
}

// SaveNavItem creates or updates a navigation entry.
func (s *Store) SaveNavItem(ctx context.Context, record *NavItem) (*NavItem, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	stored, err := upsert(ctx, s.NavItems, record)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, EntityNavItem, stored.ID, stored)
	return stored, nil
}

// DeleteNavItem removes a navigation entry. Nav items are never tagged, so
// no cascade runs.
func (s *Store) DeleteNavItem(ctx context.Context, id string) error {
	if err := s.NavItems.Delete(ctx, id); err != nil {
		return err
	}
	s.persistDelete(ctx, EntityNavItem, id)
	return nil
}

// SaveContainerItem creates or updates a container item.
func (s *Store) SaveContainerItem(ctx context.Context, record *ContainerItem) (*ContainerItem, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	stored, err := upsert(ctx, s.ContainerItems, record)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, EntityContainerItem, stored.ID, stored)
	return stored, nil
}

// DeleteContainerItem removes a container item with tagged-item cascade.
func (s *Store) DeleteContainerItem(ctx context.Context, id string) error {
	if err := s.ContainerItems.Delete(ctx, id); err != nil {
		return err
	}
	s.cascade(ctx, id)
	s.persistDelete(ctx, EntityContainerItem, id)
	return nil
}

// SaveContact creates or updates a contact query.
func (s *Store) SaveContact(ctx context.Context, record *Contact) (*Contact, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	stored, err := upsert(ctx, s.Contacts, record)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, EntityContact, stored.ID, stored)
	return stored, nil
}

// DeleteContact removes a contact query with tagged-item cascade.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	if err := s.Contacts.Delete(ctx, id); err != nil {
		return err
	}
	s.cascade(ctx, id)
	s.persistDelete(ctx, EntityContact, id)
	return nil
}

// SaveSliderItem creates or updates a slider entry.
func (s *Store) SaveSliderItem(ctx context.Context, record *SliderItem) (*SliderItem, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	stored, err := upsert(ctx, s.SliderItems, record)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, EntitySliderItem, stored.ID, stored)
	return stored, nil
}

// DeleteSliderItem removes a slider entry with tagged-item cascade.
func (s *Store) DeleteSliderItem(ctx context.Context, id string) error {
	if err := s.SliderItems.Delete(ctx, id); err != nil {
		return err
	}
	s.cascade(ctx, id)
	s.persistDelete(ctx, EntitySliderItem, id)
	return nil
}

// SavePage creates or updates a page and queues its persistence.
func (s *Store) SavePage(ctx context.Context, record *Page) (*Page, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	stored, err := upsert(ctx, s.Pages, record)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, EntityPage, stored.ID, stored)
	return stored, nil
}

// DeletePage removes a page. Dangling tagged references to the page heal on
// the next validation sweep.
func (s *Store) DeletePage(ctx context.Context, id string) error {
	if err := s.Pages.Delete(ctx, id); err != nil {
		return err
	}
	s.persistDelete(ctx, EntityPage, id)
	return nil
}

// ReplacePage swaps a page snapshot in place without queueing persistence.
// The integrity engine uses this for copy-on-write corrections and persists
// the affected containers itself.
func (s *Store) ReplacePage(ctx context.Context, record *Page) error {
	if record == nil {
		return ErrRecordRequired
	}
	_, err := s.Pages.Update(ctx, record)
	return err
}

// UpdateContainer replaces one container inside its owning page and queues
// the whole container record for persistence.
func (s *Store) UpdateContainer(ctx context.Context, container *Container) error {
	if container == nil {
		return ErrRecordRequired
	}
	page, err := s.Pages.GetByID(ctx, container.PageID)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range page.Containers {
		if existing.ID == container.ID {
			page.Containers[i] = container.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		return &NotFoundError{Resource: "container", Key: container.ID}
	}
	if _, err := s.Pages.Update(ctx, page); err != nil {
		return err
	}
	s.persist(ctx, EntityContainer, container.ID, container)
	return nil
}

// Containers returns a snapshot of every container across all pages, in
// page order then container order.
func (s *Store) Containers(ctx context.Context) ([]*Container, error) {
	pages, err := s.Pages.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*Container
	for _, page := range pages {
		out = append(out, page.Containers...)
	}
	return out, nil
}

// Footer returns the current footer configuration snapshot.
func (s *Store) Footer(_ context.Context) *FooterConfig {
	s.footerMu.RLock()
	defer s.footerMu.RUnlock()
	return s.footer.Clone()
}

// SaveFooter replaces the footer configuration and queues it for
// persistence as one unit.
func (s *Store) SaveFooter(ctx context.Context, footer *FooterConfig) error {
	if footer == nil {
		return ErrRecordRequired
	}
	s.footerMu.Lock()
	s.footer = footer.Clone()
	s.footerMu.Unlock()

	key := footer.ID
	if key == "" {
		key = "global"
	}
	s.persist(ctx, EntityFooter, key, footer)
	return nil
}

func (s *Store) cascade(ctx context.Context, itemID string) {
	if s.onDelete != nil {
		s.onDelete(ctx, itemID)
	}
}

func (s *Store) persist(ctx context.Context, entity, key string, record any) {
	s.enqueue(ctx, interfaces.IntentSpec{
		Op:      interfaces.IntentOpUpsert,
		Entity:  entity,
		Key:     key,
		Payload: recordPayload(record),
	})
}

func (s *Store) persistDelete(ctx context.Context, entity, key string) {
	s.enqueue(ctx, interfaces.IntentSpec{
		Op:     interfaces.IntentOpDelete,
		Entity: entity,
		Key:    key,
	})
}

func (s *Store) enqueue(ctx context.Context, spec interfaces.IntentSpec) {
	if s.outbox == nil {
		return
	}
	if _, err := s.outbox.Enqueue(ctx, spec); err != nil {
		logging.WithFields(s.logger, map[string]any{
			"entity": spec.Entity,
			"key":    spec.Key,
			"op":     spec.Op,
		}).Error("catalog.persist.enqueue_failed", "error", err)
	}
}

func upsert[T Record[T]](ctx context.Context, repo *MemoryRepository[T], record T) (T, error) {
	if record.GetID() != "" {
		if _, err := repo.GetByID(ctx, record.GetID()); err == nil {
			return repo.Update(ctx, record)
		}
	}
	return repo.Create(ctx, record)
}

// recordPayload flattens a record into the JSON shape the backing list
// store expects. Marshal failures degrade to an empty payload; the intent
// key still identifies the record.
func recordPayload(record any) map[string]any {
	raw, err := json.Marshal(record)
	if err != nil {
		return map[string]any{}
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return map[string]any{}
	}
	return payload
}
