package integrity

import (
	"context"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/logging"
	"github.com/goliatone/go-console/pkg/interfaces"
)

// Service keeps container tagged-item references free of dangling IDs.
// Corrections are applied copy-on-write to the in-memory graph first; each
// changed container is then re-sent to the backing store as a whole record.
// Local correctness is prioritised: a failed persistence enqueue is logged
// and the corrected in-memory state is retained.
type Service struct {
	store  *catalog.Store
	outbox interfaces.Outbox
	logger interfaces.Logger
}

// Option mutates the service configuration.
type Option func(*Service)

// WithOutbox attaches the persistence outbox for container corrections.
func WithOutbox(outbox interfaces.Outbox) Option {
	return func(s *Service) {
		s.outbox = outbox
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the referential integrity engine.
func NewService(store *catalog.Store, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// RemoveItemFromContainers strips itemID from every container that tags it.
// Containers that do not reference the id are left untouched, so running
// the operation twice changes nothing the second time. It returns the
// number of corrected containers.
func (s *Service) RemoveItemFromContainers(ctx context.Context, itemID string) (int, error) {
	if itemID == "" {
		return 0, nil
	}
	return s.sweep(ctx, "remove_item", func(settings catalog.ContainerSettings) (catalog.ContainerSettings, bool) {
		if !settings.HasTaggedItem(itemID) {
			return settings, false
		}
		return settings.WithoutTaggedItem(itemID), true
	})
}

// ValidateTaggedItems filters every container's tagged items down to IDs
// that name a currently existing entity in some store. Run once after a
// bulk load; it is idempotent and issues no persistence calls when nothing
// dangles.
func (s *Service) ValidateTaggedItems(ctx context.Context) (int, error) {
	valid, err := s.validIDs(ctx)
	if err != nil {
		return 0, err
	}
	return s.sweep(ctx, "validate", func(settings catalog.ContainerSettings) (catalog.ContainerSettings, bool) {
		filtered := make([]string, 0, len(settings.TaggedItems))
		for _, id := range settings.TaggedItems {
			if _, ok := valid[id]; ok {
				filtered = append(filtered, id)
			}
		}
		if len(filtered) == len(settings.TaggedItems) {
			return settings, false
		}
		corrected := settings.Clone()
		corrected.TaggedItems = filtered
		return corrected, true
	})
}

// sweep applies a settings correction across every container on every page.
// Only pages with at least one changed container are replaced; unchanged
// containers keep their original snapshots.
func (s *Service) sweep(ctx context.Context, operation string, correct func(catalog.ContainerSettings) (catalog.ContainerSettings, bool)) (int, error) {
	pages, err := s.store.Pages.List(ctx)
	if err != nil {
		return 0, err
	}

	changedTotal := 0
	for _, page := range pages {
		var changed []*catalog.Container
		for i, container := range page.Containers {
			corrected, dirty := correct(container.Settings)
			if !dirty {
				continue
			}
			replacement := container.Clone()
			replacement.Settings = corrected
			page.Containers[i] = replacement
			changed = append(changed, replacement)
		}
		if len(changed) == 0 {
			continue
		}
		if err := s.store.ReplacePage(ctx, page); err != nil {
			logging.WithFields(s.logger, map[string]any{
				"operation": operation,
				"page_id":   page.ID,
			}).Error("integrity.page.replace_failed", "error", err)
			continue
		}
		for _, container := range changed {
			s.persistContainer(ctx, operation, container)
		}
		changedTotal += len(changed)
	}

	if changedTotal > 0 {
		logging.WithFields(s.logger, map[string]any{
			"operation":  operation,
			"containers": changedTotal,
		}).Info("integrity.sweep.corrected")
	}
	return changedTotal, nil
}

func (s *Service) validIDs(ctx context.Context) (map[string]struct{}, error) {
	valid := make(map[string]struct{})

	news, err := s.store.News.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range news {
		valid[record.ID] = struct{}{}
	}
	events, err := s.store.Events.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range events {
		valid[record.ID] = struct{}{}
	}
	documents, err := s.store.Documents.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range documents {
		valid[record.ID] = struct{}{}
	}
	containerItems, err := s.store.ContainerItems.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range containerItems {
		valid[record.ID] = struct{}{}
	}
	contacts, err := s.store.Contacts.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range contacts {
		valid[record.ID] = struct{}{}
	}
	sliderItems, err := s.store.SliderItems.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range sliderItems {
		valid[record.ID] = struct{}{}
	}
	pages, err := s.store.Pages.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range pages {
		valid[record.ID] = struct{}{}
	}
	return valid, nil
}

// persistContainer re-sends the full container record. The backing store
// models containers as flat update-whole-record entities, so the entire
// payload goes out, not just the settings delta.
func (s *Service) persistContainer(ctx context.Context, operation string, container *catalog.Container) {
	if s.outbox == nil {
		return
	}
	spec := interfaces.IntentSpec{
		Op:     interfaces.IntentOpUpsert,
		Entity: catalog.EntityContainer,
		Key:    container.ID,
		Payload: map[string]any{
			"id":            container.ID,
			"page_id":       container.PageID,
			"type":          container.Type,
			"order":         container.Order,
			"title":         container.Title,
			"button_label":  container.ButtonLabel,
			"button_target": container.ButtonTarget,
			"content":       container.Content,
			"visible":       container.Visible,
			"settings": map[string]any{
				"source":      container.Settings.Source,
				"taggedItems": container.Settings.TaggedItems,
				"extra":       container.Settings.Extra,
			},
		},
	}
	if _, err := s.outbox.Enqueue(ctx, spec); err != nil {
		logging.WithFields(s.logger, map[string]any{
			"operation":    operation,
			"container_id": container.ID,
		}).Error("integrity.container.persist_failed", "error", err)
	}
}
