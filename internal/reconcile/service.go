package reconcile

import (
	"context"
	"sort"
	"strings"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/dictionary"
	"github.com/goliatone/go-console/internal/domain"
	"github.com/goliatone/go-console/internal/logging"
	"github.com/goliatone/go-console/pkg/interfaces"
)

// Field names used across translatable entities.
const (
	FieldTitle       = "title"
	FieldLabel       = "label"
	FieldSubject     = "subject"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldCaption     = "caption"
	FieldReadMore    = "read_more"
	FieldText        = "text"
)

// primaryFieldOrder is the fixed lookup order for the value fanned out to
// the dictionary. Title wins, then label, then the remaining fields in a
// stable order. Downstream consumers depend on the title bias, so the
// heuristic is preserved as-is.
var primaryFieldOrder = []string{
	FieldTitle, FieldLabel, FieldSubject, FieldText,
	FieldDescription, FieldLocation, FieldCaption, FieldReadMore,
}

// Option mutates the service configuration.
type Option func(*Service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service merges entity-embedded translations with the flat dictionary into
// edit-ready rows, and fans edits back out to both sides.
type Service struct {
	store  *catalog.Store
	dict   *dictionary.Service
	logger interfaces.Logger
}

// NewService constructs a translation reconciler.
func NewService(store *catalog.Store, dict *dictionary.Service, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		dict:   dict,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// BuildRows produces the merged translation rows for one source list. The
// merge is a union — no translation present in either the entity or the
// dictionary is discarded — and on key collision the entity-embedded value
// wins, because the entity is the field-level source of truth while the
// dictionary is a convenience index that can lag behind. Rows follow source
// order; search filters by case-insensitive substring on id and
// default-language text. The merge never writes dictionary entries; those
// appear lazily on the first save.
func (s *Service) BuildRows(ctx context.Context, source domain.SourceList, search string) ([]Row, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	if s.dict == nil {
		return nil, ErrDictionaryRequired
	}

	cache, err := s.dict.Index(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.sourceRows(ctx, source)
	if err != nil {
		return nil, err
	}

	merged := make([]Row, 0, len(rows))
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, row := range rows {
		entry := cache[row.ID]
		row.Translations, row.LastUpdated = mergeWithEntry(row, entry)
		if needle != "" &&
			!strings.Contains(strings.ToLower(row.ID), needle) &&
			!strings.Contains(strings.ToLower(row.Original), needle) {
			continue
		}
		merged = append(merged, row)
	}
	return merged, nil
}

// sourceRows extracts one row per live entity in the selected list, with
// the entity-embedded translations flattened to lang→title-equivalent.
func (s *Service) sourceRows(ctx context.Context, source domain.SourceList) ([]Row, error) {
	switch source {
	case domain.SourceNews:
		records, err := s.store.News.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, Row{
				ID:           record.ID,
				Source:       source,
				Original:     record.Title,
				Translations: extractField(record.Translations, FieldTitle),
				LastUpdated:  domain.LaterTimestamp(record.Modified, zeroTime),
				Item:         NewsRef{News: record},
			})
		}
		return rows, nil

	case domain.SourceEvents:
		records, err := s.store.Events.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, Row{
				ID:           record.ID,
				Source:       source,
				Original:     record.Title,
				Translations: extractField(record.Translations, FieldTitle),
				LastUpdated:  domain.LaterTimestamp(record.Modified, zeroTime),
				Item:         EventRef{Event: record},
			})
		}
		return rows, nil

	case domain.SourceDocuments:
		records, err := s.store.Documents.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, Row{
				ID:           record.ID,
				Source:       source,
				Original:     record.Title,
				Translations: extractField(record.Translations, FieldTitle),
				LastUpdated:  domain.LaterTimestamp(record.Modified, zeroTime),
				Item:         DocumentRef{Document: record},
			})
		}
		return rows, nil

	case domain.SourceTopNavigation:
		records, err := s.store.NavItems.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			// Nav translations are already flat lang→label strings.
			rows = append(rows, Row{
				ID:           record.ID,
				Source:       source,
				Original:     record.Label,
				Translations: cloneFlat(record.Translations),
				LastUpdated:  domain.LaterTimestamp(record.Modified, zeroTime),
				Item:         NavItemRef{NavItem: record},
			})
		}
		return rows, nil

	case domain.SourceSmartPages:
		records, err := s.store.Pages.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, Row{
				ID:           record.ID,
				Source:       source,
				Original:     domain.GetLocalizedText(record.Title, domain.DefaultLocale),
				Translations: nonDefaultLocales(record.Title),
				LastUpdated:  domain.LaterTimestamp(record.Modified, zeroTime),
				Item:         PageRef{Page: record},
			})
		}
		return rows, nil

	case domain.SourceContainers:
		containers, err := s.store.Containers(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(containers))
		for _, container := range containers {
			rows = append(rows, Row{
				ID:           container.ID,
				Source:       source,
				Original:     container.Title,
				Translations: extractField(container.Translations, FieldTitle),
				LastUpdated:  domain.LaterTimestamp(container.Modified, zeroTime),
				Item:         ContainerRef{Container: container},
			})
		}
		return rows, nil

	case domain.SourceContainerItems:
		records, err := s.store.ContainerItems.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, Row{
				ID:           record.ID,
				Source:       source,
				Original:     record.Title,
				Translations: extractField(record.Translations, FieldTitle),
				LastUpdated:  domain.LaterTimestamp(record.Modified, zeroTime),
				Item:         ContainerItemRef{ContainerItem: record},
			})
		}
		return rows, nil

	case domain.SourceContactQueries:
		records, err := s.store.Contacts.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, Row{
				ID:           record.ID,
				Source:       source,
				Original:     record.Subject,
				Translations: extractField(record.Translations, FieldSubject),
				LastUpdated:  domain.LaterTimestamp(record.Modified, zeroTime),
				Item:         ContactRef{Contact: record},
			})
		}
		return rows, nil

	case domain.SourceSliderItems:
		records, err := s.store.SliderItems.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, Row{
				ID:           record.ID,
				Source:       source,
				Original:     record.Title,
				Translations: extractField(record.Translations, FieldTitle),
				LastUpdated:  domain.LaterTimestamp(record.Modified, zeroTime),
				Item:         SliderItemRef{SliderItem: record},
			})
		}
		return rows, nil

	case domain.SourceGlobalSettings:
		return s.footerRows(ctx)

	default:
		return nil, ErrUnknownSourceList
	}
}

// footerRows synthesizes rows for the footer composite sub-entities with
// stable composite keys.
func (s *Service) footerRows(ctx context.Context) ([]Row, error) {
	footer := s.store.Footer(ctx)
	if footer == nil {
		return nil, nil
	}

	var rows []Row
	for _, column := range footer.Columns {
		rows = append(rows, Row{
			ID:           dictionary.FooterColumnKey(column.ID),
			Source:       domain.SourceGlobalSettings,
			Original:     column.Title,
			Translations: cloneFlat(column.Translations),
			LastUpdated:  domain.LaterTimestamp(footer.Modified, zeroTime),
			Item:         FooterColumnRef{Column: column},
		})
		for _, link := range column.Links {
			rows = append(rows, Row{
				ID:           dictionary.FooterLinkKey(link.ID),
				Source:       domain.SourceGlobalSettings,
				Original:     link.Label,
				Translations: cloneFlat(link.Translations),
				LastUpdated:  domain.LaterTimestamp(footer.Modified, zeroTime),
				Item:         FooterLinkRef{Link: link},
			})
		}
	}
	rows = append(rows, Row{
		ID:           dictionary.SubFooterKey,
		Source:       domain.SourceGlobalSettings,
		Original:     footer.SubFooter.Text,
		Translations: cloneFlat(footer.SubFooter.Translations),
		LastUpdated:  domain.LaterTimestamp(footer.Modified, zeroTime),
		Item:         SubFooterRef{},
	})
	rows = append(rows, Row{
		ID:           dictionary.CopyrightKey,
		Source:       domain.SourceGlobalSettings,
		Original:     domain.GetLocalizedText(footer.Copyright, domain.DefaultLocale),
		Translations: nonDefaultLocales(footer.Copyright),
		LastUpdated:  domain.LaterTimestamp(footer.Modified, zeroTime),
		Item:         CopyrightRef{},
	})
	return rows, nil
}

// SaveTranslation writes per-field values for one row and target language
// back to the owning entity, then upserts the flat dictionary entry so the
// cross-type view stays consistent. Entity persistence is optimistic: a
// failed entity write is logged and the dictionary is still updated, with
// no rollback of local state.
func (s *Service) SaveTranslation(ctx context.Context, row Row, lang string, fields map[string]string) error {
	if s.store == nil {
		return ErrStoreRequired
	}
	if s.dict == nil {
		return ErrDictionaryRequired
	}
	if strings.TrimSpace(lang) == "" {
		return ErrLanguageRequired
	}
	if len(fields) == 0 {
		return ErrNoFieldsProvided
	}

	original, err := s.writeEntity(ctx, row, lang, fields)
	if err != nil {
		logging.WithFields(s.logger, map[string]any{
			"row_id": row.ID,
			"source": row.Source.String(),
			"lang":   lang,
		}).Error("reconcile.entity.save_failed", "error", err)
		original = row.Original
	}

	if _, err := s.dict.Upsert(ctx, row.ID, row.Source, original, lang, PrimaryValue(fields)); err != nil {
		return err
	}
	return nil
}

// writeEntity dispatches the edit to the owning entity by row item variant
// and returns the entity's current default-language text.
func (s *Service) writeEntity(ctx context.Context, row Row, lang string, fields map[string]string) (string, error) {
	switch item := row.Item.(type) {
	case NewsRef:
		record, err := s.store.News.GetByID(ctx, item.News.ID)
		if err != nil {
			return "", err
		}
		for field, value := range fields {
			record.Translations = record.Translations.Set(lang, field, value)
		}
		_, err = s.store.SaveNews(ctx, record)
		return record.Title, err

	case EventRef:
		record, err := s.store.Events.GetByID(ctx, item.Event.ID)
		if err != nil {
			return "", err
		}
		for field, value := range fields {
			record.Translations = record.Translations.Set(lang, field, value)
		}
		_, err = s.store.SaveEvent(ctx, record)
		return record.Title, err

	case DocumentRef:
		record, err := s.store.Documents.GetByID(ctx, item.Document.ID)
		if err != nil {
			return "", err
		}
		for field, value := range fields {
			record.Translations = record.Translations.Set(lang, field, value)
		}
		_, err = s.store.SaveDocument(ctx, record)
		return record.Title, err

	case NavItemRef:
		record, err := s.store.NavItems.GetByID(ctx, item.NavItem.ID)
		if err != nil {
			return "", err
		}
		if record.Translations == nil {
			record.Translations = make(map[string]string)
		}
		record.Translations[lang] = PrimaryValue(fields)
		_, err = s.store.SaveNavItem(ctx, record)
		return record.Label, err

	case PageRef:
		record, err := s.store.Pages.GetByID(ctx, item.Page.ID)
		if err != nil {
			return "", err
		}
		// Page titles store MultilingualText directly.
		if record.Title == nil {
			record.Title = domain.MultilingualText{}
		}
		record.Title[lang] = PrimaryValue(fields)
		_, err = s.store.SavePage(ctx, record)
		return domain.GetLocalizedText(record.Title, domain.DefaultLocale), err

	case ContainerRef:
		container, err := s.findContainer(ctx, item.Container.ID)
		if err != nil {
			return "", err
		}
		for field, value := range fields {
			container.Translations = container.Translations.Set(lang, field, value)
		}
		return container.Title, s.store.UpdateContainer(ctx, container)

	case ContainerItemRef:
		record, err := s.store.ContainerItems.GetByID(ctx, item.ContainerItem.ID)
		if err != nil {
			return "", err
		}
		for field, value := range fields {
			record.Translations = record.Translations.Set(lang, field, value)
		}
		_, err = s.store.SaveContainerItem(ctx, record)
		return record.Title, err

	case ContactRef:
		record, err := s.store.Contacts.GetByID(ctx, item.Contact.ID)
		if err != nil {
			return "", err
		}
		for field, value := range fields {
			record.Translations = record.Translations.Set(lang, field, value)
		}
		_, err = s.store.SaveContact(ctx, record)
		return record.Subject, err

	case SliderItemRef:
		record, err := s.store.SliderItems.GetByID(ctx, item.SliderItem.ID)
		if err != nil {
			return "", err
		}
		for field, value := range fields {
			record.Translations = record.Translations.Set(lang, field, value)
		}
		_, err = s.store.SaveSliderItem(ctx, record)
		return record.Title, err

	case FooterColumnRef:
		return s.writeFooter(ctx, lang, fields, func(footer *catalog.FooterConfig, value string) (string, bool) {
			for _, column := range footer.Columns {
				if column.ID == item.Column.ID {
					if column.Translations == nil {
						column.Translations = make(map[string]string)
					}
					column.Translations[lang] = value
					return column.Title, true
				}
			}
			return "", false
		})

	case FooterLinkRef:
		return s.writeFooter(ctx, lang, fields, func(footer *catalog.FooterConfig, value string) (string, bool) {
			for _, column := range footer.Columns {
				for _, link := range column.Links {
					if link.ID == item.Link.ID {
						if link.Translations == nil {
							link.Translations = make(map[string]string)
						}
						link.Translations[lang] = value
						return link.Label, true
					}
				}
			}
			return "", false
		})

	case SubFooterRef:
		return s.writeFooter(ctx, lang, fields, func(footer *catalog.FooterConfig, value string) (string, bool) {
			if footer.SubFooter.Translations == nil {
				footer.SubFooter.Translations = make(map[string]string)
			}
			footer.SubFooter.Translations[lang] = value
			return footer.SubFooter.Text, true
		})

	case CopyrightRef:
		return s.writeFooter(ctx, lang, fields, func(footer *catalog.FooterConfig, value string) (string, bool) {
			// Copyright stores MultilingualText directly.
			if footer.Copyright == nil {
				footer.Copyright = domain.MultilingualText{}
			}
			footer.Copyright[lang] = value
			return domain.GetLocalizedText(footer.Copyright, domain.DefaultLocale), true
		})

	default:
		return "", ErrUnknownRowItem
	}
}

// writeFooter mutates one nested footer path and persists the whole footer
// configuration as one unit.
func (s *Service) writeFooter(ctx context.Context, lang string, fields map[string]string, apply func(*catalog.FooterConfig, string) (string, bool)) (string, error) {
	footer := s.store.Footer(ctx)
	if footer == nil {
		return "", &catalog.NotFoundError{Resource: "footer_config", Key: "global"}
	}
	original, ok := apply(footer, PrimaryValue(fields))
	if !ok {
		return "", &catalog.NotFoundError{Resource: "footer_element", Key: lang}
	}
	return original, s.store.SaveFooter(ctx, footer)
}

func (s *Service) findContainer(ctx context.Context, id string) (*catalog.Container, error) {
	containers, err := s.store.Containers(ctx)
	if err != nil {
		return nil, err
	}
	for _, container := range containers {
		if container.ID == id {
			return container, nil
		}
	}
	return nil, &catalog.NotFoundError{Resource: "container", Key: id}
}

// PrimaryValue picks the value fanned out to the flat dictionary: title,
// else label, else the first field present in a stable order.
func PrimaryValue(fields map[string]string) string {
	for _, field := range primaryFieldOrder {
		if value, ok := fields[field]; ok && value != "" {
			return value
		}
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if fields[key] != "" {
			return fields[key]
		}
	}
	return ""
}

