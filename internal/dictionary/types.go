package dictionary

import (
	"time"

	"github.com/goliatone/go-console/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entry is one row of the flat translation dictionary: a denormalized index
// over every translatable entity, usable without knowing the entity type.
// It is a convenience index, not a source of truth; embedded entity
// translations win over it on reconciliation.
type Entry struct {
	bun.BaseModel `bun:"table:translation_entries,alias:te"`

	ID           uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Key          string            `bun:"key,notnull,unique" json:"key"`
	SourceList   domain.SourceList `bun:"source_list,notnull" json:"source_list"`
	Original     string            `bun:"original,notnull" json:"original"`
	Translations map[string]string `bun:"translations,type:jsonb" json:"translations,omitempty"`
	LastUpdated  time.Time         `bun:"last_updated,nullzero" json:"last_updated"`
}

// Clone returns an independent copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	copied := *e
	if e.Translations != nil {
		copied.Translations = make(map[string]string, len(e.Translations))
		for lang, value := range e.Translations {
			copied.Translations[lang] = value
		}
	}
	return &copied
}

// Composite keys for footer sub-entities. Footer links and columns do not
// own stores of their own, so their dictionary rows synthesize stable keys.
const (
	FooterColumnKeyPrefix = "footer_col_"
	FooterLinkKeyPrefix   = "footer_link_"
	SubFooterKey          = "footer_subfooter"
	CopyrightKey          = "footer_copyright"
)

// FooterColumnKey builds the composite dictionary key for a footer column.
func FooterColumnKey(columnID string) string {
	return FooterColumnKeyPrefix + columnID
}

// FooterLinkKey builds the composite dictionary key for a footer link.
func FooterLinkKey(linkID string) string {
	return FooterLinkKeyPrefix + linkID
}
