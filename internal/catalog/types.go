package catalog

import (
	"github.com/goliatone/go-console/internal/domain"
	"github.com/uptrace/bun"
)

// Translations is the embedded per-entity translation map used by rich
// content records: language code to field name to localized value.
type Translations map[string]map[string]string

// Clone returns an independent copy of the embedded translation map.
func (t Translations) Clone() Translations {
	if t == nil {
		return nil
	}
	copied := make(Translations, len(t))
	for lang, fields := range t {
		inner := make(map[string]string, len(fields))
		for field, value := range fields {
			inner[field] = value
		}
		copied[lang] = inner
	}
	return copied
}

// Set writes a single localized field, creating the language sub-object when
// absent, and returns the possibly re-allocated map.
func (t Translations) Set(lang, field, value string) Translations {
	if t == nil {
		t = make(Translations)
	}
	if t[lang] == nil {
		t[lang] = make(map[string]string)
	}
	t[lang][field] = value
	return t
}

// NewsItem is a news entry with embedded per-language overrides.
type NewsItem struct {
	bun.BaseModel `bun:"table:news_items,alias:ni"`

	ID           string       `bun:"id,pk" json:"id"`
	Title        string       `bun:"title,notnull" json:"title"`
	Description  string       `bun:"description" json:"description"`
	ReadMore     string       `bun:"read_more" json:"read_more"`
	Date         string       `bun:"date" json:"date,omitempty"`
	Modified     string       `bun:"modified" json:"modified,omitempty"`
	Translations Translations `bun:"translations,type:jsonb" json:"translations,omitempty"`
}

func (n *NewsItem) GetID() string { return n.ID }

func (n *NewsItem) Clone() *NewsItem {
	if n == nil {
		return nil
	}
	copied := *n
	copied.Translations = n.Translations.Clone()
	return &copied
}

// Event is a calendar entry with embedded per-language overrides.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:ev"`

	ID           string       `bun:"id,pk" json:"id"`
	Title        string       `bun:"title,notnull" json:"title"`
	Description  string       `bun:"description" json:"description"`
	Location     string       `bun:"location" json:"location"`
	StartsAt     string       `bun:"starts_at" json:"starts_at,omitempty"`
	Modified     string       `bun:"modified" json:"modified,omitempty"`
	Translations Translations `bun:"translations,type:jsonb" json:"translations,omitempty"`
}

func (e *Event) GetID() string { return e.ID }

func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	copied := *e
	copied.Translations = e.Translations.Clone()
	return &copied
}

// Document is a downloadable asset reference with translatable metadata.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:doc"`

	ID           string       `bun:"id,pk" json:"id"`
	Title        string       `bun:"title,notnull" json:"title"`
	Description  string       `bun:"description" json:"description"`
	URL          string       `bun:"url" json:"url,omitempty"`
	Modified     string       `bun:"modified" json:"modified,omitempty"`
	Translations Translations `bun:"translations,type:jsonb" json:"translations,omitempty"`
}

func (d *Document) GetID() string { return d.ID }

func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	copied := *d
	copied.Translations = d.Translations.Clone()
	return &copied
}

// NavItem is a top-navigation entry. Its embedded translations are flat
// language-to-label values rather than per-field sub-objects.
type NavItem struct {
	bun.BaseModel `bun:"table:nav_items,alias:nav"`

	ID           string            `bun:"id,pk" json:"id"`
	Label        string            `bun:"label,notnull" json:"label"`
	Target       string            `bun:"target" json:"target,omitempty"`
	Order        int               `bun:"sort_order" json:"order"`
	Modified     string            `bun:"modified" json:"modified,omitempty"`
	Translations map[string]string `bun:"translations,type:jsonb" json:"translations,omitempty"`
}

func (n *NavItem) GetID() string { return n.ID }

func (n *NavItem) Clone() *NavItem {
	if n == nil {
		return nil
	}
	copied := *n
	if n.Translations != nil {
		copied.Translations = make(map[string]string, len(n.Translations))
		for lang, value := range n.Translations {
			copied.Translations[lang] = value
		}
	}
	return &copied
}

// ContainerItem is a reusable content card referenced by layout containers.
type ContainerItem struct {
	bun.BaseModel `bun:"table:container_items,alias:cit"`

	ID           string       `bun:"id,pk" json:"id"`
	Title        string       `bun:"title,notnull" json:"title"`
	Description  string       `bun:"description" json:"description"`
	ImageURL     string       `bun:"image_url" json:"image_url,omitempty"`
	Modified     string       `bun:"modified" json:"modified,omitempty"`
	Translations Translations `bun:"translations,type:jsonb" json:"translations,omitempty"`
}

func (c *ContainerItem) GetID() string { return c.ID }

func (c *ContainerItem) Clone() *ContainerItem {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Translations = c.Translations.Clone()
	return &copied
}

// Contact is a contact-query record; the subject line is its translatable
// title equivalent.
type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:ct"`

	ID           string       `bun:"id,pk" json:"id"`
	Subject      string       `bun:"subject,notnull" json:"subject"`
	Name         string       `bun:"name" json:"name,omitempty"`
	Email        string       `bun:"email" json:"email,omitempty"`
	Modified     string       `bun:"modified" json:"modified,omitempty"`
	Translations Translations `bun:"translations,type:jsonb" json:"translations,omitempty"`
}

func (c *Contact) GetID() string { return c.ID }

func (c *Contact) Clone() *Contact {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Translations = c.Translations.Clone()
	return &copied
}

// SliderItem is a hero-slider entry.
type SliderItem struct {
	bun.BaseModel `bun:"table:slider_items,alias:sl"`

	ID           string       `bun:"id,pk" json:"id"`
	Title        string       `bun:"title,notnull" json:"title"`
	Caption      string       `bun:"caption" json:"caption"`
	ImageURL     string       `bun:"image_url" json:"image_url,omitempty"`
	Order        int          `bun:"sort_order" json:"order"`
	Modified     string       `bun:"modified" json:"modified,omitempty"`
	Translations Translations `bun:"translations,type:jsonb" json:"translations,omitempty"`
}

func (s *SliderItem) GetID() string { return s.ID }

func (s *SliderItem) Clone() *SliderItem {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Translations = s.Translations.Clone()
	return &copied
}

// Page owns its layout containers. Page titles store MultilingualText
// directly rather than an embedded per-language sub-object.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:pg"`

	ID         string                `bun:"id,pk" json:"id"`
	Slug       string                `bun:"slug,notnull" json:"slug"`
	Title      domain.MultilingualText `bun:"title,type:jsonb" json:"title"`
	Order      int                   `bun:"sort_order" json:"order"`
	Modified   string                `bun:"modified" json:"modified,omitempty"`
	Containers []*Container          `bun:"rel:has-many,join:id=page_id" json:"containers,omitempty"`
}

func (p *Page) GetID() string { return p.ID }

func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Title = p.Title.Clone()
	if p.Containers != nil {
		copied.Containers = make([]*Container, len(p.Containers))
		for i, container := range p.Containers {
			copied.Containers[i] = container.Clone()
		}
	}
	return &copied
}

// Container is a layout block belonging to exactly one page. Its settings
// carry weak tagged-item references into other entity stores.
type Container struct {
	bun.BaseModel `bun:"table:containers,alias:cn"`

	ID           string            `bun:"id,pk" json:"id"`
	PageID       string            `bun:"page_id,notnull" json:"page_id"`
	Type         string            `bun:"type,notnull" json:"type"`
	Order        int               `bun:"sort_order" json:"order"`
	Title        string            `bun:"title" json:"title"`
	ButtonLabel  string            `bun:"button_label" json:"button_label,omitempty"`
	ButtonTarget string            `bun:"button_target" json:"button_target,omitempty"`
	Content      string            `bun:"content" json:"content,omitempty"`
	Visible      bool              `bun:"visible,notnull,default:true" json:"visible"`
	Modified     string            `bun:"modified" json:"modified,omitempty"`
	Settings     ContainerSettings `bun:"settings,type:jsonb" json:"settings"`
	Translations Translations      `bun:"translations,type:jsonb" json:"translations,omitempty"`
}

func (c *Container) GetID() string { return c.ID }

func (c *Container) Clone() *Container {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Settings = c.Settings.Clone()
	copied.Translations = c.Translations.Clone()
	return &copied
}

// FooterColumn groups footer links beneath a translatable heading.
type FooterColumn struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Links        []*FooterLink     `json:"links,omitempty"`
	Translations map[string]string `json:"translations,omitempty"`
}

func (c *FooterColumn) Clone() *FooterColumn {
	if c == nil {
		return nil
	}
	copied := *c
	if c.Links != nil {
		copied.Links = make([]*FooterLink, len(c.Links))
		for i, link := range c.Links {
			copied.Links[i] = link.Clone()
		}
	}
	if c.Translations != nil {
		copied.Translations = make(map[string]string, len(c.Translations))
		for lang, value := range c.Translations {
			copied.Translations[lang] = value
		}
	}
	return &copied
}

// FooterLink is a single footer navigation entry.
type FooterLink struct {
	ID           string            `json:"id"`
	Label        string            `json:"label"`
	Target       string            `json:"target,omitempty"`
	Translations map[string]string `json:"translations,omitempty"`
}

func (l *FooterLink) Clone() *FooterLink {
	if l == nil {
		return nil
	}
	copied := *l
	if l.Translations != nil {
		copied.Translations = make(map[string]string, len(l.Translations))
		for lang, value := range l.Translations {
			copied.Translations[lang] = value
		}
	}
	return &copied
}

// SubFooterText is the fine-print strip below the footer columns.
type SubFooterText struct {
	Text         string            `json:"text"`
	Translations map[string]string `json:"translations,omitempty"`
}

// FooterConfig is persisted as one unit: edits to any nested element save
// the whole configuration. Copyright stores MultilingualText directly.
type FooterConfig struct {
	bun.BaseModel `bun:"table:footer_config,alias:fc"`

	ID        string                  `bun:"id,pk" json:"id"`
	Columns   []*FooterColumn         `bun:"columns,type:jsonb" json:"columns,omitempty"`
	SubFooter SubFooterText           `bun:"sub_footer,type:jsonb" json:"sub_footer"`
	Copyright domain.MultilingualText `bun:"copyright,type:jsonb" json:"copyright,omitempty"`
	Modified  string                  `bun:"modified" json:"modified,omitempty"`
}

func (f *FooterConfig) Clone() *FooterConfig {
	if f == nil {
		return nil
	}
	copied := *f
	if f.Columns != nil {
		copied.Columns = make([]*FooterColumn, len(f.Columns))
		for i, column := range f.Columns {
			copied.Columns[i] = column.Clone()
		}
	}
	if f.SubFooter.Translations != nil {
		copied.SubFooter.Translations = make(map[string]string, len(f.SubFooter.Translations))
		for lang, value := range f.SubFooter.Translations {
			copied.SubFooter.Translations[lang] = value
		}
	}
	copied.Copyright = f.Copyright.Clone()
	return &copied
}
