package reconcile

import (
	"time"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/domain"
)

// Row is one merged line of the unified translation view: the entity's
// default-language text plus the union of its embedded translations and the
// dictionary entry for the same key.
type Row struct {
	ID           string
	Source       domain.SourceList
	Original     string
	Translations map[string]string
	// LastUpdated is the later of the entity's modification timestamp and
	// the dictionary entry's timestamp; the zero value means "unset".
	LastUpdated time.Time
	Item        Item
}

// Item is the tagged union identifying which entity a row belongs to. The
// reconciler's write path switches over the concrete variants exhaustively,
// so every entity kind is guaranteed a handler.
type Item interface {
	rowItem()
}

// NewsRef marks a row owned by a news item.
type NewsRef struct {
	News *catalog.NewsItem
}

// EventRef marks a row owned by an event.
type EventRef struct {
	Event *catalog.Event
}

// DocumentRef marks a row owned by a document.
type DocumentRef struct {
	Document *catalog.Document
}

// NavItemRef marks a row owned by a top-navigation entry.
type NavItemRef struct {
	NavItem *catalog.NavItem
}

// PageRef marks a row owned by a page title.
type PageRef struct {
	Page *catalog.Page
}

// ContainerRef marks a row owned by a layout container.
type ContainerRef struct {
	Container *catalog.Container
}

// ContainerItemRef marks a row owned by a container item.
type ContainerItemRef struct {
	ContainerItem *catalog.ContainerItem
}

// ContactRef marks a row owned by a contact query.
type ContactRef struct {
	Contact *catalog.Contact
}

// SliderItemRef marks a row owned by a slider entry.
type SliderItemRef struct {
	SliderItem *catalog.SliderItem
}

// FooterColumnRef marks a row synthesized from a footer column heading.
type FooterColumnRef struct {
	Column *catalog.FooterColumn
}

// FooterLinkRef marks a row synthesized from a footer link label.
type FooterLinkRef struct {
	Link *catalog.FooterLink
}

// SubFooterRef marks the single sub-footer text row.
type SubFooterRef struct{}

// CopyrightRef marks the single footer copyright row.
type CopyrightRef struct{}

func (NewsRef) rowItem()          {}
func (EventRef) rowItem()         {}
func (DocumentRef) rowItem()      {}
func (NavItemRef) rowItem()       {}
func (PageRef) rowItem()          {}
func (ContainerRef) rowItem()     {}
func (ContainerItemRef) rowItem() {}
func (ContactRef) rowItem()       {}
func (SliderItemRef) rowItem()    {}
func (FooterColumnRef) rowItem()  {}
func (FooterLinkRef) rowItem()    {}
func (SubFooterRef) rowItem()     {}
func (CopyrightRef) rowItem()     {}
