package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLocale is the language every populated MultilingualText must carry.
const DefaultLocale = "en"

// MultilingualText maps language codes to localized strings.
type MultilingualText map[string]string

// Resolve returns the value for the requested language, falling back to the
// default locale and finally to the supplied fallback. It never panics and
// never returns a missing-key sentinel; absent text resolves to fallback.
func (t MultilingualText) Resolve(lang, fallback string) string {
	if len(t) == 0 {
		return fallback
	}
	if value, ok := t[lang]; ok && value != "" {
		return value
	}
	if value, ok := t[DefaultLocale]; ok && value != "" {
		return value
	}
	return fallback
}

// Clone returns an independent copy of the text map.
func (t MultilingualText) Clone() MultilingualText {
	if t == nil {
		return nil
	}
	copied := make(MultilingualText, len(t))
	for lang, value := range t {
		copied[lang] = value
	}
	return copied
}

// GetLocalizedText resolves text for a language with the standard fallback
// chain: requested language, then default locale, then empty string.
func GetLocalizedText(t MultilingualText, lang string) string {
	return t.Resolve(lang, "")
}

// SourceList identifies which entity collection a translatable row belongs
// to. The tag is immutable once a row exists.
type SourceList string

const (
	SourceTopNavigation  SourceList = "TopNavigation"
	SourceSmartPages     SourceList = "SmartPages"
	SourceNews           SourceList = "News"
	SourceEvents         SourceList = "Events"
	SourceDocuments      SourceList = "Documents"
	SourceContainers     SourceList = "Containers"
	SourceGlobalSettings SourceList = "GlobalSettings"
	SourceContactQueries SourceList = "ContactQueries"
	SourceContainerItems SourceList = "ContainerItems"
	SourceSliderItems    SourceList = "SliderItems"
)

// KnownSourceLists returns the default ordered enumeration used when no
// explicit TranslationSources configuration is supplied.
func KnownSourceLists() []SourceList {
	return []SourceList{
		SourceTopNavigation,
		SourceSmartPages,
		SourceNews,
		SourceEvents,
		SourceDocuments,
		SourceContainers,
		SourceGlobalSettings,
		SourceContactQueries,
		SourceContainerItems,
		SourceSliderItems,
	}
}

// ErrUnknownSourceList reports a tag outside the known enumeration.
var ErrUnknownSourceList = errors.New("domain: unknown source list")

// ParseSourceList resolves a configured tag into a SourceList. Matching is
// case-insensitive to survive hand-edited configuration values.
func ParseSourceList(tag string) (SourceList, error) {
	trimmed := strings.TrimSpace(tag)
	for _, known := range KnownSourceLists() {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSourceList, trimmed)
}

// String satisfies fmt.Stringer.
func (s SourceList) String() string {
	return string(s)
}

// LaterTimestamp resolves the "last updated" value for a merged row. The
// entity timestamp arrives as a stored string that may be absent or
// unparseable; the cache timestamp is a typed time that may be zero. The
// later of the two wins when both parse; otherwise whichever is present is
// used; a zero result means "unset".
func LaterTimestamp(entityModified string, cacheUpdated time.Time) time.Time {
	parsed, ok := ParseTimestamp(entityModified)
	switch {
	case ok && !cacheUpdated.IsZero():
		if parsed.After(cacheUpdated) {
			return parsed
		}
		return cacheUpdated
	case ok:
		return parsed
	default:
		return cacheUpdated
	}
}

// ParseTimestamp parses stored timestamp strings, accepting RFC 3339 first
// and a handful of legacy layouts seen in exported list data.
func ParseTimestamp(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
