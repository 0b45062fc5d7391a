package reconcile

import (
	"time"

	"github.com/goliatone/go-console/internal/catalog"
	"github.com/goliatone/go-console/internal/dictionary"
	"github.com/goliatone/go-console/internal/domain"
)

var zeroTime time.Time

// mergeWithEntry unions the dictionary entry's translations with the
// entity-extracted map. Extracted values win on key collision; everything
// present in either side survives. LastUpdated takes the later of the
// entity's timestamp (already resolved into row.LastUpdated) and the
// entry's.
func mergeWithEntry(row Row, entry *dictionary.Entry) (map[string]string, time.Time) {
	if entry == nil {
		if row.Translations == nil {
			return map[string]string{}, row.LastUpdated
		}
		return row.Translations, row.LastUpdated
	}

	merged := make(map[string]string, len(entry.Translations)+len(row.Translations))
	for lang, value := range entry.Translations {
		merged[lang] = value
	}
	for lang, value := range row.Translations {
		merged[lang] = value
	}

	last := row.LastUpdated
	if entry.LastUpdated.After(last) {
		last = entry.LastUpdated
	}
	return merged, last
}

// extractField flattens embedded per-field translations to lang→value for
// the list's title-equivalent field. Languages whose sub-object lacks the
// field yield no key; entities without embedded translations yield an
// empty map.
func extractField(translations catalog.Translations, field string) map[string]string {
	out := make(map[string]string, len(translations))
	for lang, fields := range translations {
		if value, ok := fields[field]; ok && value != "" {
			out[lang] = value
		}
	}
	return out
}

// cloneFlat copies an already-flat lang→value translation map.
func cloneFlat(translations map[string]string) map[string]string {
	out := make(map[string]string, len(translations))
	for lang, value := range translations {
		out[lang] = value
	}
	return out
}

// nonDefaultLocales extracts every non-default language from a
// MultilingualText; the default-language value is the row's Original.
func nonDefaultLocales(text domain.MultilingualText) map[string]string {
	out := make(map[string]string)
	for lang, value := range text {
		if lang == domain.DefaultLocale || value == "" {
			continue
		}
		out[lang] = value
	}
	return out
}
