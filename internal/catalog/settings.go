package catalog

import "encoding/json"

// ContainerSettings is the typed replacement for the legacy untyped settings
// bag. TaggedItems holds weak references (IDs, not ownership) into the entity
// store selected by Source; Extra preserves fields this core does not model.
type ContainerSettings struct {
	Source      string         `json:"source,omitempty"`
	TaggedItems []string       `json:"taggedItems,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Clone returns an independent copy of the settings.
func (s ContainerSettings) Clone() ContainerSettings {
	copied := s
	if s.TaggedItems != nil {
		copied.TaggedItems = make([]string, len(s.TaggedItems))
		copy(copied.TaggedItems, s.TaggedItems)
	}
	if s.Extra != nil {
		copied.Extra = make(map[string]any, len(s.Extra))
		for key, value := range s.Extra {
			copied.Extra[key] = value
		}
	}
	return copied
}

// HasTaggedItem reports whether the settings reference the given entity id.
func (s ContainerSettings) HasTaggedItem(id string) bool {
	for _, tagged := range s.TaggedItems {
		if tagged == id {
			return true
		}
	}
	return false
}

// WithoutTaggedItem returns settings with the given id filtered out,
// preserving the order of the remaining references. The receiver is not
// mutated.
func (s ContainerSettings) WithoutTaggedItem(id string) ContainerSettings {
	copied := s.Clone()
	if !s.HasTaggedItem(id) {
		return copied
	}
	filtered := make([]string, 0, len(s.TaggedItems))
	for _, tagged := range s.TaggedItems {
		if tagged != id {
			filtered = append(filtered, tagged)
		}
	}
	copied.TaggedItems = filtered
	return copied
}

// ParseContainerSettings decodes stored settings JSON. Malformed payloads
// recover to zero-value settings; storage corruption is never fatal here.
func ParseContainerSettings(raw []byte) ContainerSettings {
	if len(raw) == 0 {
		return ContainerSettings{}
	}
	var settings ContainerSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return ContainerSettings{}
	}
	return settings
}
