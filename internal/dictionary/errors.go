package dictionary

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryRequired = errors.New("dictionary: repository is required")
	ErrKeyRequired        = errors.New("dictionary: entry key is required")
	ErrSourceListRequired = errors.New("dictionary: source list is required")
	ErrLanguageRequired   = errors.New("dictionary: target language is required")
)

// EntryNotFoundError reports a missing dictionary entry.
type EntryNotFoundError struct {
	Key string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("dictionary: entry %q not found", e.Key)
}

// IsNotFound reports whether err wraps an EntryNotFoundError.
func IsNotFound(err error) bool {
	var notFound *EntryNotFoundError
	return errors.As(err, &notFound)
}
