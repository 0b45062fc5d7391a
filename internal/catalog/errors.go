package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrRecordRequired = errors.New("catalog: record is required")
	ErrIDRequired     = errors.New("catalog: record id is required")
	ErrUnknownSource  = errors.New("catalog: unknown source list")
)

// NotFoundError reports a missing record in one of the entity stores.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a catalog NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
