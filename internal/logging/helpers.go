package logging

import (
	"maps"

	"github.com/goliatone/go-console/pkg/interfaces"
)

// WithFields attaches structured fields when the logger supports the optional
// FieldsLogger extension, and returns the logger unchanged otherwise. The
// fields map is copied so later caller mutations cannot leak into log output.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}

	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return fl.WithFields(copied)
}
