package logging

import (
	"context"

	"github.com/goliatone/go-console/pkg/interfaces"
)

const (
	rootModule       = "console"
	reconcileModule  = "console.reconcile"
	integrityModule  = "console.integrity"
	dictionaryModule = "console.dictionary"
	outboxModule     = "console.outbox"
	catalogModule    = "console.catalog"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ReconcileLogger returns the logger namespace reserved for the translation reconciler.
func ReconcileLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, reconcileModule)
}

// IntegrityLogger returns the logger namespace reserved for the referential integrity engine.
func IntegrityLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, integrityModule)
}

// DictionaryLogger returns the logger namespace reserved for the translation dictionary.
func DictionaryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, dictionaryModule)
}

// OutboxLogger returns the logger namespace reserved for the persistence outbox.
func OutboxLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, outboxModule)
}

// CatalogLogger returns the logger namespace reserved for entity stores.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
