package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-console/internal/domain"
	"github.com/goliatone/go-console/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresDefaultLocale(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleRequired) {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownTranslationSource(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.TranslationSources = []string{"News", "Bogus"}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrTranslationSourceUnknown) {
		t.Fatalf("expected ErrTranslationSourceUnknown, got %v", err)
	}
}

func TestConfigValidate_BunProviderRequiresDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownStorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "redis"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeOutboxSettings(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Outbox.MaxAttempts = -1

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrOutboxMaxAttemptsInvalid) {
		t.Fatalf("expected ErrOutboxMaxAttemptsInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestSourceListsFallsBackToKnownEnumeration(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.TranslationSources = nil

	got := cfg.SourceLists()
	want := domain.KnownSourceLists()
	if len(got) != len(want) {
		t.Fatalf("expected %d sources, got %d", len(want), len(got))
	}
}

func TestSourceListsSkipsUnparseableTags(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.TranslationSources = []string{"news", "bogus", "Events"}

	got := cfg.SourceLists()
	if len(got) != 2 || got[0] != domain.SourceNews || got[1] != domain.SourceEvents {
		t.Fatalf("unexpected sources %v", got)
	}
}
