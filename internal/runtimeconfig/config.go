package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-console/internal/domain"
)

var ErrDefaultLocaleRequired = errors.New("console config: default locale is required")
var ErrTranslationSourceUnknown = errors.New("console config: translation source is invalid")
var ErrStorageProviderUnknown = errors.New("console config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("console config: storage DSN is required when the bun provider is selected")
var ErrOutboxMaxAttemptsInvalid = errors.New("console config: outbox max attempts must be zero or positive")
var ErrOutboxBackoffInvalid = errors.New("console config: outbox base backoff must be zero or positive")
var ErrOutboxBatchSizeInvalid = errors.New("console config: outbox batch size must be zero or positive")
var ErrLoggingProviderRequired = errors.New("console config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("console config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("console config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("console config: logging format is invalid")

// Config aggregates runtime options for the console module. Fields
// intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled            bool     `env:"CONSOLE_ENABLED"`
	DefaultLocale      string   `env:"CONSOLE_DEFAULT_LOCALE"`
	TranslationSources []string `env:"CONSOLE_TRANSLATION_SOURCES" envSeparator:","`
	Storage            StorageConfig
	Outbox             OutboxConfig
	Integrity          IntegrityConfig
	Cache              CacheConfig
	Features           Features
	Logging            LoggingConfig
}

// StorageConfig selects the persistence backend for the dictionary and
// content records.
type StorageConfig struct {
	Provider string `env:"CONSOLE_STORAGE_PROVIDER"`
	DSN      string `env:"CONSOLE_STORAGE_DSN"`
	Dialect  string `env:"CONSOLE_STORAGE_DIALECT"`
}

// OutboxConfig tunes the persistence outbox and its worker.
type OutboxConfig struct {
	MaxAttempts   int           `env:"CONSOLE_OUTBOX_MAX_ATTEMPTS"`
	BaseBackoff   time.Duration `env:"CONSOLE_OUTBOX_BASE_BACKOFF"`
	FlushInterval time.Duration `env:"CONSOLE_OUTBOX_FLUSH_INTERVAL"`
	BatchSize     int           `env:"CONSOLE_OUTBOX_BATCH_SIZE"`
}

// IntegrityConfig controls referential-integrity sweeps.
type IntegrityConfig struct {
	ValidateOnLoad bool `env:"CONSOLE_INTEGRITY_VALIDATE_ON_LOAD"`
}

// CacheConfig captures dictionary read-cache behaviour.
type CacheConfig struct {
	Enabled    bool          `env:"CONSOLE_CACHE_ENABLED"`
	DefaultTTL time.Duration `env:"CONSOLE_CACHE_TTL"`
}

// Features toggles module functionality.
type Features struct {
	Outbox    bool `env:"CONSOLE_FEATURE_OUTBOX"`
	Integrity bool `env:"CONSOLE_FEATURE_INTEGRITY"`
	Logger    bool `env:"CONSOLE_FEATURE_LOGGER"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `env:"CONSOLE_LOG_PROVIDER"`
	Level     string   `env:"CONSOLE_LOG_LEVEL"`
	Format    string   `env:"CONSOLE_LOG_FORMAT"`
	AddSource bool     `env:"CONSOLE_LOG_ADD_SOURCE"`
	Focus     []string `env:"CONSOLE_LOG_FOCUS" envSeparator:","`
}

// DefaultConfig returns opinionated defaults: in-memory storage, the full
// source-list enumeration, outbox and integrity sweeps enabled.
func DefaultConfig() Config {
	sources := domain.KnownSourceLists()
	tags := make([]string, len(sources))
	for i, source := range sources {
		tags[i] = string(source)
	}
	return Config{
		Enabled:            true,
		DefaultLocale:      domain.DefaultLocale,
		TranslationSources: tags,
		Storage: StorageConfig{
			Provider: "memory",
			Dialect:  "sqlite",
		},
		Outbox: OutboxConfig{
			MaxAttempts:   3,
			BaseBackoff:   2 * time.Second,
			FlushInterval: 5 * time.Second,
			BatchSize:     50,
		},
		Integrity: IntegrityConfig{
			ValidateOnLoad: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Outbox:    true,
			Integrity: true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	for _, tag := range cfg.TranslationSources {
		if _, err := domain.ParseSourceList(tag); err != nil {
			return fmt.Errorf("%w: %s", ErrTranslationSourceUnknown, tag)
		}
	}
	switch provider := normalize(cfg.Storage.Provider); provider {
	case "memory":
	case "bun":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Outbox.MaxAttempts < 0 {
		return ErrOutboxMaxAttemptsInvalid
	}
	if cfg.Outbox.BaseBackoff < 0 {
		return ErrOutboxBackoffInvalid
	}
	if cfg.Outbox.BatchSize < 0 {
		return ErrOutboxBatchSizeInvalid
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// SourceLists resolves the configured translation source tags, falling back
// to the full known enumeration when none are configured.
func (cfg Config) SourceLists() []domain.SourceList {
	if len(cfg.TranslationSources) == 0 {
		return domain.KnownSourceLists()
	}
	sources := make([]domain.SourceList, 0, len(cfg.TranslationSources))
	for _, tag := range cfg.TranslationSources {
		source, err := domain.ParseSourceList(tag)
		if err != nil {
			continue
		}
		sources = append(sources, source)
	}
	return sources
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
