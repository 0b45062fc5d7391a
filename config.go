package console

import (
	"github.com/goliatone/go-console/internal/runtimeconfig"
)

var (
	ErrDefaultLocaleRequired    = runtimeconfig.ErrDefaultLocaleRequired
	ErrTranslationSourceUnknown = runtimeconfig.ErrTranslationSourceUnknown
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrOutboxMaxAttemptsInvalid = runtimeconfig.ErrOutboxMaxAttemptsInvalid
	ErrOutboxBackoffInvalid     = runtimeconfig.ErrOutboxBackoffInvalid
	ErrOutboxBatchSizeInvalid   = runtimeconfig.ErrOutboxBatchSizeInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	StorageConfig   = runtimeconfig.StorageConfig
	OutboxConfig    = runtimeconfig.OutboxConfig
	IntegrityConfig = runtimeconfig.IntegrityConfig
	CacheConfig     = runtimeconfig.CacheConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the opinionated runtime defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv overlays environment variables onto the defaults.
func ConfigFromEnv() (Config, error) {
	return runtimeconfig.FromEnv()
}
