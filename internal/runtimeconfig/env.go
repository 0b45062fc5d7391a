package runtimeconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// FromEnv overlays environment variables onto the defaults and validates
// the result.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("console config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
