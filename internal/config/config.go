// Package config loads runtime settings from the environment.
// Command-line flags override whatever is parsed here.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-driven runtime configuration.
type Config struct {
	// Seed fixes the simulation's random stream; 0 picks a fresh one.
	Seed int64 `env:"TIMBERTREK_SEED" envDefault:"0"`

	// CrewSize overrides the per-journey default roster size when
	// nonzero. Valid values are 1 through 8.
	CrewSize int `env:"TIMBERTREK_CREW_SIZE" envDefault:"0"`

	// NoUpdate disables the release check in the menu.
	NoUpdate bool `env:"TIMBERTREK_NO_UPDATE" envDefault:"false"`
}

// FromEnv parses the TIMBERTREK_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CrewSize < 0 || cfg.CrewSize > 8 {
		return Config{}, fmt.Errorf("TIMBERTREK_CREW_SIZE must be 0-8, got %d", cfg.CrewSize)
	}
	return cfg, nil
}
