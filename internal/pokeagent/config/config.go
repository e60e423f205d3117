package config

import (
	"github.com/kiosk404/pokedex/internal/pokeagent/options"
)

// Config is the running configuration structure of the pokeagent service.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
// on a given pokeagent command line or configuration file option.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
