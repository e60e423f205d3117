package config

import (
	"github.com/kiosk404/pokedex/internal/pokeapi/options"
)

// Config is the running configuration structure of the pokeapi service.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
// on a given pokeapi command line or configuration file option.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
