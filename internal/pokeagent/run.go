package pokeagent

import (
	"github.com/kiosk404/pokedex/internal/pokeagent/config"
)

func Run(cfg *config.Config) error {
	server, err := createAPIServer(cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun().Run()
}
