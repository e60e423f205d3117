package pokeagent

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/kiosk404/pokedex/internal/pokeagent/config"
	"github.com/kiosk404/pokedex/internal/pokeagent/options"
	"github.com/kiosk404/pokedex/pkg/app"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/spf13/viper"
)

const commandDesc = `The pokeagent serves the Pokédex assistant. Every chat turn goes to a
language model that may call the catalog tools (lookup, list by type, stat
ranking, comparison); the tools query the pokeapi REST service.

Endpoints:
  /ws        one text frame per turn, one text frame per answer
  /v1/chat   request/response chat with caller-supplied history
  /health    liveness`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("Pokédex Agent Server",
		basename,
		app.WithOptions(opts),
		app.WithDescription(heredoc.Doc(commandDesc)),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
		app.WithConfigWatcher(reloadLogLevel),
	)
	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		if err := logger.Init(opts.Log); err != nil {
			return err
		}
		defer logger.FlushLog()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return Run(cfg)
	}
}

func reloadLogLevel(v *viper.Viper, e fsnotify.Event) {
	level := v.GetString("log.level")
	if level == "" {
		return
	}
	if err := logger.SetLevel(level); err != nil {
		logger.Warn("[Pokeagent] ignoring log level from %s: %v", e.Name, err)
		return
	}
	logger.Info("[Pokeagent] log level set to %s after %s changed", level, e.Name)
}
