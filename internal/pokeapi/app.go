package pokeapi

import (
	"context"
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/kiosk404/pokedex/internal/pokeapi/config"
	"github.com/kiosk404/pokedex/internal/pokeapi/options"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/mcp"
	"github.com/kiosk404/pokedex/pkg/app"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const commandDesc = `The pokeapi serves the read-only Pokédex catalog loaded by pokeetl.

Endpoints:
  GET /v1/pokemons/{name}      creature detail by name or id
  GET /v1/pokemons?type=       names, optionally filtered by type
  GET /v1/stats/ranking        top N by stat (cached)
  /mcp                         the catalog tools over MCP streamable HTTP
  /health, /metrics            liveness and Prometheus metrics`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("Pokédex Catalog API Server",
		basename,
		app.WithOptions(opts),
		app.WithDescription(heredoc.Doc(commandDesc)),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
		app.WithSubCommands(newMCPStdioCommand()),
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

func newMCPStdioCommand() *cobra.Command {
	opts := options.NewOptions()
	cmd := &cobra.Command{
		Use:   "mcp-stdio",
		Short: "Serve the catalog tools over MCP on stdin/stdout",
		Long: heredoc.Doc(`
			Serve the catalog tools over the Model Context Protocol on stdin and
			stdout, for MCP clients that spawn the server as a subprocess. Logs go
			to stderr.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Log.Output = "stderr"
			if errs := opts.Validate(); len(errs) != 0 {
				return errors.Join(errs...)
			}
			if err := logger.Init(opts.Log); err != nil {
				return err
			}

			cfg, err := config.CreateConfigFromOptions(opts)
			if err != nil {
				return err
			}
			ctx := context.Background()
			catalogModule, err := newCatalogModule(ctx, cfg)
			if err != nil {
				return err
			}
			defer catalogModule.Close()

			mcpModule, err := (&mcp.Config{}).Complete().New(ctx, mcp.Dependencies{Catalog: catalogModule.Service})
			if err != nil {
				return err
			}
			return mcpModule.ServeStdio()
		},
	}
	fs := cmd.Flags()
	opts.DatabaseOptions.AddFlags(fs)
	opts.CacheOptions.AddFlags(fs)
	opts.CatalogOptions.AddFlags(fs)
	fs.StringVar(&opts.Log.Level, "log.level", opts.Log.Level, "Minimum log level (debug, info, warn, error).")
	return cmd
}

func reloadLogLevel(v *viper.Viper, e fsnotify.Event) {
	level := v.GetString("log.level")
	if level == "" {
		return
	}
	if err := logger.SetLevel(level); err != nil {
		logger.Warn("[Pokeapi] ignoring log level from %s: %v", e.Name, err)
		return
	}
	logger.Info("[Pokeapi] log level set to %s after %s changed", level, e.Name)
}
