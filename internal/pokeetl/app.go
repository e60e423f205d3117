package pokeetl

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/pokedex/internal/pokeetl/options"
	"github.com/kiosk404/pokedex/pkg/app"
)

const commandDesc = `The pokeetl loads the Pokédex catalog from PokeAPI into the relational store
read by pokeapi.

Extract lists the first N creatures and fetches each detail page concurrently;
transform normalizes them into dim_pokemon, dim_type, pokemon_types and
fact_stats and validates every row; load upserts the rows in one transaction.
A validation failure aborts the run before anything is written.`

// NewApp creates the pokeetl command tree.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	return app.NewApp("Pokédex ETL Pipeline",
		basename,
		app.WithDescription(heredoc.Doc(commandDesc)),
		app.WithNoConfig(),
		app.WithSubCommands(
			newRunPipelineCommand(opts),
			newExtractOnlyCommand(opts),
			newScheduleCommand(opts),
			newInitSchemaCommand(opts),
		),
	)
}
