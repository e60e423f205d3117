package pokedex

import (
	"context"
	"strings"

	"github.com/kiosk404/pokedex/internal/pkg/tool"
)

const (
	NameBuscarPokemon    = "buscar_pokemon"
	NameListarPorTipo    = "listar_por_tipo"
	NameTopNPorStat      = "top_n_por_stat"
	NameCompararPokemons = "comparar_pokemons"

	DefaultTopN = 5
)

type buscarArgs struct {
	NomeOuID string `json:"nome_ou_id" jsonschema_description:"Nome ou ID do Pokémon."`
}

type listarArgs struct {
	Tipo string `json:"tipo" jsonschema_description:"O tipo do Pokémon (ex: fire, water, grass)."`
}

type topArgs struct {
	Stat string `json:"stat" jsonschema:"enum=hp,enum=attack,enum=defense,enum=special_attack,enum=special_defense,enum=speed" jsonschema_description:"O atributo para classificar."`
	N    int    `json:"n,omitempty" jsonschema:"default=5,maximum=1000" jsonschema_description:"Quantidade de pokémons no ranking (padrão 5, máximo 1000)."`
}

type compararArgs struct {
	PokemonA string `json:"pokemon_a" jsonschema_description:"Nome do primeiro Pokémon."`
	PokemonB string `json:"pokemon_b" jsonschema_description:"Nome do segundo Pokémon."`
}

// Tools returns the four catalog tools in their advertised order.
func Tools(b Backend) []tool.Tool {
	return []tool.Tool{
		tool.New(NameBuscarPokemon,
			"Busca detalhes completos de um Pokémon pelo nome (ex: 'pikachu') ou ID.",
			func(ctx context.Context, in buscarArgs) (tool.Result, error) {
				return b.GetPokemon(ctx, normalize(in.NomeOuID)), nil
			}),
		tool.New(NameListarPorTipo,
			"Lista nomes de Pokémons de um tipo específico.",
			func(ctx context.Context, in listarArgs) (tool.Result, error) {
				return b.ListByType(ctx, normalize(in.Tipo)), nil
			}),
		tool.New(NameTopNPorStat,
			"Retorna o ranking dos N pokémons mais fortes em um atributo.",
			func(ctx context.Context, in topArgs) (tool.Result, error) {
				n := in.N
				if n <= 0 {
					n = DefaultTopN
				}
				return b.TopByStat(ctx, in.Stat, n), nil
			}),
		tool.New(NameCompararPokemons,
			"Busca dados de dois pokémons simultaneamente para comparação.",
			func(ctx context.Context, in compararArgs) (tool.Result, error) {
				return tool.OK(map[string]tool.Result{
					"pokemon_a": b.GetPokemon(ctx, normalize(in.PokemonA)),
					"pokemon_b": b.GetPokemon(ctx, normalize(in.PokemonB)),
				}), nil
			}),
	}
}

// NewRegistry registers Tools(b).
func NewRegistry(b Backend) (*tool.Registry, error) {
	return tool.NewRegistry(Tools(b)...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
