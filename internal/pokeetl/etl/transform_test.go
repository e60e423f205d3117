package etl

import (
	"testing"

	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detail(id int, name string, types ...string) *entity.PokemonDetail {
	return &entity.PokemonDetail{
		ID: id, Name: name, Height: 7, Weight: 69,
		Types: types,
		Stats: entity.PokemonStats{HP: 45, Attack: 49, Defense: 49, SpecialAttack: 65, SpecialDefense: 65, Speed: 45},
	}
}

func TestTransform(t *testing.T) {
	ds, err := Transform([]*entity.PokemonDetail{
		detail(6, "charizard", "fire", "flying"),
		detail(1, "bulbasaur", "grass", "poison"),
		detail(4, "charmander", "fire"),
	})
	require.NoError(t, err)

	assert.Equal(t, []PokemonRow{
		{ID: 6, Name: "charizard", Height: 7, Weight: 69},
		{ID: 1, Name: "bulbasaur", Height: 7, Weight: 69},
		{ID: 4, Name: "charmander", Height: 7, Weight: 69},
	}, ds.Pokemon)
	assert.Equal(t, []string{"fire", "flying", "grass", "poison"}, ds.Types, "unique and sorted")
	assert.Equal(t, []TypeLinkRow{
		{PokemonID: 6, TypeName: "fire", Slot: 1},
		{PokemonID: 6, TypeName: "flying", Slot: 2},
		{PokemonID: 1, TypeName: "grass", Slot: 1},
		{PokemonID: 1, TypeName: "poison", Slot: 2},
		{PokemonID: 4, TypeName: "fire", Slot: 1},
	}, ds.TypeLinks)
	require.Len(t, ds.Stats, 3)
	assert.Equal(t, StatsRow{PokemonID: 1, HP: 45, Attack: 49, Defense: 49, SpecialAttack: 65, SpecialDefense: 65, Speed: 45}, ds.Stats[1])
}

func TestTransformEmpty(t *testing.T) {
	ds, err := Transform(nil)
	require.NoError(t, err)
	assert.Empty(t, ds.Pokemon)
	assert.Empty(t, ds.Types)
}

func TestTransformAllowsZeroStats(t *testing.T) {
	p := detail(132, "ditto", "normal")
	p.Stats.Attack = 0
	p.Height = 0

	_, err := Transform([]*entity.PokemonDetail{p})
	assert.NoError(t, err)
}

func TestTransformRejectsInvalidRows(t *testing.T) {
	cases := map[string]func() []*entity.PokemonDetail{
		"duplicate id": func() []*entity.PokemonDetail {
			return []*entity.PokemonDetail{detail(1, "bulbasaur"), detail(1, "bulbasaur-again")}
		},
		"zero id": func() []*entity.PokemonDetail {
			return []*entity.PokemonDetail{detail(0, "missingno")}
		},
		"empty name": func() []*entity.PokemonDetail {
			return []*entity.PokemonDetail{detail(1, "")}
		},
		"negative weight": func() []*entity.PokemonDetail {
			p := detail(1, "bulbasaur")
			p.Weight = -1
			return []*entity.PokemonDetail{p}
		},
		"negative stat": func() []*entity.PokemonDetail {
			p := detail(1, "bulbasaur")
			p.Stats.Speed = -5
			return []*entity.PokemonDetail{p}
		},
		"third type slot": func() []*entity.PokemonDetail {
			return []*entity.PokemonDetail{detail(1, "bulbasaur", "grass", "poison", "fairy")}
		},
		"empty type name": func() []*entity.PokemonDetail {
			return []*entity.PokemonDetail{detail(1, "bulbasaur", "")}
		},
	}
	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			ds, err := Transform(records())
			assert.ErrorIs(t, err, ErrSchemaValidation)
			assert.Nil(t, ds)
		})
	}
}
