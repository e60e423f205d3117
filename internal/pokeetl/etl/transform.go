package etl

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
)

// ErrSchemaValidation marks a dataset that failed row validation. It aborts
// the run; no row is quarantined.
var ErrSchemaValidation = errors.New("schema validation failed")

// PokemonRow is a dim_pokemon row.
type PokemonRow struct {
	ID     int    `validate:"gte=1"`
	Name   string `validate:"min=1"`
	Height int    `validate:"gte=0"`
	Weight int    `validate:"gte=0"`
}

// TypeLinkRow is a pokemon_types row keyed by type name; the loader resolves
// the type id.
type TypeLinkRow struct {
	PokemonID int    `validate:"gte=1"`
	TypeName  string `validate:"min=1"`
	Slot      int    `validate:"oneof=1 2"`
}

// StatsRow is a fact_stats row.
type StatsRow struct {
	PokemonID      int `validate:"gte=1"`
	HP             int `validate:"gte=0"`
	Attack         int `validate:"gte=0"`
	Defense        int `validate:"gte=0"`
	SpecialAttack  int `validate:"gte=0"`
	SpecialDefense int `validate:"gte=0"`
	Speed          int `validate:"gte=0"`
}

// Dataset is the normalized output of Transform. Types holds the distinct
// type names sorted ascending.
type Dataset struct {
	Pokemon   []PokemonRow  `validate:"unique=ID,dive"`
	Types     []string      `validate:"unique,dive,min=1"`
	TypeLinks []TypeLinkRow `validate:"dive"`
	Stats     []StatsRow    `validate:"dive"`
}

var rowValidator = validator.New(validator.WithRequiredStructEnabled())

// Transform normalizes extracted records into the star schema rows and
// validates them. Slots are assigned from the type order, starting at 1.
func Transform(records []*entity.PokemonDetail) (*Dataset, error) {
	ds := &Dataset{
		Pokemon:   make([]PokemonRow, 0, len(records)),
		Types:     []string{},
		TypeLinks: []TypeLinkRow{},
		Stats:     make([]StatsRow, 0, len(records)),
	}
	seen := map[string]struct{}{}

	for _, p := range records {
		if p == nil {
			continue
		}
		ds.Pokemon = append(ds.Pokemon, PokemonRow{
			ID:     p.ID,
			Name:   p.Name,
			Height: p.Height,
			Weight: p.Weight,
		})
		ds.Stats = append(ds.Stats, StatsRow{
			PokemonID:      p.ID,
			HP:             p.Stats.HP,
			Attack:         p.Stats.Attack,
			Defense:        p.Stats.Defense,
			SpecialAttack:  p.Stats.SpecialAttack,
			SpecialDefense: p.Stats.SpecialDefense,
			Speed:          p.Stats.Speed,
		})
		for i, name := range p.Types {
			ds.TypeLinks = append(ds.TypeLinks, TypeLinkRow{PokemonID: p.ID, TypeName: name, Slot: i + 1})
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				ds.Types = append(ds.Types, name)
			}
		}
	}
	sort.Strings(ds.Types)

	if err := rowValidator.Struct(ds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return ds, nil
}
