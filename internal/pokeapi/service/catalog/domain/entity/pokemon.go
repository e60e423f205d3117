package entity

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// PokemonStats are the six base battle attributes; all must be positive.
type PokemonStats struct {
	HP             int `json:"hp"              validate:"gt=0"`
	Attack         int `json:"attack"          validate:"gt=0"`
	Defense        int `json:"defense"         validate:"gt=0"`
	SpecialAttack  int `json:"special_attack"  validate:"gt=0"`
	SpecialDefense int `json:"special_defense" validate:"gt=0"`
	Speed          int `json:"speed"           validate:"gt=0"`
}

// PokemonDetail is a creature as served by the catalog. Types are in slot order.
type PokemonDetail struct {
	ID     int          `json:"id"     validate:"gt=0"`
	Name   string       `json:"name"   validate:"required"`
	Height int          `json:"height" validate:"gt=0"`
	Weight int          `json:"weight" validate:"gt=0"`
	Types  []string     `json:"types"`
	Stats  PokemonStats `json:"stats"`
}

// RankEntry is one row of a stat ranking; Rank starts at 1.
type RankEntry struct {
	Rank  int    `json:"rank"  validate:"gt=0"`
	Name  string `json:"name"  validate:"required"`
	Value int    `json:"value" validate:"gt=0"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func (s PokemonStats) Validate() error {
	if err := validatorInstance().Struct(s); err != nil {
		return fmt.Errorf("invalid stats: %w", err)
	}
	return nil
}

func (p *PokemonDetail) Validate() error {
	if err := validatorInstance().Struct(p); err != nil {
		return fmt.Errorf("invalid pokemon %q: %w", p.Name, err)
	}
	return nil
}

func (r *RankEntry) Validate() error {
	if err := validatorInstance().Struct(r); err != nil {
		return fmt.Errorf("invalid rank entry: %w", err)
	}
	return nil
}
