package db

import (
	"context"
	"fmt"
)

const (
	TablePokemon      = "dim_pokemon"
	TableType         = "dim_type"
	TablePokemonTypes = "pokemon_types"
	TableStats        = "fact_stats"
)

// EnsureSchema creates the catalog tables and indexes when missing.
func EnsureSchema(ctx context.Context, db *DB) error {
	typeID := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.Dialect == DialectPostgres {
		typeID = "SERIAL PRIMARY KEY"
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + TablePokemon + ` (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			height INTEGER NOT NULL,
			weight INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableType + ` (
			id ` + typeID + `,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TablePokemonTypes + ` (
			pokemon_id INTEGER NOT NULL REFERENCES ` + TablePokemon + `(id),
			type_id INTEGER NOT NULL REFERENCES ` + TableType + `(id),
			slot INTEGER NOT NULL,
			PRIMARY KEY (pokemon_id, type_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableStats + ` (
			pokemon_id INTEGER PRIMARY KEY REFERENCES ` + TablePokemon + `(id),
			hp INTEGER NOT NULL,
			attack INTEGER NOT NULL,
			defense INTEGER NOT NULL,
			special_attack INTEGER NOT NULL,
			special_defense INTEGER NOT NULL,
			speed INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pokemon_types_type ON ` + TablePokemonTypes + `(type_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
