package etl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kiosk404/pokedex/internal/pkg/db"
	"github.com/kiosk404/pokedex/pkg/logger"
)

const (
	upsertPokemonSQL = `INSERT INTO ` + db.TablePokemon + ` (id, name, height, weight)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			height = excluded.height,
			weight = excluded.weight`

	selectTypeSQL = `SELECT id FROM ` + db.TableType + ` WHERE name = ?`
	insertTypeSQL = `INSERT INTO ` + db.TableType + ` (name) VALUES (?) RETURNING id`

	upsertTypeLinkSQL = `INSERT INTO ` + db.TablePokemonTypes + ` (pokemon_id, type_id, slot)
		VALUES (?, ?, ?)
		ON CONFLICT (pokemon_id, type_id) DO UPDATE SET
			slot = excluded.slot`

	upsertStatsSQL = `INSERT INTO ` + db.TableStats + ` (pokemon_id, hp, attack, defense, special_attack, special_defense, speed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (pokemon_id) DO UPDATE SET
			hp = excluded.hp,
			attack = excluded.attack,
			defense = excluded.defense,
			special_attack = excluded.special_attack,
			special_defense = excluded.special_defense,
			speed = excluded.speed`
)

// Loader writes a Dataset into the relational store.
type Loader struct {
	db *db.DB
}

func NewLoader(d *db.DB) *Loader {
	return &Loader{db: d}
}

// Load upserts the dataset in a single transaction. Re-running with the same
// dataset leaves the store unchanged. It returns the number of creatures
// written.
func (l *Loader) Load(ctx context.Context, ds *Dataset) (n int, err error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin load: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	logger.CtxInfo(ctx, "[Load] upserting %d rows into %s", len(ds.Pokemon), db.TablePokemon)
	for _, p := range ds.Pokemon {
		if _, err = tx.ExecContext(ctx, l.db.Rebind(upsertPokemonSQL), p.ID, p.Name, p.Height, p.Weight); err != nil {
			return 0, fmt.Errorf("upsert pokemon %d: %w", p.ID, err)
		}
	}

	logger.CtxInfo(ctx, "[Load] resolving %d rows in %s", len(ds.Types), db.TableType)
	typeIDs := make(map[string]int64, len(ds.Types))
	for _, name := range ds.Types {
		var id int64
		if id, err = l.typeID(ctx, tx, name); err != nil {
			return 0, err
		}
		typeIDs[name] = id
	}

	logger.CtxInfo(ctx, "[Load] upserting %d rows into %s", len(ds.TypeLinks), db.TablePokemonTypes)
	for _, link := range ds.TypeLinks {
		id, ok := typeIDs[link.TypeName]
		if !ok {
			continue
		}
		if _, err = tx.ExecContext(ctx, l.db.Rebind(upsertTypeLinkSQL), link.PokemonID, id, link.Slot); err != nil {
			return 0, fmt.Errorf("upsert type link %d/%s: %w", link.PokemonID, link.TypeName, err)
		}
	}

	logger.CtxInfo(ctx, "[Load] upserting %d rows into %s", len(ds.Stats), db.TableStats)
	for _, s := range ds.Stats {
		if _, err = tx.ExecContext(ctx, l.db.Rebind(upsertStatsSQL),
			s.PokemonID, s.HP, s.Attack, s.Defense, s.SpecialAttack, s.SpecialDefense, s.Speed); err != nil {
			return 0, fmt.Errorf("upsert stats %d: %w", s.PokemonID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit load: %w", err)
	}
	return len(ds.Pokemon), nil
}

func (l *Loader) typeID(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, l.db.Rebind(selectTypeSQL), name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("select type %s: %w", name, err)
	}
	if err := tx.QueryRowContext(ctx, l.db.Rebind(insertTypeSQL), name).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert type %s: %w", name, err)
	}
	return id, nil
}
