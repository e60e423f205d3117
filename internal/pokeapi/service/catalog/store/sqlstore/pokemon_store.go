package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/kiosk404/pokedex/internal/pkg/db"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/repo"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
)

var _ repo.PokemonRepository = (*PokemonStore)(nil)

const detailColumns = `p.id, p.name, p.height, p.weight,
	f.hp, f.attack, f.defense, f.special_attack, f.special_defense, f.speed`

// pokemonRow is one joined dim_pokemon + fact_stats row.
type pokemonRow struct {
	ID             int
	Name           string
	Height         int
	Weight         int
	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
}

// PokemonStore implements repo.PokemonRepository over database/sql.
type PokemonStore struct {
	db *db.DB
}

func NewPokemonStore(d *db.DB) *PokemonStore {
	return &PokemonStore{db: d}
}

func (s *PokemonStore) GetByName(ctx context.Context, name string) (*entity.PokemonDetail, error) {
	return s.getOne(ctx, "p.name = ?", name)
}

func (s *PokemonStore) GetByID(ctx context.Context, id int) (*entity.PokemonDetail, error) {
	return s.getOne(ctx, "p.id = ?", id)
}

func (s *PokemonStore) getOne(ctx context.Context, where string, arg any) (*entity.PokemonDetail, error) {
	query := s.db.Rebind(`SELECT ` + detailColumns + `
		FROM ` + db.TablePokemon + ` p
		JOIN ` + db.TableStats + ` f ON p.id = f.pokemon_id
		WHERE ` + where)

	var row pokemonRow
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&row.ID, &row.Name, &row.Height, &row.Weight,
		&row.HP, &row.Attack, &row.Defense, &row.SpecialAttack, &row.SpecialDefense, &row.Speed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errno.ErrPokemonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query pokemon: %w", err)
	}

	detail := &entity.PokemonDetail{}
	if err := copier.Copy(detail, &row); err != nil {
		return nil, fmt.Errorf("map pokemon row: %w", err)
	}
	if err := copier.Copy(&detail.Stats, &row); err != nil {
		return nil, fmt.Errorf("map stats row: %w", err)
	}

	detail.Types, err = s.typesOf(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	if err := detail.Validate(); err != nil {
		return nil, fmt.Errorf("%w: pokemon %d: %v", errno.ErrInvalidRecord, row.ID, err)
	}
	return detail, nil
}

func (s *PokemonStore) typesOf(ctx context.Context, pokemonID int) ([]string, error) {
	query := s.db.Rebind(`SELECT t.name
		FROM ` + db.TableType + ` t
		JOIN ` + db.TablePokemonTypes + ` pt ON t.id = pt.type_id
		WHERE pt.pokemon_id = ?
		ORDER BY pt.slot`)

	return s.queryStrings(ctx, query, pokemonID)
}

func (s *PokemonStore) ListNames(ctx context.Context, typeName string) ([]string, error) {
	if typeName == "" {
		return s.queryStrings(ctx, `SELECT name FROM `+db.TablePokemon+` ORDER BY name`)
	}

	query := s.db.Rebind(`SELECT p.name
		FROM ` + db.TablePokemon + ` p
		JOIN ` + db.TablePokemonTypes + ` pt ON p.id = pt.pokemon_id
		JOIN ` + db.TableType + ` t ON pt.type_id = t.id
		WHERE t.name = ?
		ORDER BY p.name`)
	return s.queryStrings(ctx, query, typeName)
}

func (s *PokemonStore) RankByStat(ctx context.Context, stat entity.Stat, limit int) ([]*entity.RankEntry, error) {
	// The column name is interpolated, so it must come from the allow-list.
	if !stat.Valid() {
		return nil, fmt.Errorf("%w: %q", errno.ErrInvalidStat, stat)
	}

	query := s.db.Rebind(`SELECT p.name, f.` + string(stat) + `
		FROM ` + db.TablePokemon + ` p
		JOIN ` + db.TableStats + ` f ON p.id = f.pokemon_id
		ORDER BY f.` + string(stat) + ` DESC, p.name ASC
		LIMIT ?`)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query ranking by %s: %w", stat, err)
	}
	defer rows.Close()

	entries := make([]*entity.RankEntry, 0, min(limit, 64))
	for rows.Next() {
		e := &entity.RankEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.Name, &e.Value); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: ranking by %s: %v", errno.ErrInvalidRecord, stat, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PokemonStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
