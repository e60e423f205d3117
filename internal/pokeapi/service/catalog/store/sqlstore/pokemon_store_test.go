package sqlstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kiosk404/pokedex/internal/pkg/db"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *PokemonStore {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	d := db.Wrap(sqlDB, db.DialectSQLite)
	ctx := context.Background()
	require.NoError(t, db.EnsureSchema(ctx, d))

	seed := []string{
		`INSERT INTO dim_pokemon (id, name, height, weight) VALUES
			(1, 'bulbasaur', 7, 69), (4, 'charmander', 6, 85), (6, 'charizard', 17, 905),
			(25, 'pikachu', 4, 60), (150, 'mewtwo', 20, 1220), (151, 'mew', 4, 40)`,
		`INSERT INTO dim_type (id, name) VALUES (1, 'grass'), (2, 'poison'), (3, 'fire'), (4, 'flying'), (5, 'electric'), (6, 'psychic')`,
		`INSERT INTO pokemon_types (pokemon_id, type_id, slot) VALUES
			(1, 2, 2), (1, 1, 1), (4, 3, 1), (6, 3, 1), (6, 4, 2), (25, 5, 1), (150, 6, 1), (151, 6, 1)`,
		`INSERT INTO fact_stats (pokemon_id, hp, attack, defense, special_attack, special_defense, speed) VALUES
			(1, 45, 49, 49, 65, 65, 45), (4, 39, 52, 43, 60, 50, 65), (6, 78, 84, 78, 109, 85, 100),
			(25, 35, 55, 40, 50, 50, 90), (150, 106, 110, 90, 154, 90, 130), (151, 100, 100, 100, 100, 100, 100)`,
	}
	for _, stmt := range seed {
		_, err := d.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	return NewPokemonStore(d)
}

func TestGetByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.GetByName(ctx, "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, &entity.PokemonDetail{
		ID: 1, Name: "bulbasaur", Height: 7, Weight: 69,
		Types: []string{"grass", "poison"},
		Stats: entity.PokemonStats{HP: 45, Attack: 49, Defense: 49, SpecialAttack: 65, SpecialDefense: 65, Speed: 45},
	}, p)

	_, err = s.GetByName(ctx, "missingno")
	assert.ErrorIs(t, err, errno.ErrPokemonNotFound)
}

func TestGetByID(t *testing.T) {
	s := newTestStore(t)

	p, err := s.GetByID(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "charizard", p.Name)
	assert.Equal(t, []string{"fire", "flying"}, p.Types)

	_, err = s.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, errno.ErrPokemonNotFound)
}

func TestListNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	all, err := s.ListNames(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bulbasaur", "charizard", "charmander", "mew", "mewtwo", "pikachu"}, all)

	fire, err := s.ListNames(ctx, "fire")
	require.NoError(t, err)
	assert.Equal(t, []string{"charizard", "charmander"}, fire)

	none, err := s.ListNames(ctx, "dragon")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRankByStat(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.RankByStat(ctx, entity.StatSpecialAttack, 3)
	require.NoError(t, err)
	assert.Equal(t, []*entity.RankEntry{
		{Rank: 1, Name: "mewtwo", Value: 154},
		{Rank: 2, Name: "charizard", Value: 109},
		{Rank: 3, Name: "mew", Value: 100},
	}, got)

	got, err = s.RankByStat(ctx, entity.StatSpeed, 10)
	require.NoError(t, err)
	assert.Len(t, got, 6)
	assert.Equal(t, 6, got[5].Rank)
}

func TestRankByStatTieBreakByName(t *testing.T) {
	s := newTestStore(t)
	_, err := s.db.ExecContext(context.Background(), `UPDATE fact_stats SET hp = 100 WHERE pokemon_id = 150`)
	require.NoError(t, err)

	got, err := s.RankByStat(context.Background(), entity.StatHP, 2)
	require.NoError(t, err)
	assert.Equal(t, "mew", got[0].Name)
	assert.Equal(t, "mewtwo", got[1].Name)
}

func TestRankByStatRejectsUnknownColumn(t *testing.T) {
	s := newTestStore(t)
	_, err := s.RankByStat(context.Background(), entity.Stat("hp; DROP TABLE dim_pokemon"), 3)
	assert.ErrorIs(t, err, errno.ErrInvalidStat)
}

func TestInvalidStoredRecordIsNotServed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `UPDATE fact_stats SET hp = 0 WHERE pokemon_id = 25`)
	require.NoError(t, err)

	_, err = s.GetByName(ctx, "pikachu")
	assert.ErrorIs(t, err, errno.ErrInvalidRecord)
	_, err = s.GetByID(ctx, 25)
	assert.ErrorIs(t, err, errno.ErrInvalidRecord)

	_, err = s.RankByStat(ctx, entity.StatHP, 10)
	assert.ErrorIs(t, err, errno.ErrInvalidRecord)

	got, err := s.RankByStat(ctx, entity.StatHP, 2)
	require.NoError(t, err, "rows above the bad one are still valid")
	assert.Len(t, got, 2)

	p, err := s.GetByName(ctx, "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, 45, p.Stats.HP)
}

func TestRankByStatHugeLimit(t *testing.T) {
	s := newTestStore(t)

	got, err := s.RankByStat(context.Background(), entity.StatAttack, 1<<44)
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, "mewtwo", got[0].Name)
}
