package repo

import (
	"context"
	"time"

	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
)

// PokemonRepository reads the catalog tables populated by the ETL pipeline.
// Implementations return errno.ErrPokemonNotFound for unknown creatures.
type PokemonRepository interface {
	GetByName(ctx context.Context, name string) (*entity.PokemonDetail, error)
	GetByID(ctx context.Context, id int) (*entity.PokemonDetail, error)
	// ListNames returns names alphabetically, restricted to typeName when non-empty.
	ListNames(ctx context.Context, typeName string) ([]string, error)
	// RankByStat returns the top limit rows by stat descending, ties by name ascending.
	RankByStat(ctx context.Context, stat entity.Stat, limit int) ([]*entity.RankEntry, error)
}

// RankingCache is a best-effort byte cache. Get returns errno.ErrCacheMiss on a miss.
type RankingCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
