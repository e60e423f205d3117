package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/pokedex/internal/pkg/db"
	"github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/repo"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/service"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/store/cache"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/store/sqlstore"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// Config holds the configuration for the Catalog module.
// Config → Complete() → New(ctx).
type Config struct {
	Database *options.DatabaseOptions
	Cache    *options.CacheOptions

	// EnsureSchema creates missing tables on startup.
	EnsureSchema bool
}

type CompletedConfig struct {
	*Config
}

func (c *Config) Complete() CompletedConfig {
	if c.Database == nil {
		c.Database = options.NewDatabaseOptions()
	}
	if c.Cache == nil {
		c.Cache = options.NewCacheOptions()
	}
	return CompletedConfig{c}
}

// Module owns the database handle and ranking cache behind the catalog service.
type Module struct {
	Service service.CatalogService
	Repo    repo.PokemonRepository

	db    *db.DB
	cache repo.RankingCache
}

func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	logger.Info("[Catalog] creating Catalog module...")

	conn, err := db.Open(ctx, c.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if c.EnsureSchema {
		if err := db.EnsureSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to ensure catalog schema: %w", err)
		}
	}

	return NewWithDB(conn, cache.New(ctx, c.Cache), c.Cache.TTL), nil
}

// NewWithDB assembles the module over an already opened database.
func NewWithDB(conn *db.DB, rankingCache repo.RankingCache, ttl time.Duration) *Module {
	store := sqlstore.NewPokemonStore(conn)
	m := &Module{
		Service: service.NewCatalogService(store, rankingCache, ttl),
		Repo:    store,
		db:      conn,
		cache:   rankingCache,
	}
	logger.Info("[Catalog] Catalog module initialized (dialect=%s)", conn.Dialect)
	return m
}

// Ping reports whether the database is reachable.
func (m *Module) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Module) Close() error {
	if m.cache != nil {
		_ = m.cache.Close()
	}
	return m.db.Close()
}
