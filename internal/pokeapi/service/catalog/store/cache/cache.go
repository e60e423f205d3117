package cache

import (
	"context"
	"time"

	"github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/repo"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// New builds the configured backend. A backend that cannot be reached at
// startup degrades to Noop instead of failing the process.
func New(ctx context.Context, opts *options.CacheOptions) repo.RankingCache {
	var (
		store repo.RankingCache
		err   error
	)
	switch opts.Backend {
	case options.CacheRedis:
		store, err = NewRedis(ctx, &opts.Redis)
	case options.CacheMemory:
		store, err = NewMemory(opts.Memory.Size, opts.TTL)
	case options.CacheBolt:
		store, err = NewBolt(opts.Bolt.Path)
	default:
		return Noop{}
	}
	if err != nil {
		logger.Warn("[Cache] %s cache unavailable, rankings will not be cached: %v", opts.Backend, err)
		return Noop{}
	}
	logger.Info("[Cache] ranking cache backend: %s (ttl=%s)", opts.Backend, opts.TTL)
	return store
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, errno.ErrCacheMiss }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Close() error { return nil }
