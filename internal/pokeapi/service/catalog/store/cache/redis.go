package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
	"github.com/redis/go-redis/v9"
)

// Redis stores entries with SETEX semantics.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, opts *options.RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr(),
		Password:     opts.Password,
		DB:           opts.Database,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.OpTimeout,
		WriteTimeout: opts.OpTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout+time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr(), err)
	}
	return &Redis{client: client}, nil
}

// NewRedisWithClient adopts an existing client.
func NewRedisWithClient(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errno.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
