package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/repo"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func exerciseStore(t *testing.T, store repo.RankingCache, advance func(time.Duration)) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "ranking:attack:5")
	assert.ErrorIs(t, err, errno.ErrCacheMiss)

	payload := []byte(`[{"rank":1,"name":"mewtwo","value":110}]`)
	require.NoError(t, store.Set(ctx, "ranking:attack:5", payload, 60*time.Second))

	got, err := store.Get(ctx, "ranking:attack:5")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	advance(61 * time.Second)
	_, err = store.Get(ctx, "ranking:attack:5")
	assert.ErrorIs(t, err, errno.ErrCacheMiss, "entry must expire after its ttl")
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store, mr.FastForward)
}

func TestRedisStoreUnreachableDegradesToNoop(t *testing.T) {
	opts := options.NewCacheOptions()
	opts.Redis.Host = "127.0.0.1"
	opts.Redis.Port = 1
	opts.Redis.DialTimeout = 100 * time.Millisecond

	store := New(context.Background(), opts)
	assert.IsType(t, Noop{}, store)
}

func TestMemoryStore(t *testing.T) {
	store, err := NewMemory(16, time.Hour)
	require.NoError(t, err)
	c := &clock{t: time.Now()}
	store.now = c.now

	exerciseStore(t, store, func(d time.Duration) { c.t = c.t.Add(d) })
}

func TestBoltStore(t *testing.T) {
	store, err := NewBolt(filepath.Join(t.TempDir(), "cache", "ranking.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	c := &clock{t: time.Now()}
	store.now = c.now

	exerciseStore(t, store, func(d time.Duration) { c.t = c.t.Add(d) })
}

func TestNoop(t *testing.T) {
	var n Noop
	require.NoError(t, n.Set(context.Background(), "k", []byte("v"), time.Second))
	_, err := n.Get(context.Background(), "k")
	assert.ErrorIs(t, err, errno.ErrCacheMiss)
}
