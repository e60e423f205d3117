package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process LRU. maxTTL bounds every entry; Set may shorten it.
type Memory struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

func NewMemory(size int, maxTTL time.Duration) (*Memory, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memory cache size must be positive, got %d", size)
	}
	return &Memory{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		now: time.Now,
	}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return nil, errno.ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.lru.Remove(key)
		return nil, errno.ErrCacheMiss
	}
	return append([]byte(nil), e.data...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{data: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.lru.Add(key, e)
	return nil
}

func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
