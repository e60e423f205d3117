package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/repo"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultRankingTTL is how long a cached ranking stays valid.
const DefaultRankingTTL = 60 * time.Second

// MaxRankingLimit bounds the size of one ranking for every caller.
const MaxRankingLimit = 1000

// CatalogService is the read side of the Pokédex.
type CatalogService interface {
	// GetDetails looks a creature up by case-insensitive name, or by id when nameOrID is numeric.
	GetDetails(ctx context.Context, nameOrID string) (*entity.PokemonDetail, error)
	ListNames(ctx context.Context, typeFilter string) ([]string, error)
	// GetRanking is cache-aside over the repository; cache faults are never returned.
	GetRanking(ctx context.Context, stat entity.Stat, limit int) ([]*entity.RankEntry, error)
}

var rankingCacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pokedex_ranking_cache_events_total",
	Help: "Ranking cache lookups by outcome (hit, miss, error, write_error).",
}, []string{"outcome"})

type catalogService struct {
	repo  repo.PokemonRepository
	cache repo.RankingCache
	ttl   time.Duration
}

// NewCatalogService wires the repository and cache. A nil cache disables caching.
func NewCatalogService(r repo.PokemonRepository, cache repo.RankingCache, ttl time.Duration) CatalogService {
	if ttl <= 0 {
		ttl = DefaultRankingTTL
	}
	return &catalogService{repo: r, cache: cache, ttl: ttl}
}

// RankingCacheKey is "ranking:{stat}:{limit}".
func RankingCacheKey(stat entity.Stat, limit int) string {
	return fmt.Sprintf("ranking:%s:%d", stat, limit)
}

func (s *catalogService) GetDetails(ctx context.Context, nameOrID string) (*entity.PokemonDetail, error) {
	key := strings.TrimSpace(nameOrID)
	if key == "" {
		return nil, errno.ErrPokemonNotFound
	}
	if id, err := strconv.Atoi(key); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.GetByName(ctx, strings.ToLower(key))
}

func (s *catalogService) ListNames(ctx context.Context, typeFilter string) ([]string, error) {
	return s.repo.ListNames(ctx, strings.ToLower(strings.TrimSpace(typeFilter)))
}

func (s *catalogService) GetRanking(ctx context.Context, stat entity.Stat, limit int) ([]*entity.RankEntry, error) {
	if !stat.Valid() {
		return nil, fmt.Errorf("%w: %q", errno.ErrInvalidStat, stat)
	}
	if limit <= 0 || limit > MaxRankingLimit {
		return nil, fmt.Errorf("%w: %d not in 1..%d", errno.ErrInvalidLimit, limit, MaxRankingLimit)
	}

	key := RankingCacheKey(stat, limit)
	if entries, ok := s.readCache(ctx, key); ok {
		return entries, nil
	}

	entries, err := s.repo.RankByStat(ctx, stat, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		s.writeCache(ctx, key, entries)
	}
	return entries, nil
}

func (s *catalogService) readCache(ctx context.Context, key string) ([]*entity.RankEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errno.ErrCacheMiss) {
			rankingCacheEvents.WithLabelValues("miss").Inc()
		} else {
			rankingCacheEvents.WithLabelValues("error").Inc()
			logger.CtxWarn(ctx, "[Catalog] ranking cache read %s failed, falling back to store: %v", key, err)
		}
		return nil, false
	}

	var entries []*entity.RankEntry
	if err := json.Unmarshal(data, &entries); err != nil || len(entries) == 0 {
		rankingCacheEvents.WithLabelValues("error").Inc()
		logger.CtxWarn(ctx, "[Catalog] ranking cache entry %s is unreadable, ignoring", key)
		return nil, false
	}
	rankingCacheEvents.WithLabelValues("hit").Inc()
	return entries, true
}

func (s *catalogService) writeCache(ctx context.Context, key string, entries []*entity.RankEntry) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err == nil {
		err = s.cache.Set(ctx, key, data, s.ttl)
	}
	if err != nil {
		rankingCacheEvents.WithLabelValues("write_error").Inc()
		logger.CtxWarn(ctx, "[Catalog] ranking cache write %s failed: %v", key, err)
	}
}
