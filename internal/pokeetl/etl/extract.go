package etl

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"golang.org/x/sync/errgroup"
)

// ExtractConfig configures the PokeAPI source.
type ExtractConfig struct {
	SourceURL   string
	Timeout     time.Duration
	RetryMax    int
	Concurrency int
	// RetryWaitMin and RetryWaitMax bound the backoff; tests shrink them.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Extractor fetches creature records from PokeAPI.
type Extractor struct {
	sourceURL   string
	concurrency int
	client      *retryablehttp.Client
}

func NewExtractor(cfg ExtractConfig) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = 500 * time.Millisecond
	}
	if cfg.RetryWaitMax <= 0 {
		cfg.RetryWaitMax = 5 * time.Second
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = cfg.RetryWaitMin
	client.RetryWaitMax = cfg.RetryWaitMax
	client.Logger = logger.NewKV("[Extract] ")

	return &Extractor{
		sourceURL:   cfg.SourceURL,
		concurrency: cfg.Concurrency,
		client:      client,
	}
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResponse struct {
	Results []namedResource `json:"results"`
}

type detailResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
}

// Extract lists up to limit creatures and fetches each detail page. A detail
// that cannot be fetched or mapped is logged and skipped; a failed list
// request fails the whole extract. Records keep the list order.
func (e *Extractor) Extract(ctx context.Context, limit int) ([]*entity.PokemonDetail, error) {
	logger.CtxInfo(ctx, "[Extract] fetching %d pokemon from %s", limit, e.sourceURL)

	var list listResponse
	if err := e.getJSON(ctx, e.listURL(limit), &list); err != nil {
		return nil, fmt.Errorf("fetch pokemon list: %w", err)
	}

	records := make([]*entity.PokemonDetail, len(list.Results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, item := range list.Results {
		g.Go(func() error {
			var raw detailResponse
			if err := e.getJSON(gctx, item.URL, &raw); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.CtxError(ctx, "[Extract] failed to fetch %s: %v", item.Name, err)
				return nil
			}
			p, err := mapDetail(&raw)
			if err != nil {
				logger.CtxError(ctx, "[Extract] failed to map %s: %v", item.Name, err)
				return nil
			}
			records[i] = p
			logger.CtxDebug(ctx, "[Extract] processed %s", item.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := records[:0]
	for _, p := range records {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (e *Extractor) listURL(limit int) string {
	sep := "?"
	if strings.Contains(e.sourceURL, "?") {
		sep = "&"
	}
	return e.sourceURL + sep + "limit=" + strconv.Itoa(limit)
}

func (e *Extractor) getJSON(ctx context.Context, url string, v any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// mapDetail converts a PokeAPI detail page. Stat names are normalized from the
// hyphenated spelling; all six base stats must be present.
func mapDetail(raw *detailResponse) (*entity.PokemonDetail, error) {
	stats := map[entity.Stat]int{}
	for _, s := range raw.Stats {
		stat, err := entity.ParseStat(s.Stat.Name)
		if err != nil {
			continue
		}
		stats[stat] = s.BaseStat
	}
	for _, stat := range entity.AllStats {
		if _, ok := stats[stat]; !ok {
			return nil, fmt.Errorf("missing stat %s", stat)
		}
	}

	slots := raw.Types
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	types := make([]string, 0, len(slots))
	for _, t := range slots {
		types = append(types, t.Type.Name)
	}

	return &entity.PokemonDetail{
		ID:     raw.ID,
		Name:   raw.Name,
		Height: raw.Height,
		Weight: raw.Weight,
		Types:  types,
		Stats: entity.PokemonStats{
			HP:             stats[entity.StatHP],
			Attack:         stats[entity.StatAttack],
			Defense:        stats[entity.StatDefense],
			SpecialAttack:  stats[entity.StatSpecialAttack],
			SpecialDefense: stats[entity.StatSpecialDefense],
			Speed:          stats[entity.StatSpeed],
		},
	}, nil
}
