package mcp

import (
	"context"
	"errors"

	"github.com/kiosk404/pokedex/internal/pkg/tool"
	"github.com/kiosk404/pokedex/internal/pkg/tool/pokedex"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/service"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// CatalogBackend answers tool calls from the in-process catalog, with the
// same payloads the REST backend produces.
type CatalogBackend struct {
	svc service.CatalogService
}

var _ pokedex.Backend = (*CatalogBackend)(nil)

func NewCatalogBackend(svc service.CatalogService) *CatalogBackend {
	return &CatalogBackend{svc: svc}
}

func (b *CatalogBackend) GetPokemon(ctx context.Context, nameOrID string) tool.Result {
	detail, err := b.svc.GetDetails(ctx, nameOrID)
	if err != nil {
		return b.fail(ctx, "get "+nameOrID, err)
	}
	return tool.OK(detail)
}

func (b *CatalogBackend) ListByType(ctx context.Context, typeName string) tool.Result {
	names, err := b.svc.ListNames(ctx, typeName)
	if err != nil {
		return b.fail(ctx, "list "+typeName, err)
	}
	return tool.OK(names)
}

func (b *CatalogBackend) TopByStat(ctx context.Context, stat string, n int) tool.Result {
	s, err := entity.ParseStat(stat)
	if err != nil {
		return tool.Errorf("%v", err)
	}
	entries, err := b.svc.GetRanking(ctx, s, n)
	if errors.Is(err, errno.ErrInvalidLimit) {
		return tool.Errorf("n deve estar entre 1 e %d", service.MaxRankingLimit)
	}
	if err != nil {
		return b.fail(ctx, "ranking "+stat, err)
	}
	if entries == nil {
		entries = []*entity.RankEntry{}
	}
	return tool.OK(entries)
}

func (b *CatalogBackend) fail(ctx context.Context, op string, err error) tool.Result {
	if errors.Is(err, errno.ErrPokemonNotFound) {
		return tool.Errorf("%s", pokedex.MsgNotFound)
	}
	logger.CtxError(ctx, "[MCP] catalog %s failed: %v", op, err)
	return tool.Errorf("%s", pokedex.MsgUnexpected)
}
