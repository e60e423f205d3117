package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/internal/pkg/core"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/service"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/pkg/errno"
	"github.com/kiosk404/pokedex/pkg/errorx"
)

// PokemonHandler serves the read-only catalog.
type PokemonHandler struct {
	svc service.CatalogService
}

func NewPokemonHandler(svc service.CatalogService) *PokemonHandler {
	return &PokemonHandler{svc: svc}
}

// Get handles GET /v1/pokemons/:name. A numeric name is looked up as an id.
func (h *PokemonHandler) Get(c *gin.Context) {
	name := c.Param("name")
	detail, err := h.svc.GetDetails(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, errno.ErrPokemonNotFound) {
			core.WriteResponse(c, errorx.WrapC(err, ErrPokemonNotFound, "pokemon %q", name), nil)
			return
		}
		core.WriteResponse(c, errorx.WrapC(err, ErrPokemonGet, "get pokemon %q", name), nil)
		return
	}
	core.WriteResponse(c, nil, detail)
}

// List handles GET /v1/pokemons?type=.
func (h *PokemonHandler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind list query"), nil)
		return
	}
	names, err := h.svc.ListNames(c.Request.Context(), q.Type)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrPokemonList, "list pokemons type=%q", q.Type), nil)
		return
	}
	core.WriteResponse(c, nil, names)
}

// Ranking handles GET /v1/stats/ranking?stat=&limit=.
func (h *PokemonHandler) Ranking(c *gin.Context) {
	var q RankingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrValidation, "bind ranking query"), nil)
		return
	}
	entries, err := h.svc.GetRanking(c.Request.Context(), entity.Stat(q.Stat), q.Limit)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrRanking, "ranking %s/%d", q.Stat, q.Limit), nil)
		return
	}
	if entries == nil {
		entries = []*entity.RankEntry{}
	}
	core.WriteResponse(c, nil, entries)
}
