package pokeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/internal/pkg/middleware"
	v1 "github.com/kiosk404/pokedex/internal/pokeapi/handler/v1"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/service"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/mcp"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	catalog service.CatalogService
	// mcp is nil when the MCP endpoint is disabled.
	mcp *mcp.Module
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installController(g, deps)
}

func middlewares() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.CORS(),
		middleware.Logger("/health", "/metrics"),
		middleware.Metrics(),
	}
}

func installController(g *gin.Engine, deps *routerDeps) {
	g.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API Pokedex v1. Use /v1/...", "docs": "/docs"})
	})

	pokemonHandler := v1.NewPokemonHandler(deps.catalog)

	apiV1 := g.Group("/v1")
	{
		apiV1.GET("/pokemons", pokemonHandler.List)
		apiV1.GET("/pokemons/:name", pokemonHandler.Get)
		apiV1.GET("/stats/ranking", pokemonHandler.Ranking)
	}

	if deps.mcp != nil {
		g.Any(deps.mcp.EndpointPath(), gin.WrapH(deps.mcp.Handler()))
	}
}
