package pokeagent

import (
	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/internal/pkg/middleware"
	v1 "github.com/kiosk404/pokedex/internal/pokeagent/handler/v1"
	"github.com/kiosk404/pokedex/internal/pokeagent/handler/ws"
	"github.com/kiosk404/pokedex/internal/pokeagent/service/agent"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	agent agent.Service
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installController(g, deps)
}

// middlewares are installed by the generic server so that /health and
// /metrics carry a request id too.
func middlewares() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.CORS(),
		middleware.Logger("/health", "/metrics"),
		middleware.Metrics(),
	}
}

func installController(g *gin.Engine, deps *routerDeps) {
	g.GET("/ws", ws.NewChatHandler(deps.agent).Handle)

	apiV1 := g.Group("/v1")
	{
		apiV1.POST("/chat", v1.NewChatHandler(deps.agent).Handle)
	}
}
