package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// Logger logs one line per request with latency and status.
func Logger(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		if _, ok := skip[path]; ok {
			return
		}
		logger.CtxInfo(c.Request.Context(), "[API] %s %s -> %d (%s)",
			c.Request.Method, path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}
