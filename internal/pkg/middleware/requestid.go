package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// XRequestIDKey is the header carrying the correlation identifier.
const XRequestIDKey = "X-Request-ID"

// RequestID reads X-Request-ID or generates one, stores it in the request
// context for logging and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(XRequestIDKey)
		if rid == "" {
			rid = logger.NewCorrelationID()
		}

		c.Set(XRequestIDKey, rid)
		c.Request = c.Request.WithContext(logger.WithCorrelationID(c.Request.Context(), rid))
		c.Writer.Header().Set(XRequestIDKey, rid)
		c.Next()
	}
}
