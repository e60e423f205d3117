package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func newEngine() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	g := gin.New()
	g.Use(RequestID(), Metrics())
	g.GET("/ping", func(c *gin.Context) {
		seen = logger.CorrelationID(c.Request.Context())
		c.String(http.StatusOK, "pong")
	})
	return g, &seen
}

func TestRequestIDEchoesIncomingHeader(t *testing.T) {
	g, seen := newEngine()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(XRequestIDKey, "abc-123")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(XRequestIDKey))
	assert.Equal(t, "abc-123", *seen)
}

func TestRequestIDGeneratesUUID(t *testing.T) {
	g, seen := newEngine()

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	rid := w.Header().Get(XRequestIDKey)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err)
	assert.Equal(t, rid, *seen)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(CORS())
	g.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
