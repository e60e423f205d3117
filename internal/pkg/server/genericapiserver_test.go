package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRoute(t *testing.T) {
	cfg := NewConfig()
	cfg.Mode = gin.TestMode
	s, err := cfg.Complete().New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.0.0"}`, w.Body.String())
}

func TestMetricsRouteToggle(t *testing.T) {
	cfg := NewConfig()
	cfg.Mode = gin.TestMode
	cfg.EnableMetrics = false
	s, err := cfg.Complete().New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
