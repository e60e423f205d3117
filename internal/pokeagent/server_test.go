package pokeagent

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/internal/pkg/middleware"
	"github.com/kiosk404/pokedex/internal/pokeagent/config"
	"github.com/kiosk404/pokedex/internal/pokeagent/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	opts := options.NewOptions()
	opts.GRPCOptions.Enabled = false
	opts.GenericServerRunOptions.Mode = gin.TestMode
	opts.GenericServerRunOptions.EnableMetrics = false
	opts.AgentOptions.OpenAIConfigFile = filepath.Join(t.TempDir(), "none.txt")
	opts.ModelOptions.DefaultProvider = "ollama"
	opts.ModelOptions.DefaultModel = "llama3.1"
	cfg, err := config.CreateConfigFromOptions(opts)
	require.NoError(t, err)
	return cfg
}

func serve(t *testing.T, cfg *config.Config, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	s, err := createAPIServer(cfg)
	require.NoError(t, err)
	prepared := s.PrepareRun()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	prepared.genericAPIServer.ServeHTTP(w, req)
	return w
}

func TestHealthEchoesRequestID(t *testing.T) {
	w := serve(t, testConfig(t), http.MethodGet, "/health", "", http.Header{middleware.XRequestIDKey: {"req-42"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.0.0"}`, w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(middleware.XRequestIDKey))
}

func TestGeneratesRequestID(t *testing.T) {
	w := serve(t, testConfig(t), http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.XRequestIDKey))
}

func TestAgentFailureWithoutRequired(t *testing.T) {
	cfg := testConfig(t)
	cfg.ModelOptions.DefaultProvider = "watson"

	w := serve(t, cfg, http.MethodPost, "/v1/chat", `{"message":"oi"}`, http.Header{"Content-Type": {"application/json"}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAgentFailureWithRequired(t *testing.T) {
	cfg := testConfig(t)
	cfg.ModelOptions.DefaultProvider = "watson"
	cfg.AgentOptions.Required = true

	_, err := createAPIServer(cfg)
	assert.Error(t, err)
}

func TestAgentBuilt(t *testing.T) {
	s, err := createAPIServer(testConfig(t))
	require.NoError(t, err)
	assert.NotNil(t, s.agent)
}
