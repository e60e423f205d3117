package llm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModule(t *testing.T, opts *options.ModelOptions, keyFile string) *Module {
	t.Helper()
	m, err := (&Config{ModelOptions: opts, OpenAIConfigFile: keyFile}).Complete().New(context.Background())
	require.NoError(t, err)
	return m
}

func TestProvidersRegistered(t *testing.T) {
	m := newModule(t, options.NewModelOptions(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, []string{"anthropic", "deepseek", "gemini", "ollama", "openai", "qwen"}, m.Providers())
}

func TestUnknownDefaultProviderFails(t *testing.T) {
	opts := options.NewModelOptions()
	opts.DefaultProvider = "watson"
	_, err := (&Config{ModelOptions: opts}).Complete().New(context.Background())
	assert.Error(t, err)
}

func TestOpenAIKeyFileWinsOverEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	keyFile := filepath.Join(t.TempDir(), ".openai_config.txt")
	require.NoError(t, os.WriteFile(keyFile, []byte("# local key\nOPENAI_API_KEY=\"sk-from-file\"\n"), 0o600))

	cfg, err := newModule(t, options.NewModelOptions(), keyFile).ProviderConfig("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", cfg.APIKey)
	assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURL)
}

func TestOpenAIKeyFallsBackToEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	cfg, err := newModule(t, options.NewModelOptions(), filepath.Join(t.TempDir(), "none.txt")).ProviderConfig("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.APIKey)
}

func TestProviderConfigOverridesDefaults(t *testing.T) {
	t.Setenv("MY_DEEPSEEK_KEY", "ds-key")
	temp := float32(0.2)
	opts := options.NewModelOptions()
	opts.Provider("deepseek").BaseURL = "http://proxy.local/v1"
	opts.Provider("deepseek").APIKey = "${MY_DEEPSEEK_KEY}"
	opts.Provider("deepseek").Temperature = &temp

	cfg, err := newModule(t, opts, "").ProviderConfig("deepseek")
	require.NoError(t, err)
	assert.Equal(t, "http://proxy.local/v1", cfg.BaseURL)
	assert.Equal(t, "ds-key", cfg.APIKey)
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, temp, *cfg.Temperature)
	assert.NotEmpty(t, cfg.Models, "default model list is kept")
}

func TestBuildOpenAICompatibleModels(t *testing.T) {
	opts := options.NewModelOptions()
	opts.Provider("openai").APIKey = "sk-test"
	opts.Provider("openai").BaseURL = "http://127.0.0.1:1/v1"
	m := newModule(t, opts, "")

	cm, err := m.DefaultChatModel(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cm)

	cm, err = m.ChatModel(context.Background(), "ollama", "llama3")
	require.NoError(t, err)
	assert.NotNil(t, cm)

	_, err = m.ChatModel(context.Background(), "watson", "x")
	assert.Error(t, err)
}
