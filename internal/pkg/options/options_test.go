package options

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOpenAIAPIKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultOpenAIConfigFile)

	t.Setenv("OPENAI_API_KEY", "from-env")

	key, err := ResolveOpenAIAPIKey(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", key, "missing file falls back to env")

	content := "# local secrets\nOPENAI_API_KEY=\"from-file\"\nOTHER=1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	key, err = ResolveOpenAIAPIKey(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", key)
}

func TestDatabaseOptionsFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_USER", "ash")
	t.Setenv("POSTGRES_PASSWORD", "p@ss")
	t.Setenv("POSTGRES_DB", "dex")
	t.Setenv("DB_POOL_SIZE", "5")
	t.Setenv("DB_MAX_OVERFLOW", "2")

	o := NewDatabaseOptions()
	assert.Empty(t, o.Validate())
	assert.Equal(t, "postgres://ash:p%40ss@db:6543/dex?sslmode=disable", o.DSN())
	assert.Equal(t, 7, o.MaxOpenConns())

	o.Driver = "oracle"
	assert.NotEmpty(t, o.Validate())
}

func TestCacheOptionsDefaults(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	o := NewCacheOptions()
	assert.Equal(t, "redis:6379", o.Redis.Addr())
	assert.Equal(t, 60*time.Second, o.TTL)
	assert.Empty(t, o.Validate())

	o.TTL = 0
	o.Backend = "memcached"
	assert.Len(t, o.Validate(), 2)
}

func TestModelOptionsDefaults(t *testing.T) {
	t.Setenv("DEFAULT_MODEL", "")
	o := NewModelOptions()
	assert.Equal(t, "gpt-5.2", o.DefaultModel)
	assert.Empty(t, o.Validate())

	p := o.Provider("ollama")
	p.Models = []ModelDefinition{{}}
	assert.NotEmpty(t, o.Validate())
}
