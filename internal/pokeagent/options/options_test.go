package options

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	o := NewOptions()

	assert.Empty(t, o.Validate())
	assert.Equal(t, "http://api:8000", o.BackendOptions.BaseURL)
	assert.Equal(t, 60*time.Second, o.BackendOptions.Timeout)
	assert.Equal(t, 3, o.BackendOptions.RetryMax)
	assert.Equal(t, 1, o.AgentOptions.MaxToolRounds)
	assert.False(t, o.AgentOptions.Required)
}

func TestBackendFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000")
	assert.Equal(t, "http://localhost:8000", NewBackendOptions().BaseURL)
}

func TestFlags(t *testing.T) {
	o := NewOptions()
	fs := pflag.NewFlagSet("pokeagent", pflag.ContinueOnError)
	o.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{"--agent.max-tool-rounds=3", "--agent.required", "--backend.base-url=http://127.0.0.1:8000"}))
	assert.Equal(t, 3, o.AgentOptions.MaxToolRounds)
	assert.True(t, o.AgentOptions.Required)
	assert.Equal(t, "http://127.0.0.1:8000", o.BackendOptions.BaseURL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	o := NewOptions()
	o.AgentOptions.MaxToolRounds = 0
	o.BackendOptions.Timeout = 0
	assert.Len(t, o.Validate(), 2)
}
