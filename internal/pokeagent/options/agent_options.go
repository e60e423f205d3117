package options

import (
	"fmt"
	"os"
	"time"

	genericoptions "github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/spf13/pflag"
)

// AgentOptions tune the conversation orchestrator.
type AgentOptions struct {
	// MaxToolRounds is how many model calls may request tools in one turn.
	MaxToolRounds int `json:"max-tool-rounds" mapstructure:"max-tool-rounds"`
	// Required makes orchestrator construction failure fatal at startup.
	Required bool `json:"required" mapstructure:"required"`
	// OpenAIConfigFile is the KEY=value file consulted for OPENAI_API_KEY.
	OpenAIConfigFile string `json:"openai-config-file" mapstructure:"openai-config-file"`
}

func NewAgentOptions() *AgentOptions {
	return &AgentOptions{
		MaxToolRounds:    1,
		OpenAIConfigFile: genericoptions.DefaultOpenAIConfigFile,
	}
}

func (o *AgentOptions) Validate() []error {
	var errs []error
	if o.MaxToolRounds < 1 || o.MaxToolRounds > 10 {
		errs = append(errs, fmt.Errorf("--agent.max-tool-rounds %d must be between 1 and 10", o.MaxToolRounds))
	}
	return errs
}

func (o *AgentOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxToolRounds, "agent.max-tool-rounds", o.MaxToolRounds, "Model calls per turn that may request tools before the final answer.")
	fs.BoolVar(&o.Required, "agent.required", o.Required, "Exit at startup when the agent cannot be built instead of serving a fixed error.")
	fs.StringVar(&o.OpenAIConfigFile, "agent.openai-config-file", o.OpenAIConfigFile, "File holding OPENAI_API_KEY=<key>; takes priority over the environment.")
}

// BackendOptions locate the catalog REST API the tools call.
type BackendOptions struct {
	BaseURL  string        `json:"base-url"  mapstructure:"base-url"`
	Timeout  time.Duration `json:"timeout"   mapstructure:"timeout"`
	RetryMax int           `json:"retry-max" mapstructure:"retry-max"`
}

// NewBackendOptions honours API_BASE_URL.
func NewBackendOptions() *BackendOptions {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://api:8000"
	}
	return &BackendOptions{
		BaseURL:  baseURL,
		Timeout:  60 * time.Second,
		RetryMax: 3,
	}
}

func (o *BackendOptions) Validate() []error {
	var errs []error
	if o.BaseURL == "" {
		errs = append(errs, fmt.Errorf("--backend.base-url is required"))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--backend.timeout must be positive"))
	}
	if o.RetryMax < 0 {
		errs = append(errs, fmt.Errorf("--backend.retry-max must not be negative"))
	}
	return errs
}

func (o *BackendOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BaseURL, "backend.base-url", o.BaseURL, "Base URL of the catalog REST API.")
	fs.DurationVar(&o.Timeout, "backend.timeout", o.Timeout, "Timeout of each catalog request.")
	fs.IntVar(&o.RetryMax, "backend.retry-max", o.RetryMax, "Retries on 5xx and timeouts.")
}
