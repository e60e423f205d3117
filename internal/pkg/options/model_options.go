package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ModelOptions selects the chat model provider used by the agent.
type ModelOptions struct {
	DefaultProvider string                     `json:"default-provider" mapstructure:"default-provider"`
	DefaultModel    string                     `json:"default-model"    mapstructure:"default-model"`
	Timeout         time.Duration              `json:"timeout"          mapstructure:"timeout"`
	Providers       map[string]*ProviderConfig `json:"providers"        mapstructure:"providers"`
}

type ProviderConfig struct {
	BaseURL     string            `json:"base-url"    mapstructure:"base-url"`
	APIKey      string            `json:"-"           mapstructure:"api-key"`
	APIVersion  string            `json:"api-version" mapstructure:"api-version"`
	ByAzure     bool              `json:"by-azure"    mapstructure:"by-azure"`
	Temperature *float32          `json:"temperature" mapstructure:"temperature"`
	MaxTokens   int               `json:"max-tokens"  mapstructure:"max-tokens"`
	Headers     map[string]string `json:"headers"     mapstructure:"headers"`
	Models      []ModelDefinition `json:"models"      mapstructure:"models"`
}

type ModelDefinition struct {
	ID        string `json:"id"         mapstructure:"id"`
	Name      string `json:"name"       mapstructure:"name"`
	MaxTokens int    `json:"max-tokens" mapstructure:"max-tokens"`
}

// NewModelOptions defaults to OpenAI with DEFAULT_MODEL (gpt-5.2).
func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		DefaultProvider: "openai",
		DefaultModel:    envOr("DEFAULT_MODEL", "gpt-5.2"),
		Timeout:         60 * time.Second,
		Providers:       make(map[string]*ProviderConfig),
	}
}

func (o *ModelOptions) Validate() []error {
	var errs []error
	if o.DefaultProvider == "" {
		errs = append(errs, fmt.Errorf("models.default-provider is required"))
	}
	if o.DefaultModel == "" {
		errs = append(errs, fmt.Errorf("models.default-model is required"))
	}
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("models.timeout must not be negative"))
	}
	for id, p := range o.Providers {
		if p == nil {
			errs = append(errs, fmt.Errorf("provider %q has no configuration", id))
			continue
		}
		for _, m := range p.Models {
			if m.ID == "" {
				errs = append(errs, fmt.Errorf("provider %q: model id is required", id))
			}
		}
	}
	return errs
}

// Provider returns the configuration of id, creating an empty one if absent.
func (o *ModelOptions) Provider(id string) *ProviderConfig {
	if o.Providers == nil {
		o.Providers = make(map[string]*ProviderConfig)
	}
	p, ok := o.Providers[id]
	if !ok || p == nil {
		p = &ProviderConfig{}
		o.Providers[id] = p
	}
	return p
}

func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DefaultProvider, "models.default-provider", o.DefaultProvider, "Default provider ID (openai, anthropic, deepseek, gemini, ollama, qwen).")
	fs.StringVar(&o.DefaultModel, "models.default-model", o.DefaultModel, "Default model ID.")
	fs.DurationVar(&o.Timeout, "models.timeout", o.Timeout, "Timeout applied to every model call; 0 disables it.")
}
