package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/internal/pokeagent/service/llm/provider"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// Config holds the configuration for the LLM module.
// Config → Complete() → New(ctx).
type Config struct {
	ModelOptions *options.ModelOptions
	// OpenAIConfigFile is the legacy KEY=value file consulted for OPENAI_API_KEY.
	OpenAIConfigFile string
}

type CompletedConfig struct {
	*Config
}

func (c *Config) Complete() CompletedConfig {
	if c.ModelOptions == nil {
		c.ModelOptions = options.NewModelOptions()
	}
	if c.OpenAIConfigFile == "" {
		c.OpenAIConfigFile = options.DefaultOpenAIConfigFile
	}
	return CompletedConfig{c}
}

// Module resolves provider configuration and builds chat models.
type Module struct {
	opts    *options.ModelOptions
	keyFile string
}

func (c CompletedConfig) New(_ context.Context) (*Module, error) {
	if _, err := provider.Lookup(c.ModelOptions.DefaultProvider); err != nil {
		return nil, fmt.Errorf("default model provider: %w", err)
	}
	for id := range c.ModelOptions.Providers {
		if _, err := provider.Lookup(id); err != nil {
			return nil, fmt.Errorf("configured provider: %w", err)
		}
	}

	logger.Info("[LLM] LLM module initialized (providers=%v, default=%s/%s)",
		provider.IDs(), c.ModelOptions.DefaultProvider, c.ModelOptions.DefaultModel)
	return &Module{opts: c.ModelOptions, keyFile: c.OpenAIConfigFile}, nil
}

// Providers lists the supported provider IDs.
func (m *Module) Providers() []string {
	return provider.IDs()
}

// ProviderConfig returns the provider defaults merged with user configuration,
// with the API key resolved.
func (m *Module) ProviderConfig(providerID string) (*options.ProviderConfig, error) {
	p, err := provider.Lookup(providerID)
	if err != nil {
		return nil, err
	}
	cfg, err := provider.Merge(p.Defaults(), m.opts.Providers[providerID])
	if err != nil {
		return nil, err
	}

	if providerID == provider.OpenAI && (cfg.APIKey == "" || cfg.APIKey == provider.OpenAIKeyRef) {
		key, err := options.ResolveOpenAIAPIKey(m.keyFile)
		if err != nil {
			logger.Warn("[LLM] cannot read %s: %v", m.keyFile, err)
		}
		cfg.APIKey = key
	} else {
		cfg.APIKey = provider.ExpandEnv(cfg.APIKey)
	}
	return cfg, nil
}

// ChatModel builds a tool-calling model for providerID/modelID.
func (m *Module) ChatModel(ctx context.Context, providerID, modelID string) (model.ToolCallingChatModel, error) {
	p, err := provider.Lookup(providerID)
	if err != nil {
		return nil, err
	}
	cfg, err := m.ProviderConfig(providerID)
	if err != nil {
		return nil, err
	}

	cm, err := p.Build(ctx, modelID, cfg)
	if err != nil {
		return nil, fmt.Errorf("build chat model %s/%s: %w", providerID, modelID, err)
	}
	logger.Info("[LLM] chat model %s/%s ready", providerID, modelID)
	return cm, nil
}

// DefaultChatModel builds models.default-provider / models.default-model.
func (m *Module) DefaultChatModel(ctx context.Context) (model.ToolCallingChatModel, error) {
	return m.ChatModel(ctx, m.opts.DefaultProvider, m.opts.DefaultModel)
}
