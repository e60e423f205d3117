// Package provider maps provider IDs to their default settings and to the
// eino chat model constructor that talks to them.
package provider

import (
	"context"
	"fmt"
	"sort"

	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/pokedex/internal/pkg/options"
)

const (
	OpenAI    = "openai"
	Anthropic = "anthropic"
	DeepSeek  = "deepseek"
	Gemini    = "gemini"
	Ollama    = "ollama"
	Qwen      = "qwen"
)

// OpenAIKeyRef is the default OpenAI key reference. The agent also looks it
// up in the legacy .openai_config.txt file.
const OpenAIKeyRef = "${OPENAI_API_KEY}"

const defaultMaxTokens = 4096

// BuildFunc creates a tool-calling chat model from a fully resolved config.
type BuildFunc func(ctx context.Context, modelID string, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error)

// Provider is one supported backend.
type Provider struct {
	ID    string
	Build BuildFunc

	defaults options.ProviderConfig
}

// Defaults returns a private copy of the provider's built-in settings.
func (p Provider) Defaults() *options.ProviderConfig {
	cfg, _ := Merge(&p.defaults, nil)
	return cfg
}

var builtin = map[string]Provider{
	OpenAI: {
		ID:    OpenAI,
		Build: buildOpenAI,
		defaults: options.ProviderConfig{
			BaseURL: "https://api.openai.com/v1",
			APIKey:  OpenAIKeyRef,
			Models: []options.ModelDefinition{
				{ID: "gpt-5.2", Name: "GPT-5.2", MaxTokens: 8192},
				{ID: "gpt-4o", Name: "GPT-4o", MaxTokens: 8192},
				{ID: "gpt-4o-mini", Name: "GPT-4o Mini", MaxTokens: 8192},
			},
		},
	},
	Anthropic: {
		ID:    Anthropic,
		Build: buildAnthropic,
		defaults: options.ProviderConfig{
			BaseURL: "https://api.anthropic.com/v1",
			APIKey:  "${ANTHROPIC_API_KEY}",
			Models: []options.ModelDefinition{
				{ID: "claude-sonnet-4-5", Name: "Claude Sonnet 4.5", MaxTokens: 64000},
				{ID: "claude-haiku-4-5", Name: "Claude Haiku 4.5", MaxTokens: 64000},
			},
		},
	},
	DeepSeek: {
		ID:    DeepSeek,
		Build: buildDeepSeek,
		defaults: options.ProviderConfig{
			BaseURL: "https://api.deepseek.com/v1",
			APIKey:  "${DEEPSEEK_API_KEY}",
			Models:  []options.ModelDefinition{{ID: "deepseek-chat", Name: "DeepSeek V3", MaxTokens: 8192}},
		},
	},
	Gemini: {
		ID:    Gemini,
		Build: buildGemini,
		defaults: options.ProviderConfig{
			BaseURL: "https://generativelanguage.googleapis.com/",
			APIKey:  "${GOOGLE_API_KEY}",
			Models: []options.ModelDefinition{
				{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", MaxTokens: 65536},
				{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", MaxTokens: 8192},
			},
		},
	},
	Ollama: {
		ID:       Ollama,
		Build:    buildOllama,
		defaults: options.ProviderConfig{BaseURL: "http://127.0.0.1:11434"},
	},
	Qwen: {
		ID:    Qwen,
		Build: buildQwen,
		defaults: options.ProviderConfig{
			BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
			APIKey:  "${DASHSCOPE_API_KEY}",
			Models: []options.ModelDefinition{
				{ID: "qwen-plus", Name: "Qwen Plus", MaxTokens: 8192},
				{ID: "qwen-turbo", Name: "Qwen Turbo", MaxTokens: 8192},
			},
		},
	},
}

// Lookup returns the provider registered under id.
func Lookup(id string) (Provider, error) {
	p, ok := builtin[id]
	if !ok {
		return Provider{}, fmt.Errorf("unknown model provider %q (known: %v)", id, IDs())
	}
	return p, nil
}

// IDs lists the supported provider IDs in alphabetical order.
func IDs() []string {
	ids := make([]string, 0, len(builtin))
	for id := range builtin {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
