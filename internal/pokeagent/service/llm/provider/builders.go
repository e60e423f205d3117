package provider

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"
	einoDeepseek "github.com/cloudwego/eino-ext/components/model/deepseek"
	einoGemini "github.com/cloudwego/eino-ext/components/model/gemini"
	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	einoQwen "github.com/cloudwego/eino-ext/components/model/qwen"
	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/pokedex/internal/pkg/options"
	"google.golang.org/genai"
)

var textFormat = &einoOpenAI.ChatCompletionResponseFormat{
	Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
}

func buildOpenAI(ctx context.Context, modelID string, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	return einoOpenAI.NewChatModel(ctx, &einoOpenAI.ChatModelConfig{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		ByAzure:        cfg.ByAzure,
		APIVersion:     cfg.APIVersion,
		Model:          modelID,
		MaxTokens:      gptr.Of(MaxTokens(cfg, modelID, defaultMaxTokens)),
		Temperature:    cfg.Temperature,
		ResponseFormat: textFormat,
	})
}

func buildAnthropic(ctx context.Context, modelID string, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	conf := &einoClaude.Config{
		APIKey:      cfg.APIKey,
		Model:       modelID,
		MaxTokens:   MaxTokens(cfg, modelID, defaultMaxTokens),
		Temperature: cfg.Temperature,
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = gptr.Of(cfg.BaseURL)
	}
	return einoClaude.NewChatModel(ctx, conf)
}

func buildDeepSeek(ctx context.Context, modelID string, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	temperature := float32(0.7)
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	return einoDeepseek.NewChatModel(ctx, &einoDeepseek.ChatModelConfig{
		BaseURL:            cfg.BaseURL,
		APIKey:             cfg.APIKey,
		Model:              modelID,
		Temperature:        temperature,
		MaxTokens:          MaxTokens(cfg, modelID, defaultMaxTokens),
		ResponseFormatType: einoDeepseek.ResponseFormatTypeText,
	})
}

func buildQwen(ctx context.Context, modelID string, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	temperature := cfg.Temperature
	if temperature == nil {
		temperature = gptr.Of(float32(0.7))
	}
	return einoQwen.NewChatModel(ctx, &einoQwen.ChatModelConfig{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		Model:          modelID,
		Temperature:    temperature,
		MaxTokens:      gptr.Of(MaxTokens(cfg, modelID, defaultMaxTokens)),
		ResponseFormat: textFormat,
	})
}

// buildGemini goes through Google's genai client, not an OpenAI-style endpoint.
func buildGemini(ctx context.Context, modelID string, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return einoGemini.NewChatModel(ctx, &einoGemini.Config{
		Client:      client,
		Model:       modelID,
		MaxTokens:   gptr.Of(MaxTokens(cfg, modelID, defaultMaxTokens)),
		Temperature: cfg.Temperature,
	})
}

func buildOllama(ctx context.Context, modelID string, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	opts := &einoOllama.Options{}
	if cfg.Temperature != nil {
		opts.Temperature = *cfg.Temperature
	}
	return einoOllama.NewChatModel(ctx, &einoOllama.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		Model:   modelID,
		Options: opts,
	})
}
