package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/pokedex/internal/pkg/tool"
	"github.com/kiosk404/pokedex/internal/pkg/tool/pokedex"
	"github.com/kiosk404/pokedex/internal/pokeagent/service/llm"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// Config holds the configuration for the Agent module.
// Config → Complete() → New(ctx, deps).
type Config struct {
	MaxToolRounds int
	ModelTimeout  time.Duration
	// SystemPrompt overrides prompt.System when set.
	SystemPrompt string
}

type CompletedConfig struct {
	*Config
}

func (c *Config) Complete() CompletedConfig {
	if c.MaxToolRounds <= 0 {
		c.MaxToolRounds = 1
	}
	return CompletedConfig{c}
}

// Dependencies are the collaborators the Agent module is built over.
type Dependencies struct {
	LLM     *llm.Module
	Backend pokedex.Backend
}

// Module owns the tool registry and the orchestrator answering chat turns.
type Module struct {
	Orchestrator *Orchestrator
	Registry     *tool.Registry
}

func (c CompletedConfig) New(ctx context.Context, deps Dependencies) (*Module, error) {
	logger.Info("[Agent] creating Agent module...")
	if deps.LLM == nil || deps.Backend == nil {
		return nil, fmt.Errorf("agent module needs an LLM module and a catalog backend")
	}

	registry, err := pokedex.NewRegistry(deps.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}
	cm, err := deps.LLM.DefaultChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build chat model: %w", err)
	}
	orchestrator, err := NewOrchestrator(cm, registry, OrchestratorConfig{
		SystemPrompt:  c.SystemPrompt,
		MaxToolRounds: c.MaxToolRounds,
		ModelTimeout:  c.ModelTimeout,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("[Agent] Agent module initialized (tools=%d, max-tool-rounds=%d, model-timeout=%s)",
		registry.Len(), c.MaxToolRounds, c.ModelTimeout)
	return &Module{Orchestrator: orchestrator, Registry: registry}, nil
}
