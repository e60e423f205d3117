package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/pokedex/internal/pkg/tool"
	"github.com/kiosk404/pokedex/internal/pokeagent/service/agent/prompt"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrorAnswerPrefix starts the answer returned when a turn fails.
const ErrorAnswerPrefix = "Error processing your request: "

var errEmptyResponse = errors.New("model returned an empty response")

var modelCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pokedex_model_calls_total",
	Help: "Chat model calls by phase (tools, final) and outcome.",
}, []string{"phase", "outcome"})

// Orchestrator runs one user turn: a model call with the tools bound, the
// requested tool calls, and a final model call without tools.
type Orchestrator struct {
	model     model.ToolCallingChatModel
	toolModel model.ToolCallingChatModel
	executor  *tool.Executor

	systemPrompt  string
	maxToolRounds int
	modelTimeout  time.Duration
}

// OrchestratorConfig tunes an Orchestrator. Zero values take defaults.
type OrchestratorConfig struct {
	SystemPrompt string
	// MaxToolRounds is how many model calls may request tools before the
	// final tool-less call. Default 1.
	MaxToolRounds int
	// ModelTimeout bounds every model call; 0 means no timeout.
	ModelTimeout time.Duration
}

func NewOrchestrator(cm model.ToolCallingChatModel, registry *tool.Registry, cfg OrchestratorConfig) (*Orchestrator, error) {
	if cm == nil {
		return nil, errors.New("chat model is required")
	}
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	toolModel, err := cm.WithTools(registry.ToolInfos())
	if err != nil {
		return nil, fmt.Errorf("bind %d tools to chat model: %w", registry.Len(), err)
	}

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = prompt.System
	}
	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = 1
	}
	return &Orchestrator{
		model:         cm,
		toolModel:     toolModel,
		executor:      tool.NewExecutor(registry),
		systemPrompt:  cfg.SystemPrompt,
		maxToolRounds: cfg.MaxToolRounds,
		modelTimeout:  cfg.ModelTimeout,
	}, nil
}

// ProcessMessage answers input given the prior history. It never fails:
// faults are folded into the answer text. history is not modified; the
// caller appends the user and assistant turns afterwards.
func (o *Orchestrator) ProcessMessage(ctx context.Context, input string, history []*schema.Message) string {
	answer, err := o.Process(ctx, input, history)
	if err != nil {
		logger.CtxError(ctx, "[Agent] turn failed: %v", err)
		return ErrorAnswerPrefix + err.Error()
	}
	return answer
}

// Process is ProcessMessage with the error returned instead of folded.
func (o *Orchestrator) Process(ctx context.Context, input string, history []*schema.Message) (string, error) {
	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(o.systemPrompt))
	msgs = append(msgs, history...)
	msgs = append(msgs, schema.UserMessage(input))

	for round := 1; round <= o.maxToolRounds; round++ {
		resp, err := o.generate(ctx, "tools", o.toolModel, msgs,
			model.WithToolChoice(schema.ToolChoiceAllowed))
		if err != nil {
			return "", err
		}
		if len(resp.ToolCalls) == 0 {
			logger.CtxInfo(ctx, "[Agent] answered without tools (round %d)", round)
			return resp.Content, nil
		}

		logger.CtxInfo(ctx, "[Agent] round %d: model requested %d tool call(s)", round, len(resp.ToolCalls))
		msgs = append(msgs, resp)
		msgs = o.executor.Execute(ctx, resp.ToolCalls, msgs)
	}

	resp, err := o.generate(ctx, "final", o.model, msgs)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (o *Orchestrator) generate(ctx context.Context, phase string, cm model.BaseChatModel, msgs []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if o.modelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.modelTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := cm.Generate(ctx, msgs, opts...)
	if err == nil && resp == nil {
		err = errEmptyResponse
	}
	if err != nil {
		modelCalls.WithLabelValues(phase, "error").Inc()
		return nil, err
	}
	modelCalls.WithLabelValues(phase, "ok").Inc()
	logger.CtxDebug(ctx, "[Agent] %s model call took %s", phase, time.Since(start))
	return resp, nil
}

// Service answers one chat turn. *Orchestrator implements it.
type Service interface {
	ProcessMessage(ctx context.Context, input string, history []*schema.Message) string
}

var _ Service = (*Orchestrator)(nil)
