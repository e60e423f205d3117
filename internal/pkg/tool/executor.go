package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pokedex_tool_calls_total",
	Help: "Tool invocations requested by the model, by tool and outcome.",
}, []string{"tool", "outcome"})

// Executor runs model-requested tool calls against a Registry.
type Executor struct {
	registry *Registry
}

func NewExecutor(r *Registry) *Executor {
	return &Executor{registry: r}
}

// Execute runs calls sequentially in request order and appends one tool
// message per call to msgs. No fault in a single call aborts the others.
func (e *Executor) Execute(ctx context.Context, calls []schema.ToolCall, msgs []*schema.Message) []*schema.Message {
	for _, call := range calls {
		res := e.Run(ctx, call)
		msgs = append(msgs, &schema.Message{
			Role:       schema.Tool,
			Content:    res.Wire(),
			ToolCallID: call.ID,
			ToolName:   call.Function.Name,
		})
	}
	return msgs
}

// Run executes a single call and always returns a Result.
func (e *Executor) Run(ctx context.Context, call schema.ToolCall) Result {
	name := call.Function.Name
	start := time.Now()

	args, err := parseArguments(call.Function.Arguments)
	if err != nil {
		toolCalls.WithLabelValues(name, "bad_arguments").Inc()
		logger.CtxWarn(ctx, "[Tool] %s: invalid arguments: %v", name, err)
		return Errorf("invalid arguments for %s: %v", name, err)
	}

	t, ok := e.registry.Resolve(name)
	if !ok {
		toolCalls.WithLabelValues(name, "not_found").Inc()
		logger.CtxWarn(ctx, "[Tool] model requested unknown tool %s", name)
		return Errorf("Tool %s not found", name)
	}

	logger.CtxInfo(ctx, "[Tool] calling %s args=%v", name, logger.Redact(args))
	res, err := invoke(ctx, t, args)
	if err != nil {
		toolCalls.WithLabelValues(name, "fault").Inc()
		logger.CtxError(ctx, "[Tool] %s failed after %s: %v", name, time.Since(start), err)
		return Errorf("%s", err.Error())
	}

	outcome := "ok"
	if res.IsError() {
		outcome = "error"
	}
	toolCalls.WithLabelValues(name, outcome).Inc()
	logger.CtxInfo(ctx, "[Tool] %s finished in %s (%s)", name, time.Since(start), outcome)
	return res
}

func invoke(ctx context.Context, t Tool, args map[string]any) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %s panicked: %v", t.Name(), r)
		}
	}()
	return t.Invoke(ctx, args)
}

func parseArguments(raw string) (map[string]any, error) {
	args := make(map[string]any)
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.UnmarshalString(raw, &args); err != nil {
		return nil, err
	}
	return args, nil
}
