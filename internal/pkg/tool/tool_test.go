package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Text  string `json:"text" jsonschema_description:"Text to echo."`
	Times int    `json:"times,omitempty" jsonschema:"default=1,maximum=3"`
}

type rankArgs struct {
	Stat string `json:"stat" jsonschema:"enum=hp,enum=speed"`
}

func echoTool() Tool {
	return New("echo", "Echoes text.", func(_ context.Context, in echoArgs) (Result, error) {
		if in.Times == 0 {
			in.Times = 1
		}
		return OK(map[string]any{"text": in.Text, "times": in.Times}), nil
	})
}

func failingTool() Tool {
	return New("boom", "Always fails.", func(context.Context, echoArgs) (Result, error) {
		return Result{}, errors.New("backend exploded")
	})
}

func panickingTool() Tool {
	return New("panic", "Panics.", func(context.Context, echoArgs) (Result, error) {
		panic("nil map")
	})
}

func rankTool() Tool {
	return New("rank", "Ranks.", func(_ context.Context, in rankArgs) (Result, error) {
		return OK([]string{in.Stat}), nil
	})
}

func call(id, name, args string) schema.ToolCall {
	return schema.ToolCall{ID: id, Function: schema.FunctionCall{Name: name, Arguments: args}}
}

func decode(t *testing.T, content string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.UnmarshalString(content, &out))
	return out
}

func TestSchemaReflection(t *testing.T) {
	s := echoTool().Schema()
	assert.Equal(t, "Echoes text.", s.Description)
	assert.Equal(t, []string{"text"}, s.Required())

	info := s.ToolInfo("echo")
	assert.Equal(t, "echo", info.Name)
	assert.Equal(t, "Echoes text.", info.Desc)
	require.NotNil(t, info.ParamsOneOf)

	rs := rankTool().Schema()
	require.NoError(t, rs.Validate(map[string]any{"stat": "speed"}))
	assert.Error(t, rs.Validate(map[string]any{"stat": "charm"}))
	assert.Error(t, rs.Validate(map[string]any{}))
	assert.Error(t, rs.Validate(map[string]any{"stat": 3}))

	es := echoTool().Schema()
	require.NoError(t, es.Validate(map[string]any{"text": "oi", "times": float64(3)}))
	assert.ErrorContains(t, es.Validate(map[string]any{"text": "oi", "times": float64(1 << 44)}), "at most 3")
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(echoTool(), rankTool())
	require.NoError(t, err)

	_, ok := r.Resolve("echo")
	assert.True(t, ok)
	_, ok = r.Resolve("missing")
	assert.False(t, ok)

	defs := r.Describe()
	require.Len(t, defs, 2)
	assert.Equal(t, "echo", defs[0].Name)
	assert.Equal(t, "rank", defs[1].Name)
	assert.Len(t, r.ToolInfos(), 2)

	_, err = NewRegistry(echoTool(), echoTool())
	assert.Error(t, err)
}

func TestExecutePreservesOrderAndIDs(t *testing.T) {
	e := NewExecutor(MustNewRegistry(echoTool(), rankTool()))
	calls := []schema.ToolCall{
		call("call_1", "echo", `{"text":"a"}`),
		call("call_2", "rank", `{"stat":"hp"}`),
		call("call_3", "echo", `{"text":"c","times":3}`),
	}
	history := []*schema.Message{schema.UserMessage("hi")}

	out := e.Execute(context.Background(), calls, history)
	require.Len(t, out, 4)
	assert.Equal(t, history[0], out[0])

	for i, c := range calls {
		msg := out[i+1]
		assert.Equal(t, schema.Tool, msg.Role)
		assert.Equal(t, c.ID, msg.ToolCallID)
		assert.Equal(t, c.Function.Name, msg.ToolName)
	}
	assert.JSONEq(t, `{"text":"a","times":1}`, out[1].Content)
	assert.JSONEq(t, `["hp"]`, out[2].Content)
	assert.JSONEq(t, `{"text":"c","times":3}`, out[3].Content)
}

func TestExecuteFaultsBecomeErrorPayloads(t *testing.T) {
	e := NewExecutor(MustNewRegistry(echoTool(), failingTool(), panickingTool(), rankTool()))
	tests := []struct {
		name     string
		call     schema.ToolCall
		contains string
	}{
		{"unknown tool", call("1", "fly", `{}`), "Tool fly not found"},
		{"bad json", call("2", "echo", `{"text":`), "invalid arguments for echo"},
		{"handler error", call("3", "boom", `{"text":"x"}`), "backend exploded"},
		{"handler panic", call("4", "panic", `{"text":"x"}`), "panicked"},
		{"missing required", call("5", "echo", `{}`), `missing required argument "text"`},
		{"enum violation", call("6", "rank", `{"stat":"luck"}`), "must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Execute(context.Background(), []schema.ToolCall{tt.call}, nil)
			require.Len(t, out, 1)
			body := decode(t, out[0].Content)
			require.Contains(t, body, "error")
			assert.Contains(t, body["error"], tt.contains)
			assert.Equal(t, tt.call.ID, out[0].ToolCallID)
		})
	}
}

func TestExecuteContinuesAfterFault(t *testing.T) {
	e := NewExecutor(MustNewRegistry(echoTool()))
	out := e.Execute(context.Background(), []schema.ToolCall{
		call("a", "nope", `{}`),
		call("b", "echo", `{"text":"still here"}`),
	}, nil)
	require.Len(t, out, 2)
	assert.Contains(t, out[0].Content, "error")
	assert.Contains(t, out[1].Content, "still here")
}

func TestEmptyArgumentsDecodeAsEmptyObject(t *testing.T) {
	args, err := parseArguments("  ")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestResultWire(t *testing.T) {
	assert.JSONEq(t, `{"error":"Recurso não encontrado."}`, Errorf("Recurso não encontrado.").Wire())
	assert.JSONEq(t, `{"name":"pikachu"}`, OK(map[string]string{"name": "pikachu"}).Wire())

	nested := OK(map[string]Result{
		"pokemon_a": OK(map[string]int{"id": 25}),
		"pokemon_b": Errorf("Recurso não encontrado."),
	})
	assert.JSONEq(t, `{"pokemon_a":{"id":25},"pokemon_b":{"error":"Recurso não encontrado."}}`, nested.Wire())
}
