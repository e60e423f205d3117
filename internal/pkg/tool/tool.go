// Package tool declares callable functions for a language model and runs
// the invocations the model requests.
package tool

import (
	"context"
	"fmt"

	"github.com/kiosk404/pokedex/pkg/utils/json"
)

// Tool is one function the model may call. Invoke receives the decoded
// arguments; a returned error is a handler fault, not a domain failure.
type Tool interface {
	Name() string
	Schema() *Schema
	Invoke(ctx context.Context, args map[string]any) (Result, error)
}

// HandlerFunc is the typed body of a tool built with New.
type HandlerFunc[In any] func(ctx context.Context, in In) (Result, error)

type typedTool[In any] struct {
	name    string
	schema  *Schema
	handler HandlerFunc[In]
}

// New builds a Tool whose parameter schema is reflected from In. Fields
// without omitempty are required; use jsonschema tags for enums and defaults.
func New[In any](name, description string, handler HandlerFunc[In]) Tool {
	return &typedTool[In]{
		name:    name,
		schema:  SchemaFor[In](description),
		handler: handler,
	}
}

func (t *typedTool[In]) Name() string { return t.name }

func (t *typedTool[In]) Schema() *Schema { return t.schema }

func (t *typedTool[In]) Invoke(ctx context.Context, args map[string]any) (Result, error) {
	if err := t.schema.Validate(args); err != nil {
		return Result{}, err
	}

	var in In
	data, err := json.Marshal(args)
	if err != nil {
		return Result{}, fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return Result{}, fmt.Errorf("decode arguments: %w", err)
	}
	return t.handler(ctx, in)
}
