package tool

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
)

// Definition is the description of one registered tool.
type Definition struct {
	Name        string
	Description string
	Schema      *Schema
	Required    []string
}

// Registry is the fixed set of tools offered to the model. It is built once
// and never mutated, so it is safe for concurrent use.
type Registry struct {
	tools []Tool
	index map[string]Tool
	infos []*schema.ToolInfo
}

// NewRegistry registers tools in order. Names must be non-empty and unique.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make([]Tool, 0, len(tools)),
		index: make(map[string]Tool, len(tools)),
		infos: make([]*schema.ToolInfo, 0, len(tools)),
	}
	for _, t := range tools {
		name := t.Name()
		if name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, dup := r.index[name]; dup {
			return nil, fmt.Errorf("tool %q registered twice", name)
		}
		r.tools = append(r.tools, t)
		r.index[name] = t
		r.infos = append(r.infos, t.Schema().ToolInfo(name))
	}
	return r, nil
}

func MustNewRegistry(tools ...Tool) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Resolve(name string) (Tool, bool) {
	t, ok := r.index[name]
	return t, ok
}

// Describe returns the tool definitions in registration order.
func (r *Registry) Describe() []Definition {
	defs := make([]Definition, 0, len(r.tools))
	for _, t := range r.tools {
		s := t.Schema()
		defs = append(defs, Definition{
			Name:        t.Name(),
			Description: s.Description,
			Schema:      s,
			Required:    s.Required(),
		})
	}
	return defs
}

// ToolInfos returns the tool declarations to bind to a chat model.
func (r *Registry) ToolInfos() []*schema.ToolInfo {
	return append([]*schema.ToolInfo(nil), r.infos...)
}

func (r *Registry) Len() int {
	return len(r.tools)
}
