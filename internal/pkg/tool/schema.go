package tool

import (
	"fmt"
	"slices"

	"github.com/cloudwego/eino/schema"
	"github.com/invopop/jsonschema"
)

var reflector = &jsonschema.Reflector{
	DoNotReference: true,
	ExpandedStruct: true,
}

// Schema is a tool's description plus its JSON-schema parameter object.
type Schema struct {
	Description string
	Parameters  *jsonschema.Schema
}

// SchemaFor reflects the parameter schema of the argument struct In.
func SchemaFor[In any](description string) *Schema {
	var zero In
	params := reflector.Reflect(&zero)
	params.Version = ""
	params.ID = ""
	return &Schema{Description: description, Parameters: params}
}

// Required lists the required parameter names in declaration order.
func (s *Schema) Required() []string {
	if s.Parameters == nil {
		return nil
	}
	return s.Parameters.Required
}

// Validate checks that required arguments are present and enum-constrained
// arguments hold an allowed value.
func (s *Schema) Validate(args map[string]any) error {
	if s.Parameters == nil {
		return nil
	}
	for _, name := range s.Parameters.Required {
		if v, ok := args[name]; !ok || v == nil {
			return fmt.Errorf("missing required argument %q", name)
		}
	}
	if s.Parameters.Properties == nil {
		return nil
	}
	for pair := s.Parameters.Properties.Oldest(); pair != nil; pair = pair.Next() {
		v, ok := args[pair.Key]
		if !ok || v == nil {
			continue
		}
		prop := pair.Value
		if prop.Type == "string" {
			if _, isString := v.(string); !isString {
				return fmt.Errorf("argument %q must be a string", pair.Key)
			}
		}
		if prop.Maximum != "" {
			if n, isNumber := v.(float64); isNumber {
				if limit, err := prop.Maximum.Float64(); err == nil && n > limit {
					return fmt.Errorf("argument %q must be at most %s, got %v", pair.Key, prop.Maximum, v)
				}
			}
		}
		if len(prop.Enum) > 0 && !slices.ContainsFunc(prop.Enum, func(e any) bool {
			return fmt.Sprint(e) == fmt.Sprint(v)
		}) {
			return fmt.Errorf("argument %q must be one of %v, got %v", pair.Key, prop.Enum, v)
		}
	}
	return nil
}

// ToolInfo renders the schema in the form chat models consume.
func (s *Schema) ToolInfo(name string) *schema.ToolInfo {
	info := &schema.ToolInfo{Name: name, Desc: s.Description}
	if s.Parameters == nil || s.Parameters.Properties == nil {
		return info
	}

	params := make(map[string]*schema.ParameterInfo, s.Parameters.Properties.Len())
	for pair := s.Parameters.Properties.Oldest(); pair != nil; pair = pair.Next() {
		prop := pair.Value
		p := &schema.ParameterInfo{
			Type:     toDataType(prop.Type),
			Desc:     prop.Description,
			Required: slices.Contains(s.Parameters.Required, pair.Key),
		}
		for _, e := range prop.Enum {
			p.Enum = append(p.Enum, fmt.Sprint(e))
		}
		params[pair.Key] = p
	}
	info.ParamsOneOf = schema.NewParamsOneOfByParams(params)
	return info
}

func toDataType(t string) schema.DataType {
	switch t {
	case "integer":
		return schema.Integer
	case "number":
		return schema.Number
	case "boolean":
		return schema.Boolean
	case "object":
		return schema.Object
	case "array":
		return schema.Array
	default:
		return schema.String
	}
}
