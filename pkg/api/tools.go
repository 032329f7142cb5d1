package api

import "context"

// Tool defines the structural interface for any capability the engine can
// dispatch. It carries metadata for prompt injection (name, description,
// parameter schema) and the invocation logic itself.
//
// Invocations must be side-effect isolated: a tool receives only its own
// argument map and returns text. Recoverable input problems (unsupported
// currency code, non-positive tenure) are reported as an error value, never
// a panic; the dispatcher converts either into diagnostic result text.
type Tool interface {
	Name() string
	Description() string
	Schema() ToolSchema
	Invoke(ctx context.Context, args map[string]any) (string, error)
}

// ToolSchema describes one tool to the decision gateway.
type ToolSchema struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  []Param `json:"parameters"`
}

// Param describes a single tool parameter.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// JSONSchema renders the parameter list as a JSON-Schema object map, the
// shape every provider SDK ultimately wants.
func (s ToolSchema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Parameters))
	required := make([]string, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
