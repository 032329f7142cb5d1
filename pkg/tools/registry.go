package tools

import (
	"fmt"
	"sort"
	"sync"

	"axle/pkg/api"
)

// Registry acts as the central inventory for all tools available to the
// engine. Registration happens once at configuration time; afterwards the
// registry is read-only and safe for unsynchronized concurrent lookups. The
// RWMutex stays for the write-once window during startup.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]api.Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]api.Tool),
	}
}

// Register adds a tool to the registry. A second tool under the same name is
// a configuration error and is rejected with ErrDuplicateTool.
func (r *Registry) Register(tools ...api.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tools {
		name := t.Name()
		if name == "" {
			return fmt.Errorf("tool name is empty")
		}
		if _, exists := r.tools[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateTool, name)
		}
		r.tools[name] = t
	}
	return nil
}

// Lookup retrieves a tool by name.
func (r *Registry) Lookup(name string) (api.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return t, nil
}

// Schemas returns every registered tool's schema, sorted by name so the
// decider always sees a stable presentation.
func (r *Registry) Schemas() []api.ToolSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schemas := make([]api.ToolSchema, 0, len(r.tools))
	for _, t := range r.tools {
		schemas = append(schemas, t.Schema())
	}
	sort.Slice(schemas, func(i, j int) bool { return schemas[i].Name < schemas[j].Name })
	return schemas
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
