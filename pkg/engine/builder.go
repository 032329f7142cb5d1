package engine

import (
	"fmt"

	"axle/pkg/config"
	"axle/pkg/dispatch"
	"axle/pkg/llm"
	"axle/pkg/monitor"
	"axle/pkg/tools"
)

// Builder provides a fluent interface for constructing an Engine with all its
// dependencies. The decider is mandatory; everything else falls back to a
// sensible default.
type Builder struct {
	decider  llm.Decider
	registry *tools.Registry
	sysCfg   *config.SystemConfig
	stats    *monitor.RunStats
}

// NewBuilder creates a fresh Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDecider injects the decision gateway backing the engine.
func (b *Builder) WithDecider(d llm.Decider) *Builder {
	b.decider = d
	return b
}

// WithRegistry injects the tool registry the dispatcher resolves against.
func (b *Builder) WithRegistry(r *tools.Registry) *Builder {
	b.registry = r
	return b
}

// WithSystemConfig provides engine-level technical parameters: cycle cap,
// per-cycle deadline, tool toggle.
func (b *Builder) WithSystemConfig(cfg *config.SystemConfig) *Builder {
	b.sysCfg = cfg
	return b
}

// WithStats attaches a stats collector; the engine and dispatcher feed it.
func (b *Builder) WithStats(s *monitor.RunStats) *Builder {
	b.stats = s
	return b
}

// Build finalizes the configuration and returns an operational Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.decider == nil {
		return nil, fmt.Errorf("engine builder: decider is required")
	}

	registry := b.registry
	if registry == nil {
		registry = tools.NewRegistry()
	}

	sysCfg := b.sysCfg
	if sysCfg == nil {
		sysCfg = config.DefaultSystemConfig()
	}
	if sysCfg.MaxCycles <= 0 {
		return nil, fmt.Errorf("engine builder: max_cycles must be positive, got %d", sysCfg.MaxCycles)
	}

	dispatcher := dispatch.New(registry)
	if b.stats != nil {
		dispatcher.SetStats(b.stats)
	}

	eng := &Engine{
		decider:    b.decider,
		dispatcher: dispatcher,
		registry:   registry,
		stats:      b.stats,
	}
	eng.sysCfg.Store(sysCfg)
	return eng, nil
}
