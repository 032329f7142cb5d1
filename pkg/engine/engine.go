package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"axle/pkg/api"
	"axle/pkg/config"
	"axle/pkg/dispatch"
	"axle/pkg/llm"
	"axle/pkg/monitor"
	"axle/pkg/tools"

	"github.com/google/uuid"
)

// State 表示執行迴圈的階段
type State int

const (
	StateStart State = iota
	StateDeciding
	StateRouting
	StateDispatching
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateDeciding:
		return "deciding"
	case StateRouting:
		return "routing"
	case StateDispatching:
		return "dispatching"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Engine drives the decide/route/dispatch cycle over a conversation until the
// decider stops requesting tools or a bound (cycle cap, per-cycle deadline)
// trips. The loop itself is single-threaded; concurrency lives inside the
// dispatcher's batches only.
type Engine struct {
	decider    llm.Decider
	dispatcher *dispatch.Dispatcher
	registry   *tools.Registry
	sysCfg     atomic.Pointer[config.SystemConfig]
	stats      *monitor.RunStats
}

// UpdateSystemConfig atomically swaps in new engine parameters, e.g. after a
// config hot reload. In-flight runs keep the snapshot they started with; the
// next Continue picks up the new values.
func (e *Engine) UpdateSystemConfig(cfg *config.SystemConfig) {
	if cfg == nil {
		return
	}
	e.sysCfg.Store(cfg)
}

// Run seeds a fresh conversation and drives it to completion. The returned
// conversation always reflects everything appended before the error, if any.
func (e *Engine) Run(ctx context.Context, seed []api.Message) (*Conversation, error) {
	conv := NewConversation(seed...)
	err := e.Continue(ctx, conv)
	return conv, err
}

// Continue drives an existing conversation, typically one restored by the
// session manager, through decide/dispatch cycles until completion.
func (e *Engine) Continue(ctx context.Context, conv *Conversation) error {
	runID := uuid.NewString()[:8]
	ctx = context.WithValue(ctx, monitor.RunIDKey, runID)

	// One snapshot per run; a concurrent hot reload never mutates the
	// parameters of a run already in flight.
	cfg := e.sysCfg.Load()

	var schemas []api.ToolSchema
	if cfg.EnableTools {
		schemas = e.registry.Schemas()
	}

	state := StateStart
	slog.InfoContext(ctx, "Run started", "messages", conv.Len(), "tools", len(schemas))

	for cycle := 1; cycle <= cfg.MaxCycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := e.runCycle(ctx, cfg, conv, schemas, cycle, &state)
		if err != nil {
			return err
		}
		if state == StateDone {
			if e.stats != nil {
				e.stats.RecordRun()
			}
			slog.InfoContext(ctx, "Run finished", "cycles", cycle, "messages", conv.Len())
			return nil
		}
	}

	slog.WarnContext(ctx, "Run exceeded cycle limit", "max_cycles", cfg.MaxCycles)
	return fmt.Errorf("%w after %d cycles", ErrCycleLimitExceeded, cfg.MaxCycles)
}

// runCycle performs one decide/route/dispatch pass under the per-cycle
// deadline. It flips state to StateDone when the decision requests no tools.
func (e *Engine) runCycle(ctx context.Context, cfg *config.SystemConfig, conv *Conversation, schemas []api.ToolSchema, cycle int, state *State) error {
	cycleCtx := ctx
	cancel := context.CancelFunc(func() {})
	if cfg.CycleTimeoutMs > 0 {
		cycleCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.CycleTimeoutMs)*time.Millisecond)
	}
	defer cancel()

	*state = StateDeciding
	slog.DebugContext(cycleCtx, "Cycle started", "cycle", cycle, "state", state.String())

	decision, err := e.decider.Decide(cycleCtx, conv.Messages(), schemas)
	if err != nil {
		if errors.Is(cycleCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("%w: decide in cycle %d", ErrCycleDeadline, cycle)
		}
		// 未產出任何決策，不追加半成品訊息
		if !errors.Is(err, llm.ErrDecisionUnavailable) {
			err = fmt.Errorf("%w: %v", llm.ErrDecisionUnavailable, err)
		}
		return err
	}

	conv.Add(decision)
	if e.stats != nil {
		e.stats.RecordCycle()
	}

	*state = StateRouting
	next, err := Route(decision)
	if err != nil {
		return err
	}
	if next == NextDone {
		*state = StateDone
		return nil
	}

	*state = StateDispatching
	slog.InfoContext(cycleCtx, "Dispatching tool requests", "cycle", cycle, "requests", len(decision.Requests))

	results := e.dispatcher.Dispatch(cycleCtx, decision.Requests)
	conv.Add(results...)

	if errors.Is(cycleCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("%w: dispatch in cycle %d", ErrCycleDeadline, cycle)
	}
	return ctx.Err()
}
