package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"axle/pkg/api"
	"axle/pkg/monitor"
	"axle/pkg/tools"
)

// Dispatcher resolves and executes the tool requests emitted by a single
// decision. Requests batched together are treated as independent and run
// concurrently; a lone request takes the synchronous path. Either way the
// result order matches the request order, one result per request, and no
// request is ever silently dropped.
type Dispatcher struct {
	registry *tools.Registry
	stats    *monitor.RunStats
}

// New creates a dispatcher over the given registry.
func New(registry *tools.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// SetStats attaches an optional stats collector. Must be called before the
// dispatcher is shared.
func (d *Dispatcher) SetStats(stats *monitor.RunStats) {
	d.stats = stats
}

// Dispatch executes every request and returns one tool-result message per
// request, in request order regardless of completion order. Tool failures
// never abort sibling requests: unknown tools, error returns, and panics all
// become diagnostic result text.
func (d *Dispatcher) Dispatch(ctx context.Context, requests []api.ToolRequest) []api.Message {
	switch len(requests) {
	case 0:
		return nil
	case 1:
		return []api.Message{d.invokeOne(ctx, requests[0])}
	}

	// Each goroutine owns exactly one private slot; the WaitGroup is the
	// barrier that keeps the outer loop sequential.
	results := make([]api.Message, len(requests))
	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req api.ToolRequest) {
			defer wg.Done()
			results[i] = d.invokeOne(ctx, req)
		}(i, req)
	}
	wg.Wait()
	return results
}

// invokeOne runs a single request and converts every failure mode into a
// tool-result message the decider can see and react to.
func (d *Dispatcher) invokeOne(ctx context.Context, req api.ToolRequest) (result api.Message) {
	start := time.Now()
	failed := false

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Tool invocation panicked", "tool", req.Name, "request_id", req.ID, "error", r)
			failed = true
			result = api.NewToolResult(req.ID, req.Name, fmt.Sprintf("Error: tool %q panicked: %v", req.Name, r))
		}
		if d.stats != nil {
			d.stats.RecordToolCall(req.Name, time.Since(start), failed)
		}
	}()

	tool, err := d.registry.Lookup(req.Name)
	if err != nil {
		slog.WarnContext(ctx, "Unknown tool requested", "tool", req.Name, "request_id", req.ID)
		failed = true
		return api.NewToolResult(req.ID, req.Name, fmt.Sprintf("Error: unknown tool %q", req.Name))
	}

	slog.InfoContext(ctx, "Executing tool", "tool", req.Name, "request_id", req.ID, "args", req.Arguments)
	content, err := tool.Invoke(ctx, req.Arguments)
	if err != nil {
		slog.WarnContext(ctx, "Tool reported error", "tool", req.Name, "request_id", req.ID, "error", err)
		failed = true
		return api.NewToolResult(req.ID, req.Name, fmt.Sprintf("Error: %v", err))
	}

	slog.DebugContext(ctx, "Tool completed", "tool", req.Name, "request_id", req.ID, "duration", time.Since(start))
	return api.NewToolResult(req.ID, req.Name, content)
}
