package dispatch

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"axle/pkg/api"
	"axle/pkg/monitor"
	"axle/pkg/tools"
)

// fakeTool runs a canned behavior: sleep, fail, panic, or echo.
type fakeTool struct {
	name  string
	delay time.Duration
	fail  error
	panic bool
	reply string
}

func (f *fakeTool) Name() string        { return f.name }
func (f *fakeTool) Description() string { return "fake" }
func (f *fakeTool) Schema() api.ToolSchema {
	return api.ToolSchema{Name: f.name, Description: "fake"}
}

func (f *fakeTool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.panic {
		panic("boom")
	}
	if f.fail != nil {
		return "", f.fail
	}
	if f.reply != "" {
		return f.reply, nil
	}
	return fmt.Sprintf("%s ok", f.name), nil
}

func newDispatcher(t *testing.T, fakes ...*fakeTool) *Dispatcher {
	t.Helper()
	registry := tools.NewRegistry()
	for _, f := range fakes {
		if err := registry.Register(f); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}
	return New(registry)
}

func requests(names ...string) []api.ToolRequest {
	reqs := make([]api.ToolRequest, len(names))
	for i, n := range names {
		reqs[i] = api.ToolRequest{ID: fmt.Sprintf("req-%d", i), Name: n}
	}
	return reqs
}

func TestDispatchEmpty(t *testing.T) {
	d := newDispatcher(t)
	if got := d.Dispatch(context.Background(), nil); got != nil {
		t.Fatalf("expected nil for empty batch, got %v", got)
	}
}

func TestDispatchSingle(t *testing.T) {
	d := newDispatcher(t, &fakeTool{name: "echo", reply: "hello"})

	results := d.Dispatch(context.Background(), requests("echo"))
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	r := results[0]
	if r.Role != api.RoleTool || r.RequestID != "req-0" || r.Content != "hello" {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestDispatchOrderMatchesRequests(t *testing.T) {
	// The slowest tool comes first: completion order is the reverse of
	// request order, result order must not be.
	d := newDispatcher(t,
		&fakeTool{name: "slow", delay: 60 * time.Millisecond, reply: "slow done"},
		&fakeTool{name: "mid", delay: 30 * time.Millisecond, reply: "mid done"},
		&fakeTool{name: "fast", reply: "fast done"},
	)

	results := d.Dispatch(context.Background(), requests("slow", "mid", "fast"))
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for i, want := range []string{"slow done", "mid done", "fast done"} {
		if results[i].Content != want {
			t.Fatalf("results[%d] = %q, want %q", i, results[i].Content, want)
		}
		if results[i].RequestID != fmt.Sprintf("req-%d", i) {
			t.Fatalf("results[%d] correlates to %q", i, results[i].RequestID)
		}
	}
}

func TestDispatchRunsConcurrently(t *testing.T) {
	const delay = 80 * time.Millisecond
	d := newDispatcher(t,
		&fakeTool{name: "a", delay: delay},
		&fakeTool{name: "b", delay: delay},
		&fakeTool{name: "c", delay: delay},
	)

	start := time.Now()
	results := d.Dispatch(context.Background(), requests("a", "b", "c"))
	elapsed := time.Since(start)

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	// Concurrent execution takes about one delay, not three.
	if elapsed >= 2*delay {
		t.Fatalf("batch took %v, expected roughly %v", elapsed, delay)
	}
}

func TestDispatchFailureIsolation(t *testing.T) {
	d := newDispatcher(t,
		&fakeTool{name: "good", reply: "fine"},
		&fakeTool{name: "bad", fail: tools.NewToolError("bad", "unsupported input")},
		&fakeTool{name: "bomb", panic: true},
	)

	reqs := requests("good", "bad", "bomb", "ghost")
	results := d.Dispatch(context.Background(), reqs)
	if len(results) != len(reqs) {
		t.Fatalf("results = %d, want %d", len(results), len(reqs))
	}

	if results[0].Content != "fine" {
		t.Fatalf("healthy sibling affected: %+v", results[0])
	}
	if !strings.HasPrefix(results[1].Content, "Error:") || !strings.Contains(results[1].Content, "unsupported input") {
		t.Fatalf("tool error not surfaced: %q", results[1].Content)
	}
	if !strings.Contains(results[2].Content, "panicked") {
		t.Fatalf("panic not converted to diagnostic text: %q", results[2].Content)
	}
	if !strings.Contains(results[3].Content, `unknown tool "ghost"`) {
		t.Fatalf("unknown tool not surfaced: %q", results[3].Content)
	}

	for i, r := range results {
		if r.Role != api.RoleTool {
			t.Fatalf("results[%d] role = %q", i, r.Role)
		}
		if r.RequestID != reqs[i].ID {
			t.Fatalf("results[%d] correlates to %q, want %q", i, r.RequestID, reqs[i].ID)
		}
	}
}

func TestDispatchRecordsStats(t *testing.T) {
	d := newDispatcher(t,
		&fakeTool{name: "good"},
		&fakeTool{name: "bad", fail: tools.NewToolError("bad", "nope")},
	)
	stats := monitor.NewRunStats()
	d.SetStats(stats)

	d.Dispatch(context.Background(), requests("good", "bad"))
	d.Dispatch(context.Background(), requests("good"))

	_, _, byTool := stats.Snapshot()
	if byTool["good"].Calls != 2 || byTool["good"].Failures != 0 {
		t.Fatalf("good stats = %+v", byTool["good"])
	}
	if byTool["bad"].Calls != 1 || byTool["bad"].Failures != 1 {
		t.Fatalf("bad stats = %+v", byTool["bad"])
	}
}
