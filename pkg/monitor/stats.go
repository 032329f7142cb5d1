package monitor

import (
	"sync"
	"time"
)

// ToolStats aggregates the invocations of one tool.
type ToolStats struct {
	Calls    int
	Failures int
	Total    time.Duration
}

// RunStats collects engine activity counters: decide/dispatch cycles and
// per-tool invocation latencies. Safe for concurrent use; the dispatcher
// records from the batch goroutines.
type RunStats struct {
	mu      sync.Mutex
	runs    int
	cycles  int
	byTool  map[string]ToolStats
	started time.Time
}

// NewRunStats creates an empty collector.
func NewRunStats() *RunStats {
	return &RunStats{
		byTool:  make(map[string]ToolStats),
		started: time.Now(),
	}
}

// RecordRun counts one completed engine run.
func (s *RunStats) RecordRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
}

// RecordCycle counts one decide/dispatch cycle.
func (s *RunStats) RecordCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles++
}

// RecordToolCall records one tool invocation.
func (s *RunStats) RecordToolCall(name string, d time.Duration, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.byTool[name]
	st.Calls++
	st.Total += d
	if failed {
		st.Failures++
	}
	s.byTool[name] = st
}

// Snapshot returns a copy of the current counters.
func (s *RunStats) Snapshot() (runs, cycles int, byTool map[string]ToolStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]ToolStats, len(s.byTool))
	for k, v := range s.byTool {
		out[k] = v
	}
	return s.runs, s.cycles, out
}

// Uptime reports how long the collector has been alive.
func (s *RunStats) Uptime() time.Duration {
	return time.Since(s.started)
}
