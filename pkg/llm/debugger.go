package llm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ExchangeDebugger dumps raw provider requests and responses for one decide
// call. It centralizes directory creation, file naming, and safe writing so
// the provider adapters stay clean.
type ExchangeDebugger struct {
	file    *os.File
	enabled bool
}

// NewExchangeDebugger creates a debugger instance for one provider call.
// When disabled it is a no-op shell.
func NewExchangeDebugger(provider string, enabled bool) *ExchangeDebugger {
	if !enabled {
		return &ExchangeDebugger{enabled: false}
	}

	debugDir := filepath.Join("debug", "exchanges", provider)
	if err := os.MkdirAll(debugDir, 0755); err != nil {
		slog.Error("Failed to create debug directory", "dir", debugDir, "error", err)
		return &ExchangeDebugger{enabled: false}
	}

	timestamp := time.Now().Format("20060102_150405.000")
	filename := filepath.Join(debugDir, fmt.Sprintf("%s.log", timestamp))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("Failed to open debug file", "file", filename, "error", err)
		return &ExchangeDebugger{enabled: false}
	}

	slog.Debug("Exchange debug ON", "provider", provider, "file", filename)
	return &ExchangeDebugger{file: f, enabled: true}
}

// WriteSection appends a labelled payload to the debug file if enabled.
func (d *ExchangeDebugger) WriteSection(label string, payload any) {
	if !d.enabled || d.file == nil {
		return
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf("<marshal error: %v>", err))
	}
	fmt.Fprintf(d.file, "--- %s ---\n%s\n", label, data)
}

// Close closes the debug file handle.
func (d *ExchangeDebugger) Close() {
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
}
