package tools

import "errors"

var (
	// ErrDuplicateTool signals a name collision at registration time.
	ErrDuplicateTool = errors.New("tool already registered")
	// ErrUnknownTool signals a lookup for a name nobody registered.
	ErrUnknownTool = errors.New("tool not registered")
)

// ToolError is a recoverable, tool-specific failure. The dispatcher converts
// it into diagnostic result text for the decider to react to instead of
// aborting the run.
type ToolError struct {
	Tool   string
	Reason string
}

func (e *ToolError) Error() string {
	return e.Tool + ": " + e.Reason
}

// NewToolError builds a ToolError for the given tool.
func NewToolError(tool, reason string) *ToolError {
	return &ToolError{Tool: tool, Reason: reason}
}
