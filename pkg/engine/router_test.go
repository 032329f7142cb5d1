package engine

import (
	"errors"
	"testing"

	"axle/pkg/api"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name    string
		msg     api.Message
		want    Next
		wantErr error
	}{
		{
			name: "decision with requests dispatches",
			msg:  api.NewDecision("", api.ToolRequest{ID: "r1", Name: "echo"}),
			want: NextDispatch,
		},
		{
			name: "decision without requests terminates",
			msg:  api.NewDecision("final answer"),
			want: NextDone,
		},
		{
			name: "empty content with requests still dispatches",
			msg:  api.NewDecision("", api.ToolRequest{ID: "r1", Name: "a"}, api.ToolRequest{ID: "r2", Name: "b"}),
			want: NextDispatch,
		},
		{
			name:    "user message is a contract violation",
			msg:     api.NewUserMessage("hi"),
			wantErr: ErrBadDecision,
		},
		{
			name:    "tool result is a contract violation",
			msg:     api.NewToolResult("r1", "echo", "ok"),
			wantErr: ErrBadDecision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Route(tt.msg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("route failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("next = %s, want %s", got, tt.want)
			}
		})
	}
}
