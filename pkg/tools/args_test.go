package tools

import (
	"strings"
	"testing"
)

func TestFloatArg(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    float64
		wantErr string
	}{
		{name: "float64", args: map[string]any{"v": 1.5}, want: 1.5},
		{name: "int", args: map[string]any{"v": 42}, want: 42},
		{name: "quoted number", args: map[string]any{"v": " 3.25 "}, want: 3.25},
		{name: "missing", args: map[string]any{}, wantErr: `missing required argument "v"`},
		{name: "not a number", args: map[string]any{"v": "abc"}, wantErr: "not a number"},
		{name: "unsupported type", args: map[string]any{"v": []any{1}}, wantErr: "unsupported type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := floatArg(tt.args, "v")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("floatArg failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntArg(t *testing.T) {
	got, err := intArg(map[string]any{"v": 60.0}, "v")
	if err != nil {
		t.Fatalf("intArg failed: %v", err)
	}
	if got != 60 {
		t.Fatalf("got %d, want 60", got)
	}

	// Fractional values are a validation error, not a silent truncation.
	if _, err := intArg(map[string]any{"v": 59.9}, "v"); err == nil || !strings.Contains(err.Error(), "not a whole number") {
		t.Fatalf("expected whole-number error, got %v", err)
	}
}

func TestStringArg(t *testing.T) {
	got, err := stringArg(map[string]any{"v": "  USD "}, "v")
	if err != nil {
		t.Fatalf("stringArg failed: %v", err)
	}
	if got != "USD" {
		t.Fatalf("got %q", got)
	}

	if _, err := stringArg(map[string]any{"v": 7}, "v"); err == nil {
		t.Fatal("expected error for non-string")
	}
}
