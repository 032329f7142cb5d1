package llm

import (
	"context"
	"fmt"
	"testing"

	"axle/pkg/api"
	"axle/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

type testFactory struct {
	fail bool
}

func (f *testFactory) Create(group ProviderGroupConfig, sys *config.SystemConfig) ([]Decider, error) {
	if f.fail {
		return nil, fmt.Errorf("factory refused")
	}
	deciders := make([]Decider, 0, len(group.Models))
	for _, m := range group.Models {
		deciders = append(deciders, &namedDecider{name: m})
	}
	return deciders, nil
}

type namedDecider struct {
	name string
}

func (n *namedDecider) Decide(ctx context.Context, messages []api.Message, schemas []api.ToolSchema) (api.Message, error) {
	return api.NewDecision(n.name), nil
}

func (n *namedDecider) IsTransientError(err error) bool { return false }

func TestNewFromConfig(t *testing.T) {
	RegisterProvider("test", &testFactory{})
	RegisterProvider("broken", &testFactory{fail: true})
	sys := config.DefaultSystemConfig()

	tests := []struct {
		name         string
		raw          string
		wantFallback bool
		wantErr      bool
	}{
		{
			name: "single model returns decider directly",
			raw:  `[{"type": "test", "models": ["m1"]}]`,
		},
		{
			name:         "multiple models wrap in fallback",
			raw:          `[{"type": "test", "models": ["m1", "m2"]}]`,
			wantFallback: true,
		},
		{
			name: "unknown provider type skipped",
			raw:  `[{"type": "nope", "models": ["x"]}, {"type": "test", "models": ["m1"]}]`,
		},
		{
			name: "failing factory skipped",
			raw:  `[{"type": "broken", "models": ["x"]}, {"type": "test", "models": ["m1"]}]`,
		},
		{
			name:    "nothing initializes",
			raw:     `[{"type": "nope", "models": ["x"]}]`,
			wantErr: true,
		},
		{
			name:    "malformed config",
			raw:     `{"not": "an array"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewFromConfig(jsoniter.RawMessage(tt.raw), sys)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			_, isFallback := d.(*FallbackDecider)
			if isFallback != tt.wantFallback {
				t.Fatalf("fallback = %v, want %v (%T)", isFallback, tt.wantFallback, d)
			}
		})
	}
}

func TestNewFromConfigNilRaw(t *testing.T) {
	if _, err := NewFromConfig(nil, config.DefaultSystemConfig()); err == nil {
		t.Fatal("expected error for nil llm config")
	}
}
