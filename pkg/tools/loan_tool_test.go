package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
)

// parsePayment pulls the leading "Monthly payment X" figure out of the
// result text.
func parsePayment(t *testing.T, result string) float64 {
	t.Helper()
	var rest string
	if _, err := fmt.Sscanf(result, "Monthly payment %s", &rest); err != nil {
		t.Fatalf("unexpected result shape: %q", result)
	}
	v, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		t.Fatalf("payment not numeric in %q: %v", result, err)
	}
	return v
}

func TestLoanToolInvoke(t *testing.T) {
	tool := &LoanTool{}

	tests := []struct {
		name        string
		args        map[string]any
		wantPayment float64
		wantErr     string
	}{
		{
			name:        "standard emi",
			args:        map[string]any{"principal": 500000.0, "annual_rate": 8.5, "months": 60},
			wantPayment: 10258.27,
		},
		{
			name:        "zero rate divides evenly",
			args:        map[string]any{"principal": 12000.0, "annual_rate": 0.0, "months": 12},
			wantPayment: 1000.00,
		},
		{
			name:        "months as float coerced",
			args:        map[string]any{"principal": 12000.0, "annual_rate": 0.0, "months": 12.0},
			wantPayment: 1000.00,
		},
		{
			name:    "non-positive principal",
			args:    map[string]any{"principal": 0.0, "annual_rate": 8.5, "months": 60},
			wantErr: "principal must be positive",
		},
		{
			name:    "negative rate",
			args:    map[string]any{"principal": 1000.0, "annual_rate": -1.0, "months": 12},
			wantErr: "annual rate must be non-negative",
		},
		{
			name:    "non-positive tenure",
			args:    map[string]any{"principal": 1000.0, "annual_rate": 8.5, "months": 0},
			wantErr: "tenure must be a positive number of months",
		},
		{
			name:    "fractional tenure rejected",
			args:    map[string]any{"principal": 1000.0, "annual_rate": 8.5, "months": 59.9},
			wantErr: "not a whole number",
		},
		{
			name:    "missing principal",
			args:    map[string]any{"annual_rate": 8.5, "months": 60},
			wantErr: "principal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tool.Invoke(context.Background(), tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("invoke failed: %v", err)
			}
			payment := parsePayment(t, got)
			if math.Abs(payment-tt.wantPayment) > 0.01 {
				t.Fatalf("payment = %.2f, want %.2f (result %q)", payment, tt.wantPayment, got)
			}
		})
	}
}
