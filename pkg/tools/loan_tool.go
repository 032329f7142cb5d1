package tools

import (
	"context"
	"fmt"
	"math"

	"axle/pkg/api"
)

// LoanTool computes the fixed monthly payment (EMI) for a loan:
// P*r*(1+r)^n / ((1+r)^n - 1), with r the monthly rate and n the tenure in
// months. Pure and deterministic.
type LoanTool struct{}

func (t *LoanTool) Name() string { return "loan_payment" }

func (t *LoanTool) Description() string {
	return "Compute the fixed monthly payment for a loan given principal, annual interest rate in percent, and tenure in months."
}

func (t *LoanTool) Schema() api.ToolSchema {
	return api.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: []api.Param{
			{Name: "principal", Type: api.ParamTypeNumber, Description: "Loan principal amount", Required: true},
			{Name: "annual_rate", Type: api.ParamTypeNumber, Description: "Annual interest rate in percent, e.g. 8.5", Required: true},
			{Name: "months", Type: api.ParamTypeInteger, Description: "Loan tenure in months", Required: true},
		},
	}
}

func (t *LoanTool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	principal, err := floatArg(args, "principal")
	if err != nil {
		return "", NewToolError(t.Name(), err.Error())
	}
	annualRate, err := floatArg(args, "annual_rate")
	if err != nil {
		return "", NewToolError(t.Name(), err.Error())
	}
	months, err := intArg(args, "months")
	if err != nil {
		return "", NewToolError(t.Name(), err.Error())
	}

	if principal <= 0 {
		return "", NewToolError(t.Name(), fmt.Sprintf("principal must be positive, got %.2f", principal))
	}
	if annualRate < 0 {
		return "", NewToolError(t.Name(), fmt.Sprintf("annual rate must be non-negative, got %.2f", annualRate))
	}
	if months <= 0 {
		return "", NewToolError(t.Name(), fmt.Sprintf("tenure must be a positive number of months, got %d", months))
	}

	var payment float64
	if annualRate == 0 {
		payment = principal / float64(months)
	} else {
		r := annualRate / 12 / 100
		growth := math.Pow(1+r, float64(months))
		payment = principal * r * growth / (growth - 1)
	}

	total := payment * float64(months)
	return fmt.Sprintf("Monthly payment %.2f on principal %.2f at %.2f%% annual interest over %d months (total repayment %.2f)",
		payment, principal, annualRate, months, total), nil
}
