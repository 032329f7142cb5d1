package tools

import (
	"context"
	"fmt"
	"strings"

	"axle/pkg/api"
)

// conversionRates holds the fixed demo exchange rates, keyed "FROM:TO".
var conversionRates = map[string]float64{
	"USD:EUR": 0.92,
	"EUR:USD": 1.09,
	"INR:USD": 0.012,
	"USD:INR": 83.20,
	"INR:EUR": 0.011,
	"EUR:INR": 90.50,
	"USD:JPY": 147.30,
	"JPY:USD": 0.0068,
}

// CurrencyTool converts an amount between two currency codes using the
// fixed rate table. Pure and deterministic: identical arguments always
// produce identical result text.
type CurrencyTool struct{}

func (t *CurrencyTool) Name() string { return "currency_convert" }

func (t *CurrencyTool) Description() string {
	return "Convert a monetary amount from one currency to another using fixed exchange rates. Supported codes: USD, EUR, INR, JPY."
}

func (t *CurrencyTool) Schema() api.ToolSchema {
	return api.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: []api.Param{
			{Name: "amount", Type: api.ParamTypeNumber, Description: "Amount in the source currency", Required: true},
			{Name: "from_currency", Type: api.ParamTypeString, Description: "ISO 4217 source currency code, e.g. USD", Required: true},
			{Name: "to_currency", Type: api.ParamTypeString, Description: "ISO 4217 target currency code, e.g. EUR", Required: true},
		},
	}
}

func (t *CurrencyTool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	amount, err := floatArg(args, "amount")
	if err != nil {
		return "", NewToolError(t.Name(), err.Error())
	}
	from, err := stringArg(args, "from_currency")
	if err != nil {
		return "", NewToolError(t.Name(), err.Error())
	}
	to, err := stringArg(args, "to_currency")
	if err != nil {
		return "", NewToolError(t.Name(), err.Error())
	}

	if amount < 0 {
		return "", NewToolError(t.Name(), fmt.Sprintf("amount must be non-negative, got %.2f", amount))
	}

	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return fmt.Sprintf("%.2f %s = %.2f %s (rate 1.0000)", amount, from, amount, to), nil
	}

	rate, ok := conversionRates[from+":"+to]
	if !ok {
		return "", NewToolError(t.Name(), fmt.Sprintf("unsupported currency pair %s->%s", from, to))
	}

	converted := amount * rate
	return fmt.Sprintf("%.2f %s (converted from %.2f %s at rate %.4f)", converted, to, amount, from, rate), nil
}
