package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"axle/pkg/api"
)

// vehicleSheet is a small built-in spec sheet. A real deployment would back
// this with a document store; the engine only cares that lookups are
// side-effect free.
var vehicleSheet = map[string]string{
	"corolla": "Toyota Corolla: 1.8L 4-cylinder, 139 hp, CVT, 32/41 mpg city/highway, 5 seats.",
	"camry":   "Toyota Camry: 2.5L 4-cylinder, 203 hp, 8-speed automatic, 28/39 mpg city/highway, 5 seats.",
	"rav4":    "Toyota RAV4: 2.5L 4-cylinder, 203 hp, 8-speed automatic, 27/35 mpg city/highway, AWD available.",
	"prius":   "Toyota Prius: 1.8L hybrid, 121 hp combined, eCVT, 58/53 mpg city/highway, 5 seats.",
}

// VehicleSpecsTool answers model-specification questions from the built-in
// sheet. Unknown models get the standard "no information" line rather than
// an error, so the assistant can relay it verbatim.
type VehicleSpecsTool struct{}

func (t *VehicleSpecsTool) Name() string { return "vehicle_specs" }

func (t *VehicleSpecsTool) Description() string {
	return "Look up technical specifications for a vehicle model. Answers only from the available specification sheet."
}

func (t *VehicleSpecsTool) Schema() api.ToolSchema {
	return api.ToolSchema{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: []api.Param{
			{Name: "model", Type: api.ParamTypeString, Description: "Vehicle model name, e.g. Corolla", Required: true},
		},
	}
}

func (t *VehicleSpecsTool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	model, err := stringArg(args, "model")
	if err != nil {
		return "", NewToolError(t.Name(), err.Error())
	}
	if model == "" {
		return "", NewToolError(t.Name(), "model must not be empty")
	}

	key := strings.ToLower(model)
	if spec, ok := vehicleSheet[key]; ok {
		return spec, nil
	}
	// Substring match so "Toyota Corolla 2024" still resolves.
	for name, spec := range vehicleSheet {
		if strings.Contains(key, name) {
			return spec, nil
		}
	}

	known := make([]string, 0, len(vehicleSheet))
	for name := range vehicleSheet {
		known = append(known, name)
	}
	sort.Strings(known)
	return fmt.Sprintf("I don't have that information in the available vehicle specifications. Known models: %s.",
		strings.Join(known, ", ")), nil
}
