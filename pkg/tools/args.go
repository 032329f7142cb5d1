package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Argument maps arrive from JSON decoding, so numbers are float64 and some
// models quote them anyway. These helpers normalize both shapes.

func floatArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("argument %q is not a number: %q", key, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("argument %q has unsupported type %T", key, v)
	}
}

func intArg(args map[string]any, key string) (int, error) {
	f, err := floatArg(args, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("argument %q is not a whole number: %v", key, f)
	}
	return int(f), nil
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string", key)
	}
	return strings.TrimSpace(s), nil
}
