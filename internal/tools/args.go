// ABOUTME: Typed accessors for validated tool argument maps
// ABOUTME: JSON numbers arrive as float64; these helpers normalize extraction

package tools

import "math"

// stringArg returns a string argument or the fallback when absent.
func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return fallback
}

// numberArg returns a numeric argument or the fallback when absent.
// The second return reports whether the value was present and numeric.
func numberArg(args map[string]any, key string, fallback float64) (float64, bool) {
	v, ok := args[key]
	if !ok {
		return fallback, true
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// intArg returns an integer argument or the fallback when absent.
// A numeric value with a fractional part is rejected.
func intArg(args map[string]any, key string, fallback int) (int, bool) {
	v, ok := args[key]
	if !ok {
		return fallback, true
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// boolArg returns a boolean argument or the fallback when absent.
func boolArg(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}
