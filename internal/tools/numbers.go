// ABOUTME: Number formatting and random number generation tool handlers
// ABOUTME: Random draws are uniform floats and not cryptographically secure

package tools

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
)

func (ts *toolset) formatNumber(_ context.Context, args map[string]any) Result {
	number, ok := numberArg(args, "number", 0)
	if !ok {
		return failuref("number must be a number")
	}

	decimals, ok := intArg(args, "decimals", 2)
	if !ok || decimals < 0 || decimals > 20 {
		return failuref("decimals must be an integer between 0 and 20")
	}

	scientific := boolArg(args, "scientific", false)

	var formatted string
	if scientific {
		formatted = fmt.Sprintf("%.*e", decimals, number)
	} else {
		formatted = fmt.Sprintf("%.*f", decimals, number)
	}

	return jsonResult(map[string]any{
		"original":            number,
		"formatted":           formatted,
		"decimals":            decimals,
		"scientific_notation": scientific,
	})
}

func (ts *toolset) randomNumber(_ context.Context, args map[string]any) Result {
	minValue, ok := numberArg(args, "min_value", 1)
	if !ok {
		return failuref("min_value must be a number")
	}
	maxValue, ok := numberArg(args, "max_value", 100)
	if !ok {
		return failuref("max_value must be a number")
	}
	if minValue >= maxValue {
		return failuref("min_value must be less than max_value")
	}

	count, ok := intArg(args, "count", 1)
	if !ok || count < 1 || count > ts.cfg.MaxRandomNumbers {
		return failuref("count must be an integer between 1 and %d", ts.cfg.MaxRandomNumbers)
	}

	uniform := func() float64 {
		return minValue + rand.Float64()*(maxValue-minValue)
	}

	if count == 1 {
		return jsonResult(map[string]any{
			"random_number": uniform(),
			"min_value":     minValue,
			"max_value":     maxValue,
			"type":          "single",
		})
	}

	numbers := make([]float64, count)
	for i := range numbers {
		numbers[i] = uniform()
	}
	return jsonResult(map[string]any{
		"random_numbers": numbers,
		"count":          count,
		"min_value":      minValue,
		"max_value":      maxValue,
		"type":           "multiple",
	})
}

func (ts *toolset) calculate(_ context.Context, args map[string]any) Result {
	expression := strings.TrimSpace(stringArg(args, "expression", ""))
	if expression == "" {
		return failuref("Expression is required")
	}

	value, err := Evaluate(expression)
	if err != nil {
		return failuref("Calculation error: %v", err)
	}

	result, typeName := numericValue(value)
	return jsonResult(map[string]any{
		"expression": expression,
		"result":     result,
		"type":       typeName,
	})
}
