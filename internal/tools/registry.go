// ABOUTME: Tool registry mapping tool names to schemas and handlers
// ABOUTME: Built once at startup; listing preserves registration order

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
)

// Handler executes a tool against already-validated arguments. Handlers
// report tool-level failures through the Result, never by panicking or by
// letting errors escape.
type Handler func(ctx context.Context, args map[string]any) Result

// Descriptor describes one registered tool. Immutable after registration.
type Descriptor struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema

	resolved *jsonschema.Resolved
	handler  Handler
}

// Result is the outcome of one tool invocation, serializable as a single
// text content block. IsError marks tool-level failures; these are still
// delivered inside a successful JSON-RPC result.
type Result struct {
	Text    string
	IsError bool
}

// jsonResult pretty-prints a payload as the tool's text block.
func jsonResult(payload any) Result {
	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return failuref("encoding result: %v", err)
	}
	return Result{Text: string(text)}
}

// failuref builds a tool-level failure payload.
func failuref(format string, args ...any) Result {
	msg := fmt.Sprintf(format, args...)
	text, _ := json.MarshalIndent(map[string]string{"error": msg}, "", "  ")
	return Result{Text: string(text), IsError: true}
}

// failurePayload builds a failure from an explicit payload that carries an
// "error" key plus extra context fields.
func failurePayload(payload map[string]any) Result {
	text, _ := json.MarshalIndent(payload, "", "  ")
	return Result{Text: string(text), IsError: true}
}

// Config holds the tool limits taken from gateway configuration.
type Config struct {
	CommandTimeout   time.Duration
	MaxRandomNumbers int
}

// Registry holds the fixed tool table. No mutation after New.
type Registry struct {
	order []string
	byName map[string]*Descriptor
}

// New builds the registry with the gateway's tool set in its canonical
// order. Schemas are resolved once here so the executor can validate
// arguments without re-resolving per call.
func New(cfg Config) (*Registry, error) {
	ts := &toolset{cfg: cfg}

	descriptors := []*Descriptor{
		{
			Name:        "get_current_time",
			Description: "Get the current time in UTC and local timezone",
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{},
			},
			handler: ts.currentTime,
		},
		{
			Name:        "get_current_date",
			Description: "Get the current date in various formats",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"format": {
						Type:        "string",
						Description: "Date format: 'iso', 'us', 'european', or 'unix'",
						Enum:        []any{"iso", "us", "european", "unix"},
						Default:     json.RawMessage(`"iso"`),
					},
				},
			},
			handler: ts.currentDate,
		},
		{
			Name:        "calculate",
			Description: "Perform basic mathematical calculations",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"expression": {
						Type:        "string",
						Description: "Mathematical expression to evaluate (e.g., '2 + 2', 'sqrt(16)', 'sin(pi/2)')",
					},
				},
				Required: []string{"expression"},
			},
			handler: ts.calculate,
		},
		{
			Name:        "get_timezone_info",
			Description: "Get information about a timezone",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"timezone": {
						Type:        "string",
						Description: "Timezone name (e.g., 'UTC', 'America/New_York', 'Europe/London')",
						Default:     json.RawMessage(`"UTC"`),
					},
				},
			},
			handler: ts.timezoneInfo,
		},
		{
			Name:        "format_number",
			Description: "Format a number with various options",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"number": {
						Type:        "number",
						Description: "Number to format",
					},
					"decimals": {
						Type:        "integer",
						Description: "Number of decimal places",
						Default:     json.RawMessage(`2`),
					},
					"scientific": {
						Type:        "boolean",
						Description: "Use scientific notation",
						Default:     json.RawMessage(`false`),
					},
				},
				Required: []string{"number"},
			},
			handler: ts.formatNumber,
		},
		{
			Name:        "generate_random_number",
			Description: "Generate a random number within a specified range",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"min_value": {
						Type:        "number",
						Description: "Minimum value (inclusive)",
						Default:     json.RawMessage(`1`),
					},
					"max_value": {
						Type:        "number",
						Description: "Maximum value (inclusive)",
						Default:     json.RawMessage(`100`),
					},
					"count": {
						Type:        "integer",
						Description: "Number of random numbers to generate",
						Default:     json.RawMessage(`1`),
						Minimum:     jsonschema.Ptr(1.0),
						Maximum:     jsonschema.Ptr(float64(cfg.MaxRandomNumbers)),
					},
				},
			},
			handler: ts.randomNumber,
		},
		{
			Name:        "execute_command",
			Description: "Execute a shell command and return the output. WARNING: Use with caution as this can execute arbitrary commands.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"command": {
						Type:        "string",
						Description: "Shell command to execute (e.g., 'ls -la', 'echo hello', 'go version')",
					},
					"working_directory": {
						Type:        "string",
						Description: "Working directory for the command (optional, defaults to current directory)",
					},
					"timeout": {
						Type:        "integer",
						Description: "Timeout in seconds (optional, defaults to the configured command timeout)",
					},
				},
				Required: []string{"command"},
			},
			handler: ts.executeCommand,
		},
	}

	reg := &Registry{
		byName: make(map[string]*Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		resolved, err := d.InputSchema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolving schema for %s: %w", d.Name, err)
		}
		d.resolved = resolved
		reg.order = append(reg.order, d.Name)
		reg.byName[d.Name] = d
	}

	return reg, nil
}

// List returns all descriptors in registration order. The order is the
// canonical tools/list order and is stable across calls.
func (r *Registry) List() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Resolve looks up a tool by name.
func (r *Registry) Resolve(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}
