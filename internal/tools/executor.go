// ABOUTME: Tool executor validating arguments against schemas and invoking handlers
// ABOUTME: Handler panics become tool failures; every call is recorded to the request log

package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/2389/tool-gateway/internal/requestlog"
)

// Executor runs tools from a Registry. Argument defaults are applied and
// the arguments validated against the tool's schema before the handler
// runs.
type Executor struct {
	registry *Registry
	log      requestlog.Log
	logger   *slog.Logger
}

// NewExecutor wires a registry to a request log. A nil log disables
// recording.
func NewExecutor(registry *Registry, log requestlog.Log, logger *slog.Logger) *Executor {
	if log == nil {
		log = requestlog.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		registry: registry,
		log:      log,
		logger:   logger.With("component", "executor"),
	}
}

// Registry returns the underlying tool registry.
func (e *Executor) Registry() *Registry {
	return e.registry
}

// Call executes the named tool. Unknown tools, malformed arguments, and
// schema violations all come back as tool failures, never as errors.
func (e *Executor) Call(ctx context.Context, connectionID, name string, rawArgs json.RawMessage) Result {
	started := time.Now()

	desc, ok := e.registry.Resolve(name)
	if !ok {
		result := failuref("Unknown tool: %s", name)
		e.record(ctx, connectionID, name, rawArgs, result, started)
		return result
	}

	args := map[string]any{}
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			result := failuref("Invalid arguments: %v", err)
			e.record(ctx, connectionID, name, rawArgs, result, started)
			return result
		}
	}

	if err := desc.resolved.ApplyDefaults(&args); err != nil {
		result := failuref("Invalid arguments: %v", err)
		e.record(ctx, connectionID, name, rawArgs, result, started)
		return result
	}
	if err := desc.resolved.Validate(&args); err != nil {
		result := failuref("Invalid arguments: %v", err)
		e.record(ctx, connectionID, name, rawArgs, result, started)
		return result
	}

	result := e.invoke(ctx, desc, args)
	e.record(ctx, connectionID, name, rawArgs, result, started)

	e.logger.Debug("tool call completed",
		"tool", name,
		"connection_id", connectionID,
		"is_error", result.IsError,
		"duration", time.Since(started))
	return result
}

// invoke runs the handler, converting a panic into a tool failure.
func (e *Executor) invoke(ctx context.Context, desc *Descriptor, args map[string]any) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool handler panicked", "tool", desc.Name, "panic", r)
			result = failuref("Tool execution failed: internal error")
		}
	}()
	return desc.handler(ctx, args)
}

func (e *Executor) record(ctx context.Context, connectionID, name string, rawArgs json.RawMessage, result Result, started time.Time) {
	argText := "{}"
	if len(rawArgs) > 0 {
		argText = string(rawArgs)
	}
	e.log.RecordToolCall(ctx, requestlog.ToolCall{
		ID:           uuid.NewString(),
		ConnectionID: connectionID,
		Tool:         name,
		Arguments:    argText,
		ResultText:   result.Text,
		IsError:      result.IsError,
		Duration:     time.Since(started),
		StartedAt:    started,
	})
}
