// ABOUTME: Persistent request log capturing HTTP traffic and tool invocations
// ABOUTME: Defines the Log interface plus a no-op implementation for tests

package requestlog

import (
	"context"
	"time"
)

// HTTPRequest is one logged HTTP exchange.
type HTTPRequest struct {
	ID         string
	Method     string
	Path       string
	RemoteAddr string
	Status     int
	Duration   time.Duration
	StartedAt  time.Time
}

// ToolCall is one logged tool invocation.
type ToolCall struct {
	ID           string
	ConnectionID string
	Tool         string
	Arguments    string
	ResultText   string
	IsError      bool
	Duration     time.Duration
	StartedAt    time.Time
}

// Log records gateway activity. Implementations must be safe for
// concurrent use; recording is best-effort and must not block callers
// on failure.
type Log interface {
	RecordHTTP(ctx context.Context, rec HTTPRequest)
	RecordToolCall(ctx context.Context, rec ToolCall)
	Close() error
}

// Nop discards all records.
type Nop struct{}

func (Nop) RecordHTTP(context.Context, HTTPRequest) {}
func (Nop) RecordToolCall(context.Context, ToolCall) {}
func (Nop) Close() error                             { return nil }
