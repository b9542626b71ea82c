// ABOUTME: SSE stream emitter draining per-connection session queues
// ABOUTME: Idle waits produce ping keepalives; stream exit removes the session

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2389/tool-gateway/internal/session"
)

// handleSSE opens the long-lived event stream for a connection. The
// session is created here (never by POST handlers) and removed exactly
// once when the stream terminates, so no orphaned queue survives.
func (g *Gateway) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	connID := connectionID(r)
	queue := g.sessions.GetOrCreate(connID)
	defer g.sessions.Remove(connID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	g.logger.Info("SSE stream opened", "connection_id", connID)
	defer g.logger.Info("SSE stream closed", "connection_id", connID)

	// The queue wait must observe server shutdown as well as client
	// disconnect, or Shutdown stalls on the open stream.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-g.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		msg, outcome := queue.Pop(ctx, g.sseWait)
		switch outcome {
		case session.Delivered:
			if err := writeFrame(w, flusher, msg); err != nil {
				g.emitStreamError(w, flusher, err)
				return
			}
		case session.TimedOut:
			if err := writeFrame(w, flusher, pingFrame()); err != nil {
				return
			}
		case session.Cancelled:
			return
		}
	}
}

// writeFrame emits one SSE data frame and flushes it.
func writeFrame(w http.ResponseWriter, flusher http.Flusher, payload []byte) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// pingFrame is the keepalive notification emitted on queue wait timeout.
func pingFrame() []byte {
	return []byte(`{"jsonrpc":"2.0","method":"ping","params":{}}`)
}

// emitStreamError makes a best-effort attempt to deliver one final error
// notification before the stream terminates.
func (g *Gateway) emitStreamError(w http.ResponseWriter, flusher http.Flusher, cause error) {
	g.logger.Warn("SSE stream fault", "error", cause)

	frame, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  "error",
		"params": map[string]any{
			"code":    -32603,
			"message": fmt.Sprintf("Internal error: %v", cause),
		},
	})
	if err != nil {
		return
	}
	_ = writeFrame(w, flusher, frame)
}
