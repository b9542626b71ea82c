// ABOUTME: HTTP middleware recording every exchange to the request log
// ABOUTME: Wraps the response writer to capture the final status code

package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/2389/tool-gateway/internal/requestlog"
)

// logRequests records method, path, status, and latency for each request.
func (g *Gateway) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(started)
		// The request context is already canceled for ended SSE
		// streams; record with a fresh one.
		g.reqLog.RecordHTTP(context.Background(), requestlog.HTTPRequest{
			ID:         uuid.NewString(),
			Method:     r.Method,
			Path:       r.URL.Path,
			RemoteAddr: r.RemoteAddr,
			Status:     ww.Status(),
			Duration:   duration,
			StartedAt:  started,
		})

		g.logger.Debug("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration,
		)
	})
}
