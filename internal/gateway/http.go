// ABOUTME: Plain HTTP handlers: liveness, health, tool catalogue, legacy direct calls
// ABOUTME: OAuth discovery deliberately 404s to advertise no OAuth support

package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

func (g *Gateway) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, g.logger, http.StatusOK, map[string]any{
		"status":  "ok",
		"server":  serverName,
		"message": "MCP Server is running",
	})
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, g.logger, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (g *Gateway) handleToolCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, g.logger, http.StatusOK, map[string]any{"tools": g.toolInfos()})
}

// handleDirectCall is the legacy synchronous call endpoint. It bypasses
// JSON-RPC entirely and never touches the session registry.
func (g *Gateway) handleDirectCall(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tool      string          `json:"tool"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, g.logger, http.StatusInternalServerError, map[string]any{
			"detail": err.Error(),
		})
		return
	}

	result := g.executor.Call(r.Context(), connectionID(r), body.Tool, body.Arguments)
	writeJSON(w, g.logger, http.StatusOK, map[string]any{"result": result.Text})
}

func (g *Gateway) handleOAuthDiscovery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, g.logger, http.StatusNotFound, map[string]any{
		"detail": "OAuth not supported",
	})
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}
