// ABOUTME: JSON-RPC method dispatch for the gateway's tool protocol
// ABOUTME: Requests get exactly one response; notifications are acknowledged silently

package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/2389/tool-gateway/internal/rpc"
	"github.com/2389/tool-gateway/internal/session"
)

const protocolVersion = "2024-11-05"

type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callToolResult struct {
	Content []toolContent `json:"content"`
	IsError bool          `json:"isError"`
}

type toolInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// connectionID extracts the client's connection id, defaulting when the
// header is absent.
func connectionID(r *http.Request) string {
	if id := r.Header.Get("X-Connection-ID"); id != "" {
		return id
	}
	return session.DefaultConnectionID
}

// handleRPCPost processes one JSON-RPC envelope submitted via POST /sse
// or POST /message. The response always returns synchronously; it is
// additionally mirrored onto the connection's SSE queue when a session
// for that id exists.
func (g *Gateway) handleRPCPost(w http.ResponseWriter, r *http.Request) {
	connID := connectionID(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		g.writeRPC(w, rpc.NewError(nil, rpc.CodeParseError, "Parse error"))
		return
	}

	env, rpcErr := rpc.Parse(body)
	if rpcErr != nil {
		id := json.RawMessage("null")
		if rpcErr.Code != rpc.CodeParseError {
			id = rpc.ExtractID(body)
		}
		resp := &rpc.Response{JSONRPC: "2.0", ID: id, Error: rpcErr}
		// Envelope-level errors (but not parse failures) are mirrored
		// onto the session like any other response.
		if rpcErr.Code != rpc.CodeParseError {
			g.mirrorToSession(connID, resp)
		}
		g.writeRPC(w, resp)
		return
	}

	if env.IsNotification() {
		g.logger.Debug("acknowledged notification", "method", env.Method, "connection_id", connID)
		writeJSON(w, g.logger, http.StatusOK, map[string]any{})
		return
	}

	resp := g.dispatch(r.Context(), connID, env)
	g.mirrorToSession(connID, resp)
	g.writeRPC(w, resp)
}

// dispatch routes a classified request to its method handler.
func (g *Gateway) dispatch(ctx context.Context, connID string, env *rpc.Envelope) *rpc.Response {
	g.logger.Debug("dispatching request", "method", env.Method, "connection_id", connID)

	switch env.Method {
	case "initialize":
		return rpc.NewResult(env.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    serverName,
				"version": serverVersion,
			},
		})

	case "tools/list":
		return rpc.NewResult(env.ID, map[string]any{"tools": g.toolInfos()})

	case "tools/call":
		return g.dispatchToolCall(ctx, connID, env)

	default:
		return rpc.NewError(env.ID, rpc.CodeMethodNotFound, "Method not found: "+env.Method)
	}
}

func (g *Gateway) dispatchToolCall(ctx context.Context, connID string, env *rpc.Envelope) *rpc.Response {
	var params callToolParams
	if len(env.Params) > 0 {
		if err := json.Unmarshal(env.Params, &params); err != nil {
			return rpc.NewError(env.ID, rpc.CodeInvalidParams, "Invalid params")
		}
	}
	if params.Name == "" {
		return rpc.NewError(env.ID, rpc.CodeInvalidParams, "Tool name is required")
	}

	result := g.executor.Call(ctx, connID, params.Name, params.Arguments)

	// Tool-level failures stay inside the result payload; the JSON-RPC
	// layer only errors on protocol faults.
	return rpc.NewResult(env.ID, callToolResult{
		Content: []toolContent{{Type: "text", Text: result.Text}},
		IsError: false,
	})
}

// toolInfos renders the registry's descriptors in catalogue form.
func (g *Gateway) toolInfos() []toolInfo {
	descriptors := g.executor.Registry().List()
	infos := make([]toolInfo, len(descriptors))
	for i, d := range descriptors {
		infos[i] = toolInfo{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		}
	}
	return infos
}

// mirrorToSession pushes a response onto the connection's SSE queue when
// a session exists. POST handlers never create sessions; pushing to an
// absent session is a no-op.
func (g *Gateway) mirrorToSession(connID string, resp *rpc.Response) {
	queue, ok := g.sessions.Lookup(connID)
	if !ok {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		g.logger.Warn("failed to marshal response for SSE mirror", "error", err)
		return
	}
	queue.Push(raw)
}

// writeRPC writes a JSON-RPC response with the HTTP status its error
// class maps to on this transport.
func (g *Gateway) writeRPC(w http.ResponseWriter, resp *rpc.Response) {
	status := http.StatusOK
	if resp.Error != nil {
		switch resp.Error.Code {
		case rpc.CodeParseError, rpc.CodeInvalidRequest:
			status = http.StatusBadRequest
		case rpc.CodeMethodNotFound:
			status = http.StatusNotFound
		case rpc.CodeInternalError:
			status = http.StatusInternalServerError
		}
	}
	writeJSON(w, g.logger, status, resp)
}
