// ABOUTME: JSON-RPC 2.0 envelope types, parsing, and classification
// ABOUTME: Pure validation layer shared by all gateway transports

package rpc

import (
	"bytes"
	"encoding/json"
)

// Standard JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Envelope represents an inbound JSON-RPC 2.0 message.
// ID is kept as raw JSON so the original value round-trips byte for byte,
// preserving its type (string vs number) in the echoed response.
type Envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// IsNotification reports whether the envelope is a notification: an id that
// is absent or the JSON literal null means no response is owed.
func (e *Envelope) IsNotification() bool {
	return len(e.ID) == 0 || string(e.ID) == "null"
}

// Parse validates a raw body against the JSON-RPC 2.0 envelope rules, in
// order: parse error, top-level object check, version check, method check.
// It returns the classified envelope or the protocol error to send back.
// Parse is pure and performs no I/O.
func Parse(body []byte) (*Envelope, *Error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{Code: CodeParseError, Message: "Parse error"}
	}

	if !isJSONObject(raw) {
		return nil, &Error{Code: CodeInvalidRequest, Message: "Invalid Request: body must be an object"}
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Code: CodeInvalidRequest, Message: "Invalid Request: malformed envelope"}
	}

	if env.JSONRPC != "2.0" {
		return nil, &Error{Code: CodeInvalidRequest, Message: "Invalid Request: jsonrpc must be '2.0'"}
	}

	if env.Method == "" {
		return nil, &Error{Code: CodeInvalidRequest, Message: "Invalid Request: method is required"}
	}

	return &env, nil
}

// ExtractID pulls the id out of a body that failed envelope validation
// so the error response can still echo it. Returns JSON null when the
// body is not an object or carries no id.
func ExtractID(body []byte) json.RawMessage {
	var partial struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &partial); err != nil {
		return json.RawMessage("null")
	}
	return normalizeID(partial.ID)
}

// isJSONObject reports whether raw JSON is a top-level object.
func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// NewResult builds a successful response echoing the given raw id.
// A nil id marshals as "id": null.
func NewResult(id json.RawMessage, result any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      normalizeID(id),
		Result:  result,
	}
}

// NewError builds an error response echoing the given raw id.
func NewError(id json.RawMessage, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      normalizeID(id),
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

// normalizeID turns an absent id into an explicit JSON null so that the
// "id" field is always present in responses.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
