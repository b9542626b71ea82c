// Package gateway ties the tool gateway together: the chi HTTP router,
// the JSON-RPC dispatcher, the SSE stream emitter, and the server
// lifecycle (startup, signal handling, graceful shutdown).
//
// Two transports carry the same JSON-RPC protocol. POST /sse (and its
// /message alias) answers synchronously and mirrors the response onto
// the connection's SSE queue when one is subscribed. GET /sse holds the
// long-lived stream that drains that queue, emitting ping keepalives
// while idle.
package gateway
