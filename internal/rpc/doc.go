// Package rpc implements JSON-RPC 2.0 envelope parsing for the gateway.
//
// # Overview
//
// Every gateway transport (direct HTTP POST and SSE-oriented POST) receives
// JSON-RPC 2.0 envelopes. This package classifies a raw body as a request,
// a notification, or a protocol violation, and provides the response shapes
// and standard error codes.
//
// # Classification
//
// Parse applies the envelope rules in a fixed order:
//
//  1. Body fails to parse as JSON        -> -32700 Parse error
//  2. Top-level value is not an object   -> -32600 Invalid Request
//  3. jsonrpc field is not "2.0"         -> -32600 Invalid Request
//  4. method is missing or empty         -> -32600 Invalid Request
//
// A valid envelope with an absent or null id is a notification: no response
// payload is owed to the sender. Any present id marks a request; the raw id
// bytes are echoed verbatim in the response so numeric and string ids keep
// their original type.
package rpc
