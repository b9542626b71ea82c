// Package auth provides the gateway's API key verification middleware.
//
// Authentication is a single static shared secret carried in a configurable
// request header (X-API-Key by default). When no key is configured the
// middleware is a pass-through, matching the server's open-by-default
// development mode. Comparison is constant time.
package auth
