// Package session tracks live SSE connections and their delivery queues.
//
// # Lifecycle
//
// A session is created lazily when a client opens the SSE stream for a
// connection ID, looked up (never created) by POST handlers that mirror
// responses onto the stream, and removed exactly once when the owning
// stream's event loop exits. Session state is in-memory only and does not
// survive a process restart; after removal the same ID may be reused by a
// fresh subscribe, which gets a new empty queue.
//
// # Ordering
//
// Messages for a single session are delivered strictly in enqueue order.
// No ordering guarantee exists across distinct sessions.
package session
