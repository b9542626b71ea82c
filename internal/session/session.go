// ABOUTME: Connection session registry mapping connection IDs to delivery queues
// ABOUTME: Provides the unbounded FIFO queue drained by the SSE stream emitter

package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// DefaultConnectionID is used when a client omits the connection header.
const DefaultConnectionID = "default"

// PopOutcome reports how a queue wait ended.
type PopOutcome int

const (
	// Delivered means a message was dequeued.
	Delivered PopOutcome = iota
	// TimedOut means the bounded wait elapsed with the queue still empty.
	TimedOut
	// Cancelled means the context was cancelled before a message arrived.
	Cancelled
)

// Queue is an unbounded FIFO of outbound messages for one session.
// Multiple producers may push concurrently; a single consumer drains it.
type Queue struct {
	mu     sync.Mutex
	items  []json.RawMessage
	signal chan struct{}
}

func newQueue() *Queue {
	return &Queue{
		signal: make(chan struct{}, 1),
	}
}

// Push appends a message and wakes the consumer if it is waiting.
func (q *Queue) Push(msg json.RawMessage) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Pop removes the oldest message, waiting up to the given duration for one
// to arrive. The outcome distinguishes delivery from wait timeout and from
// context cancellation.
func (q *Queue) Pop(ctx context.Context, wait time.Duration) (json.RawMessage, PopOutcome) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			msg := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return msg, Delivered
		}
		q.mu.Unlock()

		select {
		case <-q.signal:
			// Re-check the queue; the signal may have been consumed for a
			// message another Pop already took.
		case <-timer.C:
			return nil, TimedOut
		case <-ctx.Done():
			return nil, Cancelled
		}
	}
}

// Len reports the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Registry is the process-wide map from connection ID to delivery queue.
// The map itself is the critical section; insert, lookup, and remove are
// mutually exclusive so a create cannot race a concurrent remove.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Queue
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Queue),
	}
}

// GetOrCreate returns the queue for the given connection ID, creating it if
// absent. Idempotent.
func (r *Registry) GetOrCreate(id string) *Queue {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.sessions[id]
	if !ok {
		q = newQueue()
		r.sessions[id] = q
	}
	return q
}

// Lookup returns the queue for the given connection ID without creating one.
// POST handlers use this so pushing to a non-existent session is a no-op.
func (r *Registry) Lookup(id string) (*Queue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.sessions[id]
	return q, ok
}

// Remove deletes the session. Called exactly once by the owning SSE stream
// when it terminates; a later subscribe with the same ID gets a fresh queue.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

// Len reports the number of active sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
