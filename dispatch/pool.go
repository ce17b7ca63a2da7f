// Package dispatch implements an alternate message-delivery path: instead
// of invoking the user callback synchronously on the reader goroutine, a
// Pool enqueues the call onto an application-owned worker pool. This is
// off by default — the canonical path runs the callback on the reader —
// and exists for callers whose message handler is slow enough to risk
// delaying keepalive and reconnection if run inline.
package dispatch

import (
	"fmt"

	"github.com/panjf2000/ants/v2"
)

// Message is one PUBLISH delivery handed to a Pool.
type Message struct {
	Topic   string
	Payload []byte
}

// Handler processes a dispatched Message.
type Handler func(Message)

// Pool wraps an ants goroutine pool sized to bound worker concurrency.
// Preserving per-client ordering is not attempted here by design: once
// delivery leaves the reader goroutine, cross-message ordering becomes the
// caller's concern.
type Pool struct {
	pool    *ants.Pool
	handler Handler
}

// NewPool creates a dispatch pool with the given worker concurrency
// (capacity) invoking handler for every dispatched message.
func NewPool(capacity int, handler Handler) (*Pool, error) {
	if handler == nil {
		return nil, fmt.Errorf("dispatch: handler must not be nil")
	}
	p, err := ants.NewPool(capacity, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("dispatch: create pool: %w", err)
	}
	return &Pool{pool: p, handler: handler}, nil
}

// Dispatch submits msg for asynchronous handling. It blocks only long
// enough to enqueue the task if the pool is saturated and non-blocking
// submission is disabled (the default here), never for the handler to run.
func (p *Pool) Dispatch(msg Message) error {
	return p.pool.Submit(func() {
		p.handler(msg)
	})
}

// Close releases the pool's workers. Pending tasks are allowed to drain.
func (p *Pool) Close() {
	p.pool.Release()
}
