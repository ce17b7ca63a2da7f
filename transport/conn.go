// Package transport implements the byte-stream collaborator the session
// core treats as an external dependency: connect/send/receive/close on a
// plain TCP socket, a TLS-wrapped socket, or a WebSocket-tunneled stream.
package transport

import (
	"context"
	"time"
)

// Conn is the narrow byte-stream interface the client core consumes:
// connect/send/recv/close, expressed as a per-connection interface instead
// of a global vtable so multiple clients can run concurrently and tests
// can inject a loopback fake.
type Conn interface {
	// Send writes buf in full or returns an error; a short write without an
	// error is not a valid outcome (callers treat a non-nil error as fatal).
	Send(buf []byte) (int, error)
	// Receive reads one logical MQTT packet into buf, blocking up to
	// timeout. It returns (0, nil) on timeout, and a non-nil error on any
	// other failure.
	Receive(buf []byte, timeout time.Duration) (int, error)
	Close() error
}

// Dialer opens a new Conn to the configured broker. Implementations: DialTCP
// (plain TCP), DialTLS (TLS-wrapped TCP), DialWebSocket (gorilla/websocket).
type Dialer interface {
	Dial(ctx context.Context, timeout time.Duration) (Conn, error)
}

// DialerFunc adapts a plain function to the Dialer interface.
type DialerFunc func(ctx context.Context, timeout time.Duration) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, timeout time.Duration) (Conn, error) {
	return f(ctx, timeout)
}
