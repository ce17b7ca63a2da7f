package client

import "errors"

var (
	// ErrNotConnected is returned by Publish/Subscribe when the client's
	// phase is not Connected.
	ErrNotConnected = errors.New("client: not connected")
	// ErrClosed is returned by Close when the client is already closed.
	ErrClosed = errors.New("client: already closed")
	// ErrConnect wraps a transport-open failure.
	ErrConnect = errors.New("client: transport connect failed")
	// ErrHandshake wraps a CONNECT/CONNACK handshake failure.
	ErrHandshake = errors.New("client: connect handshake failed")
	// ErrSendFailed wraps a wire-send failure on an established connection.
	ErrSendFailed = errors.New("client: send failed")
	// ErrKeepaliveTimeout is returned internally when no PINGRESP arrives
	// within K/2 of the PINGREQ.
	ErrKeepaliveTimeout = errors.New("client: keepalive timeout, no pingresp")
)
