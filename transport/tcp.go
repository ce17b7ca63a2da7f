package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// tcpConn wraps a net.Conn to satisfy Conn.
type tcpConn struct {
	conn net.Conn
}

// DialTCP connects a plain TCP stream to addr ("host:port").
func DialTCP(addr string) DialerFunc {
	return func(ctx context.Context, timeout time.Duration) (Conn, error) {
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("transport: tcp dial %s: %w", addr, err)
		}
		return &tcpConn{conn: conn}, nil
	}
}

// DialTLS connects a TLS-wrapped TCP stream to addr, using cfg for the
// handshake (SNI hostname, certificates, verification mode). No
// third-party TLS provider appeared anywhere in the retrieved corpus, so
// crypto/tls is the correct, non-speculative choice here (see DESIGN.md).
func DialTLS(addr string, cfg *tls.Config) DialerFunc {
	return func(ctx context.Context, timeout time.Duration) (Conn, error) {
		d := &tls.Dialer{
			NetDialer: &net.Dialer{Timeout: timeout},
			Config:    cfg,
		}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("transport: tls dial %s: %w", addr, err)
		}
		return &tcpConn{conn: conn}, nil
	}
}

func (c *tcpConn) Send(buf []byte) (int, error) {
	n, err := c.conn.Write(buf)
	if err != nil {
		return n, fmt.Errorf("transport: send: %w", err)
	}
	return n, nil
}

func (c *tcpConn) Receive(buf []byte, timeout time.Duration) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, fmt.Errorf("transport: set read deadline: %w", err)
	}
	n, err := c.conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, nil
		}
		return n, fmt.Errorf("transport: receive: %w", err)
	}
	return n, nil
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}
