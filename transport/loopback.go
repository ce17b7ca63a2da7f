package transport

import (
	"errors"
	"io"
	"net"
	"time"
)

// Loopback returns a pair of in-memory Conns connected back to back, for
// tests that drive the client against a fake broker without a real socket.
func Loopback() (client Conn, broker Conn) {
	a, b := net.Pipe()
	return &pipeConn{conn: a}, &pipeConn{conn: b}
}

type pipeConn struct {
	conn net.Conn
}

func (p *pipeConn) Send(buf []byte) (int, error) {
	n, err := p.conn.Write(buf)
	if err != nil {
		return n, err
	}
	return n, nil
}

func (p *pipeConn) Receive(buf []byte, timeout time.Duration) (int, error) {
	if err := p.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, err
	}
	n, err := p.conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, nil
		}
		if errors.Is(err, io.EOF) {
			return 0, err
		}
		return n, err
	}
	return n, nil
}

func (p *pipeConn) Close() error {
	return p.conn.Close()
}
