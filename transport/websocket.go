package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// ErrNotBinary is returned when a received WebSocket message is not a
// binary frame; this client only tunnels binary MQTT packets.
var ErrNotBinary = errors.New("transport: received websocket message is not binary")

var wsCloseMessage = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")

// wsConn wraps a *websocket.Conn to satisfy Conn. Adapted from the
// teacher's WebSocketConn: a single MQTT packet may arrive coalesced into
// one WebSocket frame or, for large packets, require draining the frame in
// pieces, so Receive loops the frame reader until buf is filled or the
// frame is exhausted.
type wsConn struct {
	conn *websocket.Conn
}

// DialWebSocket connects to a ws:// or wss:// broker endpoint.
func DialWebSocket(url string) DialerFunc {
	return func(ctx context.Context, timeout time.Duration) (Conn, error) {
		dialer := &websocket.Dialer{
			HandshakeTimeout: timeout,
		}
		conn, resp, err := dialer.DialContext(ctx, url, http.Header{})
		if resp != nil {
			defer resp.Body.Close()
		}
		if err != nil {
			return nil, fmt.Errorf("transport: websocket dial %s: %w", url, err)
		}
		return &wsConn{conn: conn}, nil
	}
}

func (c *wsConn) Send(buf []byte) (int, error) {
	w, err := c.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return 0, fmt.Errorf("transport: websocket writer: %w", err)
	}
	n, err := w.Write(buf)
	if err != nil {
		return n, fmt.Errorf("transport: websocket write: %w", err)
	}
	if err := w.Close(); err != nil {
		return n, fmt.Errorf("transport: websocket write close: %w", err)
	}
	return n, nil
}

func (c *wsConn) Receive(buf []byte, timeout time.Duration) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, fmt.Errorf("transport: websocket set read deadline: %w", err)
	}

	messageType, r, err := c.conn.NextReader()
	if err != nil {
		if ce, ok := err.(*websocket.CloseError); ok {
			return 0, fmt.Errorf("transport: websocket closed: %w", ce)
		}
		if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
			return 0, nil
		}
		return 0, fmt.Errorf("transport: websocket read: %w", err)
	}
	if messageType != websocket.BinaryMessage {
		return 0, ErrNotBinary
	}

	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			break // io.EOF ends the current frame; whole-packet contract assumes one frame per packet
		}
	}
	return total, nil
}

func (c *wsConn) Close() error {
	_ = c.conn.WriteMessage(websocket.CloseMessage, wsCloseMessage)
	return c.conn.Close()
}
