package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breezymind/mqttcore/host"
	"github.com/breezymind/mqttcore/tracing"
	"github.com/breezymind/mqttcore/transport"
)

// sequencedDialer returns a fresh Loopback pair on every Dial call, letting
// a test simulate the broker accepting a new TCP connection after the
// previous one was dropped.
type sequencedDialer struct {
	mu      sync.Mutex
	brokers []transport.Conn
}

func (d *sequencedDialer) Dial(ctx context.Context, timeout time.Duration) (transport.Conn, error) {
	clientConn, brokerConn := transport.Loopback()
	d.mu.Lock()
	d.brokers = append(d.brokers, brokerConn)
	d.mu.Unlock()
	return clientConn, nil
}

func (d *sequencedDialer) snapshot() []transport.Conn {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]transport.Conn, len(d.brokers))
	copy(out, d.brokers)
	return out
}

func TestClientReconnectsAfterDroppedConnection(t *testing.T) {
	dialer := &sequencedDialer{}

	opts := Options{
		ClientID: "test-client",
		Dialer:   dialer,
		Clock:    host.NewFakeClock(),
	}
	opts.setDefaults()

	// The loopback pipe is unbuffered, so New blocks writing CONNECT until a
	// broker reads the other end; run it aside while the broker starts.
	type newResult struct {
		c   *Client
		err error
	}
	created := make(chan newResult, 1)
	go func() {
		c, err := New(context.Background(), opts)
		created <- newResult{c: c, err: err}
	}()

	require.Eventually(t, func() bool {
		return len(dialer.snapshot()) >= 1
	}, time.Second, 10*time.Millisecond, "client never dialed")

	initial := dialer.snapshot()
	require.Len(t, initial, 1)
	firstBroker := newFakeBroker(t, initial[0])

	res := <-created
	require.NoError(t, res.err)
	c := res.c
	select {
	case <-firstBroker.connAcc:
	case <-time.After(time.Second):
		t.Fatal("broker never observed initial CONNECT")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.Subscribe(ctx, "a/b", 0))

	firstBroker.conn.Close()

	require.Eventually(t, func() bool {
		return len(dialer.snapshot()) >= 2
	}, 3*time.Second, 20*time.Millisecond, "client never redialed after drop")

	secondBroker := newFakeBroker(t, dialer.snapshot()[1])
	select {
	case <-secondBroker.connAcc:
	case <-time.After(2 * time.Second):
		t.Fatal("broker never observed reconnect CONNECT")
	}

	assert.True(t, c.IsConnected())

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second)
	defer closeCancel()
	require.NoError(t, c.Close(closeCtx))
}

func TestMaybeSendPingDeclaresKeepaliveTimeout(t *testing.T) {
	clientConn, brokerConn := transport.Loopback()
	defer brokerConn.Close()

	fc := host.NewFakeClock()
	c := &Client{
		clock:   fc,
		tracer:  tracing.Tracer(),
		sendBuf: make([]byte, MaxPacketSize),
		recvBuf: make([]byte, MaxPacketSize),
	}
	c.conn = clientConn
	c.opts.KeepAlive = 2
	c.phase.Store(phaseConnected)
	c.lastActivityMS.Store(0)

	// Drain whatever PINGREQ bytes land on the broker side so Send doesn't
	// block on a full pipe, but never reply with PINGRESP.
	go func() {
		buf := make([]byte, MaxPacketSize)
		for {
			if _, err := brokerConn.Receive(buf, 5*time.Second); err != nil {
				return
			}
		}
	}()

	fc.Advance(1100 * time.Millisecond)
	require.NoError(t, c.maybeSendPing())
	assert.True(t, c.awaitingPingResp.Load())

	fc.Advance(1100 * time.Millisecond)
	err := c.maybeSendPing()
	assert.ErrorIs(t, err, ErrKeepaliveTimeout)
	assert.False(t, c.IsConnected())
}
