// Package client implements the session core: the connection state
// machine, keepalive/ping tracking, reconnect-and-resubscribe loop, and the
// public facade (create/publish/subscribe/is-connected/close) that
// serializes send-side access to the transport while a single background
// reader drives receive, keepalive, and reconnection concurrently.
package client

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/breezymind/mqttcore/dispatch"
	"github.com/breezymind/mqttcore/host"
	"github.com/breezymind/mqttcore/packet"
	"github.com/breezymind/mqttcore/subscription"
	"github.com/breezymind/mqttcore/tracing"
	"github.com/breezymind/mqttcore/transport"
)

// Client is a single-connection MQTT 3.1.1 session: one logical
// publish/subscribe handle owning its own transport, reader goroutine, and
// subscription registry.
type Client struct {
	opts   Options
	dialer transport.Dialer
	clock  host.Clock

	logger *zap.SugaredLogger
	tracer trace.Tracer

	dispatcher *dispatch.Pool

	sendMu   sync.Mutex
	conn     transport.Conn
	packetID uint16

	phase            atomic.Int32
	lastActivityMS   atomic.Uint32
	pingSentMS       atomic.Uint32
	awaitingPingResp atomic.Bool
	running          atomic.Bool

	sendBuf []byte
	recvBuf []byte

	subs *subscription.Registry

	readerDone chan struct{}
}

// New opens the transport, performs the CONNECT/CONNACK handshake inline,
// and — on success — spawns the background reader before returning. Any
// failure along the way releases every resource already acquired and
// returns a nil Client.
func New(ctx context.Context, opts Options) (*Client, error) {
	opts.setDefaults()

	dialer, err := buildDialer(opts)
	if err != nil {
		return nil, err
	}

	c := &Client{
		opts:       opts,
		dialer:     dialer,
		clock:      opts.Clock,
		logger:     opts.Logger,
		tracer:     opts.Tracer,
		dispatcher: opts.Dispatcher,
		sendBuf:    make([]byte, MaxPacketSize),
		recvBuf:    make([]byte, MaxPacketSize),
		subs:       subscription.New(),
		readerDone: make(chan struct{}),
	}

	connectCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	conn, err := dialer.Dial(connectCtx, ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	if err := c.handshake(conn); err != nil {
		conn.Close()
		return nil, err
	}

	c.conn = conn
	c.phase.Store(phaseConnected)
	c.lastActivityMS.Store(c.clock.NowMS())
	c.running.Store(true)

	go c.readLoop()

	return c, nil
}

// handshake sends CONNECT and validates the CONNACK response on conn. It
// does not mutate any Client field other than the send and receive
// buffers, so it is
// safe to call both from New (before c.conn is set) and from reconnect.
func (c *Client) handshake(conn transport.Conn) error {
	req := &packet.Connect{
		ClientID:     c.opts.ClientID,
		Username:     c.opts.Username,
		Password:     c.opts.Password,
		HasUsername:  c.opts.HasUsername,
		HasPassword:  c.opts.HasPassword,
		KeepAlive:    c.opts.KeepAlive,
		CleanSession: c.opts.CleanSession,
	}

	c.sendMu.Lock()
	n, err := req.Encode(c.sendBuf)
	if err != nil {
		c.sendMu.Unlock()
		return fmt.Errorf("%w: encode connect: %v", ErrHandshake, err)
	}
	wn, err := conn.Send(c.sendBuf[:n])
	c.sendMu.Unlock()
	if err != nil || wn != n {
		return fmt.Errorf("%w: send connect: %v", ErrHandshake, err)
	}

	rn, err := conn.Receive(c.recvBuf, ConnectTimeout)
	if err != nil {
		return fmt.Errorf("%w: receive connack: %v", ErrHandshake, err)
	}
	if rn == 0 {
		return fmt.Errorf("%w: connack timed out", ErrHandshake)
	}

	ack := &packet.Connack{}
	if _, err := ack.Decode(c.recvBuf[:rn]); err != nil {
		return fmt.Errorf("%w: decode connack: %v", ErrHandshake, err)
	}
	if !ack.Accepted() {
		return fmt.Errorf("%w: broker refused connect, return code %d", ErrHandshake, ack.ReturnCode)
	}
	return nil
}

// Publish sends a PUBLISH packet. QoS 2 is rejected: this core is a QoS 0/1
// sender only.
func (c *Client) Publish(ctx context.Context, topic string, payload []byte, qos byte) (err error) {
	_, span := c.startSpan(ctx, "publish", topic, qos)
	defer func() { tracing.EndWithError(span, err) }()

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.phase.Load() != phaseConnected || c.conn == nil {
		err = ErrNotConnected
		return err
	}

	pub := &packet.Publish{Topic: topic, Payload: payload, QoS: qos}
	if qos > 0 {
		pub.PacketID = c.nextPacketIDLocked()
	}

	n, encErr := pub.Encode(c.sendBuf)
	if encErr != nil {
		err = fmt.Errorf("client: encode publish: %w", encErr)
		return err
	}

	wn, sendErr := c.conn.Send(c.sendBuf[:n])
	if sendErr != nil || wn != n {
		c.failConnectionLocked()
		err = fmt.Errorf("%w: %v", ErrSendFailed, sendErr)
		return err
	}
	return nil
}

// Subscribe sends a SUBSCRIBE for a single (topic, qos) pair and, if the
// send fully succeeded, registers it for resubscription after a future
// reconnect. It does not wait for SUBACK.
func (c *Client) Subscribe(ctx context.Context, topic string, qos byte) (err error) {
	_, span := c.startSpan(ctx, "subscribe", topic, qos)
	defer func() { tracing.EndWithError(span, err) }()

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.phase.Load() != phaseConnected || c.conn == nil {
		err = ErrNotConnected
		return err
	}

	sub := &packet.Subscribe{
		PacketID: c.nextPacketIDLocked(),
		Filters:  []packet.SubscribeFilter{{Topic: topic, QoS: qos}},
	}

	n, encErr := sub.Encode(c.sendBuf)
	if encErr != nil {
		err = fmt.Errorf("client: encode subscribe: %w", encErr)
		return err
	}

	wn, sendErr := c.conn.Send(c.sendBuf[:n])
	if sendErr != nil || wn != n {
		c.failConnectionLocked()
		err = fmt.Errorf("%w: %v", ErrSendFailed, sendErr)
		return err
	}

	c.subs.Add(topic, qos)
	return nil
}

// IsConnected reports whether the client currently holds an established
// connection.
func (c *Client) IsConnected() bool {
	return c.phase.Load() == phaseConnected
}

// Close stops the reader, best-effort sends DISCONNECT, and releases the
// transport. It blocks until the reader has observed the running flag and
// exited, bounded by ctx.
func (c *Client) Close(ctx context.Context) error {
	if !c.running.CompareAndSwap(true, false) {
		return ErrClosed
	}

	select {
	case <-c.readerDone:
	case <-ctx.Done():
		return ctx.Err()
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.conn != nil {
		d := &packet.Disconnect{}
		if n, err := d.Encode(c.sendBuf); err == nil {
			_, _ = c.conn.Send(c.sendBuf[:n])
		}
		c.conn.Close()
		c.conn = nil
	}
	c.phase.Store(phaseDisconnected)
	return nil
}

// failConnectionLocked transitions to Disconnected and closes the
// transport. Callers must hold sendMu.
func (c *Client) failConnectionLocked() {
	c.phase.Store(phaseDisconnected)
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) startSpan(ctx context.Context, op, topic string, qos byte) (context.Context, trace.Span) {
	switch op {
	case "publish":
		return tracing.StartPublish(ctx, c.tracer, topic, qos)
	default:
		return tracing.StartSubscribe(ctx, c.tracer, topic, qos)
	}
}

func buildDialer(opts Options) (transport.Dialer, error) {
	if opts.Dialer != nil {
		return opts.Dialer, nil
	}
	if opts.Host == "" {
		return nil, fmt.Errorf("%w: host required", ErrConnect)
	}
	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	if opts.TLSConfig != nil {
		return transport.DialTLS(addr, opts.TLSConfig), nil
	}
	return transport.DialTCP(addr), nil
}
