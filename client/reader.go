package client

import (
	"context"

	"github.com/breezymind/mqttcore/dispatch"
	"github.com/breezymind/mqttcore/host"
	"github.com/breezymind/mqttcore/packet"
	"github.com/breezymind/mqttcore/tracing"
	"github.com/breezymind/mqttcore/transport"
)

// readLoop is the client's single background task: while disconnected it
// retries the reconnect-and-resubscribe sequence on a fixed delay; while
// connected it drives keepalive and inbound packet handling. It never holds
// sendMu while invoking the user's MessageHandler, so a slow handler cannot
// block a concurrent Publish or Subscribe call from acquiring the lock.
func (c *Client) readLoop() {
	defer close(c.readerDone)

	for c.running.Load() {
		if c.phase.Load() != phaseConnected {
			if err := c.reconnect(); err != nil {
				c.logger.Debugw("reconnect attempt failed", "error", err)
				c.clock.Sleep(context.Background(), ReconnectDelay)
			}
			continue
		}

		if err := c.maybeSendPing(); err != nil {
			c.logger.Warnw("keepalive failed", "error", err)
			continue
		}

		c.receiveOne()
	}
}

// receiveOne blocks for up to ReceiveTimeout on the current connection and
// dispatches whatever arrived. A timeout with no data is not an error: it
// simply gives maybeSendPing another chance to run on the next loop
// iteration.
func (c *Client) receiveOne() {
	conn := c.getConn()
	if conn == nil {
		return
	}

	n, err := conn.Receive(c.recvBuf, ReceiveTimeout)
	if err != nil {
		c.logger.Warnw("receive failed, dropping connection", "error", err)
		c.sendMu.Lock()
		c.failConnectionLocked()
		c.sendMu.Unlock()
		return
	}
	if n == 0 {
		return
	}

	pkt, err := packet.DecodeAny(c.recvBuf[:n])
	if err != nil {
		c.logger.Warnw("dropping undecodable packet", "error", err)
		return
	}

	switch p := pkt.(type) {
	case *packet.PingResp:
		c.awaitingPingResp.Store(false)
		c.lastActivityMS.Store(c.clock.NowMS())
	case *packet.Publish:
		c.handlePublish(p)
	case *packet.Suback:
		// No caller is blocked on this; logged for visibility only.
		c.logger.Debugw("suback received", "packet_id", p.PacketID)
		for _, code := range p.ReturnCodes {
			if code == packet.SubackFailure {
				c.logger.Warnw("broker rejected subscription", "packet_id", p.PacketID)
			}
		}
	default:
		c.logger.Debugw("unhandled packet type", "type", pkt.Type())
	}
}

func (c *Client) handlePublish(p *packet.Publish) {
	if c.opts.MessageHandler == nil {
		return
	}
	if c.dispatcher != nil {
		if err := c.dispatcher.Dispatch(dispatch.Message{Topic: p.Topic, Payload: p.Payload}); err != nil {
			c.logger.Warnw("dispatch pool rejected message", "error", err)
		}
		return
	}
	c.opts.MessageHandler(p.Topic, p.Payload)
}

// maybeSendPing implements the K/2 keepalive threshold: once half the
// keepalive interval has elapsed since the last activity with no PINGRESP
// outstanding, send PINGREQ. If a PINGRESP is already outstanding and
// another K/2 has elapsed since it was sent, the link is declared dead.
func (c *Client) maybeSendPing() error {
	if c.opts.KeepAlive == 0 {
		return nil
	}
	thresholdMS := uint32(c.opts.KeepAlive) * 1000 / keepaliveDivisor
	now := c.clock.NowMS()

	// Both subtractions use ElapsedMS's unsigned 32-bit modular arithmetic,
	// so a single NowMS wrap partway through the interval still yields the
	// correct elapsed duration.
	if c.awaitingPingResp.Load() {
		if host.ElapsedMS(now, c.pingSentMS.Load()) >= thresholdMS {
			c.sendMu.Lock()
			c.failConnectionLocked()
			c.sendMu.Unlock()
			c.awaitingPingResp.Store(false)
			return ErrKeepaliveTimeout
		}
		return nil
	}

	if host.ElapsedMS(now, c.lastActivityMS.Load()) < thresholdMS {
		return nil
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.phase.Load() != phaseConnected || c.conn == nil {
		return nil
	}

	ping := &packet.PingReq{}
	n, err := ping.Encode(c.sendBuf)
	if err != nil {
		return err
	}
	if wn, err := c.conn.Send(c.sendBuf[:n]); err != nil || wn != n {
		c.failConnectionLocked()
		return ErrSendFailed
	}

	c.pingSentMS.Store(now)
	c.awaitingPingResp.Store(true)
	return nil
}

// reconnect dials a fresh transport, performs the CONNECT/CONNACK
// handshake, and reissues every tracked subscription. It only transitions
// the client into Connected state if every step succeeds; any failure
// leaves the client Disconnected for the next readLoop iteration to retry.
func (c *Client) reconnect() error {
	ctx, span := tracing.StartReconnect(context.Background(), c.tracer)
	var err error
	defer func() { tracing.EndWithError(span, err) }()

	dialCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	conn, dialErr := c.dialer.Dial(dialCtx, ConnectTimeout)
	if dialErr != nil {
		err = dialErr
		return err
	}

	if hsErr := c.handshake(conn); hsErr != nil {
		conn.Close()
		err = hsErr
		return err
	}

	c.sendMu.Lock()
	c.conn = conn
	c.phase.Store(phaseConnected)
	c.lastActivityMS.Store(c.clock.NowMS())
	c.awaitingPingResp.Store(false)

	for _, e := range c.subs.Iter() {
		sub := &packet.Subscribe{
			PacketID: c.nextPacketIDLocked(),
			Filters:  []packet.SubscribeFilter{{Topic: e.Filter, QoS: e.QoS}},
		}
		n, encErr := sub.Encode(c.sendBuf)
		if encErr != nil {
			continue
		}
		if _, sendErr := c.conn.Send(c.sendBuf[:n]); sendErr != nil {
			c.failConnectionLocked()
			c.sendMu.Unlock()
			err = sendErr
			return err
		}
	}
	c.sendMu.Unlock()

	return nil
}

// getConn reads the current connection under sendMu so readLoop never
// races a concurrent failConnectionLocked call from a foreground Publish
// or Subscribe.
func (c *Client) getConn() transport.Conn {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.conn
}
