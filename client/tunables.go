package client

import "time"

// Compile-time tunables. These cap observable behavior; they are part of
// the interface even though they are not caller-configurable.
const (
	// MaxPacketSize is the largest encoded packet this client will send or
	// expects to receive.
	MaxPacketSize = 1024
	// ConnectTimeout bounds the transport dial and, separately, the wait for
	// CONNACK, both on the initial connect and on each reconnect attempt.
	ConnectTimeout = 5 * time.Second
	// ReconnectDelay is the fixed backoff between failed reconnect attempts.
	ReconnectDelay = 1 * time.Second
	// ReceiveTimeout bounds each blocking read on the transport, keeping the
	// reader loop responsive to the running flag and keepalive deadlines.
	ReceiveTimeout = 1500 * time.Millisecond
	// keepaliveDivisor implements the K/2 threshold for both sending
	// PINGREQ and declaring the link dead while awaiting PINGRESP.
	keepaliveDivisor = 2
)

const (
	phaseDisconnected int32 = 0
	phaseConnected    int32 = 1
)
