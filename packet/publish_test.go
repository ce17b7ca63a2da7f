package packet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRoundTripQoS0(t *testing.T) {
	p := &Publish{Topic: "a/b", Payload: []byte("hi"), QoS: 0}
	buf := make([]byte, p.Len())
	n, err := p.Encode(buf)
	require.NoError(t, err)

	out := &Publish{}
	_, err = out.Decode(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, "a/b", out.Topic)
	assert.True(t, bytes.Equal([]byte("hi"), out.Payload))
	assert.Equal(t, byte(0), out.QoS)
	assert.Equal(t, uint16(0), out.PacketID)
}

func TestPublishRoundTripQoS1WithPacketID(t *testing.T) {
	p := &Publish{Topic: "t", Payload: []byte("payload"), QoS: 1, PacketID: 42, Dup: true, Retain: true}
	buf := make([]byte, p.Len())
	n, err := p.Encode(buf)
	require.NoError(t, err)

	out := &Publish{}
	_, err = out.Decode(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, uint16(42), out.PacketID)
	assert.True(t, out.Dup)
	assert.True(t, out.Retain)
	assert.Equal(t, byte(1), out.QoS)
}

func TestPublishRejectsQoS2OnEncode(t *testing.T) {
	p := &Publish{Topic: "t", Payload: []byte("x"), QoS: 2}
	buf := make([]byte, 64)
	_, err := p.Encode(buf)
	assert.Error(t, err)
}

func TestPublishMaxPayloadWithin1024Buffer(t *testing.T) {
	// topic "a" (3 bytes incl len prefix) + fixed header (<=5) leaves room
	// for a payload near the 1024-byte packet cap.
	payload := make([]byte, 1024-10)
	for i := range payload {
		payload[i] = byte(i)
	}
	p := &Publish{Topic: "a", Payload: payload, QoS: 0}
	buf := make([]byte, p.Len())
	n, err := p.Encode(buf)
	require.NoError(t, err)

	out := &Publish{}
	_, err = out.Decode(buf[:n])
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, out.Payload))
}
