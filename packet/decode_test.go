package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnyDispatchesByType(t *testing.T) {
	pub := &Publish{Topic: "t", Payload: []byte("v"), QoS: 0}
	buf := make([]byte, pub.Len())
	n, err := pub.Encode(buf)
	require.NoError(t, err)

	decoded, err := DecodeAny(buf[:n])
	require.NoError(t, err)
	got, ok := decoded.(*Publish)
	require.True(t, ok)
	assert.Equal(t, "t", got.Topic)
}

func TestDecodeAnyRejectsUnexpectedType(t *testing.T) {
	c := &Connect{ClientID: "x"}
	buf := make([]byte, c.Len())
	n, err := c.Encode(buf)
	require.NoError(t, err)

	_, err = DecodeAny(buf[:n])
	assert.Error(t, err)
}
