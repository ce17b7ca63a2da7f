package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnackAcceptedRoundTrip(t *testing.T) {
	c := &Connack{ReturnCode: ConnectionAccepted}
	buf := make([]byte, c.Len())
	n, err := c.Encode(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	out := &Connack{}
	_, err = out.Decode(buf[:n])
	require.NoError(t, err)
	assert.True(t, out.Accepted())
	assert.False(t, out.SessionPresent)
}

func TestConnackRefused(t *testing.T) {
	c := &Connack{ReturnCode: ConnectionRefusedIDRejected, SessionPresent: true}
	buf := make([]byte, c.Len())
	n, err := c.Encode(buf)
	require.NoError(t, err)

	out := &Connack{}
	_, err = out.Decode(buf[:n])
	require.NoError(t, err)
	assert.False(t, out.Accepted())
	assert.True(t, out.SessionPresent)
}
