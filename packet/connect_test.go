package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectEncodeDecode(t *testing.T) {
	c := &Connect{
		ClientID:     "test-client",
		KeepAlive:    60,
		CleanSession: true,
	}

	buf := make([]byte, c.Len())
	n, err := c.Encode(buf)
	require.NoError(t, err)
	assert.Equal(t, c.Len(), n)

	out := &Connect{}
	dn, err := out.Decode(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, n, dn)
	assert.Equal(t, c.ClientID, out.ClientID)
	assert.Equal(t, c.KeepAlive, out.KeepAlive)
	assert.True(t, out.CleanSession)
	assert.False(t, out.HasUsername)
	assert.False(t, out.HasPassword)
}

func TestConnectEncodeDecodeWithCredentials(t *testing.T) {
	c := &Connect{
		ClientID:    "id",
		Username:    "alice",
		Password:    "secret",
		HasUsername: true,
		HasPassword: true,
		KeepAlive:   30,
	}

	buf := make([]byte, c.Len())
	n, err := c.Encode(buf)
	require.NoError(t, err)

	out := &Connect{}
	_, err = out.Decode(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "secret", out.Password)
	assert.True(t, out.HasUsername)
	assert.True(t, out.HasPassword)
}

func TestConnectDecodeRejectsBadProtocolName(t *testing.T) {
	c := &Connect{ClientID: "x"}
	buf := make([]byte, c.Len())
	_, err := c.Encode(buf)
	require.NoError(t, err)

	// corrupt the first byte of the protocol name: "MQTT" becomes "ZQTT"
	buf[4] = 'Z'

	out := &Connect{}
	_, err = out.Decode(buf)
	assert.Error(t, err)
}
