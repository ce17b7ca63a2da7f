package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingLengthRoundTrip(t *testing.T) {
	values := []int{0, 1, 127, 128, 16383, 16384, 2097151, 2097152, maxRemainingLength}
	for _, v := range values {
		buf := make([]byte, 4)
		n, err := EncodeRemainingLength(buf, v)
		require.NoError(t, err)

		decoded, dn, err := DecodeRemainingLength(buf[:n])
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Equal(t, n, dn)
	}
}

func TestRemainingLengthRejectsOutOfRange(t *testing.T) {
	buf := make([]byte, 4)
	_, err := EncodeRemainingLength(buf, maxRemainingLength+1)
	assert.Error(t, err)

	_, err = EncodeRemainingLength(buf, -1)
	assert.Error(t, err)
}

func TestDecodeRemainingLengthRejectsFifthByteContinuation(t *testing.T) {
	// the fourth byte still carries the continuation bit, running the field
	// into a fifth byte: invalid per spec
	buf := []byte{0xff, 0xff, 0xff, 0xff, 0x01}
	_, _, err := DecodeRemainingLength(buf)
	assert.Error(t, err)
}

func TestFixedHeaderEncodeDecode(t *testing.T) {
	buf := make([]byte, 8)
	n, err := encodeFixedHeader(buf, PINGREQ, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dn, flags, rl, err := decodeFixedHeader(buf[:n], PINGREQ)
	require.NoError(t, err)
	assert.Equal(t, n, dn)
	assert.Equal(t, byte(0), flags)
	assert.Equal(t, 0, rl)
}

func TestFixedHeaderDecodeRejectsWrongType(t *testing.T) {
	buf := make([]byte, 2)
	_, err := encodeFixedHeader(buf, PINGREQ, 0, 0)
	require.NoError(t, err)

	_, _, _, err = decodeFixedHeader(buf, PINGRESP)
	assert.Error(t, err)
}
