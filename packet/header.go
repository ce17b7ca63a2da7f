package packet

import (
	"encoding/binary"
	"fmt"
)

// maxRemainingLength is the largest value the 4-byte base-128 remaining
// length field can represent (MQTT 3.1.1 §2.2.3).
const maxRemainingLength = 268435455

// EncodeRemainingLength writes the classic MQTT base-128 remaining-length
// encoding (least-significant 7-bit group first, continuation bit 0x80)
// into dst, returning the
// number of bytes written. It is bit-for-bit the same scheme as
// encoding/binary's unsigned varint, so the stdlib helper does the byte
// shuffling.
func EncodeRemainingLength(dst []byte, rl int) (int, error) {
	if rl < 0 || rl > maxRemainingLength {
		return 0, fmt.Errorf("packet: remaining length %d out of range [0, %d]", rl, maxRemainingLength)
	}
	return binary.PutUvarint(dst, uint64(rl)), nil
}

// DecodeRemainingLength reads a remaining-length field from src, returning
// the decoded value and the number of header bytes it occupied. It fails if
// the fourth byte still carries the continuation bit, per spec.
func DecodeRemainingLength(src []byte) (rl int, n int, err error) {
	v, n := binary.Uvarint(src)
	if n <= 0 {
		return 0, 0, fmt.Errorf("packet: malformed remaining length")
	}
	if n > 4 {
		return 0, 0, fmt.Errorf("packet: remaining length field exceeds 4 bytes")
	}
	return int(v), n, nil
}

// remainingLengthSize returns how many bytes EncodeRemainingLength will use
// for rl, so callers can size buffers before encoding.
func remainingLengthSize(rl int) int {
	switch {
	case rl <= 127:
		return 1
	case rl <= 16383:
		return 2
	case rl <= 2097151:
		return 3
	default:
		return 4
	}
}

// fixedHeaderLen returns the total size (type+flags byte plus remaining
// length field) of a fixed header encoding rl.
func fixedHeaderLen(rl int) int {
	return 1 + remainingLengthSize(rl)
}

// encodeFixedHeader writes the 1-byte type/flags field followed by the
// remaining-length field into dst, returning the bytes written.
func encodeFixedHeader(dst []byte, t Type, flags byte, rl int) (int, error) {
	if rl > maxRemainingLength || rl < 0 {
		return 0, fmt.Errorf("[%s] remaining length (%d) out of bound (max %d, min 0)", t, rl, maxRemainingLength)
	}
	hl := fixedHeaderLen(rl)
	if len(dst) < hl {
		return 0, fmt.Errorf("[%s] insufficient buffer size, expected %d, got %d", t, hl, len(dst))
	}

	dst[0] = byte(t)<<4 | (t.defaultFlags() & 0x0f) | (flags & 0x0f)
	n, err := EncodeRemainingLength(dst[1:], rl)
	if err != nil {
		return 0, err
	}
	return 1 + n, nil
}

// decodeFixedHeader reads and validates the fixed header for the expected
// type t, returning the header length consumed, the flags byte, and the
// decoded remaining length.
func decodeFixedHeader(src []byte, t Type) (n int, flags byte, rl int, err error) {
	if len(src) < 2 {
		return 0, 0, 0, fmt.Errorf("[%s] insufficient buffer size, expected at least 2, got %d", t, len(src))
	}

	decodedType := Type(src[0] >> 4)
	flags = src[0] & 0x0f
	if decodedType != t {
		return 0, 0, 0, fmt.Errorf("[%s] invalid type %d", t, decodedType)
	}
	if t != PUBLISH && flags != t.defaultFlags() {
		return 0, 0, 0, fmt.Errorf("[%s] invalid flags, expected %d, got %d", t, t.defaultFlags(), flags)
	}

	rl, rn, err := DecodeRemainingLength(src[1:])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("[%s] %w", t, err)
	}
	n = 1 + rn

	if rl > len(src)-n {
		return 0, 0, 0, fmt.Errorf("[%s] remaining length (%d) exceeds available buffer (%d)", t, rl, len(src)-n)
	}
	return n, flags, rl, nil
}
