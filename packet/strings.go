package packet

import "fmt"

// encodeString writes a 2-byte big-endian length prefix followed by s into
// dst, returning the bytes written.
func encodeString(dst []byte, s string) (int, error) {
	if len(dst) < 2+len(s) {
		return 0, fmt.Errorf("packet: insufficient buffer for string of length %d", len(s))
	}
	dst[0] = byte(len(s) >> 8)
	dst[1] = byte(len(s))
	n := copy(dst[2:], s)
	return 2 + n, nil
}

// decodeString reads a 2-byte length-prefixed MQTT string from src,
// returning the string, the bytes consumed, and an error if the declared
// length exceeds what remains in src.
func decodeString(src []byte) (string, int, error) {
	if len(src) < 2 {
		return "", 0, fmt.Errorf("packet: insufficient buffer for string length prefix")
	}
	l := int(src[0])<<8 | int(src[1])
	if len(src)-2 < l {
		return "", 0, fmt.Errorf("packet: string length %d exceeds remaining buffer (%d)", l, len(src)-2)
	}
	return string(src[2 : 2+l]), 2 + l, nil
}

func stringLen(s string) int {
	return 2 + len(s)
}
