package packet

import "fmt"

const (
	protocolName  = "MQTT"
	protocolLevel = 4

	connectFlagUsername     = 0x80
	connectFlagPassword     = 0x40
	connectFlagCleanSession = 0x02
)

// Connect is the MQTT CONNECT packet. Will flags are never set by this
// client (will messages are out of scope).
type Connect struct {
	ClientID     string
	Username     string
	Password     string
	HasUsername  bool
	HasPassword  bool
	KeepAlive    uint16
	CleanSession bool
}

func (c *Connect) Type() Type { return CONNECT }

func (c *Connect) Len() int {
	// protocol name (6) + level (1) + flags (1) + keepalive (2)
	vh := stringLen(protocolName) + 1 + 1 + 2
	payload := stringLen(c.ClientID)
	if c.HasUsername {
		payload += stringLen(c.Username)
	}
	if c.HasPassword {
		payload += stringLen(c.Password)
	}
	rl := vh + payload
	return fixedHeaderLen(rl) + rl
}

func (c *Connect) Encode(dst []byte) (int, error) {
	vh := stringLen(protocolName) + 1 + 1 + 2
	payload := stringLen(c.ClientID)
	if c.HasUsername {
		payload += stringLen(c.Username)
	}
	if c.HasPassword {
		payload += stringLen(c.Password)
	}
	rl := vh + payload

	n, err := encodeFixedHeader(dst, CONNECT, 0, rl)
	if err != nil {
		return 0, err
	}

	m, err := encodeString(dst[n:], protocolName)
	if err != nil {
		return 0, err
	}
	n += m

	if n+2 > len(dst) {
		return 0, fmt.Errorf("[Connect] insufficient buffer for level/flags")
	}
	dst[n] = protocolLevel
	n++

	var flags byte
	if c.CleanSession {
		flags |= connectFlagCleanSession
	}
	if c.HasUsername {
		flags |= connectFlagUsername
	}
	if c.HasPassword {
		flags |= connectFlagPassword
	}
	dst[n] = flags
	n++

	dst[n] = byte(c.KeepAlive >> 8)
	dst[n+1] = byte(c.KeepAlive)
	n += 2

	m, err = encodeString(dst[n:], c.ClientID)
	if err != nil {
		return 0, err
	}
	n += m

	if c.HasUsername {
		m, err = encodeString(dst[n:], c.Username)
		if err != nil {
			return 0, err
		}
		n += m
	}
	if c.HasPassword {
		m, err = encodeString(dst[n:], c.Password)
		if err != nil {
			return 0, err
		}
		n += m
	}

	return n, nil
}

func (c *Connect) Decode(src []byte) (int, error) {
	n, _, rl, err := decodeFixedHeader(src, CONNECT)
	if err != nil {
		return n, err
	}
	body := src[n : n+rl]
	off := 0

	name, m, err := decodeString(body[off:])
	if err != nil {
		return n, err
	}
	if name != protocolName {
		return n, fmt.Errorf("[Connect] unexpected protocol name %q", name)
	}
	off += m

	if len(body)-off < 4 {
		return n, fmt.Errorf("[Connect] truncated variable header")
	}
	level := body[off]
	off++
	if level != protocolLevel {
		return n, fmt.Errorf("[Connect] unsupported protocol level %d", level)
	}

	flags := body[off]
	off++
	if flags&0x01 != 0 {
		return n, fmt.Errorf("[Connect] reserved flag must be zero")
	}
	if flags&0x3C != 0 {
		return n, fmt.Errorf("[Connect] will flags must be zero")
	}
	c.CleanSession = flags&connectFlagCleanSession != 0
	c.HasUsername = flags&connectFlagUsername != 0
	c.HasPassword = flags&connectFlagPassword != 0

	c.KeepAlive = uint16(body[off])<<8 | uint16(body[off+1])
	off += 2

	c.ClientID, m, err = decodeString(body[off:])
	if err != nil {
		return n, err
	}
	off += m

	if c.HasUsername {
		c.Username, m, err = decodeString(body[off:])
		if err != nil {
			return n, err
		}
		off += m
	}
	if c.HasPassword {
		c.Password, m, err = decodeString(body[off:])
		if err != nil {
			return n, err
		}
		off += m
	}

	return n + rl, nil
}

func (c *Connect) String() string {
	return fmt.Sprintf("<ConnectPacket ClientID=%q CleanSession=%v KeepAlive=%d>", c.ClientID, c.CleanSession, c.KeepAlive)
}
