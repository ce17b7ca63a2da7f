package packet

import "fmt"

const (
	publishFlagRetain = 0x01
	publishFlagQoSMask = 0x06
	publishFlagQoSShift = 1
	publishFlagDup     = 0x08
)

// Publish carries application data. QoS 2 is rejected by Encode: this core
// is a QoS 0/1 sender only.
type Publish struct {
	Topic    string
	Payload  []byte
	QoS      byte
	Retain   bool
	Dup      bool
	PacketID uint16
}

func (p *Publish) Type() Type { return PUBLISH }

func (p *Publish) Len() int {
	rl := stringLen(p.Topic) + len(p.Payload)
	if p.QoS > 0 {
		rl += 2
	}
	return fixedHeaderLen(rl) + rl
}

func (p *Publish) Encode(dst []byte) (int, error) {
	if p.QoS > 1 {
		return 0, fmt.Errorf("[Publish] qos %d not supported", p.QoS)
	}

	rl := stringLen(p.Topic) + len(p.Payload)
	if p.QoS > 0 {
		rl += 2
	}

	var flags byte
	if p.Retain {
		flags |= publishFlagRetain
	}
	flags |= (p.QoS << publishFlagQoSShift) & publishFlagQoSMask
	if p.Dup {
		flags |= publishFlagDup
	}

	n, err := encodeFixedHeader(dst, PUBLISH, flags, rl)
	if err != nil {
		return 0, err
	}

	m, err := encodeString(dst[n:], p.Topic)
	if err != nil {
		return 0, err
	}
	n += m

	if p.QoS > 0 {
		if len(dst) < n+2 {
			return 0, fmt.Errorf("[Publish] insufficient buffer for packet id")
		}
		dst[n] = byte(p.PacketID >> 8)
		dst[n+1] = byte(p.PacketID)
		n += 2
	}

	if len(dst) < n+len(p.Payload) {
		return 0, fmt.Errorf("[Publish] insufficient buffer for payload")
	}
	n += copy(dst[n:], p.Payload)

	return n, nil
}

func (p *Publish) Decode(src []byte) (int, error) {
	n, flags, rl, err := decodeFixedHeader(src, PUBLISH)
	if err != nil {
		return n, err
	}
	body := src[n : n+rl]
	off := 0

	p.Retain = flags&publishFlagRetain != 0
	p.QoS = (flags & publishFlagQoSMask) >> publishFlagQoSShift
	p.Dup = flags&publishFlagDup != 0
	if p.QoS > 2 {
		return n, fmt.Errorf("[Publish] invalid qos %d", p.QoS)
	}

	topic, tn, err := decodeString(body[off:])
	if err != nil {
		return n, err
	}
	p.Topic = topic
	off += tn

	if p.QoS > 0 {
		if len(body)-off < 2 {
			return n, fmt.Errorf("[Publish] truncated packet id")
		}
		p.PacketID = uint16(body[off])<<8 | uint16(body[off+1])
		off += 2
	} else {
		p.PacketID = 0
	}

	p.Payload = append([]byte(nil), body[off:]...)

	return n + rl, nil
}

func (p *Publish) String() string {
	return fmt.Sprintf("<PublishPacket Topic=%q QoS=%d Dup=%v Retain=%v PacketID=%d Len=%d>",
		p.Topic, p.QoS, p.Dup, p.Retain, p.PacketID, len(p.Payload))
}
