package packet

import "fmt"

// Subscribe carries topic-filter/requested-QoS pairs. This client always
// encodes exactly one pair per SUBSCRIBE, but Decode accepts any number
// (useful for tests and for a future broker-side decoder).
type Subscribe struct {
	PacketID uint16
	Filters  []SubscribeFilter
}

// SubscribeFilter is one (topic-filter, requested-qos) pair.
type SubscribeFilter struct {
	Topic string
	QoS   byte
}

func (s *Subscribe) Type() Type { return SUBSCRIBE }

func (s *Subscribe) Len() int {
	rl := 2
	for _, f := range s.Filters {
		rl += stringLen(f.Topic) + 1
	}
	return fixedHeaderLen(rl) + rl
}

func (s *Subscribe) Encode(dst []byte) (int, error) {
	if len(s.Filters) == 0 {
		return 0, fmt.Errorf("[Subscribe] at least one filter required")
	}
	rl := 2
	for _, f := range s.Filters {
		rl += stringLen(f.Topic) + 1
	}

	n, err := encodeFixedHeader(dst, SUBSCRIBE, 0, rl)
	if err != nil {
		return 0, err
	}

	if len(dst) < n+2 {
		return 0, fmt.Errorf("[Subscribe] insufficient buffer for packet id")
	}
	dst[n] = byte(s.PacketID >> 8)
	dst[n+1] = byte(s.PacketID)
	n += 2

	for _, f := range s.Filters {
		m, err := encodeString(dst[n:], f.Topic)
		if err != nil {
			return 0, err
		}
		n += m
		if len(dst) < n+1 {
			return 0, fmt.Errorf("[Subscribe] insufficient buffer for requested qos")
		}
		dst[n] = f.QoS
		n++
	}

	return n, nil
}

func (s *Subscribe) Decode(src []byte) (int, error) {
	n, flags, rl, err := decodeFixedHeader(src, SUBSCRIBE)
	if err != nil {
		return n, err
	}
	if flags != 0x02 {
		return n, fmt.Errorf("[Subscribe] fixed header flags must be 0010, got %04b", flags)
	}
	body := src[n : n+rl]
	if len(body) < 2 {
		return n, fmt.Errorf("[Subscribe] truncated packet id")
	}
	s.PacketID = uint16(body[0])<<8 | uint16(body[1])
	off := 2

	s.Filters = s.Filters[:0]
	for off < len(body) {
		topic, m, err := decodeString(body[off:])
		if err != nil {
			return n, err
		}
		off += m
		if off >= len(body) {
			return n, fmt.Errorf("[Subscribe] missing requested qos")
		}
		s.Filters = append(s.Filters, SubscribeFilter{Topic: topic, QoS: body[off]})
		off++
	}

	return n + rl, nil
}

func (s *Subscribe) String() string {
	return fmt.Sprintf("<SubscribePacket PacketID=%d Filters=%d>", s.PacketID, len(s.Filters))
}
