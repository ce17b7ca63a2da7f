package client

// nextPacketIDLocked allocates the next outbound packet id, skipping 0 on
// wraparound — packet id 0 is reserved by the protocol and must never be
// assigned. Callers must hold sendMu — the counter is otherwise
// unsynchronized.
func (c *Client) nextPacketIDLocked() uint16 {
	c.packetID++
	if c.packetID == 0 {
		c.packetID = 1
	}
	return c.packetID
}
