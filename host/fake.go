package host

import (
	"context"
	"sync"
	"time"
)

// FakeClock is a manually-advanced Clock for deterministic keepalive and
// reconnect tests: tests call Advance instead of sleeping real wall time.
type FakeClock struct {
	mu  sync.Mutex
	now uint32
}

// NewFakeClock returns a FakeClock starting at tick 0.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

func (c *FakeClock) NowMS() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep on a FakeClock never blocks on d; tests drive time explicitly with
// Advance, so Sleep returns immediately and the reader loop continues.
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) {
}

// Advance moves the fake clock forward by d, returning the new tick value.
func (c *FakeClock) Advance(d time.Duration) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += uint32(d.Milliseconds())
	return c.now
}
