package headless

import (
	"sync"
	"time"
)

// Clock is a manually advanced clock.
//
// Unlike the wall clock it can be moved backwards with Set, which is how
// tests exercise non-monotonic time.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock reading start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current reading.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t, which may be in the past.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
