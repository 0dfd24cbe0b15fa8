// Package clock supplies the time source for the rollover and grace
// logic. Everything downstream takes a Clock so tests can walk a fake
// one across hour and midnight boundaries.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock in local time, which is the timezone
// all day keys and due hours are interpreted in.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock stands still until told otherwise. Safe for concurrent use
// so engine tests can tick from one goroutine and read from another.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Set jumps to an absolute instant, e.g. past midnight.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// Advance moves forward relatively, which reads better in tests that
// step minute by minute through a grace window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
