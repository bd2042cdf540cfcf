package testfixtures

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/room-booking/internal/booking"
)

// referenceTime is a Wednesday morning, so the next Monday and Saturday are
// both strictly in the future.
var referenceTime = time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns the calendar date of ReferenceTime.
func ReferenceDate() booking.Date {
	return booking.DateOf(referenceTime)
}

// NextWeekday returns the first date strictly after from that falls on day.
func NextWeekday(from booking.Date, day time.Weekday) booking.Date {
	d := from.AddDays(1)
	for d.Weekday() != day {
		d = d.AddDays(1)
	}
	return d
}

// Clock provides a controllable time source for tests.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock initialised to the supplied time. When start is the
// zero value, the shared ReferenceTime is used.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now as a function suitable for dependency injection.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Today returns the calendar date the clock currently points at.
func (c *Clock) Today() booking.Date {
	return booking.DateOf(c.Now())
}

// Set updates the clock to the provided time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// AdvanceDays moves the clock forward by whole days and returns the new date.
func (c *Clock) AdvanceDays(n int) booking.Date {
	c.mu.Lock()
	c.current = c.current.AddDate(0, 0, n)
	updated := c.current
	c.mu.Unlock()
	return booking.DateOf(updated)
}

// IDGenerator produces deterministic identifiers for tests.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewIDGenerator constructs a generator that yields identifiers with the given
// prefix. When prefix is empty, "id" is used.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s-%d", g.prefix, g.counter)
}

// NextFunc exposes Next as a function suitable for dependency injection.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}
