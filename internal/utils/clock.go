package utils

import "time"

// Clock is the source of "now" for records that carry a timestamp.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant. Used by tests.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.At
}

func (c *FixedClock) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}

// DateOnly truncates t to midnight of its calendar day, keeping the location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
