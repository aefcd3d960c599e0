package clock

import "time"

// Clock abstracts "now" so date-window calculations (attendance aggregation,
// payroll working-day counts) stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// New returns a Clock backed by the system time in UTC.
func New() Clock {
	return realClock{}
}

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
