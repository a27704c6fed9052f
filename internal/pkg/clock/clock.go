package clock

import "time"

// Clock abstracts "now" so time-dependent logic (overdue promotion) stays
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
