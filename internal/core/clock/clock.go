package clock

import "time"

// Clock provides the current time. Engine components take it as a dependency
// so time-sensitive behaviour (weekend surge pricing, invoice timestamps) can
// be pinned in tests.
type Clock interface {
	Now() time.Time
}

// Real is a Clock backed by the system clock.
type Real struct{}

// Now returns the current system time.
func (Real) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that always returns the same instant.
type Fixed struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return f.Instant
}
