// Package clock abstracts wall-clock access so that services and the
// dispatcher can be tested against a controlled notion of "now".
package clock

import "time"

// Clock supplies the current time. Production code uses System; tests
// substitute a Fixed clock to pin scheduling decisions to a known instant.
type Clock interface {
	Now() time.Time
}

// systemClock delegates to time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the real wall clock, in UTC.
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single instant. Advance moves it forward,
// which is enough for exercising due-date boundaries in tests.
type Fixed struct {
	now time.Time
}

// NewFixed returns a Fixed clock reporting the given instant in UTC.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now.UTC()}
}

func (f *Fixed) Now() time.Time {
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// Set pins the clock to a new instant.
func (f *Fixed) Set(now time.Time) {
	f.now = now.UTC()
}
