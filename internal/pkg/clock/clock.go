package clock

import "time"

// Clock provides the current time. Services take a Clock instead of calling
// time.Now directly so that time-crossing rules can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}

// Fixed returns a Clock that always reports t. Intended for tests.
func Fixed(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

// FixedClock is a settable Clock for tests.
type FixedClock struct {
	t time.Time
}

func (f *FixedClock) Now() time.Time {
	return f.t
}

// Set moves the clock to t.
func (f *FixedClock) Set(t time.Time) {
	f.t = t
}

// Advance moves the clock forward by d.
func (f *FixedClock) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}
