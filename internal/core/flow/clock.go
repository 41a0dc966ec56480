package flow

import "time"

// Clock supplies the current time. All duration math in the state machine
// takes two readings and subtracts, so tests can drive it with a fake.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
