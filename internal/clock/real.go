package clock

import "time"

// RealClock implements Clock using actual system time. It is stateless and
// safe for concurrent use, so the zero value is ready to go.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }

// Since returns the duration elapsed since t.
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }
