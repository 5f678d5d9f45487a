// Package timeutil provides a testable abstraction over time operations.
package timeutil

import "time"

// Clock provides the current time. Run directories and database rows are
// stamped through a Clock so tests can pin them.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// RunStamp formats t for use in artifact directory names.
func RunStamp(t time.Time) string {
	return t.UTC().Format("20060102_150405")
}
