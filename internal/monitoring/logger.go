// Package monitoring holds the diagnostic logger shared by the analysis
// pipeline and its front ends.
package monitoring

import (
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or the CLI -quiet flag can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Stage logs the start of a pipeline stage and returns a func that logs
// its completion with the elapsed time. Use as `defer monitoring.Stage("x")()`.
func Stage(name string) func() {
	start := time.Now()
	Logf("%s: started", name)
	return func() {
		Logf("%s: done in %s", name, time.Since(start).Round(time.Microsecond))
	}
}
