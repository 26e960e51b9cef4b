// Package debug provides a process-wide toggle gating the diagnostic
// output of the module.
//
// Debug mode is enabled by setting the COLUMNIO_DEBUG environment variable
// to a non-empty value, or programmatically with Toggle.
package debug

import (
	"log"
	"os"
	"sync/atomic"
)

var enabled int32

func init() {
	if os.Getenv("COLUMNIO_DEBUG") != "" {
		Toggle(true)
	}
}

// Toggle turns debug mode on or off.
func Toggle(on bool) {
	val := int32(0)
	if on {
		val = 1
	}
	atomic.StoreInt32(&enabled, val)
}

// Enabled returns true if debug mode is on.
func Enabled() bool {
	return atomic.LoadInt32(&enabled) == 1
}

// Do executes a function if debug mode is on, usually for side effects.
func Do(f func()) {
	if Enabled() {
		f()
	}
}

// Format writes a log line to stderr if debug mode is on.
func Format(format string, args ...interface{}) {
	if Enabled() {
		log.Printf(format, args...)
	}
}
