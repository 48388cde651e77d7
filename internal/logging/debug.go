package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var (
	// output is where debug lines go; stdout belongs to command output
	output  io.Writer = os.Stderr
	verbose atomic.Bool
)

// SetVerbose forces debug output on regardless of TM_DEBUG
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// DebugEnabled returns true if debug mode is enabled via TM_DEBUG or --verbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("TM_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, args...)
	}
}
