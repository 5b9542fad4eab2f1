// Package debug prints diagnostics to stderr when ENTITYLINK_DEBUG is set.
package debug

import (
	"fmt"
	"os"
)

var enabled = os.Getenv("ENTITYLINK_DEBUG") != ""

// Enabled reports whether debug output is on.
func Enabled() bool {
	return enabled
}

// SetEnabled overrides the environment setting (used by --verbose).
func SetEnabled(on bool) {
	enabled = on
}

// Logf writes a formatted line to stderr if debug output is on.
func Logf(format string, args ...interface{}) {
	if !enabled {
		return
	}
	if len(format) == 0 || format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
