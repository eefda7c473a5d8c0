// Package debuglog writes diagnostic lines to stderr. Stdout belongs to
// the hook protocol and must never receive log output, so the logger has
// no stdout mode at all.
package debuglog

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// Logger tags each line with a short per-invocation run id so lines from
// concurrent hook invocations can be told apart in a shared terminal.
type Logger struct {
	w       io.Writer
	enabled bool
	runID   string
	color   bool
}

// New returns a stderr logger. When enabled is false every call is a
// no-op.
func New(enabled bool) *Logger {
	return &Logger{
		w:       os.Stderr,
		enabled: enabled,
		runID:   uuid.NewString()[:8],
		color:   isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Printf writes one formatted line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	prefix := "searchlight[" + l.runID + "] "
	if l.color {
		prefix = "\x1b[2m" + prefix + "\x1b[0m"
	}
	fmt.Fprintf(l.w, prefix+format+"\n", args...)
}

// Enabled reports whether the logger writes anything.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}
