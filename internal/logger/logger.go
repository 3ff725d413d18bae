// Package logger provides the opt-in verbose output used while loading,
// determinizing and generating code.
package logger

import (
	"fmt"
	"io"
	"os"
)

// Logger prints verbose diagnostics when enabled. A nil *Logger is valid
// and discards everything.
type Logger struct {
	enabled bool
	out     io.Writer
}

// New creates a logger writing to stderr.
func New(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// Discard returns a disabled logger.
func Discard() *Logger {
	return New(false)
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l.Enabled() {
		fmt.Fprintf(l.out, "[fagen] "+format+"\n", args...)
	}
}

// Warn prints a formatted warning if verbose mode is enabled.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.Enabled() {
		fmt.Fprintf(l.out, "[fagen] warning: "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l.Enabled() {
		fmt.Fprintf(l.out, "\n[fagen] === %s ===\n", name)
	}
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}
