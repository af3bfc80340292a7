// Package clog is a thin logging wrapper: fmt.Fprintf to a
// configurable io.Writer, no structured logging library. Every
// diagnostic and stage message writes straight to an io.Writer with
// fmt.Fprintf; this package gives that pattern a name and a fixed
// prefix instead of repeating it at every call site.
package clog

import (
	"fmt"
	"io"
)

// Logger writes prefixed, line-oriented messages to an underlying
// writer.
type Logger struct {
	w      io.Writer
	prefix string
}

// New creates a Logger writing to w with the given prefix (e.g.
// "statimc").
func New(w io.Writer, prefix string) *Logger {
	return &Logger{w: w, prefix: prefix}
}

// Infof writes an informational line.
func (l *Logger) Infof(format string, args ...any) {
	fmt.Fprintf(l.w, "%s: "+format+"\n", append([]any{l.prefix}, args...)...)
}

// Errorf writes an error line.
func (l *Logger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.w, "%s: error: "+format+"\n", append([]any{l.prefix}, args...)...)
}

// Stage announces the start of a named pipeline stage, used by
// cmd/statimc's dump flags to label each section of output.
func (l *Logger) Stage(name string) {
	fmt.Fprintf(l.w, "%s: -- %s --\n", l.prefix, name)
}
