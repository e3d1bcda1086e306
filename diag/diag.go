// Package diag is the bring-up path's line logger. Output goes to one or more
// sinks (a serial console, the kernel ring buffer, a test buffer); each line
// is prefixed with the component tag so a boot monitor can grep for it.
package diag

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Level mirrors the syslog priorities used by kernel logging.
type Level uint8

const (
	Debug Level = iota
	Info
	Warn
	Err
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Err:
		return "err"
	}
	return "unknown"
}

// Marker lines emitted once per bring-up.
const (
	MarkerDone  = "bringup: done"
	MarkerFatal = "bringup: FATAL"
)

// Sink receives formatted lines (without trailing newline).
type Sink interface {
	Line(l Level, s string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(l Level, s string)

func (f SinkFunc) Line(l Level, s string) { f(l, s) }

// WriterSink writes each line followed by "\r\n" so it renders on raw
// serial consoles.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{w: w} }

func (s *WriterSink) Line(_ Level, line string) {
	s.mu.Lock()
	io.WriteString(s.w, line)
	io.WriteString(s.w, "\r\n")
	s.mu.Unlock()
}

// Tee fans a line out to every sink.
type Tee []Sink

func (t Tee) Line(l Level, s string) {
	for _, k := range t {
		if k != nil {
			k.Line(l, s)
		}
	}
}

// Discard drops everything.
var Discard Sink = SinkFunc(func(Level, string) {})

// Logger tags and filters lines.
type Logger struct {
	tag  string
	min  Level
	sink Sink
}

// New returns a logger writing lines at or above min to sink.
func New(tag string, min Level, sink Sink) *Logger {
	if sink == nil {
		sink = Discard
	}
	return &Logger{tag: tag, min: min, sink: sink}
}

// With returns a logger with tag appended ("bringup" -> "bringup/swi2c").
func (lg *Logger) With(tag string) *Logger {
	if lg == nil {
		return nil
	}
	t := tag
	if lg.tag != "" {
		t = lg.tag + "/" + tag
	}
	return &Logger{tag: t, min: lg.min, sink: lg.sink}
}

func (lg *Logger) Debugf(format string, a ...any) { lg.logf(Debug, format, a...) }
func (lg *Logger) Infof(format string, a ...any)  { lg.logf(Info, format, a...) }
func (lg *Logger) Warnf(format string, a ...any)  { lg.logf(Warn, format, a...) }
func (lg *Logger) Errf(format string, a ...any)   { lg.logf(Err, format, a...) }

// Raw emits s verbatim (no tag) at level l. Used for the marker lines.
func (lg *Logger) Raw(l Level, s string) {
	if lg == nil || l < lg.min {
		return
	}
	lg.sink.Line(l, s)
}

func (lg *Logger) logf(l Level, format string, a ...any) {
	if lg == nil || l < lg.min {
		return
	}
	var b strings.Builder
	if lg.tag != "" {
		b.WriteString(lg.tag)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, format, a...)
	lg.sink.Line(l, b.String())
}
