// Package bootmon watches a console stream for the bring-up marker lines.
package bootmon

import (
	"bufio"
	"io"
	"strings"

	"bringup-go/diag"
)

type Status uint8

const (
	Unknown Status = iota
	Done
	Fatal
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case Fatal:
		return "fatal"
	}
	return "unknown"
}

// ExitCode maps a status to the monitor's process exit code. Timeouts are
// decided by the caller and use ExitTimeout.
func (s Status) ExitCode() int {
	switch s {
	case Done:
		return 0
	case Fatal:
		return 2
	}
	return ExitTimeout
}

const ExitTimeout = 3

// Result is the first marker seen.
type Result struct {
	Status Status
	Line   string // the marker line, console prefixes included
	Reason string // text after the fatal marker
}

// Watch copies r to echo line by line (echo may be nil) until a marker line
// appears. It returns io.ErrUnexpectedEOF if the stream ends first.
func Watch(r io.Reader, echo io.Writer) (Result, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if echo != nil {
			io.WriteString(echo, line+"\n")
		}
		if res, ok := Match(line); ok {
			return res, nil
		}
	}
	if err := sc.Err(); err != nil {
		return Result{}, err
	}
	return Result{}, io.ErrUnexpectedEOF
}

// Match classifies one console line. Markers may be preceded by a kernel
// timestamp or tag.
func Match(line string) (Result, bool) {
	if i := strings.Index(line, diag.MarkerFatal); i >= 0 {
		reason := strings.TrimSpace(line[i+len(diag.MarkerFatal):])
		return Result{Status: Fatal, Line: line, Reason: reason}, true
	}
	if strings.HasSuffix(strings.TrimSpace(line), diag.MarkerDone) {
		return Result{Status: Done, Line: line}, true
	}
	return Result{}, false
}
