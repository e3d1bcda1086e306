package diag

import (
	"bytes"
	"reflect"
	"testing"
)

type recorder struct {
	levels []Level
	lines  []string
}

func (r *recorder) Line(l Level, s string) {
	r.levels = append(r.levels, l)
	r.lines = append(r.lines, s)
}

func TestLogger_TagAndFilter(t *testing.T) {
	rec := &recorder{}
	lg := New("bringup", Info, rec)
	lg.Debugf("hidden %d", 1)
	lg.Infof("state %s", "ClaimBus")
	lg.With("swi2c").Warnf("nack at %#x", 0x42)
	lg.Raw(Err, MarkerFatal+" ProgramVoltage")

	want := []string{
		"bringup: state ClaimBus",
		"bringup/swi2c: nack at 0x42",
		"bringup: FATAL ProgramVoltage",
	}
	if !reflect.DeepEqual(rec.lines, want) {
		t.Fatalf("lines %q", rec.lines)
	}
	if !reflect.DeepEqual(rec.levels, []Level{Info, Warn, Err}) {
		t.Fatalf("levels %v", rec.levels)
	}
}

func TestLogger_NilIsSilent(t *testing.T) {
	var lg *Logger
	lg.Infof("x")
	lg.Raw(Err, "x")
	if lg.With("y") != nil {
		t.Fatalf("With on nil logger")
	}
}

func TestWriterSinkAndTee(t *testing.T) {
	var a, b bytes.Buffer
	lg := New("", Debug, Tee{NewWriterSink(&a), nil, NewWriterSink(&b)})
	lg.Raw(Info, MarkerDone)
	if a.String() != "bringup: done\r\n" || a.String() != b.String() {
		t.Fatalf("a=%q b=%q", a.String(), b.String())
	}
}

func TestLevelString(t *testing.T) {
	for l, s := range map[Level]string{Debug: "debug", Info: "info", Warn: "warn", Err: "err", 9: "unknown"} {
		if l.String() != s {
			t.Fatalf("%d -> %q", l, l.String())
		}
	}
}
