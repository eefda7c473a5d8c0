package debuglog

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintfDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	l := New(false)
	l.w = &buf
	l.Printf("should not appear %d", 1)
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestPrintfEnabledTagsRunID(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.w = &buf
	l.color = false
	l.Printf("lookup state=%s", "indexed")

	out := buf.String()
	if !strings.Contains(out, "lookup state=indexed") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, l.runID) {
		t.Errorf("missing run id %q: %q", l.runID, out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Printf("no panic")
	if l.Enabled() {
		t.Error("nil logger reports enabled")
	}
}
