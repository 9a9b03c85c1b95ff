package logger

import (
	"strings"
	"testing"
)

func TestDebugSilentByDefault(t *testing.T) {
	Reset()
	defer Reset()

	var buf strings.Builder
	Init(Options{Output: &buf})
	Debug("command blocked", "command", "rm -rf /")

	if buf.Len() != 0 {
		t.Errorf("non-verbose logger wrote: %q", buf.String())
	}
}

func TestDebugVerbose(t *testing.T) {
	Reset()
	defer Reset()

	var buf strings.Builder
	Init(Options{Verbose: true, Output: &buf})
	Debug("command blocked", "reason", "matches dangerous pattern")

	out := buf.String()
	if !strings.Contains(out, "command blocked") || !strings.Contains(out, "matches dangerous pattern") {
		t.Errorf("debug output = %q", out)
	}
}

func TestDebugBeforeInit(t *testing.T) {
	Reset()
	defer Reset()

	// Must be a silent no-op, not a panic.
	Debug("no logger yet")
}

func TestInitOnce(t *testing.T) {
	Reset()
	defer Reset()

	var first, second strings.Builder
	Init(Options{Verbose: true, Output: &first})
	Init(Options{Verbose: true, Output: &second})
	Debug("routed")

	if second.Len() != 0 {
		t.Error("second Init took effect")
	}
	if !strings.Contains(first.String(), "routed") {
		t.Error("first Init ignored")
	}
}
