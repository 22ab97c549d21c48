package diagnostics

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestNopSinkDiscardsEverything(t *testing.T) {
	// No assertions beyond "does not panic" — NopSink has no observable
	// effect by design.
	NopSink.Debugf("x", "hello")
	NopSink.Warnf("x", "hello %d", 1)
	NopSink.Errorf("x", "hello")
}

func TestSlogSinkIncludesComponentAndLevel(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()

	sink := NewSlogSink(w, slog.LevelWarn, FormatText)
	sink.Warnf("transport", "send failed: %v", "timeout")
	w.Close()

	var buf bytes.Buffer
	buf.ReadFrom(r)
	out := buf.String()

	if !strings.Contains(out, "component=transport") {
		t.Fatalf("log output missing component tag: %q", out)
	}
	if !strings.Contains(out, "send failed: timeout") {
		t.Fatalf("log output missing formatted message: %q", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Fatalf("log output missing level: %q", out)
	}
}

func TestSlogSinkRespectsLevelFloor(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()

	sink := NewSlogSink(w, slog.LevelWarn, FormatText)
	sink.Debugf("dispatcher", "should not appear")
	w.Close()

	var buf bytes.Buffer
	buf.ReadFrom(r)
	if buf.Len() != 0 {
		t.Fatalf("expected no output below the level floor, got %q", buf.String())
	}
}
