// Package diagnostics carries the engine's logging collaborator (spec.md
// §7): every diagnostic — framer errors, parser errors, state-machine
// guard failures, transport errors — flows out through an injected Sink,
// never a package-global logger, so tests can swap in a silent or
// capturing double.
package diagnostics

import (
	"fmt"
	"log/slog"
	"os"
)

// Sink is the logging collaborator every component depends on.
// component names the emitting subsystem ("reassembler", "dispatcher",
// "printjob", "broadcaster", "transport", ...) for filtering downstream.
type Sink interface {
	Debugf(component, format string, args ...any)
	Warnf(component, format string, args ...any)
	Errorf(component, format string, args ...any)
}

// Format selects the slog handler used by NewSlogSink.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// SlogSink is the default Sink, backed by log/slog.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink builds a SlogSink writing to w at the given level and
// format.
func NewSlogSink(w *os.File, level slog.Level, format Format) *SlogSink {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogSink{logger: slog.New(handler)}
}

func (s *SlogSink) Debugf(component, format string, args ...any) {
	s.logger.Debug(sprintf(format, args...), "component", component)
}

func (s *SlogSink) Warnf(component, format string, args ...any) {
	s.logger.Warn(sprintf(format, args...), "component", component)
}

func (s *SlogSink) Errorf(component, format string, args ...any) {
	s.logger.Error(sprintf(format, args...), "component", component)
}

// nopSink discards everything. Used by tests and by any caller that
// genuinely wants silence rather than a capturing double.
type nopSink struct{}

// NopSink is a Sink that discards every call.
var NopSink Sink = nopSink{}

func (nopSink) Debugf(string, string, ...any) {}
func (nopSink) Warnf(string, string, ...any)  {}
func (nopSink) Errorf(string, string, ...any) {}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
