// Package paperchute implements the paper-in-chute oscillator (spec.md
// C5): a two-stage one-shot timer sequence armed on entering BusyValDone,
// mutating only the PaperInChute bit of the shared status vector.
package paperchute

import (
	"time"

	"github.com/nanoptix/paycheck4emu/internal/status"
	"github.com/nanoptix/paycheck4emu/internal/timer"
)

// Config holds the oscillator's two one-shot delays (spec.md §4.5).
type Config struct {
	SetDelay   time.Duration
	ClearDelay time.Duration
}

// DefaultConfig returns spec.md's canonical defaults.
func DefaultConfig() Config {
	return Config{
		SetDelay:   2000 * time.Millisecond,
		ClearDelay: 10000 * time.Millisecond,
	}
}

// Oscillator is C5. Like printjob.Machine, every exported method must be
// called under the engine's mutex; the internal callbacks re-enter it via
// withLock before touching state.
type Oscillator struct {
	cfg       Config
	scheduler timer.Scheduler
	withLock  func(func())
	vector    *status.Vector

	cancelPending timer.CancelFunc
}

// New builds an Oscillator that has not yet been armed.
func New(cfg Config, scheduler timer.Scheduler, withLock func(func()), vector *status.Vector) *Oscillator {
	return &Oscillator{
		cfg:       cfg,
		scheduler: scheduler,
		withLock:  withLock,
		vector:    vector,
	}
}

// ArmSet starts the oscillator: SetDelay, then PaperInChute set,
// ClearDelay, then PaperInChute clear. If an earlier oscillation from a
// prior print job is still mid-flight, its outstanding timer is
// destroyed first (spec.md §4.5 concurrency note: this can only happen
// via the T4->T0 restart path, never while C4 is non-idle).
func (o *Oscillator) ArmSet() {
	if o.cancelPending != nil {
		o.cancelPending()
		o.cancelPending = nil
	}
	o.arm(o.cfg.SetDelay, o.fireSet)
}

// Stop cancels any pending timer without touching PaperInChute, for
// engine shutdown.
func (o *Oscillator) Stop() {
	if o.cancelPending != nil {
		o.cancelPending()
		o.cancelPending = nil
	}
}

func (o *Oscillator) arm(d time.Duration, fire func()) {
	o.cancelPending = o.scheduler.AfterFunc(d, func() {
		o.withLock(fire)
	})
}

func (o *Oscillator) fireSet() {
	o.cancelPending = nil
	o.vector.SetPaperInChute(true)
	o.arm(o.cfg.ClearDelay, o.fireClear)
}

func (o *Oscillator) fireClear() {
	o.cancelPending = nil
	o.vector.SetPaperInChute(false)
}
