// Package broadcaster implements the status broadcaster (spec.md C6): a
// periodic ticker plus on-demand emission of the extended-status frame.
// Both trigger paths funnel through Broadcast, which snapshots the status
// vector under the engine's mutex and serializes outside it, so the
// mutex is never held across a transport call (spec.md §5).
package broadcaster

import (
	"context"
	"time"

	"github.com/nanoptix/paycheck4emu/internal/diagnostics"
	"github.com/nanoptix/paycheck4emu/internal/status"
)

// Sender is the C7 outbound sink: send a complete frame, report an error
// if the transport could not accept it.
type Sender interface {
	Send(frame []byte) error
}

// Config holds the frame's fixed fields and the periodic tick interval.
type Config struct {
	Interval        time.Duration
	UnitAddress     byte
	SoftwareVersion string
}

// DefaultConfig returns spec.md's canonical defaults.
func DefaultConfig() Config {
	return Config{
		Interval:        2000 * time.Millisecond,
		UnitAddress:     0,
		SoftwareVersion: "PAY-6.22B",
	}
}

// Broadcaster is C6.
type Broadcaster struct {
	cfg      Config
	vector   *status.Vector
	withLock func(func())
	sender   Sender
	log      diagnostics.Sink
}

// New builds a Broadcaster. withLock must acquire the engine's mutex,
// run the given function, then release it.
func New(cfg Config, vector *status.Vector, withLock func(func()), sender Sender, log diagnostics.Sink) *Broadcaster {
	return &Broadcaster{
		cfg:      cfg,
		vector:   vector,
		withLock: withLock,
		sender:   sender,
		log:      log,
	}
}

// Broadcast takes a self-consistent snapshot of the status vector under
// the engine's mutex, serializes it outside the mutex, and hands it to
// the sender. No buffering, no retry: a send error is logged and the
// frame is dropped (spec.md §4.6).
func (b *Broadcaster) Broadcast() {
	var snap status.Snapshot
	b.withLock(func() {
		snap = b.vector.Snapshot()
	})

	frame := status.Encode(b.cfg.UnitAddress, b.cfg.SoftwareVersion, snap)

	if err := b.sender.Send(frame); err != nil {
		b.log.Warnf("broadcaster", "status send failed, dropping frame: %v", err)
	}
}

// Run drives the periodic tick until ctx is cancelled. One goroutine,
// no overlap: Broadcast runs on the loop goroutine, so a tick that
// lands while a prior Broadcast is still running is handled once it
// returns, and any further ticks in that time are dropped by the
// ticker.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Broadcast()
		}
	}
}
