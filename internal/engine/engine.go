// Package engine ties C1 through C7 together behind the single mutex
// spec.md §5 requires: the status vector, the reassembly buffer, the
// print-job and paper-in-chute state machines, and their pending timer
// handles are all guarded by one lock. The mutex is never held across a
// call into the transport adapter or into logging.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/nanoptix/paycheck4emu/internal/broadcaster"
	"github.com/nanoptix/paycheck4emu/internal/config"
	"github.com/nanoptix/paycheck4emu/internal/diagnostics"
	"github.com/nanoptix/paycheck4emu/internal/dispatcher"
	"github.com/nanoptix/paycheck4emu/internal/paperchute"
	"github.com/nanoptix/paycheck4emu/internal/printjob"
	"github.com/nanoptix/paycheck4emu/internal/reassembler"
	"github.com/nanoptix/paycheck4emu/internal/status"
	"github.com/nanoptix/paycheck4emu/internal/timer"
	"github.com/nanoptix/paycheck4emu/internal/transport"
)

// Metrics counts engine activity since construction. Not part of
// spec.md's core, but a natural operational surface for a long-running
// emulator process (SPEC_FULL.md §B.1).
type Metrics struct {
	FramesReceived   uint64
	FramerErrors     uint64
	DispatchErrors   uint64
	PrintAccepted    uint64
	PrintRejected    uint64
	StatusFramesSent uint64
}

// Engine is the one shared mutable instance spec.md §5 describes.
type Engine struct {
	mu      sync.Mutex
	running bool

	unitAddress     byte
	softwareVersion string

	vector      status.Vector
	reassembler *reassembler.Reassembler
	chute       *paperchute.Oscillator
	machine     *printjob.Machine
	broadcaster *broadcaster.Broadcaster
	adapter     transport.Adapter
	log         diagnostics.Sink

	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics Metrics
}

func millis(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }

// New builds an Engine from a normalized config.Config (config.Normalize
// must already have run), a transport Adapter, and a logging Sink.
func New(cfg *config.Config, adapter transport.Adapter, log diagnostics.Sink) *Engine {
	e := &Engine{
		adapter:         adapter,
		log:             log,
		unitAddress:     byte(cfg.Emulator.UnitAddress),
		softwareVersion: cfg.Emulator.SoftwareVersion,
		vector:          status.NewVector(),
	}

	t := cfg.Emulator.Timing
	l := cfg.Emulator.Limits

	e.reassembler = reassembler.New(reassembler.Config{
		MinMessageSize:    l.MinMessageSize,
		MaxMessageSize:    l.MaxMessageSize,
		ReassemblyTimeout: millis(t.ReassemblyTimeoutMs),
	})

	sched := timer.Real{}

	e.chute = paperchute.New(paperchute.Config{
		SetDelay:   millis(t.PaperInChuteSetDelayMs),
		ClearDelay: millis(t.PaperInChuteClearDelayMs),
	}, sched, e.timerFire, &e.vector)

	e.machine = printjob.New(printjob.Config{
		PrintStartDelay:      millis(t.PrintStartDelayMs),
		ValidationDelay:      millis(t.ValidationDelayMs),
		BusyStateChangeDelay: millis(t.BusyStateChangeDelayMs),
		TofStateChangeDelay:  millis(t.TofStateChangeDelayMs),
	}, sched, e.timerFire, &e.vector, e.chute)

	e.broadcaster = broadcaster.New(broadcaster.Config{
		Interval:        millis(t.StatusReportingIntervalMs),
		UnitAddress:     e.unitAddress,
		SoftwareVersion: e.softwareVersion,
	}, &e.vector, e.withLock, countingSender{e}, log)

	return e
}

// withLock always acquires the mutex, runs fn, and releases it. Used
// for engine-initiated operations (Deliver, Start, Stop) and for the
// broadcaster's periodic tick, which only runs between Start and Stop.
func (e *Engine) withLock(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

// timerFire is the hook given to C4 and C5: it acquires the mutex, and
// if the engine has been stopped in the meantime, no-ops instead of
// running fn (spec.md §5: "a timer that fires after cancellation MUST
// observe the flag and no-op").
func (e *Engine) timerFire(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	fn()
}

// countingSender wraps the transport adapter so the broadcaster's
// periodic sends tally into Metrics.StatusFramesSent without the
// broadcaster needing to know engine internals. On-demand frames are
// tallied by sendSnapshot.
type countingSender struct{ e *Engine }

func (c countingSender) Send(frame []byte) error {
	err := c.e.adapter.Send(frame)
	if err == nil {
		c.e.withLock(func() { c.e.metrics.StatusFramesSent++ })
	}
	return err
}

// Start places the engine into the running lifecycle state: the
// periodic status ticker begins, and the transport adapter's inbound
// read loop begins delivering bytes to Deliver. Start returns
// immediately; both loops run in background goroutines until Stop.
func (e *Engine) Start(ctx context.Context) {
	e.withLock(func() { e.running = true })

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		e.broadcaster.Run(runCtx)
	}()
	go func() {
		defer e.wg.Done()
		if err := e.adapter.Run(runCtx, e.Deliver); err != nil {
			e.log.Errorf("engine", "transport adapter stopped: %v", err)
		}
	}()
}

// Stop is cooperative (spec.md §5): it clears the running flag under
// the mutex, cancels the broadcaster's ticker and the adapter's read
// loop, destroys any outstanding C4/C5 timers, waits for both
// background goroutines to finish, then returns.
func (e *Engine) Stop() {
	e.withLock(func() { e.running = false })

	if e.cancel != nil {
		e.cancel()
	}

	e.withLock(func() {
		e.machine.Stop()
		e.chute.Stop()
	})

	e.wg.Wait()
}

// Deliver is the C7 inbound sink: the transport adapter calls it with
// each received chunk, of any size and boundary. It feeds the
// reassembler, dispatches any completed frame, and applies C3's
// handlers — all under the mutex. A status-request frame's snapshot is
// taken inside that same critical section so it reflects exactly the
// writes made by frames delivered before it and none made after
// (spec.md §5 ordering guarantee); the frame is encoded and sent only
// after the mutex is released.
func (e *Engine) Deliver(chunk []byte) {
	var pending *status.Snapshot
	var logs []func() // diagnostics, emitted once the mutex is released

	e.withLock(func() {
		if !e.running {
			return
		}
		e.metrics.FramesReceived++

		frames, diags := e.reassembler.Feed(chunk)
		for _, d := range diags {
			d := d
			e.metrics.FramerErrors++
			logs = append(logs, func() { e.log.Warnf("reassembler", "%v", d) })
		}

		for _, frame := range frames {
			cmd, err := dispatcher.Dispatch(frame)
			if err != nil {
				e.metrics.DispatchErrors++
				logs = append(logs, func() { e.log.Warnf("dispatcher", "%v", err) })
				continue
			}

			switch cmd.Kind {
			case dispatcher.KindStatusRequest, dispatcher.KindExtendedStatusRequest:
				snap := e.vector.Snapshot()
				pending = &snap
			case dispatcher.KindClearErrorFlags:
				logs = append(logs, func() { e.log.Debugf("dispatcher", "clear error flags: no-op in current core") })
			case dispatcher.KindPrintTemplate:
				if err := e.machine.Accept(cmd.Print.TemplateID); err != nil {
					e.metrics.PrintRejected++
					logs = append(logs, func() { e.log.Warnf("printjob", "print command dropped: %v", err) })
				} else {
					e.metrics.PrintAccepted++
				}
			}
		}
	})

	for _, log := range logs {
		log()
	}

	if pending != nil {
		e.sendSnapshot(*pending)
	}
}

// sendSnapshot encodes and sends a status.Snapshot already taken under
// the mutex. Called for the on-demand path; the periodic path goes
// through broadcaster.Broadcast instead, which snapshots and sends the
// same way.
func (e *Engine) sendSnapshot(s status.Snapshot) {
	frame := status.Encode(e.unitAddress, e.softwareVersion, s)
	if err := e.adapter.Send(frame); err != nil {
		e.log.Warnf("transport", "status send failed, dropping frame: %v", err)
		return
	}
	e.withLock(func() { e.metrics.StatusFramesSent++ })
}

// Metrics returns a point-in-time copy of the engine's activity
// counters.
func (e *Engine) Metrics() Metrics {
	var m Metrics
	e.withLock(func() { m = e.metrics })
	return m
}

// PrintJobState reports C4's current state, for tests and diagnostics.
func (e *Engine) PrintJobState() printjob.State {
	var s printjob.State
	e.withLock(func() { s = e.machine.State() })
	return s
}

// StatusSnapshot takes a snapshot of the shared status vector under the
// mutex, for tests and diagnostics that want to inspect flags directly
// rather than via a wire-encoded frame.
func (e *Engine) StatusSnapshot() status.Snapshot {
	var s status.Snapshot
	e.withLock(func() { s = e.vector.Snapshot() })
	return s
}
