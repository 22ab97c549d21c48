// Package printjob implements the print-job state machine (spec.md C4):
// four states, four timed transitions, each destroying its predecessor's
// timer before arming the next. Every exported method must be called by
// a caller already holding the engine's single mutex (spec.md §5); the
// Machine re-enters that mutex itself (via the withLock hook) before
// applying a timer-fired transition.
package printjob

import (
	"errors"
	"time"

	"github.com/nanoptix/paycheck4emu/internal/paperchute"
	"github.com/nanoptix/paycheck4emu/internal/status"
	"github.com/nanoptix/paycheck4emu/internal/timer"
)

// State is one of the four print-job states (spec.md §4.4).
type State int

const (
	IdleTOF State = iota
	BusyNotTOF
	BusyValDone
	IdleNotTOF
)

func (s State) String() string {
	switch s {
	case IdleTOF:
		return "IdleTOF"
	case BusyNotTOF:
		return "BusyNotTOF"
	case BusyValDone:
		return "BusyValDone"
	case IdleNotTOF:
		return "IdleNotTOF"
	default:
		return "Unknown"
	}
}

// ErrNotAccepting is returned by Accept when the machine is not in
// IdleTOF, or a timer from a just-accepted job is still pending the
// IdleTOF->BusyNotTOF transition (spec.md §4.3's acceptance gate).
var ErrNotAccepting = errors.New("print job not accepting: busy or acceptance gap")

// Config holds the four canonical interval defaults (spec.md §4.4), all
// configurable per deployment.
type Config struct {
	PrintStartDelay      time.Duration
	ValidationDelay      time.Duration
	BusyStateChangeDelay time.Duration
	TofStateChangeDelay  time.Duration
}

// DefaultConfig returns spec.md's canonical defaults.
func DefaultConfig() Config {
	return Config{
		PrintStartDelay:      3000 * time.Millisecond,
		ValidationDelay:      18000 * time.Millisecond,
		BusyStateChangeDelay: 20000 * time.Millisecond,
		TofStateChangeDelay:  4000 * time.Millisecond,
	}
}

// Machine is the C4 state machine. It owns exactly one pending timer at a
// time and mutates the shared status.Vector and arms the paper-in-chute
// oscillator (C5) as transitions require.
type Machine struct {
	cfg       Config
	scheduler timer.Scheduler
	withLock  func(func())
	vector    *status.Vector
	chute     *paperchute.Oscillator

	state               State
	lastPrintTemplateID byte
	cancelPending       timer.CancelFunc
}

// New builds a Machine starting in IdleTOF with AtTopOfForm clear
// (spec.md §4.4: "The process starts in IdleTOF with AtTopOfForm clear").
// withLock must acquire the engine's mutex, run fn, then release it; New
// never calls it itself, only the scheduler callbacks do.
func New(cfg Config, scheduler timer.Scheduler, withLock func(func()), vector *status.Vector, chute *paperchute.Oscillator) *Machine {
	return &Machine{
		cfg:       cfg,
		scheduler: scheduler,
		withLock:  withLock,
		vector:    vector,
		chute:     chute,
		state:     IdleTOF,
	}
}

// State reports the machine's current state.
func (m *Machine) State() State { return m.state }

// Accept implements spec.md §4.3: T0, the IdleTOF-stay transition that
// stashes templateID and arms PrintStartDelay. Rejected if the machine is
// not IdleTOF, or a timer is already pending from a prior acceptance that
// has not yet become visible as Busy.
func (m *Machine) Accept(templateID byte) error {
	if m.state != IdleTOF || m.cancelPending != nil {
		return ErrNotAccepting
	}
	m.lastPrintTemplateID = templateID
	m.arm(m.cfg.PrintStartDelay, m.fireT1)
	return nil
}

// Stop cancels any pending timer without changing state, for engine
// shutdown (spec.md §5 "cancels all outstanding timers").
func (m *Machine) Stop() {
	if m.cancelPending != nil {
		m.cancelPending()
		m.cancelPending = nil
	}
}

func (m *Machine) arm(d time.Duration, fire func()) {
	m.cancelPending = m.scheduler.AfterFunc(d, func() {
		m.withLock(fire)
	})
}

// fireT1: IdleTOF -> BusyNotTOF.
func (m *Machine) fireT1() {
	m.cancelPending = nil
	m.vector.SetBusy(true)
	m.vector.SetValidationDone(false)
	m.vector.SetAtTopOfForm(false)
	m.state = BusyNotTOF
	m.arm(m.cfg.ValidationDelay, m.fireT2)
}

// fireT2: BusyNotTOF -> BusyValDone. Arms both the main machine's next
// timer and the paper-in-chute oscillator's set timer (spec.md §4.4 T2).
func (m *Machine) fireT2() {
	m.cancelPending = nil
	m.vector.SetValidationDone(true)
	m.state = BusyValDone
	m.chute.ArmSet()
	m.arm(m.cfg.BusyStateChangeDelay, m.fireT3)
}

// fireT3: BusyValDone -> IdleNotTOF. Publishes the just-completed
// template id into the status vector (spec.md §4.4 invariant: advances
// exactly here, not at T1).
func (m *Machine) fireT3() {
	m.cancelPending = nil
	m.vector.SetBusy(false)
	m.vector.LastTemplateID = m.lastPrintTemplateID
	m.vector.StatusReportTemplateID = m.lastPrintTemplateID
	m.state = IdleNotTOF
	m.arm(m.cfg.TofStateChangeDelay, m.fireT4)
}

// fireT4: IdleNotTOF -> IdleTOF. The only transition that ever sets
// AtTopOfForm.
func (m *Machine) fireT4() {
	m.cancelPending = nil
	m.vector.SetAtTopOfForm(true)
	m.state = IdleTOF
}
