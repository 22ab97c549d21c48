package printjob

import (
	"testing"
	"time"

	"github.com/nanoptix/paycheck4emu/internal/paperchute"
	"github.com/nanoptix/paycheck4emu/internal/status"
	"github.com/nanoptix/paycheck4emu/internal/timer"
)

func noLock(fn func()) { fn() }

func newMachine() (*Machine, *timer.Fake, *status.Vector) {
	v := status.NewVector()
	f := &timer.Fake{}
	chute := paperchute.New(paperchute.DefaultConfig(), f, noLock, &v)
	cfg := Config{
		PrintStartDelay:      1 * time.Millisecond,
		ValidationDelay:      1 * time.Millisecond,
		BusyStateChangeDelay: 1 * time.Millisecond,
		TofStateChangeDelay:  1 * time.Millisecond,
	}
	m := New(cfg, f, noLock, &v, chute)
	return m, f, &v
}

func TestAcceptStartsInIdleTOF(t *testing.T) {
	m, _, _ := newMachine()
	if m.State() != IdleTOF {
		t.Fatalf("initial state = %v, want IdleTOF", m.State())
	}
}

func TestAcceptRejectedWhenNotIdle(t *testing.T) {
	m, f, _ := newMachine()
	if err := m.Accept('A'); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if err := m.Accept('B'); err != ErrNotAccepting {
		t.Fatalf("second accept during acceptance gap: err = %v, want ErrNotAccepting", err)
	}

	f.Fire() // T1
	if err := m.Accept('C'); err != ErrNotAccepting {
		t.Fatalf("accept while BusyNotTOF: err = %v, want ErrNotAccepting", err)
	}
}

func TestFullCycleTransitionsAndFlags(t *testing.T) {
	m, f, v := newMachine()

	if err := m.Accept('X'); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	f.Fire() // T1: IdleTOF -> BusyNotTOF
	if m.State() != BusyNotTOF {
		t.Fatalf("state = %v, want BusyNotTOF", m.State())
	}
	if !v.Busy() {
		t.Fatalf("Busy should be set after T1")
	}
	if v.ValidationDone() {
		t.Fatalf("ValidationDone should be clear after T1")
	}
	if v.AtTopOfForm() {
		t.Fatalf("AtTopOfForm should be clear after T1")
	}

	f.Fire() // T2: BusyNotTOF -> BusyValDone
	if m.State() != BusyValDone {
		t.Fatalf("state = %v, want BusyValDone", m.State())
	}
	if !v.ValidationDone() {
		t.Fatalf("ValidationDone should be set after T2")
	}
	if v.StatusReportTemplateID != status.SpaceTemplateID {
		t.Fatalf("StatusReportTemplateID should not advance at T2, got %q", v.StatusReportTemplateID)
	}

	f.Fire() // C5 set timer fires as a side effect of T2 arming it
	if !v.PaperInChute() {
		t.Fatalf("PaperInChute should be set once C5's set timer fires")
	}

	f.Fire() // T3: BusyValDone -> IdleNotTOF
	if m.State() != IdleNotTOF {
		t.Fatalf("state = %v, want IdleNotTOF", m.State())
	}
	if v.Busy() {
		t.Fatalf("Busy should be clear after T3")
	}
	if v.StatusReportTemplateID != 'X' {
		t.Fatalf("StatusReportTemplateID = %q, want 'X' after T3", v.StatusReportTemplateID)
	}

	f.Fire() // C5 clear timer
	if v.PaperInChute() {
		t.Fatalf("PaperInChute should clear once C5's clear timer fires")
	}

	f.Fire() // T4: IdleNotTOF -> IdleTOF
	if m.State() != IdleTOF {
		t.Fatalf("state = %v, want IdleTOF", m.State())
	}
	if !v.AtTopOfForm() {
		t.Fatalf("AtTopOfForm should be set after T4")
	}

	if err := m.Accept('Y'); err != nil {
		t.Fatalf("accept after returning to IdleTOF: %v", err)
	}
}

func TestStopCancelsPendingTimer(t *testing.T) {
	m, f, _ := newMachine()
	if err := m.Accept('A'); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	m.Stop()

	if f.Fire() {
		t.Fatalf("Fire() should find nothing pending after Stop")
	}
}
