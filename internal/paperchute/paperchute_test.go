package paperchute

import (
	"testing"
	"time"

	"github.com/nanoptix/paycheck4emu/internal/status"
	"github.com/nanoptix/paycheck4emu/internal/timer"
)

func noLock(fn func()) { fn() }

func TestArmSetSequence(t *testing.T) {
	v := status.NewVector()
	f := &timer.Fake{}
	o := New(Config{SetDelay: 2 * time.Second, ClearDelay: 10 * time.Second}, f, noLock, &v)

	o.ArmSet()
	if v.PaperInChute() {
		t.Fatalf("PaperInChute should not be set before the first timer fires")
	}

	if !f.Fire() {
		t.Fatalf("expected a pending set timer")
	}
	if !v.PaperInChute() {
		t.Fatalf("PaperInChute should be set after the set timer fires")
	}

	if !f.Fire() {
		t.Fatalf("expected a pending clear timer")
	}
	if v.PaperInChute() {
		t.Fatalf("PaperInChute should be clear after the clear timer fires")
	}

	delays := f.Delays()
	if len(delays) != 2 || delays[0] != 2*time.Second || delays[1] != 10*time.Second {
		t.Fatalf("delays = %v, want [2s 10s]", delays)
	}
}

func TestArmSetCancelsMidFlightOscillation(t *testing.T) {
	v := status.NewVector()
	f := &timer.Fake{}
	o := New(Config{SetDelay: 2 * time.Second, ClearDelay: 10 * time.Second}, f, noLock, &v)

	o.ArmSet()
	f.Fire() // set fires: PaperInChute now true, clear timer pending

	if f.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1 (clear timer)", f.Pending())
	}

	o.ArmSet() // restart mid-oscillation
	if f.Pending() != 1 {
		t.Fatalf("Pending() = %d after restart, want 1 (old clear cancelled, new set armed)", f.Pending())
	}
}

func TestStopCancelsPendingTimer(t *testing.T) {
	v := status.NewVector()
	f := &timer.Fake{}
	o := New(DefaultConfig(), f, noLock, &v)

	o.ArmSet()
	o.Stop()

	if f.Fire() {
		t.Fatalf("Fire() should find nothing pending after Stop")
	}
}
