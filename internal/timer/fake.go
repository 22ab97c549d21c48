package timer

import "time"

// Fake is a Scheduler double for tests: it never sleeps for real. Each
// AfterFunc call records the requested delay and holds the callback until
// the test fires it explicitly with Fire or FireAll. Only one callback is
// ever pending for a well-behaved C4/C5 machine (each transition destroys
// its timer before arming the next), but Fake supports several in case a
// test wants to exercise multiple independent oscillators.
type Fake struct {
	pending []*fakeCall
}

type fakeCall struct {
	delay     time.Duration
	cancelled bool
	fired     bool
	f         func()
}

// AfterFunc implements Scheduler.
func (k *Fake) AfterFunc(d time.Duration, f func()) CancelFunc {
	call := &fakeCall{delay: d, f: f}
	k.pending = append(k.pending, call)
	return func() bool {
		if call.cancelled || call.fired {
			return false
		}
		call.cancelled = true
		return true
	}
}

// Delays returns the delay requested by every AfterFunc call so far, in
// call order, including cancelled and already-fired ones.
func (k *Fake) Delays() []time.Duration {
	out := make([]time.Duration, len(k.pending))
	for i, c := range k.pending {
		out[i] = c.delay
	}
	return out
}

// Pending reports how many armed calls have neither fired nor been
// cancelled.
func (k *Fake) Pending() int {
	n := 0
	for _, c := range k.pending {
		if !c.fired && !c.cancelled {
			n++
		}
	}
	return n
}

// Fire runs the oldest still-pending call's callback, as if its delay had
// elapsed, and reports whether one was found.
func (k *Fake) Fire() bool {
	for _, c := range k.pending {
		if !c.fired && !c.cancelled {
			c.fired = true
			c.f()
			return true
		}
	}
	return false
}

// FireAll repeatedly fires the oldest pending call until none remain or
// max calls have fired, and returns how many fired, allowing callbacks that arm further calls to chain (as every C4/C5
// transition does).
func (k *Fake) FireAll(max int) int {
	n := 0
	for n < max && k.Fire() {
		n++
	}
	return n
}
