// Package timer provides the one-shot scheduling abstraction C4 and C5
// arm and destroy on every transition (spec.md §4.4, §4.5). It exists so
// tests can fire a transition deterministically instead of sleeping for
// real protocol delays measured in seconds.
package timer

import "time"

// CancelFunc stops a scheduled call if it has not fired yet. It reports
// whether the call was still pending (mirrors time.Timer.Stop).
type CancelFunc func() bool

// Scheduler arms a one-shot call after d elapses.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancelFunc
}

// Real schedules with the runtime's timer wheel via time.AfterFunc.
type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) CancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}
