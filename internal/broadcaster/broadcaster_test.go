package broadcaster

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nanoptix/paycheck4emu/internal/diagnostics"
	"github.com/nanoptix/paycheck4emu/internal/status"
)

type fakeSender struct {
	mu    sync.Mutex
	sent  [][]byte
	errFn func() error
}

func (f *fakeSender) Send(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, append([]byte(nil), frame...))
	if f.errFn != nil {
		return f.errFn()
	}
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func noLock(fn func()) { fn() }

func TestBroadcastEmitsWireExactFrame(t *testing.T) {
	v := status.NewVector()
	sender := &fakeSender{}
	b := New(Config{UnitAddress: 0, SoftwareVersion: "PAY-6.22B"}, &v, noLock, sender, diagnostics.NopSink)

	b.Broadcast()

	if sender.count() != 1 {
		t.Fatalf("expected one frame sent, got %d", sender.count())
	}
	want := status.Encode(0, "PAY-6.22B", v.Snapshot())
	if !bytes.Equal(sender.sent[0], want) {
		t.Fatalf("Broadcast() sent %q, want %q", sender.sent[0], want)
	}
}

func TestBroadcastDropsFrameOnSendError(t *testing.T) {
	v := status.NewVector()
	sender := &fakeSender{errFn: func() error { return errors.New("device gone") }}
	b := New(DefaultConfig(), &v, noLock, sender, diagnostics.NopSink)

	b.Broadcast() // must not panic; error is logged and swallowed

	if sender.count() != 1 {
		t.Fatalf("expected the send attempt to have happened exactly once")
	}
}

func TestRunEmitsOnEveryTick(t *testing.T) {
	v := status.NewVector()
	sender := &fakeSender{}
	b := New(Config{Interval: 5 * time.Millisecond, UnitAddress: 0, SoftwareVersion: "PAY-6.22B"}, &v, noLock, sender, diagnostics.NopSink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()
	<-done

	if n := sender.count(); n < 2 {
		t.Fatalf("expected at least 2 ticks to have fired in 25ms at 5ms interval, got %d", n)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	v := status.NewVector()
	sender := &fakeSender{}
	b := New(Config{Interval: 5 * time.Millisecond, UnitAddress: 0, SoftwareVersion: "PAY-6.22B"}, &v, noLock, sender, diagnostics.NopSink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatalf("Run did not return promptly after context cancel")
	}
}
