// Package transport implements the C7 external collaborator contract
// (spec.md §4.7): the engine depends on an Adapter only through an
// inbound deliver callback, an outbound Send, and a Run lifecycle that
// ends when Run's context is cancelled.
// The adapter is free to be a real USB CDC-ACM serial device or, for
// tests, an in-memory pipe.
package transport

import "context"

// Adapter is the contract the engine depends on. Run blocks, calling
// deliver for every inbound chunk (any size, any boundary, possibly
// containing multiple frames or partial frames) until ctx is cancelled,
// at which point it releases the underlying device and returns. Send
// emits one complete outbound frame and reports whether the device
// accepted it.
type Adapter interface {
	Run(ctx context.Context, deliver func([]byte)) error
	Send(frame []byte) error
}
