package transport

import (
	"bufio"
	"context"
	"io"
	"sync"
)

// PipeAdapter is an in-memory Adapter for tests: a hand-rolled fake in
// the same spirit as the teacher's fakeEndpointClient. The inbound
// direction is built on io.Pipe so reads block like a real device's;
// outbound frames are recorded in a slice. Host() writes simulate bytes
// arriving from the device; Outbound() lets a test read back everything
// the engine sent.
type PipeAdapter struct {
	hostW *io.PipeWriter
	hostR *io.PipeReader

	mu       sync.Mutex
	outbound [][]byte
}

// NewPipeAdapter builds a ready-to-use PipeAdapter.
func NewPipeAdapter() *PipeAdapter {
	r, w := io.Pipe()
	return &PipeAdapter{hostW: w, hostR: r}
}

// Host returns the writer a test uses to simulate the host device
// sending bytes: whatever is written here is delivered to Run's deliver
// callback.
func (p *PipeAdapter) Host() io.Writer { return p.hostW }

// Run reads whatever the test writes via Host and forwards it to
// deliver in arbitrary-sized chunks, mirroring a real device's read
// boundaries. Returns when ctx is cancelled or the host pipe closes.
func (p *PipeAdapter) Run(ctx context.Context, deliver func([]byte)) error {
	type readResult struct {
		chunk []byte
		err   error
	}
	results := make(chan readResult, 1)

	reader := bufio.NewReader(p.hostR)

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := reader.Read(buf)
			// Copy before the next Read reuses buf.
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			results <- readResult{chunk, err}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			p.hostR.Close()
			return nil
		case res := <-results:
			if len(res.chunk) > 0 {
				deliver(res.chunk)
			}
			if res.err != nil {
				if res.err == io.EOF || res.err == io.ErrClosedPipe {
					return nil
				}
				return res.err
			}
		}
	}
}

// Send records frame for later inspection by Outbound.
func (p *PipeAdapter) Send(frame []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outbound = append(p.outbound, append([]byte(nil), frame...))
	return nil
}

// Outbound returns every frame handed to Send so far, in order.
func (p *PipeAdapter) Outbound() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.outbound))
	copy(out, p.outbound)
	return out
}

// Close closes the host-side pipe, unblocking any in-flight Run.
func (p *PipeAdapter) Close() error {
	return p.hostW.Close()
}
