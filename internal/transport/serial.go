package transport

import (
	"context"
	"fmt"
	"time"

	goserial "github.com/goburrow/serial"
)

func durationFromMillis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// isTimeout reports whether err is a read deadline expiry rather than a
// genuine device error, so Run can loop and re-check ctx instead of
// treating it as fatal.
func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	te, ok := err.(timeouter)
	return ok && te.Timeout()
}

// SerialConfig describes a USB CDC-ACM (or any termios-backed) serial
// device. ReadTimeout bounds how long a single Read blocks, which is
// what lets Run notice ctx cancellation promptly instead of hanging in
// a blocking read forever.
type SerialConfig struct {
	Device      string
	BaudRate    int
	DataBits    int
	StopBits    int
	Parity      string
	ReadTimeout int // milliseconds; converted to goburrow/serial's Config.Timeout duration
}

// SerialAdapter is the real Adapter: a CDC-ACM serial port opened via
// goburrow/serial, the library the teacher pulls in indirectly through
// goburrow/modbus for its own device connections.
type SerialAdapter struct {
	port goserial.Port
}

// OpenSerial opens cfg.Device with the given line settings.
func OpenSerial(cfg SerialConfig) (*SerialAdapter, error) {
	port, err := goserial.Open(&goserial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  durationFromMillis(cfg.ReadTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", cfg.Device, err)
	}
	return &SerialAdapter{port: port}, nil
}

// Run reads from the port until ctx is cancelled or a read error that
// is not a timeout occurs.
func (a *SerialAdapter) Run(ctx context.Context, deliver func([]byte)) error {
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return a.port.Close()
		default:
		}

		n, err := a.port.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			deliver(chunk)
		}
		if err != nil {
			if isTimeout(err) {
				continue
			}
			select {
			case <-ctx.Done():
				return a.port.Close()
			default:
				return fmt.Errorf("transport: read: %w", err)
			}
		}
	}
}

// Send writes one complete frame to the device.
func (a *SerialAdapter) Send(frame []byte) error {
	_, err := a.port.Write(frame)
	if err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}
	return nil
}

// Close releases the underlying port directly, for callers that never
// start Run (e.g. send-only diagnostics).
func (a *SerialAdapter) Close() error {
	return a.port.Close()
}
