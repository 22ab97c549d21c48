// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness. It performs declarative
// validation only. It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	e := cfg.Emulator

	if e.DeviceID == "" {
		return fmt.Errorf("emulator: device_id is required")
	}

	if e.UnitAddress < 0 || e.UnitAddress > 255 {
		return fmt.Errorf("emulator: unit_address %d out of range [0,255]", e.UnitAddress)
	}

	if e.SoftwareVersion != "" {
		for i := 0; i < len(e.SoftwareVersion); i++ {
			if e.SoftwareVersion[i] > 0x7F {
				return fmt.Errorf("emulator: software_version must contain ASCII characters only")
			}
		}
	}

	switch e.Transport.Kind {
	case "", "serial":
		if e.Transport.Device == "" {
			return fmt.Errorf("emulator.transport: device is required for kind=serial")
		}
	case "unix":
		if e.Transport.SocketPath == "" {
			return fmt.Errorf("emulator.transport: socket_path is required for kind=unix")
		}
	default:
		return fmt.Errorf("emulator.transport: unknown kind %q, want \"serial\" or \"unix\"", e.Transport.Kind)
	}

	t := e.Timing
	for _, field := range []struct {
		name string
		ms   int
	}{
		{"status_reporting_interval_ms", t.StatusReportingIntervalMs},
		{"print_start_delay_ms", t.PrintStartDelayMs},
		{"validation_delay_ms", t.ValidationDelayMs},
		{"busy_state_change_delay_ms", t.BusyStateChangeDelayMs},
		{"tof_state_change_delay_ms", t.TofStateChangeDelayMs},
		{"paper_in_chute_set_delay_ms", t.PaperInChuteSetDelayMs},
		{"paper_in_chute_clear_delay_ms", t.PaperInChuteClearDelayMs},
		{"reassembly_timeout_ms", t.ReassemblyTimeoutMs},
	} {
		if field.ms < 0 {
			return fmt.Errorf("emulator.timing.%s must not be negative, got %d", field.name, field.ms)
		}
	}

	l := e.Limits
	if l.MinMessageSize < 0 {
		return fmt.Errorf("emulator.limits.min_message_size must not be negative, got %d", l.MinMessageSize)
	}
	if l.MaxMessageSize < 0 {
		return fmt.Errorf("emulator.limits.max_message_size must not be negative, got %d", l.MaxMessageSize)
	}
	if l.MinMessageSize != 0 && l.MaxMessageSize != 0 && l.MinMessageSize > l.MaxMessageSize {
		return fmt.Errorf("emulator.limits: min_message_size %d exceeds max_message_size %d", l.MinMessageSize, l.MaxMessageSize)
	}

	switch e.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("emulator.logging: unknown level %q", e.Logging.Level)
	}

	switch e.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("emulator.logging: unknown format %q", e.Logging.Format)
	}

	return nil
}
