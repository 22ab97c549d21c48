package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
emulator:
  device_id: "PAY4-001"
  unit_address: 0
  software_version: "PAY-6.22B"
  transport:
    kind: serial
    device: /dev/ttyGS0
    baud_rate: 115200
  timing:
    status_reporting_interval_ms: 2000
    print_start_delay_ms: 3000
    validation_delay_ms: 18000
    busy_state_change_delay_ms: 20000
    tof_state_change_delay_ms: 4000
    paper_in_chute_set_delay_ms: 2000
    paper_in_chute_clear_delay_ms: 10000
    reassembly_timeout_ms: 20
  limits:
    min_message_size: 4
    max_message_size: 1024
  logging:
    level: info
    format: text
`

func TestLoadDecodesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Emulator.DeviceID != "PAY4-001" {
		t.Fatalf("DeviceID = %q, want PAY4-001", cfg.Emulator.DeviceID)
	}
	if cfg.Emulator.Transport.Kind != "serial" {
		t.Fatalf("Transport.Kind = %q, want serial", cfg.Emulator.Transport.Kind)
	}
	if cfg.Emulator.Timing.ValidationDelayMs != 18000 {
		t.Fatalf("ValidationDelayMs = %d, want 18000", cfg.Emulator.Timing.ValidationDelayMs)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("Defaults() should validate cleanly: %v", err)
	}
}
