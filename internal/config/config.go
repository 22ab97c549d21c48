// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level decoded shape (spec.md §6 configuration
// surface, expanded per SPEC_FULL.md §A.1).
type Config struct {
	Emulator EmulatorConfig `yaml:"emulator"`
}

// EmulatorConfig holds every configurable field the engine needs.
type EmulatorConfig struct {
	DeviceID        string          `yaml:"device_id"`
	UnitAddress     int             `yaml:"unit_address"`
	SoftwareVersion string          `yaml:"software_version"`
	Transport       TransportConfig `yaml:"transport"`
	Timing          TimingConfig    `yaml:"timing"`
	Limits          LimitsConfig    `yaml:"limits"`
	Logging         LoggingConfig   `yaml:"logging"`
}

// TransportConfig selects and configures the C7 adapter.
type TransportConfig struct {
	Kind       string `yaml:"kind"` // "serial" or "unix"
	Device     string `yaml:"device"`
	BaudRate   int    `yaml:"baud_rate"`
	SocketPath string `yaml:"socket_path"`
}

// TimingConfig holds every timer interval C2, C4, C5 and C6 use, in
// milliseconds as decoded from YAML.
type TimingConfig struct {
	StatusReportingIntervalMs int `yaml:"status_reporting_interval_ms"`
	PrintStartDelayMs         int `yaml:"print_start_delay_ms"`
	ValidationDelayMs         int `yaml:"validation_delay_ms"`
	BusyStateChangeDelayMs    int `yaml:"busy_state_change_delay_ms"`
	TofStateChangeDelayMs     int `yaml:"tof_state_change_delay_ms"`
	PaperInChuteSetDelayMs    int `yaml:"paper_in_chute_set_delay_ms"`
	PaperInChuteClearDelayMs  int `yaml:"paper_in_chute_clear_delay_ms"`
	ReassemblyTimeoutMs       int `yaml:"reassembly_timeout_ms"`
}

// LimitsConfig bounds the reassembler.
type LimitsConfig struct {
	MinMessageSize int `yaml:"min_message_size"`
	MaxMessageSize int `yaml:"max_message_size"`
}

// LoggingConfig configures internal/diagnostics.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// Load reads and decodes path. It performs no validation or defaulting;
// callers run Validate then Normalize on the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}
