// internal/config/defaults.go
package config

// Defaults returns spec.md §6's configuration defaults as a Config
// value. Normalize uses it to fill in zero-valued fields; callers that
// want a zero-config engine (tests, cmd/) can use it directly.
func Defaults() *Config {
	return &Config{
		Emulator: EmulatorConfig{
			DeviceID:        "PAY4-001",
			UnitAddress:     0,
			SoftwareVersion: "PAY-6.22B",
			Transport: TransportConfig{
				Kind:     "serial",
				Device:   "/dev/ttyGS0",
				BaudRate: 115200,
			},
			Timing: TimingConfig{
				StatusReportingIntervalMs: 2000,
				PrintStartDelayMs:         3000,
				ValidationDelayMs:         18000,
				BusyStateChangeDelayMs:    20000,
				TofStateChangeDelayMs:     4000,
				PaperInChuteSetDelayMs:    2000,
				PaperInChuteClearDelayMs:  10000,
				ReassemblyTimeoutMs:       20,
			},
			Limits: LimitsConfig{
				MinMessageSize: 4,
				MaxMessageSize: 1024,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}
