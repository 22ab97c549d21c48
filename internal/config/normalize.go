// internal/config/normalize.go
package config

// Normalize applies post-validation normalization: any zero-valued
// duration or limit field is filled in from Defaults(). It is allowed to
// mutate configuration. It MUST be called only after Validate() succeeds.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := Defaults()
	e := &cfg.Emulator

	if e.SoftwareVersion == "" {
		e.SoftwareVersion = d.Emulator.SoftwareVersion
	}
	if e.Transport.Kind == "" {
		e.Transport.Kind = d.Emulator.Transport.Kind
	}
	if e.Transport.BaudRate == 0 {
		e.Transport.BaudRate = d.Emulator.Transport.BaudRate
	}

	t := &e.Timing
	dt := d.Emulator.Timing
	if t.StatusReportingIntervalMs == 0 {
		t.StatusReportingIntervalMs = dt.StatusReportingIntervalMs
	}
	if t.PrintStartDelayMs == 0 {
		t.PrintStartDelayMs = dt.PrintStartDelayMs
	}
	if t.ValidationDelayMs == 0 {
		t.ValidationDelayMs = dt.ValidationDelayMs
	}
	if t.BusyStateChangeDelayMs == 0 {
		t.BusyStateChangeDelayMs = dt.BusyStateChangeDelayMs
	}
	if t.TofStateChangeDelayMs == 0 {
		t.TofStateChangeDelayMs = dt.TofStateChangeDelayMs
	}
	if t.PaperInChuteSetDelayMs == 0 {
		t.PaperInChuteSetDelayMs = dt.PaperInChuteSetDelayMs
	}
	if t.PaperInChuteClearDelayMs == 0 {
		t.PaperInChuteClearDelayMs = dt.PaperInChuteClearDelayMs
	}
	if t.ReassemblyTimeoutMs == 0 {
		t.ReassemblyTimeoutMs = dt.ReassemblyTimeoutMs
	}

	l := &e.Limits
	if l.MinMessageSize == 0 {
		l.MinMessageSize = d.Emulator.Limits.MinMessageSize
	}
	if l.MaxMessageSize == 0 {
		l.MaxMessageSize = d.Emulator.Limits.MaxMessageSize
	}

	if e.Logging.Level == "" {
		e.Logging.Level = d.Emulator.Logging.Level
	}
	if e.Logging.Format == "" {
		e.Logging.Format = d.Emulator.Logging.Format
	}
}
