package status

// Vector is the shared five-byte flag register plus the two template-id
// characters (spec.md §3, C1). It carries no lock of its own: the engine
// that owns a Vector is responsible for serializing access to it (spec.md
// §5 — one mutex for the whole engine, never held across a transport or
// logging call).
type Vector struct {
	Flags1 byte
	Flags2 byte
	Flags3 byte
	Flags4 byte
	Flags5 byte

	// LastTemplateID is the most recently completed print template.
	// Space (0x20) before the first job ever completes.
	LastTemplateID byte

	// StatusReportTemplateID is the character emitted in status frames.
	// It only catches up to LastTemplateID at the BusyValDone->IdleNotTOF
	// transition (T3), not when the job is accepted.
	StatusReportTemplateID byte
}

// NewVector returns the power-up state: every flags byte holds just its
// Unmask bit, except Flags5 which additionally has ValidationDone and
// ResetPowerUp set. AtTopOfForm is clear at power-up — the device is idle
// but not yet known to be at top of form until the first full print cycle.
func NewVector() Vector {
	return Vector{
		Flags1:                 Unmask,
		Flags2:                 Unmask,
		Flags3:                 Unmask,
		Flags4:                 Unmask,
		Flags5:                 Unmask | Flags5ValidationDone | Flags5ResetPowerUp,
		LastTemplateID:         SpaceTemplateID,
		StatusReportTemplateID: SpaceTemplateID,
	}
}

func setFlag(b *byte, mask byte, set bool) {
	if set {
		*b |= mask
	} else {
		*b &^= mask
	}
}

// ---- Flags1 ----

func (v *Vector) SetBusy(on bool)        { setFlag(&v.Flags1, Flags1Busy, on) }
func (v Vector) Busy() bool              { return v.Flags1&Flags1Busy != 0 }
func (v *Vector) SetSystemError(on bool) { setFlag(&v.Flags1, Flags1SystemError, on) }
func (v *Vector) SetPlatenUp(on bool)    { setFlag(&v.Flags1, Flags1PlatenUp, on) }
func (v *Vector) SetPaperOut(on bool)    { setFlag(&v.Flags1, Flags1PaperOut, on) }
func (v *Vector) SetHeadError(on bool)   { setFlag(&v.Flags1, Flags1HeadError, on) }
func (v *Vector) SetVoltageError(on bool) {
	setFlag(&v.Flags1, Flags1VoltageError, on)
}

// ---- Flags3 ----

// SetPaperInChute mutates the one bit the paper-in-chute oscillator (C5)
// owns exclusively — spec.md §4 invariant: no other component writes it.
func (v *Vector) SetPaperInChute(on bool) { setFlag(&v.Flags3, Flags3PaperInChute, on) }
func (v Vector) PaperInChute() bool       { return v.Flags3&Flags3PaperInChute != 0 }

// ---- Flags5 ----

func (v *Vector) SetValidationDone(on bool) {
	setFlag(&v.Flags5, Flags5ValidationDone, on)
}
func (v Vector) ValidationDone() bool { return v.Flags5&Flags5ValidationDone != 0 }

func (v *Vector) SetAtTopOfForm(on bool) { setFlag(&v.Flags5, Flags5AtTopOfForm, on) }
func (v Vector) AtTopOfForm() bool       { return v.Flags5&Flags5AtTopOfForm != 0 }

// Snapshot takes an atomic-under-the-caller's-lock copy of everything a
// status frame needs to serialize (spec.md §4.6 "read atomicity").
func (v Vector) Snapshot() Snapshot {
	return Snapshot{
		Flags1:     v.Flags1,
		Flags2:     v.Flags2,
		Flags3:     v.Flags3,
		Flags4:     v.Flags4,
		Flags5:     v.Flags5,
		TemplateID: v.StatusReportTemplateID,
	}
}
