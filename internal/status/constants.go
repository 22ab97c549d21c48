// Package status holds the PayCheck 4 status vector: the five flag bytes
// plus the two template-id characters the rest of the engine reads and
// writes. Layout is protocol-locked — the host reads these bits raw, so
// bit positions MUST NOT change.
package status

// ---- UNMASK BIT ----

// Unmask is the always-set high bit in every flags byte. It keeps a
// fully-clear byte (0x00) from ever appearing on the wire, where it could
// be mistaken for an absent field. Never cleared by any Vector method.
const Unmask byte = 1 << 6

// ---- FLAGS1 ----

const (
	Flags1VoltageError byte = 1 << 0
	Flags1HeadError    byte = 1 << 1
	Flags1PaperOut     byte = 1 << 2
	Flags1PlatenUp     byte = 1 << 3
	Flags1SystemError  byte = 1 << 4
	Flags1Busy         byte = 1 << 5
)

// ---- FLAGS2 ----

const (
	Flags2JobMemoryOverflow     byte = 1 << 0
	Flags2BufferOverflow        byte = 1 << 1
	Flags2LibraryLoadError      byte = 1 << 2
	Flags2PrintRegionDataError  byte = 1 << 3
	Flags2LibraryRefError       byte = 1 << 4
	Flags2TemperatureError      byte = 1 << 5
)

// ---- FLAGS3 ----

const (
	Flags3MissingSupplyIndex    byte = 1 << 0
	Flags3PrinterOffline        byte = 1 << 1
	Flags3FlashProgramError     byte = 1 << 2
	Flags3PaperInChute          byte = 1 << 3
	Flags3PrintLibrariesCorrupt byte = 1 << 4
	Flags3CommandError          byte = 1 << 5
)

// ---- FLAGS4 ----
//
// Reserved (bit 6) aliases Unmask in the source protocol this emulator
// reimplements. Unmask is treated as the sole authoritative name for that
// bit; Reserved has no accessor here (see DESIGN.md Open Questions).

const (
	Flags4PaperLow         byte = 1 << 0
	Flags4PaperJam         byte = 1 << 5
	Flags4JournalPrintMode byte = 1 << 7
)

// ---- FLAGS5 ----

const (
	Flags5ResetPowerUp          byte = 1 << 0
	Flags5BarcodeDataIsAccessed byte = 1 << 1
	Flags5PrinterOpen           byte = 1 << 2
	Flags5XedOff                byte = 1 << 3
	Flags5AtTopOfForm           byte = 1 << 4
	Flags5ValidationDone        byte = 1 << 5
)

// SpaceTemplateID is the template-id character shown before any print job
// has ever completed.
const SpaceTemplateID byte = 0x20
