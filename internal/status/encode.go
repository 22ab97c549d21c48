package status

import "strconv"

// Encode serializes a Snapshot into the wire-exact extended-status frame
// (spec.md §4.6). Layout is protocol-locked. No IO, no side effects: the
// caller takes the Snapshot under its own lock, then calls Encode outside
// any lock, then hands the result to the transport adapter.
func Encode(unitAddress byte, softwareVersion string, s Snapshot) []byte {
	out := make([]byte, 0, 16+len(softwareVersion))

	out = append(out, '*', 'S', '|')
	out = append(out, strconv.Itoa(int(unitAddress))...)
	out = append(out, '|')
	out = append(out, softwareVersion...)
	out = append(out, '|')
	out = append(out, s.Flags1, '|')
	out = append(out, s.Flags2, '|')
	out = append(out, s.Flags3, '|')
	out = append(out, s.Flags4, '|')
	out = append(out, s.Flags5, '|')
	out = append(out, 'P', s.TemplateID, '|', '*')

	return out
}
