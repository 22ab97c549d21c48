// Package dispatcher classifies a complete ^...^ frame (opening and closing
// delimiters already guaranteed by the reassembler) and, for print
// commands, parses it into a structured PrintCommand (spec.md C3). It is
// stateless: every call is independent of every other.
package dispatcher

import (
	"errors"
	"strconv"
	"strings"
)

// Kind identifies which of the four recognized frame shapes a frame was
// classified as.
type Kind int

const (
	KindStatusRequest Kind = iota
	KindExtendedStatusRequest
	KindClearErrorFlags
	KindPrintTemplate
)

func (k Kind) String() string {
	switch k {
	case KindStatusRequest:
		return "StatusRequest"
	case KindExtendedStatusRequest:
		return "ExtendedStatusRequest"
	case KindClearErrorFlags:
		return "ClearErrorFlags"
	case KindPrintTemplate:
		return "PrintTemplate"
	default:
		return "Unknown"
	}
}

// MinCopies and MaxCopies bound the print command's copy count.
const (
	MinCopies = 1
	MaxCopies = 9999
)

var (
	// ErrUnrecognized is returned for a frame that matches none of the
	// four recognized shapes.
	ErrUnrecognized = errors.New("unrecognized frame")

	// ErrTooFewParts, ErrBadTemplateID and ErrBadCopies are the print
	// parse diagnostics (spec.md §4.2 print parse rules).
	ErrTooFewParts  = errors.New("print command has fewer than two parts")
	ErrBadTemplateID = errors.New("print command template id is not a single character")
	ErrBadCopies    = errors.New("print command copies out of range [1,9999]")
)

// PrintCommand is the parsed C3 output for a print-template frame.
type PrintCommand struct {
	TemplateID byte
	Copies     int
	Fields     []string
}

// Command is the classification result. Print is only populated when
// Kind == KindPrintTemplate.
type Command struct {
	Kind  Kind
	Print PrintCommand
}

// Dispatch classifies frame and, for a print-template frame, parses its
// payload. frame must already carry its opening and closing '^' — the
// reassembler's job, not this package's.
func Dispatch(frame []byte) (Command, error) {
	switch {
	case isStatusRequest(frame):
		return Command{Kind: KindStatusRequest}, nil
	case isExtendedStatusRequest(frame):
		return Command{Kind: KindExtendedStatusRequest}, nil
	case isClearErrorFlags(frame):
		return Command{Kind: KindClearErrorFlags}, nil
	case isPrintTemplate(frame):
		print, err := parsePrint(frame)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindPrintTemplate, Print: print}, nil
	default:
		return Command{}, ErrUnrecognized
	}
}

func isStatusRequest(f []byte) bool {
	return len(f) == 4 && f[0] == '^' && f[1] == 'S' && f[2] == '|' && f[3] == '^'
}

func isExtendedStatusRequest(f []byte) bool {
	return len(f) == 5 && f[0] == '^' && f[1] == 'S' && f[2] == 'e' && f[3] == '|' && f[4] == '^'
}

func isClearErrorFlags(f []byte) bool {
	return len(f) == 4 && f[0] == '^' && f[1] == 'C' && f[2] == '|' && f[3] == '^'
}

func isPrintTemplate(f []byte) bool {
	return len(f) >= 5 && f[0] == '^' && f[1] == 'P' && f[2] == '|' && f[len(f)-2] == '|'
}

// parsePrint implements spec.md §4.2's print parse rules against a frame
// already classified by isPrintTemplate.
func parsePrint(f []byte) (PrintCommand, error) {
	body := string(f[3 : len(f)-2]) // strip "^P|" prefix and "|^" suffix
	parts := strings.Split(body, "|")
	if len(parts) < 2 {
		return PrintCommand{}, ErrTooFewParts
	}

	if len(parts[0]) != 1 {
		return PrintCommand{}, ErrBadTemplateID
	}
	templateID := parts[0][0]

	copies, err := strconv.Atoi(parts[1])
	if err != nil || copies < MinCopies || copies > MaxCopies {
		return PrintCommand{}, ErrBadCopies
	}

	var fields []string
	if len(parts) > 2 {
		fields = append(fields, parts[2:]...)
	}

	return PrintCommand{
		TemplateID: templateID,
		Copies:     copies,
		Fields:     fields,
	}, nil
}
