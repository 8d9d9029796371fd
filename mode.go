package uart

import (
	"fmt"
	"regexp"
	"strconv"
)

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// String returns the single letter used in mode descriptors
func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "N"
	case ParityEven:
		return "E"
	case ParityOdd:
		return "O"
	default:
		return fmt.Sprintf("Parity(%d)", int(p))
	}
}

// Mode is a parsed mode descriptor such as "8N1"
type Mode struct {
	DataBits int
	Parity   Parity
	StopBits int
}

// String renders the mode back into descriptor form
func (m Mode) String() string {
	return strconv.Itoa(m.DataBits) + m.Parity.String() + strconv.Itoa(m.StopBits)
}

// Mode8N1 is the default line mode
var Mode8N1 = Mode{DataBits: 8, Parity: ParityNone, StopBits: 1}

var modePattern = regexp.MustCompile(`^([0-9])([A-Za-z])([0-9])$`)

// ParseMode decomposes a descriptor of the form <data bits><N|E|O><stop bits>.
// Matching is exact and case-sensitive. Digits are not range checked here;
// widths and counts without an OS symbol are rejected when the attributes are
// built.
func ParseMode(s string) (Mode, error) {
	m := modePattern.FindStringSubmatch(s)
	if m == nil {
		return Mode{}, fmt.Errorf("%w: %q", ErrInvalidModeFormat, s)
	}

	var parity Parity
	switch m[2] {
	case "N":
		parity = ParityNone
	case "E":
		parity = ParityEven
	case "O":
		parity = ParityOdd
	default:
		return Mode{}, fmt.Errorf("%w: unknown parity %q in %q", ErrInvalidModeFormat, m[2], s)
	}

	return Mode{
		DataBits: int(m[1][0] - '0'),
		Parity:   parity,
		StopBits: int(m[3][0] - '0'),
	}, nil
}

// MustParseMode is like ParseMode but panics on error
func MustParseMode(s string) Mode {
	mode, err := ParseMode(s)
	if err != nil {
		panic(err)
	}
	return mode
}
