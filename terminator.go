package nledit

import "strings"

// Terminator selects the line terminator convention of a text.
type Terminator uint8

// Line terminator conventions.
const (
	LF   Terminator = iota // "\n"
	CRLF                   // "\r\n", matched as a unit
)

const (
	cr = '\r'
	lf = '\n'
)

var (
	lfBytes   = []byte{lf}
	crlfBytes = []byte{cr, lf}
)

// Bytes returns the byte sequence of the terminator. Clients must not modify
// the returned slice.
func (t Terminator) Bytes() []byte {
	if t == CRLF {
		return crlfBytes
	}
	return lfBytes
}

// String returns the literal terminator sequence.
func (t Terminator) String() string {
	return string(t.Bytes())
}

// Len is the length of the terminator sequence in bytes.
func (t Terminator) Len() int {
	return len(t.Bytes())
}

// Name returns "LF" or "CRLF".
func (t Terminator) Name() string {
	if t == CRLF {
		return "CRLF"
	}
	return "LF"
}

// Match reports whether the terminator sequence starts at p[i], and if so,
// the length of the sequence. A carriage return as the last byte of p does not
// match; streaming callers have to hold it back until the next byte is known.
func (t Terminator) Match(p []byte, i int) (int, bool) {
	if i < 0 || i >= len(p) {
		return 0, false
	}
	switch t {
	case LF:
		if p[i] == lf {
			return 1, true
		}
	case CRLF:
		if p[i] == cr && i+1 < len(p) && p[i+1] == lf {
			return 2, true
		}
	}
	return 0, false
}

// ParseTerminator finds a terminator from its name, which is "lf" or "crlf"
// (case does not matter).
func ParseTerminator(name string) (Terminator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lf", "unix":
		return LF, nil
	case "crlf", "dos", "windows":
		return CRLF, nil
	}
	return LF, ErrUnknownTerminator
}
