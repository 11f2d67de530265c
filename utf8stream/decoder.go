// Package utf8stream implements a streaming UTF-8 decoder using Bjoern
// Hoehrmann's table-driven DFA ("Flexible and Economical UTF-8 Decoder").
// It is fed one byte at a time and reports either an accepted codepoint, a
// request for more bytes, or a replacement-character substitution for
// malformed input — never an error, matching spec §4.N and §7's "Invalid
// UTF-8: replaced with U+FFFD; no error."
package utf8stream

// Status describes the outcome of feeding one byte to the decoder.
type Status int

const (
	// Incomplete means the byte was consumed as part of a pending
	// multi-byte sequence; no codepoint is available yet.
	Incomplete Status = iota
	// Accepted means a complete, well-formed codepoint is available.
	Accepted
	// Replaced means the byte sequence seen so far is malformed; the
	// returned rune is U+FFFD. If Consumed is false, the caller must feed
	// the same byte again — it was not part of the invalid sequence and
	// may begin a new one (e.g. an ASCII byte or new lead byte arriving
	// while a multi-byte sequence was mid-flight).
	Replaced
)

const (
	accept = uint32(0)
	reject = uint32(12)
)

// classes maps each byte value to one of 12 DFA input classes.
var classes = [256]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	8, 8, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	10, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 4, 3, 3, 11, 6, 6, 6, 5, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
}

// transitions maps (state, class) to the next state. State 0 is accept,
// state 12 (==reject) is the malformed sentinel; all others are
// "more bytes needed" waypoints.
var transitions = [9 * 12]uint32{
	0, 12, 24, 36, 60, 96, 84, 12, 12, 12, 48, 72,
	12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
	12, 0, 12, 12, 12, 12, 12, 0, 12, 0, 12, 12,
	12, 24, 12, 12, 12, 12, 12, 24, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12,
	12, 24, 12, 12, 12, 12, 12, 12, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// Decoder holds the running DFA state and partially accumulated codepoint
// for a byte stream. The zero value is ready to use.
type Decoder struct {
	state uint32
	cp    rune
}

// Reset returns the decoder to its initial state, discarding any
// in-progress multi-byte sequence.
func (d *Decoder) Reset() {
	d.state = accept
	d.cp = 0
}

// Result is the outcome of feeding one byte to the decoder.
type Result struct {
	Rune     rune
	Status   Status
	Consumed bool
}

// Feed is the primary entry point: it behaves like Next but returns a
// Result carrying the Consumed flag, so callers implementing the "retry the
// same byte" contract don't have to track lead/continuation state
// themselves.
func (d *Decoder) Feed(b byte) Result {
	class := classes[b]
	wasAccept := d.state == accept

	if d.state == accept {
		d.cp = rune(0xFF>>class) & rune(b)
	} else {
		d.cp = (d.cp << 6) | rune(b&0x3F)
	}

	d.state = transitions[d.state+uint32(class)]

	switch d.state {
	case accept:
		r := d.cp
		d.cp = 0
		return Result{Rune: r, Status: Accepted, Consumed: true}
	case reject:
		d.state = accept
		d.cp = 0
		return Result{Rune: 0xFFFD, Status: Replaced, Consumed: wasAccept}
	default:
		return Result{Status: Incomplete, Consumed: true}
	}
}

// DecodeString runs the decoder over a well-formed UTF-8 string and returns
// its codepoints. Provided for tests and round-trip checks; production
// callers should use Feed incrementally as bytes arrive from the PTY.
func DecodeString(s string) []rune {
	var d Decoder
	var out []rune
	for i := 0; i < len(s); i++ {
		res := d.Feed(s[i])
		if res.Status == Accepted || res.Status == Replaced {
			out = append(out, res.Rune)
		}
		if res.Status == Replaced && !res.Consumed {
			i--
		}
	}
	return out
}
