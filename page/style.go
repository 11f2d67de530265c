package page

import (
	"hash/fnv"

	"github.com/vtgrid/termcore/colors"
)

// UnderlineStyle enumerates the underline variants spec §3 lists as part of
// a Style's flag set.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Style is the full set of rendering attributes a run of cells can share,
// spec §3's Style type. It is a plain comparable value (no pointers, no
// slices) so it can be used directly as the Item type for an
// intern.Set[Style] — Go's native struct equality gives the "structural
// equality" the spec requires without a hand-rolled eql function.
type Style struct {
	FG, BG, UnderlineColor colors.Color
	Underline              UnderlineStyle
	Bold                   bool
	Faint                  bool
	Italic                 bool
	Blink                  bool
	Inverse                bool
	Invisible              bool
	Strikethrough          bool
	Overline               bool
}

// DefaultStyle is the all-defaults value referenced by spec §3; it is also
// the value a cell with StyleID 0 implicitly carries, since style id 0 is
// never issued by the intern set.
var DefaultStyle = Style{}

// Hash computes a stable 64-bit hash from a canonical packed
// representation, matching the spec invariant that structurally equal
// styles must hash equally and hashing must be deterministic. No
// third-party hash library appears anywhere in the retrieved pack, so this
// uses the standard library's FNV-1a (see DESIGN.md) over a fixed-width
// byte encoding of every field, in declaration order.
func (s Style) Hash() uint64 {
	h := fnv.New64a()
	var buf [5]byte
	write := func(c colors.Color) {
		buf[0] = byte(c.Kind)
		buf[1] = c.Index
		buf[2] = c.R
		buf[3] = c.G
		buf[4] = c.B
		h.Write(buf[:])
	}
	write(s.FG)
	write(s.BG)
	write(s.UnderlineColor)
	h.Write([]byte{byte(s.Underline), s.packFlags()})
	return h.Sum64()
}

func (s Style) packFlags() byte {
	var b byte
	if s.Bold {
		b |= 1 << 0
	}
	if s.Faint {
		b |= 1 << 1
	}
	if s.Italic {
		b |= 1 << 2
	}
	if s.Blink {
		b |= 1 << 3
	}
	if s.Inverse {
		b |= 1 << 4
	}
	if s.Invisible {
		b |= 1 << 5
	}
	if s.Strikethrough {
		b |= 1 << 6
	}
	if s.Overline {
		b |= 1 << 7
	}
	return b
}
