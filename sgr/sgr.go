// Package sgr parses Select Graphic Rendition parameter sequences (the
// `CSI ... m` family) into a stream of Attribute values, the spec's
// component K. It understands both semicolon-separated parameter lists and
// colon-separated sub-parameters, which are semantically distinct (spec
// §9): `4` alone means "underline on", while `4:3` selects a specific
// underline style rather than being two independent parameters.
package sgr

import "github.com/vtgrid/termcore/vtparse"

// AttributeKind enumerates the recognized SGR attribute changes.
type AttributeKind int

const (
	Reset AttributeKind = iota
	Bold
	Faint
	BoldFaintReset
	Italic
	ItalicReset
	Underline
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
	UnderlineReset
	BlinkSlow
	BlinkFast
	BlinkReset
	Inverse
	InverseReset
	Invisible
	InvisibleReset
	Strikethrough
	StrikethroughReset
	Overline
	OverlineReset
	ForegroundReset
	BackgroundReset
	Foreground8   // Value = 0..7 (or 8..15 for bright)
	Background8   // Value = 0..7 (or 8..15 for bright)
	Foreground256 // Value = 0..255 palette index
	Background256
	ForegroundRGB // RGB fields set
	BackgroundRGB
	UnderlineColorReset
	UnderlineColor256
	UnderlineColorRGB
	Unknown
)

// Attribute is one parsed SGR change.
type Attribute struct {
	Kind  AttributeKind
	Value int // palette index or 8-color index, meaning depends on Kind
	R, G, B uint8

	// Unknown-only fields: the full parameter list and what remained
	// unconsumed, so a caller can log the offending sequence.
	Full      []vtparse.Param
	Remaining []vtparse.Param
}

// Parse consumes params (as produced by vtparse for a CSI 'm' dispatch) and
// returns the resulting Attribute sequence. An empty params list is
// equivalent to a single Reset (bare `CSI m`).
func Parse(params []vtparse.Param) []Attribute {
	if len(params) == 0 {
		return []Attribute{{Kind: Reset}}
	}

	var out []Attribute
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p.Value == 0:
			out = append(out, Attribute{Kind: Reset})
		case p.Value == 1:
			out = append(out, Attribute{Kind: Bold})
		case p.Value == 2:
			out = append(out, Attribute{Kind: Faint})
		case p.Value == 3:
			out = append(out, Attribute{Kind: Italic})
		case p.Value == 4:
			out = append(out, parseUnderline(p))
		case p.Value == 5:
			out = append(out, Attribute{Kind: BlinkSlow})
		case p.Value == 6:
			out = append(out, Attribute{Kind: BlinkFast})
		case p.Value == 7:
			out = append(out, Attribute{Kind: Inverse})
		case p.Value == 8:
			out = append(out, Attribute{Kind: Invisible})
		case p.Value == 9:
			out = append(out, Attribute{Kind: Strikethrough})
		case p.Value == 22:
			out = append(out, Attribute{Kind: BoldFaintReset})
		case p.Value == 23:
			out = append(out, Attribute{Kind: ItalicReset})
		case p.Value == 24:
			out = append(out, Attribute{Kind: UnderlineReset})
		case p.Value == 25:
			out = append(out, Attribute{Kind: BlinkReset})
		case p.Value == 27:
			out = append(out, Attribute{Kind: InverseReset})
		case p.Value == 28:
			out = append(out, Attribute{Kind: InvisibleReset})
		case p.Value == 29:
			out = append(out, Attribute{Kind: StrikethroughReset})
		case p.Value >= 30 && p.Value <= 37:
			out = append(out, Attribute{Kind: Foreground8, Value: int(p.Value - 30)})
		case p.Value == 38:
			a, consumed := parseExtendedColor(params[i:], true)
			out = append(out, a)
			i += consumed - 1
		case p.Value == 39:
			out = append(out, Attribute{Kind: ForegroundReset})
		case p.Value >= 40 && p.Value <= 47:
			out = append(out, Attribute{Kind: Background8, Value: int(p.Value - 40)})
		case p.Value == 48:
			a, consumed := parseExtendedColor(params[i:], false)
			out = append(out, a)
			i += consumed - 1
		case p.Value == 49:
			out = append(out, Attribute{Kind: BackgroundReset})
		case p.Value == 53:
			out = append(out, Attribute{Kind: Overline})
		case p.Value == 55:
			out = append(out, Attribute{Kind: OverlineReset})
		case p.Value == 58:
			a, consumed := parseUnderlineColor(params[i:])
			out = append(out, a)
			i += consumed - 1
		case p.Value == 59:
			out = append(out, Attribute{Kind: UnderlineColorReset})
		case p.Value >= 90 && p.Value <= 97:
			out = append(out, Attribute{Kind: Foreground8, Value: int(p.Value-90) + 8})
		case p.Value >= 100 && p.Value <= 107:
			out = append(out, Attribute{Kind: Background8, Value: int(p.Value-100) + 8})
		default:
			out = append(out, Attribute{
				Kind:      Unknown,
				Full:      append([]vtparse.Param(nil), params...),
				Remaining: append([]vtparse.Param(nil), params[i:]...),
			})
		}
	}
	return out
}

func parseUnderline(p vtparse.Param) Attribute {
	if len(p.Sub) == 0 {
		return Attribute{Kind: Underline}
	}
	switch p.Sub[0] {
	case 0:
		return Attribute{Kind: UnderlineReset}
	case 1:
		return Attribute{Kind: Underline}
	case 2:
		return Attribute{Kind: UnderlineDouble}
	case 3:
		return Attribute{Kind: UnderlineCurly}
	case 4:
		return Attribute{Kind: UnderlineDotted}
	case 5:
		return Attribute{Kind: UnderlineDashed}
	default:
		return Attribute{Kind: Underline}
	}
}

// parseExtendedColor handles `38;5;n` / `38;2;r;g;b` (and their colon
// sub-parameter forms `38:5:n` / `38:2:r:g:b`, with an optional leading
// color-space id before r;g;b that is accepted and ignored). fg selects
// between Foreground*/Background* kinds. Returns the attribute and how many
// leading slots of rest it consumed (including the 38/48 slot itself).
func parseExtendedColor(rest []vtparse.Param, fg bool) (Attribute, int) {
	p := rest[0]
	if len(p.Sub) >= 2 {
		switch p.Sub[0] {
		case 5:
			return colorIndexed(fg, int(p.Sub[1])), 1
		case 2:
			idx := 1
			vals := p.Sub[idx:]
			r, g, b := colorSpaceSkip(vals)
			return colorRGB(fg, r, g, b), 1
		}
	}
	if len(rest) < 2 {
		return Attribute{Kind: Unknown, Full: rest, Remaining: rest}, len(rest)
	}
	mode := rest[1].Value
	switch mode {
	case 5:
		if len(rest) < 3 {
			return Attribute{Kind: Unknown, Full: rest, Remaining: rest}, len(rest)
		}
		return colorIndexed(fg, int(rest[2].Value)), 3
	case 2:
		// 38;2;r;g;b or 38;2;space;r;g;b
		vals := make([]uint16, 0, 4)
		for _, q := range rest[2:] {
			vals = append(vals, q.Value)
			if len(vals) == 4 {
				break
			}
		}
		r, g, b := colorSpaceSkip(vals)
		consumed := 2 + len(vals)
		if consumed > len(rest) {
			consumed = len(rest)
		}
		return colorRGB(fg, r, g, b), consumed
	default:
		return Attribute{Kind: Unknown, Full: rest, Remaining: rest}, 1
	}
}

// colorSpaceSkip drops a leading color-space parameter when 4 values are
// present (r,g,b plus a colorspace id ahead of them), returning just r,g,b.
func colorSpaceSkip(vals []uint16) (r, g, b uint8) {
	if len(vals) == 4 {
		vals = vals[1:]
	}
	if len(vals) < 3 {
		return 0, 0, 0
	}
	return uint8(vals[0]), uint8(vals[1]), uint8(vals[2])
}

func colorIndexed(fg bool, idx int) Attribute {
	if fg {
		return Attribute{Kind: Foreground256, Value: idx}
	}
	return Attribute{Kind: Background256, Value: idx}
}

func colorRGB(fg bool, r, g, b uint8) Attribute {
	if fg {
		return Attribute{Kind: ForegroundRGB, R: r, G: g, B: b}
	}
	return Attribute{Kind: BackgroundRGB, R: r, G: g, B: b}
}

func parseUnderlineColor(rest []vtparse.Param) (Attribute, int) {
	p := rest[0]
	if len(p.Sub) >= 2 {
		switch p.Sub[0] {
		case 5:
			return Attribute{Kind: UnderlineColor256, Value: int(p.Sub[1])}, 1
		case 2:
			r, g, b := colorSpaceSkip(p.Sub[1:])
			return Attribute{Kind: UnderlineColorRGB, R: r, G: g, B: b}, 1
		}
	}
	if len(rest) < 2 {
		return Attribute{Kind: Unknown, Full: rest, Remaining: rest}, len(rest)
	}
	switch rest[1].Value {
	case 5:
		if len(rest) < 3 {
			return Attribute{Kind: Unknown, Full: rest, Remaining: rest}, len(rest)
		}
		return Attribute{Kind: UnderlineColor256, Value: int(rest[2].Value)}, 3
	case 2:
		vals := make([]uint16, 0, 4)
		for _, q := range rest[2:] {
			vals = append(vals, q.Value)
			if len(vals) == 4 {
				break
			}
		}
		r, g, b := colorSpaceSkip(vals)
		consumed := 2 + len(vals)
		if consumed > len(rest) {
			consumed = len(rest)
		}
		return Attribute{Kind: UnderlineColorRGB, R: r, G: g, B: b}, consumed
	default:
		return Attribute{Kind: Unknown, Full: rest, Remaining: rest}, 1
	}
}
