package term

import (
	"github.com/vtgrid/termcore/colors"
	"github.com/vtgrid/termcore/page"
	"github.com/vtgrid/termcore/sgr"
)

// SetAttribute folds one decoded SGR attribute into the pen (current
// style) applied to subsequently printed cells. Grounded on the teacher's
// CellTemplate, which the same SGR handler mutates directly; this replaces
// its color.Color fields with the interned colors.Color the page package's
// Style expects.
func (t *Terminal) SetAttribute(attr sgr.Attribute) {
	switch attr.Kind {
	case sgr.Reset:
		t.pen = page.DefaultStyle
	case sgr.Bold:
		t.pen.Bold = true
	case sgr.Faint:
		t.pen.Faint = true
	case sgr.BoldFaintReset:
		t.pen.Bold, t.pen.Faint = false, false
	case sgr.Italic:
		t.pen.Italic = true
	case sgr.ItalicReset:
		t.pen.Italic = false
	case sgr.Underline:
		t.pen.Underline = page.UnderlineSingle
	case sgr.UnderlineDouble:
		t.pen.Underline = page.UnderlineDouble
	case sgr.UnderlineCurly:
		t.pen.Underline = page.UnderlineCurly
	case sgr.UnderlineDotted:
		t.pen.Underline = page.UnderlineDotted
	case sgr.UnderlineDashed:
		t.pen.Underline = page.UnderlineDashed
	case sgr.UnderlineReset:
		t.pen.Underline = page.UnderlineNone
	case sgr.BlinkSlow, sgr.BlinkFast:
		t.pen.Blink = true
	case sgr.BlinkReset:
		t.pen.Blink = false
	case sgr.Inverse:
		t.pen.Inverse = true
	case sgr.InverseReset:
		t.pen.Inverse = false
	case sgr.Invisible:
		t.pen.Invisible = true
	case sgr.InvisibleReset:
		t.pen.Invisible = false
	case sgr.Strikethrough:
		t.pen.Strikethrough = true
	case sgr.StrikethroughReset:
		t.pen.Strikethrough = false
	case sgr.Overline:
		t.pen.Overline = true
	case sgr.OverlineReset:
		t.pen.Overline = false
	case sgr.ForegroundReset:
		t.pen.FG = colors.DefaultColor
	case sgr.BackgroundReset:
		t.pen.BG = colors.DefaultColor
	case sgr.Foreground8:
		t.pen.FG = colors.FromPalette(uint8(attr.Value))
	case sgr.Background8:
		t.pen.BG = colors.FromPalette(uint8(attr.Value))
	case sgr.Foreground256:
		t.pen.FG = colors.FromPalette(uint8(attr.Value))
	case sgr.Background256:
		t.pen.BG = colors.FromPalette(uint8(attr.Value))
	case sgr.ForegroundRGB:
		t.pen.FG = colors.FromRGB(attr.R, attr.G, attr.B)
	case sgr.BackgroundRGB:
		t.pen.BG = colors.FromRGB(attr.R, attr.G, attr.B)
	case sgr.UnderlineColorReset:
		t.pen.UnderlineColor = colors.DefaultColor
	case sgr.UnderlineColor256:
		t.pen.UnderlineColor = colors.FromPalette(uint8(attr.Value))
	case sgr.UnderlineColorRGB:
		t.pen.UnderlineColor = colors.FromRGB(attr.R, attr.G, attr.B)
	case sgr.Unknown:
		t.Unknown("sgr", "unrecognized SGR parameter")
	}
}
