package stream

import (
	"github.com/vtgrid/termcore/modes"
	"github.com/vtgrid/termcore/sgr"
	"github.com/vtgrid/termcore/vtparse"
)

// Dispatcher drives a vtparse.Parser over an input byte stream and
// translates its Actions into Handler calls. It implements vtparse.Sink
// directly so it can be handed straight to Parser.Advance/AdvanceString.
type Dispatcher struct {
	parser  vtparse.Parser
	handler Handler

	dcsParams        []vtparse.Param
	dcsIntermediates []byte
	dcsFinal         byte
	dcsPrefix        byte
	dcsBuf           []byte

	apcBuf []byte
}

// New creates a Dispatcher delivering decoded actions to h.
func New(h Handler) *Dispatcher {
	return &Dispatcher{handler: h}
}

// Feed advances the parser by one byte.
func (d *Dispatcher) Feed(b byte) {
	d.parser.Advance(b, d)
}

// FeedString advances the parser over an entire chunk. Per spec §8,
// feeding a stream split across N calls to FeedString produces the same
// action sequence as feeding it in one call.
func (d *Dispatcher) FeedString(data []byte) {
	d.parser.AdvanceString(data, d)
}

// Handle implements vtparse.Sink.
func (d *Dispatcher) Handle(a vtparse.Action) {
	switch v := a.(type) {
	case vtparse.Print:
		d.handler.Print(v.Rune)
	case vtparse.Execute:
		d.execute(v.Code)
	case vtparse.CsiDispatch:
		d.csi(v)
	case vtparse.EscDispatch:
		d.esc(v)
	case vtparse.OscDispatch:
		d.osc(v)
	case vtparse.DcsHook:
		d.dcsParams = v.Params
		d.dcsIntermediates = v.Intermediates
		d.dcsFinal = v.Final
		d.dcsPrefix = v.Prefix
		d.dcsBuf = d.dcsBuf[:0]
	case vtparse.DcsPut:
		d.dcsBuf = append(d.dcsBuf, v.Byte)
	case vtparse.DcsUnhook:
		d.dcsUnhook()
	case vtparse.ApcStart:
		d.apcBuf = d.apcBuf[:0]
	case vtparse.ApcPut:
		d.apcBuf = append(d.apcBuf, v.Byte)
	case vtparse.ApcEnd:
		d.handler.Unknown("apc", string(d.apcBuf))
	case vtparse.PmStart, vtparse.PmPut, vtparse.PmEnd:
		// Privacy messages have no recognized commands in scope.
	case vtparse.SosStart, vtparse.SosPut, vtparse.SosEnd:
		// Start-of-string sequences have no recognized commands in scope.
	}
}

func (d *Dispatcher) execute(code byte) {
	switch code {
	case 0x07:
		d.handler.Bell()
	case 0x08:
		d.handler.Backspace()
	case 0x09:
		d.handler.HorizontalTab(1)
	case 0x0a, 0x0b, 0x0c:
		d.handler.Linefeed()
	case 0x0d:
		d.handler.CarriageReturn()
	default:
		d.handler.Unknown("execute", string(rune(code)))
	}
}

func param(params []vtparse.Param, i, def int) int {
	if i >= len(params) {
		return def
	}
	if params[i].Value == 0 {
		return def
	}
	return int(params[i].Value)
}

func rawParam(params []vtparse.Param, i, def int) int {
	if i >= len(params) {
		return def
	}
	return int(params[i].Value)
}

func (d *Dispatcher) csi(v vtparse.CsiDispatch) {
	h := d.handler
	n := func(def int) int { return param(v.Params, 0, def) }

	switch v.Final {
	case '@':
		h.InsertBlanks(n(1))
	case 'A':
		h.CursorUp(n(1))
	case 'B', 'e':
		h.CursorDown(n(1))
	case 'C', 'a':
		h.CursorRight(n(1))
	case 'D':
		h.CursorLeft(n(1))
	case 'E':
		h.CursorDown(n(1))
		h.CursorCol(1)
	case 'F':
		h.CursorUp(n(1))
		h.CursorCol(1)
	case 'G', '`':
		h.CursorCol(n(1))
	case 'H', 'f':
		h.CursorPos(n(1), param(v.Params, 1, 1))
	case 'I':
		h.HorizontalTab(n(1))
	case 'J':
		h.EraseDisplay(param(v.Params, 0, 0))
	case 'K':
		h.EraseLine(param(v.Params, 0, 0))
	case 'L':
		h.InsertLines(n(1))
	case 'M':
		h.DeleteLines(n(1))
	case 'P':
		h.DeleteChars(n(1))
	case 'S':
		h.ScrollUp(n(1))
	case 'T':
		h.ScrollDown(n(1))
	case 'X':
		h.EraseChars(n(1))
	case 'Z':
		h.HorizontalTabBack(n(1))
	case 'b':
		h.PrintRepeat(n(1))
	case 'c':
		h.DeviceAttributes(v.Prefix, intParams(v.Params))
	case 'd':
		h.CursorRow(n(1))
	case 'g':
		h.TabClear(param(v.Params, 0, 0))
	case 'h':
		d.setModes(v, true)
	case 'l':
		d.setModes(v, false)
	case 'm':
		if v.Prefix == '>' {
			h.ModifyKeyFormat(param(v.Params, 0, 0), rawParam(v.Params, 1, -1))
		} else {
			d.sgrDispatch(v)
		}
	case 'n':
		h.DeviceStatusReport(param(v.Params, 0, 0))
	case 'q':
		if hasIntermediate(v.Intermediates, ' ') {
			h.SetCursorStyle(param(v.Params, 0, 0))
		} else {
			h.Unknown("csi", "q:"+string(v.Intermediates))
		}
	case 'r':
		h.SetTopBottomMargin(param(v.Params, 0, 0), param(v.Params, 1, 0))
	case 's':
		if len(v.Params) >= 2 {
			h.SetLeftRightMargin(param(v.Params, 0, 0), param(v.Params, 1, 0))
		} else {
			h.SaveCursor()
		}
	case 't':
		d.windowOp(v)
	case 'u':
		d.kittyOrRestore(v)
	case 'y':
		h.SetActiveStatusDisplay(param(v.Params, 0, 0))
	default:
		h.Unknown("csi", string(v.Final))
	}
}

func intParams(params []vtparse.Param) []int {
	out := make([]int, len(params))
	for i, p := range params {
		out[i] = int(p.Value)
	}
	return out
}

func hasIntermediate(intermediates []byte, want byte) bool {
	for _, b := range intermediates {
		if b == want {
			return true
		}
	}
	return false
}

func (d *Dispatcher) setModes(v vtparse.CsiDispatch, enable bool) {
	dec := v.Prefix == '?'
	for _, p := range v.Params {
		m, ok := modes.FromWire(dec, int(p.Value))
		if !ok {
			d.handler.Unknown("mode", "unrecognized mode number")
			continue
		}
		d.handler.SetMode(m, enable)
	}
}

func (d *Dispatcher) sgrDispatch(v vtparse.CsiDispatch) {
	for _, attr := range sgr.Parse(v.Params) {
		d.handler.SetAttribute(attr)
	}
}

// windowOp handles the subset of `CSI ... t` window-manipulation ops the
// core needs: 22/23 push/pop window title (icon+title variants collapse to
// one title push/pop since this core has no separate icon-name surface
// beyond SetIconName).
func (d *Dispatcher) windowOp(v vtparse.CsiDispatch) {
	switch param(v.Params, 0, 0) {
	case 22:
		d.handler.PushWindowTitle()
	case 23:
		d.handler.PopWindowTitle()
	default:
		d.handler.Unknown("window", "t")
	}
}

// kittyOrRestore distinguishes `CSI u` (restore cursor) from the Kitty
// keyboard protocol's `CSI > flags u` / `CSI < n u` / `CSI = flags ; mode u`
// / `CSI ? u` forms, which share the final byte 'u'.
func (d *Dispatcher) kittyOrRestore(v vtparse.CsiDispatch) {
	switch v.Prefix {
	case '>':
		d.handler.KittyKeyboardPush(param(v.Params, 0, 0))
	case '<':
		d.handler.KittyKeyboardPop(param(v.Params, 0, 1))
	case '=':
		d.handler.KittyKeyboardSet(param(v.Params, 0, 0))
	case '?':
		d.handler.KittyKeyboardQuery()
	default:
		d.handler.RestoreCursor()
	}
}

func (d *Dispatcher) esc(v vtparse.EscDispatch) {
	h := d.handler
	if len(v.Intermediates) == 0 {
		switch v.Final {
		case 'D':
			h.Index()
		case 'E':
			h.NextLine()
		case 'H':
			h.TabSet()
		case 'M':
			h.ReverseIndex()
		case 'c':
			h.FullReset()
		case '7':
			h.SaveCursor()
		case '8':
			h.RestoreCursor()
		default:
			h.Unknown("esc", string(v.Final))
		}
		return
	}
	if v.Intermediates[0] == '#' && v.Final == '8' {
		h.Decaln()
		return
	}
	if len(v.Intermediates) == 1 && (v.Intermediates[0] == '(' || v.Intermediates[0] == ')' ||
		v.Intermediates[0] == '*' || v.Intermediates[0] == '+') {
		slot := int(v.Intermediates[0] - '(')
		h.InvokeCharset(int(v.Final), slot, false)
		return
	}
	h.Unknown("esc", string(v.Intermediates)+string(v.Final))
}

func (d *Dispatcher) dcsUnhook() {
	// DCS sequences this core recognizes (sixel, kitty graphics, device
	// control strings) are out of the rendering scope this package owns;
	// surface the raw payload so a caller layering graphics support on top
	// can inspect it, as the teacher's handler.go does for Kitty APC data.
	d.handler.Unknown("dcs", string(d.dcsBuf))
}
