package term

import (
	"fmt"

	"github.com/vtgrid/termcore/modes"
	"github.com/vtgrid/termcore/page"
)

// originTop/originBottom return the row bounds cursor movement is clamped
// to: the scroll margin under DECOM (origin mode), the full active region
// otherwise. Grounded on the teacher's scrollTop/scrollBottom handling,
// generalized to also gate on Origin mode per spec §6.
func (t *Terminal) originBounds() (top, bottom int) {
	if t.modes.Get(modes.Origin) {
		return t.marginTop, t.marginBottom
	}
	return 0, t.rows - 1
}

func (t *Terminal) clampRow(row int) int {
	top, bottom := t.originBounds()
	return clamp(row, top, bottom)
}

// CursorUp/Down/Right/Left move the cursor by n, clamped to the current
// origin bounds (rows) or margins (columns); they never trigger a wrap or
// scroll, matching xterm's CUU/CUD/CUF/CUB.
func (t *Terminal) CursorUp(n int) {
	t.active.SetPendingWrap(false)
	t.cursorRow = t.clampRow(t.cursorRow - n)
}

func (t *Terminal) CursorDown(n int) {
	t.active.SetPendingWrap(false)
	t.cursorRow = t.clampRow(t.cursorRow + n)
}

func (t *Terminal) CursorRight(n int) {
	t.active.SetPendingWrap(false)
	t.cursorCol = clamp(t.cursorCol+n, 0, t.marginRight)
}

func (t *Terminal) CursorLeft(n int) {
	t.active.SetPendingWrap(false)
	t.cursorCol = clamp(t.cursorCol-n, 0, t.marginRight)
}

// CursorCol moves to absolute column n (1-based on the wire, spec's CHA).
func (t *Terminal) CursorCol(n int) {
	t.active.SetPendingWrap(false)
	t.cursorCol = clamp(n-1, 0, t.cols-1)
}

// CursorRow moves to absolute row n (1-based, VPA).
func (t *Terminal) CursorRow(n int) {
	t.active.SetPendingWrap(false)
	top, bottom := t.originBounds()
	t.cursorRow = clamp(top+n-1, top, bottom)
}

// CursorPos moves to absolute (row, col), both 1-based (CUP/HVP), relative
// to the origin-mode-adjusted top when DECOM is set.
func (t *Terminal) CursorPos(row, col int) {
	t.active.SetPendingWrap(false)
	top, bottom := t.originBounds()
	t.cursorRow = clamp(top+row-1, top, bottom)
	t.cursorCol = clamp(col-1, 0, t.cols-1)
}

// Index (IND) moves down one row, scrolling the margin at the bottom —
// identical to a bare line feed without any column reset.
func (t *Terminal) Index() {
	t.lineFeed()
}

// ReverseIndex (RI) moves up one row, scrolling the margin downward at the
// top.
func (t *Terminal) ReverseIndex() {
	if t.cursorRow == t.marginTop {
		t.scrollDown(t.marginTop, t.marginBottom, 1)
		return
	}
	if t.cursorRow > 0 {
		t.cursorRow--
	}
}

// NextLine (NEL) is Index plus carriage return.
func (t *Terminal) NextLine() {
	t.lineFeed()
	t.cursorCol = t.marginLeft
}

// SaveCursor stores cursor position, pen, and origin mode (DECSC / ESC 7).
func (t *Terminal) SaveCursor() {
	t.saved = savedCursor{
		row: t.cursorRow, col: t.cursorCol,
		pen:        t.pen,
		originMode: t.modes.Get(modes.Origin),
	}
}

// RestoreCursor restores what SaveCursor captured (DECRC / ESC 8). If
// nothing was ever saved, it restores the home position.
func (t *Terminal) RestoreCursor() {
	t.cursorRow = clamp(t.saved.row, 0, t.rows-1)
	t.cursorCol = clamp(t.saved.col, 0, t.cols-1)
	t.pen = t.saved.pen
	t.modes.Set(modes.Origin, t.saved.originMode)
	t.active.SetPendingWrap(false)
}

// Decaln (DECALN) fills the active region with 'E' for screen alignment
// testing.
func (t *Terminal) Decaln() {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			pin := t.pinAt(row, col)
			cell, err := pin.Node.Page.GetRowAndCell(pin.Col, pin.Row)
			if err != nil {
				continue
			}
			cell.Tag = page.ContentCodepoint
			cell.Codepoint = 'E'
		}
	}
}

// FullReset (RIS) resets modes, margins, pen, tab stops, and cursor to
// their power-on defaults, and clears scrollback.
func (t *Terminal) FullReset() {
	t.modes.ResetToDefaults()
	t.marginTop, t.marginBottom = 0, t.rows-1
	t.marginLeft, t.marginRight = 0, t.cols-1
	t.pen = page.DefaultStyle
	t.cursorRow, t.cursorCol = 0, 0
	t.hyperlink = hyperlinkPen{}
	t.resetTabStops()
	t.charsets = [4]charsetSlot{}
	t.activeG = 0
	t.title = ""
	t.titleStack = nil
	t.active.SetPendingWrap(false)
}

// SetCursorStyle applies a DECSCUSR style code.
func (t *Terminal) SetCursorStyle(style int) {
	t.cursorStyle = style
}

// SetTopBottomMargin sets the vertical scroll region (DECSTBM). A bottom of
// 0 means "to the last row".
func (t *Terminal) SetTopBottomMargin(top, bottom int) {
	if bottom == 0 {
		bottom = t.rows
	}
	top = clamp(top-1, 0, t.rows-1)
	bottom = clamp(bottom-1, 0, t.rows-1)
	if top >= bottom {
		top, bottom = 0, t.rows-1
	}
	t.marginTop, t.marginBottom = top, bottom
	t.cursorRow, t.cursorCol = t.originHome()
}

// SetLeftRightMargin sets the horizontal scroll region (DECSLRM), only
// meaningful when EnableLeftRightMargin mode is set.
func (t *Terminal) SetLeftRightMargin(left, right int) {
	if !t.modes.Get(modes.EnableLeftRightMargin) {
		return
	}
	if right == 0 {
		right = t.cols
	}
	left = clamp(left-1, 0, t.cols-1)
	right = clamp(right-1, 0, t.cols-1)
	if left >= right {
		left, right = 0, t.cols-1
	}
	t.marginLeft, t.marginRight = left, right
	t.cursorRow, t.cursorCol = t.originHome()
}

func (t *Terminal) originHome() (int, int) {
	if t.modes.Get(modes.Origin) {
		return t.marginTop, t.marginLeft
	}
	return 0, 0
}

// SetActiveStatusDisplay is accepted for interface completeness; this core
// has no separate status-line region to switch into.
func (t *Terminal) SetActiveStatusDisplay(kind int) {}

// DeviceAttributes answers a DA1/DA2/DA3 query by identifying as a VT220
// with the extensions this core implements.
func (t *Terminal) DeviceAttributes(kind byte, params []int) {
	switch kind {
	case '>':
		fmt.Fprint(t.response, "\x1b[>1;10;0c")
	case '=':
		fmt.Fprint(t.response, "\x1b[P1;1;0c")
	default:
		fmt.Fprint(t.response, "\x1b[?62;22c")
	}
}

// DeviceStatusReport answers CSI n (DSR): 5 reports OK status, 6 reports
// the cursor position (CPR).
func (t *Terminal) DeviceStatusReport(kind int) {
	switch kind {
	case 5:
		fmt.Fprint(t.response, "\x1b[0n")
	case 6:
		fmt.Fprintf(t.response, "\x1b[%d;%dR", t.cursorRow+1, t.cursorCol+1)
	}
}

// ModifyKeyFormat records xterm's modifyOtherKeys resource/value pair.
// Reporting it back out via DECRQSS is not implemented; the pair is kept
// only so a caller building key-encoding on top of this core can read it.
func (t *Terminal) ModifyKeyFormat(resource, value int) {
	if resource == 4 {
		t.kittyFlags = value
	}
}
