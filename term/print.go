package term

import (
	"github.com/vtgrid/termcore/modes"
	"github.com/vtgrid/termcore/page"
	"github.com/vtgrid/termcore/width"
)

var lineDrawingTable = map[rune]rune{
	'j': '┘', 'k': '┐', 'l': '┌', 'm': '└', 'n': '┼',
	'q': '─', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬', 'x': '│',
}

// Print implements spec §4.I's printing algorithm: decode (already done by
// the caller), classify width, resolve a deferred wrap from the previous
// call, write the glyph (plus a spacer cell for wide characters), apply the
// current pen and hyperlink, then advance the cursor and defer wrap if the
// new column has run past the margin. Grounded on the teacher's
// handler.go Input, generalized from its single full-width Buffer to
// pagelist's active-region addressing.
func (t *Terminal) Print(r rune) {
	if t.charsets[t.activeG] == charsetLineDrawing {
		if mapped, ok := lineDrawingTable[r]; ok {
			r = mapped
		}
	}

	w := width.RuneWidth(r)
	if w == 0 {
		// Combining marks are not merged into the previous cell's grapheme
		// cluster yet; spec §9 flags this as future work (FlagHasGraphemeExtension
		// exists for exactly this, unused until the extension path is built).
		return
	}

	if t.active.PendingWrap() {
		t.wrapLine()
	}

	if t.cursorCol+w > t.marginRight+1 {
		if w == 2 && t.cursorCol <= t.marginRight {
			t.eraseRowRange(t.cursorRow, t.cursorCol, t.cursorCol+1)
		}
		t.wrapLine()
	}

	pin := t.pinAt(t.cursorRow, t.cursorCol)
	p := pin.Node.Page
	cell, err := p.GetRowAndCell(pin.Col, pin.Row)
	if err != nil {
		return
	}
	cell.Tag = page.ContentCodepoint
	cell.Codepoint = r
	p.SetStyle(cell, t.pen)
	if t.hyperlink.active {
		p.SetHyperlink(pin.Col, pin.Row, t.hyperlink.id, t.hyperlink.implicit, t.hyperlink.uri)
	} else {
		p.ClearHyperlink(pin.Col, pin.Row)
	}
	if w == 2 {
		cell.SetFlag(page.FlagWide)
	} else {
		cell.ClearFlag(page.FlagWide | page.FlagWideSpacer)
	}

	if w == 2 && t.cursorCol+1 <= t.marginRight {
		_, spacer := t.cell(t.cursorRow, t.cursorCol+1)
		if spacer != nil {
			*spacer = page.Blank()
			spacer.SetFlag(page.FlagWideSpacer)
		}
	}

	t.cursorCol += w
	if t.cursorCol > t.marginRight {
		if t.modes.Get(modes.Autowrap) {
			t.cursorCol = t.marginRight
			t.active.SetPendingWrap(true)
		} else {
			t.cursorCol = t.marginRight
		}
	}
}

// wrapLine performs the actual line wrap deferred by pendingWrap: mark the
// row being left as a soft wrap (spec §4.F's reflow needs this to tell a
// wrapped line from a hard newline), advance to the next row (scrolling
// within the margin, or growing the active region at the bottom of a
// full-screen scroll region), reset to the left margin, and clear the
// deferred-wrap flag.
func (t *Terminal) wrapLine() {
	pin := t.pinAt(t.cursorRow, 0)
	pin.Node.Page.SetWrapped(pin.Row, true)
	t.active.SetPendingWrap(false)
	t.lineFeed()
	t.cursorCol = t.marginLeft
}

// lineFeed advances the cursor one row, scrolling the margin region if
// already at its bottom.
func (t *Terminal) lineFeed() {
	if t.cursorRow == t.marginBottom {
		t.scrollUp(t.marginTop, t.marginBottom, 1)
		return
	}
	if t.cursorRow < t.rows-1 {
		t.cursorRow++
	}
}

// Linefeed handles LF/VT/FF (spec: cursor down one row; if LineFeedNewLine
// mode is set, also return to column 0 — matching the teacher's handling of
// ModeLineFeedNewLine).
func (t *Terminal) Linefeed() {
	t.lineFeed()
	if t.modes.Get(modes.LineFeedNewLine) {
		t.cursorCol = t.marginLeft
	}
}

// CarriageReturn moves the cursor to the left margin.
func (t *Terminal) CarriageReturn() {
	t.cursorCol = t.marginLeft
}

// Backspace moves the cursor left one column, not crossing the left margin.
func (t *Terminal) Backspace() {
	if t.cursorCol > 0 {
		t.cursorCol--
	}
}

// Bell notifies the bell provider.
func (t *Terminal) Bell() {
	t.bell.Ring()
}

// HorizontalTab advances the cursor to the n-th next tab stop (or the right
// margin if none remain).
func (t *Terminal) HorizontalTab(n int) {
	for ; n > 0; n-- {
		next := -1
		for c := t.cursorCol + 1; c <= t.marginRight; c++ {
			if c < len(t.tabStops) && t.tabStops[c] {
				next = c
				break
			}
		}
		if next < 0 {
			t.cursorCol = t.marginRight
			return
		}
		t.cursorCol = next
	}
}

// HorizontalTabBack moves the cursor to the n-th previous tab stop.
func (t *Terminal) HorizontalTabBack(n int) {
	for ; n > 0; n-- {
		prev := -1
		for c := t.cursorCol - 1; c >= t.marginLeft; c-- {
			if c < len(t.tabStops) && t.tabStops[c] {
				prev = c
				break
			}
		}
		if prev < 0 {
			t.cursorCol = t.marginLeft
			return
		}
		t.cursorCol = prev
	}
}

// TabSet sets a tab stop at the cursor's column.
func (t *Terminal) TabSet() {
	if t.cursorCol < len(t.tabStops) {
		t.tabStops[t.cursorCol] = true
	}
}

// TabClear clears tab stops: 0 clears the stop at the cursor, 3 clears all.
func (t *Terminal) TabClear(which int) {
	switch which {
	case 0:
		if t.cursorCol < len(t.tabStops) {
			t.tabStops[t.cursorCol] = false
		}
	case 3:
		for i := range t.tabStops {
			t.tabStops[i] = false
		}
	}
}

// PrintRepeat reprints the last-printed character n more times (xterm's
// REP, `CSI n b`), a common escape from shells emitting runs of the same
// rune.
func (t *Terminal) PrintRepeat(n int) {
	_, last := t.cell(t.cursorRow, clamp(t.cursorCol-1, 0, t.marginRight))
	if last == nil || last.Tag != page.ContentCodepoint {
		return
	}
	r := last.Codepoint
	for i := 0; i < n; i++ {
		t.Print(r)
	}
}

// InvokeCharset designates target's charset into slot and selects slot as
// the active G-set (spec's SCS/shift handling). With singleShift set, the
// slot is only designated: the active G-set is left unchanged, so a single
// shift does not alter how the next character prints.
func (t *Terminal) InvokeCharset(target, slot int, singleShift bool) {
	if slot < 0 || slot >= 4 {
		return
	}
	if target == 'A' || target == 'B' {
		t.charsets[slot] = charsetASCII
	} else if target == '0' {
		t.charsets[slot] = charsetLineDrawing
	}
	if !singleShift {
		t.activeG = slot
	}
}
