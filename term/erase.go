package term

// EraseDisplay implements ED: 0 erases cursor-to-end, 1 start-to-cursor, 2
// (and 3, scrollback too — scrollback eviction itself is pagelist's job so
// this core just clears the active region) the whole screen.
func (t *Terminal) EraseDisplay(mode int) {
	switch mode {
	case 0:
		t.eraseRowRange(t.cursorRow, t.cursorCol, t.cols)
		for row := t.cursorRow + 1; row < t.rows; row++ {
			t.eraseRowRange(row, 0, t.cols)
		}
	case 1:
		t.eraseRowRange(t.cursorRow, 0, t.cursorCol+1)
		for row := 0; row < t.cursorRow; row++ {
			t.eraseRowRange(row, 0, t.cols)
		}
	case 2, 3:
		for row := 0; row < t.rows; row++ {
			t.eraseRowRange(row, 0, t.cols)
		}
	}
}

// EraseLine implements EL: 0 cursor-to-end-of-line, 1 start-of-line-to-
// cursor, 2 the whole line.
func (t *Terminal) EraseLine(mode int) {
	switch mode {
	case 0:
		t.eraseRowRange(t.cursorRow, t.cursorCol, t.cols)
	case 1:
		t.eraseRowRange(t.cursorRow, 0, t.cursorCol+1)
	case 2:
		t.eraseRowRange(t.cursorRow, 0, t.cols)
	}
}

// EraseChars blanks n cells starting at the cursor, without shifting
// anything (ECH, distinct from DeleteChars).
func (t *Terminal) EraseChars(n int) {
	end := t.cursorCol + n
	if end > t.cols {
		end = t.cols
	}
	t.eraseRowRange(t.cursorRow, t.cursorCol, end)
}

// InsertLines inserts n blank lines at the cursor row within the scroll
// margin, shifting the rest of the margin down (IL).
func (t *Terminal) InsertLines(n int) {
	if t.cursorRow < t.marginTop || t.cursorRow > t.marginBottom {
		return
	}
	t.scrollDown(t.cursorRow, t.marginBottom, n)
}

// DeleteLines removes n lines at the cursor row within the scroll margin,
// pulling the rest of the margin up (DL).
func (t *Terminal) DeleteLines(n int) {
	if t.cursorRow < t.marginTop || t.cursorRow > t.marginBottom {
		return
	}
	t.scrollUpNoGrow(t.cursorRow, t.marginBottom, n)
}

// scrollUpNoGrow is scrollUp restricted to in-place shifting: DL must never
// push lines into scrollback (only a genuine top-of-screen line feed does
// that), even when the range happens to span the whole active region.
func (t *Terminal) scrollUpNoGrow(top, bottom, n int) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	for row := top; row <= bottom-n; row++ {
		t.copyRow(row, row+n)
	}
	for row := bottom - n + 1; row <= bottom; row++ {
		t.eraseRowRange(row, 0, t.cols)
	}
}

// InsertBlanks shifts cells at/after the cursor right by n within the
// margin, discarding what falls off the right edge (ICH).
func (t *Terminal) InsertBlanks(n int) {
	for col := t.marginRight; col >= t.cursorCol+n; col-- {
		t.copyCell(t.cursorRow, col, t.cursorRow, col-n)
	}
	end := t.cursorCol + n
	if end > t.marginRight+1 {
		end = t.marginRight + 1
	}
	t.eraseRowRange(t.cursorRow, t.cursorCol, end)
}

// DeleteChars removes n cells at the cursor, shifting the remainder of the
// line left and blanking the exposed right edge (DCH).
func (t *Terminal) DeleteChars(n int) {
	for col := t.cursorCol; col <= t.marginRight-n; col++ {
		t.copyCell(t.cursorRow, col, t.cursorRow, col+n)
	}
	start := t.marginRight - n + 1
	if start < t.cursorCol {
		start = t.cursorCol
	}
	t.eraseRowRange(t.cursorRow, start, t.marginRight+1)
}

// copyCell copies one cell's content/style/hyperlink from (srcRow, srcCol)
// to (dstRow, dstCol), the single-cell counterpart to copyRow used by
// ICH/DCH.
func (t *Terminal) copyCell(dstRow, dstCol, srcRow, srcCol int) {
	srcPin := t.pinAt(srcRow, srcCol)
	dstPin := t.pinAt(dstRow, dstCol)
	srcPage, src := srcPin.Node.Page, mustCell(srcPin)
	dstPage, dst := dstPin.Node.Page, mustCell(dstPin)

	dstPage.ClearHyperlink(dstPin.Col, dstPin.Row)
	dstPage.SetStyle(dst, srcPage.Style(src.StyleID))
	if src.HyperlinkID != 0 {
		if link, ok := srcPage.Hyperlink(src.HyperlinkID); ok {
			dstPage.SetHyperlink(dstPin.Col, dstPin.Row, link.ExplicitID, link.ImplicitID, link.URI)
		}
	}
	dst.Tag = src.Tag
	dst.Codepoint = src.Codepoint
	dst.PaletteIndex = src.PaletteIndex
	dst.R, dst.G, dst.B = src.R, src.G, src.B
	dst.Flags = src.Flags
}

// ScrollUp implements `CSI n S`: scroll the whole scroll region up by n,
// independent of cursor position.
func (t *Terminal) ScrollUp(n int) {
	t.scrollUp(t.marginTop, t.marginBottom, n)
}

// ScrollDown implements `CSI n T`.
func (t *Terminal) ScrollDown(n int) {
	t.scrollDown(t.marginTop, t.marginBottom, n)
}
