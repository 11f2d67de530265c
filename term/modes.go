package term

import "github.com/vtgrid/termcore/modes"

// SetMode applies a decoded mode change, handling the handful of modes with
// side effects beyond the flag itself: entering/leaving the alternate
// screen, and origin mode moving the cursor home. Grounded on the
// teacher's SetMode/ModeSwapScreenAndSetRestoreCursor handling in
// terminal.go, generalized from its single ad hoc bitmask to the modes
// package's closed enum.
func (t *Terminal) SetMode(mode modes.Mode, enabled bool) {
	switch mode {
	case modes.AltScreen:
		t.swapScreen(enabled, false)
	case modes.AltScreenSaveCursorClearEnter:
		t.swapScreen(enabled, true)
	}
	t.modes.Set(mode, enabled)
	if mode == modes.Origin {
		t.cursorRow, t.cursorCol = t.originHome()
	}
}

// swapScreen switches the active page list between primary and alternate.
// withCursor additionally saves/restores the cursor and clears the
// alternate screen on entry (DECSET 1049's behavior, versus bare 1047).
func (t *Terminal) swapScreen(toAlt, withCursor bool) {
	if toAlt == t.onAlt {
		return
	}
	if toAlt {
		if withCursor {
			t.SaveCursor()
		}
		t.active = t.alt
		t.onAlt = true
		if withCursor {
			t.EraseDisplay(2)
			t.cursorRow, t.cursorCol = 0, 0
		}
	} else {
		t.active = t.primary
		t.onAlt = false
		if withCursor {
			t.RestoreCursor()
		}
	}
}

// SaveMode and RestoreMode implement the single-slot save/restore register
// spec §4.J describes (`CSI ? Pm s` / `CSI ? Pm r`).
func (t *Terminal) SaveMode(mode modes.Mode) {
	t.modes.Save(mode)
}

func (t *Terminal) RestoreMode(mode modes.Mode) {
	t.modes.Restore(mode)
	enabled := t.modes.Get(mode)
	switch mode {
	case modes.AltScreen:
		t.swapScreen(enabled, false)
	case modes.AltScreenSaveCursorClearEnter:
		t.swapScreen(enabled, true)
	}
}

// Resize changes the terminal's active dimensions, propagating to both the
// primary and alternate page lists (each reflows its own content at the
// new column width, see pagelist.List.Resize) and re-deriving tab stops
// and margins. The cursor's row/col are clamped into the new bounds
// afterward rather than tracked through the reflow (pagelist's reflowCols
// doc comment explains why that's only an approximation).
func (t *Terminal) Resize(rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cols, t.rows = cols, rows
	t.primary.Resize(cols, rows)
	t.alt.Resize(cols, rows)
	t.marginTop, t.marginBottom = 0, rows-1
	t.marginLeft, t.marginRight = 0, cols-1
	t.resetTabStops()
	t.cursorRow = clamp(t.cursorRow, 0, rows-1)
	t.cursorCol = clamp(t.cursorCol, 0, cols-1)
}
