package term

import (
	"testing"

	"github.com/vtgrid/termcore/modes"
)

func TestAltScreenSwapIsolatesContent(t *testing.T) {
	term := New(2, 5)
	term.WriteString("main")

	term.SetMode(modes.AltScreen, true)
	if !term.onAlt {
		t.Fatal("expected onAlt true after enabling AltScreen")
	}
	term.CursorPos(1, 1)
	term.WriteString("alt")
	cell, _, _ := term.Cell(0, 0)
	if cell.Codepoint != 'a' {
		t.Errorf("expected alt screen content 'a' at (0,0), got %q", cell.Codepoint)
	}

	term.SetMode(modes.AltScreen, false)
	cell, _, _ = term.Cell(0, 0)
	if cell.Codepoint != 'm' {
		t.Errorf("expected primary screen content 'm' restored at (0,0), got %q", cell.Codepoint)
	}
}

func TestAltScreenSaveCursorClearsOnEnter(t *testing.T) {
	term := New(3, 5)
	term.WriteString("abc")
	term.CursorPos(2, 3)

	term.SetMode(modes.AltScreenSaveCursorClearEnter, true)
	row, col := term.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor reset to (0,0) entering 1049 alt screen, got (%d,%d)", row, col)
	}

	term.SetMode(modes.AltScreenSaveCursorClearEnter, false)
	row, col = term.CursorPosition()
	if row != 1 || col != 2 {
		t.Errorf("expected cursor restored to (1,2), got (%d,%d)", row, col)
	}
}

func TestSaveRestoreMode(t *testing.T) {
	term := New(10, 10)
	term.SetMode(modes.Autowrap, true)
	term.SaveMode(modes.Autowrap)
	term.SetMode(modes.Autowrap, false)
	term.RestoreMode(modes.Autowrap)

	if !term.modes.Get(modes.Autowrap) {
		t.Error("expected Autowrap restored to true")
	}
}

func TestResizeUpdatesDimensionsAndClampsCursor(t *testing.T) {
	term := New(5, 10)
	term.CursorPos(5, 10)
	term.Resize(3, 6)

	if term.Cols() != 6 || term.Rows() != 3 {
		t.Fatalf("expected resized to 3x6, got %dx%d", term.Rows(), term.Cols())
	}
	row, col := term.CursorPosition()
	if row != 2 || col != 5 {
		t.Errorf("expected cursor clamped to (2,5), got (%d,%d)", row, col)
	}
}
