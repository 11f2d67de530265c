package term

import "testing"

func TestEraseDisplayFromCursor(t *testing.T) {
	term := New(2, 5)
	term.WriteString("abcde")
	term.CursorPos(1, 3)
	term.EraseDisplay(0)

	cell, _, _ := term.Cell(0, 2)
	if cell.Codepoint != 0 {
		t.Errorf("expected (0,2) erased, got %q", cell.Codepoint)
	}
	cell, _, _ = term.Cell(0, 1)
	if cell.Codepoint != 'b' {
		t.Errorf("expected (0,1) untouched 'b', got %q", cell.Codepoint)
	}
}

func TestEraseLineWhole(t *testing.T) {
	term := New(1, 5)
	term.WriteString("abcde")
	term.CursorPos(1, 1)
	term.EraseLine(2)

	for col := 0; col < 5; col++ {
		cell, _, _ := term.Cell(0, col)
		if cell.Codepoint != 0 {
			t.Errorf("expected (0,%d) erased, got %q", col, cell.Codepoint)
		}
	}
}

func TestInsertDeleteLines(t *testing.T) {
	term := New(3, 5)
	term.WriteString("a\r\nb\r\nc")
	term.CursorPos(1, 1)
	term.InsertLines(1)

	cell, _, _ := term.Cell(1, 0)
	if cell.Codepoint != 'a' {
		t.Errorf("expected 'a' pushed to row 1, got %q", cell.Codepoint)
	}
	cell, _, _ = term.Cell(0, 0)
	if cell.Codepoint != 0 {
		t.Errorf("expected row 0 blanked by insert, got %q", cell.Codepoint)
	}

	term.DeleteLines(1)
	cell, _, _ = term.Cell(0, 0)
	if cell.Codepoint != 'a' {
		t.Errorf("expected 'a' pulled back to row 0 after delete, got %q", cell.Codepoint)
	}
}

func TestInsertDeleteChars(t *testing.T) {
	term := New(1, 5)
	term.WriteString("abcde")
	term.CursorPos(1, 2)
	term.InsertBlanks(2)

	cell, _, _ := term.Cell(0, 1)
	if cell.Codepoint != 0 {
		t.Errorf("expected blank inserted at col 1, got %q", cell.Codepoint)
	}
	cell, _, _ = term.Cell(0, 3)
	if cell.Codepoint != 'b' {
		t.Errorf("expected 'b' shifted to col 3, got %q", cell.Codepoint)
	}

	term.DeleteChars(2)
	cell, _, _ = term.Cell(0, 1)
	if cell.Codepoint != 'b' {
		t.Errorf("expected 'b' shifted back to col 1, got %q", cell.Codepoint)
	}
}

func TestScrollUpDownCSI(t *testing.T) {
	term := New(3, 5)
	term.WriteString("a\r\nb\r\nc")
	term.ScrollUp(1)

	cell, _, _ := term.Cell(0, 0)
	if cell.Codepoint != 'b' {
		t.Errorf("expected 'b' after ScrollUp(1), got %q", cell.Codepoint)
	}

	term.ScrollDown(1)
	cell, _, _ = term.Cell(1, 0)
	if cell.Codepoint != 'b' {
		t.Errorf("expected 'b' back at row 1 after ScrollDown(1), got %q", cell.Codepoint)
	}
}
