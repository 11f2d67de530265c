package term

import (
	"testing"

	"github.com/vtgrid/termcore/colors"
	"github.com/vtgrid/termcore/page"
)

func TestSGRBoldAndResetViaCSI(t *testing.T) {
	term := New(1, 10)
	term.WriteString("\x1b[1ma")

	_, style, ok := term.Cell(0, 0)
	if !ok {
		t.Fatal("expected cell in range")
	}
	if !style.Bold {
		t.Errorf("expected bold style after CSI 1 m, got %+v", style)
	}

	term.WriteString("\x1b[0mb")
	_, style, _ = term.Cell(0, 1)
	if style.Bold {
		t.Errorf("expected bold cleared after CSI 0 m, got %+v", style)
	}
}

func TestSGR256Foreground(t *testing.T) {
	term := New(1, 10)
	term.WriteString("\x1b[38;5;202ma")

	_, style, _ := term.Cell(0, 0)
	want := colors.FromPalette(202)
	if style.FG != want {
		t.Errorf("expected FG %+v, got %+v", want, style.FG)
	}
}

func TestSGRTrueColorBackground(t *testing.T) {
	term := New(1, 10)
	term.WriteString("\x1b[48;2;10;20;30ma")

	_, style, _ := term.Cell(0, 0)
	want := colors.FromRGB(10, 20, 30)
	if style.BG != want {
		t.Errorf("expected BG %+v, got %+v", want, style.BG)
	}
}

func TestSGRCurlyUnderline(t *testing.T) {
	term := New(1, 10)
	term.WriteString("\x1b[4:3ma")

	_, style, _ := term.Cell(0, 0)
	if style.Underline != page.UnderlineCurly {
		t.Errorf("expected curly underline, got %v", style.Underline)
	}
}
