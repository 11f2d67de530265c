// Command termdemo exercises package term with a short fixed ANSI script,
// then prints the resulting screen content and cursor position. Grounded
// on the teacher's examples/basic/main.go, which does the same thing
// against the teacher's own Terminal type.
package main

import (
	"fmt"
	"strings"

	"github.com/vtgrid/termcore/term"
)

func main() {
	t := term.New(24, 80)

	t.WriteString("\x1b]2;termdemo\x07")
	t.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!\r\n")
	t.WriteString("\x1b[1;4mBold and Underlined\x1b[0m\r\n")
	t.WriteString("Normal text\r\n")
	t.WriteString("\x1b[2J\x1b[H")
	t.WriteString("After clear")

	fmt.Println("=== Terminal Content ===")
	fmt.Println(renderPlainText(t))

	row, col := t.CursorPosition()
	fmt.Printf("Title: %q\n", t.Title())
	fmt.Printf("Cursor position: row=%d, col=%d\n", row, col)
}

// renderPlainText reads back the active region's glyphs, ignoring style,
// for a quick human-readable dump; a real renderer would consult Style too.
func renderPlainText(t *term.Terminal) string {
	var b strings.Builder
	for row := 0; row < t.Rows(); row++ {
		line := make([]rune, 0, t.Cols())
		for col := 0; col < t.Cols(); col++ {
			cell, _, ok := t.Cell(row, col)
			if !ok || cell.Codepoint == 0 {
				line = append(line, ' ')
				continue
			}
			line = append(line, cell.Codepoint)
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
