package term

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/vtgrid/termcore/colors"
)

// SetWindowTitle sets the window title (OSC 0/2). Grounded on the
// teacher's title handling in terminal.go, which keeps a single current
// title plus a push/pop stack for CSI t 22/23.
func (t *Terminal) SetWindowTitle(title string) {
	t.title = title
}

func (t *Terminal) SetIconName(name string) {
	t.iconName = name
}

// PushWindowTitle and PopWindowTitle back CSI 22 t / CSI 23 t (xterm's
// title stack).
func (t *Terminal) PushWindowTitle() {
	t.titleStack = append(t.titleStack, t.title)
}

func (t *Terminal) PopWindowTitle() {
	if n := len(t.titleStack); n > 0 {
		t.title = t.titleStack[n-1]
		t.titleStack = t.titleStack[:n-1]
	}
}

// ClipboardSet writes data to the selection clipboard via the clipboard
// provider (OSC 52 set). data arrives base64-encoded, as stream's
// oscClipboard leaves decoding to the handler; invalid base64 is dropped.
// Grounded on the teacher's ClipboardProvider.Write.
func (t *Terminal) ClipboardSet(selection byte, data []byte) {
	decoded, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		t.Unknown("osc52", "invalid base64 clipboard payload")
		return
	}
	t.clipboard.Write(selection, decoded)
}

// ClipboardRequest answers an OSC 52 query by echoing the clipboard
// contents back in the same OSC 52 base64 form, matching the teacher's
// ClipboardProvider.Read round trip.
func (t *Terminal) ClipboardRequest(selection byte) {
	data := t.clipboard.Read(selection)
	fmt.Fprintf(t.response, "\x1b]52;%c;%s\x1b\\", selection, base64.StdEncoding.EncodeToString(data))
}

// PromptStart/PromptEnd/CommandStart/CommandEnd record shell-integration
// marks (OSC 133 A/B/C/D), grounded on the teacher's ShellIntegrationMark,
// which stores each mark's absolute row for later NextPromptRow/PrevPromptRow
// navigation. This core keeps marks relative to the active region's current
// row; a caller wanting scrollback-absolute rows can add the scrollback
// length itself via the pagelist this Terminal was built with.
func (t *Terminal) PromptStart(redraw bool) {
	t.promptMarks = append(t.promptMarks, PromptMark{Kind: 'A', Row: t.cursorRow})
}

func (t *Terminal) PromptEnd() {
	t.promptMarks = append(t.promptMarks, PromptMark{Kind: 'B', Row: t.cursorRow})
}

func (t *Terminal) CommandStart() {
	t.promptMarks = append(t.promptMarks, PromptMark{Kind: 'C', Row: t.cursorRow})
}

func (t *Terminal) CommandEnd(exitCode int, hasExitCode bool) {
	t.promptMarks = append(t.promptMarks, PromptMark{
		Kind: 'D', Row: t.cursorRow, ExitCode: exitCode, HasExit: hasExitCode,
	})
}

// WorkingDirectory records the shell's reported cwd (OSC 7).
func (t *Terminal) WorkingDirectory(uri string) {
	t.workingDir = uri
}

// PaletteSet assigns a palette entry from an OSC 4 color spec, accepting
// the two forms xterm emits, "rgb:rr/gg/bb" (hex components) and
// "#rrggbb", plus X11 color names (colors.ByName). Unrecognized specs are reported via Unknown rather than
// silently ignored, matching spec §7's tolerance policy.
func (t *Terminal) PaletteSet(index int, spec string) {
	if index < 0 || index >= len(t.palette) {
		return
	}
	r, g, b, ok := parseColorSpec(spec)
	if !ok {
		t.Unknown("osc4", "unrecognized color spec: "+spec)
		return
	}
	t.palette[index] = struct{ R, G, B uint8 }{r, g, b}
}

// PaletteReset restores one palette entry (index >= 0) or the whole
// palette (index < 0, OSC 104 with no params) to the standard palette.
func (t *Terminal) PaletteReset(index int) {
	if index < 0 {
		for i := range t.palette {
			t.palette[i] = standardPaletteEntry(i)
		}
		return
	}
	if index < len(t.palette) {
		t.palette[index] = standardPaletteEntry(index)
	}
}

// HyperlinkStart/HyperlinkEnd toggle the pen's hyperlink (OSC 8), consumed
// by Print when writing a cell. When the sender omits an explicit "id=",
// HyperlinkStart mints the span's implicit id once here, rather than
// leaving Print to mint a fresh one on every cell it writes.
func (t *Terminal) HyperlinkStart(id, uri string) {
	implicit := ""
	if id == "" {
		t.hyperlinkSeq++
		implicit = strconv.FormatUint(t.hyperlinkSeq, 10)
	}
	t.hyperlink = hyperlinkPen{active: true, id: id, implicit: implicit, uri: uri}
}

func (t *Terminal) HyperlinkEnd() {
	t.hyperlink = hyperlinkPen{}
}

// KittyKeyboardPush/Pop/Set maintain the Kitty keyboard protocol's flag
// stack (CSI > u / CSI < u / CSI = u); KittyKeyboardQuery answers CSI ? u
// with the currently active flags.
func (t *Terminal) KittyKeyboardPush(flags int) {
	t.kittyStack = append(t.kittyStack, t.kittyFlags)
	t.kittyFlags = flags
}

func (t *Terminal) KittyKeyboardPop(n int) {
	if n <= 0 {
		n = 1
	}
	for ; n > 0 && len(t.kittyStack) > 0; n-- {
		last := len(t.kittyStack) - 1
		t.kittyFlags = t.kittyStack[last]
		t.kittyStack = t.kittyStack[:last]
	}
}

func (t *Terminal) KittyKeyboardSet(flags int) {
	t.kittyFlags = flags
}

func (t *Terminal) KittyKeyboardQuery() {
	fmt.Fprintf(t.response, "\x1b[?%du", t.kittyFlags)
}

func parseColorSpec(spec string) (r, g, b uint8, ok bool) {
	if strings.HasPrefix(spec, "#") && len(spec) == 7 {
		return hexByte(spec[1:3]), hexByte(spec[3:5]), hexByte(spec[5:7]), true
	}
	if strings.HasPrefix(spec, "rgb:") {
		parts := strings.Split(spec[4:], "/")
		if len(parts) == 3 {
			return hexByte(parts[0]), hexByte(parts[1]), hexByte(parts[2]), true
		}
	}
	if c, err := colors.ByName(spec); err == nil {
		return c.R, c.G, c.B, true
	}
	return 0, 0, 0, false
}

func hexByte(s string) uint8 {
	if len(s) > 2 {
		s = s[:2]
	}
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}

func standardPaletteEntry(i int) struct{ R, G, B uint8 } {
	c := colors.StandardPalette[i]
	return struct{ R, G, B uint8 }{c.R, c.G, c.B}
}
