package stream

import (
	"testing"

	"github.com/vtgrid/termcore/modes"
	"github.com/vtgrid/termcore/sgr"
)

// recorder embeds NoopHandler and records the calls tests care about.
type recorder struct {
	NoopHandler

	printed       []rune
	cursorUpN     int
	cursorPos     [2]int
	erasedDisplay int
	modesSet      map[modes.Mode]bool
	attrs         []sgr.Attribute
	title         string
	links         []string
	cwd           string
	clipboardSet  []byte
	clipboardSel  byte
	promptStarted bool
	commandEnded  bool
	exitCode      int
	kittyPush     int
	kittyQuery    bool
	unknownKinds  []string
	bells         int
}

func newRecorder() *recorder {
	return &recorder{modesSet: map[modes.Mode]bool{}}
}

func (r *recorder) Print(c rune)            { r.printed = append(r.printed, c) }
func (r *recorder) CursorUp(n int)          { r.cursorUpN = n }
func (r *recorder) CursorPos(row, col int)  { r.cursorPos = [2]int{row, col} }
func (r *recorder) EraseDisplay(mode int)   { r.erasedDisplay = mode }
func (r *recorder) SetMode(m modes.Mode, v bool) { r.modesSet[m] = v }
func (r *recorder) SetAttribute(a sgr.Attribute)  { r.attrs = append(r.attrs, a) }
func (r *recorder) SetWindowTitle(title string)   { r.title = title }
func (r *recorder) HyperlinkStart(id, uri string) { r.links = append(r.links, uri) }
func (r *recorder) WorkingDirectory(uri string)   { r.cwd = uri }
func (r *recorder) ClipboardSet(sel byte, data []byte) {
	r.clipboardSel = sel
	r.clipboardSet = data
}
func (r *recorder) PromptStart(redraw bool) { r.promptStarted = true }
func (r *recorder) CommandEnd(code int, has bool) {
	r.commandEnded = true
	r.exitCode = code
}
func (r *recorder) KittyKeyboardPush(flags int) { r.kittyPush = flags }
func (r *recorder) KittyKeyboardQuery()         { r.kittyQuery = true }
func (r *recorder) Unknown(kind, detail string) { r.unknownKinds = append(r.unknownKinds, kind) }
func (r *recorder) Bell()                       { r.bells++ }

func TestDispatcherPrintAndExecute(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("A\x07"))
	if len(r.printed) != 1 || r.printed[0] != 'A' {
		t.Fatalf("printed = %v, want [A]", r.printed)
	}
	if r.bells != 1 {
		t.Fatalf("bells = %d, want 1 from executing BEL", r.bells)
	}
}

func TestDispatcherCursorMovement(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b[5A"))
	if r.cursorUpN != 5 {
		t.Fatalf("CursorUp(%d), want 5", r.cursorUpN)
	}
	d.FeedString([]byte("\x1b[10;20H"))
	if r.cursorPos != [2]int{10, 20} {
		t.Fatalf("CursorPos = %v, want [10 20]", r.cursorPos)
	}
}

func TestDispatcherEraseDisplayDefaultsToZero(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b[J"))
	if r.erasedDisplay != 0 {
		t.Fatalf("EraseDisplay mode = %d, want 0", r.erasedDisplay)
	}
}

func TestDispatcherDECModeUsesPrefix(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b[?25h"))
	m, _ := modes.FromWire(true, 25)
	if !r.modesSet[m] {
		t.Fatalf("expected DEC mode 25 to be set")
	}
}

func TestDispatcherSGRBold(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b[1m"))
	if len(r.attrs) == 0 {
		t.Fatalf("expected at least one SGR attribute")
	}
}

func TestDispatcherModifyKeyFormatUsesGtPrefix(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b[>4;2m"))
	if len(r.attrs) != 0 {
		t.Fatalf("CSI > ... m must not be routed to SGR")
	}
}

func TestDispatcherKittyKeyboardVariants(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b[>5u"))
	if r.kittyPush != 5 {
		t.Fatalf("KittyKeyboardPush(%d), want 5", r.kittyPush)
	}
	d.FeedString([]byte("\x1b[?u"))
	if !r.kittyQuery {
		t.Fatalf("expected KittyKeyboardQuery")
	}
}

func TestDispatcherWindowTitleOSC(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b]0;my title\x07"))
	if r.title != "my title" {
		t.Fatalf("title = %q, want %q", r.title, "my title")
	}
}

func TestDispatcherHyperlinkOSC8(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b]8;id=42;https://example.com\x07"))
	if len(r.links) != 1 || r.links[0] != "https://example.com" {
		t.Fatalf("links = %v", r.links)
	}
}

func TestDispatcherWorkingDirectoryOSC7(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b]7;file://host/home/user\x07"))
	if r.cwd != "file://host/home/user" {
		t.Fatalf("cwd = %q", r.cwd)
	}
}

func TestDispatcherClipboardSetOSC52(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b]52;c;aGVsbG8=\x07"))
	if string(r.clipboardSet) != "aGVsbG8=" || r.clipboardSel != 'c' {
		t.Fatalf("clipboard = %q sel=%c", r.clipboardSet, r.clipboardSel)
	}
}

func TestDispatcherSemanticPromptOSC133(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b]133;A\x07"))
	if !r.promptStarted {
		t.Fatalf("expected PromptStart")
	}
	d.FeedString([]byte("\x1b]133;D;17\x07"))
	if !r.commandEnded || r.exitCode != 17 {
		t.Fatalf("commandEnded=%v exitCode=%d, want true/17", r.commandEnded, r.exitCode)
	}
}

func TestDispatcherUnknownFinalByte(t *testing.T) {
	r := newRecorder()
	d := New(r)
	d.FeedString([]byte("\x1b[5~"))
	if len(r.unknownKinds) == 0 {
		t.Fatalf("expected an Unknown callback for an unrecognized CSI final")
	}
}
