// Package stream implements spec component H: it drives a vtparse.Parser
// over an input byte stream and translates the resulting Action values
// into calls on a Handler interface, classifying OSC/DCS/APC payloads into
// the specific commands named in spec §4.G/H (window title, clipboard,
// hyperlink, cwd, semantic prompt, palette, Kitty keyboard protocol, and
// so on). Grounded on the teacher's handler.go, which defines one method
// per terminal operation directly on *Terminal; this package separates
// that surface into an interface so a caller (package term) implements it
// without the dispatcher needing to know the concrete type, matching spec
// §9's "trait/interface with default methods" note. Go has no default
// interface methods, so NoopHandler plays that role: embed it and override
// only the callbacks a given Handler cares about — the same pattern
// grpc-go's UnimplementedXServer types use.
package stream

import (
	"github.com/vtgrid/termcore/modes"
	"github.com/vtgrid/termcore/sgr"
)

// Handler receives every terminal-visible effect of an input byte stream.
// Implementations that only care about a handful of callbacks should embed
// NoopHandler and override those methods.
type Handler interface {
	Print(r rune)
	Bell()
	Backspace()
	HorizontalTab(n int)
	Linefeed()
	CarriageReturn()
	InvokeCharset(target, slot int, singleShift bool)

	CursorUp(n int)
	CursorDown(n int)
	CursorRight(n int)
	CursorLeft(n int)
	CursorCol(n int)
	CursorRow(n int)
	CursorPos(row, col int)

	EraseDisplay(mode int)
	EraseLine(mode int)
	InsertLines(n int)
	DeleteLines(n int)
	DeleteChars(n int)
	InsertBlanks(n int)
	ScrollUp(n int)
	ScrollDown(n int)
	EraseChars(n int)
	HorizontalTabBack(n int)
	PrintRepeat(n int)

	DeviceAttributes(kind byte, params []int)
	DeviceStatusReport(kind int)
	TabSet()
	TabClear(which int)

	SetMode(mode modes.Mode, enabled bool)
	SaveMode(mode modes.Mode)
	RestoreMode(mode modes.Mode)

	SetAttribute(attr sgr.Attribute)
	SetCursorStyle(style int)
	SetTopBottomMargin(top, bottom int)
	SetLeftRightMargin(left, right int)
	SetActiveStatusDisplay(kind int)

	SaveCursor()
	RestoreCursor()
	Index()
	NextLine()
	ReverseIndex()
	FullReset()
	Decaln()

	SetWindowTitle(title string)
	SetIconName(name string)
	PushWindowTitle()
	PopWindowTitle()
	ClipboardSet(selection byte, data []byte)
	ClipboardRequest(selection byte)
	PromptStart(redraw bool)
	PromptEnd()
	CommandStart()
	CommandEnd(exitCode int, hasExitCode bool)
	WorkingDirectory(uri string)
	PaletteSet(index int, spec string)
	PaletteReset(index int)
	HyperlinkStart(id, uri string)
	HyperlinkEnd()

	KittyKeyboardPush(flags int)
	KittyKeyboardPop(n int)
	KittyKeyboardSet(flags int)
	KittyKeyboardQuery()
	ModifyKeyFormat(resource, value int)

	// Unknown is invoked for recognized-but-unhandled or malformed
	// sequences; spec §7 calls for tolerating these with a log record
	// rather than an error.
	Unknown(kind, detail string)
}

// NoopHandler implements Handler with every method a no-op. Embed it in a
// concrete handler and override only the callbacks that matter.
type NoopHandler struct{}

func (NoopHandler) Print(r rune)                          {}
func (NoopHandler) Bell()                                 {}
func (NoopHandler) Backspace()                             {}
func (NoopHandler) HorizontalTab(n int)                    {}
func (NoopHandler) Linefeed()                              {}
func (NoopHandler) CarriageReturn()                        {}
func (NoopHandler) InvokeCharset(target, slot int, ss bool) {}

func (NoopHandler) CursorUp(n int)          {}
func (NoopHandler) CursorDown(n int)        {}
func (NoopHandler) CursorRight(n int)       {}
func (NoopHandler) CursorLeft(n int)        {}
func (NoopHandler) CursorCol(n int)         {}
func (NoopHandler) CursorRow(n int)         {}
func (NoopHandler) CursorPos(row, col int)  {}

func (NoopHandler) EraseDisplay(mode int)      {}
func (NoopHandler) EraseLine(mode int)         {}
func (NoopHandler) InsertLines(n int)          {}
func (NoopHandler) DeleteLines(n int)          {}
func (NoopHandler) DeleteChars(n int)          {}
func (NoopHandler) InsertBlanks(n int)         {}
func (NoopHandler) ScrollUp(n int)             {}
func (NoopHandler) ScrollDown(n int)           {}
func (NoopHandler) EraseChars(n int)           {}
func (NoopHandler) HorizontalTabBack(n int)    {}
func (NoopHandler) PrintRepeat(n int)          {}

func (NoopHandler) DeviceAttributes(kind byte, params []int) {}
func (NoopHandler) DeviceStatusReport(kind int)               {}
func (NoopHandler) TabSet()                                   {}
func (NoopHandler) TabClear(which int)                        {}

func (NoopHandler) SetMode(mode modes.Mode, enabled bool) {}
func (NoopHandler) SaveMode(mode modes.Mode)              {}
func (NoopHandler) RestoreMode(mode modes.Mode)           {}

func (NoopHandler) SetAttribute(attr sgr.Attribute)       {}
func (NoopHandler) SetCursorStyle(style int)              {}
func (NoopHandler) SetTopBottomMargin(top, bottom int)    {}
func (NoopHandler) SetLeftRightMargin(left, right int)    {}
func (NoopHandler) SetActiveStatusDisplay(kind int)       {}

func (NoopHandler) SaveCursor()    {}
func (NoopHandler) RestoreCursor() {}
func (NoopHandler) Index()         {}
func (NoopHandler) NextLine()      {}
func (NoopHandler) ReverseIndex()  {}
func (NoopHandler) FullReset()     {}
func (NoopHandler) Decaln()        {}

func (NoopHandler) SetWindowTitle(title string)                   {}
func (NoopHandler) SetIconName(name string)                       {}
func (NoopHandler) PushWindowTitle()                              {}
func (NoopHandler) PopWindowTitle()                               {}
func (NoopHandler) ClipboardSet(selection byte, data []byte)      {}
func (NoopHandler) ClipboardRequest(selection byte)               {}
func (NoopHandler) PromptStart(redraw bool)                       {}
func (NoopHandler) PromptEnd()                                    {}
func (NoopHandler) CommandStart()                                 {}
func (NoopHandler) CommandEnd(exitCode int, hasExitCode bool)     {}
func (NoopHandler) WorkingDirectory(uri string)                   {}
func (NoopHandler) PaletteSet(index int, spec string)             {}
func (NoopHandler) PaletteReset(index int)                        {}
func (NoopHandler) HyperlinkStart(id, uri string)                 {}
func (NoopHandler) HyperlinkEnd()                                 {}

func (NoopHandler) KittyKeyboardPush(flags int)           {}
func (NoopHandler) KittyKeyboardPop(n int)                {}
func (NoopHandler) KittyKeyboardSet(flags int)            {}
func (NoopHandler) KittyKeyboardQuery()                   {}
func (NoopHandler) ModifyKeyFormat(resource, value int)   {}

func (NoopHandler) Unknown(kind, detail string) {}
