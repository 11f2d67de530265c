// Package term implements spec component I: the terminal state machine
// that applies decoded stream.Handler callbacks to a pagelist.List, the
// root orchestration point tying every other component together. Grounded
// on the teacher's terminal.go/buffer.go/cursor.go, which hold the same
// responsibilities (dimensions, cursor, modes, scroll region, title,
// palette, alternate screen) directly on a flat-array Buffer; this package
// keeps that same state shape but drives a pagelist.List instead, so
// scrollback growth never requires copying the whole screen.
package term

import (
	"sync"

	"github.com/vtgrid/termcore/colors"
	"github.com/vtgrid/termcore/modes"
	"github.com/vtgrid/termcore/page"
	"github.com/vtgrid/termcore/pagelist"
	"github.com/vtgrid/termcore/stream"
)

// PromptMark records one OSC 133 shell-integration mark, mirroring the
// teacher's semantic_prompt.go/shell_integration.go PromptMark (both
// carried the same fields under slightly different names in the teacher's
// tree; this package keeps one).
type PromptMark struct {
	Kind     byte // 'A' prompt-start, 'B' command-start, 'C' executed, 'D' finished
	Row      int  // cursor row within the active region at the time of the mark
	ExitCode int
	HasExit  bool
}

// hyperlinkPen tracks the explicit id/uri of an OSC 8 span currently open
// for newly printed characters. implicit is minted once, in
// HyperlinkStart, when the span carries no explicit "id="; every cell the
// span covers reuses the same implicit value so they intern to one Link
// (spec §3) instead of a distinct one per cell.
type hyperlinkPen struct {
	active   bool
	id       string
	implicit string
	uri      string
}

// Terminal is a VT-series terminal emulator core: no rendering, no PTY
// management, just byte-stream-in/state-and-responses-out (spec §1).
type Terminal struct {
	mu sync.Mutex

	cols, rows    int
	maxScrollback int

	primary  *pagelist.List
	alt      *pagelist.List
	active   *pagelist.List
	onAlt    bool

	cursorRow, cursorCol int
	cursorVisible        bool
	cursorStyle          int

	marginTop, marginBottom int
	marginLeft, marginRight int

	pen         page.Style
	hyperlink   hyperlinkPen
	charsets    [4]charsetSlot
	activeG     int

	saved savedCursor

	modes *modes.State

	tabStops []bool

	title      string
	titleStack []string
	iconName   string

	palette [256]struct{ R, G, B uint8 }

	workingDir string
	promptMarks []PromptMark

	kittyStack []int
	kittyFlags int

	hyperlinkSeq uint64 // monotonic counter minted per unlabeled OSC 8 span (spec §3)

	dispatcher *stream.Dispatcher

	response  ResponseWriter
	bell      BellProvider
	clipboard ClipboardProvider

	stream.NoopHandler
}

var _ stream.Handler = (*Terminal)(nil)

type charsetSlot int

const (
	charsetASCII charsetSlot = iota
	charsetLineDrawing
)

type savedCursor struct {
	row, col   int
	pen        page.Style
	originMode bool
}

// Option configures a Terminal at construction.
type Option func(*Terminal)

// WithResponseWriter sets where DSR/DA/clipboard-query responses are sent.
func WithResponseWriter(w ResponseWriter) Option { return func(t *Terminal) { t.response = w } }

// WithBellProvider sets the BEL callback.
func WithBellProvider(b BellProvider) Option { return func(t *Terminal) { t.bell = b } }

// WithClipboardProvider sets the OSC 52 backend.
func WithClipboardProvider(c ClipboardProvider) Option { return func(t *Terminal) { t.clipboard = c } }

// WithMaxScrollback sets the retained history row budget (spec §4.F).
func WithMaxScrollback(n int) Option { return func(t *Terminal) { t.maxScrollback = n } }

// New creates a terminal of the given size (rows first, then columns) with
// default modes and an empty 16+216+24 standard palette.
func New(rows, cols int, opts ...Option) *Terminal {
	t := &Terminal{
		cols: cols, rows: rows,
		maxScrollback: 10_000,
		cursorVisible: true,
		marginBottom:  rows - 1,
		marginRight:   cols - 1,
		modes:         modes.New(),
		response:      NoopResponse{},
		bell:          NoopBell{},
		clipboard:     NoopClipboard{},
	}
	for _, o := range opts {
		o(t)
	}
	t.primary = pagelist.New(cols, rows, t.maxScrollback)
	t.alt = pagelist.New(cols, rows, 0)
	t.active = t.primary
	t.resetTabStops()
	for i := range t.palette {
		c := colors.StandardPalette[i]
		t.palette[i] = struct{ R, G, B uint8 }{c.R, c.G, c.B}
	}
	t.dispatcher = stream.New(t)
	return t
}

// Cols and Rows report the active dimensions.
func (t *Terminal) Cols() int { return t.cols }
func (t *Terminal) Rows() int { return t.rows }

// CursorPosition returns the 0-based (row, col) of the cursor within the
// active region.
func (t *Terminal) CursorPosition() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorRow, t.cursorCol
}

// Title returns the current window title.
func (t *Terminal) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// CurrentWorkingDirectory returns the last OSC 7/1337 reported cwd URI.
func (t *Terminal) CurrentWorkingDirectory() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.workingDir
}

// PromptMarks returns a copy of the recorded OSC 133 marks.
func (t *Terminal) PromptMarks() []PromptMark {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PromptMark, len(t.promptMarks))
	copy(out, t.promptMarks)
	return out
}

// Write feeds raw PTY output bytes through the parser/dispatcher into this
// terminal's state. It implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dispatcher.FeedString(data)
	return len(data), nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// pinAt resolves an active-region-relative (row, col) to a pagelist Pin.
func (t *Terminal) pinAt(row, col int) pagelist.Pin {
	return t.active.PinFromPoint(pagelist.Point{Tag: pagelist.TagActive, Row: row, Col: col})
}

// cell resolves an active-region-relative (row, col) to its backing page
// and cell pointer.
func (t *Terminal) cell(row, col int) (*page.Page, *page.Cell) {
	pin := t.pinAt(row, col)
	c, err := pin.Node.Page.GetRowAndCell(pin.Col, pin.Row)
	if err != nil {
		return nil, nil
	}
	return pin.Node.Page, c
}

// Cell returns a copy of the cell at (row, col) and its resolved style, for
// callers building their own rendering on top of this core.
func (t *Terminal) Cell(row, col int) (page.Cell, page.Style, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, c := t.cell(row, col)
	if c == nil {
		return page.Cell{}, page.DefaultStyle, false
	}
	return *c, p.Style(c.StyleID), true
}

// copyRow copies every column of srcRow into dstRow, column by column
// through the public page.Page API so the copy is safe whether or not src
// and dst land on the same underlying page.Page (spec's pages are
// independently fixed-size once allocated; this is the cross-page-safe
// substitute for the teacher's whole-row slice reassignment in
// buffer.go's ScrollUp/ScrollDown, which relies on a single flat array).
func (t *Terminal) copyRow(dstRow, srcRow int) {
	for col := 0; col < t.cols; col++ {
		srcPin := t.pinAt(srcRow, col)
		dstPin := t.pinAt(dstRow, col)
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
}

func mustCell(pin pagelist.Pin) *page.Cell {
	c, _ := pin.Node.Page.GetRowAndCell(pin.Col, pin.Row)
	return c
}

// eraseRowRange blanks [startCol, endCol) of the active-region row.
func (t *Terminal) eraseRowRange(row, startCol, endCol int) {
	pin := t.pinAt(row, 0)
	pin.Node.Page.EraseRow(pin.Row, startCol, endCol)
}

// scrollUp shifts rows [top, bottom] up by n, discarding the top n rows of
// the range (spec-equivalent to DECSTBM-scoped scroll). When the range is
// the whole active region and it starts at row 0, this grows the active
// region instead via pagelist.AppendRow so the discarded rows land in
// scrollback rather than being lost — the teacher's ScrollUp only ever
// discards, since its Buffer has a separate scrollback push path baked into
// the same call; here that push is pagelist's job.
func (t *Terminal) scrollUp(top, bottom, n int) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	if top == 0 && bottom == t.rows-1 {
		for i := 0; i < n; i++ {
			t.active.AppendRow()
		}
		return
	}
	for row := top; row <= bottom-n; row++ {
		t.copyRow(row, row+n)
	}
	for row := bottom - n + 1; row <= bottom; row++ {
		t.eraseRowRange(row, 0, t.cols)
	}
}

// scrollDown shifts rows [top, bottom] down by n, discarding the bottom n
// rows and blanking the top n.
func (t *Terminal) scrollDown(top, bottom, n int) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	for row := bottom; row >= top+n; row-- {
		t.copyRow(row, row-n)
	}
	for row := top; row < top+n; row++ {
		t.eraseRowRange(row, 0, t.cols)
	}
}

func (t *Terminal) resetTabStops() {
	t.tabStops = make([]bool, t.cols)
	for i := 0; i < t.cols; i += 8 {
		t.tabStops[i] = true
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
