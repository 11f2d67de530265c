// Package page implements spec component E: a fixed-capacity grid of
// cells plus the interned style set, interned hyperlink set, cell→
// hyperlink offset map, and bitmap string allocator that back it. Grounded
// on the teacher's buffer.go/cell.go (the row/cell grid and its mutation
// API: GetCell, SetCell, clone/erase row helpers), with the teacher's
// pointer-based style/hyperlink sharing replaced by the offset/intern/
// bitmap/ohmap primitives components A-D build, per spec §9.
package page

import (
	"fmt"
	"io"

	"github.com/vtgrid/termcore/bitmap"
	"github.com/vtgrid/termcore/hyperlink"
	"github.com/vtgrid/termcore/intern"
	"github.com/vtgrid/termcore/offset"
	"github.com/vtgrid/termcore/ohmap"
)

// ErrOutOfRange is returned by any operation addressing a cell outside the
// page's (cols, rows) bounds.
var ErrOutOfRange = fmt.Errorf("page: cell coordinates out of range")

// ErrStyleCapacity and ErrHyperlinkCapacity are returned when a page's
// style or hyperlink set has reached the capacity given at construction —
// the spec's "fails on out-of-capacity" path for SetStyle/SetHyperlink,
// which the caller handles by allocating a fresh, larger page.
var (
	ErrStyleCapacity     = fmt.Errorf("page: style set at capacity")
	ErrHyperlinkCapacity = fmt.Errorf("page: hyperlink set at capacity")
)

type chunkRef struct {
	index, len int
}

// Page is constructed from capacity descriptors (cols, rows, styles_cap,
// hyperlinks_cap, string_bytes), spec §4.E. Unlike the spec's single
// contiguous aligned buffer, each region here is its own Go value (a slice
// or a purpose-built set) — idiomatic Go has no portable way to lay out
// heterogeneous regions in one buffer without unsafe, so this keeps the
// *addressing discipline* (offsets/dense ids, never raw pointers between
// cells and their style/hyperlink/string data) without literally packing
// every region into one byte slice (see DESIGN.md).
type Page struct {
	cols, rows int

	grid           *offset.Buffer[Cell]
	styles         *intern.Set[Style]
	hyperlinks     *hyperlink.Set
	cellHyperlinks *ohmap.Map
	stringAlloc    *bitmap.Allocator
	stringChunks   map[hyperlink.Link]chunkRef

	stylesCap     int
	hyperlinksCap int

	// wrapped[row] is true when row's content continues onto row+1 rather
	// than ending a logical line (spec §4.F's "trailing-wrap flag"),
	// needed to reflow content correctly on a column resize.
	wrapped []bool
}

// New creates a page with the given capacity descriptors.
func New(cols, rows, stylesCap, hyperlinksCap, stringBytes int) *Page {
	p := &Page{
		cols:           cols,
		rows:           rows,
		grid:           offset.NewBuffer(make([]Cell, cols*rows)),
		styles:         intern.New[Style](nil),
		cellHyperlinks: ohmap.New(hyperlinksCap),
		stringAlloc:    bitmap.New(32, stringBytes),
		stringChunks:   make(map[hyperlink.Link]chunkRef),
		stylesCap:      stylesCap,
		hyperlinksCap:  hyperlinksCap,
		wrapped:        make([]bool, rows),
	}
	p.hyperlinks = hyperlink.NewWithFree(func(l hyperlink.Link) {
		if ref, ok := p.stringChunks[l]; ok {
			p.stringAlloc.Free(ref.index, ref.len)
			delete(p.stringChunks, l)
		}
	})
	return p
}

// Cols and Rows report the page's fixed grid dimensions.
func (p *Page) Cols() int { return p.cols }
func (p *Page) Rows() int { return p.rows }

// Wrapped reports whether row's content is a soft line wrap that
// continues onto row+1, and SetWrapped records that fact. Used by Print
// when autowrap defers onto the next row, and consumed by pagelist's
// column reflow to tell logical lines apart from hard newlines.
func (p *Page) Wrapped(row int) bool {
	if row < 0 || row >= len(p.wrapped) {
		return false
	}
	return p.wrapped[row]
}

func (p *Page) SetWrapped(row int, v bool) {
	if row < 0 || row >= len(p.wrapped) {
		return
	}
	p.wrapped[row] = v
}

func (p *Page) index(x, y int) (int, error) {
	if x < 0 || x >= p.cols || y < 0 || y >= p.rows {
		return 0, ErrOutOfRange
	}
	return y*p.cols + x, nil
}

// GetRowAndCell returns a mutable pointer to the cell at (x, y).
func (p *Page) GetRowAndCell(x, y int) (*Cell, error) {
	idx, err := p.index(x, y)
	if err != nil {
		return nil, err
	}
	return p.grid.Resolve(offset.Offset[Cell](idx)), nil
}

// Style resolves a style id to its Style value. Id 0 (or any id that has
// been fully released) resolves to DefaultStyle.
func (p *Page) Style(id intern.ID) Style {
	if id == 0 {
		return DefaultStyle
	}
	s, ok := p.styles.Get(id)
	if !ok {
		return DefaultStyle
	}
	return s
}

// SetStyle looks up or interns style, releasing cell's previous style
// reference and incrementing the new one, then writes the cell's style id
// (spec §4.E).
func (p *Page) SetStyle(cell *Cell, style Style) error {
	prev := cell.StyleID

	if style == DefaultStyle {
		if prev != 0 {
			p.styles.Release(prev)
		}
		cell.StyleID = 0
		return nil
	}

	before := p.styles.Len()
	id, err := p.styles.Add(style)
	if err != nil {
		return err
	}
	if p.styles.Len() > before && p.styles.Len() > p.stylesCap {
		p.styles.Release(id)
		return ErrStyleCapacity
	}
	if prev != 0 {
		p.styles.Release(prev)
	}
	cell.StyleID = id
	return nil
}

// Hyperlink resolves a hyperlink id to its Link value.
func (p *Page) Hyperlink(id hyperlink.ID) (hyperlink.Link, bool) {
	if id == 0 {
		return hyperlink.Link{}, false
	}
	return p.hyperlinks.Get(id)
}

// SetHyperlink opens (interning if new) the hyperlink identified by
// explicitID/implicitID/uri, copies the URI bytes into the page's bitmap
// string allocator on first use, and attaches it to the cell at (x, y),
// managing the cell→hyperlink offset map per spec §4.E. implicitID
// distinguishes otherwise-identical unlabeled spans (explicitID == "")
// and must be the same value for every cell the span covers, so the span
// interns to one Link instead of one per cell — see
// Terminal.HyperlinkStart, which mints it once per span.
func (p *Page) SetHyperlink(x, y int, explicitID, implicitID, uri string) error {
	idx, err := p.index(x, y)
	if err != nil {
		return err
	}
	cell := p.grid.Resolve(offset.Offset[Cell](idx))
	if cell.HyperlinkID != 0 {
		p.clearHyperlinkAt(idx, cell)
	}

	id, err := p.hyperlinks.Open(explicitID, implicitID, uri)
	if err != nil {
		return err
	}
	isNew := p.hyperlinks.RefCount(id) == 1
	if isNew && p.hyperlinks.Len() > p.hyperlinksCap {
		p.hyperlinks.Release(id)
		return ErrHyperlinkCapacity
	}

	if isNew {
		link, _ := p.hyperlinks.Get(id)
		chunk, aerr := p.stringAlloc.Alloc(len(uri))
		if aerr != nil {
			p.hyperlinks.Release(id)
			return aerr
		}
		copy(p.stringAlloc.Bytes(chunk, len(uri)), uri)
		p.stringChunks[link] = chunkRef{index: chunk, len: len(uri)}
	}

	cell.HyperlinkID = id
	p.cellHyperlinks.Put(uint32(idx), uint32(id))
	return nil
}

// ClearHyperlink detaches (x, y)'s hyperlink, if any, releasing the
// reference and removing the cell→hyperlink map entry.
func (p *Page) ClearHyperlink(x, y int) error {
	idx, err := p.index(x, y)
	if err != nil {
		return err
	}
	cell := p.grid.Resolve(offset.Offset[Cell](idx))
	p.clearHyperlinkAt(idx, cell)
	return nil
}

func (p *Page) clearHyperlinkAt(idx int, cell *Cell) {
	if cell.HyperlinkID == 0 {
		return
	}
	p.hyperlinks.Release(cell.HyperlinkID)
	cell.HyperlinkID = 0
	p.cellHyperlinks.Remove(uint32(idx))
}

// CloneRow copies srcRow's cells into dstRow, adjusting style/hyperlink
// reference counts so both rows are independently valid afterward.
func (p *Page) CloneRow(dstRow, srcRow int) error {
	if dstRow < 0 || dstRow >= p.rows || srcRow < 0 || srcRow >= p.rows {
		return ErrOutOfRange
	}
	for x := 0; x < p.cols; x++ {
		srcIdx, _ := p.index(x, srcRow)
		dstIdx, _ := p.index(x, dstRow)
		src := p.grid.Resolve(offset.Offset[Cell](srcIdx))
		dst := p.grid.Resolve(offset.Offset[Cell](dstIdx))

		p.clearHyperlinkAt(dstIdx, dst)
		if dst.StyleID != 0 {
			p.styles.Release(dst.StyleID)
		}

		*dst = *src

		if dst.StyleID != 0 {
			p.styles.Ref(dst.StyleID)
		}
		if dst.HyperlinkID != 0 {
			p.hyperlinks.Ref(dst.HyperlinkID)
			p.cellHyperlinks.Put(uint32(dstIdx), uint32(dst.HyperlinkID))
		}
	}
	return nil
}

// EraseRow resets cells [startCol, endCol) of row to blank, releasing
// their style and hyperlink references.
func (p *Page) EraseRow(row, startCol, endCol int) error {
	if row < 0 || row >= p.rows {
		return ErrOutOfRange
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > p.cols {
		endCol = p.cols
	}
	for x := startCol; x < endCol; x++ {
		idx, _ := p.index(x, row)
		cell := p.grid.Resolve(offset.Offset[Cell](idx))
		p.clearHyperlinkAt(idx, cell)
		if cell.StyleID != 0 {
			p.styles.Release(cell.StyleID)
		}
		*cell = Blank()
	}
	if startCol <= 0 && endCol >= p.cols {
		p.wrapped[row] = false
	}
	return nil
}

// EncodeUTF8 writes the page's plain-text content, row by row, separated
// by newlines. Wide-character spacer cells are skipped so each logical
// character is written exactly once.
func (p *Page) EncodeUTF8(w io.Writer) error {
	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			idx, _ := p.index(x, y)
			cell := p.grid.Resolve(offset.Offset[Cell](idx))
			if cell.IsWideSpacer() {
				continue
			}
			r := rune(' ')
			if cell.Tag == ContentCodepoint {
				r = cell.Codepoint
			}
			if _, err := w.Write([]byte(string(r))); err != nil {
				return err
			}
		}
		if y < p.rows-1 {
			if _, err := w.Write([]byte{'\n'}); err != nil {
				return err
			}
		}
	}
	return nil
}
