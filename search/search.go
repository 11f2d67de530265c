// Package search implements spec component M: scrollback search across
// page boundaries. A window holds the UTF-8 encoding of rows appended so
// far plus, byte for byte, which (page, row, column) produced each byte,
// so a substring match can be mapped back to a pagelist.Pin range. Grounded
// on spec §4.M's sliding-window description; the teacher has no scrollback
// search of its own to ground against (its ScrollbackProvider only stores
// and replays rows), so this package is built from the spec's described
// algorithm directly, simplified from three explicit circular-buffer
// regions to one growable slice pruned after every append — Go's slice
// re-slicing already gives the "drop everything before a safe point"
// behavior the spec's region-pruning accomplishes manually, without this
// package needing to hand-manage wraparound indices itself.
package search

import (
	"bytes"
	"unicode/utf8"

	"github.com/vtgrid/termcore/page"
	"github.com/vtgrid/termcore/pagelist"
)

// Match is one search hit, expressed as the pin range it spans.
type Match struct {
	Start pagelist.Pin
	End   pagelist.Pin
}

// window is the sliding buffer: buf holds encoded bytes, owners holds the
// originating pin for each byte in buf (same length as buf), and rows
// records the buffer offset each appended row started at, so pruning can
// snap to whole-row boundaries.
type window struct {
	buf    []byte
	owners []pagelist.Pin
	rows   []int // buf offset where each row starts, oldest first
}

// appendRow encodes the codepoint cells of the row at pin (cols columns
// wide) as UTF-8 and appends them to the window, recording the owning pin
// for every byte produced. Cells without codepoint content (empty or
// background-only) and wide-character spacer cells contribute no bytes.
func (w *window) appendRow(p *page.Page, pin pagelist.Pin, cols int) {
	w.rows = append(w.rows, len(w.buf))
	var enc [utf8.UTFMax]byte
	for col := 0; col < cols; col++ {
		cell, err := p.GetRowAndCell(col, pin.Row)
		if err != nil {
			break
		}
		if cell.Tag != page.ContentCodepoint || cell.IsWideSpacer() {
			continue
		}
		r := cell.Codepoint
		if r == 0 {
			r = ' '
		}
		n := utf8.EncodeRune(enc[:], r)
		cellPin := pagelist.Pin{Node: pin.Node, Row: pin.Row, Col: col}
		for i := 0; i < n; i++ {
			w.buf = append(w.buf, enc[i])
			w.owners = append(w.owners, cellPin)
		}
	}
}

// findFrom searches for needle starting no earlier than the region that
// could contain a match spanning the most recently appended row (i.e. from
// len(buf)-len(newBytes)-len(needle)+1), so repeated calls only rescan the
// boundary between old and new content rather than the whole window.
func (w *window) findFrom(needle []byte, newBytesStart int) (int, bool) {
	from := newBytesStart - (len(needle) - 1)
	if from < 0 {
		from = 0
	}
	idx := bytes.Index(w.buf[from:], needle)
	if idx < 0 {
		return 0, false
	}
	return from + idx, true
}

// pruneKeepingTail drops complete rows from the front of the window that
// fall entirely before keepFrom, a byte offset below which nothing is
// needed for a future overlap.
func (w *window) pruneKeepingTail(keepFrom int) {
	if keepFrom <= 0 {
		return
	}
	cut := 0
	for len(w.rows) > 0 && w.rows[0] < keepFrom {
		if len(w.rows) > 1 && w.rows[1] <= keepFrom {
			cut = w.rows[1]
			w.rows = w.rows[1:]
			continue
		}
		break
	}
	if cut == 0 {
		return
	}
	w.buf = append([]byte(nil), w.buf[cut:]...)
	w.owners = append([]pagelist.Pin(nil), w.owners[cut:]...)
	for i := range w.rows {
		w.rows[i] -= cut
	}
}

// PageListSearch searches a pagelist.List for needle, appending rows one
// at a time (starting from the oldest retained history) until a match is
// found or the list is exhausted. It returns every match found across the
// full sweep.
type PageListSearch struct {
	list   *pagelist.List
	needle []byte
	win    window
}

// New creates a searcher for needle over list. needle must be UTF-8 text;
// an empty needle never matches.
func New(list *pagelist.List, needle string) *PageListSearch {
	return &PageListSearch{list: list, needle: []byte(needle)}
}

// All walks the entire retained history plus active region and returns
// every match, in order. Matches are found incrementally as rows are
// appended to the internal window, so memory stays bounded by
// O(needle length + one row) rather than the whole scrollback.
func (s *PageListSearch) All() []Match {
	var matches []Match
	if len(s.needle) == 0 {
		return matches
	}

	it := s.list.RowIteratorFrom(pagelist.Pin{Node: s.list.Head(), Row: 0})
	cols := s.list.Cols()
	for {
		pin, ok := it.Next()
		if !ok {
			break
		}
		newStart := len(s.win.buf)
		s.win.appendRow(pin.Node.Page, pin, cols)

		for {
			idx, found := s.win.findFrom(s.needle, newStart)
			if !found {
				break
			}
			matches = append(matches, Match{
				Start: s.win.owners[idx],
				End:   s.win.owners[idx+len(s.needle)-1],
			})
			newStart = idx + 1
		}

		keepFrom := len(s.win.buf) - (len(s.needle) - 1)
		s.win.pruneKeepingTail(keepFrom)
	}
	return matches
}

// First returns only the earliest match, or false if the needle does not
// occur anywhere in the list. It still has to walk until a match is found
// (or the list is exhausted), same as All, but stops as soon as one hits.
func (s *PageListSearch) First() (Match, bool) {
	if len(s.needle) == 0 {
		return Match{}, false
	}

	it := s.list.RowIteratorFrom(pagelist.Pin{Node: s.list.Head(), Row: 0})
	cols := s.list.Cols()
	for {
		pin, ok := it.Next()
		if !ok {
			return Match{}, false
		}
		newStart := len(s.win.buf)
		s.win.appendRow(pin.Node.Page, pin, cols)

		if idx, found := s.win.findFrom(s.needle, newStart); found {
			return Match{
				Start: s.win.owners[idx],
				End:   s.win.owners[idx+len(s.needle)-1],
			}, true
		}

		keepFrom := len(s.win.buf) - (len(s.needle) - 1)
		s.win.pruneKeepingTail(keepFrom)
	}
}
