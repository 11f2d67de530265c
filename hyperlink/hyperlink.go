// Package hyperlink implements the OSC 8 hyperlink set used by page.Page
// (spec component E): cells carry a small dense hyperlink.ID rather than
// an embedded URI, and the Set interns the (explicit-id, implicit-id, uri)
// triples behind
// it so that painting the same link over a large run of cells costs one
// entry, not one string per cell. Grounded on the teacher's cell.go/
// handler.go Hyperlink type (an {ID, URI} pair attached to OSC 8), this
// package replaces the teacher's per-cell *Hyperlink pointer with the
// intern-set design spec §3/§5 calls for, reusing intern.Set as the
// refcounted backing store.
package hyperlink

import (
	"github.com/vtgrid/termcore/intern"
)

// Link is the interned value: an OSC 8 explicit id (empty if the sender
// omitted one, in which case ImplicitID distinguishes otherwise-identical
// URIs written without an id) plus the target URI.
type Link struct {
	ExplicitID string
	ImplicitID string
	URI        string
}

// ID is the dense id a cell stores in place of an embedded Link.
type ID = intern.ID

// Set interns Links and hands out recycled dense ids, matching the
// refcounting discipline page.Page uses for styles.
type Set struct {
	inner *intern.Set[Link]
}

// New creates an empty hyperlink set.
func New() *Set {
	return &Set{inner: intern.New[Link](nil)}
}

// NewWithFree creates an empty hyperlink set whose onFree hook runs when a
// Link's reference count drops to zero, just before its id is recycled. A
// Page uses this to release the bitmap-allocator bytes backing the Link's
// URI (spec invariant I4: string-allocator chunks referenced by live
// entries stay marked in-use; releasing the last reference frees them).
func NewWithFree(onFree func(Link)) *Set {
	return &Set{inner: intern.New[Link](onFree)}
}

// Open begins or continues a hyperlink span for explicitID/uri (as carried
// on an `OSC 8 ; params ; uri ST` sequence, where params may supply an
// "id=" key). When explicitID is empty, implicitID distinguishes the span
// instead, per spec §3: "an identifier that is either explicit (byte
// sequence) or implicit (monotonic counter)". The caller mints implicitID
// once per span (see Terminal.HyperlinkStart) and passes the same value
// for every cell the span covers, so that cells sharing a span intern to
// one Link instead of minting a fresh one on every call — the id only
// needs to tell two different unlabeled spans apart, not every call.
func (s *Set) Open(explicitID, implicitID, uri string) (ID, error) {
	return s.inner.Add(Link{ExplicitID: explicitID, ImplicitID: implicitID, URI: uri})
}

// Get resolves id to its Link. ok is false for the reserved zero id or an
// id that has since been released to zero refcount.
func (s *Set) Get(id ID) (Link, bool) {
	return s.inner.Get(id)
}

// RefCount returns id's current reference count, or 0 if it is not live.
func (s *Set) RefCount(id ID) uint32 {
	return s.inner.RefCount(id)
}

// Ref increments id's reference count, for a cell that copies an existing
// span's hyperlink (e.g. CloneRow).
func (s *Set) Ref(id ID) {
	s.inner.Ref(id)
}

// Release decrements id's reference count, freeing the entry at zero. A
// cell that clears or overwrites its hyperlink calls this with its
// previous id.
func (s *Set) Release(id ID) {
	s.inner.Release(id)
}

// Len returns the number of live (refcount > 0) links.
func (s *Set) Len() int {
	return s.inner.Len()
}
