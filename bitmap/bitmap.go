// Package bitmap implements a fixed-chunk sub-allocator over a
// caller-provided buffer, used by package page to carve variable-length
// strings (hyperlink URIs, explicit hyperlink ids) out of a page's backing
// storage.
//
// The design follows the block/atom split described in lldb's Allocator:
// the buffer is divided into fixed-size chunks, and one bit per chunk
// records free (1) or used (0). Allocation finds the first run of k
// consecutive free bits within a single 64-bit bitmap word by repeated
// shift-and-AND, which bounds any single allocation to under 64 chunks —
// documented as a limitation, not worked around, exactly as spec'd.
package bitmap

import "fmt"

// ErrTooLarge is returned when an allocation would need 64 or more chunks;
// allocator is implemented as lives inside a single bitmap word.
var ErrTooLarge = fmt.Errorf("bitmap: allocation of 64 or more chunks is unsupported")

// ErrOutOfMemory is returned when no run of free chunks large enough to
// satisfy the request exists.
var ErrOutOfMemory = fmt.Errorf("bitmap: out of memory")

// Layout describes the byte ranges of an Allocator's backing buffer for a
// given chunk size and chunk count.
type Layout struct {
	ChunkSize    int
	ChunkCount   int
	BitmapStart  int
	BitmapWords  int
	ChunksStart  int
	TotalSize    int
}

// ComputeLayout returns the buffer layout for cap bytes of chunk storage,
// given chunkSize (must be a power of two). The bitmap itself is placed
// before the chunk storage and sized to one bit per chunk, rounded up to a
// whole number of 64-bit words.
func ComputeLayout(chunkSize, cap int) Layout {
	if chunkSize <= 0 || chunkSize&(chunkSize-1) != 0 {
		panic("bitmap: chunkSize must be a power of two")
	}
	chunkCount := (cap + chunkSize - 1) / chunkSize
	if chunkCount == 0 {
		chunkCount = 1
	}
	bitmapWords := (chunkCount + 63) / 64
	bitmapStart := 0
	bitmapBytes := bitmapWords * 8
	chunksStart := bitmapStart + bitmapBytes
	return Layout{
		ChunkSize:   chunkSize,
		ChunkCount:  chunkCount,
		BitmapStart: bitmapStart,
		BitmapWords: bitmapWords,
		ChunksStart: chunksStart,
		TotalSize:   chunksStart + chunkCount*chunkSize,
	}
}

// Allocator is a fixed-chunk sub-allocator over a single backing buffer.
// It does not own the buffer; callers provide it (and may relocate it,
// since every reference the allocator hands out is a chunk index, not a
// pointer — see package offset).
type Allocator struct {
	layout Layout
	buf    []byte
	words  []uint64 // free-bit bitmap, one bit per chunk, 1 = free
}

// New creates an Allocator with its own freshly allocated backing buffer,
// sized via ComputeLayout to hold cap bytes of chunk storage.
func New(chunkSize, cap int) *Allocator {
	layout := ComputeLayout(chunkSize, cap)
	return NewWithBuffer(layout, make([]byte, layout.TotalSize))
}

// NewWithBuffer creates an Allocator over a buffer the caller already sized
// (e.g. a region a Page carved out of its own backing storage) according to
// layout. buf must be at least layout.TotalSize bytes.
func NewWithBuffer(layout Layout, buf []byte) *Allocator {
	if len(buf) < layout.TotalSize {
		panic("bitmap: buffer smaller than layout.TotalSize")
	}
	a := &Allocator{
		layout: layout,
		buf:    buf,
		words:  make([]uint64, layout.BitmapWords),
	}
	a.reset()
	return a
}

func (a *Allocator) reset() {
	for i := range a.words {
		a.words[i] = ^uint64(0)
	}
	// Clear any trailing bits beyond ChunkCount in the last word.
	rem := a.layout.ChunkCount % 64
	if rem != 0 && len(a.words) > 0 {
		mask := (uint64(1) << uint(rem)) - 1
		a.words[len(a.words)-1] &= mask
	}
}

// Cap returns the number of chunks the allocator manages.
func (a *Allocator) Cap() int {
	return a.layout.ChunkCount
}

// ChunkSize returns the configured chunk size in bytes.
func (a *Allocator) ChunkSize() int {
	return a.layout.ChunkSize
}

// Alloc reserves n bytes worth of chunks and returns the index of the first
// one, for later Free calls; the run's byte offset from the start of the
// chunk storage region is that index * chunk size.
func (a *Allocator) Alloc(n int) (chunkIndex int, err error) {
	k := (n + a.layout.ChunkSize - 1) / a.layout.ChunkSize
	if k == 0 {
		k = 1
	}
	if k >= 64 {
		return 0, ErrTooLarge
	}
	idx, ok := a.findFreeRun(k)
	if !ok {
		return 0, ErrOutOfMemory
	}
	a.markUsed(idx, k)
	return idx, nil
}

// findFreeRun finds the first run of k consecutive free chunks confined to
// a single bitmap word, via repeated shift-and-AND as spec'd.
func (a *Allocator) findFreeRun(k int) (int, bool) {
	want := (uint64(1) << uint(k)) - 1
	for wi, w := range a.words {
		base := wi * 64
		cand := w
		for shift := 0; shift+k <= 64; shift++ {
			if cand&(want<<uint(shift)) == want<<uint(shift) {
				idx := base + shift
				if idx+k <= a.layout.ChunkCount {
					return idx, true
				}
			}
		}
	}
	return 0, false
}

func (a *Allocator) markUsed(idx, k int) {
	for i := idx; i < idx+k; i++ {
		a.words[i/64] &^= 1 << uint(i%64)
	}
}

// Free releases the n bytes worth of chunks starting at chunkIndex.
func (a *Allocator) Free(chunkIndex, n int) {
	k := (n + a.layout.ChunkSize - 1) / a.layout.ChunkSize
	if k == 0 {
		k = 1
	}
	for i := chunkIndex; i < chunkIndex+k; i++ {
		a.words[i/64] |= 1 << uint(i%64)
	}
}

// Bytes returns the slice of the backing buffer for the n bytes stored at
// chunkIndex.
func (a *Allocator) Bytes(chunkIndex, n int) []byte {
	start := a.layout.ChunksStart + chunkIndex*a.layout.ChunkSize
	return a.buf[start : start+n]
}

// FreeChunks returns the number of chunks currently marked free, for
// diagnostics and tests.
func (a *Allocator) FreeChunks() int {
	n := 0
	for _, w := range a.words {
		n += popcount(w)
	}
	return n
}

func popcount(w uint64) int {
	n := 0
	for w != 0 {
		w &= w - 1
		n++
	}
	return n
}
