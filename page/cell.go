package page

import (
	"github.com/vtgrid/termcore/hyperlink"
	"github.com/vtgrid/termcore/intern"
)

// ContentTag distinguishes what a Cell's content payload holds, spec §3:
// "a content tag ∈ {empty, codepoint, bg-palette, bg-rgb}". The bg-palette
// and bg-rgb tags are used for cells that carry only a background fill (no
// printable character) with more precision than the style's BG color alone
// needs to track, mirroring sixel/image background fills in the teacher's
// cell.go.
type ContentTag uint8

const (
	ContentEmpty ContentTag = iota
	ContentCodepoint
	ContentBGPalette
	ContentBGRGB
)

// Flags are the per-cell bits listed in spec §3 beyond style/hyperlink.
type Flags uint8

const (
	FlagWide Flags = 1 << iota
	FlagWideSpacer
	FlagHasGraphemeExtension
	FlagProtected
)

// Cell is one grid position. It deliberately carries only fixed-width
// fields (no pointers, no strings) so a page's cell grid is a flat,
// relocatable array of Cell — styles and hyperlinks are referenced by the
// small dense ids the page's intern sets hand out, per spec §9's "packed
// cell" design note. The teacher's Cell instead embeds *Hyperlink and
// color.Color interface pointers directly; this is the one place this
// package diverges sharply from the teacher's layout, because the
// teacher's design is exactly the "shared-ownership pointer" approach spec
// §9 says to replace with ref-counted small-integer ids.
type Cell struct {
	Tag ContentTag

	Codepoint    rune
	PaletteIndex uint8
	R, G, B      uint8

	StyleID     intern.ID
	HyperlinkID hyperlink.ID
	Flags       Flags
}

// Blank returns a Cell with ContentEmpty and no style/hyperlink reference
// (style id 0 resolves to DefaultStyle).
func Blank() Cell {
	return Cell{}
}

func (c *Cell) HasFlag(f Flags) bool   { return c.Flags&f != 0 }
func (c *Cell) SetFlag(f Flags)        { c.Flags |= f }
func (c *Cell) ClearFlag(f Flags)      { c.Flags &^= f }
func (c *Cell) IsWide() bool           { return c.HasFlag(FlagWide) }
func (c *Cell) IsWideSpacer() bool     { return c.HasFlag(FlagWideSpacer) }
func (c *Cell) IsProtected() bool      { return c.HasFlag(FlagProtected) }
