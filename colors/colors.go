// Package colors implements the tagged Color variant and palette
// resolution described in spec §3 (component of the Style model used by
// page.Style): a cell's foreground/background/underline color is either
// the unset default, a 256-entry palette index, or a direct 24-bit RGB
// triple. Grounded on the teacher's colors.go, which builds the same
// 16+216+24 standard palette and default/named color resolution; this
// package keeps that layout and palette-generation code nearly verbatim
// (it is the standard xterm palette, not something to reinvent) and adds
// resolution of palette entries by name via golang.org/x/image/colornames,
// used by term's OSC 4 palette-set path and by test fixtures.
package colors

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

// Kind distinguishes the three forms a cell color can take.
type Kind uint8

const (
	// Default means "use the terminal's configured default fg/bg", not a
	// palette or RGB value.
	Default Kind = iota
	Palette
	RGB
)

// Color is a tagged union over the three representations named in spec §3.
// The zero value is Default.
type Color struct {
	Kind    Kind
	Index   uint8 // valid when Kind == Palette
	R, G, B uint8 // valid when Kind == RGB
}

// DefaultColor is the unset/default sentinel.
var DefaultColor = Color{Kind: Default}

// FromPalette builds a Palette-kind Color for index idx (0-255).
func FromPalette(idx uint8) Color {
	return Color{Kind: Palette, Index: idx}
}

// FromRGB builds an RGB-kind Color.
func FromRGB(r, g, b uint8) Color {
	return Color{Kind: RGB, R: r, G: g, B: b}
}

// StandardPalette is the 256-color xterm-compatible palette: 16 named ANSI
// colors (0-15), a 6x6x6 color cube (16-231), and a 24-step grayscale ramp
// (232-255).
var StandardPalette = [256]color.RGBA{
	{0, 0, 0, 255},
	{205, 49, 49, 255},
	{13, 188, 121, 255},
	{229, 229, 16, 255},
	{36, 114, 200, 255},
	{188, 63, 188, 255},
	{17, 168, 205, 255},
	{229, 229, 229, 255},

	{102, 102, 102, 255},
	{241, 76, 76, 255},
	{35, 209, 139, 255},
	{245, 245, 67, 255},
	{59, 142, 234, 255},
	{214, 112, 214, 255},
	{41, 184, 219, 255},
	{255, 255, 255, 255},
}

func init() {
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				StandardPalette[i] = color.RGBA{
					R: cubeLevel(r), G: cubeLevel(g), B: cubeLevel(b), A: 255,
				}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		StandardPalette[232+j] = color.RGBA{gray, gray, gray, 255}
	}
}

func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(n*40 + 55)
}

// DefaultForeground and DefaultBackground are the colors substituted for
// Default-kind cell colors in the absence of any configuration override.
var (
	DefaultForeground = color.RGBA{229, 229, 229, 255}
	DefaultBackground = color.RGBA{0, 0, 0, 255}
)

// Resolve converts c to a concrete RGBA using pal for palette lookups and
// (fgDefault, bgDefault) for the Default case. fg selects which default
// applies.
func Resolve(c Color, pal *[256]color.RGBA, fgDefault, bgDefault color.RGBA, fg bool) color.RGBA {
	switch c.Kind {
	case Palette:
		return pal[c.Index]
	case RGB:
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	default:
		if fg {
			return fgDefault
		}
		return bgDefault
	}
}

// ByName resolves an X11 color name (as accepted by OSC 4/10/11/12 palette
// queries, e.g. "rebeccapurple", "SteelBlue") to RGB. The lookup is
// case-insensitive; colornames itself only exports lowercase keys, so the
// name is lowercased before lookup.
func ByName(name string) (Color, error) {
	c, ok := colornames.Map[lower(name)]
	if !ok {
		return Color{}, fmt.Errorf("colors: unknown color name %q", name)
	}
	return FromRGB(c.R, c.G, c.B), nil
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
