package colors

import "testing"

func TestDefaultColorZeroValue(t *testing.T) {
	var c Color
	if c.Kind != Default {
		t.Fatalf("zero value Color should be Default kind")
	}
}

func TestFromPalette(t *testing.T) {
	c := FromPalette(196)
	if c.Kind != Palette || c.Index != 196 {
		t.Fatalf("got %#v", c)
	}
}

func TestFromRGB(t *testing.T) {
	c := FromRGB(10, 20, 30)
	if c.Kind != RGB || c.R != 10 || c.G != 20 || c.B != 30 {
		t.Fatalf("got %#v", c)
	}
}

func TestStandardPaletteCubeCorners(t *testing.T) {
	// index 16 is cube(0,0,0): pure black.
	c := StandardPalette[16]
	if c.R != 0 || c.G != 0 || c.B != 0 {
		t.Fatalf("palette[16] = %#v, want black", c)
	}
	// index 231 is cube(5,5,5): near-white (255,255,255).
	last := StandardPalette[231]
	if last.R != 255 || last.G != 255 || last.B != 255 {
		t.Fatalf("palette[231] = %#v, want 255,255,255", last)
	}
}

func TestStandardPaletteGrayscaleRamp(t *testing.T) {
	first := StandardPalette[232]
	if first.R != 8 || first.G != 8 || first.B != 8 {
		t.Fatalf("palette[232] = %#v, want 8,8,8", first)
	}
}

func TestResolveDefault(t *testing.T) {
	fg := DefaultForeground
	bg := DefaultBackground
	got := Resolve(DefaultColor, &StandardPalette, fg, bg, true)
	if got != fg {
		t.Fatalf("Resolve(default, fg=true) = %#v, want %#v", got, fg)
	}
	got = Resolve(DefaultColor, &StandardPalette, fg, bg, false)
	if got != bg {
		t.Fatalf("Resolve(default, fg=false) = %#v, want %#v", got, bg)
	}
}

func TestResolvePalette(t *testing.T) {
	got := Resolve(FromPalette(1), &StandardPalette, DefaultForeground, DefaultBackground, true)
	want := StandardPalette[1]
	if got != want {
		t.Fatalf("Resolve(palette 1) = %#v, want %#v", got, want)
	}
}

func TestResolveRGB(t *testing.T) {
	got := Resolve(FromRGB(1, 2, 3), &StandardPalette, DefaultForeground, DefaultBackground, true)
	if got.R != 1 || got.G != 2 || got.B != 3 || got.A != 255 {
		t.Fatalf("got %#v", got)
	}
}

func TestByNameKnown(t *testing.T) {
	c, err := ByName("RebeccaPurple")
	if err != nil {
		t.Fatalf("ByName error: %v", err)
	}
	if c.Kind != RGB {
		t.Fatalf("got %#v, want RGB kind", c)
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("not-a-color"); err == nil {
		t.Fatalf("expected error for unknown color name")
	}
}
