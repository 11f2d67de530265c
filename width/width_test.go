package width

import "testing"

func TestASCIINarrow(t *testing.T) {
	if RuneWidth('A') != 1 {
		t.Fatalf("ASCII 'A' should be width 1")
	}
}

func TestCJKWide(t *testing.T) {
	if RuneWidth('中') != 2 {
		t.Fatalf("CJK ideograph should be width 2")
	}
}

func TestCombiningZeroWidth(t *testing.T) {
	// U+0301 COMBINING ACUTE ACCENT
	if !IsZeroWidth('́') {
		t.Fatalf("combining accent should be zero width")
	}
}

func TestFullwidthForm(t *testing.T) {
	// U+FF21 FULLWIDTH LATIN CAPITAL LETTER A
	if !IsWide('Ａ') {
		t.Fatalf("fullwidth form should be wide")
	}
}

func TestStringWidthMixed(t *testing.T) {
	if w := StringWidth("a中b"); w != 4 {
		t.Fatalf("StringWidth = %d, want 4", w)
	}
}
