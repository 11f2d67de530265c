package sgr

import (
	"testing"

	"github.com/vtgrid/termcore/vtparse"
)

func p(v uint16) vtparse.Param { return vtparse.Param{Value: v} }

func TestResetOnEmpty(t *testing.T) {
	attrs := Parse(nil)
	if len(attrs) != 1 || attrs[0].Kind != Reset {
		t.Fatalf("Parse(nil) = %#v, want single Reset", attrs)
	}
}

func TestBoldAndForeground(t *testing.T) {
	attrs := Parse([]vtparse.Param{p(1), p(31)})
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %#v", attrs)
	}
	if attrs[0].Kind != Bold {
		t.Fatalf("attrs[0] = %#v, want Bold", attrs[0])
	}
	if attrs[1].Kind != Foreground8 || attrs[1].Value != 1 {
		t.Fatalf("attrs[1] = %#v, want Foreground8(1)", attrs[1])
	}
}

func TestBrightForeground(t *testing.T) {
	attrs := Parse([]vtparse.Param{p(92)})
	if attrs[0].Kind != Foreground8 || attrs[0].Value != 10 {
		t.Fatalf("got %#v, want Foreground8(10)", attrs[0])
	}
}

func TestUnderlineColonSubparam(t *testing.T) {
	param := vtparse.Param{Value: 4, Sub: []uint16{3}}
	attrs := Parse([]vtparse.Param{param})
	if attrs[0].Kind != UnderlineCurly {
		t.Fatalf("got %#v, want UnderlineCurly", attrs[0])
	}
}

func TestUnderlinePlainSemicolon(t *testing.T) {
	attrs := Parse([]vtparse.Param{p(4)})
	if attrs[0].Kind != Underline {
		t.Fatalf("got %#v, want Underline", attrs[0])
	}
}

func Test256ColorForeground(t *testing.T) {
	attrs := Parse([]vtparse.Param{p(38), p(5), p(200)})
	if attrs[0].Kind != Foreground256 || attrs[0].Value != 200 {
		t.Fatalf("got %#v, want Foreground256(200)", attrs[0])
	}
}

func TestRGBBackground(t *testing.T) {
	attrs := Parse([]vtparse.Param{p(48), p(2), p(10), p(20), p(30)})
	if attrs[0].Kind != BackgroundRGB {
		t.Fatalf("got %#v, want BackgroundRGB", attrs[0])
	}
	if attrs[0].R != 10 || attrs[0].G != 20 || attrs[0].B != 30 {
		t.Fatalf("RGB = %d,%d,%d, want 10,20,30", attrs[0].R, attrs[0].G, attrs[0].B)
	}
}

func TestRGBColonForm(t *testing.T) {
	param := vtparse.Param{Value: 38, Sub: []uint16{2, 10, 20, 30}}
	attrs := Parse([]vtparse.Param{param})
	if attrs[0].Kind != ForegroundRGB || attrs[0].R != 10 || attrs[0].G != 20 || attrs[0].B != 30 {
		t.Fatalf("got %#v", attrs[0])
	}
}

func TestUnderlineColorRGB(t *testing.T) {
	attrs := Parse([]vtparse.Param{p(58), p(2), p(1), p(2), p(3)})
	if attrs[0].Kind != UnderlineColorRGB || attrs[0].R != 1 || attrs[0].G != 2 || attrs[0].B != 3 {
		t.Fatalf("got %#v", attrs[0])
	}
}

func TestUnknownCarriesRemaining(t *testing.T) {
	attrs := Parse([]vtparse.Param{p(1), p(200)})
	if attrs[1].Kind != Unknown {
		t.Fatalf("got %#v, want Unknown for code 200", attrs[1])
	}
	if len(attrs[1].Full) != 2 || len(attrs[1].Remaining) != 1 {
		t.Fatalf("Full/Remaining = %#v/%#v", attrs[1].Full, attrs[1].Remaining)
	}
}

func TestResetsAfterColors(t *testing.T) {
	attrs := Parse([]vtparse.Param{p(39), p(49), p(24), p(22)})
	want := []AttributeKind{ForegroundReset, BackgroundReset, UnderlineReset, BoldFaintReset}
	for i, w := range want {
		if attrs[i].Kind != w {
			t.Fatalf("attrs[%d] = %#v, want %v", i, attrs[i], w)
		}
	}
}
