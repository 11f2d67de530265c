package vtparse

import (
	"reflect"
	"testing"
)

func collect(data []byte) []Action {
	var p Parser
	var out []Action
	p.AdvanceString(data, SinkFunc(func(a Action) { out = append(out, a) }))
	return out
}

func TestPrintASCII(t *testing.T) {
	acts := collect([]byte("Hi"))
	want := []Action{Print{Rune: 'H'}, Print{Rune: 'i'}}
	if !reflect.DeepEqual(acts, want) {
		t.Fatalf("got %#v want %#v", acts, want)
	}
}

func TestCsiCursorForward(t *testing.T) {
	acts := collect([]byte("\x1b[5C"))
	if len(acts) != 1 {
		t.Fatalf("expected 1 action, got %d: %#v", len(acts), acts)
	}
	csi, ok := acts[0].(CsiDispatch)
	if !ok {
		t.Fatalf("expected CsiDispatch, got %T", acts[0])
	}
	if csi.Final != 'C' || len(csi.Params) != 1 || csi.Params[0].Value != 5 {
		t.Fatalf("unexpected dispatch: %#v", csi)
	}
}

func TestSgrMultiParam(t *testing.T) {
	acts := collect([]byte("\x1b[1;31m"))
	csi := acts[0].(CsiDispatch)
	if csi.Final != 'm' {
		t.Fatalf("Final = %q, want 'm'", csi.Final)
	}
	if len(csi.Params) != 2 || csi.Params[0].Value != 1 || csi.Params[1].Value != 31 {
		t.Fatalf("unexpected params: %#v", csi.Params)
	}
}

func TestSgrColonSubparam(t *testing.T) {
	acts := collect([]byte("\x1b[4:3m"))
	csi := acts[0].(CsiDispatch)
	if len(csi.Params) != 1 {
		t.Fatalf("expected 1 param slot, got %#v", csi.Params)
	}
	if csi.Params[0].Value != 4 {
		t.Fatalf("Value = %d, want 4", csi.Params[0].Value)
	}
	if len(csi.Params[0].Sub) != 1 || csi.Params[0].Sub[0] != 3 {
		t.Fatalf("Sub = %#v, want [3]", csi.Params[0].Sub)
	}
}

func TestPrivateModePrefix(t *testing.T) {
	acts := collect([]byte("\x1b[?6h"))
	csi := acts[0].(CsiDispatch)
	if csi.Prefix != '?' {
		t.Fatalf("Prefix = %q, want '?'", csi.Prefix)
	}
	if csi.Final != 'h' || csi.Params[0].Value != 6 {
		t.Fatalf("unexpected: %#v", csi)
	}
}

func TestParamSaturation(t *testing.T) {
	acts := collect([]byte("\x1b[999999999m"))
	csi := acts[0].(CsiDispatch)
	if csi.Params[0].Value != 0xffff {
		t.Fatalf("Value = %d, want saturated 0xffff", csi.Params[0].Value)
	}
}

func TestParamCountCap(t *testing.T) {
	seq := "\x1b["
	for i := 0; i < 20; i++ {
		if i > 0 {
			seq += ";"
		}
		seq += "1"
	}
	seq += "m"
	acts := collect([]byte(seq))
	csi := acts[0].(CsiDispatch)
	if len(csi.Params) != MaxParams {
		t.Fatalf("len(Params) = %d, want %d", len(csi.Params), MaxParams)
	}
	if !csi.Overflowed {
		t.Fatalf("expected Overflowed to be set")
	}
}

func TestOscWindowTitleBEL(t *testing.T) {
	acts := collect([]byte("\x1b]0;my title\x07"))
	osc, ok := acts[0].(OscDispatch)
	if !ok {
		t.Fatalf("expected OscDispatch, got %T", acts[0])
	}
	if len(osc.Params) != 2 || string(osc.Params[0]) != "0" || string(osc.Params[1]) != "my title" {
		t.Fatalf("unexpected OSC params: %#v", osc.Params)
	}
}

func TestOscTerminatedByST(t *testing.T) {
	acts := collect([]byte("\x1b]0;title\x1b\\"))
	if len(acts) < 1 {
		t.Fatalf("expected at least one action")
	}
	osc, ok := acts[0].(OscDispatch)
	if !ok {
		t.Fatalf("expected OscDispatch first, got %T", acts[0])
	}
	if string(osc.Params[1]) != "title" {
		t.Fatalf("unexpected OSC payload: %#v", osc.Params)
	}
}

func TestApcRoundTrip(t *testing.T) {
	acts := collect([]byte("\x1b_Gsome-payload\x07"))
	if _, ok := acts[0].(ApcStart); !ok {
		t.Fatalf("expected ApcStart, got %T", acts[0])
	}
	last := acts[len(acts)-1]
	if _, ok := last.(ApcEnd); !ok {
		t.Fatalf("expected ApcEnd last, got %T", last)
	}
	var payload []byte
	for _, a := range acts {
		if put, ok := a.(ApcPut); ok {
			payload = append(payload, put.Byte)
		}
	}
	if string(payload) != "Gsome-payload" {
		t.Fatalf("payload = %q", payload)
	}
}

func TestDcsHookPutUnhook(t *testing.T) {
	acts := collect([]byte("\x1bP1$rq\x1b\\"))
	if _, ok := acts[0].(DcsHook); !ok {
		t.Fatalf("expected DcsHook first, got %T: %#v", acts[0], acts)
	}
	found := false
	for _, a := range acts {
		if _, ok := a.(DcsUnhook); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a DcsUnhook action somewhere in %#v", acts)
	}
}

func TestChunkingIndependence(t *testing.T) {
	full := "\x1b[1;31mHello\x1b]0;t\x07World"
	whole := collect([]byte(full))

	for _, splits := range [][]int{{1}, {3, 8}, {0, 1, 2, 3, 4, 5, 6, 7}} {
		var p Parser
		var out []Action
		sink := SinkFunc(func(a Action) { out = append(out, a) })
		last := 0
		for _, s := range splits {
			if s <= last || s > len(full) {
				continue
			}
			p.AdvanceString([]byte(full[last:s]), sink)
			last = s
		}
		p.AdvanceString([]byte(full[last:]), sink)
		if !reflect.DeepEqual(out, whole) {
			t.Fatalf("chunked at %v diverged:\n got  %#v\n want %#v", splits, out, whole)
		}
	}
}

func TestExecuteControlCode(t *testing.T) {
	acts := collect([]byte("\x07"))
	exec, ok := acts[0].(Execute)
	if !ok || exec.Code != 0x07 {
		t.Fatalf("expected Execute{0x07}, got %#v", acts[0])
	}
}

func TestEscDispatchIndex(t *testing.T) {
	acts := collect([]byte("\x1bD")) // IND
	esc, ok := acts[0].(EscDispatch)
	if !ok || esc.Final != 'D' {
		t.Fatalf("expected EscDispatch{Final:'D'}, got %#v", acts[0])
	}
}

func TestMultibytePrintThroughParser(t *testing.T) {
	acts := collect([]byte("世界"))
	want := []rune("世界")
	if len(acts) != len(want) {
		t.Fatalf("got %d actions, want %d", len(acts), len(want))
	}
	for i, a := range acts {
		p, ok := a.(Print)
		if !ok || p.Rune != want[i] {
			t.Fatalf("action %d = %#v, want Print{%q}", i, a, want[i])
		}
	}
}
