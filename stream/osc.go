package stream

import (
	"strconv"
	"strings"

	"github.com/vtgrid/termcore/vtparse"
)

// osc classifies a raw OSC sequence's semicolon-split parameters (spec
// §4.G/H) into the specific command callbacks named in spec §4.H. Grounded
// on the teacher's handler.go (SetDynamicColor, SetHyperlink, WorkingDirectory,
// ShellIntegrationMark), reimplemented against raw byte params here because
// this core parses OSC itself rather than delegating to go-ansicode.
func (d *Dispatcher) osc(v vtparse.OscDispatch) {
	if len(v.Params) == 0 {
		return
	}
	cmd := string(v.Params[0])
	switch cmd {
	case "0", "2":
		d.handler.SetWindowTitle(oscJoinRest(v.Params))
	case "1":
		d.handler.SetIconName(oscJoinRest(v.Params))
	case "4":
		d.oscPaletteSet(v.Params[1:])
	case "7":
		if len(v.Params) >= 2 {
			d.handler.WorkingDirectory(string(v.Params[1]))
		}
	case "8":
		d.oscHyperlink(v.Params)
	case "52":
		d.oscClipboard(v.Params)
	case "104":
		d.oscPaletteReset(v.Params[1:])
	case "133":
		d.oscSemanticPrompt(v.Params[1:])
	case "1337":
		d.oscIterm(v.Params[1:])
	default:
		d.handler.Unknown("osc", cmd)
	}
}

func oscJoinRest(params [][]byte) string {
	parts := make([]string, 0, len(params)-1)
	for _, p := range params[1:] {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ";")
}

// oscPaletteSet handles `OSC 4 ; index ; spec ; index ; spec ... ST`, pairs
// of palette index and color spec string.
func (d *Dispatcher) oscPaletteSet(rest [][]byte) {
	for i := 0; i+1 < len(rest); i += 2 {
		idx, err := strconv.Atoi(string(rest[i]))
		if err != nil {
			continue
		}
		d.handler.PaletteSet(idx, string(rest[i+1]))
	}
}

// oscPaletteReset handles `OSC 104 ; index ; index ... ST`, resetting each
// listed index to its default, or every index if no params are given.
func (d *Dispatcher) oscPaletteReset(rest [][]byte) {
	if len(rest) == 0 {
		d.handler.PaletteReset(-1)
		return
	}
	for _, p := range rest {
		idx, err := strconv.Atoi(string(p))
		if err != nil {
			continue
		}
		d.handler.PaletteReset(idx)
	}
}

// oscHyperlink handles `OSC 8 ; params ; uri ST`. params is a colon-separated
// list of key=value pairs; the only one in common use is id=...  An empty
// uri closes the currently open hyperlink.
func (d *Dispatcher) oscHyperlink(params [][]byte) {
	if len(params) < 3 {
		d.handler.HyperlinkEnd()
		return
	}
	uri := string(params[2])
	if uri == "" {
		d.handler.HyperlinkEnd()
		return
	}
	id := ""
	for _, kv := range strings.Split(string(params[1]), ":") {
		if k, v, ok := strings.Cut(kv, "="); ok && k == "id" {
			id = v
		}
	}
	d.handler.HyperlinkStart(id, uri)
}

// oscClipboard handles `OSC 52 ; selection ; data ST`, where data is either
// base64-encoded clipboard content to set, or "?" to request the current
// contents. Decoding base64 is left to the handler, since a Request/Set
// split at this layer keeps the dispatcher itself allocation-free on the
// hot path of ordinary (non-clipboard) output.
func (d *Dispatcher) oscClipboard(params [][]byte) {
	if len(params) < 3 {
		return
	}
	selection := byte('c')
	if len(params[1]) > 0 {
		selection = params[1][0]
	}
	if string(params[2]) == "?" {
		d.handler.ClipboardRequest(selection)
		return
	}
	d.handler.ClipboardSet(selection, params[2])
}

// oscSemanticPrompt handles `OSC 133 ; kind ...  ST` shell-integration marks:
// A=prompt start, B=command start (end of prompt), C=command executed,
// D=command finished (optional exit code).
func (d *Dispatcher) oscSemanticPrompt(rest [][]byte) {
	if len(rest) == 0 {
		return
	}
	switch string(rest[0]) {
	case "A":
		redraw := len(rest) > 1 && strings.Contains(string(rest[1]), "redraw=1")
		d.handler.PromptStart(redraw)
	case "B":
		d.handler.PromptEnd()
	case "C":
		d.handler.CommandStart()
	case "D":
		if len(rest) > 1 {
			if code, err := strconv.Atoi(string(rest[1])); err == nil {
				d.handler.CommandEnd(code, true)
				return
			}
		}
		d.handler.CommandEnd(0, false)
	}
}

// oscIterm handles the subset of iTerm2's `OSC 1337 ; key=value ST`
// proprietary extension this core tracks: CurrentDir, which mirrors OSC 7.
func (d *Dispatcher) oscIterm(rest [][]byte) {
	for _, p := range rest {
		if k, v, ok := strings.Cut(string(p), "="); ok && k == "CurrentDir" {
			d.handler.WorkingDirectory(v)
		}
	}
}
