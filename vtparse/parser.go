// Package vtparse implements the DEC/ECMA-48 control-sequence state machine
// (component G of the terminal core): a byte-at-a-time DFA, structured after
// the widely used VT500-series parser (the same automaton alacritty's `vte`
// crate and paulrosania-style Go ports implement), producing typed Action
// values instead of calling handler methods directly. Package stream owns
// turning those actions into terminal-visible effects.
package vtparse

import "github.com/vtgrid/termcore/utf8stream"

type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateOscString
	stateSosPmApcString
)

// MaxParams is the maximum number of CSI/DCS parameters retained; any
// beyond this are parsed (to keep the byte stream in sync) but dropped,
// with CsiDispatch.Overflowed set.
const MaxParams = 16

// oscKind distinguishes which of OSC/APC/PM/SOS a stateSosPmApcString
// session is accumulating, since they share a state but not an action set.
type oscKind int

const (
	oscKindOSC oscKind = iota
	oscKindAPC
	oscKindPM
	oscKindSOS
)

// Parser is a DEC-compliant DFA over the terminal control-sequence
// grammar. The zero value is ready to use.
type Parser struct {
	state state

	intermediates []byte
	params        []Param
	curParam      uint32
	curSubs       []uint16
	haveParam     bool
	prefix        byte
	overflowed    bool

	oscBuf   [][]byte
	oscCur   []byte
	oscKind  oscKind
	sosKind  oscKind // which of APC/PM/SOS is active in stateSosPmApcString

	decoder     utf8stream.Decoder
	utf8Pending bool // decoder holds a partial multi-byte sequence
}

// Sink receives parser actions. Implemented as a function-slice-free
// interface (rather than allocating an []Action per byte) so a hot printing
// loop doesn't churn the heap; package stream's Dispatcher implements it.
type Sink interface {
	Handle(Action)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Action)

func (f SinkFunc) Handle(a Action) { f(a) }

// Advance feeds one raw byte to the parser, decoding UTF-8 internally for
// printable text and driving the control-sequence DFA for everything else.
// It may invoke sink zero, one, or (at a state transition that both exits
// and enters with a dispatch) two times.
func (p *Parser) Advance(b byte, sink Sink) {
	// Anywhere transitions: CAN/SUB abort the current sequence; ESC always
	// restarts the escape sequence. Each string-collecting state (OSC,
	// DCS passthrough, SOS/PM/APC) has an exit action that must fire
	// regardless of which of these triggered the exit, mirroring how
	// alacritty's vte associates exit actions with states rather than
	// with individual transitions.
	switch b {
	case 0x18, 0x1a: // CAN, SUB
		p.exitState(sink)
		sink.Handle(Execute{Code: b})
		p.reset()
		return
	case 0x1b: // ESC
		p.exitState(sink)
		p.reset()
		p.state = stateEscape
		return
	}

	switch p.state {
	case stateGround:
		p.advanceGround(b, sink)
	case stateEscape:
		p.advanceEscape(b, sink)
	case stateEscapeIntermediate:
		p.advanceEscapeIntermediate(b, sink)
	case stateCsiEntry:
		p.advanceCsiEntry(b, sink)
	case stateCsiParam:
		p.advanceCsiParam(b, sink)
	case stateCsiIntermediate:
		p.advanceCsiIntermediate(b, sink)
	case stateCsiIgnore:
		p.advanceCsiIgnore(b, sink)
	case stateDcsEntry:
		p.advanceDcsEntry(b, sink)
	case stateDcsParam:
		p.advanceDcsParam(b, sink)
	case stateDcsIntermediate:
		p.advanceDcsIntermediate(b, sink)
	case stateDcsPassthrough:
		p.advanceDcsPassthrough(b, sink)
	case stateDcsIgnore:
		p.advanceDcsIgnore(b, sink)
	case stateOscString:
		p.advanceOscString(b, sink)
	case stateSosPmApcString:
		p.advanceSosPmApcString(b, sink)
	}
}

// AdvanceString feeds a full byte slice through Advance. Feeding the
// concatenation of substrings yields the same action sequence as feeding it
// in one call, since the DFA carries no per-call state (spec §8).
func (p *Parser) AdvanceString(data []byte, sink Sink) {
	for _, b := range data {
		p.Advance(b, sink)
	}
}

func (p *Parser) reset() {
	p.state = stateGround
	p.intermediates = p.intermediates[:0]
	p.params = p.params[:0]
	p.curParam = 0
	p.curSubs = p.curSubs[:0]
	p.haveParam = false
	p.prefix = 0
	p.overflowed = false
	p.oscBuf = nil
	p.oscCur = nil
	p.decoder.Reset()
	p.utf8Pending = false
}

// exitState fires the exit action for states that accumulate a string
// payload, when that state is being abandoned via an anywhere transition
// (CAN/SUB/ESC) rather than its own normal terminator byte.
func (p *Parser) exitState(sink Sink) {
	switch p.state {
	case stateDcsPassthrough:
		sink.Handle(DcsUnhook{})
	case stateOscString:
		p.finishOscParam()
		sink.Handle(OscDispatch{Params: p.oscBuf})
	case stateSosPmApcString:
		p.endSosPmApcNoReset(sink)
	}
}

// --- ground ---

func (p *Parser) advanceGround(b byte, sink Sink) {
	switch {
	case b < 0x20 || b == 0x7f:
		sink.Handle(Execute{Code: b})
	case p.utf8Pending && b >= 0x80:
		// Continuation bytes of a pending UTF-8 sequence overlap the C1 range.
		p.decodeAndPrint(b, sink)
	case b == 0x9b: // C1 CSI
		p.reset()
		p.state = stateCsiEntry
	case b == 0x9d: // C1 OSC
		p.reset()
		p.state = stateOscString
		p.oscKind = oscKindOSC
	case b == 0x90: // C1 DCS
		p.reset()
		p.state = stateDcsEntry
	case b >= 0x80 && b <= 0x9f:
		sink.Handle(Execute{Code: b})
	default:
		p.decodeAndPrint(b, sink)
	}
}

func (p *Parser) decodeAndPrint(b byte, sink Sink) {
	res := p.decoder.Feed(b)
	p.utf8Pending = res.Status == utf8stream.Incomplete
	switch res.Status {
	case utf8stream.Accepted:
		sink.Handle(Print{Rune: res.Rune})
	case utf8stream.Replaced:
		sink.Handle(Print{Rune: res.Rune})
		if !res.Consumed {
			p.decodeAndPrint(b, sink)
		}
	}
}

// --- escape ---

func (p *Parser) advanceEscape(b byte, sink Sink) {
	switch {
	case b < 0x20:
		sink.Handle(Execute{Code: b})
	case b == '[':
		p.reset()
		p.state = stateCsiEntry
	case b == ']':
		p.reset()
		p.state = stateOscString
		p.oscKind = oscKindOSC
	case b == 'P':
		p.reset()
		p.state = stateDcsEntry
	case b == '_':
		p.startSosPmApc(oscKindAPC, sink)
	case b == '^':
		p.startSosPmApc(oscKindPM, sink)
	case b == 'X':
		p.startSosPmApc(oscKindSOS, sink)
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7e:
		sink.Handle(EscDispatch{Intermediates: cloneBytes(p.intermediates), Final: b})
		p.reset()
	default:
		// ignore
	}
}

func (p *Parser) advanceEscapeIntermediate(b byte, sink Sink) {
	switch {
	case b < 0x20:
		sink.Handle(Execute{Code: b})
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x30 && b <= 0x7e:
		sink.Handle(EscDispatch{Intermediates: cloneBytes(p.intermediates), Final: b})
		p.reset()
	}
}

func (p *Parser) startSosPmApc(kind oscKind, sink Sink) {
	p.reset()
	p.state = stateSosPmApcString
	p.sosKind = kind
	switch kind {
	case oscKindAPC:
		sink.Handle(ApcStart{})
	case oscKindPM:
		sink.Handle(PmStart{})
	case oscKindSOS:
		sink.Handle(SosStart{})
	}
}

// --- CSI ---

func (p *Parser) advanceCsiEntry(b byte, sink Sink) {
	switch {
	case b < 0x20:
		sink.Handle(Execute{Code: b})
	case b == '?' || b == '>' || b == '=' || b == '<':
		p.prefix = b
		p.state = stateCsiParam
	case b >= '0' && b <= '9':
		p.haveParam = true
		p.curParam = uint32(b - '0')
		p.state = stateCsiParam
	case b == ';':
		p.finishParam()
		p.state = stateCsiParam
	case b == ':':
		p.curSubs = append(p.curSubs, 0)
		p.state = stateCsiParam
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.dispatchCsi(b, sink)
	case b == 0x7f:
		// ignore
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) advanceCsiParam(b byte, sink Sink) {
	switch {
	case b < 0x20:
		sink.Handle(Execute{Code: b})
	case b >= '0' && b <= '9':
		p.haveParam = true
		p.curParam = p.curParam*10 + uint32(b-'0')
		if p.curParam > 0xffff {
			p.curParam = 0xffff
		}
	case b == ';':
		p.finishParam()
	case b == ':':
		p.curSubs = append(p.curSubs, clampParam(p.curParam))
		p.curParam = 0
		p.haveParam = false
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.dispatchCsi(b, sink)
	case b == '<' || b == '=' || b == '>' || b == '?':
		p.state = stateCsiIgnore
	case b == 0x7f:
		// ignore
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) advanceCsiIntermediate(b byte, sink Sink) {
	switch {
	case b < 0x20:
		sink.Handle(Execute{Code: b})
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x40 && b <= 0x7e:
		p.dispatchCsi(b, sink)
	case b == 0x7f:
		// ignore
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) advanceCsiIgnore(b byte, sink Sink) {
	switch {
	case b < 0x20:
		sink.Handle(Execute{Code: b})
	case b >= 0x40 && b <= 0x7e:
		p.reset()
	default:
		// ignore until final byte
	}
}

func clampParam(v uint32) uint16 {
	if v > 0xffff {
		return 0xffff
	}
	return uint16(v)
}

func (p *Parser) finishParam() {
	val := clampParam(p.curParam)
	param := Param{Value: val}
	if len(p.curSubs) > 0 {
		// The first colon-separated value is the slot's value; the rest are
		// its sub-parameters.
		all := append(p.curSubs, val)
		param = Param{Value: all[0], Sub: all[1:]}
	}
	p.curSubs = nil
	if len(p.params) < MaxParams {
		p.params = append(p.params, param)
	} else {
		// Excess parameters are parsed for stream alignment but dropped.
		p.overflowed = true
	}
	p.curParam = 0
	p.haveParam = false
}

func (p *Parser) dispatchCsi(final byte, sink Sink) {
	p.finishParam()
	sink.Handle(CsiDispatch{
		Params:        append([]Param(nil), p.params...),
		Intermediates: cloneBytes(p.intermediates),
		Final:         final,
		Prefix:        p.prefix,
		Overflowed:    p.overflowed,
	})
	p.reset()
}

// --- DCS ---

func (p *Parser) advanceDcsEntry(b byte, sink Sink) {
	switch {
	case b < 0x20:
		// ignore within DCS entry
	case b == '?' || b == '>' || b == '=' || b == '<':
		p.prefix = b
		p.state = stateDcsParam
	case b >= '0' && b <= '9':
		p.haveParam = true
		p.curParam = uint32(b - '0')
		p.state = stateDcsParam
	case b == ';':
		p.finishParam()
		p.state = stateDcsParam
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.hookDcs(b, sink)
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) advanceDcsParam(b byte, sink Sink) {
	switch {
	case b < 0x20:
		// ignore
	case b >= '0' && b <= '9':
		p.haveParam = true
		p.curParam = p.curParam*10 + uint32(b-'0')
		if p.curParam > 0xffff {
			p.curParam = 0xffff
		}
	case b == ';':
		p.finishParam()
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.hookDcs(b, sink)
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) advanceDcsIntermediate(b byte, sink Sink) {
	switch {
	case b < 0x20:
		// ignore
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x40 && b <= 0x7e:
		p.hookDcs(b, sink)
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) hookDcs(final byte, sink Sink) {
	p.finishParam()
	sink.Handle(DcsHook{
		Params:        append([]Param(nil), p.params...),
		Intermediates: cloneBytes(p.intermediates),
		Final:         final,
		Prefix:        p.prefix,
	})
	p.state = stateDcsPassthrough
}

func (p *Parser) advanceDcsPassthrough(b byte, sink Sink) {
	if b < 0x20 && b != 0x1b {
		sink.Handle(DcsPut{Byte: b})
		return
	}
	if b >= 0x20 {
		sink.Handle(DcsPut{Byte: b})
	}
}

func (p *Parser) advanceDcsIgnore(b byte, sink Sink) {
	_ = b
}

// --- OSC ---

func (p *Parser) advanceOscString(b byte, sink Sink) {
	switch b {
	case 0x07: // BEL terminator
		p.finishOscParam()
		sink.Handle(OscDispatch{Params: p.oscBuf})
		p.reset()
	case ';':
		p.finishOscParam()
	default:
		if b >= 0x20 || b == 0x09 {
			p.oscCur = append(p.oscCur, b)
		}
	}
}

func (p *Parser) finishOscParam() {
	p.oscBuf = append(p.oscBuf, append([]byte(nil), p.oscCur...))
	p.oscCur = p.oscCur[:0]
}

// --- SOS/PM/APC ---

func (p *Parser) advanceSosPmApcString(b byte, sink Sink) {
	switch b {
	case 0x07:
		p.endSosPmApc(sink)
	default:
		if b >= 0x20 {
			switch p.sosKind {
			case oscKindAPC:
				sink.Handle(ApcPut{Byte: b})
			case oscKindPM:
				sink.Handle(PmPut{Byte: b})
			case oscKindSOS:
				sink.Handle(SosPut{Byte: b})
			}
		}
	}
}

func (p *Parser) endSosPmApc(sink Sink) {
	p.endSosPmApcNoReset(sink)
	p.reset()
}

func (p *Parser) endSosPmApcNoReset(sink Sink) {
	switch p.sosKind {
	case oscKindAPC:
		sink.Handle(ApcEnd{})
	case oscKindPM:
		sink.Handle(PmEnd{})
	case oscKindSOS:
		sink.Handle(SosEnd{})
	}
}

// cloneBytes copies a byte slice so an emitted Action doesn't alias the
// parser's internal scratch buffer, which is reused (and truncated) on the
// next reset.
func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
