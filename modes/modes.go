// Package modes implements the closed set of terminal modes enumerated in
// spec §6 (component J) plus packed get/set/save/restore storage. Modes are
// a single flat bitset rather than the handful of ad hoc bools the teacher
// carries directly on Terminal (see DESIGN.md) — a systems-level packed
// flag set is the form the spec calls for, and it scales to every DEC
// private mode without adding a struct field per mode.
package modes

// Mode identifies one settable terminal mode (ANSI or DEC-private).
type Mode int

const (
	// ANSI modes.
	DisableKeyboard Mode = iota // 2
	Insert                      // 4
	SendReceive                 // 12 (default on)
	LineFeedNewLine             // 20

	// DEC private modes.
	CursorKeys                 // 1
	Column132                  // 3
	SlowScroll                 // 4
	ReverseColors              // 5
	Origin                     // 6
	Autowrap                   // 7 (default on)
	Autorepeat                 // 8
	MouseX10                   // 9
	CursorBlinking             // 12
	CursorVisible              // 25 (default on)
	EnableMode3                // 40
	ReverseWrap                // 45
	KeypadKeys                 // 66
	EnableLeftRightMargin      // 69
	MouseNormal                // 1000
	MouseButtonEvent           // 1002
	MouseAnyEvent              // 1003
	FocusEvent                 // 1004
	MouseUTF8                  // 1005
	MouseSGR                   // 1006
	MouseAlternateScroll       // 1007 (default on)
	MouseURXVT                 // 1015
	MouseSGRPixels             // 1016
	IgnoreKeypadWithNumlock    // 1035 (default on)
	AltEscPrefix                // 1036 (default on)
	AltSendsEscape              // 1039
	ReverseWrapExtended         // 1045
	AltScreen                   // 1047
	AltScreenSaveCursorClearEnter // 1049
	BracketedPaste               // 2004
	SynchronizedOutput            // 2026
	GraphemeCluster                // 2027
	ReportColorScheme               // 2031
	InBandSizeReports               // 2048

	modeCount
)

// state is a packed flag set: one bit per Mode.
type state [(int(modeCount) + 63) / 64]uint64

func (s *state) get(m Mode) bool {
	return s[m/64]&(1<<uint(m%64)) != 0
}

func (s *state) set(m Mode, v bool) {
	if v {
		s[m/64] |= 1 << uint(m%64)
	} else {
		s[m/64] &^= 1 << uint(m%64)
	}
}

// defaultState returns the packed defaults named in spec §6: SendReceive,
// Autowrap, CursorVisible, MouseAlternateScroll, IgnoreKeypadWithNumlock,
// and AltEscPrefix default on; everything else defaults off.
func defaultState() state {
	var s state
	for _, m := range []Mode{SendReceive, Autowrap, CursorVisible, MouseAlternateScroll, IgnoreKeypadWithNumlock, AltEscPrefix} {
		s.set(m, true)
	}
	return s
}

// State holds the current, saved, and default values of every mode, plus
// lifecycle operations matching spec §4.J.
type State struct {
	current state
	saved   state
	defaults state
}

// New creates a ModeState with spec-defined defaults already applied as
// the current values.
func New() *State {
	d := defaultState()
	return &State{current: d, saved: d, defaults: d}
}

// Get returns whether m is currently set.
func (s *State) Get(m Mode) bool {
	return s.current.get(m)
}

// Set assigns m's current value.
func (s *State) Set(m Mode, v bool) {
	s.current.set(m, v)
}

// Save copies m's current value into its single-slot save register
// (spec: "save/restore use a parallel packed set (single-slot save per
// mode)").
func (s *State) Save(m Mode) {
	s.saved.set(m, s.current.get(m))
}

// Restore copies m's saved value back into current.
func (s *State) Restore(m Mode) {
	s.current.set(m, s.saved.get(m))
}

// ResetToDefaults restores every mode (current and saved) to its spec
// default, as happens on RIS (full reset).
func (s *State) ResetToDefaults() {
	s.current = s.defaults
	s.saved = s.defaults
}

// ansiByNumber and decByNumber translate the wire-format mode numbers from
// spec §6 (as carried on a CSI h/l sequence) to the internal Mode enum.
var ansiByNumber = map[int]Mode{
	2:  DisableKeyboard,
	4:  Insert,
	12: SendReceive,
	20: LineFeedNewLine,
}

var decByNumber = map[int]Mode{
	1:    CursorKeys,
	3:    Column132,
	4:    SlowScroll,
	5:    ReverseColors,
	6:    Origin,
	7:    Autowrap,
	8:    Autorepeat,
	9:    MouseX10,
	12:   CursorBlinking,
	25:   CursorVisible,
	40:   EnableMode3,
	45:   ReverseWrap,
	66:   KeypadKeys,
	69:   EnableLeftRightMargin,
	1000: MouseNormal,
	1002: MouseButtonEvent,
	1003: MouseAnyEvent,
	1004: FocusEvent,
	1005: MouseUTF8,
	1006: MouseSGR,
	1007: MouseAlternateScroll,
	1015: MouseURXVT,
	1016: MouseSGRPixels,
	1035: IgnoreKeypadWithNumlock,
	1036: AltEscPrefix,
	1039: AltSendsEscape,
	1045: ReverseWrapExtended,
	1047: AltScreen,
	1049: AltScreenSaveCursorClearEnter,
	2004: BracketedPaste,
	2026: SynchronizedOutput,
	2027: GraphemeCluster,
	2031: ReportColorScheme,
	2048: InBandSizeReports,
}

// FromWire resolves a CSI h/l mode number to a Mode. dec selects the DEC
// private namespace (CSI ? ... h/l) versus the ANSI namespace (CSI ... h/l).
func FromWire(dec bool, number int) (Mode, bool) {
	if dec {
		m, ok := decByNumber[number]
		return m, ok
	}
	m, ok := ansiByNumber[number]
	return m, ok
}
