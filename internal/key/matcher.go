package key

import "fmt"

// MatcherKind tags which numeric field of a Matcher is meaningful.
type MatcherKind uint8

const (
	MatchKeycode MatcherKind = iota
	MatchScancode
)

// Matcher identifies one physical key press to match: either a keycode or a
// scancode from the injected resolver, combined with a required Modifiers
// value.
type Matcher struct {
	Kind MatcherKind
	Code int
	Mods Modifiers
}

// Keycode builds a keycode matcher.
func Keycode(code int, mods Modifiers) Matcher {
	return Matcher{Kind: MatchKeycode, Code: code, Mods: mods}
}

// Scancode builds a scancode matcher.
func Scancode(code int, mods Modifiers) Matcher {
	return Matcher{Kind: MatchScancode, Code: code, Mods: mods}
}

// Event synthesizes a physical key event for this matcher, for callers that
// need to reinject a matcher's key as a literal event (e.g. remap targets).
// The returned event carries the matcher's code in whichever of Keycode or
// Scancode its Kind designates, and its required modifiers.
func (m Matcher) Event() Event {
	e := Event{Modifiers: m.Mods}
	switch m.Kind {
	case MatchScancode:
		e.Scancode = m.Code
	default:
		e.Keycode = m.Code
	}
	return e
}

// String renders the matcher for debugging.
func (m Matcher) String() string {
	kind := "keycode"
	if m.Kind == MatchScancode {
		kind = "scancode"
	}
	if m.Mods.IsNone() {
		return fmt.Sprintf("%s(%d)", kind, m.Code)
	}
	return fmt.Sprintf("%s(%d)+%s", kind, m.Code, m.Mods.String())
}

// Direction tags whether a Matcher fires on key-down or key-up.
type Direction uint8

const (
	Keydown Direction = iota
	Keyup
)

func (d Direction) String() string {
	if d == Keyup {
		return "keyup"
	}
	return "keydown"
}

// DirectedMatcher is one element of a binding Sequence: a Matcher tagged
// with the direction it must be observed in.
type DirectedMatcher struct {
	Direction Direction
	Matcher   Matcher
}

// String renders the directed matcher for debugging, e.g. "!keycode(30)".
func (d DirectedMatcher) String() string {
	if d.Direction == Keyup {
		return "!" + d.Matcher.String()
	}
	return d.Matcher.String()
}

// Sequence is an ordered, non-empty (once parsed successfully) list of
// direction-tagged matchers.
type Sequence []DirectedMatcher

// Equal reports whether two sequences contain the same directed matchers in
// the same order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the sequence for debugging.
func (s Sequence) String() string {
	out := ""
	for i, dm := range s {
		if i > 0 {
			out += " "
		}
		out += dm.String()
	}
	return out
}

// Event is one physical key press as reported by the host environment.
type Event struct {
	Scancode  int
	Keycode   int
	Modifiers Modifiers
	Text      string
}

// Matches reports whether this event satisfies the given matcher: the
// event's keycode or scancode (as dictated by the matcher's Kind) and its
// modifiers compare equal to the matcher's.
func (e Event) Matches(m Matcher) bool {
	if e.Modifiers != m.Mods {
		return false
	}
	switch m.Kind {
	case MatchKeycode:
		return e.Keycode == m.Code
	case MatchScancode:
		return e.Scancode == m.Code
	default:
		return false
	}
}

// KeycodeResolver maps a key Symbol to a physical keycode. It returns
// ok == false when it has no mapping for the symbol.
type KeycodeResolver func(Symbol) (code int, ok bool)

// ScancodeResolver maps a key Symbol to a physical scancode, used as a
// fallback when the KeycodeResolver has no mapping.
type ScancodeResolver func(Symbol) (code int, ok bool)

// Resolvers bundles the two resolver functions the parser needs to turn a
// Symbol into a Matcher.
type Resolvers struct {
	Keycode  KeycodeResolver
	Scancode ScancodeResolver
}

// resolve turns a Symbol into a Matcher carrying mods, trying the keycode
// resolver first and falling back to the scancode resolver.
func (r Resolvers) resolve(sym Symbol, mods Modifiers) (Matcher, error) {
	if r.Keycode != nil {
		if code, ok := r.Keycode(sym); ok {
			return Keycode(code, mods), nil
		}
	}
	if r.Scancode != nil {
		if code, ok := r.Scancode(sym); ok {
			return Scancode(code, mods), nil
		}
	}
	return Matcher{}, fmt.Errorf("%w: %s", ErrUnresolvedKey, sym.String())
}
