package key

import "testing"

func TestEventMatchesKeycode(t *testing.T) {
	m := Keycode(30, Modifiers{Control: true})
	e := Event{Keycode: 30, Scancode: 99, Modifiers: Modifiers{Control: true}}
	if !e.Matches(m) {
		t.Error("event should match keycode+mods")
	}
	e.Modifiers = ModsNone
	if e.Matches(m) {
		t.Error("event with different modifiers should not match")
	}
}

func TestEventMatchesScancode(t *testing.T) {
	m := Scancode(44, ModsNone)
	e := Event{Keycode: 30, Scancode: 44, Modifiers: ModsNone}
	if !e.Matches(m) {
		t.Error("event should match scancode")
	}
	e.Scancode = 45
	if e.Matches(m) {
		t.Error("event with different scancode should not match")
	}
}

func TestSequenceEqual(t *testing.T) {
	a := Sequence{{Direction: Keydown, Matcher: Keycode(1, ModsNone)}, {Direction: Keyup, Matcher: Keycode(2, ModsNone)}}
	b := Sequence{{Direction: Keydown, Matcher: Keycode(1, ModsNone)}, {Direction: Keyup, Matcher: Keycode(2, ModsNone)}}
	c := Sequence{{Direction: Keydown, Matcher: Keycode(1, ModsNone)}}
	if !a.Equal(b) {
		t.Error("identical sequences should be equal")
	}
	if a.Equal(c) {
		t.Error("sequences of different length should not be equal")
	}
}

func TestDirectedMatcherString(t *testing.T) {
	dm := DirectedMatcher{Direction: Keyup, Matcher: Keycode(1, ModsNone)}
	if got := dm.String(); got != "!keycode(1)" {
		t.Errorf("DirectedMatcher.String() = %q, want !keycode(1)", got)
	}
}
