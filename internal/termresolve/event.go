package termresolve

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/kbind/internal/key"
)

// namedByTcellKey maps the tcell key constants that have a direct named-key
// counterpart in the parser's grammar. Space is handled separately below:
// tcell reports it as a plain rune, but the parser treats "<space>" as a
// named key, so EventFromTcell must produce the same code for both.
// EventFromTcell consults this map before the Ctrl+letter decomposition,
// because tcell's Tab, Enter and Backspace share their values with
// KeyCtrlI, KeyCtrlM and KeyCtrlH.
var namedByTcellKey = map[tcell.Key]key.NamedKey{
	tcell.KeyEscape:    key.NamedEscape,
	tcell.KeyTab:       key.NamedTab,
	tcell.KeyEnter:     key.NamedReturn,
	tcell.KeyBackspace: key.NamedBackspace,
	tcell.KeyBackspace2: key.NamedBackspace,
	tcell.KeyDelete:    key.NamedDelete,
	tcell.KeyInsert:    key.NamedInsert,
	tcell.KeyHome:      key.NamedHome,
	tcell.KeyEnd:       key.NamedEnd,
	tcell.KeyPgUp:      key.NamedPageUp,
	tcell.KeyPgDn:      key.NamedPageDown,
	tcell.KeyUp:        key.NamedUp,
	tcell.KeyDown:      key.NamedDown,
	tcell.KeyLeft:      key.NamedLeft,
	tcell.KeyRight:     key.NamedRight,
}

// EventFromTcell converts a tcell key event into a key.Event in the same
// code space Keycode resolves Symbols into.
//
// Ctrl+letter is reported by tcell as a single composite key
// (tcell.KeyCtrlA, ...); it is decomposed here into the plain letter's code
// plus an explicit Control modifier, so "<c-a>" and a real Ctrl+A keypress
// resolve to the same matcher. CapsLock and Pause have no named-key
// counterpart reachable from tcell's event stream and are never produced by
// this converter, though they remain parseable as binding text.
func EventFromTcell(ev *tcell.EventKey) key.Event {
	mods := modifiersFromTcell(ev.Modifiers())

	if named, ok := namedByTcellKey[ev.Key()]; ok {
		return key.Event{Keycode: codeNamedBase + int(named), Modifiers: mods}
	}
	if letter, ok := ctrlLetter(ev.Key()); ok {
		mods.Control = true
		return key.Event{Keycode: int(letter), Modifiers: mods}
	}
	if ev.Key() == tcell.KeyCtrlSpace {
		mods.Control = true
		return key.Event{Keycode: codeNamedBase + int(key.NamedSpace), Modifiers: mods}
	}

	if ev.Key() == tcell.KeyRune {
		r := foldRune(ev.Rune())
		if r == ' ' {
			return key.Event{Keycode: codeNamedBase + int(key.NamedSpace), Modifiers: mods, Text: " "}
		}
		return key.Event{Keycode: int(r), Modifiers: mods, Text: string(ev.Rune())}
	}

	if named, ok := namedByTcellKey[ev.Key()]; ok {
		return key.Event{Keycode: codeNamedBase + int(named), Modifiers: mods}
	}

	if n, ok := functionKeyNumber(ev.Key()); ok {
		return key.Event{Keycode: codeFunctionBase + n, Modifiers: mods}
	}

	return key.Event{Keycode: codeNamedBase + int(ev.Key()), Modifiers: mods}
}

func modifiersFromTcell(m tcell.ModMask) key.Modifiers {
	return key.Modifiers{
		Control: m&tcell.ModCtrl != 0,
		Shift:   m&tcell.ModShift != 0,
		Alt:     m&tcell.ModAlt != 0,
		Meta:    m&tcell.ModMeta != 0,
	}
}

// ctrlLetter reports the plain letter a tcell Ctrl+letter composite key
// represents, for k in KeyCtrlA..KeyCtrlZ.
func ctrlLetter(k tcell.Key) (rune, bool) {
	if k < tcell.KeyCtrlA || k > tcell.KeyCtrlZ {
		return 0, false
	}
	return 'a' + rune(k-tcell.KeyCtrlA), true
}

// functionKeyNumber reports n for tcell's KeyF1..KeyF12, the function-key
// range guaranteed present across tcell versions.
func functionKeyNumber(k tcell.Key) (int, bool) {
	if k < tcell.KeyF1 || k > tcell.KeyF12 {
		return 0, false
	}
	return int(k-tcell.KeyF1) + 1, true
}

func foldRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
