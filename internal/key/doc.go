// Package key provides the closed key-symbol model, modifier record, and
// binding-string parser used by the bindengine package.
//
// # Key Symbols
//
// Symbol is a closed, tagged union of everything a binding string can name:
// a printable character, a function key (F1..F24), a single numpad digit, or
// one of the documented named keys (Escape, Tab, Return, Space, Backspace,
// Delete, Insert, Pause, CapsLock, Home, End, PageUp, PageDown, and the
// arrow keys). The parser never invents symbols outside this set.
//
// # Resolution
//
// The package never hard-codes a keyboard layout. Every Symbol is turned
// into a numeric Matcher by calling an injected KeycodeResolver, falling
// back to a ScancodeResolver when the keycode resolver answers false. This
// keeps the parser (and the bindengine runtime built on its output) agnostic
// of any particular terminal, GUI toolkit, or OS.
//
// # Binding Strings
//
// Two overlapping surface syntaxes are accepted in the same string:
//
//	a            - bare key, lowercase
//	A            - bare key, same as "a" (case carries no meaning on its own)
//	<c-a>        - vim-style, Ctrl+a
//	<C-S-a>      - vim-style, Ctrl+Shift+a
//	Ctrl+a       - vscode-style
//	Ctrl+Shift+A - vscode-style, modifiers combine
//	ab           - two bare keys in sequence
//	!a           - keyup trigger for "a"
//	a!a          - keydown "a" then keyup "a"
package key
