package termresolve

import "github.com/dshills/kbind/internal/key"

// Code space: printable characters resolve to their own rune value (small,
// never colliding with the offset bases below, which all start past the
// largest Unicode code point, 0x10FFFF). Function, numpad, and named keys
// each get a disjoint band so Keycode never produces the same number for
// two different Symbols.
const (
	codeFunctionBase = 2_000_000
	codeNumpadBase   = 3_000_000
	codeNamedBase    = 4_000_000
)

// Keycode is a key.KeycodeResolver grounded in the code space EventFromTcell
// produces events in: every Symbol this parser can construct resolves to a
// stable integer, so Parse'd bindings compare equal against events built by
// EventFromTcell.
func Keycode(sym key.Symbol) (int, bool) {
	switch sym.Kind {
	case key.SymbolChar:
		return int(sym.Char), true
	case key.SymbolFunction:
		return codeFunctionBase + sym.Function, true
	case key.SymbolNumpadDigit:
		return codeNumpadBase + sym.Digit, true
	case key.SymbolNamed:
		return codeNamedBase + int(sym.Named), true
	default:
		return 0, false
	}
}

// Resolvers bundles Keycode as the sole resolver; tcell exposes no scancode
// concept distinct from its key constants, so ScancodeResolver is left nil.
func Resolvers() key.Resolvers {
	return key.Resolvers{Keycode: Keycode}
}
