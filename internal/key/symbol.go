package key

import "fmt"

// NamedKey enumerates the named (non-character, non-function, non-numpad)
// keys recognized by the parser.
type NamedKey uint8

const (
	NamedEscape NamedKey = iota
	NamedTab
	NamedReturn
	NamedSpace
	NamedBackspace
	NamedDelete
	NamedInsert
	NamedPause
	NamedCapsLock
	NamedHome
	NamedEnd
	NamedPageUp
	NamedPageDown
	NamedUp
	NamedDown
	NamedLeft
	NamedRight
)

// String returns a human-readable name for the named key.
func (n NamedKey) String() string {
	switch n {
	case NamedEscape:
		return "Escape"
	case NamedTab:
		return "Tab"
	case NamedReturn:
		return "Return"
	case NamedSpace:
		return "Space"
	case NamedBackspace:
		return "Backspace"
	case NamedDelete:
		return "Delete"
	case NamedInsert:
		return "Insert"
	case NamedPause:
		return "Pause"
	case NamedCapsLock:
		return "CapsLock"
	case NamedHome:
		return "Home"
	case NamedEnd:
		return "End"
	case NamedPageUp:
		return "PageUp"
	case NamedPageDown:
		return "PageDown"
	case NamedUp:
		return "Up"
	case NamedDown:
		return "Down"
	case NamedLeft:
		return "Left"
	case NamedRight:
		return "Right"
	default:
		return fmt.Sprintf("NamedKey(%d)", n)
	}
}

// SymbolKind tags which field of a Symbol is meaningful.
type SymbolKind uint8

const (
	SymbolChar SymbolKind = iota
	SymbolFunction
	SymbolNumpadDigit
	SymbolNamed
)

// Symbol is the closed set of key tokens the parser can recognize. Exactly
// one field besides Kind is meaningful, selected by Kind.
type Symbol struct {
	Kind     SymbolKind
	Char     rune     // valid when Kind == SymbolChar; always case-folded to lower
	Function int      // valid when Kind == SymbolFunction; 1..24
	Digit    int       // valid when Kind == SymbolNumpadDigit; 0..9
	Named    NamedKey  // valid when Kind == SymbolNamed
}

// CharSymbol builds a printable-character symbol. Case carries no meaning:
// the rune is folded to lowercase so that Symbol{'a'} and Symbol{'A'}
// compare equal and resolve to the same matcher.
func CharSymbol(r rune) Symbol {
	return Symbol{Kind: SymbolChar, Char: foldRune(r)}
}

// FunctionSymbol builds a function-key symbol, n in 1..24.
func FunctionSymbol(n int) Symbol {
	return Symbol{Kind: SymbolFunction, Function: n}
}

// NumpadDigitSymbol builds a numpad-digit symbol, d in 0..9.
func NumpadDigitSymbol(d int) Symbol {
	return Symbol{Kind: SymbolNumpadDigit, Digit: d}
}

// NamedSymbol builds a symbol for one of the documented named keys.
func NamedSymbol(n NamedKey) Symbol {
	return Symbol{Kind: SymbolNamed, Named: n}
}

// String returns a debug-friendly representation of the symbol.
func (s Symbol) String() string {
	switch s.Kind {
	case SymbolChar:
		return string(s.Char)
	case SymbolFunction:
		return fmt.Sprintf("F%d", s.Function)
	case SymbolNumpadDigit:
		return fmt.Sprintf("KP%d", s.Digit)
	case SymbolNamed:
		return s.Named.String()
	default:
		return "Symbol(?)"
	}
}

func foldRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
