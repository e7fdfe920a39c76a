package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parser errors. Wrapped with context via fmt.Errorf("...: %w", ...); test
// with errors.Is.
var (
	ErrUnbalancedBracket = errors.New("unbalanced bracket")
	ErrUnknownModifier   = errors.New("unknown modifier")
	ErrUnknownKey        = errors.New("unknown key")
	ErrUnresolvedKey     = errors.New("unresolved key")
	ErrEmptySequence     = errors.New("empty sequence")
	ErrDanglingKeyup     = errors.New("dangling keyup marker")
)

// namedTokens maps a lowercase multi-character token to the NamedKey it
// names. Only these tokens (plus F1..F24 and KP0..KP9, recognized
// separately) form a bare multi-character atom; anything else falls back to
// single-character atoms.
var namedTokens = map[string]NamedKey{
	"esc":      NamedEscape,
	"escape":   NamedEscape,
	"tab":      NamedTab,
	"return":   NamedReturn,
	"enter":    NamedReturn,
	"cr":       NamedReturn,
	"space":    NamedSpace,
	"backspace": NamedBackspace,
	"bs":       NamedBackspace,
	"delete":   NamedDelete,
	"del":      NamedDelete,
	"insert":   NamedInsert,
	"ins":      NamedInsert,
	"pause":    NamedPause,
	"caps":     NamedCapsLock,
	"capslock": NamedCapsLock,
	"home":     NamedHome,
	"end":      NamedEnd,
	"pageup":   NamedPageUp,
	"pgup":     NamedPageUp,
	"pagedown": NamedPageDown,
	"pgdn":     NamedPageDown,
	"up":       NamedUp,
	"down":     NamedDown,
	"left":     NamedLeft,
	"right":    NamedRight,
}

// Parse parses a binding string into a normalized Sequence, resolving every
// matcher through r. It is a pure function: the same spec and resolvers
// always yield the same result or the same error.
func Parse(r Resolvers, spec string) (Sequence, error) {
	p := &parser{input: []rune(spec), resolvers: r}
	seq, err := p.run()
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	return seq, nil
}

// MustParse parses spec and panics on error. Use only for known-valid specs
// in initialization code.
func MustParse(r Resolvers, spec string) Sequence {
	seq, err := Parse(r, spec)
	if err != nil {
		panic("invalid binding spec: " + spec + ": " + err.Error())
	}
	return seq
}

type parser struct {
	input     []rune
	pos       int
	resolvers Resolvers
}

func (p *parser) run() (Sequence, error) {
	var seq Sequence

	for {
		p.skipSpace()
		if p.atEnd() {
			return seq, nil
		}

		pendingKeyup := false
		for p.peek() == '!' {
			p.advance()
			pendingKeyup = true
			p.skipSpace()
			if p.atEnd() {
				return nil, ErrDanglingKeyup
			}
		}

		var dm DirectedMatcher
		var err error
		if p.peek() == '<' {
			dm, err = p.parseAngleAtom()
		} else {
			dm, err = p.parseBareAtom()
		}
		if err != nil {
			return nil, err
		}
		if pendingKeyup {
			dm.Direction = Keyup
		}
		seq = append(seq, dm)
	}
}

func (p *parser) parseAngleAtom() (DirectedMatcher, error) {
	start := p.pos
	p.advance() // consume '<'
	closeIdx := -1
	for i := p.pos; i < len(p.input); i++ {
		if p.input[i] == '>' {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		return DirectedMatcher{}, fmt.Errorf("%w: %q", ErrUnbalancedBracket, string(p.input[start:]))
	}
	inner := string(p.input[p.pos:closeIdx])
	p.pos = closeIdx + 1

	mods, keyTok, err := splitVimModifiers(inner)
	if err != nil {
		return DirectedMatcher{}, err
	}
	sym, err := lookupKeyToken(keyTok)
	if err != nil {
		return DirectedMatcher{}, err
	}
	m, err := p.resolvers.resolve(sym, mods)
	if err != nil {
		return DirectedMatcher{}, err
	}
	return DirectedMatcher{Direction: Keydown, Matcher: m}, nil
}

// parseBareAtom consumes either a whole vscode-style "Mod+Mod+key" word, a
// whole multi-character named-key word ("esc", "pageup", "f5", "kp3"), or a
// single bare character, per the parser's tokenization rule documented on
// namedTokens.
func (p *parser) parseBareAtom() (DirectedMatcher, error) {
	word, wordLen := p.peekWord()

	if strings.Contains(word, "+") {
		p.pos += wordLen
		mods, keyTok, err := splitPlusModifiers(word)
		if err != nil {
			return DirectedMatcher{}, err
		}
		sym, err := lookupKeyToken(keyTok)
		if err != nil {
			return DirectedMatcher{}, err
		}
		m, err := p.resolvers.resolve(sym, mods)
		if err != nil {
			return DirectedMatcher{}, err
		}
		return DirectedMatcher{Direction: Keydown, Matcher: m}, nil
	}

	if len([]rune(word)) > 1 {
		if sym, ok := namedOrFunctionToken(strings.ToLower(word)); ok {
			p.pos += wordLen
			m, err := p.resolvers.resolve(sym, ModsNone)
			if err != nil {
				return DirectedMatcher{}, err
			}
			return DirectedMatcher{Direction: Keydown, Matcher: m}, nil
		}
	}

	r := p.peek()
	p.advance()
	sym := CharSymbol(r)
	m, err := p.resolvers.resolve(sym, ModsNone)
	if err != nil {
		return DirectedMatcher{}, err
	}
	return DirectedMatcher{Direction: Keydown, Matcher: m}, nil
}

// peekWord returns the maximal run of non-whitespace, non-'<', non-'!'
// characters starting at the current position, and its length in runes.
func (p *parser) peekWord() (string, int) {
	i := p.pos
	for i < len(p.input) {
		c := p.input[i]
		if unicode.IsSpace(c) || c == '<' || c == '!' {
			break
		}
		i++
	}
	return string(p.input[p.pos:i]), i - p.pos
}

func (p *parser) skipSpace() {
	for !p.atEnd() && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *parser) atEnd() bool { return p.pos >= len(p.input) }

func (p *parser) peek() rune {
	if p.atEnd() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) advance() {
	if !p.atEnd() {
		p.pos++
	}
}

// splitVimModifiers splits a vim-style "<...>" interior such as "c-s-a"
// into the leading modifier tokens and the trailing key token.
func splitVimModifiers(inner string) (Modifiers, string, error) {
	if inner == "" {
		return Modifiers{}, "", fmt.Errorf("%w: empty <>", ErrUnbalancedBracket)
	}
	parts := strings.Split(inner, "-")
	if len(parts) == 1 {
		return Modifiers{}, parts[0], nil
	}
	var mods Modifiers
	for _, raw := range parts[:len(parts)-1] {
		tok := strings.ToLower(strings.TrimSpace(raw))
		m, ok := modifierFromVimToken(tok)
		if !ok {
			return Modifiers{}, "", fmt.Errorf("%w: %q", ErrUnknownModifier, raw)
		}
		mods = mods.With(m)
	}
	key := parts[len(parts)-1]
	if key == "" {
		return Modifiers{}, "", fmt.Errorf("%w: missing key in <%s>", ErrUnknownKey, inner)
	}
	return mods, key, nil
}

// splitPlusModifiers splits a vscode-style "Ctrl+Shift+a" word into the
// leading modifier tokens and the trailing key token.
func splitPlusModifiers(word string) (Modifiers, string, error) {
	parts := strings.Split(word, "+")
	var mods Modifiers
	for _, raw := range parts[:len(parts)-1] {
		tok := strings.ToLower(strings.TrimSpace(raw))
		m, ok := modifierFromPlusToken(tok)
		if !ok {
			return Modifiers{}, "", fmt.Errorf("%w: %q", ErrUnknownModifier, raw)
		}
		mods = mods.With(m)
	}
	key := parts[len(parts)-1]
	if key == "" {
		return Modifiers{}, "", fmt.Errorf("%w: missing key in %q", ErrUnknownKey, word)
	}
	return mods, key, nil
}

// lookupKeyToken resolves a single key token (as found after modifier
// prefixes are stripped) to a Symbol. It accepts single characters, the
// documented named-key aliases, function keys, and numpad digits.
func lookupKeyToken(tok string) (Symbol, error) {
	runes := []rune(tok)
	if len(runes) == 1 {
		return CharSymbol(runes[0]), nil
	}
	if sym, ok := namedOrFunctionToken(strings.ToLower(tok)); ok {
		return sym, nil
	}
	return Symbol{}, fmt.Errorf("%w: %q", ErrUnknownKey, tok)
}

// namedOrFunctionToken recognizes a lowercase multi-character token as a
// named key, a function key (f1..f24), or a numpad digit (kp0..kp9).
func namedOrFunctionToken(lower string) (Symbol, bool) {
	if n, ok := namedTokens[lower]; ok {
		return NamedSymbol(n), true
	}
	if n, ok := parseFunctionToken(lower); ok {
		return FunctionSymbol(n), true
	}
	if d, ok := parseNumpadToken(lower); ok {
		return NumpadDigitSymbol(d), true
	}
	return Symbol{}, false
}

func parseFunctionToken(lower string) (int, bool) {
	if len(lower) < 2 || lower[0] != 'f' {
		return 0, false
	}
	n := 0
	for _, c := range lower[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n < 1 || n > 24 {
		return 0, false
	}
	return n, true
}

func parseNumpadToken(lower string) (int, bool) {
	if len(lower) != 3 || lower[0] != 'k' || lower[1] != 'p' {
		return 0, false
	}
	if lower[2] < '0' || lower[2] > '9' {
		return 0, false
	}
	return int(lower[2] - '0'), true
}
