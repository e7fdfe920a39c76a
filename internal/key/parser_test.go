package key

import (
	"errors"
	"testing"
)

// fullResolvers maps every Symbol to a stable integer keycode, standing in
// for a real keyboard-layout table in tests.
func fullResolvers() Resolvers {
	return Resolvers{
		Keycode: func(s Symbol) (int, bool) {
			switch s.Kind {
			case SymbolChar:
				return int(s.Char), true
			case SymbolFunction:
				return 1000 + s.Function, true
			case SymbolNumpadDigit:
				return 2000 + s.Digit, true
			case SymbolNamed:
				return 3000 + int(s.Named), true
			default:
				return 0, false
			}
		},
	}
}

// resolversMissing returns resolvers that have no mapping at all for the
// printable character missing, used to exercise the unresolved-key error
// path.
func resolversMissing(missing rune) Resolvers {
	full := fullResolvers()
	return Resolvers{
		Keycode: func(s Symbol) (int, bool) {
			if s.Kind == SymbolChar && s.Char == missing {
				return 0, false
			}
			return full.Keycode(s)
		},
	}
}

func TestParseBareCharCaseInsensitive(t *testing.T) {
	r := fullResolvers()
	for c := 'a'; c <= 'z'; c++ {
		lower, err := Parse(r, string(c))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", string(c), err)
		}
		upper, err := Parse(r, string(c-32))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", string(c-32), err)
		}
		if !lower.Equal(upper) {
			t.Errorf("Parse(%q) != Parse(%q): %v vs %v", string(c), string(c-32), lower, upper)
		}
	}
	for c := '0'; c <= '9'; c++ {
		seq, err := Parse(r, string(c))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", string(c), err)
		}
		if len(seq) != 1 || seq[0].Direction != Keydown || !seq[0].Matcher.Mods.IsNone() {
			t.Errorf("Parse(%q) = %v, want single unmodified keydown", string(c), seq)
		}
	}
}

func TestParseControlAEquivalence(t *testing.T) {
	r := fullResolvers()
	specs := []string{"<c-a>", "<C-A>", "Ctrl+a", "ctrl+a"}
	var want Sequence
	for i, spec := range specs {
		got, err := Parse(r, spec)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", spec, err)
		}
		if i == 0 {
			want = got
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want %v", spec, got, want)
		}
	}
}

func TestParseTwoKeySequenceForms(t *testing.T) {
	r := fullResolvers()
	specs := []string{"ab", "a b", "<a>b", "<a><b>"}
	var want Sequence
	for i, spec := range specs {
		got, err := Parse(r, spec)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", spec, err)
		}
		if len(got) != 2 {
			t.Fatalf("Parse(%q) len = %d, want 2", spec, len(got))
		}
		if i == 0 {
			want = got
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want %v", spec, got, want)
		}
	}
}

func TestParseKeyupForms(t *testing.T) {
	r := fullResolvers()

	seq, err := Parse(r, "!a")
	if err != nil {
		t.Fatalf("Parse(!a) error = %v", err)
	}
	if len(seq) != 1 || seq[0].Direction != Keyup {
		t.Fatalf("Parse(!a) = %v, want single Keyup", seq)
	}

	seq, err = Parse(r, "a!a")
	if err != nil {
		t.Fatalf("Parse(a!a) error = %v", err)
	}
	if len(seq) != 2 || seq[0].Direction != Keydown || seq[1].Direction != Keyup {
		t.Fatalf("Parse(a!a) = %v, want [Keydown, Keyup]", seq)
	}
	if !seq[0].Matcher.Mods.IsNone() || !seq[1].Matcher.Mods.IsNone() {
		t.Fatalf("Parse(a!a) mods = %v, want none", seq)
	}

	seq, err = Parse(r, "a !<C-A>")
	if err != nil {
		t.Fatalf("Parse(a !<C-A>) error = %v", err)
	}
	if len(seq) != 2 {
		t.Fatalf("Parse(a !<C-A>) len = %d, want 2", len(seq))
	}
	if seq[0].Direction != Keydown || seq[0].Matcher.Mods.IsNone() == false {
		t.Fatalf("Parse(a !<C-A>)[0] = %v, want unmodified keydown", seq[0])
	}
	if seq[1].Direction != Keyup || !seq[1].Matcher.Mods.Control {
		t.Fatalf("Parse(a !<C-A>)[1] = %v, want Ctrl keyup", seq[1])
	}
}

func TestParseUnresolvedKey(t *testing.T) {
	r := resolversMissing('c')
	_, err := Parse(r, "c")
	if err == nil {
		t.Fatal("Parse(c) with no resolver entry should error")
	}
	if !errors.Is(err, ErrUnresolvedKey) {
		t.Errorf("Parse(c) error = %v, want ErrUnresolvedKey", err)
	}
}

func TestParseNamedKeys(t *testing.T) {
	r := fullResolvers()
	tests := []struct {
		spec string
		want NamedKey
	}{
		{"esc", NamedEscape},
		{"Esc", NamedEscape},
		{"tab", NamedTab},
		{"up", NamedUp},
		{"down", NamedDown},
		{"left", NamedLeft},
		{"right", NamedRight},
		{"pageup", NamedPageUp},
		{"pagedown", NamedPageDown},
		{"home", NamedHome},
		{"end", NamedEnd},
		{"<Esc>", NamedEscape},
		{"<CR>", NamedReturn},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			seq, err := Parse(r, tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if len(seq) != 1 {
				t.Fatalf("Parse(%q) len = %d, want 1", tt.spec, len(seq))
			}
			wantCode := 3000 + int(tt.want)
			if seq[0].Matcher.Code != wantCode {
				t.Errorf("Parse(%q) code = %d, want %d", tt.spec, seq[0].Matcher.Code, wantCode)
			}
		})
	}
}

func TestParseFunctionAndNumpadKeys(t *testing.T) {
	r := fullResolvers()

	seq, err := Parse(r, "f5")
	if err != nil {
		t.Fatalf("Parse(f5) error = %v", err)
	}
	if len(seq) != 1 || seq[0].Matcher.Code != 1005 {
		t.Fatalf("Parse(f5) = %v, want code 1005", seq)
	}

	seq, err = Parse(r, "<F24>")
	if err != nil {
		t.Fatalf("Parse(<F24>) error = %v", err)
	}
	if len(seq) != 1 || seq[0].Matcher.Code != 1024 {
		t.Fatalf("Parse(<F24>) = %v, want code 1024", seq)
	}

	seq, err = Parse(r, "kp3")
	if err != nil {
		t.Fatalf("Parse(kp3) error = %v", err)
	}
	if len(seq) != 1 || seq[0].Matcher.Code != 2003 {
		t.Fatalf("Parse(kp3) = %v, want code 2003", seq)
	}
}

func TestParseCombinedVimModifiers(t *testing.T) {
	r := fullResolvers()
	seq, err := Parse(r, "<c-s-a>")
	if err != nil {
		t.Fatalf("Parse(<c-s-a>) error = %v", err)
	}
	if len(seq) != 1 {
		t.Fatalf("Parse(<c-s-a>) len = %d, want 1", len(seq))
	}
	mods := seq[0].Matcher.Mods
	if !mods.Control || !mods.Shift || mods.Alt || mods.Meta {
		t.Errorf("Parse(<c-s-a>) mods = %+v, want Control+Shift only", mods)
	}
}

func TestParseErrors(t *testing.T) {
	r := fullResolvers()
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"", ErrEmptySequence},
		{"<a", ErrUnbalancedBracket},
		{"<x-a>", ErrUnknownModifier},
		{"Bogus+a", ErrUnknownModifier},
		{"!", ErrDanglingKeyup},
		{"a !", ErrDanglingKeyup},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(r, tt.spec)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.spec)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
			}
		})
	}
}

func TestMustParsePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse(fullResolvers(), "")
}
