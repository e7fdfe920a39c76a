package termresolve

import (
	"testing"

	"github.com/dshills/kbind/internal/key"
)

func TestKeycodeDisjointCodeSpace(t *testing.T) {
	codes := map[int]string{}
	add := func(sym key.Symbol, label string) {
		code, ok := Keycode(sym)
		if !ok {
			t.Fatalf("Keycode(%s) not ok", label)
		}
		if other, exists := codes[code]; exists {
			t.Fatalf("code %d collides between %s and %s", code, label, other)
		}
		codes[code] = label
	}

	add(key.CharSymbol('a'), "char a")
	add(key.CharSymbol('g'), "char g")
	add(key.FunctionSymbol(1), "F1")
	add(key.NumpadDigitSymbol(1), "KP1")
	add(key.NamedSymbol(key.NamedEscape), "Escape")
	add(key.NamedSymbol(key.NamedSpace), "Space")
}

func TestKeycodeCharFoldsCase(t *testing.T) {
	lower, _ := Keycode(key.CharSymbol('a'))
	upper, _ := Keycode(key.CharSymbol('A'))
	if lower != upper {
		t.Errorf("Keycode differs by case: %d vs %d", lower, upper)
	}
}
