package bindcfg

import (
	"testing"

	"github.com/dshills/kbind/internal/bindengine"
	"github.com/dshills/kbind/internal/key"
)

func TestLuaLoaderBindAndRemap(t *testing.T) {
	e := bindengine.New[testCmd, struct{}]()
	l := NewLuaLoader(e, testResolvers(), testToPayload, nil)
	defer l.Close()

	script := `
		bind("j", "cursor.down")
		remap("g g", "j")
	`
	if err := l.Run(script); err != nil {
		t.Fatalf("Run: %v", err)
	}

	jEvt := key.Event{Keycode: int('j')}
	got := e.KeyDown(struct{}{}, jEvt)
	if len(got) != 1 || got[0].Kind != bindengine.EffectExecute || got[0].Payload.Action != "cursor.down" {
		t.Fatalf("KeyDown(j) = %#v, want Execute(cursor.down)", got)
	}

	gEvt := key.Event{Keycode: int('g')}
	if got := e.KeyDown(struct{}{}, gEvt); got != nil {
		t.Fatalf("KeyDown(g) = %#v, want nil (ambiguous)", got)
	}
	got = e.KeyDown(struct{}{}, gEvt)
	if len(got) != 1 || got[0].Kind != bindengine.EffectExecute || got[0].Payload.Action != "cursor.down" {
		t.Fatalf("KeyDown(g) second = %#v, want remap to Execute(cursor.down)", got)
	}
}

func TestLuaLoaderBindWithArgsAndWhen(t *testing.T) {
	e := bindengine.New[testCmd, bool]()
	toEnabled := func(when string) func(bool) bool {
		return func(focused bool) bool { return when == "focused" && focused }
	}
	l := NewLuaLoader(e, testResolvers(), testToPayload, toEnabled)
	defer l.Close()

	if err := l.Run(`bind("j", "cursor.down", {when = "focused", count = 3})`); err != nil {
		t.Fatalf("Run: %v", err)
	}

	jEvt := key.Event{Keycode: int('j')}
	if got := e.KeyDown(false, jEvt); len(got) != 1 || got[0].Kind != bindengine.EffectUnhandled {
		t.Fatalf("KeyDown(j) unfocused = %#v, want Unhandled", got)
	}
	got := e.KeyDown(true, jEvt)
	if len(got) != 1 || got[0].Kind != bindengine.EffectExecute {
		t.Fatalf("KeyDown(j) focused = %#v, want Execute", got)
	}
	if n, ok := got[0].Payload.Args["count"].(int64); !ok || n != 3 {
		t.Errorf("Args[count] = %#v, want int64(3)", got[0].Payload.Args["count"])
	}
}

func TestLuaLoaderBindErrorAborts(t *testing.T) {
	e := bindengine.New[testCmd, struct{}]()
	l := NewLuaLoader(e, testResolvers(), testToPayload, nil)
	defer l.Close()

	if err := l.Run(`bind("<unclosed", "cursor.down")`); err == nil {
		t.Error("expected error for malformed key spec")
	}
}
