package bindcfg

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/kbind/internal/bindengine"
	"github.com/dshills/kbind/internal/key"
)

// LuaLoader evaluates a Lua script that declares bindings through two
// globals, calling back into the wrapped engine immediately and in
// declaration order:
//
//	bind(keys, action [, args])
//	remap(keys, toKeys)
//
// args, when given, is a Lua table whose string keys become a Go
// map[string]any passed to toPayload; a "when" entry in that table is
// additionally passed to toEnabled to build the binding's Enabled
// predicate.
type LuaLoader[Payload, Context any] struct {
	L         *lua.LState
	engine    *bindengine.Engine[Payload, Context]
	resolvers key.Resolvers
	toPayload func(action string, args map[string]any) (Payload, error)
	toEnabled func(when string) func(Context) bool
	err       error
}

// NewLuaLoader constructs a loader bound to engine. Close the returned
// loader's Lua state when done with it.
func NewLuaLoader[Payload, Context any](
	engine *bindengine.Engine[Payload, Context],
	resolvers key.Resolvers,
	toPayload func(action string, args map[string]any) (Payload, error),
	toEnabled func(when string) func(Context) bool,
) *LuaLoader[Payload, Context] {
	l := &LuaLoader[Payload, Context]{
		L:         lua.NewState(),
		engine:    engine,
		resolvers: resolvers,
		toPayload: toPayload,
		toEnabled: toEnabled,
	}
	l.L.SetGlobal("bind", l.L.NewFunction(l.luaBind))
	l.L.SetGlobal("remap", l.L.NewFunction(l.luaRemap))
	return l
}

// Close releases the underlying Lua state.
func (l *LuaLoader[Payload, Context]) Close() {
	l.L.Close()
}

// Run executes script. Any registration error raised from bind/remap
// aborts execution and is returned with its original %w chain intact, so
// callers can match it with errors.Is against the key package's sentinels.
func (l *LuaLoader[Payload, Context]) Run(script string) error {
	l.err = nil
	if runErr := l.L.DoString(script); runErr != nil {
		if l.err != nil {
			return l.err
		}
		return fmt.Errorf("bindcfg: lua: %w", runErr)
	}
	return nil
}

func (l *LuaLoader[Payload, Context]) luaBind(L *lua.LState) int {
	keysArg := L.CheckString(1)
	actionArg := L.CheckString(2)

	var args map[string]any
	if L.GetTop() >= 3 {
		if tbl, ok := L.Get(3).(*lua.LTable); ok {
			args = luaTableToArgs(tbl)
		}
	}

	seq, err := key.Parse(l.resolvers, keysArg)
	if err != nil {
		l.err = fmt.Errorf("bindcfg: bind %q: %w", keysArg, err)
		L.RaiseError("%v", l.err)
		return 0
	}

	payload, err := l.toPayload(actionArg, args)
	if err != nil {
		l.err = fmt.Errorf("bindcfg: bind %q action %q: %w", keysArg, actionArg, err)
		L.RaiseError("%v", l.err)
		return 0
	}

	var enabled func(Context) bool
	if when, ok := args["when"].(string); ok && when != "" && l.toEnabled != nil {
		enabled = l.toEnabled(when)
	}

	l.engine.AddBinding(seq, enabled, payload)
	return 0
}

func (l *LuaLoader[Payload, Context]) luaRemap(L *lua.LState) int {
	keysArg := L.CheckString(1)
	toArg := L.CheckString(2)

	seq, err := key.Parse(l.resolvers, keysArg)
	if err != nil {
		l.err = fmt.Errorf("bindcfg: remap %q: %w", keysArg, err)
		L.RaiseError("%v", l.err)
		return 0
	}
	toSeq, err := key.Parse(l.resolvers, toArg)
	if err != nil {
		l.err = fmt.Errorf("bindcfg: remap %q -> %q: %w", keysArg, toArg, err)
		L.RaiseError("%v", l.err)
		return 0
	}

	l.engine.AddMapping(seq, nil, sequenceToEvents(toSeq))
	return 0
}

// luaTableToArgs converts a flat Lua table with string keys into a Go map.
// Nested tables are not supported: binding args are a shallow key/value
// set, unlike the general-purpose Lua<->Go bridge this is modeled on.
func luaTableToArgs(t *lua.LTable) map[string]any {
	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		m[string(ks)] = luaValueToGo(v)
	})
	return m
}

func luaValueToGo(v lua.LValue) any {
	switch lv := v.(type) {
	case lua.LBool:
		return bool(lv)
	case lua.LNumber:
		f := float64(lv)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(lv)
	default:
		return nil
	}
}
