package bindcfg

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/kbind/internal/bindengine"
	"github.com/dshills/kbind/internal/key"
)

// BindingDecl is one entry of a keymap JSON document's "bindings" array.
type BindingDecl struct {
	Keys   string
	Action string
	Args   map[string]any
	Remap  string
	When   string
}

// LoadKeymapJSON parses a document shaped like:
//
//	{
//	  "bindings": [
//	    {"keys": "j", "action": "cursor.down"},
//	    {"keys": "<c-s>", "action": "editor.save", "when": "editorFocus"},
//	    {"keys": "g g", "remap": "G"}
//	  ]
//	}
//
// and registers each entry against engine using resolvers to turn key
// strings into matchers, toPayload to turn an action name plus its args
// into a caller payload, and toEnabled to turn a non-empty "when" string
// into an Enabled predicate. toEnabled may be nil if the caller has no use
// for conditional bindings. Registration stops at the first error.
func LoadKeymapJSON[Payload, Context any](
	data []byte,
	engine *bindengine.Engine[Payload, Context],
	resolvers key.Resolvers,
	toPayload func(action string, args map[string]any) (Payload, error),
	toEnabled func(when string) func(Context) bool,
) error {
	if !gjson.ValidBytes(data) {
		return errInvalidSettingsJSON
	}
	root := gjson.ParseBytes(data)
	bindings := root.Get("bindings")
	if !bindings.Exists() {
		return errNoBindingsArray
	}

	var firstErr error
	bindings.ForEach(func(_, entry gjson.Result) bool {
		decl := BindingDecl{
			Keys:   entry.Get("keys").String(),
			Action: entry.Get("action").String(),
			Remap:  entry.Get("remap").String(),
			When:   entry.Get("when").String(),
		}
		if argsRes := entry.Get("args"); argsRes.Exists() {
			if m, ok := argsRes.Value().(map[string]any); ok {
				decl.Args = m
			}
		}
		if err := registerDecl(decl, engine, resolvers, toPayload, toEnabled); err != nil {
			firstErr = err
			return false
		}
		return true
	})
	return firstErr
}

func registerDecl[Payload, Context any](
	decl BindingDecl,
	engine *bindengine.Engine[Payload, Context],
	resolvers key.Resolvers,
	toPayload func(action string, args map[string]any) (Payload, error),
	toEnabled func(when string) func(Context) bool,
) error {
	seq, err := key.Parse(resolvers, decl.Keys)
	if err != nil {
		return fmt.Errorf("bindcfg: binding %q: %w", decl.Keys, err)
	}

	var enabled func(Context) bool
	if decl.When != "" && toEnabled != nil {
		enabled = toEnabled(decl.When)
	}

	if decl.Remap != "" {
		remapSeq, err := key.Parse(resolvers, decl.Remap)
		if err != nil {
			return fmt.Errorf("bindcfg: remap target %q: %w", decl.Remap, err)
		}
		engine.AddMapping(seq, enabled, sequenceToEvents(remapSeq))
		return nil
	}

	payload, err := toPayload(decl.Action, decl.Args)
	if err != nil {
		return fmt.Errorf("bindcfg: action %q: %w", decl.Action, err)
	}
	engine.AddBinding(seq, enabled, payload)
	return nil
}

func sequenceToEvents(seq key.Sequence) []key.Event {
	events := make([]key.Event, len(seq))
	for i, dm := range seq {
		events[i] = dm.Matcher.Event()
	}
	return events
}
