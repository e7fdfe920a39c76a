package bindengine

import "github.com/dshills/kbind/internal/key"

// defaultMaxRemapDepth bounds how many nested Remap actions the engine will
// chase before giving up and surfacing the remaining keys as Unhandled. The
// reference implementation this engine is modeled on has no such cap and can
// loop forever on a cyclic remap; this engine always terminates.
const defaultMaxRemapDepth = 64

// Option configures an Engine at construction time.
type Option[Payload, Context any] func(*Engine[Payload, Context])

// WithMaxRemapDepth overrides the default nested-remap recursion limit.
func WithMaxRemapDepth[Payload, Context any](depth int) Option[Payload, Context] {
	return func(e *Engine[Payload, Context]) {
		e.maxRemapDepth = depth
	}
}

// Engine turns a stream of key events into Execute/Unhandled effects by
// matching buffered keydown events against registered bindings.
//
// Payload is the caller-defined command type a Dispatch action carries.
// Context is the caller-defined value passed to each binding's Enabled
// predicate; the engine never inspects it itself.
//
// An Engine is not safe for concurrent use without external synchronization.
type Engine[Payload, Context any] struct {
	nextID        int
	bindings      []Binding[Payload, Context]
	pending       []key.Event
	maxRemapDepth int
}

// New creates an empty Engine with no registered bindings.
func New[Payload, Context any](opts ...Option[Payload, Context]) *Engine[Payload, Context] {
	e := &Engine[Payload, Context]{maxRemapDepth: defaultMaxRemapDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddBinding registers seq to dispatch payload when matched and enabled is
// satisfied. enabled may be nil for an always-active binding. It panics if
// seq is empty. The returned ID can be used to identify the binding later;
// the engine itself never looks it back up.
func (e *Engine[Payload, Context]) AddBinding(seq key.Sequence, enabled func(Context) bool, payload Payload) int {
	return e.add(seq, enabled, Dispatch[Payload](payload))
}

// AddMapping registers seq to remap to keys when matched and enabled is
// satisfied. The remapped keys are force-resolved at once, the way Flush
// resolves a buffer, recursively up to the engine's max remap depth.
func (e *Engine[Payload, Context]) AddMapping(seq key.Sequence, enabled func(Context) bool, keys []key.Event) int {
	return e.add(seq, enabled, Remap[Payload](keys))
}

func (e *Engine[Payload, Context]) add(seq key.Sequence, enabled func(Context) bool, action Action[Payload]) int {
	if len(seq) == 0 {
		panic("bindengine: binding sequence must not be empty")
	}
	id := e.nextID
	e.nextID++
	b := Binding[Payload, Context]{ID: id, Sequence: seq, Action: action, Enabled: enabled}

	// Last-registered wins ties between simultaneously-ready bindings, so
	// new bindings go to the front of the slice: evaluate walks it in
	// order and takes the first ready candidate.
	e.bindings = append([]Binding[Payload, Context]{b}, e.bindings...)
	return id
}

// KeyUp currently never advances a match: matchers tagged for the keyup
// direction are parseable and storable but unreachable, mirroring the
// resolver this engine was modeled on. It always returns nil.
func (e *Engine[Payload, Context]) KeyUp(ctx Context, evt key.Event) []Effect[Payload] {
	return nil
}

// KeyDown feeds one keydown event into the engine. It returns nil while the
// buffered sequence remains ambiguous (a longer binding could still match),
// and otherwise returns the effects produced by resolving the buffer: a
// completed binding's action, or Unhandled for keys that matched nothing.
//
// Any panic from a binding's Enabled predicate propagates to the caller
// before any of the engine's buffered state is mutated.
func (e *Engine[Payload, Context]) KeyDown(ctx Context, evt key.Event) []Effect[Payload] {
	return e.keyDownCore(ctx, evt)
}

// Flush forces resolution of whatever is currently buffered, as if no
// further keys will arrive. It is the caller's responsibility to invoke
// this on an idle timeout; the engine has no timer of its own.
func (e *Engine[Payload, Context]) Flush(ctx Context) []Effect[Payload] {
	working := append([]key.Event(nil), e.pending...)
	effects, carry := e.forcedPass(ctx, working, 0)
	e.pending = nil
	for _, k := range carry {
		effects = append(effects, e.keyDownCore(ctx, k)...)
	}
	return effects
}

// keyDownCore implements the resolution policy for a single incoming
// keydown event against the current buffer. It evaluates candidates against
// a local copy of the extended buffer first, and only mutates e.pending
// once resolution has chosen an outcome, so a panicking Enabled predicate
// never leaves the engine in a half-mutated state.
func (e *Engine[Payload, Context]) keyDownCore(ctx Context, evt key.Event) []Effect[Payload] {
	candidate := append(append([]key.Event(nil), e.pending...), evt)
	ready, potential := e.evaluate(ctx, candidate)

	switch {
	case len(potential) > 0:
		// Still ambiguous: a longer binding could still complete. Buffer
		// and wait for more input or an explicit/timed Flush.
		e.pending = candidate
		return nil
	case len(ready) > 0:
		b := ready[0]
		e.pending = nil
		return e.settleReady(ctx, b, 0)
	default:
		// No binding can accept this extended buffer. Recovery is handled
		// by the same forced/settled algorithm Flush uses.
		effects, carry := e.forcedPass(ctx, candidate, 0)
		e.pending = nil
		for _, k := range carry {
			effects = append(effects, e.keyDownCore(ctx, k)...)
		}
		return effects
	}
}

// candidateState tracks one binding's progress matching a run of buffered
// keydown events.
type candidateState[Payload, Context any] struct {
	binding *Binding[Payload, Context]
	idx     int
}

// evaluate advances every enabled binding against keys, in order, and
// partitions the survivors into ready (sequence fully consumed) and
// potential (a strict, still-matching prefix). A binding whose current
// expected matcher is keyup-tagged can never advance past it, since this
// engine resolves only on keydown; such a binding is simply dropped at that
// position. Ready candidates are terminal: once a binding's idx reaches the
// end of its sequence, any further key in the same pass drops it rather
// than extending the match.
func (e *Engine[Payload, Context]) evaluate(ctx Context, keys []key.Event) (ready, potential []*Binding[Payload, Context]) {
	active := make([]candidateState[Payload, Context], 0, len(e.bindings))
	for i := range e.bindings {
		b := &e.bindings[i]
		if !b.enabled(ctx) {
			continue
		}
		active = append(active, candidateState[Payload, Context]{binding: b, idx: 0})
	}

	for _, k := range keys {
		next := active[:0]
		for _, st := range active {
			if st.idx >= len(st.binding.Sequence) {
				continue
			}
			dm := st.binding.Sequence[st.idx]
			if dm.Direction != key.Keydown {
				continue
			}
			if k.Matches(dm.Matcher) {
				next = append(next, candidateState[Payload, Context]{binding: st.binding, idx: st.idx + 1})
			}
		}
		active = next
	}

	for _, st := range active {
		if st.idx >= len(st.binding.Sequence) {
			ready = append(ready, st.binding)
		} else {
			potential = append(potential, st.binding)
		}
	}
	return ready, potential
}

// forcedPass implements the forced half of the flush algorithm: evaluate
// the working buffer, dispatch the first ready binding even if potentials
// remain (committing the longest match found so far), and otherwise shrink
// the buffer from its tail until either a binding becomes ready or a single
// unmatched key remains and is surfaced as Unhandled. Shrunk-off keys are
// returned as carry, in their original arrival order, for the settled pass.
// forcedPass itself does not write engine state, but settling a Remap
// replays that remap's carry keys through keyDownCore, which updates
// e.pending.
func (e *Engine[Payload, Context]) forcedPass(ctx Context, keys []key.Event, depth int) (effects []Effect[Payload], carry []key.Event) {
	working := append([]key.Event(nil), keys...)
	for len(working) > 0 {
		ready, _ := e.evaluate(ctx, working)
		if len(ready) > 0 {
			effects = append(effects, e.settleReady(ctx, ready[0], depth)...)
			working = nil
			break
		}
		if len(working) == 1 {
			effects = append(effects, Unhandled[Payload](working[0]))
			working = nil
			break
		}
		last := working[len(working)-1]
		carry = append([]key.Event{last}, carry...)
		working = working[:len(working)-1]
	}
	return effects, carry
}

// settleReady resolves one ready binding's action: a Dispatch becomes a
// single Execute effect, and a Remap recursively flushes its substitute
// keys (forced pass, then settled replay through the normal keydown path)
// unless depth has reached the engine's remap cap, in which case the
// substitute keys are surfaced as Unhandled instead of being chased
// forever.
func (e *Engine[Payload, Context]) settleReady(ctx Context, b *Binding[Payload, Context], depth int) []Effect[Payload] {
	switch b.Action.Kind {
	case ActionDispatch:
		return []Effect[Payload]{Execute[Payload](b.Action.Payload)}
	case ActionRemap:
		if depth >= e.maxRemapDepth {
			effects := make([]Effect[Payload], 0, len(b.Action.RemapKeys))
			for _, k := range b.Action.RemapKeys {
				effects = append(effects, Unhandled[Payload](k))
			}
			return effects
		}
		effects, carry := e.forcedPass(ctx, b.Action.RemapKeys, depth+1)
		for _, k := range carry {
			effects = append(effects, e.keyDownCore(ctx, k)...)
		}
		return effects
	default:
		return nil
	}
}
