package bindengine

import "github.com/dshills/kbind/internal/key"

// ActionKind tags which field of an Action is meaningful.
type ActionKind uint8

const (
	ActionDispatch ActionKind = iota
	ActionRemap
)

// Action is what a completed binding does: either dispatch a caller-defined
// payload, or substitute a different key sequence and resolve that instead.
type Action[Payload any] struct {
	Kind      ActionKind
	Payload   Payload     // valid when Kind == ActionDispatch
	RemapKeys []key.Event // valid when Kind == ActionRemap
}

// Dispatch builds a Dispatch action carrying payload.
func Dispatch[Payload any](payload Payload) Action[Payload] {
	return Action[Payload]{Kind: ActionDispatch, Payload: payload}
}

// Remap builds a Remap action substituting keys for the matched sequence.
func Remap[Payload any](keys []key.Event) Action[Payload] {
	return Action[Payload]{Kind: ActionRemap, RemapKeys: keys}
}

// Binding ties a key Sequence to an Action, gated by an optional Enabled
// predicate evaluated against the caller's Context at match time.
//
// Enabled may be nil, meaning the binding is always active. If it panics,
// the panic propagates to the caller that triggered resolution (KeyDown or
// Flush) and the engine's buffered state is left exactly as it was before
// that call.
type Binding[Payload, Context any] struct {
	ID       int
	Sequence key.Sequence
	Action   Action[Payload]
	Enabled  func(Context) bool
}

func (b *Binding[Payload, Context]) enabled(ctx Context) bool {
	if b.Enabled == nil {
		return true
	}
	return b.Enabled(ctx)
}
