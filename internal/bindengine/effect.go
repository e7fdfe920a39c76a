package bindengine

import "github.com/dshills/kbind/internal/key"

// EffectKind tags which field of an Effect is meaningful.
type EffectKind uint8

const (
	EffectExecute EffectKind = iota
	EffectUnhandled
)

// Effect is one externally visible result of feeding a key event into the
// engine: either a dispatch of a binding's payload, or a key that matched
// no binding prefix.
type Effect[Payload any] struct {
	Kind    EffectKind
	Payload Payload   // valid when Kind == EffectExecute
	Key     key.Event // valid when Kind == EffectUnhandled
}

// Execute builds an Execute effect carrying payload.
func Execute[Payload any](payload Payload) Effect[Payload] {
	return Effect[Payload]{Kind: EffectExecute, Payload: payload}
}

// Unhandled builds an Unhandled effect carrying the key that matched
// nothing.
func Unhandled[Payload any](evt key.Event) Effect[Payload] {
	return Effect[Payload]{Kind: EffectUnhandled, Key: evt}
}
