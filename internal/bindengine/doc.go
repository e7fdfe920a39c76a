// Package bindengine implements the stateful matcher that turns a stream of
// key events into Execute or Unhandled effects.
//
// An Engine holds no opinion about what a payload means or how a Context is
// shaped; it only tracks buffered keydown events against registered
// Sequence bindings and decides, on each new event or explicit Flush,
// whether the buffer unambiguously resolves to a binding, could still
// extend into a longer one, or has died and must be recovered via the
// forced/settled flush algorithm.
//
// Persisting the bindings registered on an Engine, or restoring an Engine's
// state from a prior run, is out of scope for this package: bindings are
// always declared fresh at startup by a caller (see bindcfg).
package bindengine
