// Package bindcfg declares bindings and engine settings against a freshly
// constructed bindengine.Engine at startup.
//
// Nothing in this package round-trips engine state: JSON and Lua documents
// only ever flow in, through Parse and AddBinding/AddMapping, the same way
// a caller would register bindings by hand. Persisting or restoring a
// running engine's buffered match state is explicitly out of scope.
package bindcfg
