// Package termresolve adapts the gdamore/tcell/v2 terminal backend to the
// key package's resolver and event types, so a binding engine can be driven
// directly from a tcell.Screen's event loop without knowing tcell exists.
package termresolve
