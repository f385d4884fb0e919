// Package enco composes entity types from independently authored components.
//
// A component bundles named methods, an optional initializer and class-level
// data. Attaching bound components to a bare type, in an explicit order,
// produces an immutable composed type: method names colliding across
// components fan out to every implementation on each call, initializers run
// as an argument-bound chain at construction, and all component state shares
// one flat attribute namespace on the entity.
//
// Policies, chosen once and applied uniformly: fan-out and the initializer
// chain follow attachment order (first attached, first invoked); the bare
// type's own method runs last and its own initializer runs first; a
// dispatched call returns the last invocation's value. The mechanism is
// fail-fast throughout and recovers nothing.
package enco
