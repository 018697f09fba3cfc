// Package binder resolves dynamically typed foreign call sites against an
// overload set, converts arguments to native form and executes the call.
//
// # Binding
//
// Bind walks the set's precedence order. For each candidate it reconciles
// argument counts (declared defaults fill missing trailing parameters, a
// variadic tail packs surplus arguments), converts every argument through
// the foreign runtime's conversion collaborator, and counts output and
// by-reference parameters. A candidate whose conversion fails is skipped
// and the runtime's transient error state is cleared, so one candidate's
// failure never pollutes the next attempt.
//
// When several candidates are in play, each argument's dynamic foreign
// type is mapped through the type registry to decide whether a formal of a
// different native type can still take it: exact alias or primitive-kind
// matches are adopted as-is, decimal formals take any numeric, and a
// registered implicit conversion produces a deferred binding that is only
// used if no exact match exists anywhere in the scan.
//
// A non-static call whose instance handle resolves to no constructed
// native wrapper fails the whole bind with an invalid-target error. That
// is caller misuse, not overload ambiguity, so no further candidates are
// tried.
//
// If nothing matched, at least one candidate is a generic definition and a
// pool of closed instantiations was supplied, the binder infers the
// closed signature from the call-site argument types and retries.
//
// Keyword arguments are carried through but never consulted: matching is
// positional-only, with keyword handling left to the surrounding access
// layer.
//
// # Invocation
//
// Invoke executes the resolved binding. The foreign execution lock is
// released around the native call when configured (the default) and
// reacquired on every exit path before touching the foreign runtime
// again. A native error is unwrapped one level and raised as a foreign
// failure. Results pack by shape: no outputs yields the converted return
// value, a single output on a void method yields that value directly, and
// anything else yields a tuple of the return value followed by each
// output in declaration order.
package binder
