// Package overload maintains candidate signatures for one foreign-exposed
// call name and orders them for resolution.
//
// A Set accumulates Candidates as they are registered and sorts them
// lazily by precedence score the first time ResolvedOrder is called after
// a mutation. The score prefers specifically typed candidates over the
// object catch-all, foreign-handle-aware parameters over everything else,
// instance members over static ones, and members declared on the lookup
// scope over inherited ones. The binder walks this order and stops at the
// first exact match, giving deterministic precedence among ambiguous
// overloads.
package overload
