package types

import (
	"sync"

	"github.com/hostlink/dispatch/errors"
)

// ConvertFunc applies a registered single-argument implicit conversion to a
// native value.
type ConvertFunc func(any) (any, error)

type convKey struct {
	from *Type
	to   *Type
}

// Registry holds the injective foreign-alias mapping and the implicit
// conversion table. Aliases are opaque foreign type handles; the registry
// never inspects them beyond map identity.
//
// Registration happens while overloads are being set up. Reads are safe
// concurrently once registration is done.
type Registry struct {
	byAlias  map[any]*Type
	byType   map[*Type]any
	implicit map[convKey]ConvertFunc
	mu       sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		byAlias:  make(map[any]*Type),
		byType:   make(map[*Type]any),
		implicit: make(map[convKey]ConvertFunc),
	}
}

// RegisterAlias records the foreign-type-handle <-> native-type pair.
// The mapping must stay injective in both directions.
func (r *Registry) RegisterAlias(alias any, t *Type) error {
	if alias == nil || t == nil {
		return errors.InvalidInput(errors.PhaseResolve, "alias and type must be non-nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byAlias[alias]; ok && existing != t {
		return errors.Registration(t.Name, "alias already mapped to "+existing.Name)
	}
	if existing, ok := r.byType[t]; ok && existing != alias {
		return errors.Registration(t.Name, "type already mapped to another alias")
	}

	r.byAlias[alias] = t
	r.byType[t] = alias
	return nil
}

// TypeByAlias resolves a foreign type handle to its native type.
func (r *Registry) TypeByAlias(alias any) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byAlias[alias]
	return t, ok
}

// AliasByType resolves a native type to its foreign-facing type handle.
func (r *Registry) AliasByType(t *Type) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	alias, ok := r.byType[t]
	return alias, ok
}

// RegisterImplicit records a declared single-argument implicit conversion
// from one native type to another. Built at overload-registration time so
// the binder never discovers operators per call.
func (r *Registry) RegisterImplicit(from, to *Type, fn ConvertFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.implicit[convKey{from: from, to: to}] = fn
}

// Implicit looks up a registered conversion.
func (r *Registry) Implicit(from, to *Type) (ConvertFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.implicit[convKey{from: from, to: to}]
	return fn, ok
}
