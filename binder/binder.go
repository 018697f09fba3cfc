package binder

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/hostlink/dispatch/config"
	"github.com/hostlink/dispatch/errors"
	"github.com/hostlink/dispatch/foreign"
	"github.com/hostlink/dispatch/overload"
	"github.com/hostlink/dispatch/types"
)

// Binder resolves foreign call sites against one overload set and converts
// arguments into native form. Safe for concurrent use once the set and
// registry are fully registered.
type Binder struct {
	set  *overload.Set
	reg  *types.Registry
	rt   foreign.Runtime
	opts config.Options
}

// New creates a binder over the given overload set.
func New(set *overload.Set, reg *types.Registry, rt foreign.Runtime, opts config.Options) *Binder {
	return &Binder{set: set, reg: reg, rt: rt, opts: opts}
}

// Set returns the overload set this binder resolves against.
func (b *Binder) Set() *overload.Set {
	return b.set
}

// Registry returns the type registry alias and conversion lookups flow
// through.
func (b *Binder) Registry() *types.Registry {
	return b.reg
}

// Bind selects the single best-matching candidate for the call site and
// produces a Binding, or fails with a no-match or invalid-target error.
//
// explicit, when non-nil, restricts the scan to that one candidate.
// genericPool supplies closed instantiations for the generic-method
// fallback. kw is carried for the surrounding access layer but never
// consulted: matching is positional-only.
func (b *Binder) Bind(instance, args, kw foreign.Handle, explicit *overload.Candidate, genericPool []*overload.Candidate) (*Binding, error) {
	argCount := 0
	if args != nil {
		argCount = b.rt.Len(args)
	}

	var candidates []*overload.Candidate
	if explicit != nil {
		candidates = []*overload.Candidate{explicit}
	} else {
		candidates = b.set.ResolvedOrder()
	}
	ambiguous := len(candidates) > 1

	// An implicit-conversion binding is deferred, not returned: the scan
	// keeps looking for a candidate that needs no implicit conversion.
	var deferred *Binding

	for _, c := range candidates {
		bnd, usedImplicit, err := b.tryCandidate(c, instance, args, argCount, ambiguous)
		if err != nil {
			if stderrors.Is(err, errInvalidTarget) {
				// Caller misuse, not overload ambiguity. Fatal.
				return nil, err
			}
			// One candidate's failure must not pollute the next attempt.
			b.rt.ClearPending()
			if b.opts.TraceCalls {
				Logger().Debug("candidate rejected",
					zap.String("method", b.set.Name()),
					zap.Error(err))
			}
			continue
		}
		if usedImplicit {
			if deferred == nil {
				deferred = bnd
			}
			continue
		}
		return bnd, nil
	}

	if deferred != nil {
		return deferred, nil
	}

	if explicit == nil && len(genericPool) > 0 && hasGenericDefinition(candidates) {
		if closed := b.inferClosed(genericPool, args, argCount); closed != nil {
			return b.Bind(instance, args, kw, closed, nil)
		}
	}

	return nil, errors.NoMatch(b.set.Name(), argCount)
}

var errInvalidTarget = &errors.Error{Phase: errors.PhaseBind, Kind: errors.KindInvalidTarget}

// tryCandidate attempts to build a Binding against one candidate. A nil
// error with usedImplicit set means the match relied on a registered
// implicit conversion and should be deferred.
func (b *Binder) tryCandidate(c *overload.Candidate, instance, args foreign.Handle, argCount int, ambiguous bool) (bnd *Binding, usedImplicit bool, err error) {
	ok, tailStart, defaults := checkArity(c.Params, argCount)
	if !ok {
		return nil, false, errors.NoMatch(b.set.Name(), argCount)
	}

	nargs := make([]any, len(c.Params))
	outs := 0

	for n := range c.Params {
		p := &c.Params[n]

		if n >= argCount && n != tailStart {
			nargs[n] = defaults[n-argCount]
			continue
		}

		var src foreign.Handle
		fresh := false
		if n == tailStart {
			// Fresh reference; released as soon as it is converted.
			src = b.rt.Slice(args, tailStart)
			fresh = true
		} else {
			src = b.rt.Item(args, n)
		}

		v, implicit, convErr := b.convertArg(src, p.Type, n, ambiguous)
		if fresh {
			b.rt.Release(src)
		}
		if convErr != nil {
			return nil, false, convErr
		}
		if implicit {
			usedImplicit = true
		}

		nargs[n] = v
		if p.IsOut || p.IsByRef {
			outs++
		}
	}

	var target any
	if !c.IsStatic {
		inst, found := b.rt.ResolveInstance(instance)
		if !found {
			return nil, false, errors.InvalidTarget(b.set.Name())
		}
		target = inst
	}

	return &Binding{candidate: c, instance: target, args: nargs, outs: outs}, usedImplicit, nil
}

// convertArg converts one foreign value into the formal parameter type,
// running the ambiguity-disambiguation step when more than one candidate
// is in play.
func (b *Binder) convertArg(src foreign.Handle, formal *types.Type, index int, ambiguous bool) (v any, usedImplicit bool, err error) {
	if ambiguous {
		if conv, decided := b.disambiguate(src, formal, index); decided {
			if conv == nil {
				return nil, false, errors.ConversionFailed(b.set.Name(), index, formal.Name, nil)
			}
			return conv()
		}
	}

	v, err = b.rt.ToNative(src, formal, b.opts.AllowImplicitEnabled())
	if err != nil {
		return nil, false, errors.ConversionFailed(b.set.Name(), index, formal.Name, err)
	}
	return v, false, nil
}

// disambiguate inspects the value's dynamic foreign type and decides how a
// formal of a different native type can still accept it. The returned
// closure performs the decided conversion; a nil closure with decided set
// rejects the candidate. decided is false when no special handling applies
// and the plain conversion path should run.
func (b *Binder) disambiguate(src foreign.Handle, formal *types.Type, index int) (conv func() (any, bool, error), decided bool) {
	// Catch-all and handle-compatible formals accept every dynamic type;
	// they are ranked last and first respectively by the precedence sort
	// and never need disambiguation.
	if formal.Kind == types.KindObject || formal.Kind == types.KindHandle {
		return nil, false
	}

	dynType := b.rt.TypeOf(src)
	if dynType == nil {
		return nil, false
	}

	valueType, known := b.reg.TypeByAlias(dynType)
	if !known || valueType == formal {
		return nil, false
	}

	// The formal's foreign-facing alias matches the value's dynamic type
	// exactly: adopt the formal type.
	if alias, ok := b.reg.AliasByType(formal); ok && alias == dynType {
		return nil, false
	}

	// Same primitive kind behind nullable wrapping: exact.
	if valueType.Kind == formal.Kind {
		return nil, false
	}

	// Decimal-like formals accept any numeric value convertible into them.
	if formal.Kind == types.KindDecimal && valueType.Kind.IsNumeric() {
		return nil, false
	}

	// A registered implicit conversion from the value's native type marks
	// this candidate's match as implicit-conversion-based.
	if fn, ok := b.reg.Implicit(valueType, formal); ok {
		return func() (any, bool, error) {
			raw, err := b.rt.ToNative(src, valueType, false)
			if err != nil {
				return nil, false, errors.ConversionFailed(b.set.Name(), index, valueType.Name, err)
			}
			out, err := fn(raw)
			if err != nil {
				return nil, false, errors.ConversionFailed(b.set.Name(), index, formal.Name, err)
			}
			return out, true, nil
		}, true
	}

	// Known dynamic type, no route into the formal: reject the candidate.
	return nil, true
}

func hasGenericDefinition(candidates []*overload.Candidate) bool {
	for _, c := range candidates {
		if c.IsGeneric {
			return true
		}
	}
	return false
}

// inferClosed maps each call-site argument's foreign type through the alias
// registry and selects the first pool candidate whose parameters match
// positionally. Raw generic definitions in the pool are skipped; only
// closed instantiations are invocable.
func (b *Binder) inferClosed(pool []*overload.Candidate, args foreign.Handle, argCount int) *overload.Candidate {
	argTypes := make([]*types.Type, argCount)
	for i := 0; i < argCount; i++ {
		dynType := b.rt.TypeOf(b.rt.Item(args, i))
		t, ok := b.reg.TypeByAlias(dynType)
		if !ok {
			return nil
		}
		argTypes[i] = t
	}

	for _, c := range pool {
		if c.IsGeneric || c.Arity() != argCount {
			continue
		}
		matched := true
		for i, p := range c.Params {
			if p.Type != argTypes[i] && p.Type.Kind != argTypes[i].Kind {
				matched = false
				break
			}
		}
		if matched {
			return c
		}
	}
	return nil
}
