package dispatch

import (
	"github.com/hostlink/dispatch/binder"
	"github.com/hostlink/dispatch/config"
	"github.com/hostlink/dispatch/foreign"
	"github.com/hostlink/dispatch/overload"
	"github.com/hostlink/dispatch/types"
)

// Method bundles one exposed call name with its overload set, binder and
// invoker. It is the surface the embedding access layer talks to.
type Method struct {
	set     *overload.Set
	binder  *binder.Binder
	invoker *binder.Invoker
}

// NewMethod creates the dispatch surface for one foreign-exposed name.
// lookupScope identifies the scope the name was looked up on, used to
// rank inherited candidates behind declared-here ones.
func NewMethod(name, lookupScope string, reg *types.Registry, rt foreign.Runtime, opts config.Options) *Method {
	set := overload.NewSet(name, lookupScope)
	b := binder.New(set, reg, rt, opts)
	return &Method{
		set:     set,
		binder:  b,
		invoker: binder.NewInvoker(b),
	}
}

// Name returns the exposed call name.
func (m *Method) Name() string {
	return m.set.Name()
}

// Register adds an overload candidate.
func (m *Method) Register(c *overload.Candidate) {
	m.set.Add(c)
}

// Set exposes the underlying overload set.
func (m *Method) Set() *overload.Set {
	return m.set
}

// Bind resolves the call site without invoking it.
func (m *Method) Bind(instance, args, kw foreign.Handle) (*binder.Binding, error) {
	return m.binder.Bind(instance, args, kw, nil, nil)
}

// Invoke resolves and executes the call site, returning the packaged
// foreign result.
func (m *Method) Invoke(instance, args, kw foreign.Handle) (foreign.Handle, error) {
	return m.invoker.Invoke(instance, args, kw, nil, nil)
}

// InvokeSignature executes against one explicit candidate, bypassing
// precedence order.
func (m *Method) InvokeSignature(instance, args, kw foreign.Handle, explicit *overload.Candidate) (foreign.Handle, error) {
	return m.invoker.Invoke(instance, args, kw, explicit, nil)
}

// InvokeGeneric executes with a pool of closed generic instantiations
// available for the inference fallback.
func (m *Method) InvokeGeneric(instance, args, kw foreign.Handle, pool []*overload.Candidate) (foreign.Handle, error) {
	return m.invoker.Invoke(instance, args, kw, nil, pool)
}
