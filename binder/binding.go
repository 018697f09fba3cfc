package binder

import (
	"github.com/hostlink/dispatch/overload"
)

// Binding is a resolved match: the selected candidate, the converted native
// argument array, the resolved target instance (nil for static calls) and
// the count of output/by-reference parameters. Created once per successful
// Bind and consumed immediately by the invoker; never retained.
type Binding struct {
	candidate *overload.Candidate
	instance  any
	args      []any
	outs      int
}

// Candidate returns the selected signature.
func (b *Binding) Candidate() *overload.Candidate {
	return b.candidate
}

// Args returns the converted native argument array. Its length always
// equals the candidate's parameter count; entries beyond the call-site
// arity hold declared defaults, and a variadic tail occupies one slot as
// a packed slice.
func (b *Binding) Args() []any {
	return b.args
}

// Instance returns the resolved native target, nil for static calls.
func (b *Binding) Instance() any {
	return b.instance
}

// Outs returns the number of output/by-reference parameters.
func (b *Binding) Outs() int {
	return b.outs
}
