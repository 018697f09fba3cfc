package overload

import (
	"reflect"

	"github.com/hostlink/dispatch/types"
)

// Param describes one formal parameter of a candidate.
type Param struct {
	Default    any
	Type       *types.Type
	IsOut      bool
	IsByRef    bool
	HasDefault bool
	IsVariadic bool
}

// Candidate is one overload of an exposed name: its formal parameters, the
// invocable backing it, and the structural flags the precedence sort keys
// on. Immutable once registered with a Set.
type Candidate struct {
	Fn             reflect.Value
	Return         *types.Type
	DeclaringScope string
	Params         []Param
	IsStatic       bool
	IsGeneric      bool
	IsConstructor  bool
}

// Arity returns the formal parameter count.
func (c *Candidate) Arity() int {
	return len(c.Params)
}

// HasVariadicTail reports whether the last formal parameter packs surplus
// call-site arguments.
func (c *Candidate) HasVariadicTail() bool {
	n := len(c.Params)
	return n > 0 && c.Params[n-1].IsVariadic
}

// Precedence computes the candidate's sort score relative to lookupScope.
// Lower scores sort earlier and are tried first. The score is a pure
// function of the candidate's structural shape, never of runtime argument
// values, so the Set caches the resulting order.
func (c *Candidate) Precedence(lookupScope string) int {
	score := 0
	if c.IsStatic {
		score += 3000
	}
	if c.IsGeneric {
		score++
	}
	for i := range c.Params {
		score += c.Params[i].Type.Precedence()
	}
	if !c.IsConstructor && c.Return != nil {
		score += c.Return.Precedence()
	}
	if c.DeclaringScope != "" && c.DeclaringScope != lookupScope {
		// Inherited members yield to ones declared on the lookup scope.
		score += 3000
	}
	return score
}
