package binder

import (
	"github.com/hostlink/dispatch/overload"
)

// noTail marks an arity match without variadic packing.
const noTail = -1

// checkArity reconciles the call-site argument count against a candidate's
// formal parameters.
//
//	equal counts        -> match, no tail, no defaults
//	fewer args          -> match only if every missing trailing parameter
//	                       declares a default; defaults collected in order
//	more args + tail    -> match; surplus arguments pack into the tail
//	anything else       -> no match
func checkArity(params []overload.Param, argCount int) (ok bool, tailStart int, defaults []any) {
	paramCount := len(params)

	switch {
	case argCount == paramCount:
		return true, noTail, nil

	case argCount < paramCount:
		defaults = make([]any, 0, paramCount-argCount)
		for n := argCount; n < paramCount; n++ {
			if !params[n].HasDefault {
				return false, noTail, nil
			}
			defaults = append(defaults, params[n].Default)
		}
		return true, noTail, defaults

	default: // argCount > paramCount
		if paramCount > 0 && params[paramCount-1].IsVariadic {
			return true, paramCount - 1, nil
		}
		return false, noTail, nil
	}
}
