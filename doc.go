// Package dispatch provides overload resolution and argument marshaling
// for dynamically typed foreign call sites targeting native Go methods.
//
// Given a method group (possibly overloaded), a call-site argument tuple
// from a foreign runtime and that runtime's collaborator interfaces, the
// library selects exactly one best-matching signature, converts each
// foreign argument into native form, invokes the method, and converts
// results and output parameters back into foreign representation.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	dispatch/        Root package with the Method facade
//	├── overload/    Candidate signatures and precedence ordering
//	├── binder/      Call-site binding and native invocation
//	├── types/       Tagged native type identity and conversion registry
//	├── foreign/     Collaborator interfaces to the embedding runtime
//	├── config/      Binder options and their YAML form
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Register overloads and invoke a call site:
//
//	reg := types.NewRegistry()
//	m := dispatch.NewMethod("Add", "Calculator", reg, rt, config.Default())
//	m.Register(&overload.Candidate{
//	    IsStatic: true,
//	    Fn:       reflect.ValueOf(func(a, b int64) int64 { return a + b }),
//	    Return:   types.Int64,
//	    Params: []overload.Param{
//	        {Type: types.Int64},
//	        {Type: types.Int64},
//	    },
//	})
//
//	result, err := m.Invoke(nil, argsHandle, nil)
//
// rt implements foreign.Runtime over the embedding interpreter: value
// conversion, sequence access, instance resolution, error signaling and
// execution-lock scoping.
//
// # Resolution Order
//
// Candidates are tried in ascending precedence score: handle-aware
// parameters first, then narrow primitives, strings, booleans, arrays,
// structured types, and the object catch-all last. Instance members come
// before static ones and declared-here members before inherited ones.
// The first exact match wins; a match that needs a registered implicit
// conversion is held back and used only if nothing exact turns up.
package dispatch
