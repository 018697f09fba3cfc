// Package errors provides structured error types for the dispatch library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the attempted call target,
// native/foreign type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindConversionFailure).
//		Method("Append").
//		NativeType("int32").
//		ForeignType("str").
//		Detail("argument 1").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoMatch("Append", 3)
//	err := errors.InvalidTarget("Append")
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind, so callers can distinguish a total bind
// failure (no_match) from caller misuse (invalid_target) without string
// inspection.
package errors
