package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in call processing the error occurred
type Phase string

const (
	PhaseResolve Phase = "resolve" // overload ordering and candidate selection
	PhaseBind    Phase = "bind"    // arity and type reconciliation
	PhaseConvert Phase = "convert" // foreign to native argument conversion
	PhaseInvoke  Phase = "invoke"  // native call and output packaging
)

// Kind categorizes the error
type Kind string

const (
	KindNoMatch           Kind = "no_match"           // no candidate fits the call site
	KindConversionFailure Kind = "conversion_failure" // one argument failed for one candidate
	KindInvalidTarget     Kind = "invalid_target"     // instance handle has no native wrapper
	KindNativeFailure     Kind = "native_failure"     // the selected native call threw
	KindRegistration      Kind = "registration"       // candidate or alias registration
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the binder
type Error struct {
	Value       any
	Cause       error
	Phase       Phase
	Kind        Kind
	Method      string
	NativeType  string
	ForeignType string
	Detail      string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Method != "" {
		b.WriteString(" in ")
		b.WriteString(e.Method)
	}

	if e.NativeType != "" || e.ForeignType != "" {
		b.WriteString(": ")
		if e.NativeType != "" && e.ForeignType != "" {
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
			b.WriteString(", foreign type ")
			b.WriteString(e.ForeignType)
		} else if e.NativeType != "" {
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
		} else {
			b.WriteString("foreign type ")
			b.WriteString(e.ForeignType)
		}
	}

	if e.Detail != "" {
		if e.NativeType != "" || e.ForeignType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Method sets the name of the call target
func (b *Builder) Method(name string) *Builder {
	b.err.Method = name
	return b
}

// NativeType sets the native type name
func (b *Builder) NativeType(t string) *Builder {
	b.err.NativeType = t
	return b
}

// ForeignType sets the foreign type name
func (b *Builder) ForeignType(t string) *Builder {
	b.err.ForeignType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NoMatch creates a no-match error naming the attempted call target.
// Method may be empty when the target name is unknown.
func NoMatch(method string, argCount int) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindNoMatch,
		Method: method,
		Detail: fmt.Sprintf("no overload accepts %d argument(s)", argCount),
	}
}

// ConversionFailed creates a per-argument conversion error. These are
// recovered locally by trying the next candidate and never surface alone.
func ConversionFailed(method string, argIndex int, nativeType string, cause error) *Error {
	return &Error{
		Phase:      PhaseConvert,
		Kind:       KindConversionFailure,
		Method:     method,
		NativeType: nativeType,
		Detail:     fmt.Sprintf("argument %d", argIndex),
		Cause:      cause,
	}
}

// InvalidTarget creates an invalid-target error: the instance handle of a
// non-static call resolves to no constructed native wrapper. Fatal for the
// whole bind, not recoverable by trying other candidates.
func InvalidTarget(method string) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindInvalidTarget,
		Method: method,
		Detail: "instance handle does not resolve to a constructed native object",
	}
}

// NativeFailure wraps an error thrown by the selected native call.
func NativeFailure(method string, cause error) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindNativeFailure,
		Method: method,
		Detail: "native call failed",
		Cause:  cause,
	}
}

// Registration creates a registration error
func Registration(method, detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindRegistration,
		Method: method,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}
