// Package foreign defines the collaborator seams between the dispatch core
// and the embedding foreign runtime.
//
// The dispatch core never touches the foreign object system directly. It
// sees opaque Handles and a Runtime bundle of narrow interfaces: value
// conversion, sequence access, instance resolution, error signaling and
// execution-lock scoping.
//
// # Handle ownership
//
// Handles follow borrow semantics:
//
//	borrowed - argument handles and Item results; valid for the duration
//	           of the operation, never released by the core
//	fresh    - Slice, ToForeign and NewTuple results; owned by the core
//	           and released as soon as they are consumed
//
// # Execution lock
//
// The foreign runtime's interpreter lock is held on entry to Bind and
// Invoke. The invoker may release it for the duration of the native call
// (Locker), and always reacquires it before any further foreign-runtime
// interaction, including the error path.
package foreign
