package foreign

import (
	"github.com/hostlink/dispatch/errors"
	"github.com/hostlink/dispatch/types"
)

// Handle is an opaque reference to a value owned by the foreign runtime.
// Handles are borrowed for the duration of an operation unless documented
// as fresh references requiring Release.
type Handle any

// UnlockToken is returned by BeginUnlocked and must be passed back to
// EndUnlocked to reacquire the foreign execution lock.
type UnlockToken any

// Converter marshals values across the foreign boundary.
type Converter interface {
	// ToNative converts a foreign value into the target native type.
	// allowImplicit permits user-defined implicit conversions.
	ToNative(h Handle, target *types.Type, allowImplicit bool) (any, error)

	// ToForeign converts a native value back into a foreign representation.
	// The returned handle is a fresh reference owned by the caller.
	ToForeign(v any, declared *types.Type) (Handle, error)

	// TypeOf returns the foreign type of a value. Borrowed.
	TypeOf(h Handle) Handle
}

// Sequences exposes positional access to a foreign argument tuple.
type Sequences interface {
	Len(seq Handle) int

	// Item returns the element at index i. Borrowed.
	Item(seq Handle, i int) Handle

	// Slice returns the elements from index i to the end as a packed
	// sequence. Fresh reference: the caller must Release it once converted.
	Slice(seq Handle, i int) Handle

	// NewTuple builds a foreign tuple from converted outputs, taking
	// ownership of the item handles. The result is a fresh reference.
	NewTuple(items ...Handle) (Handle, error)
}

// Instances resolves foreign wrapper handles to constructed native objects.
type Instances interface {
	ResolveInstance(h Handle) (any, bool)
}

// Signaler raises foreign-visible errors and clears transient error state
// left behind by failed candidate attempts.
type Signaler interface {
	Raise(kind errors.Kind, msg string)
	ClearPending()
}

// Locker scopes release of the foreign runtime's execution lock around
// native calls. The lock is held by the caller on entry to every binder
// operation; EndUnlocked must run on every exit path.
type Locker interface {
	BeginUnlocked() UnlockToken
	EndUnlocked(tok UnlockToken)
}

// Releaser drops fresh references obtained from Slice, ToForeign or
// NewTuple. Borrowed handles are never released here.
type Releaser interface {
	Release(h Handle)
}

// Runtime bundles every collaborator the binder needs from the foreign
// runtime. Implementations wrap the embedding host's interpreter.
type Runtime interface {
	Converter
	Sequences
	Instances
	Signaler
	Locker
	Releaser
}
