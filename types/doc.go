// Package types models native type identity for overload resolution.
//
// The binder never ranks candidates by runtime reflection. Each formal
// parameter and return carries a Type descriptor: a tagged Kind, an element
// type for arrays, a nullable flag, and the reflect.Type used only at
// invocation.
//
// # Precedence
//
// Type.Precedence ranks kinds by looseness. Lower totals sort earlier in an
// overload set and are tried first:
//
//	Kind            Score
//	─────────────────────
//	handle          -1      (exact dynamic match, always preferred)
//	uint64..uint16  10..12
//	int64..int16    13..15
//	char            16
//	sbyte, byte     17, 18
//	float32/64      20, 21
//	string          30
//	bool            40
//	array<T>        100 + score(T)
//	struct/decimal  2000
//	array<object>   2500
//	object          3000    (catch-all, tried last)
//
// # Registry
//
// The Registry is the injective mapping table between opaque foreign type
// handles and native types, plus the implicit-conversion table keyed by
// (source, target) pairs. Both are populated during overload registration
// and read-only during binding.
package types
