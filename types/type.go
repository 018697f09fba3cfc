package types

import (
	"reflect"
)

// Type is an immutable native type descriptor. The binder matches and ranks
// candidates through these tags instead of inspecting reflect.Type at call
// time; GoType is consulted only at invocation.
type Type struct {
	GoType   reflect.Type
	Elem     *Type
	Name     string
	Kind     Kind
	Nullable bool
}

// Canonical descriptors for the primitive kinds.
var (
	Void    = &Type{Kind: KindVoid, Name: "void"}
	Bool    = &Type{Kind: KindBool, Name: "bool", GoType: reflect.TypeOf(false)}
	Byte    = &Type{Kind: KindByte, Name: "byte", GoType: reflect.TypeOf(uint8(0))}
	SByte   = &Type{Kind: KindSByte, Name: "sbyte", GoType: reflect.TypeOf(int8(0))}
	Char    = &Type{Kind: KindChar, Name: "char", GoType: reflect.TypeOf(rune(0))}
	Int16   = &Type{Kind: KindInt16, Name: "int16", GoType: reflect.TypeOf(int16(0))}
	Int32   = &Type{Kind: KindInt32, Name: "int32", GoType: reflect.TypeOf(int32(0))}
	Int64   = &Type{Kind: KindInt64, Name: "int64", GoType: reflect.TypeOf(int64(0))}
	Uint16  = &Type{Kind: KindUint16, Name: "uint16", GoType: reflect.TypeOf(uint16(0))}
	Uint32  = &Type{Kind: KindUint32, Name: "uint32", GoType: reflect.TypeOf(uint32(0))}
	Uint64  = &Type{Kind: KindUint64, Name: "uint64", GoType: reflect.TypeOf(uint64(0))}
	Float32 = &Type{Kind: KindFloat32, Name: "float32", GoType: reflect.TypeOf(float32(0))}
	Float64 = &Type{Kind: KindFloat64, Name: "float64", GoType: reflect.TypeOf(float64(0))}
	String  = &Type{Kind: KindString, Name: "string", GoType: reflect.TypeOf("")}
	Object  = &Type{Kind: KindObject, Name: "object", GoType: reflect.TypeOf((*any)(nil)).Elem()}
	Handle  = &Type{Kind: KindHandle, Name: "handle"}
)

// ArrayOf returns the array type over elem.
func ArrayOf(elem *Type) *Type {
	t := &Type{Kind: KindArray, Name: elem.Name + "[]", Elem: elem}
	if elem.GoType != nil {
		t.GoType = reflect.SliceOf(elem.GoType)
	}
	return t
}

// StructOf returns a structured (non-primitive, non-catch-all) type.
func StructOf(name string, goType reflect.Type) *Type {
	return &Type{Kind: KindStruct, Name: name, GoType: goType}
}

// DecimalOf returns a decimal-like type backed by goType. Decimal formals
// accept any numeric value convertible into them.
func DecimalOf(name string, goType reflect.Type) *Type {
	return &Type{Kind: KindDecimal, Name: name, GoType: goType}
}

// NullableOf returns a copy of t carrying the nullable wrapper flag.
// Kind matching treats the wrapped and unwrapped forms as equivalent.
func NullableOf(t *Type) *Type {
	n := *t
	n.Nullable = true
	n.Name = t.Name + "?"
	return &n
}

// Precedence returns the overload-ordering score contribution of t.
// Lower scores sort earlier and are tried first: handle-compatible types
// always win, narrow primitives beat wide ones, the object catch-all
// comes last.
func (t *Type) Precedence() int {
	switch t.Kind {
	case KindObject:
		return 3000
	case KindHandle:
		return -1
	case KindArray:
		if t.Elem != nil && t.Elem.Kind == KindObject {
			return 2500
		}
		if t.Elem == nil {
			return 2500
		}
		return 100 + t.Elem.Precedence()
	case KindStruct, KindDecimal:
		return 2000
	case KindVoid:
		return 0
	default:
		if int(t.Kind) < len(kindPrecedence) {
			return kindPrecedence[t.Kind]
		}
		return 2000
	}
}

func (t *Type) String() string {
	return t.Name
}
