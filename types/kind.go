package types

type Kind uint8

const (
	KindVoid Kind = iota
	KindBool
	KindByte
	KindSByte
	KindChar
	KindInt16
	KindInt32
	KindInt64
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindDecimal
	KindString
	KindObject
	KindHandle
	KindArray
	KindStruct
)

var kindNames = [...]string{
	KindVoid:    "void",
	KindBool:    "bool",
	KindByte:    "byte",
	KindSByte:   "sbyte",
	KindChar:    "char",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindDecimal: "decimal",
	KindString:  "string",
	KindObject:  "object",
	KindHandle:  "handle",
	KindArray:   "array",
	KindStruct:  "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsPrimitive() bool {
	return k >= KindBool && k <= KindString
}

func (k Kind) IsNumeric() bool {
	switch k {
	case KindByte, KindSByte, KindChar,
		KindInt16, KindInt32, KindInt64,
		KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64, KindDecimal:
		return true
	default:
		return false
	}
}

// kindPrecedence ranks primitive kinds by looseness for overload ordering.
// Narrower and unsigned kinds rank lower and are tried first.
var kindPrecedence = [...]int{
	KindUint64:  10,
	KindUint32:  11,
	KindUint16:  12,
	KindInt64:   13,
	KindInt32:   14,
	KindInt16:   15,
	KindChar:    16,
	KindSByte:   17,
	KindByte:    18,
	KindFloat32: 20,
	KindFloat64: 21,
	KindString:  30,
	KindBool:    40,
}
