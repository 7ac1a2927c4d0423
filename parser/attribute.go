package parser

import "fmt"

// AttributeType enumerates the attribute type tags without payload, for
// type-mismatch reporting.
type AttributeType uint8

const (
	TypeBool AttributeType = iota
	TypeI16
	TypeI32
	TypeI64
	TypeF32
	TypeF64
	TypeArrBool
	TypeArrI32
	TypeArrI64
	TypeArrF32
	TypeArrF64
	TypeString
	TypeBinary
)

func (t AttributeType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeI16:
		return "I16"
	case TypeI32:
		return "I32"
	case TypeI64:
		return "I64"
	case TypeF32:
		return "F32"
	case TypeF64:
		return "F64"
	case TypeArrBool:
		return "ArrBool"
	case TypeArrI32:
		return "ArrI32"
	case TypeArrI64:
		return "ArrI64"
	case TypeArrF32:
		return "ArrF32"
	case TypeArrF64:
		return "ArrF64"
	case TypeString:
		return "String"
	case TypeBinary:
		return "Binary"
	default:
		return fmt.Sprintf("AttributeType(%d)", uint8(t))
	}
}

// typeCodeToType maps every recognized on-disk 1-byte type code to its
// AttributeType. Array families have their own lowercase codes ('b', 'i',
// 'l', 'f', 'd'), distinct from the primitive codes.
var typeCodeToType = map[byte]AttributeType{
	'C': TypeBool,
	'Y': TypeI16,
	'I': TypeI32,
	'L': TypeI64,
	'F': TypeF32,
	'D': TypeF64,
	'b': TypeArrBool,
	'i': TypeArrI32,
	'l': TypeArrI64,
	'f': TypeArrF32,
	'd': TypeArrF64,
	'S': TypeString,
	'R': TypeBinary,
}

// AttributeValue is a decoded attribute: a closed tagged variant over the
// primitive, array, string, and binary families. Exactly one of the typed
// fields is meaningful, selected by Type.
type AttributeValue struct {
	Type AttributeType

	Bool bool
	I16  int16
	I32  int32
	I64  int64
	F32  float32
	F64  float64

	ArrBool []bool
	ArrI32  []int32
	ArrI64  []int64
	ArrF32  []float32
	ArrF64  []float64

	// Str holds the decoded string for TypeString. StrValid is false when
	// the on-disk bytes were not valid UTF-8, tolerated as bytes with a
	// warning; in that case Bin holds the raw bytes instead and Str is
	// empty.
	Str      string
	StrValid bool

	Bin []byte
}

func boolAttr(v bool) AttributeValue      { return AttributeValue{Type: TypeBool, Bool: v} }
func i16Attr(v int16) AttributeValue      { return AttributeValue{Type: TypeI16, I16: v} }
func i32Attr(v int32) AttributeValue      { return AttributeValue{Type: TypeI32, I32: v} }
func i64Attr(v int64) AttributeValue      { return AttributeValue{Type: TypeI64, I64: v} }
func f32Attr(v float32) AttributeValue    { return AttributeValue{Type: TypeF32, F32: v} }
func f64Attr(v float64) AttributeValue    { return AttributeValue{Type: TypeF64, F64: v} }
func arrBoolAttr(v []bool) AttributeValue { return AttributeValue{Type: TypeArrBool, ArrBool: v} }
func arrI32Attr(v []int32) AttributeValue { return AttributeValue{Type: TypeArrI32, ArrI32: v} }
func arrI64Attr(v []int64) AttributeValue { return AttributeValue{Type: TypeArrI64, ArrI64: v} }
func arrF32Attr(v []float32) AttributeValue {
	return AttributeValue{Type: TypeArrF32, ArrF32: v}
}
func arrF64Attr(v []float64) AttributeValue {
	return AttributeValue{Type: TypeArrF64, ArrF64: v}
}
func stringAttr(s string) AttributeValue {
	return AttributeValue{Type: TypeString, Str: s, StrValid: true}
}
func invalidUtf8Attr(raw []byte) AttributeValue {
	return AttributeValue{Type: TypeString, Bin: raw}
}
func binaryAttr(b []byte) AttributeValue { return AttributeValue{Type: TypeBinary, Bin: b} }

// AsI64 widens any decoded integer attribute to int64. ok is false for a
// non-integer type; the DOM loader reports that case as an
// AttributeTypeMismatch when reading object/connection identifiers.
func (v AttributeValue) AsI64() (int64, bool) {
	switch v.Type {
	case TypeI16:
		return int64(v.I16), true
	case TypeI32:
		return int64(v.I32), true
	case TypeI64:
		return v.I64, true
	default:
		return 0, false
	}
}

// AsString returns the decoded string and whether Type is TypeString. A
// string attribute whose bytes were not valid UTF-8 decodes with ok=true but
// an empty value; use Raw to recover the bytes in that case.
func (v AttributeValue) AsString() (string, bool) {
	if v.Type != TypeString {
		return "", false
	}
	return v.Str, true
}

// Raw returns the underlying bytes of a Binary attribute, or of a String
// attribute that failed UTF-8 validation.
func (v AttributeValue) Raw() ([]byte, bool) {
	if v.Type == TypeBinary || (v.Type == TypeString && !v.StrValid) {
		return v.Bin, true
	}
	return nil, false
}
