package types

import "math"

// Canonical scalar types shared by every analysis. They are built once at
// package initialization and never change afterwards.
var (
	Void = &Type{kind: KindVoid, name: "void"}
	Null = &Type{kind: KindNull, name: "null"}

	// TypeParam0 stands for the first type argument of a built-in generic.
	TypeParam0 = &Type{kind: KindTypeParam, name: "T"}
	// TypeParam0NotFinal matches the first type argument only if it is not final.
	TypeParam0NotFinal = &Type{kind: KindTypeParam, name: "T"}
	// TypeParam0Predicate is a lambda taking the first type argument.
	TypeParam0Predicate = &Type{kind: KindTypeParam, name: "Predicate<T>"}

	Int    = &Type{kind: KindInteger, name: "int"}
	Long   = &Type{kind: KindInteger, name: "long"}
	UInt   = newNamedRange("uint", 0, math.MaxInt32)
	Byte   = newNamedRange("byte", 0, 0xff)
	Short  = newNamedRange("short", -0x8000, 0x7fff)
	UShort = newNamedRange("ushort", 0, 0xffff)
	// Minus1 is the result of a search: an index or -1.
	Minus1 = NewRange(-1, math.MaxInt32)
	Char   = NewRange(-0x80, 0xffff)

	Float  = &Type{kind: KindFloating, name: "float"}
	Double = &Type{kind: KindFloating, name: "double"}
	// FloatInt is a float known to hold an integral value (Math.Floor and
	// friends), so integers accept it.
	FloatInt = &Type{kind: KindFloating, name: "float"}

	Bool      = NewEnum("bool", false)
	Printable = &Type{kind: KindPrintable, name: "printable"}
)

// NewEnum declares an enumeration. Its values are symbols in the enum's scope.
func NewEnum(name string, flags bool) *Type {
	return &Type{kind: KindEnum, name: name, flags: flags}
}
