package gen

import "cito/internal/types"

// TypeCode is the storage class a statically typed target picks for a Ci
// type.
type TypeCode uint8

const (
	CodeEmpty TypeCode = iota
	CodeObject
	CodeBoolean
	CodeSByte
	CodeByte
	CodeInt16
	CodeUInt16
	CodeInt32
	CodeInt64
	CodeSingle
	CodeDouble
	CodeString
)

var typeCodeNames = [...]string{
	CodeEmpty:   "empty",
	CodeObject:  "object",
	CodeBoolean: "bool",
	CodeSByte:   "sbyte",
	CodeByte:    "byte",
	CodeInt16:   "short",
	CodeUInt16:  "ushort",
	CodeInt32:   "int",
	CodeInt64:   "long",
	CodeSingle:  "float",
	CodeDouble:  "double",
	CodeString:  "string",
}

func (c TypeCode) String() string {
	if int(c) < len(typeCodeNames) {
		return typeCodeNames[c]
	}
	return "?"
}

// IsInteger reports the integral codes.
func (c TypeCode) IsInteger() bool { return c >= CodeSByte && c <= CodeInt64 }

// CodeOf maps t to its storage class. With promote set, integers narrower
// than int are widened the way arithmetic operands are.
func CodeOf(t *types.Type, promote bool) TypeCode {
	if t == nil {
		return CodeEmpty
	}
	switch t.Kind() {
	case types.KindRange:
		code := rangeCode(t.Min(), t.Max())
		if promote && code < CodeInt32 {
			return CodeInt32
		}
		return code
	case types.KindInteger:
		if t == types.Long {
			return CodeInt64
		}
		return CodeInt32
	case types.KindFloating:
		if t == types.Double {
			return CodeDouble
		}
		return CodeSingle
	case types.KindVoid, types.KindNull:
		return CodeEmpty
	}
	switch {
	case t == types.Bool:
		return CodeBoolean
	case t.IsString():
		return CodeString
	}
	return CodeObject
}

func rangeCode(min, max int32) TypeCode {
	if min < 0 {
		switch {
		case min >= -128 && max <= 127:
			return CodeSByte
		case min >= -32768 && max <= 32767:
			return CodeInt16
		}
		return CodeInt32
	}
	switch {
	case max <= 0xff:
		return CodeByte
	case max <= 0xffff:
		return CodeUInt16
	}
	return CodeInt32
}

// IsNarrower reports whether storing a right value into a left location
// loses range, so the target needs an explicit cast.
func IsNarrower(left, right TypeCode) bool {
	switch left {
	case CodeSByte:
		return right >= CodeByte && right <= CodeInt64
	case CodeByte:
		return right == CodeSByte || (right >= CodeInt16 && right <= CodeInt64)
	case CodeInt16:
		return right >= CodeUInt16 && right <= CodeInt64
	case CodeUInt16:
		return right == CodeInt16 || right == CodeInt32 || right == CodeInt64
	case CodeInt32:
		return right == CodeInt64
	default:
		return false
	}
}
