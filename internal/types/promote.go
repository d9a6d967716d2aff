package types

// PromoteIntegerTypes is the result type of an integer operation.
func PromoteIntegerTypes(left, right *Type) *Type {
	if left == Long || right == Long {
		return Long
	}
	return Int
}

// PromoteFloatingTypes is the result type of a floating-point operation, or
// nil when neither operand is floating.
func PromoteFloatingTypes(left, right *Type) *Type {
	if left == Double || right == Double {
		return Double
	}
	if left == Float || right == Float || left == FloatInt || right == FloatInt {
		return Float
	}
	return nil
}

// PromoteNumericTypes is the result type of an arithmetic operation.
func PromoteNumericTypes(left, right *Type) *Type {
	if t := PromoteFloatingTypes(left, right); t != nil {
		return t
	}
	return PromoteIntegerTypes(left, right)
}
