package types

import "math"

// NewRange describes the closed integer interval [min, max].
func NewRange(min, max int32) *Type {
	return newNamedRange("", min, max)
}

func newNamedRange(name string, min, max int32) *Type {
	if min > max {
		fault(ErrMalformedRange, "(%d .. %d)", min, max)
	}
	return &Type{kind: KindRange, name: name, min: min, max: max}
}

// RangeForValue is the single-value range a literal gets, or Long when the
// value does not fit an int.
func RangeForValue(v int64) *Type {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return NewRange(int32(v), int32(v))
	}
	return Long
}

// Union returns the smallest range covering a and b. Either operand may be
// nil, in which case the other is returned unchanged. An operand that
// already covers the other is returned as is.
func Union(a, b *Type) *Type {
	if b == nil {
		return a
	}
	if a == nil {
		return b
	}
	a.mustRange()
	b.mustRange()
	if b.min < a.min {
		if b.max >= a.max {
			return b
		}
		return NewRange(b.min, a.max)
	}
	if b.max > a.max {
		return NewRange(a.min, b.max)
	}
	return a
}

// Contains reports whether v lies in the range.
func (t *Type) Contains(v int64) bool {
	t.mustRange()
	return v >= int64(t.min) && v <= int64(t.max)
}

// VariableBits is the mask of bit positions that may differ between any two
// values of the range. Zero only for single-value ranges.
func (t *Type) VariableBits() int32 {
	t.mustRange()
	return Mask(t.min ^ t.max)
}

// Mask sets every bit at or below the highest set bit of v.
func Mask(v int32) int32 {
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return v
}

func (t *Type) mustRange() {
	if t.kind != KindRange {
		panic("types: " + t.String() + " is not a range")
	}
}
