package types

import (
	"errors"
	"fmt"
	"testing"
)

func sampleRanges() []*Type {
	return []*Type{
		Byte, Short, UShort, UInt, Minus1, Char,
		NewRange(0, 0), NewRange(-1, -1), NewRange(-10, 5), NewRange(3, 7),
		NewRange(-2147483648, 2147483647), NewRange(100, 200),
	}
}

func TestUnionWithSelf(t *testing.T) {
	for _, r := range sampleRanges() {
		if got := Union(r, r); !got.EqualsType(r) {
			t.Fatalf("Union(%s, %s) = %s", r, r, got)
		}
	}
}

func TestUnionIsTightest(t *testing.T) {
	ranges := sampleRanges()
	for _, a := range ranges {
		for _, b := range ranges {
			u := Union(a, b)
			if u.Min() != min(a.Min(), b.Min()) || u.Max() != max(a.Max(), b.Max()) {
				t.Fatalf("Union(%s, %s) = %s", a, b, u)
			}
		}
	}
}

func TestUnionNilOperand(t *testing.T) {
	if Union(Byte, nil) != Byte {
		t.Fatalf("union with nil must return the left operand")
	}
	if Union(nil, Byte) != Byte {
		t.Fatalf("union with nil must return the right operand")
	}
}

func TestUnionByteWithNegativeRange(t *testing.T) {
	got := Union(Byte, NewRange(-10, 5))
	if got.String() != "(-10 .. 255)" {
		t.Fatalf("expected (-10 .. 255), got %s", got)
	}
}

func TestUnionReturnsCoveringOperand(t *testing.T) {
	inner := NewRange(3, 7)
	if Union(Byte, inner) != Byte {
		t.Fatalf("byte already covers %s", inner)
	}
	if Union(inner, Byte) != Byte {
		t.Fatalf("byte covers %s, expected it back", inner)
	}
}

func TestNewRangeMalformed(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrMalformedRange) {
			t.Fatalf("expected ErrMalformedRange panic, got %v", r)
		}
	}()
	NewRange(5, 4)
}

func TestVariableBits(t *testing.T) {
	tests := []struct {
		r    *Type
		want int32
	}{
		{NewRange(7, 7), 0},
		{Byte, 0xff},
		{NewRange(0, 1), 1},
		{NewRange(4, 5), 1},
		{NewRange(0, 256), 0x1ff},
		{UShort, 0xffff},
		{NewRange(-1, 0), -1},
	}
	for _, tt := range tests {
		t.Run(tt.r.String(), func(t *testing.T) {
			if got := tt.r.VariableBits(); got != tt.want {
				t.Fatalf("VariableBits(%s) = %#x, want %#x", tt.r, got, tt.want)
			}
		})
	}
}

func TestVariableBitsProperties(t *testing.T) {
	for _, r := range sampleRanges() {
		bits := r.VariableBits()
		if Mask(bits) != bits {
			t.Fatalf("mask of %s is not idempotent: %#x", r, bits)
		}
		if (bits == 0) != (r.Min() == r.Max()) {
			t.Fatalf("%s: bits %#x", r, bits)
		}
	}
}

func TestRangeString(t *testing.T) {
	tests := map[*Type]string{
		Byte:            "(0 .. 255)",
		NewRange(5, 5):  "5",
		NewRange(-3, 3): "(-3 .. 3)",
	}
	for r, want := range tests {
		if r.String() != want {
			t.Fatalf("got %q, want %q", r.String(), want)
		}
	}
}

func TestRangeForValue(t *testing.T) {
	if got := RangeForValue(42); got.String() != "42" {
		t.Fatalf("expected single-value range, got %s", got)
	}
	if got := RangeForValue(1 << 40); got != Long {
		t.Fatalf("expected long, got %s", got)
	}
}

func ExampleUnion() {
	fmt.Println(Union(Byte, NewRange(-10, 5)))
	// Output: (-10 .. 255)
}
