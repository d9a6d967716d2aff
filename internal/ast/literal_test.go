package ast

import (
	"math"
	"testing"

	"cito/internal/intrinsic"
	"cito/internal/source"
	"cito/internal/types"
)

func newTestExprs() *Exprs {
	str := types.NewClass(types.CallSealed, intrinsic.StringClass, "string", 0)
	return NewExprs(0, types.NewClassType(types.QualPointer, str))
}

func TestLiteralLongTypes(t *testing.T) {
	e := newTestExprs()
	pos := source.Pos{Line: 1}
	tests := []struct {
		value int64
		want  string
	}{
		{0, "0"},
		{255, "255"},
		{-10, "-10"},
		{math.MaxInt32, "2147483647"},
		{math.MaxInt32 + 1, "long"},
		{math.MinInt32 - 1, "long"},
	}
	for _, tt := range tests {
		id := e.NewLiteralLong(pos, tt.value)
		if got := e.Get(id).Type.String(); got != tt.want {
			t.Errorf("NewLiteralLong(%d) type = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestLiteralIsDefaultValue(t *testing.T) {
	e := newTestExprs()
	var pos source.Pos
	tests := []struct {
		name string
		id   ExprID
		want bool
	}{
		{"null", e.NewLiteralNull(pos), true},
		{"false", e.NewLiteralBool(pos, false), true},
		{"true", e.NewLiteralBool(pos, true), false},
		{"zero", e.NewLiteralLong(pos, 0), true},
		{"one", e.NewLiteralLong(pos, 1), false},
		{"nul char", e.NewLiteralChar(pos, 0), true},
		{"zero double", e.NewLiteralDouble(pos, 0), true},
		{"negative zero", e.NewLiteralDouble(pos, math.Copysign(0, -1)), false},
		{"empty string", e.NewLiteralString(pos, ""), false},
	}
	for _, tt := range tests {
		if got := e.Literal(tt.id).IsDefaultValue(); got != tt.want {
			t.Errorf("%s: IsDefaultValue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLiteralCharRendering(t *testing.T) {
	e := newTestExprs()
	tests := []struct {
		value rune
		want  string
	}{
		{'\n', `'\n'`},
		{'\r', `'\r'`},
		{'\t', `'\t'`},
		{'\\', `'\\'`},
		{'\'', `'\''`},
		{'a', `'a'`},
		{'ż', `'ż'`},
	}
	for _, tt := range tests {
		id := e.NewLiteralChar(source.NoPos, tt.value)
		if got := e.Literal(id).String(); got != tt.want {
			t.Errorf("char %d renders %s, want %s", tt.value, got, tt.want)
		}
		if ty := e.Get(id).Type; ty.Min() != tt.value || ty.Max() != tt.value {
			t.Errorf("char %d has type %s", tt.value, ty)
		}
	}
}

func TestLiteralStringType(t *testing.T) {
	e := newTestExprs()
	id := e.NewLiteralString(source.NoPos, "a\"b\n")
	if !e.Get(id).Type.IsString() {
		t.Fatalf("string literal has type %s", e.Get(id).Type)
	}
	if got := e.Literal(id).String(); got != `"a\"b\n"` {
		t.Fatalf("rendered %s", got)
	}
	if got := EscapeInterpolated("{x}"); got != "{{x}}" {
		t.Fatalf("EscapeInterpolated = %s", got)
	}
}

func TestLiteralDoubleString(t *testing.T) {
	e := newTestExprs()
	tests := []struct {
		value float64
		want  string
	}{
		{1.5, "1.5"},
		{3, "3"},
		{1e20, "1e+20"},
	}
	for _, tt := range tests {
		if got := e.Literal(e.NewLiteralDouble(source.NoPos, tt.value)).LiteralString(); got != tt.want {
			t.Errorf("LiteralString(%v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}
