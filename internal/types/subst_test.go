package types

import "testing"

func TestEvalTypeSubstitutesPlaceholder(t *testing.T) {
	c := newTestClasses()
	str := NewClassType(QualPointer, c.str)
	list := NewClassType(QualReadWrite, c.list, str)
	if got := list.EvalType(TypeParam0); got != str {
		t.Fatalf("T should resolve to %s, got %s", str, got)
	}
	if got := list.EvalType(TypeParam0NotFinal); got != str {
		t.Fatalf("non-final T should resolve to %s, got %s", str, got)
	}
	if got := list.EvalType(Int); got != Int {
		t.Fatalf("concrete types pass through, got %s", got)
	}
}

func TestEvalTypeRejectsFinalArgument(t *testing.T) {
	c := newTestClasses()
	list := NewClassType(QualStorage, c.list, NewClassType(QualStorage, c.base))
	if got := list.EvalType(TypeParam0NotFinal); got != nil {
		t.Fatalf("a final element must not match the non-final placeholder, got %s", got)
	}
	matches := NewClassType(QualStorage, c.list, NewClassType(QualStorage, c.match))
	if got := matches.EvalType(TypeParam0NotFinal); got == nil {
		t.Fatalf("Match() is not final and should match")
	}
}

func TestEvalTypeSpecializesArray(t *testing.T) {
	c := newTestClasses()
	list := NewClassType(QualPointer, c.list, Byte)
	generic := NewClassType(QualReadWrite, c.arrayPtr, TypeParam0)
	got := list.EvalType(generic)
	if got.HasTypeParam() {
		t.Fatalf("placeholder survived substitution: %s", got)
	}
	if got.Class() != c.arrayPtr || got.Qualifier() != QualReadWrite || !got.ElementType().EqualsType(Byte) {
		t.Fatalf("expected ArrayPtr<byte>!, got %s", got)
	}
	if got.String() != "(0 .. 255)[]!" {
		t.Fatalf("unexpected rendering %q", got.String())
	}
}

func TestEvalTypeSpecializesEveryWritableArray(t *testing.T) {
	c := newTestClasses()
	list := NewClassType(QualReadWrite, c.list, Int)
	generics := []*Type{
		NewClassType(QualReadWrite, c.arrayPtr, TypeParam0),
		NewClassType(QualStorage, c.arrayPtr, TypeParam0),
		NewClassType(QualDynamic, c.arrayPtr, TypeParam0),
		NewArrayStorage(c.arrayStore, TypeParam0, 4),
	}
	for _, generic := range generics {
		got := list.EvalType(generic)
		if got.HasTypeParam() {
			t.Fatalf("placeholder survived substitution of %s: %s", generic.Qualifier(), got)
		}
		if got.Qualifier() != QualReadWrite || got.Class() != c.arrayPtr || got.ElementType() != Int {
			t.Fatalf("%s: expected int[]!, got %s", generic.Qualifier(), got)
		}
	}
	generic := NewClassType(QualPointer, c.arrayPtr, TypeParam0)
	if got := list.EvalType(generic); got != generic {
		t.Fatalf("a read-only array pointer is left as is, got %s", got)
	}
}

func TestClassTypeString(t *testing.T) {
	c := newTestClasses()
	str := NewClassType(QualPointer, c.str)
	tests := []struct {
		ty   *Type
		want string
	}{
		{NewClassType(QualReadWrite, c.list, str), "List<string>!"},
		{NewClassType(QualStorage, c.list, str), "List<string>()"},
		{NewClassType(QualDynamic, c.base), "Base#"},
		{NewClassType(QualPointer, c.dict, str, Int), "Dictionary<string, int>"},
		{NewClassType(QualPointer, c.arrayPtr, str), "string[]"},
		{NewClassType(QualDynamic, c.arrayPtr, Int), "int[]#"},
		{NewClassType(QualPointer, c.arrayPtr, NewClassType(QualReadWrite, c.arrayPtr, Int)), "int[][]!"},
		{NewArrayStorage(c.arrayStore, str, 3), "string[3]"},
		{NewClassType(QualStorage, c.str), "string()"},
	}
	for _, tt := range tests {
		if got := tt.ty.String(); got != tt.want {
			t.Fatalf("got %q, want %q", got, tt.want)
		}
	}
}

func TestPromoteNumericTypes(t *testing.T) {
	tests := []struct {
		left, right, want *Type
	}{
		{Int, Byte, Int},
		{Long, Byte, Long},
		{Int, Double, Double},
		{Float, Int, Float},
		{FloatInt, Long, Float},
		{Float, Double, Double},
	}
	for _, tt := range tests {
		if got := PromoteNumericTypes(tt.left, tt.right); got != tt.want {
			t.Fatalf("promote(%s, %s) = %s, want %s", tt.left, tt.right, got, tt.want)
		}
	}
	if PromoteFloatingTypes(Int, Long) != nil {
		t.Fatalf("integers do not promote to floating")
	}
}
