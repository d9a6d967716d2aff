package types

import (
	"errors"
	"testing"

	"cito/internal/intrinsic"
)

type testClasses struct {
	base, derived, other *Class
	list, dict           *Class
	str, match           *Class
	arrayPtr, arrayStore *Class
}

func newTestClasses() testClasses {
	c := testClasses{
		base:       NewClass(CallNormal, intrinsic.None, "Base", 0),
		derived:    NewClass(CallNormal, intrinsic.None, "Derived", 0),
		other:      NewClass(CallNormal, intrinsic.None, "Other", 0),
		list:       NewClass(CallNormal, intrinsic.ListClass, "List", 1),
		dict:       NewClass(CallNormal, intrinsic.DictionaryClass, "Dictionary", 2),
		str:        NewClass(CallNormal, intrinsic.StringClass, "string", 0),
		match:      NewClass(CallSealed, intrinsic.MatchClass, "Match", 0),
		arrayPtr:   NewClass(CallNormal, intrinsic.ArrayPtrClass, "ArrayPtr", 1),
		arrayStore: NewClass(CallNormal, intrinsic.ArrayStorageClass, "ArrayStorage", 1),
	}
	c.derived.SetBase(c.base)
	c.arrayStore.SetBase(c.arrayPtr)
	return c
}

func TestNumericAssignability(t *testing.T) {
	tests := []struct {
		name   string
		target *Type
		src    *Type
		want   bool
	}{
		{"range overlap", Byte, NewRange(-10, 5), true},
		{"range disjoint", Byte, NewRange(256, 300), false},
		{"range touching", Byte, NewRange(255, 1000), true},
		{"range from int", Byte, Int, true},
		{"range from long", Byte, Long, true},
		{"range from float-int", UInt, FloatInt, true},
		{"range from float", Byte, Float, false},
		{"int from range", Int, Short, true},
		{"int from long", Int, Long, true},
		{"int from float-int", Int, FloatInt, true},
		{"int from double", Int, Double, false},
		{"double from int", Double, Int, true},
		{"float from byte", Float, Byte, true},
		{"bool from int", Bool, Int, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.IsAssignableFrom(tt.src); got != tt.want {
				t.Fatalf("%s.IsAssignableFrom(%s) = %v, want %v", tt.target, tt.src, got, tt.want)
			}
		})
	}
}

func TestPrintableAcceptsStringsAndNumbers(t *testing.T) {
	c := newTestClasses()
	for _, src := range []*Type{NewClassType(QualPointer, c.str), NewClassType(QualStorage, c.str), Int, Byte, Double} {
		if !Printable.IsAssignableFrom(src) {
			t.Fatalf("printable should accept %s", src)
		}
	}
	for _, src := range []*Type{Bool, NewClassType(QualPointer, c.base), Null} {
		if Printable.IsAssignableFrom(src) {
			t.Fatalf("printable should reject %s", src)
		}
	}
}

func TestStorageIsExactClass(t *testing.T) {
	c := newTestClasses()
	baseStorage := NewClassType(QualStorage, c.base)
	derivedStorage := NewClassType(QualStorage, c.derived)
	if baseStorage.IsAssignableFrom(derivedStorage) {
		t.Fatalf("Base() must reject Derived()")
	}
	if !baseStorage.IsAssignableFrom(NewClassType(QualStorage, c.base)) {
		t.Fatalf("Base() must accept another Base()")
	}
	if baseStorage.IsAssignableFrom(NewClassType(QualReadWrite, c.base)) {
		t.Fatalf("Base() must reject Base!")
	}
	ptr := NewClassType(QualPointer, c.base)
	if !ptr.IsAssignableFrom(NewClassType(QualPointer, c.derived)) {
		t.Fatalf("Base must accept Derived")
	}
	if !ptr.IsAssignableFrom(derivedStorage) {
		t.Fatalf("Base must accept Derived()")
	}
	if ptr.IsAssignableFrom(NewClassType(QualPointer, c.other)) {
		t.Fatalf("Base must reject Other")
	}
	if NewClassType(QualPointer, c.derived).IsAssignableFrom(NewClassType(QualPointer, c.base)) {
		t.Fatalf("Derived must reject Base")
	}
}

func TestReadWriteRejectsReadOnly(t *testing.T) {
	c := newTestClasses()
	rw := NewClassType(QualReadWrite, c.base)
	accepts := []*Type{
		NewClassType(QualReadWrite, c.derived),
		NewClassType(QualStorage, c.base),
		NewClassType(QualDynamic, c.derived),
		Null,
	}
	for _, src := range accepts {
		if !rw.IsAssignableFrom(src) {
			t.Fatalf("%s should accept %s", rw, src)
		}
	}
	if rw.IsAssignableFrom(NewClassType(QualPointer, c.base)) {
		t.Fatalf("%s must not accept a read-only pointer", rw)
	}
}

func TestDynamicAcceptsOnlyDynamic(t *testing.T) {
	c := newTestClasses()
	dyn := NewClassType(QualDynamic, c.base)
	if !dyn.IsAssignableFrom(NewClassType(QualDynamic, c.derived)) {
		t.Fatalf("Base# should accept Derived#")
	}
	if !dyn.IsAssignableFrom(Null) {
		t.Fatalf("Base# should accept null")
	}
	for _, q := range []Qualifier{QualPointer, QualReadWrite, QualStorage} {
		if src := NewClassType(q, c.base); dyn.IsAssignableFrom(src) {
			t.Fatalf("Base# must reject %s", src)
		}
	}
}

func TestNullAssignability(t *testing.T) {
	c := newTestClasses()
	nullable := []*Type{
		NewClassType(QualPointer, c.base),
		NewClassType(QualReadWrite, c.base),
		NewClassType(QualDynamic, c.base),
		NewClassType(QualPointer, c.str),
		NewClassType(QualReadWrite, c.arrayPtr, Int),
	}
	for _, target := range nullable {
		if !target.IsNullable() || !target.IsAssignableFrom(Null) {
			t.Fatalf("%s should accept null", target)
		}
	}
	nonNullable := []*Type{
		Int, Long, Byte, Double, Bool,
		NewClassType(QualStorage, c.base),
		NewClassType(QualStorage, c.str),
		NewArrayStorage(c.arrayStore, Byte, 10),
	}
	for _, target := range nonNullable {
		if target.IsNullable() || target.IsAssignableFrom(Null) {
			t.Fatalf("%s must reject null", target)
		}
	}
}

func TestStringStorageAcceptsAnyString(t *testing.T) {
	c := newTestClasses()
	storage := NewClassType(QualStorage, c.str)
	ptr := NewClassType(QualPointer, c.str)
	if !storage.IsAssignableFrom(ptr) {
		t.Fatalf("string() should accept string")
	}
	if !ptr.IsAssignableFrom(storage) {
		t.Fatalf("string should accept string()")
	}
	if storage.IsFinal() {
		t.Fatalf("string() is not final")
	}
	if got := storage.PtrOrSelf(); got.Qualifier() != QualPointer || !got.IsString() {
		t.Fatalf("string() should decay to string, got %s", got)
	}
}

func TestTypeArgumentsCompareQualifiers(t *testing.T) {
	c := newTestClasses()
	matchDyn := NewClassType(QualDynamic, c.match)
	matchPtr := NewClassType(QualPointer, c.match)
	target := NewClassType(QualPointer, c.list, matchDyn)
	src := NewClassType(QualReadWrite, c.list, matchPtr)
	if target.IsAssignableFrom(src) {
		t.Fatalf("%s must reject %s", target, src)
	}
	if !target.IsAssignableFrom(NewClassType(QualReadWrite, c.list, NewClassType(QualDynamic, c.match))) {
		t.Fatalf("%s should accept a list with the same element type", target)
	}
}

func TestDictionaryTypeArguments(t *testing.T) {
	c := newTestClasses()
	str := NewClassType(QualPointer, c.str)
	a := NewClassType(QualPointer, c.dict, str, Int)
	if !a.IsAssignableFrom(NewClassType(QualStorage, c.dict, str, Int)) {
		t.Fatalf("%s should accept matching storage", a)
	}
	if a.IsAssignableFrom(NewClassType(QualStorage, c.dict, str, Long)) {
		t.Fatalf("%s must reject a different value type", a)
	}
}

func TestReflexivity(t *testing.T) {
	c := newTestClasses()
	all := []*Type{
		Void, Null, Int, Long, Byte, Short, UShort, UInt, Minus1, Char, Float, Double, FloatInt, Bool, Printable,
		NewClassType(QualPointer, c.base),
		NewClassType(QualReadWrite, c.derived),
		NewClassType(QualStorage, c.base),
		NewClassType(QualDynamic, c.other),
		NewClassType(QualStorage, c.str),
		NewClassType(QualPointer, c.list, Int),
		NewClassType(QualStorage, c.dict, Int, Byte),
		NewArrayStorage(c.arrayStore, Byte, 10),
		NewClassType(QualReadWrite, c.arrayPtr, NewClassType(QualPointer, c.str)),
	}
	for _, ty := range all {
		if !ty.EqualsType(ty) {
			t.Fatalf("%s must equal itself", ty)
		}
		if !ty.IsAssignableFrom(ty) {
			t.Fatalf("%s must accept itself", ty)
		}
	}
	for _, a := range all {
		for _, b := range all {
			if a.EqualsType(b) != b.EqualsType(a) {
				t.Fatalf("EqualsType not symmetric for %s and %s", a, b)
			}
		}
	}
}

func TestRangeEqualityIsStructural(t *testing.T) {
	if !NewRange(0, 255).EqualsType(Byte) {
		t.Fatalf("(0 .. 255) should equal byte")
	}
	if Byte.EqualsType(Int) {
		t.Fatalf("byte must not equal int")
	}
}

func TestArrayStorage(t *testing.T) {
	c := newTestClasses()
	arr := NewArrayStorage(c.arrayStore, Byte, 10)
	if !arr.IsArray() || !arr.IsFinal() {
		t.Fatalf("%s should be a final array", arr)
	}
	if arr.String() != "(0 .. 255)[10]" {
		t.Fatalf("unexpected rendering %q", arr.String())
	}
	ptr := arr.PtrOrSelf()
	if ptr.Class() != c.arrayPtr || ptr.Qualifier() != QualReadWrite || !ptr.ElementType().EqualsType(Byte) {
		t.Fatalf("%s should decay to ArrayPtr<byte>!, got %s", arr, ptr)
	}
	if ptr.Length() != 0 {
		t.Fatalf("decayed pointer must drop the length")
	}
	if arr.EqualsType(NewArrayStorage(c.arrayStore, Byte, 11)) {
		t.Fatalf("arrays of different length must differ")
	}
	if !ptr.IsAssignableFrom(arr) {
		t.Fatalf("%s should accept %s", ptr, arr)
	}
	if arr.PtrTaken() {
		t.Fatalf("fresh array storage must not be marked")
	}
	arr.MarkPtrTaken()
	if !arr.PtrTaken() {
		t.Fatalf("MarkPtrTaken had no effect")
	}
}

func TestIsFinalMatchException(t *testing.T) {
	c := newTestClasses()
	if NewClassType(QualStorage, c.match).IsFinal() {
		t.Fatalf("Match() stays mutable in place")
	}
	if !NewClassType(QualStorage, c.base).IsFinal() {
		t.Fatalf("Base() should be final")
	}
	if NewClassType(QualPointer, c.base).IsFinal() {
		t.Fatalf("pointers are never final")
	}
}

func TestUnresolvedPlaceholderFaults(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrUnresolvedTypeParam) {
			t.Fatalf("expected ErrUnresolvedTypeParam, got %v", err)
		}
	}()
	Int.IsAssignableFrom(TypeParam0)
}

func TestTooManyTypeParams(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrTooManyTypeParams) {
			t.Fatalf("expected ErrTooManyTypeParams, got %v", err)
		}
	}()
	NewClass(CallNormal, intrinsic.None, "Tuple", 3)
}
