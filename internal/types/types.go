package types

import (
	"fmt"

	"cito/internal/intrinsic"
)

// Kind enumerates the variants of Type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindNull
	KindTypeParam // generic placeholder, substituted at use sites
	KindInteger   // int, long
	KindRange     // integer constrained to [min, max]
	KindFloating
	KindEnum
	KindPrintable
	KindClass // class-family, see Qualifier
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindTypeParam:
		return "typeparam"
	case KindInteger:
		return "integer"
	case KindRange:
		return "range"
	case KindFloating:
		return "floating"
	case KindEnum:
		return "enum"
	case KindPrintable:
		return "printable"
	case KindClass:
		return "class"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Qualifier is the ownership flavor of a class-family type.
type Qualifier uint8

const (
	// QualPointer is a read-only, nullable reference.
	QualPointer Qualifier = iota
	// QualReadWrite is a nullable reference the callee may mutate through.
	QualReadWrite
	// QualStorage embeds the value; never null.
	QualStorage
	// QualDynamic is an exclusively owned heap allocation.
	QualDynamic
	// QualArrayStorage is a fixed-length embedded array.
	QualArrayStorage
)

func (q Qualifier) String() string {
	switch q {
	case QualPointer:
		return "pointer"
	case QualReadWrite:
		return "readwrite"
	case QualStorage:
		return "storage"
	case QualDynamic:
		return "dynamic"
	case QualArrayStorage:
		return "arraystorage"
	default:
		return fmt.Sprintf("Qualifier(%d)", q)
	}
}

// Type is a tagged union over every type variant. Scalar instances are
// canonical and never mutated after construction; the only mutable bit is
// PtrTaken on array storage, which belongs to a single declaration.
type Type struct {
	kind     Kind
	name     string
	min, max int32 // KindRange
	flags    bool  // KindEnum: values combine as bit flags

	class      *Class // KindClass
	qual       Qualifier
	arg0, arg1 *Type
	length     int // QualArrayStorage
	ptrTaken   bool
}

// Kind returns the variant tag.
func (t *Type) Kind() Kind { return t.kind }

// Name returns the declared name, empty for anonymous types.
func (t *Type) Name() string { return t.name }

// Min returns the lower bound of a range type.
func (t *Type) Min() int32 { return t.min }

// Max returns the upper bound of a range type.
func (t *Type) Max() int32 { return t.max }

// IsFlags reports whether an enum combines its values as bit flags.
func (t *Type) IsFlags() bool { return t.flags }

// Class returns the bound class of a class-family type.
func (t *Type) Class() *Class { return t.class }

// Qualifier returns the ownership qualifier of a class-family type.
func (t *Type) Qualifier() Qualifier { return t.qual }

// TypeArg0 returns the first type argument.
func (t *Type) TypeArg0() *Type { return t.arg0 }

// TypeArg1 returns the second type argument.
func (t *Type) TypeArg1() *Type { return t.arg1 }

// ElementType is the element of an array or collection.
func (t *Type) ElementType() *Type { return t.arg0 }

// KeyType is the key of a dictionary.
func (t *Type) KeyType() *Type { return t.arg0 }

// ValueType is the value of a dictionary.
func (t *Type) ValueType() *Type { return t.arg1 }

// Length returns the compile-time length of an array storage.
func (t *Type) Length() int { return t.length }

// PtrTaken reports whether the address of an array storage has escaped.
func (t *Type) PtrTaken() bool { return t.ptrTaken }

// MarkPtrTaken records that the array storage address escaped.
func (t *Type) MarkPtrTaken() {
	if t.kind != KindClass || t.qual != QualArrayStorage {
		panic(fmt.Errorf("types: MarkPtrTaken on %s", t))
	}
	t.ptrTaken = true
}

// IsNumeric reports integer, range and floating types.
func (t *Type) IsNumeric() bool {
	switch t.kind {
	case KindInteger, KindRange, KindFloating:
		return true
	default:
		return false
	}
}

// IsInteger reports integer and range types.
func (t *Type) IsInteger() bool {
	return t.kind == KindInteger || t.kind == KindRange
}

// IsClass reports class-family types.
func (t *Type) IsClass() bool { return t.kind == KindClass }

// IsString reports string pointer and string storage types.
func (t *Type) IsString() bool {
	return t.kind == KindClass && t.class.ID == intrinsic.StringClass
}

func (t *Type) isStringStorage() bool {
	return t.IsString() && t.qual == QualStorage
}

// IsNullable reports whether null is a valid value.
func (t *Type) IsNullable() bool {
	if t.kind != KindClass {
		return false
	}
	switch t.qual {
	case QualStorage, QualArrayStorage:
		return false
	default:
		return true
	}
}

// IsArray reports array pointers and array storage.
func (t *Type) IsArray() bool {
	if t.kind != KindClass {
		return false
	}
	return t.qual == QualArrayStorage || t.class.ID == intrinsic.ArrayPtrClass
}

// IsFinal reports types that admit no strict-descendant substitution.
// Storage is final except for Match, whose state is mutated in place.
func (t *Type) IsFinal() bool {
	if t.kind != KindClass {
		return false
	}
	switch t.qual {
	case QualStorage:
		return !t.IsString() && t.class.ID != intrinsic.MatchClass
	case QualArrayStorage:
		return true
	default:
		return false
	}
}

// BaseType strips array wrapping.
func (t *Type) BaseType() *Type {
	if t.IsArray() {
		return t.arg0.BaseType()
	}
	return t
}

// StorageType returns the innermost element of nested array storage.
func (t *Type) StorageType() *Type {
	if t.kind == KindClass && t.qual == QualArrayStorage {
		return t.arg0.StorageType()
	}
	return t
}

// PtrOrSelf takes a reference to a by-value type. Storage decays to a
// read-write pointer over the same class, array storage to a read-write
// ArrayPtr of the element with the length dropped.
func (t *Type) PtrOrSelf() *Type {
	if t.kind != KindClass {
		return t
	}
	switch t.qual {
	case QualStorage:
		if t.IsString() {
			return NewClassType(QualPointer, t.class)
		}
		return NewClassType(QualReadWrite, t.class, t.arg0, t.arg1)
	case QualArrayStorage:
		return NewClassType(QualReadWrite, t.class.Base, t.arg0)
	default:
		return t
	}
}
