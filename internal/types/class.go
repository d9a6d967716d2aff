package types

import (
	"fmt"

	"cito/internal/intrinsic"
)

// CallKind says how members of a class are dispatched.
type CallKind uint8

const (
	CallNormal CallKind = iota
	CallStatic          // no instances
	CallSealed          // no subclasses
	CallAbstract        // no direct instances
)

func (k CallKind) String() string {
	switch k {
	case CallNormal:
		return "normal"
	case CallStatic:
		return "static"
	case CallSealed:
		return "sealed"
	case CallAbstract:
		return "abstract"
	default:
		return fmt.Sprintf("CallKind(%d)", k)
	}
}

// MaxTypeParams is the largest number of type parameters a class may declare.
const MaxTypeParams = 2

// Class is a named type declarator. Its members live in the symbol table.
type Class struct {
	ID         intrinsic.ID
	Name       string
	Call       CallKind
	TypeParams int
	BaseName   string
	Base       *Class
}

// NewClass declares a class with up to MaxTypeParams type parameters.
func NewClass(call CallKind, id intrinsic.ID, name string, typeParams int) *Class {
	if typeParams < 0 || typeParams > MaxTypeParams {
		fault(ErrTooManyTypeParams, "class %s declares %d", name, typeParams)
	}
	return &Class{ID: id, Name: name, Call: call, TypeParams: typeParams}
}

// SetBase links the resolved base class.
func (c *Class) SetBase(base *Class) {
	c.Base = base
	if base != nil {
		c.BaseName = base.Name
	}
}

// IsSameOrBaseOf reports whether derived is c or inherits from it.
func (c *Class) IsSameOrBaseOf(derived *Class) bool {
	for ; derived != nil; derived = derived.Base {
		if derived == c {
			return true
		}
	}
	return false
}

func (c *Class) String() string { return c.Name }

// NewClassType binds a class to its type arguments under qualifier q.
// Array storage is built with NewArrayStorage instead.
func NewClassType(q Qualifier, class *Class, args ...*Type) *Type {
	if class == nil {
		panic("types: NewClassType with nil class")
	}
	if q == QualArrayStorage {
		panic("types: use NewArrayStorage for array storage")
	}
	if len(args) > MaxTypeParams {
		fault(ErrTooManyTypeParams, "%s bound to %d arguments", class.Name, len(args))
	}
	t := &Type{kind: KindClass, name: class.Name, class: class, qual: q}
	if len(args) > 0 {
		t.arg0 = args[0]
	}
	if len(args) > 1 {
		t.arg1 = args[1]
	}
	return t
}

// NewArrayStorage describes elem[length] embedded by value. class must be
// the ArrayStorage class, whose base is ArrayPtr.
func NewArrayStorage(class *Class, elem *Type, length int) *Type {
	if class == nil || class.ID != intrinsic.ArrayStorageClass {
		panic("types: NewArrayStorage requires the ArrayStorage class")
	}
	if length < 0 {
		panic(fmt.Errorf("types: negative array length %d", length))
	}
	return &Type{kind: KindClass, name: class.Name, class: class, qual: QualArrayStorage, arg0: elem, length: length}
}
