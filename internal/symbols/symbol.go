package symbols

import (
	"fmt"
	"strconv"

	"cito/internal/intrinsic"
	"cito/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolType               // scalar type such as int or byte
	SymbolClass
	SymbolEnum
	SymbolConst
	SymbolMember // field or property
	SymbolMethod
	SymbolMethodGroup // overloads sharing one name
	SymbolVar         // parameter or local
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolType:
		return "type"
	case SymbolClass:
		return "class"
	case SymbolEnum:
		return "enum"
	case SymbolConst:
		return "const"
	case SymbolMember:
		return "member"
	case SymbolMethod:
		return "method"
	case SymbolMethodGroup:
		return "method group"
	case SymbolVar:
		return "var"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagBuiltin SymbolFlags = 1 << iota
	SymbolFlagMutator             // method mutates its receiver
	SymbolFlagImplicit            // synthesized, e.g. this
	SymbolFlagOverload            // reachable only through a method group
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagMutator != 0 {
		labels = append(labels, "mutator")
	}
	if f&SymbolFlagImplicit != 0 {
		labels = append(labels, "implicit")
	}
	if f&SymbolFlagOverload != 0 {
		labels = append(labels, "overload")
	}
	return labels
}

// Visibility restricts where a member may be used. The last two gate built-in
// methods on the element type of the receiver.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisInternal
	VisProtected
	VisPublic
	VisNumericElementType // only when the element type is numeric
	VisFinalValueType     // only when the value type is final
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisInternal:
		return "internal"
	case VisProtected:
		return "protected"
	case VisPublic:
		return "public"
	case VisNumericElementType:
		return "numeric-element"
	case VisFinalValueType:
		return "final-value"
	default:
		return fmt.Sprintf("Visibility(%d)", v)
	}
}

// CallType says how a method is dispatched.
type CallType uint8

const (
	CallNormal CallType = iota
	CallStatic
	CallAbstract
	CallVirtual
	CallOverride
	CallSealed
)

func (c CallType) String() string {
	switch c {
	case CallNormal:
		return "normal"
	case CallStatic:
		return "static"
	case CallAbstract:
		return "abstract"
	case CallVirtual:
		return "virtual"
	case CallOverride:
		return "override"
	case CallSealed:
		return "sealed"
	default:
		return fmt.Sprintf("CallType(%d)", c)
	}
}

// ValueKind tags a Value.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueInt
	ValueDouble
	ValueString
	ValueSymbol // reference to a const, e.g. RegexOptions.None
)

// Value is a compile-time constant: a const initializer or a parameter default.
type Value struct {
	Kind   ValueKind
	Int    int64
	Double float64
	Str    string
	Sym    SymbolID
}

// IntValue is an integer constant.
func IntValue(v int64) Value { return Value{Kind: ValueInt, Int: v} }

// DoubleValue is a floating-point constant.
func DoubleValue(v float64) Value { return Value{Kind: ValueDouble, Double: v} }

// StringValue is a string constant.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// SymbolValue refers to another constant.
func SymbolValue(id SymbolID) Value { return Value{Kind: ValueSymbol, Sym: id} }

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueDouble:
		return strconv.FormatFloat(v.Double, 'g', -1, 64)
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueSymbol:
		return v.Sym.String()
	default:
		return ""
	}
}

// Symbol describes a named entity available in a scope.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	ID    intrinsic.ID
	Scope ScopeID // declaring scope
	Body  ScopeID // scope opened by a class, enum or method
	Flags SymbolFlags
	Line  int

	// Type is the declared type of a const, member or var, the return type of
	// a method, and the type itself for type and enum symbols.
	Type  *types.Type
	Class *types.Class

	Visibility Visibility
	Call       CallType
	Params     []SymbolID // method parameters, in order
	Overloads  []SymbolID // method group members
	Value      Value      // const value or parameter default
}

// IsStatic reports static methods.
func (s *Symbol) IsStatic() bool { return s.Call == CallStatic }

// IsMutator reports methods that mutate their receiver.
func (s *Symbol) IsMutator() bool { return s.Flags&SymbolFlagMutator != 0 }

// IsAbstractOrVirtual reports methods that may be overridden.
func (s *Symbol) IsAbstractOrVirtual() bool {
	return s.Call == CallAbstract || s.Call == CallVirtual
}
