package symbols

import (
	"fmt"

	"cito/internal/intrinsic"
	"cito/internal/types"
)

// DeclareType names a scalar type in scope.
func (t *Table) DeclareType(scope ScopeID, name string, ty *types.Type) SymbolID {
	return t.Add(scope, Symbol{Name: name, Kind: SymbolType, Type: ty, Flags: SymbolFlagBuiltin})
}

// DeclareClass adds class to scope and opens its body, whose parent is scope.
// The body starts with an implicit read-write this, shadowing the one of the
// base class.
func (t *Table) DeclareClass(scope ScopeID, class *types.Class, flags SymbolFlags, line int) SymbolID {
	id := t.Add(scope, Symbol{Name: class.Name, Kind: SymbolClass, ID: class.ID, Class: class, Flags: flags, Line: line})
	body := t.NewScope(ScopeClass, scope, id)
	t.Symbol(id).Body = body
	t.Add(body, Symbol{
		Name:  "this",
		Kind:  SymbolVar,
		Type:  types.NewClassType(types.QualReadWrite, class),
		Flags: SymbolFlagImplicit | flags&SymbolFlagBuiltin,
		Line:  line,
	})
	return id
}

// SetBase records the resolved base class of a class declared in this table.
func (t *Table) SetBase(class, base *types.Class) {
	t.mustWritable()
	id, ok := t.ClassSymbol(class)
	if !ok {
		panic(fmt.Errorf("symbols: SetBase on undeclared class %s", class.Name))
	}
	if t.Scopes.local(t.Symbol(id).Body) == nil {
		panic(fmt.Errorf("symbols: SetBase on %s: %w", class.Name, ErrFrozen))
	}
	class.SetBase(base)
}

// DeclareEnum adds an enum type to scope and opens the scope of its values.
func (t *Table) DeclareEnum(scope ScopeID, enum *types.Type, flags SymbolFlags, line int) SymbolID {
	if enum.Kind() != types.KindEnum {
		panic(fmt.Errorf("symbols: DeclareEnum with %s", enum))
	}
	id := t.Add(scope, Symbol{Name: enum.Name(), Kind: SymbolEnum, Type: enum, Flags: flags, Line: line})
	body := t.NewScope(ScopeEnum, scope, id)
	t.Symbol(id).Body = body
	return id
}

// DeclareEnumValue adds a named value to an enum declared with DeclareEnum.
func (t *Table) DeclareEnumValue(enum SymbolID, name string, value int64) SymbolID {
	sym := t.Symbol(enum)
	if sym == nil || sym.Kind != SymbolEnum {
		panic(fmt.Errorf("symbols: %s is not an enum", enum))
	}
	return t.Add(sym.Body, Symbol{
		Name:       name,
		Kind:       SymbolConst,
		Type:       sym.Type,
		Visibility: VisPublic,
		Value:      IntValue(value),
		Flags:      sym.Flags & SymbolFlagBuiltin,
	})
}

// DeclareConst adds a constant.
func (t *Table) DeclareConst(scope ScopeID, name string, ty *types.Type, value Value, flags SymbolFlags) SymbolID {
	return t.Add(scope, Symbol{Name: name, Kind: SymbolConst, Type: ty, Value: value, Visibility: VisPublic, Flags: flags})
}

// DeclareMember adds a field or property.
func (t *Table) DeclareMember(scope ScopeID, id intrinsic.ID, name string, ty *types.Type, flags SymbolFlags) SymbolID {
	return t.Add(scope, Symbol{Name: name, Kind: SymbolMember, ID: id, Type: ty, Visibility: VisPublic, Flags: flags})
}

// DeclareVar adds a parameter or local variable.
func (t *Table) DeclareVar(scope ScopeID, name string, ty *types.Type, line int) SymbolID {
	return t.Add(scope, Symbol{Name: name, Kind: SymbolVar, Type: ty, Line: line})
}

// Param describes one method parameter.
type Param struct {
	Name    string
	Type    *types.Type
	Default Value
}

// MethodSpec describes a method signature.
type MethodSpec struct {
	ID         intrinsic.ID
	Name       string
	Return     *types.Type
	Visibility Visibility
	Call       CallType
	Mutator    bool
	Params     []Param
	Flags      SymbolFlags
	Line       int
}

// DeclareMethod adds a method to scope.
func (t *Table) DeclareMethod(scope ScopeID, spec MethodSpec) SymbolID {
	id := t.Add(scope, spec.symbol())
	t.openParams(id, scope, spec)
	return id
}

// NewOverload creates a method that is reachable only through a method group
// declared in scope, not by name.
func (t *Table) NewOverload(scope ScopeID, spec MethodSpec) SymbolID {
	t.mustWritable()
	sym := spec.symbol()
	sym.Scope = scope
	sym.Flags |= SymbolFlagOverload
	id := t.Symbols.New(&sym)
	t.openParams(id, scope, spec)
	return id
}

// DeclareMethodGroup bundles overloads under one name. An overload may also
// be declared by name elsewhere, e.g. in a base class.
func (t *Table) DeclareMethodGroup(scope ScopeID, overloads ...SymbolID) SymbolID {
	if len(overloads) < 2 {
		panic("symbols: method group needs at least two overloads")
	}
	first := t.Symbol(overloads[0])
	return t.Add(scope, Symbol{
		Name:       first.Name,
		Kind:       SymbolMethodGroup,
		Visibility: first.Visibility,
		Flags:      first.Flags &^ SymbolFlagOverload,
		Overloads:  append([]SymbolID(nil), overloads...),
	})
}

func (spec MethodSpec) symbol() Symbol {
	flags := spec.Flags
	if spec.Mutator {
		flags |= SymbolFlagMutator
	}
	ret := spec.Return
	if ret == nil {
		ret = types.Void
	}
	return Symbol{
		Name:       spec.Name,
		Kind:       SymbolMethod,
		ID:         spec.ID,
		Type:       ret,
		Visibility: spec.Visibility,
		Call:       spec.Call,
		Flags:      flags,
		Line:       spec.Line,
	}
}

func (t *Table) openParams(method SymbolID, scope ScopeID, spec MethodSpec) {
	body := t.NewScope(ScopeMethod, scope, method)
	params := make([]SymbolID, 0, len(spec.Params))
	for _, p := range spec.Params {
		params = append(params, t.Add(body, Symbol{
			Name:  p.Name,
			Kind:  SymbolVar,
			Type:  p.Type,
			Value: p.Default,
			Flags: spec.Flags & SymbolFlagBuiltin,
		}))
	}
	sym := t.Symbol(method)
	sym.Body = body
	sym.Params = params
}

// Overloads returns the methods reachable through id: the group members for
// a method group, the method itself otherwise.
func (t *Table) Overloads(id SymbolID) []SymbolID {
	sym := t.Symbol(id)
	switch {
	case sym == nil:
		return nil
	case sym.Kind == SymbolMethodGroup:
		return sym.Overloads
	case sym.Kind == SymbolMethod:
		return []SymbolID{id}
	default:
		return nil
	}
}

// AddsVirtualMethods reports whether class declares abstract or virtual methods.
func (t *Table) AddsVirtualMethods(class *types.Class) bool {
	for _, id := range t.Members(t.ClassScope(class)) {
		sym := t.Symbol(id)
		if sym.Kind == SymbolMethod && sym.IsAbstractOrVirtual() {
			return true
		}
	}
	return false
}
