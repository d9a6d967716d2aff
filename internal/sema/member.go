package sema

import (
	"cito/internal/diag"
	"cito/internal/source"
	"cito/internal/symbols"
	"cito/internal/types"
)

// Member resolves name on a value of type ty, searching the class chain for
// class types and the values for enums.
func (c *Checker) Member(pos source.Pos, ty *types.Type, name string) (symbols.SymbolID, bool) {
	if ty == nil {
		return symbols.NoSymbolID, false
	}
	id, ok := c.table.LookupMember(ty, name)
	if !ok {
		c.errorf(diag.SemaUnknownMember, pos, "%s does not have a member %s", ty, name)
	}
	return id, ok
}

// StaticMember resolves name on class itself, as in Math.PI.
func (c *Checker) StaticMember(pos source.Pos, class *types.Class, name string) (symbols.SymbolID, bool) {
	for k := class; k != nil; k = k.Base {
		if id, ok := c.table.LookupLocal(c.table.ClassScope(k), name); ok {
			return id, true
		}
	}
	c.errorf(diag.SemaUnknownMember, pos, "%s does not have a member %s", class.Name, name)
	return symbols.NoSymbolID, false
}

// memberType is the type of a field or constant read through a value of
// type obj, with the type arguments of obj substituted. obj is nil for
// static access.
func (c *Checker) memberType(pos source.Pos, obj *types.Type, sym *symbols.Symbol) *types.Type {
	switch sym.Kind {
	case symbols.SymbolMethod, symbols.SymbolMethodGroup:
		c.errorf(diag.SemaMethodAsValue, pos, "Method %s must be called", sym.Name)
		return nil
	case symbols.SymbolClass, symbols.SymbolType, symbols.SymbolEnum:
		c.errorf(diag.SemaMethodAsValue, pos, "%s is a type, not a value", sym.Name)
		return nil
	}
	if sym.Type == nil {
		c.errorf(diag.SemaUnresolvedSymbol, pos, "%s has no type here", sym.Name)
		return nil
	}
	if obj == nil || !obj.IsClass() {
		return types.MustResolved(sym.Type)
	}
	return types.MustResolved(obj.EvalType(sym.Type))
}
