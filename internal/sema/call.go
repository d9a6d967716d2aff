package sema

import (
	"cito/internal/diag"
	"cito/internal/source"
	"cito/internal/symbols"
	"cito/internal/types"
)

// Call checks a call of method, a method or method group, on a receiver of
// type obj with arguments of the given types. obj is nil for a static call.
// It returns the result type and the overload that was picked.
func (c *Checker) Call(pos source.Pos, obj *types.Type, method symbols.SymbolID, args []*types.Type) (*types.Type, symbols.SymbolID, bool) {
	overload, ok := c.pickOverload(pos, obj, method, len(args))
	if !ok {
		return nil, symbols.NoSymbolID, false
	}
	sym := c.table.Symbol(overload)
	if !c.checkReceiver(pos, obj, sym) {
		return nil, overload, false
	}

	ok = true
	for i, arg := range args {
		param := c.table.Symbol(sym.Params[i])
		want := c.eval(obj, param.Type)
		switch {
		case want == nil:
			c.errorf(diag.SemaNotApplicable, pos, "Method %s does not apply to %s", sym.Name, obj)
			return nil, overload, false
		case want == types.TypeParam0Predicate:
			// lambdas are checked where they are parsed
		default:
			ok = c.Coerce(pos, arg, want) && ok
		}
	}
	ret := c.eval(obj, sym.Type)
	if ret == nil {
		c.errorf(diag.SemaNotApplicable, pos, "Method %s does not apply to %s", sym.Name, obj)
		return nil, overload, false
	}
	return types.MustResolved(ret), overload, ok
}

// CallMethod resolves name on obj and checks the call.
func (c *Checker) CallMethod(pos source.Pos, obj *types.Type, name string, args []*types.Type) (*types.Type, symbols.SymbolID, bool) {
	id, ok := c.Member(pos, obj, name)
	if !ok {
		return nil, symbols.NoSymbolID, false
	}
	if kind := c.table.Symbol(id).Kind; kind != symbols.SymbolMethod && kind != symbols.SymbolMethodGroup {
		c.errorf(diag.SemaNotApplicable, pos, "%s is not a method", name)
		return nil, id, false
	}
	return c.Call(pos, obj, id, args)
}

// CallStatic resolves name on class itself and checks the call, as in
// Regex.IsMatch(input, pattern).
func (c *Checker) CallStatic(pos source.Pos, class *types.Class, name string, args []*types.Type) (*types.Type, symbols.SymbolID, bool) {
	id, ok := c.StaticMember(pos, class, name)
	if !ok {
		return nil, symbols.NoSymbolID, false
	}
	if kind := c.table.Symbol(id).Kind; kind != symbols.SymbolMethod && kind != symbols.SymbolMethodGroup {
		c.errorf(diag.SemaNotApplicable, pos, "%s is not a method", name)
		return nil, id, false
	}
	return c.Call(pos, nil, id, args)
}

func (c *Checker) eval(obj, ty *types.Type) *types.Type {
	if obj == nil || !obj.IsClass() {
		return ty
	}
	return obj.EvalType(ty)
}

// pickOverload returns the first overload accepting argc arguments, counting
// defaulted parameters as optional. Overloads matching the static-ness of
// the call are preferred; the others are tried last so a mismatch gets
// reported as such.
func (c *Checker) pickOverload(pos source.Pos, obj *types.Type, method symbols.SymbolID, argc int) (symbols.SymbolID, bool) {
	overloads := c.table.Overloads(method)
	static := obj == nil || isStaticClassRef(obj)
	for _, strict := range []bool{true, false} {
		for _, id := range overloads {
			sym := c.table.Symbol(id)
			if strict && sym.IsStatic() != static {
				continue
			}
			if argc <= len(sym.Params) && argc >= c.requiredParams(sym) {
				return id, true
			}
		}
	}
	name := "?"
	if sym := c.table.Symbol(method); sym != nil {
		name = sym.Name
	}
	c.errorf(diag.SemaArgumentCount, pos, "Invalid number of arguments for %s: %d", name, argc)
	return symbols.NoSymbolID, false
}

func (c *Checker) requiredParams(sym *symbols.Symbol) int {
	n := 0
	for _, p := range sym.Params {
		if c.table.Symbol(p).Value.Kind == symbols.ValueNone {
			n++
		}
	}
	return n
}

// checkReceiver applies the rules that depend on how the method is reached:
// static or not, mutating or not, and the element-type visibilities of
// built-in generics.
func (c *Checker) checkReceiver(pos source.Pos, obj *types.Type, sym *symbols.Symbol) bool {
	switch {
	case obj == nil && !sym.IsStatic():
		c.errorf(diag.SemaStaticMismatch, pos, "Method %s is not static", sym.Name)
		return false
	case obj != nil && sym.IsStatic() && !isStaticClassRef(obj):
		c.errorf(diag.SemaStaticMismatch, pos, "Static method %s called through an instance of %s", sym.Name, obj)
		return false
	}
	if obj == nil || !obj.IsClass() {
		return true
	}
	if sym.IsMutator() && obj.Qualifier() == types.QualPointer {
		c.errorf(diag.SemaMutatorOnReadOnly, pos, "Cannot call mutating method %s through a read-only reference %s", sym.Name, obj)
		return false
	}
	switch sym.Visibility {
	case symbols.VisNumericElementType:
		if elem := obj.ElementType(); elem == nil || !elem.IsNumeric() {
			c.errorf(diag.SemaMemberNotVisible, pos, "Method %s is only available for numeric elements, not %s", sym.Name, obj)
			return false
		}
	case symbols.VisFinalValueType:
		if v := obj.ValueType(); v == nil || !v.IsFinal() {
			c.errorf(diag.SemaMemberNotVisible, pos, "Method %s is only available for value types, not %s", sym.Name, obj)
			return false
		}
	}
	return true
}

// isStaticClassRef reports references to classes without instances, such
// as Console.Error, through which static methods are called.
func isStaticClassRef(t *types.Type) bool {
	return t.IsClass() && t.Class().Call == types.CallStatic
}
