package symbols

import (
	"fmt"

	"cito/internal/types"
)

// Resolver keeps the stack of lexical scopes entered while a front end walks
// a class, method or block, and resolves names against it.
type Resolver struct {
	table *Table
	stack []ScopeID
}

// NewResolver starts at root, usually the program scope.
func NewResolver(table *Table, root ScopeID) *Resolver {
	r := &Resolver{table: table, stack: make([]ScopeID, 0, 8)}
	if root.IsValid() {
		r.stack = append(r.stack, root)
	}
	return r
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter opens a child of the current scope and makes it current.
func (r *Resolver) Enter(kind ScopeKind, owner SymbolID) ScopeID {
	scope := r.table.NewScope(kind, r.CurrentScope(), owner)
	r.stack = append(r.stack, scope)
	return scope
}

// EnterExisting makes an already allocated scope current, e.g. a class body
// or method parameter scope.
func (r *Resolver) EnterExisting(scope ScopeID) {
	if r.table.Scope(scope) == nil {
		panic(fmt.Errorf("symbols: enter unknown %s", scope))
	}
	r.stack = append(r.stack, scope)
}

// EnterClass makes the body of class current.
func (r *Resolver) EnterClass(class *types.Class) ScopeID {
	scope := r.table.ClassScope(class)
	r.EnterExisting(scope)
	return scope
}

// Leave pops the current scope, which must be expected.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		panic("symbols: Leave with empty scope stack")
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic(fmt.Errorf("symbols: scope mismatch: leaving %s, current is %s", expected, top))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare adds sym to the current scope.
func (r *Resolver) Declare(sym Symbol) SymbolID {
	scope := r.CurrentScope()
	if !scope.IsValid() {
		panic("symbols: Declare without a current scope")
	}
	return r.table.Add(scope, sym)
}

// Lookup resolves name from the current scope outwards.
func (r *Resolver) Lookup(name string) (SymbolID, bool) {
	return r.table.TryLookup(r.CurrentScope(), name)
}

// Shadowed returns the declaration that a new symbol called name in the
// current scope would hide, if any.
func (r *Resolver) Shadowed(name string) (SymbolID, bool) {
	scope := r.table.Scope(r.CurrentScope())
	if scope == nil {
		return NoSymbolID, false
	}
	if id, ok := r.table.lookupInherited(scope, name); ok {
		return id, true
	}
	return r.table.TryLookup(scope.Parent, name)
}
