package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"cito/internal/types"
)

// ErrFrozen is raised when a frozen table, or a scope it owns, is modified.
var ErrFrozen = errors.New("symbol table is frozen")

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas. A table forked from a frozen
// base sees every base scope and symbol but can only add to its own.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols

	base     *Table
	classes  map[*types.Class]SymbolID
	typeSyms map[*types.Type]SymbolID
	frozen   bool
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	return newTable(h, nil)
}

// Fork stacks a writable table on top of t, which must be frozen.
func (t *Table) Fork(h Hints) *Table {
	if !t.frozen {
		panic("symbols: Fork of a table that is not frozen")
	}
	return newTable(h, t)
}

func newTable(h Hints, base *Table) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		base:     base,
		classes:  make(map[*types.Class]SymbolID),
		typeSyms: make(map[*types.Type]SymbolID),
	}
	if base != nil {
		t.Scopes = NewScopes(scopeCap, base.Scopes)
		t.Symbols = NewSymbols(symCap, base.Symbols)
	} else {
		t.Scopes = NewScopes(scopeCap, nil)
		t.Symbols = NewSymbols(symCap, nil)
	}
	return t
}

// Freeze forbids any further modification.
func (t *Table) Freeze() { t.frozen = true }

// Frozen reports whether Freeze was called.
func (t *Table) Frozen() bool { return t.frozen }

// Base returns the table t was forked from, or nil.
func (t *Table) Base() *Table { return t.base }

func (t *Table) mustWritable() {
	if t.frozen {
		panic(fmt.Errorf("symbols: %w", ErrFrozen))
	}
}

// NewScope opens a scope under parent.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner SymbolID) ScopeID {
	t.mustWritable()
	return t.Scopes.New(kind, parent, owner)
}

// Scope returns the scope for id, or nil.
func (t *Table) Scope(id ScopeID) *Scope { return t.Scopes.Get(id) }

// Symbol returns the symbol for id, or nil.
func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Add appends sym to scope and returns its handle. Duplicate names are not
// rejected here; the front end reports them.
func (t *Table) Add(scope ScopeID, sym Symbol) SymbolID {
	t.mustWritable()
	sc := t.Scopes.local(scope)
	if sc == nil {
		panic(fmt.Errorf("symbols: add %q to %s not owned by this table: %w", sym.Name, scope, ErrFrozen))
	}
	sym.Scope = scope
	id := t.Symbols.New(&sym)
	sc.Symbols = append(sc.Symbols, id)
	sc.NameIndex[sym.Name] = append(sc.NameIndex[sym.Name], id)
	switch sym.Kind {
	case SymbolClass:
		t.classes[sym.Class] = id
	case SymbolType, SymbolEnum:
		t.typeSyms[sym.Type] = id
	}
	return id
}

// LookupLocal finds name in scope only. When a scope holds several symbols of
// the same name, the latest declaration wins.
func (t *Table) LookupLocal(scope ScopeID, name string) (SymbolID, bool) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID, false
	}
	ids := sc.NameIndex[name]
	if len(ids) == 0 {
		return NoSymbolID, false
	}
	return ids[len(ids)-1], true
}

// TryLookup walks from scope outwards and returns the nearest declaration.
// A class body is followed by the bodies of its base classes before the
// scope the class was declared in.
func (t *Table) TryLookup(scope ScopeID, name string) (SymbolID, bool) {
	for scope.IsValid() {
		if id, ok := t.LookupLocal(scope, name); ok {
			return id, true
		}
		sc := t.Scopes.Get(scope)
		if sc == nil {
			break
		}
		if id, ok := t.lookupInherited(sc, name); ok {
			return id, true
		}
		scope = sc.Parent
	}
	return NoSymbolID, false
}

func (t *Table) lookupInherited(sc *Scope, name string) (SymbolID, bool) {
	if sc.Kind != ScopeClass {
		return NoSymbolID, false
	}
	owner := t.Symbol(sc.Owner)
	if owner == nil || owner.Class == nil {
		return NoSymbolID, false
	}
	for base := owner.Class.Base; base != nil; base = base.Base {
		if id, ok := t.LookupLocal(t.ClassScope(base), name); ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// Members lists the symbols of scope in declaration order.
func (t *Table) Members(scope ScopeID) []SymbolID {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return nil
	}
	return sc.Symbols
}

// ClassSymbol finds the symbol declaring class, here or in the base table.
func (t *Table) ClassSymbol(class *types.Class) (SymbolID, bool) {
	for tt := t; tt != nil; tt = tt.base {
		if id, ok := tt.classes[class]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// ClassScope returns the body scope of class.
func (t *Table) ClassScope(class *types.Class) ScopeID {
	id, ok := t.ClassSymbol(class)
	if !ok {
		return NoScopeID
	}
	return t.Symbol(id).Body
}

// TypeSymbol finds the symbol declaring a scalar or enum type.
func (t *Table) TypeSymbol(ty *types.Type) (SymbolID, bool) {
	for tt := t; tt != nil; tt = tt.base {
		if id, ok := tt.typeSyms[ty]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// LookupMember resolves member access on an expression of type ty: class
// types search their class body and then the base classes, enums their values.
func (t *Table) LookupMember(ty *types.Type, name string) (SymbolID, bool) {
	switch ty.Kind() {
	case types.KindClass:
		for class := ty.Class(); class != nil; class = class.Base {
			if id, ok := t.LookupLocal(t.ClassScope(class), name); ok {
				return id, true
			}
		}
	case types.KindEnum:
		if enumID, ok := t.TypeSymbol(ty); ok {
			return t.LookupLocal(t.Symbol(enumID).Body, name)
		}
	}
	return NoSymbolID, false
}
