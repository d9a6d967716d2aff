package ast

import (
	"slices"

	"cito/internal/symbols"
	"cito/internal/types"
)

// Program is a fully analyzed compilation unit, handed to generators.
type Program struct {
	// Table holds the program's declarations on top of the built-in ones.
	Table *symbols.Table
	Scope symbols.ScopeID
	Exprs *Exprs

	// Classes in declaration order.
	Classes []symbols.SymbolID
	// Resources maps a resource name to its raw content.
	Resources map[string][]byte
	// TopLevelNatives are target-language fragments emitted verbatim.
	TopLevelNatives []string
}

// NewProgram starts an empty program whose declarations go to scope.
func NewProgram(table *symbols.Table, scope symbols.ScopeID, stringType *types.Type) *Program {
	return &Program{
		Table:     table,
		Scope:     scope,
		Exprs:     NewExprs(0, stringType),
		Resources: make(map[string][]byte),
	}
}

// DeclareClass adds class to the program scope and records its order.
func (p *Program) DeclareClass(class *types.Class, line int) symbols.SymbolID {
	id := p.Table.DeclareClass(p.Scope, class, 0, line)
	p.Classes = append(p.Classes, id)
	return id
}

// AddResource registers content under name, replacing any earlier content.
func (p *Program) AddResource(name string, content []byte) {
	p.Resources[name] = content
}

// ResourceNames lists resource names in sorted order, the order generators
// emit them in.
func (p *Program) ResourceNames() []string {
	names := make([]string, 0, len(p.Resources))
	for name := range p.Resources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AddNative appends a verbatim fragment.
func (p *Program) AddNative(code string) {
	p.TopLevelNatives = append(p.TopLevelNatives, code)
}
