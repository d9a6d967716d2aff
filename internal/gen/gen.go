// Package gen turns checked expression trees into target source text.
//
// Each target is an ast.Visitor. Operands are visited with the priority of
// their context and a target parenthesizes an operand whose own operator
// binds looser. Built-in members are recognized by their intrinsic.ID, never
// by name. A construct the target cannot express stops generation with an
// error wrapping ErrUnsupported; the first such error sticks and later
// output is discarded.
package gen

import (
	"fmt"
	"slices"
	"strings"

	"cito/internal/ast"
	"cito/internal/types"
)

// Target names.
const (
	TargetCi = "ci"
	TargetCl = "cl"
)

var targets = map[string]func(*ast.Exprs) generator{
	TargetCi: func(e *ast.Exprs) generator { return newCiGen(TargetCi, e) },
	TargetCl: func(e *ast.Exprs) generator { return newClGen(e) },
}

type generator interface {
	ast.Visitor
	base() *emitter
}

// Targets lists the registered target names.
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Generate renders the expression id in the named target language. The tree
// must have been checked; a node still typed with a generic placeholder is a
// front end bug and panics.
func Generate(target string, e *ast.Exprs, id ast.ExprID) (string, error) {
	newGen, ok := targets[target]
	if !ok {
		return "", fmt.Errorf("unknown target %q", target)
	}
	g := newGen(e)
	b := g.base()
	b.expr(id, ast.PriorityStatement)
	if b.err != nil {
		return "", b.err
	}
	return b.sb.String(), nil
}

// emitter is the state shared by all targets. self is the outermost
// visitor so that operands dispatch to target overrides.
type emitter struct {
	target string
	exprs  *ast.Exprs
	self   ast.Visitor
	sb     strings.Builder
	err    error
}

func (g *emitter) base() *emitter { return g }

func (g *emitter) write(s string) {
	if g.err == nil {
		g.sb.WriteString(s)
	}
}

func (g *emitter) fail(construct string) {
	if g.err == nil {
		g.err = unsupported(g.target, construct)
	}
}

func (g *emitter) expr(id ast.ExprID, parent ast.Priority) {
	g.exprs.Accept(id, g.self, parent)
}

// node returns the expression, checking that its type is fully resolved.
func (g *emitter) node(id ast.ExprID) *ast.Expr {
	expr := g.exprs.Get(id)
	if expr.Type != nil {
		types.MustResolved(expr.Type)
	}
	return expr
}

func (g *emitter) args(args []ast.ExprID) {
	g.write("(")
	for i, arg := range args {
		if i > 0 {
			g.write(", ")
		}
		g.expr(arg, ast.PriorityArgument)
	}
	g.write(")")
}

func (g *emitter) open(cond bool) {
	if cond {
		g.write("(")
	}
}

func (g *emitter) close(cond bool) {
	if cond {
		g.write(")")
	}
}
