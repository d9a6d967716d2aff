package ast

import "fmt"

// Visitor is implemented by code generators. Each method receives the
// priority of the enclosing context and returns the expression it emitted,
// which may be a rewritten node.
type Visitor interface {
	VisitLiteral(e *Exprs, id ExprID, parent Priority) ExprID
	VisitSymbol(e *Exprs, id ExprID, parent Priority) ExprID
	VisitMember(e *Exprs, id ExprID, parent Priority) ExprID
	VisitCall(e *Exprs, id ExprID, parent Priority) ExprID
	VisitUnary(e *Exprs, id ExprID, parent Priority) ExprID
	VisitBinary(e *Exprs, id ExprID, parent Priority) ExprID
	VisitSelect(e *Exprs, id ExprID, parent Priority) ExprID
	VisitInterpolated(e *Exprs, id ExprID, parent Priority) ExprID
}

// Accept dispatches id to the visitor method for its kind.
func (e *Exprs) Accept(id ExprID, v Visitor, parent Priority) ExprID {
	expr := e.Get(id)
	if expr == nil {
		panic(fmt.Errorf("ast: accept invalid expression %d", id))
	}
	switch expr.Kind {
	case ExprLiteral:
		return v.VisitLiteral(e, id, parent)
	case ExprSymbol:
		return v.VisitSymbol(e, id, parent)
	case ExprMember:
		return v.VisitMember(e, id, parent)
	case ExprCall:
		return v.VisitCall(e, id, parent)
	case ExprUnary:
		return v.VisitUnary(e, id, parent)
	case ExprBinary:
		return v.VisitBinary(e, id, parent)
	case ExprSelect:
		return v.VisitSelect(e, id, parent)
	case ExprInterpolated:
		return v.VisitInterpolated(e, id, parent)
	default:
		panic(fmt.Errorf("ast: no visitor for %s", expr.Kind))
	}
}

// Inspect walks the tree rooted at id depth-first, calling fn for each node
// before its operands. Returning false skips the operands.
func (e *Exprs) Inspect(id ExprID, fn func(ExprID, *Expr) bool) {
	expr := e.Get(id)
	if expr == nil || !fn(id, expr) {
		return
	}
	switch expr.Kind {
	case ExprMember:
		if m := e.Member(id); m.Left.IsValid() {
			e.Inspect(m.Left, fn)
		}
	case ExprCall:
		c := e.Call(id)
		e.Inspect(c.Method, fn)
		for _, arg := range c.Args {
			e.Inspect(arg, fn)
		}
	case ExprUnary:
		e.Inspect(e.Unary(id).X, fn)
	case ExprBinary:
		b := e.Binary(id)
		e.Inspect(b.Left, fn)
		e.Inspect(b.Right, fn)
	case ExprSelect:
		s := e.Select(id)
		e.Inspect(s.Cond, fn)
		e.Inspect(s.OnTrue, fn)
		e.Inspect(s.OnFalse, fn)
	case ExprInterpolated:
		for _, part := range e.Interpolated(id).Parts {
			e.Inspect(part.Arg, fn)
		}
	}
}
