package gen

import (
	"math"
	"strconv"
	"strings"

	"cito/internal/ast"
)

// ciGen writes Ci back. It is the reference every other target starts
// from: targets embed it and override the visits they need.
type ciGen struct {
	emitter
}

func newCiGen(target string, e *ast.Exprs) *ciGen {
	g := &ciGen{emitter: emitter{target: target, exprs: e}}
	g.self = g
	return g
}

func (g *ciGen) VisitLiteral(e *ast.Exprs, id ast.ExprID, parent ast.Priority) ast.ExprID {
	g.node(id)
	lit := e.Literal(id)
	var text string
	negative := false
	switch lit.Kind {
	case ast.LiteralLong:
		text = lit.String()
		negative = lit.Long < 0
	case ast.LiteralDouble:
		text = formatDouble(lit.Double)
		negative = math.Signbit(lit.Double)
	default:
		text = lit.String()
	}
	open := negative && parent == ast.PriorityPrimary
	g.open(open)
	g.write(text)
	g.close(open)
	return id
}

// formatDouble keeps a double literal distinguishable from an integer one.
func formatDouble(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

func (g *ciGen) VisitSymbol(e *ast.Exprs, id ast.ExprID, _ ast.Priority) ast.ExprID {
	g.node(id)
	g.write(e.Symbol(id).Name)
	return id
}

func (g *ciGen) VisitMember(e *ast.Exprs, id ast.ExprID, _ ast.Priority) ast.ExprID {
	g.node(id)
	m := e.Member(id)
	switch {
	case m.Left.IsValid():
		g.expr(m.Left, ast.PriorityPrimary)
	case m.Class != nil:
		g.write(m.Class.Name)
	}
	g.write(".")
	g.write(m.Name)
	return id
}

func (g *ciGen) VisitCall(e *ast.Exprs, id ast.ExprID, _ ast.Priority) ast.ExprID {
	g.node(id)
	c := e.Call(id)
	g.expr(c.Method, ast.PriorityPrimary)
	g.args(c.Args)
	return id
}

func (g *ciGen) VisitUnary(e *ast.Exprs, id ast.ExprID, _ ast.Priority) ast.ExprID {
	g.node(id)
	u := e.Unary(id)
	g.write(u.Op.String())
	if inner := e.Get(u.X); u.Op == ast.ExprUnaryNeg && inner.Kind == ast.ExprUnary && e.Unary(u.X).Op == ast.ExprUnaryNeg {
		// "--x" would read as a decrement
		g.write("(")
		g.expr(u.X, ast.PriorityStatement)
		g.write(")")
		return id
	}
	g.expr(u.X, ast.PriorityPrimary)
	return id
}

func (g *ciGen) VisitBinary(e *ast.Exprs, id ast.ExprID, parent ast.Priority) ast.ExprID {
	g.node(id)
	b := e.Binary(id)
	p := b.Op.Priority()
	left, right := p, p.Tighter()
	if b.Op.RightAssoc() {
		left, right = p.Tighter(), p
	}
	open := p < parent
	g.open(open)
	g.expr(b.Left, left)
	g.write(" " + b.Op.String() + " ")
	g.expr(b.Right, right)
	g.close(open)
	return id
}

func (g *ciGen) VisitSelect(e *ast.Exprs, id ast.ExprID, parent ast.Priority) ast.ExprID {
	g.node(id)
	s := e.Select(id)
	open := parent > ast.PrioritySelect
	g.open(open)
	g.expr(s.Cond, ast.PrioritySelectCond)
	g.write(" ? ")
	g.expr(s.OnTrue, ast.PrioritySelect)
	g.write(" : ")
	g.expr(s.OnFalse, ast.PrioritySelect)
	g.close(open)
	return id
}

func (g *ciGen) VisitInterpolated(e *ast.Exprs, id ast.ExprID, _ ast.Priority) ast.ExprID {
	g.node(id)
	data := e.Interpolated(id)
	g.write(`$"`)
	for _, part := range data.Parts {
		g.write(ast.EscapeInterpolated(part.Prefix))
		g.write("{")
		g.expr(part.Arg, ast.PriorityArgument)
		g.write("}")
	}
	g.write(ast.EscapeInterpolated(data.Suffix))
	g.write(`"`)
	return id
}
