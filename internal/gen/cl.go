package gen

import (
	"math"
	"strconv"
	"strings"

	"cito/internal/ast"
	"cito/internal/intrinsic"
	"cito/internal/types"
)

// clGen writes OpenCL C. It has no string formatting, so interpolated
// strings are rejected, and narrowing assignments get explicit casts.
type clGen struct {
	ciGen
}

func newClGen(e *ast.Exprs) *clGen {
	g := &clGen{ciGen: ciGen{emitter: emitter{target: TargetCl, exprs: e}}}
	g.self = g
	return g
}

func clTypeName(code TypeCode) (string, bool) {
	switch code {
	case CodeSByte:
		return "char", true
	case CodeByte:
		return "uchar", true
	case CodeInt16:
		return "short", true
	case CodeUInt16:
		return "ushort", true
	case CodeInt32:
		return "int", true
	case CodeInt64:
		return "long", true
	case CodeSingle:
		return "float", true
	case CodeDouble:
		return "double", true
	case CodeBoolean:
		return "bool", true
	}
	return "", false
}

var clMathNames = map[intrinsic.ID]string{
	intrinsic.MathCeiling:          "ceil",
	intrinsic.MathFusedMultiplyAdd: "fma",
	intrinsic.MathIsFinite:         "isfinite",
	intrinsic.MathIsInfinity:       "isinf",
	intrinsic.MathIsNaN:            "isnan",
	intrinsic.MathLog2:             "log2",
	intrinsic.MathTruncate:         "trunc",
}

func (g *clGen) VisitLiteral(e *ast.Exprs, id ast.ExprID, parent ast.Priority) ast.ExprID {
	lit := e.Literal(id)
	switch {
	case lit.Kind == ast.LiteralNull:
		g.node(id)
		g.write("NULL")
		return id
	case lit.Kind == ast.LiteralLong && (lit.Long > math.MaxInt32 || lit.Long < math.MinInt32):
		g.node(id)
		open := parent == ast.PriorityPrimary && lit.Long < 0
		g.open(open)
		g.write(strconv.FormatInt(lit.Long, 10) + "L")
		g.close(open)
		return id
	}
	return g.ciGen.VisitLiteral(e, id, parent)
}

func (g *clGen) VisitMember(e *ast.Exprs, id ast.ExprID, parent ast.Priority) ast.ExprID {
	g.node(id)
	m := e.Member(id)
	switch m.ID {
	case intrinsic.StringLength:
		g.write("strlen(")
		g.expr(m.Left, ast.PriorityArgument)
		g.write(")")
	case intrinsic.ArrayLength:
		left := e.Get(m.Left).Type
		if left == nil || left.Length() == 0 {
			g.fail("array length")
			break
		}
		g.write(strconv.Itoa(left.Length()))
	case intrinsic.MathNaN:
		g.write("NAN")
	case intrinsic.MathPositiveInfinity:
		g.write("INFINITY")
	case intrinsic.MathNegativeInfinity:
		open := parent == ast.PriorityPrimary
		g.open(open)
		g.write("-INFINITY")
		g.close(open)
	case intrinsic.None:
		if m.Class == nil {
			return g.ciGen.VisitMember(e, id, parent)
		}
		switch m.Name {
		case "PI":
			g.write("M_PI")
		case "E":
			g.write("M_E")
		default:
			g.fail("static member " + m.Class.Name + "." + m.Name)
		}
	default:
		g.fail("member " + m.Name)
	}
	return id
}

func (g *clGen) VisitCall(e *ast.Exprs, id ast.ExprID, parent ast.Priority) ast.ExprID {
	g.node(id)
	c := e.Call(id)
	method := e.Get(c.Method)
	if method.Kind != ast.ExprMember {
		return g.ciGen.VisitCall(e, id, parent)
	}
	m := e.Member(c.Method)
	switch m.ID {
	case intrinsic.None:
		return g.ciGen.VisitCall(e, id, parent)
	case intrinsic.ConsoleWrite, intrinsic.ConsoleWriteLine:
		if m.Left.IsValid() && e.Get(m.Left).Kind == ast.ExprMember && e.Member(m.Left).ID == intrinsic.ConsoleError {
			g.fail("standard error")
			return id
		}
		g.writeConsole(e, c.Args, m.ID == intrinsic.ConsoleWriteLine)
	case intrinsic.MathMethod:
		g.write(strings.ToLower(m.Name))
		g.args(c.Args)
	default:
		name, ok := clMathNames[m.ID]
		if !ok {
			g.fail("method " + m.Name)
			return id
		}
		g.write(name)
		g.args(c.Args)
	}
	return id
}

func (g *clGen) writeConsole(e *ast.Exprs, args []ast.ExprID, newLine bool) {
	nl := ""
	if newLine {
		nl = `\n`
	}
	if len(args) == 0 {
		g.write(`printf("` + nl + `")`)
		return
	}
	verb := "%s"
	switch code := CodeOf(e.Get(args[0]).Type, true); {
	case code == CodeInt64:
		verb = "%ld"
	case code.IsInteger():
		verb = "%d"
	case code == CodeSingle || code == CodeDouble:
		verb = "%g"
	case code != CodeString:
		g.fail("printing " + code.String())
		return
	}
	g.write(`printf("` + verb + nl + `", `)
	g.expr(args[0], ast.PriorityArgument)
	g.write(")")
}

func (g *clGen) VisitBinary(e *ast.Exprs, id ast.ExprID, parent ast.Priority) ast.ExprID {
	b := e.Binary(id)
	if b.Op != ast.ExprBinaryAssign {
		return g.ciGen.VisitBinary(e, id, parent)
	}
	g.node(id)
	target := CodeOf(e.Get(b.Left).Type, false)
	value := CodeOf(e.Get(b.Right).Type, false)
	name, ok := clTypeName(target)
	if !ok || !IsNarrower(target, value) {
		return g.ciGen.VisitBinary(e, id, parent)
	}
	open := ast.PriorityAssign < parent
	g.open(open)
	g.expr(b.Left, ast.PriorityAssign.Tighter())
	g.write(" = (" + name + ") ")
	g.expr(b.Right, ast.PriorityPrimary)
	g.close(open)
	return id
}

func (g *clGen) VisitInterpolated(_ *ast.Exprs, id ast.ExprID, _ ast.Priority) ast.ExprID {
	g.node(id)
	g.fail("interpolated string")
	return id
}

// ClTypeName spells t as an OpenCL C scalar type.
func ClTypeName(t *types.Type) (string, error) {
	code := CodeOf(t, false)
	if name, ok := clTypeName(code); ok {
		return name, nil
	}
	if code == CodeString {
		return "constant char *", nil
	}
	return "", unsupported(TargetCl, "type "+t.String())
}
