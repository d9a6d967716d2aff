package sema

import (
	"math"

	"cito/internal/ast"
	"cito/internal/diag"
	"cito/internal/source"
	"cito/internal/symbols"
	"cito/internal/types"
)

// Expr types the expression id and its operands, storing the results in the
// nodes and resolving symbols, members and overloads. It returns nil when
// the type could not be determined; a diagnostic has then been reported.
func (c *Checker) Expr(e *ast.Exprs, id ast.ExprID) *types.Type {
	expr := e.Get(id)
	var ty *types.Type
	switch expr.Kind {
	case ast.ExprLiteral:
		ty = expr.Type
	case ast.ExprSymbol:
		ty = c.symbolExpr(e, id, expr.Pos)
	case ast.ExprMember:
		ty = c.memberExpr(e, id, expr.Pos)
	case ast.ExprCall:
		ty = c.callExpr(e, id, expr.Pos)
	case ast.ExprUnary:
		ty = c.unaryExpr(e, id, expr.Pos)
	case ast.ExprBinary:
		ty = c.binaryExpr(e, id, expr.Pos)
	case ast.ExprSelect:
		ty = c.selectExpr(e, id, expr.Pos)
	case ast.ExprInterpolated:
		for _, part := range e.Interpolated(id).Parts {
			c.Coerce(e.Get(part.Arg).Pos, c.Expr(e, part.Arg), types.Printable)
		}
		ty = c.env.StringStorage
	}
	expr.Type = ty
	return ty
}

func (c *Checker) symbolExpr(e *ast.Exprs, id ast.ExprID, pos source.Pos) *types.Type {
	data := e.Symbol(id)
	symID, ok := c.table.TryLookup(c.scope, data.Name)
	if !ok {
		c.errorf(diag.SemaUnresolvedSymbol, pos, "Symbol %s not found", data.Name)
		return nil
	}
	sym := c.table.Symbol(symID)
	data.Sym, data.ID = symID, sym.ID
	return c.memberType(pos, nil, sym)
}

// receiver types the left side of a member access. A name that resolves to
// a class yields the class for static access and a nil type.
func (c *Checker) receiver(e *ast.Exprs, data *ast.ExprMemberData) (*types.Type, *types.Class, bool) {
	if !data.Left.IsValid() {
		return nil, data.Class, data.Class != nil
	}
	if left := e.Symbol(data.Left); left != nil {
		if symID, ok := c.table.TryLookup(c.scope, left.Name); ok {
			if sym := c.table.Symbol(symID); sym.Kind == symbols.SymbolClass {
				left.Sym, left.ID = symID, sym.ID
				data.Class = sym.Class
				return nil, sym.Class, true
			}
		}
	}
	obj := c.Expr(e, data.Left)
	return obj, nil, obj != nil
}

func (c *Checker) resolveMember(pos source.Pos, obj *types.Type, class *types.Class, name string) (symbols.SymbolID, bool) {
	if class != nil {
		return c.StaticMember(pos, class, name)
	}
	return c.Member(pos, obj, name)
}

func (c *Checker) memberExpr(e *ast.Exprs, id ast.ExprID, pos source.Pos) *types.Type {
	data := e.Member(id)
	obj, class, ok := c.receiver(e, data)
	if !ok {
		return nil
	}
	symID, ok := c.resolveMember(pos, obj, class, data.Name)
	if !ok {
		return nil
	}
	sym := c.table.Symbol(symID)
	data.Sym, data.ID = symID, sym.ID
	return c.memberType(pos, obj, sym)
}

func (c *Checker) callExpr(e *ast.Exprs, id ast.ExprID, pos source.Pos) *types.Type {
	data := e.Call(id)
	args := make([]*types.Type, len(data.Args))
	for i, arg := range data.Args {
		args[i] = c.Expr(e, arg)
	}

	var (
		obj    *types.Type
		method symbols.SymbolID
		setID  func(symbols.SymbolID)
	)
	switch target := e.Get(data.Method); target.Kind {
	case ast.ExprMember:
		m := e.Member(data.Method)
		var class *types.Class
		var ok bool
		if obj, class, ok = c.receiver(e, m); !ok {
			return nil
		}
		if method, ok = c.resolveMember(target.Pos, obj, class, m.Name); !ok {
			return nil
		}
		setID = func(o symbols.SymbolID) { m.Sym, m.ID = o, c.table.Symbol(o).ID }
	case ast.ExprSymbol:
		s := e.Symbol(data.Method)
		var ok bool
		if method, ok = c.table.TryLookup(c.scope, s.Name); !ok {
			c.errorf(diag.SemaUnresolvedSymbol, target.Pos, "Method %s not found", s.Name)
			return nil
		}
		if this, ok := c.table.TryLookup(c.scope, "this"); ok {
			obj = c.table.Symbol(this).Type
		}
		setID = func(o symbols.SymbolID) { s.Sym, s.ID = o, c.table.Symbol(o).ID }
	default:
		c.errorf(diag.SemaNotApplicable, target.Pos, "Expression is not a method")
		return nil
	}

	if kind := c.table.Symbol(method).Kind; kind != symbols.SymbolMethod && kind != symbols.SymbolMethodGroup {
		c.errorf(diag.SemaNotApplicable, pos, "%s is not a method", c.table.Symbol(method).Name)
		return nil
	}
	if obj != nil && c.isStaticOnly(method) {
		// static methods of the current class are called without this
		obj = nil
	}
	ret, overload, ok := c.Call(pos, obj, method, args)
	if overload.IsValid() {
		setID(overload)
		e.Get(data.Method).Type = ret
	}
	if !ok {
		return nil
	}
	return ret
}

func (c *Checker) isStaticOnly(method symbols.SymbolID) bool {
	for _, o := range c.table.Overloads(method) {
		if !c.table.Symbol(o).IsStatic() {
			return false
		}
	}
	return true
}

func (c *Checker) unaryExpr(e *ast.Exprs, id ast.ExprID, pos source.Pos) *types.Type {
	data := e.Unary(id)
	x := c.Expr(e, data.X)
	if x == nil {
		return nil
	}
	switch data.Op {
	case ast.ExprUnaryNot:
		if !c.Coerce(pos, x, types.Bool) {
			return nil
		}
		return types.Bool
	case ast.ExprUnaryNeg:
		if !x.IsNumeric() {
			c.errorf(diag.SemaTypeMismatch, pos, "Cannot negate %s", x)
			return nil
		}
		if x.Kind() == types.KindRange && x.Min() != math.MinInt32 {
			return types.NewRange(-x.Max(), -x.Min())
		}
		return types.PromoteNumericTypes(x, types.Int)
	default:
		if !x.IsInteger() {
			c.errorf(diag.SemaTypeMismatch, pos, "Cannot complement %s", x)
			return nil
		}
		if x.Kind() == types.KindRange {
			return types.NewRange(^x.Max(), ^x.Min())
		}
		return x
	}
}

func (c *Checker) binaryExpr(e *ast.Exprs, id ast.ExprID, pos source.Pos) *types.Type {
	data := e.Binary(id)
	left := c.Expr(e, data.Left)
	right := c.Expr(e, data.Right)
	if left == nil || right == nil {
		return nil
	}
	switch op := data.Op; {
	case op == ast.ExprBinaryAssign:
		if !c.Coerce(pos, right, left) {
			return nil
		}
		return left
	case op == ast.ExprBinaryCondAnd || op == ast.ExprBinaryCondOr:
		okLeft := c.Coerce(pos, left, types.Bool)
		if !c.Coerce(pos, right, types.Bool) || !okLeft {
			return nil
		}
		return types.Bool
	case op == ast.ExprBinaryEq || op == ast.ExprBinaryNotEq:
		if !left.IsAssignableFrom(right) && !right.IsAssignableFrom(left) {
			c.errorf(diag.SemaTypeMismatch, pos, "Cannot compare %s with %s", left, right)
			return nil
		}
		return types.Bool
	case op.IsRelational():
		if !left.IsNumeric() || !right.IsNumeric() {
			c.errorf(diag.SemaTypeMismatch, pos, "Cannot compare %s with %s", left, right)
			return nil
		}
		return types.Bool
	case op == ast.ExprBinaryAdd && (left.IsString() || right.IsString()):
		okLeft := c.Coerce(pos, left, types.Printable)
		if !c.Coerce(pos, right, types.Printable) || !okLeft {
			return nil
		}
		return c.env.StringStorage
	case (op == ast.ExprBinaryAnd || op == ast.ExprBinaryOr || op == ast.ExprBinaryXor) && left == types.Bool && right == types.Bool:
		return types.Bool
	default:
		return c.arithmetic(pos, op, left, right)
	}
}

func (c *Checker) arithmetic(pos source.Pos, op ast.ExprBinaryOp, left, right *types.Type) *types.Type {
	integral := op >= ast.ExprBinaryShl
	if !left.IsNumeric() || !right.IsNumeric() || (integral && (!left.IsInteger() || !right.IsInteger())) {
		c.errorf(diag.SemaTypeMismatch, pos, "Invalid operands %s %s %s", left, op, right)
		return nil
	}
	switch op {
	case ast.ExprBinaryShl, ast.ExprBinaryShr:
		return types.PromoteIntegerTypes(left, types.Int)
	case ast.ExprBinaryAnd:
		// masking with a non-negative range bounds the result
		if left.Kind() == types.KindRange && right.Kind() == types.KindRange && left.Min() >= 0 && right.Min() >= 0 {
			return types.NewRange(0, min(left.Max(), right.Max()))
		}
	}
	return types.PromoteNumericTypes(left, right)
}

func (c *Checker) selectExpr(e *ast.Exprs, id ast.ExprID, pos source.Pos) *types.Type {
	data := e.Select(id)
	cond := c.Expr(e, data.Cond)
	onTrue := c.Expr(e, data.OnTrue)
	onFalse := c.Expr(e, data.OnFalse)
	c.Coerce(pos, cond, types.Bool)
	if onTrue == nil || onFalse == nil {
		return nil
	}
	switch {
	case onTrue.Kind() == types.KindRange && onFalse.Kind() == types.KindRange:
		return types.Union(onTrue, onFalse)
	case onTrue.IsNumeric() && onFalse.IsNumeric():
		return types.PromoteNumericTypes(onTrue, onFalse)
	case onTrue.IsAssignableFrom(onFalse):
		return onTrue
	case onFalse.IsAssignableFrom(onTrue):
		return onFalse
	}
	c.errorf(diag.SemaTypeMismatch, pos, "Incompatible types %s and %s", onTrue, onFalse)
	return nil
}
