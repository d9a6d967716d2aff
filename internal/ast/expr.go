package ast

import (
	"fmt"

	"cito/internal/intrinsic"
	"cito/internal/source"
	"cito/internal/symbols"
	"cito/internal/types"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprLiteral is a null, bool, integer, char, double or string constant.
	ExprLiteral ExprKind = iota
	// ExprSymbol references a name in scope.
	ExprSymbol
	// ExprMember is member access: Left.Name.
	ExprMember
	// ExprCall invokes a method, optionally through an object.
	ExprCall
	ExprUnary
	ExprBinary
	// ExprSelect is the conditional operator: Cond ? OnTrue : OnFalse.
	ExprSelect
	// ExprInterpolated is an interpolated string: $"x={x}".
	ExprInterpolated
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "literal"
	case ExprSymbol:
		return "symbol"
	case ExprMember:
		return "member"
	case ExprCall:
		return "call"
	case ExprUnary:
		return "unary"
	case ExprBinary:
		return "binary"
	case ExprSelect:
		return "select"
	case ExprInterpolated:
		return "interpolated"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// Expr is an expression node. Type is filled in by semantic analysis.
type Expr struct {
	Kind    ExprKind
	Pos     source.Pos
	Type    *types.Type
	Payload PayloadID
}

// ExprUnaryOp enumerates prefix operators.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota
	ExprUnaryNot
	ExprUnaryComplement
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "!"
	case ExprUnaryComplement:
		return "~"
	default:
		return "?"
	}
}

// ExprBinaryOp enumerates infix operators.
type ExprBinaryOp uint8

const (
	ExprBinaryMul ExprBinaryOp = iota
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryAdd
	ExprBinarySub
	ExprBinaryShl
	ExprBinaryShr
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryAnd
	ExprBinaryXor
	ExprBinaryOr
	ExprBinaryCondAnd
	ExprBinaryCondOr
	ExprBinaryAssign
)

var binaryOps = [...]struct {
	text     string
	priority Priority
}{
	ExprBinaryMul:       {"*", PriorityMul},
	ExprBinaryDiv:       {"/", PriorityMul},
	ExprBinaryMod:       {"%", PriorityMul},
	ExprBinaryAdd:       {"+", PriorityAdd},
	ExprBinarySub:       {"-", PriorityAdd},
	ExprBinaryShl:       {"<<", PriorityShift},
	ExprBinaryShr:       {">>", PriorityShift},
	ExprBinaryLess:      {"<", PriorityRel},
	ExprBinaryLessEq:    {"<=", PriorityRel},
	ExprBinaryGreater:   {">", PriorityRel},
	ExprBinaryGreaterEq: {">=", PriorityRel},
	ExprBinaryEq:        {"==", PriorityEquality},
	ExprBinaryNotEq:     {"!=", PriorityEquality},
	ExprBinaryAnd:       {"&", PriorityAnd},
	ExprBinaryXor:       {"^", PriorityXor},
	ExprBinaryOr:        {"|", PriorityOr},
	ExprBinaryCondAnd:   {"&&", PriorityCondAnd},
	ExprBinaryCondOr:    {"||", PriorityCondOr},
	ExprBinaryAssign:    {"=", PriorityAssign},
}

func (op ExprBinaryOp) String() string {
	if int(op) >= len(binaryOps) {
		return "?"
	}
	return binaryOps[op].text
}

// Priority is the binding strength of op.
func (op ExprBinaryOp) Priority() Priority {
	if int(op) >= len(binaryOps) {
		return PriorityPrimary
	}
	return binaryOps[op].priority
}

// RightAssoc reports operators that group to the right.
func (op ExprBinaryOp) RightAssoc() bool { return op == ExprBinaryAssign }

// IsRelational reports comparison operators; they yield bool.
func (op ExprBinaryOp) IsRelational() bool {
	return op >= ExprBinaryLess && op <= ExprBinaryNotEq
}

// ExprSymbolData references a declaration by name. Sym is resolved by
// semantic analysis.
type ExprSymbolData struct {
	Name string
	Sym  symbols.SymbolID
	ID   intrinsic.ID
}

// ExprMemberData is Left.Name. Left is NoExprID for a static member named
// through its class, in which case Class holds the class.
type ExprMemberData struct {
	Left  ExprID
	Class *types.Class
	Name  string
	Sym   symbols.SymbolID
	ID    intrinsic.ID
}

// ExprCallData invokes Method, a symbol or member expression.
type ExprCallData struct {
	Method ExprID
	Args   []ExprID
}

type ExprUnaryData struct {
	Op ExprUnaryOp
	X  ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprSelectData struct {
	Cond    ExprID
	OnTrue  ExprID
	OnFalse ExprID
}

// InterpolatedPart is literal text followed by an argument.
type InterpolatedPart struct {
	Prefix string
	Arg    ExprID
}

type ExprInterpolatedData struct {
	Parts  []InterpolatedPart
	Suffix string
}
