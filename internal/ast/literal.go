package ast

import (
	"math"
	"strconv"
	"strings"

	"cito/internal/source"
	"cito/internal/types"
)

// LiteralKind tags a literal constant.
type LiteralKind uint8

const (
	LiteralNull LiteralKind = iota
	LiteralFalse
	LiteralTrue
	LiteralLong
	LiteralChar
	LiteralDouble
	LiteralString
)

// ExprLiteralData holds a constant. Long carries integer and char values.
type ExprLiteralData struct {
	Kind   LiteralKind
	Long   int64
	Double float64
	Str    string
}

func (e *Exprs) newLiteral(pos source.Pos, ty *types.Type, lit ExprLiteralData) ExprID {
	return e.new(ExprLiteral, pos, ty, e.Literals.Allocate(lit))
}

func (e *Exprs) NewLiteralNull(pos source.Pos) ExprID {
	return e.newLiteral(pos, types.Null, ExprLiteralData{Kind: LiteralNull})
}

func (e *Exprs) NewLiteralBool(pos source.Pos, v bool) ExprID {
	kind := LiteralFalse
	if v {
		kind = LiteralTrue
	}
	return e.newLiteral(pos, types.Bool, ExprLiteralData{Kind: kind})
}

// NewLiteralLong types an integer constant as the single-value range of v,
// or as long when v does not fit an int.
func (e *Exprs) NewLiteralLong(pos source.Pos, v int64) ExprID {
	return e.newLiteral(pos, types.RangeForValue(v), ExprLiteralData{Kind: LiteralLong, Long: v})
}

// NewLiteralChar types a character constant as the single-value range of its
// code unit.
func (e *Exprs) NewLiteralChar(pos source.Pos, v rune) ExprID {
	return e.newLiteral(pos, types.NewRange(v, v), ExprLiteralData{Kind: LiteralChar, Long: int64(v)})
}

func (e *Exprs) NewLiteralDouble(pos source.Pos, v float64) ExprID {
	return e.newLiteral(pos, types.Double, ExprLiteralData{Kind: LiteralDouble, Double: v})
}

func (e *Exprs) NewLiteralString(pos source.Pos, s string) ExprID {
	return e.newLiteral(pos, e.StringType, ExprLiteralData{Kind: LiteralString, Str: s})
}

// Literal returns the payload of a literal expression, or nil.
func (e *Exprs) Literal(id ExprID) *ExprLiteralData {
	if expr := e.Get(id); expr != nil && expr.Kind == ExprLiteral {
		return e.Literals.Get(uint32(expr.Payload))
	}
	return nil
}

// IsDefaultValue reports literals equal to the zero value of their type, so
// an initializer can be omitted. Negative zero is not a default.
func (lit *ExprLiteralData) IsDefaultValue() bool {
	switch lit.Kind {
	case LiteralNull, LiteralFalse:
		return true
	case LiteralLong, LiteralChar:
		return lit.Long == 0
	case LiteralDouble:
		return math.Float64bits(lit.Double) == 0
	default:
		return false
	}
}

// LiteralString is the value as it appears inside a string, e.g. when an
// interpolated argument is constant folded.
func (lit *ExprLiteralData) LiteralString() string {
	switch lit.Kind {
	case LiteralNull:
		return "null"
	case LiteralFalse:
		return "false"
	case LiteralTrue:
		return "true"
	case LiteralLong:
		return strconv.FormatInt(lit.Long, 10)
	case LiteralChar:
		return string(rune(lit.Long))
	case LiteralDouble:
		return strconv.FormatFloat(lit.Double, 'g', -1, 64)
	default:
		return lit.Str
	}
}

// String renders the literal as Ci source.
func (lit *ExprLiteralData) String() string {
	switch lit.Kind {
	case LiteralChar:
		switch lit.Long {
		case '\n':
			return `'\n'`
		case '\r':
			return `'\r'`
		case '\t':
			return `'\t'`
		case '\\':
			return `'\\'`
		case '\'':
			return `'\''`
		default:
			return "'" + string(rune(lit.Long)) + "'"
		}
	case LiteralString:
		return `"` + escapeString(lit.Str) + `"`
	default:
		return lit.LiteralString()
	}
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeString(s string) string { return stringEscaper.Replace(s) }

// EscapeInterpolated escapes literal text of an interpolated string, where
// braces are doubled.
func EscapeInterpolated(s string) string {
	s = escapeString(s)
	s = strings.ReplaceAll(s, "{", "{{")
	return strings.ReplaceAll(s, "}", "}}")
}
