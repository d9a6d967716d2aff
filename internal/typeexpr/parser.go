package typeexpr

import (
	"fmt"
	"math"
	"strconv"

	"cito/internal/diag"
	"cito/internal/symbols"
	"cito/internal/system"
	"cito/internal/types"
)

// Error is a syntax or name error in a type description.
type Error struct {
	Code diag.Code
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Col, e.Msg)
}

// Parser resolves type descriptions in one scope.
type Parser struct {
	env   *system.Env
	table *symbols.Table
	scope symbols.ScopeID
}

// New parses against the names every program sees.
func New(env *system.Env) *Parser {
	return &Parser{env: env, table: env.Table, scope: env.Scope}
}

// NewInScope parses against scope of table, which is usually a program
// table forked from env.
func NewInScope(env *system.Env, table *symbols.Table, scope symbols.ScopeID) *Parser {
	return &Parser{env: env, table: table, scope: scope}
}

// Parse reads a complete type description. Errors are *Error.
func (p *Parser) Parse(text string) (*types.Type, error) {
	st := &state{Parser: p, lx: newLexer(text)}
	st.tok = st.lx.next()
	ty, err := st.parseType()
	if err != nil {
		return nil, err
	}
	if st.tok.kind != tokEOF {
		return nil, st.unexpected("end of input")
	}
	return ty, nil
}

// MustParse is Parse for descriptions known to be valid, such as test
// fixtures.
func (p *Parser) MustParse(text string) *types.Type {
	ty, err := p.Parse(text)
	if err != nil {
		panic(fmt.Errorf("typeexpr: %q: %w", text, err))
	}
	return ty
}

type state struct {
	*Parser
	lx  *lexer
	tok token
}

func (st *state) errorf(code diag.Code, col int, format string, args ...any) *Error {
	return &Error{Code: code, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (st *state) unexpected(want string) *Error {
	got := st.tok.kind.String()
	if st.tok.kind == tokIdent || st.tok.kind == tokNumber || st.tok.kind == tokInvalid {
		got = fmt.Sprintf("%q", st.tok.text)
	}
	return st.errorf(diag.SynUnexpectedToken, st.tok.col, "expected %s, got %s", want, got)
}

func (st *state) expect(kind tokenKind) (token, error) {
	tok := st.tok
	if tok.kind != kind {
		return tok, st.unexpected(kind.String())
	}
	st.tok = st.lx.next()
	return tok, nil
}

func (st *state) accept(kind tokenKind) bool {
	if st.tok.kind != kind {
		return false
	}
	st.tok = st.lx.next()
	return true
}

type arraySuffix struct {
	col     int
	length  int // -1 for a reference
	qual    types.Qualifier
	storage bool
}

func (st *state) parseType() (*types.Type, error) {
	base, err := st.parseBase()
	if err != nil {
		return nil, err
	}
	var suffixes []arraySuffix
	for st.tok.kind == tokLBracket {
		s, err := st.parseArraySuffix()
		if err != nil {
			return nil, err
		}
		suffixes = append(suffixes, s)
	}
	// The first suffix is the outermost array.
	ty := base
	for i := len(suffixes) - 1; i >= 0; i-- {
		s := suffixes[i]
		if s.storage {
			ty = st.env.NewArrayStorage(ty, s.length)
		} else {
			ty = st.env.NewArrayPtr(s.qual, ty)
		}
	}
	return ty, nil
}

func (st *state) parseArraySuffix() (arraySuffix, error) {
	s := arraySuffix{col: st.tok.col, length: -1}
	st.tok = st.lx.next() // [
	if st.tok.kind == tokNumber {
		n, err := st.parseNumber()
		if err != nil {
			return s, err
		}
		if n < 0 || n > math.MaxInt32 {
			return s, st.errorf(diag.SynBadArrayLength, s.col, "invalid array length %d", n)
		}
		s.length = int(n)
		s.storage = true
	}
	if _, err := st.expect(tokRBracket); err != nil {
		return s, err
	}
	if s.storage {
		return s, nil
	}
	switch {
	case st.accept(tokBang):
		s.qual = types.QualReadWrite
	case st.accept(tokHash):
		s.qual = types.QualDynamic
	default:
		s.qual = types.QualPointer
	}
	return s, nil
}

func (st *state) parseNumber() (int64, error) {
	tok, err := st.expect(tokNumber)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseInt(tok.text, 10, 64)
	if perr != nil {
		return 0, st.errorf(diag.SynUnexpectedToken, tok.col, "invalid number %q", tok.text)
	}
	return n, nil
}

func (st *state) parseBase() (*types.Type, error) {
	switch st.tok.kind {
	case tokLParen:
		return st.parseRange()
	case tokNumber:
		col := st.tok.col
		n, err := st.parseNumber()
		if err != nil {
			return nil, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, st.errorf(diag.SynBadRange, col, "%d does not fit a range", n)
		}
		return types.NewRange(int32(n), int32(n)), nil
	case tokIdent:
		return st.parseNamed()
	default:
		return nil, st.unexpected("type")
	}
}

func (st *state) parseRange() (*types.Type, error) {
	col := st.tok.col
	st.tok = st.lx.next() // (
	lo, err := st.parseNumber()
	if err != nil {
		return nil, err
	}
	if _, err := st.expect(tokDotDot); err != nil {
		return nil, err
	}
	hi, err := st.parseNumber()
	if err != nil {
		return nil, err
	}
	if _, err := st.expect(tokRParen); err != nil {
		return nil, err
	}
	switch {
	case lo < math.MinInt32 || hi > math.MaxInt32:
		return nil, st.errorf(diag.SynBadRange, col, "range (%d .. %d) exceeds int", lo, hi)
	case lo > hi:
		return nil, st.errorf(diag.SynBadRange, col, "range (%d .. %d) is empty", lo, hi)
	}
	return types.NewRange(int32(lo), int32(hi)), nil
}

func (st *state) parseNamed() (*types.Type, error) {
	name := st.tok
	st.tok = st.lx.next()

	switch name.text {
	case "null":
		return types.Null, nil
	case "void":
		return types.Void, nil
	}
	id, ok := st.table.TryLookup(st.scope, name.text)
	if !ok {
		return nil, st.errorf(diag.SynUnknownType, name.col, "unknown type %s", name.text)
	}
	sym := st.table.Symbol(id)
	switch sym.Kind {
	case symbols.SymbolType, symbols.SymbolEnum:
		if st.tok.kind == tokLess {
			return nil, st.errorf(diag.SynTypeArgCount, name.col, "%s takes no type arguments", name.text)
		}
		return sym.Type, nil
	case symbols.SymbolClass:
	default:
		return nil, st.errorf(diag.SynUnknownType, name.col, "%s is a %s, not a type", name.text, sym.Kind)
	}

	class := sym.Class
	var args []*types.Type
	if st.accept(tokLess) {
		for {
			arg, err := st.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !st.accept(tokComma) {
				break
			}
		}
		if _, err := st.expect(tokGreater); err != nil {
			return nil, err
		}
	}
	if len(args) != class.TypeParams {
		return nil, st.errorf(diag.SynTypeArgCount, name.col, "%s takes %d type arguments, got %d",
			class.Name, class.TypeParams, len(args))
	}

	q := types.QualPointer
	switch {
	case st.accept(tokBang):
		q = types.QualReadWrite
	case st.accept(tokHash):
		q = types.QualDynamic
	case st.tok.kind == tokLParen:
		st.tok = st.lx.next()
		if _, err := st.expect(tokRParen); err != nil {
			return nil, err
		}
		q = types.QualStorage
	}
	if class == st.env.StringClass {
		switch q {
		case types.QualPointer:
			return st.env.StringPtr, nil
		case types.QualStorage:
			return st.env.StringStorage, nil
		}
	}
	return types.NewClassType(q, class, args...), nil
}
