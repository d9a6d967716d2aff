package typeexpr

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokLess
	tokGreater
	tokComma
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokBang
	tokHash
	tokDotDot
	tokInvalid
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "name"
	case tokNumber:
		return "number"
	case tokLess:
		return "'<'"
	case tokGreater:
		return "'>'"
	case tokComma:
		return "','"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokBang:
		return "'!'"
	case tokHash:
		return "'#'"
	case tokDotDot:
		return "'..'"
	default:
		return "invalid character"
	}
}

type token struct {
	kind tokenKind
	text string
	col  int // 1-based, in runes
}

type lexer struct {
	src string
	off int
	col int
}

func newLexer(src string) *lexer {
	return &lexer{src: norm.NFC.String(src), col: 1}
}

func (lx *lexer) peekRune() rune {
	if lx.off >= len(lx.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.off:])
	return r
}

func (lx *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(lx.src[lx.off:])
	lx.off += size
	lx.col++
	return r
}

func (lx *lexer) next() token {
	for lx.off < len(lx.src) && unicode.IsSpace(lx.peekRune()) {
		lx.advance()
	}
	if lx.off >= len(lx.src) {
		return token{kind: tokEOF, col: lx.col}
	}
	start, col := lx.off, lx.col
	r := lx.advance()
	tok := token{col: col}
	switch {
	case r == '_' || unicode.IsLetter(r):
		for lx.off < len(lx.src) {
			if c := lx.peekRune(); c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
				break
			}
			lx.advance()
		}
		tok.kind = tokIdent
	case r == '-' || isDigit(r):
		for lx.off < len(lx.src) && isDigit(lx.peekRune()) {
			lx.advance()
		}
		tok.kind = tokNumber
		if r == '-' && lx.off-start == 1 {
			tok.kind = tokInvalid
		}
	case r == '.' && lx.peekRune() == '.':
		lx.advance()
		tok.kind = tokDotDot
	default:
		tok.kind = punct(r)
	}
	tok.text = lx.src[start:lx.off]
	return tok
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func punct(r rune) tokenKind {
	switch r {
	case '<':
		return tokLess
	case '>':
		return tokGreater
	case ',':
		return tokComma
	case '(':
		return tokLParen
	case ')':
		return tokRParen
	case '[':
		return tokLBracket
	case ']':
		return tokRBracket
	case '!':
		return tokBang
	case '#':
		return tokHash
	default:
		return tokInvalid
	}
}
