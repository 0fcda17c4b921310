package interp

import (
	"strings"

	"github.com/pkg/errors"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokAssign // :=
	tokColon
	tokSemi
	tokComma
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokDot
	tokDotDot
	tokArrow // =>
	tokAt
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokEq
	tokNeq
	tokLt
	tokGt
	tokLte
	tokGte
)

type token struct {
	typ  tokenType
	text string
	line int
}

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token{typ: tokEOF, line: l.line}, nil
	}

	line := l.line
	c := l.src[l.pos]

	switch {
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return token{typ: tokIdent, text: l.src[start:l.pos], line: line}, nil

	case isDigit(c):
		return l.lexNumber(line)

	case c == '"':
		return l.lexString(line)
	}

	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	switch two {
	case ":=":
		l.pos += 2
		return token{typ: tokAssign, text: two, line: line}, nil
	case "..":
		l.pos += 2
		return token{typ: tokDotDot, text: two, line: line}, nil
	case "=>":
		l.pos += 2
		return token{typ: tokArrow, text: two, line: line}, nil
	case "==":
		l.pos += 2
		return token{typ: tokEq, text: two, line: line}, nil
	case "!=":
		l.pos += 2
		return token{typ: tokNeq, text: two, line: line}, nil
	case "<=":
		l.pos += 2
		return token{typ: tokLte, text: two, line: line}, nil
	case ">=":
		l.pos += 2
		return token{typ: tokGte, text: two, line: line}, nil
	}

	single := map[byte]tokenType{
		':': tokColon,
		';': tokSemi,
		',': tokComma,
		'(': tokLParen,
		')': tokRParen,
		'[': tokLBracket,
		']': tokRBracket,
		'.': tokDot,
		'@': tokAt,
		'+': tokPlus,
		'-': tokMinus,
		'*': tokStar,
		'/': tokSlash,
		'%': tokPercent,
		'<': tokLt,
		'>': tokGt,
	}
	if typ, ok := single[c]; ok {
		l.pos++
		return token{typ: typ, text: string(c), line: line}, nil
	}

	return token{}, errors.Errorf("line %d: unexpected character %q", line, string(c))
}

func (l *lexer) lexNumber(line int) (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	// A single dot followed by a digit continues the number; a double dot is
	// a range operator and belongs to the parser.
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.peekAt(1) != '.' && isDigit(l.peekAt(1)) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		return token{typ: tokFloat, text: l.src[start:l.pos], line: line}, nil
	}
	return token{typ: tokInt, text: l.src[start:l.pos], line: line}, nil
}

func (l *lexer) lexString(line int) (token, error) {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{typ: tokString, text: sb.String(), line: line}, nil
		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return token{}, errors.Errorf("line %d: unterminated escape", line)
			}
			switch l.src[l.pos] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				return token{}, errors.Errorf("line %d: unknown escape \\%s", line, string(l.src[l.pos]))
			}
			l.pos++
		case '\n':
			return token{}, errors.Errorf("line %d: unterminated string", line)
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return token{}, errors.Errorf("line %d: unterminated string", line)
}
