package interp

import (
	"strconv"

	"github.com/pkg/errors"
)

const maxParseDepth = 200

// Parse turns source text into a Program. Failures are host-level errors;
// they never surface as script outcomes.
func Parse(source string) (*Program, error) {
	lx := newLexer(source)
	var toks []token
	for {
		t, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.typ == tokEOF {
			break
		}
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks  []token
	pos   int
	depth int
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) peek() token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	t := p.cur()
	if t.typ != typ {
		return token{}, errors.Errorf("line %d: expected %s, got %q", t.line, what, t.text)
	}
	return p.advance(), nil
}

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for p.cur().typ != tokEOF {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, st)
		// A semicolon terminates each statement; the final one may omit it.
		switch p.cur().typ {
		case tokSemi:
			p.advance()
		case tokEOF:
		default:
			t := p.cur()
			return nil, errors.Errorf("line %d: expected ';', got %q", t.line, t.text)
		}
	}
	return prog, nil
}

func (p *parser) parseStmt() (Stmt, error) {
	t := p.cur()

	if t.typ == tokAt {
		return p.parseDirective()
	}

	if t.typ == tokIdent {
		switch t.text {
		case "return":
			p.advance()
			if p.cur().typ == tokSemi || p.cur().typ == tokEOF {
				return &ReturnStmt{Line: t.line}, nil
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &ReturnStmt{Value: e, Line: t.line}, nil
		case "raise":
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &RaiseStmt{Value: e, Line: t.line}, nil
		}
		if p.peek().typ == tokAssign {
			p.advance()
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &AssignStmt{Name: t.text, Value: e, Line: t.line}, nil
		}
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Value: e, Line: t.line}, nil
}

func (p *parser) parseDirective() (Stmt, error) {
	at := p.advance() // '@'
	kw, err := p.expect(tokIdent, "directive name")
	if err != nil {
		return nil, err
	}
	switch kw.text {
	case "required":
		name, err := p.expect(tokIdent, "binding name")
		if err != nil {
			return nil, err
		}
		return &RequireStmt{Name: name.text, Line: at.line}, nil
	case "import":
		name, err := p.expect(tokIdent, "binding name")
		if err != nil {
			return nil, err
		}
		path, err := p.expect(tokString, "import path")
		if err != nil {
			return nil, err
		}
		return &ImportStmt{Name: name.text, Path: path.text, Line: at.line}, nil
	default:
		return nil, errors.Errorf("line %d: unknown directive @%s", kw.line, kw.text)
	}
}

func (p *parser) parseExpr() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxParseDepth {
		return nil, errors.Errorf("line %d: expression nests too deeply", p.cur().line)
	}
	return p.parsePair()
}

// key => value, right associative, lowest precedence.
func (p *parser) parsePair() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.cur().typ == tokArrow {
		p.advance()
		right, err := p.parsePair()
		if err != nil {
			return nil, err
		}
		return &PairExpr{Key: left, Val: right}, nil
	}
	return left, nil
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.cur().typ {
		case tokEq, tokNeq, tokLt, tokGt, tokLte, tokGte:
			op = p.cur().text
		default:
			return left, nil
		}
		line := p.advance().line
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
}

func (p *parser) parseRange() (Expr, error) {
	lo, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.cur().typ == tokDotDot {
		p.advance()
		hi, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &RangeExpr{Lo: lo, Hi: hi}, nil
	}
	return lo, nil
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur().typ == tokPlus || p.cur().typ == tokMinus {
		t := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: t.text, Left: left, Right: right, Line: t.line}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().typ == tokStar || p.cur().typ == tokSlash || p.cur().typ == tokPercent {
		t := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: t.text, Left: left, Right: right, Line: t.line}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.cur().typ == tokMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "-", Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().typ {
		case tokDot:
			line := p.advance().line
			name, err := p.expect(tokIdent, "member name")
			if err != nil {
				return nil, err
			}
			e = &MemberExpr{Recv: e, Name: name.text, Line: line}
		case tokLParen:
			line := p.advance().line
			args, err := p.parseElems(tokRParen)
			if err != nil {
				return nil, err
			}
			e = &CallExpr{Callee: e, Args: args, Line: line}
		default:
			return e, nil
		}
	}
}

// parseElems parses comma-separated elements up to the closing token. An
// identifier followed by ':' is a named element.
func (p *parser) parseElems(until tokenType) ([]Expr, error) {
	var elems []Expr
	for p.cur().typ != until {
		var e Expr
		var err error
		if p.cur().typ == tokIdent && p.peek().typ == tokColon {
			name := p.advance().text
			p.advance() // ':'
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			e = &NamedExpr{Name: name, Val: inner}
		} else {
			e, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		elems = append(elems, e)
		if p.cur().typ == tokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(until, "closing delimiter"); err != nil {
		return nil, err
	}
	return elems, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.cur()
	switch t.typ {
	case tokInt:
		p.advance()
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: bad integer literal", t.line)
		}
		return &IntLit{Value: n}, nil
	case tokFloat:
		p.advance()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: bad float literal", t.line)
		}
		return &FloatLit{Value: f}, nil
	case tokString:
		p.advance()
		return &StringLit{Value: t.text}, nil
	case tokIdent:
		p.advance()
		switch t.text {
		case "true":
			return &BoolLit{Value: true}, nil
		case "false":
			return &BoolLit{Value: false}, nil
		case "null":
			return &NullLit{}, nil
		}
		return &Ident{Name: t.text}, nil
	case tokLParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case tokLBracket:
		p.advance()
		elems, err := p.parseElems(tokRBracket)
		if err != nil {
			return nil, err
		}
		return &TupleLit{Elems: elems}, nil
	}
	return nil, errors.Errorf("line %d: unexpected token %q", t.line, t.text)
}
