package maple

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
)

// Parse parses source text into a Script.
func Parse(src string, opt *ParseOptions) (*Script, error) {
	toks, err := Tokenize(src, opt)
	if err != nil {
		return nil, err
	}

	return ParseTokens(toks)
}

// ParseTokens parses a token sequence produced by Tokenize into a Script.
func ParseTokens(toks []Token) (*Script, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokEOF {
		return nil, &Error{Kind: SyntaxError, Msg: "token sequence must end with EOF"}
	}

	p := &parser{toks: toks}
	return p.parseScript()
}

// parser represents a recursive-descent parser over a token sequence.
type parser struct {
	toks []Token // Token sequence ending with EOF
	off  int     // Offset of the current token
}

// peek returns the current token without consuming it.
func (p *parser) peek() Token {
	return p.toks[p.off]
}

// next consumes and returns the current token. EOF is never consumed.
func (p *parser) next() Token {
	tok := p.toks[p.off]
	if tok.Kind != TokEOF {
		p.off++
	}

	return tok
}

// expect consumes a token of kind k or fails.
func (p *parser) expect(k TokenKind, format string, args ...any) (Token, error) {
	tok := p.peek()
	if tok.Kind != k {
		return tok, p.errorf(tok, format, args...)
	}

	return p.next(), nil
}

// parseScript parses statements separated by ';' with an optional trailing ';'.
func (p *parser) parseScript() (*Script, error) {
	s := &Script{pos: posOf(p.peek())}
	for {
		stmt, err := p.parseLogic()
		if err != nil {
			return nil, err
		}
		s.Stmts = append(s.Stmts, stmt)

		if p.peek().Kind != TokSemicolon {
			break
		}
		p.next()

		// A trailing ';' directly before EOF ends the script.
		if p.peek().Kind == TokEOF {
			break
		}
	}

	if tok := p.peek(); tok.Kind != TokEOF {
		return nil, p.errorf(tok, "unexpected %s after end of statement", describe(tok))
	}

	return s, nil
}

// binaryLevel folds operand (op operand)* into left-associative BinaryOp nodes.
func (p *parser) binaryLevel(operand func() (Node, error), ops ...TokenKind) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for slices.Contains(ops, p.peek().Kind) {
		op := p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}

		line, col := left.Pos()
		left = &BinaryOp{Left: left, Op: op, Right: right, pos: pos{Line: line, Col: col}}
	}

	return left, nil
}

// parseLogic parses && and ||.
func (p *parser) parseLogic() (Node, error) {
	return p.binaryLevel(p.parseComp, TokAnd, TokOr)
}

// parseComp parses comparisons.
func (p *parser) parseComp() (Node, error) {
	return p.binaryLevel(p.parseExpr, TokEq, TokNe, TokGt, TokGe, TokLt, TokLe)
}

// parseExpr parses + and -.
func (p *parser) parseExpr() (Node, error) {
	return p.binaryLevel(p.parseTerm, TokPlus, TokMinus)
}

// parseTerm parses *, / and %.
func (p *parser) parseTerm() (Node, error) {
	return p.binaryLevel(p.parsePower, TokMul, TokDiv, TokMod)
}

// parsePower parses ** and ***.
func (p *parser) parsePower() (Node, error) {
	return p.binaryLevel(p.parseFactor, TokPow, TokTetr)
}

// parseFactor parses a primary expression followed by its postfix chain.
func (p *parser) parseFactor() (Node, error) {
	tok := p.peek()

	var (
		n   Node
		err error
	)
	switch tok.Kind {
	case TokInt:
		x, ok := tok.Val.(*big.Int)
		if !ok || x == nil {
			return nil, p.malformed(tok)
		}
		p.next()
		n = &Number{IsInt: true, Int: x, pos: posOf(tok)}
	case TokFloat:
		f, ok := tok.Val.(float64)
		if !ok {
			return nil, p.malformed(tok)
		}
		p.next()
		n = &Number{Float: f, pos: posOf(tok)}
	case TokString:
		s, ok := tok.Val.(string)
		if !ok {
			return nil, p.malformed(tok)
		}
		p.next()
		n = &String{Value: s, pos: posOf(tok)}
	case TokBoolean:
		b, ok := tok.Val.(bool)
		if !ok {
			return nil, p.malformed(tok)
		}
		p.next()
		n = &Boolean{Value: b, pos: posOf(tok)}
	case TokNamespace:
		p.next()
		n = &Namespace{Name: tok.Lit, pos: posOf(tok)}

	case TokNot:
		p.next()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		// The operand already carries its own postfix chain.
		return &Negation{X: x, pos: posOf(tok)}, nil

	case TokLBrace:
		n, err = p.parseArray()
	case TokAbs:
		n, err = p.parseAbs()
	case TokLParen:
		p.next()
		n, err = p.parseLogic()
		if err == nil {
			_, err = p.expect(TokRParen, "expected `)`")
		}

	case TokKeyword:
		return nil, p.errorf(tok, "keyword %q is not supported in expressions", tok.Lit)
	default:
		return nil, p.errorf(tok, "expected a STRING, BOOLEAN, INT or FLOAT object, got %s", describe(tok))
	}
	if err != nil {
		return nil, err
	}

	return p.parsePostfix(n)
}

// parseArray parses {a, b, ...}.
func (p *parser) parseArray() (Node, error) {
	open := p.next()
	elems, err := p.parseList(TokRBrace, "array elements", "`}`")
	if err != nil {
		return nil, err
	}

	return &Array{Elems: elems, pos: posOf(open)}, nil
}

// parseAbs parses |expr|.
func (p *parser) parseAbs() (Node, error) {
	open := p.next()
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokAbs, "expected `|` as a finish for the Absolute Value Operation"); err != nil {
		return nil, err
	}

	return &AbsoluteValue{X: x, pos: posOf(open)}, nil
}

// parseList parses comma separated logic expressions up to and including the closing token.
func (p *parser) parseList(closing TokenKind, what, closer string) ([]Node, error) {
	var out []Node
	if p.peek().Kind == closing {
		p.next()
		return out, nil
	}

	for {
		n, err := p.parseLogic()
		if err != nil {
			return nil, err
		}
		out = append(out, n)

		tok := p.peek()
		switch tok.Kind {
		case TokComma:
			p.next()
		case closing:
			p.next()
			return out, nil
		case TokEOF:
			return nil, p.errorf(tok, "expected %s", closer)
		default:
			return nil, p.errorf(tok, "expected `,` between %s", what)
		}
	}
}

// parsePostfix greedily attaches .name, (args) and [index] to n.
func (p *parser) parsePostfix(n Node) (Node, error) {
	for {
		line, col := n.Pos()
		at := pos{Line: line, Col: col}

		switch p.peek().Kind {
		case TokDot:
			p.next()
			name, err := p.expect(TokNamespace, "expected attribute name after `.`")
			if err != nil {
				return nil, err
			}
			n = &GetAttribute{X: n, Name: name.Lit, pos: at}

		case TokLParen:
			p.next()
			args, err := p.parseList(TokRParen, "call arguments", "`)`")
			if err != nil {
				return nil, err
			}
			n = &Invoke{Callee: n, Args: args, pos: at}

		case TokLBracket:
			p.next()
			idx, err := p.parseLogic()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRBracket, "expected `]`"); err != nil {
				return nil, err
			}
			n = &GetIndex{X: n, Index: idx, pos: at}

		default:
			return n, nil
		}
	}
}

// errorf returns a syntax error positioned at tok.
// malformed reports a literal token whose value does not match its kind.
func (p *parser) malformed(tok Token) error {
	return p.errorf(tok, "malformed %s token %q", tok.Kind, tok.Lit)
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return &Error{
		Kind:       SyntaxError,
		Msg:        fmt.Sprintf(format, args...),
		Line:       tok.Line,
		Col:        tok.Col,
		Incomplete: tok.Kind == TokEOF,
	}
}

// describe returns a short description of a token for diagnostics.
func describe(tok Token) string {
	switch tok.Kind {
	case TokEOF:
		return "end of input"
	case TokString:
		return fmt.Sprintf("STRING %q", tok.Val)
	}
	if sym := tok.Kind.Symbol(); sym != "" {
		return "`" + sym + "`"
	}

	return strings.TrimSpace(tok.Kind.String() + " " + tok.Lit)
}
