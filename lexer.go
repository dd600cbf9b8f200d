package maple

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Tokenize converts source text into a token sequence terminated by exactly one EOF token.
func Tokenize(src string, opt *ParseOptions) ([]Token, error) {
	l := newLexer(src, opt.normalize())
	return l.tokenize()
}

// lexer represents a lexer for MAPLe source text.
type lexer struct {
	src    []rune       // Source text
	toks   []Token      // Emitted tokens
	opt    ParseOptions // Options for the lexer
	off    int          // Offset of the current character
	pos    position     // Position of the current character
	closed bool         // Last emitted '|' closed an absolute value group
}

// position represents a position in the input.
type position struct {
	line int // Line number
	col  int // Column number
}

// newLexer creates a new lexer over src.
func newLexer(src string, opt ParseOptions) *lexer {
	r := []rune(src)
	if len(r) > 0 && r[0] == 0xFEFF {
		// Skip UTF-8 BOM if present.
		r = r[1:]
	}

	return &lexer{src: r, opt: opt, pos: position{line: 1, col: 1}}
}

// eof reports whether the input is exhausted.
func (l *lexer) eof() bool {
	return l.off >= len(l.src)
}

// ch returns the current character, or 0 at end of input.
func (l *lexer) ch() rune {
	return l.peekAt(0)
}

// peek returns the character after the current one without consuming it.
func (l *lexer) peek() rune {
	return l.peekAt(1)
}

// peekAt returns the character n positions ahead of the current one.
func (l *lexer) peekAt(n int) rune {
	if l.off+n >= len(l.src) {
		return 0
	}

	return l.src[l.off+n]
}

// read consumes the current character.
func (l *lexer) read() {
	if l.eof() {
		return
	}

	if l.src[l.off] == '\n' {
		l.pos.line++
		l.pos.col = 1
	} else {
		l.pos.col++
	}
	l.off++
}

// tokenize runs the lexer to completion.
func (l *lexer) tokenize() ([]Token, error) {
	for {
		if err := l.skipWhitespace(); err != nil {
			return nil, err
		}
		if l.eof() {
			l.toks = append(l.toks, Token{Kind: TokEOF, Line: l.pos.line, Col: l.pos.col})
			return l.toks, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

// emit appends a token of kind k starting at start.
func (l *lexer) emit(k TokenKind, lit string, val any, start position) {
	l.toks = append(l.toks, Token{Kind: k, Lit: lit, Val: val, Line: start.line, Col: start.col})
}

// emitOp consumes n characters and emits an operator token.
func (l *lexer) emitOp(k TokenKind, n int, start position) {
	for range n {
		l.read()
	}
	l.emit(k, k.Symbol(), nil, start)
}

// afterOperand reports whether the previous token closes an operand.
func (l *lexer) afterOperand() bool {
	if len(l.toks) == 0 {
		return false
	}

	prev := l.toks[len(l.toks)-1]
	if prev.Kind == TokAbs {
		return l.closed
	}

	return prev.Kind.endsOperand()
}

// next scans one token (or consumes a character producing none).
func (l *lexer) next() error {
	start := l.pos
	ch := l.ch()

	switch ch {
	case '+':
		l.emitOp(TokPlus, 1, start)
	case '/':
		l.emitOp(TokDiv, 1, start)
	case '%':
		l.emitOp(TokMod, 1, start)
	case '(':
		l.emitOp(TokLParen, 1, start)
	case ')':
		l.emitOp(TokRParen, 1, start)
	case '{':
		l.emitOp(TokLBrace, 1, start)
	case '}':
		l.emitOp(TokRBrace, 1, start)
	case '[':
		l.emitOp(TokLBracket, 1, start)
	case ']':
		l.emitOp(TokRBracket, 1, start)
	case ';':
		l.emitOp(TokSemicolon, 1, start)
	case ',':
		l.emitOp(TokComma, 1, start)
	case '.':
		l.emitOp(TokDot, 1, start)

	case '-':
		if l.peek() == 0 {
			return l.incomplete("unexpected end of input after '-'")
		}
		if isDigit(l.peek()) && !l.afterOperand() {
			l.read()
			return l.readNumber(true, start)
		}
		l.emitOp(TokMinus, 1, start)

	case '*':
		switch {
		case l.peek() == 0:
			return l.incomplete("unexpected end of input after '*'")
		case l.peek() == '*' && l.peekAt(2) == '*':
			l.emitOp(TokTetr, 3, start)
		case l.peek() == '*':
			l.emitOp(TokPow, 2, start)
		default:
			l.emitOp(TokMul, 1, start)
		}

	case '|':
		if l.peek() == '|' {
			l.emitOp(TokOr, 2, start)
			return nil
		}
		closing := l.afterOperand()
		l.emitOp(TokAbs, 1, start)
		l.closed = closing

	case '&':
		if l.peek() == '&' {
			l.emitOp(TokAnd, 2, start)
			return nil
		}
		if l.peek() == 0 {
			return l.incomplete("unexpected end of input after '&'")
		}
		return l.errorf("unknown operator '&', did you mean '&&'?")

	case '!':
		return l.readCompound('!', TokNot, TokNe, start)
	case '=':
		return l.readCompound('=', TokAssign, TokEq, start)
	case '>':
		return l.readCompound('>', TokGt, TokGe, start)
	case '<':
		return l.readCompound('<', TokLt, TokLe, start)

	case '"', '\'':
		lit, err := l.readString()
		if err != nil {
			return err
		}
		l.emit(TokString, lit, lit, start)

	default:
		if isDigit(ch) {
			return l.readNumber(false, start)
		}
		if isIdentStart(ch) {
			l.readIdent(start)
			return nil
		}

		return l.errorf("unexpected character '%c'", ch)
	}

	return nil
}

// readCompound scans an operator that may be followed by '=' (!, =, >, <).
func (l *lexer) readCompound(ch rune, single, withEq TokenKind, start position) error {
	switch l.peek() {
	case 0:
		return l.incomplete("unexpected end of input after '%c'", ch)
	case '=':
		l.emitOp(withEq, 2, start)
	default:
		l.emitOp(single, 1, start)
	}

	return nil
}

// readNumber scans a numeric literal. The current character is the first digit.
func (l *lexer) readNumber(negative bool, start position) error {
	var b strings.Builder
	if negative {
		b.WriteRune('-')
	}

	for isDigit(l.ch()) {
		b.WriteRune(l.ch())
		l.read()
	}

	// A dot only belongs to the number when a digit follows it.
	if l.ch() != '.' || !isDigit(l.peek()) {
		return l.emitInt(b.String(), start)
	}

	// A second decimal point re-splits the run: the integer part is emitted on its
	// own, the first dot becomes DOT, and scanning resumes after it.
	j := 1
	for isDigit(l.peekAt(j)) {
		j++
	}
	if l.peekAt(j) == '.' && isDigit(l.peekAt(j+1)) {
		if err := l.emitInt(b.String(), start); err != nil {
			return err
		}
		dot := l.pos
		l.emitOp(TokDot, 1, dot)
		return l.readNumber(false, l.pos)
	}

	b.WriteRune('.')
	l.read()
	for isDigit(l.ch()) {
		b.WriteRune(l.ch())
		l.read()
	}

	lit := b.String()
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return l.errorAt(start, "invalid float literal %q", lit)
	}
	l.emit(TokFloat, lit, f, start)

	return nil
}

// emitInt emits an integer literal token.
func (l *lexer) emitInt(lit string, start position) error {
	n, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return l.errorAt(start, "invalid integer literal %q", lit)
	}
	l.emit(TokInt, lit, n, start)

	return nil
}

// readString reads a quoted string. The current character is the opening quote.
func (l *lexer) readString() (string, error) {
	quote := l.ch()
	l.read() // consume opening quote

	var b strings.Builder
	for {
		if l.eof() {
			return "", l.incomplete("unterminated string, expected `%c`", quote)
		}

		ch := l.ch()
		if ch == quote {
			l.read()
			break
		}

		// Handle escaped characters.
		if ch == '\\' {
			if esc, ok := unescape(l.peek()); ok {
				l.read()
				l.read()
				b.WriteRune(esc)
				continue
			}
		}
		b.WriteRune(ch)
		l.read()
	}

	return b.String(), nil
}

// readIdent reads an identifier and classifies it as keyword, boolean or namespace.
func (l *lexer) readIdent(start position) {
	var b strings.Builder
	for isIdentPart(l.ch()) {
		b.WriteRune(l.ch())
		l.read()
	}

	lit := b.String()
	switch {
	case lit == "true" || lit == "false":
		l.emit(TokBoolean, lit, lit == "true", start)
	case isKeyword(lit):
		l.emit(TokKeyword, lit, lit, start)
	default:
		l.emit(TokNamespace, lit, lit, start)
	}
}

// skipWhitespace skips whitespace and comments.
func (l *lexer) skipWhitespace() error {
	for {
		for unicode.IsSpace(l.ch()) {
			l.read()
		}

		if l.opt.DisableComments || l.ch() != '/' {
			return nil
		}

		// Support // comments.
		if l.peek() == '/' {
			for !l.eof() && l.ch() != '\n' {
				l.read()
			}
			continue
		}

		// Support /* */ comments.
		if l.peek() == '*' {
			start := l.pos
			l.read()
			l.read()
			for {
				if l.eof() {
					err := l.errorAt(start, "unterminated block comment")
					err.Incomplete = true
					return err
				}
				if l.ch() == '*' && l.peek() == '/' {
					l.read()
					l.read()
					break
				}
				l.read()
			}
			continue
		}

		return nil
	}
}

// errorf returns a lexical error at the current position.
func (l *lexer) errorf(format string, args ...any) *Error {
	return l.errorAt(l.pos, format, args...)
}

// incomplete returns a lexical error for input that ended too early.
func (l *lexer) incomplete(format string, args ...any) *Error {
	err := l.errorf(format, args...)
	err.Incomplete = true
	return err
}

// errorAt returns a lexical error at p.
func (l *lexer) errorAt(p position, format string, args ...any) *Error {
	e := newError(LexicalError, format, args...)
	e.Line, e.Col = p.line, p.col
	return e
}

// unescape maps the character after a backslash to its value.
func unescape(r rune) (rune, bool) {
	switch r {
	case '\\', '"', '\'':
		return r, true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	}

	return 0, false
}

// isKeyword checks if an identifier is a reserved word.
func isKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// isDigit checks if a character is an ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentStart checks if a character is a valid start of an identifier.
func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isIdentPart checks if a character is a valid part of an identifier.
func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
