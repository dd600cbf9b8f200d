package maple

import "fmt"

// TokenKind represents a type of a token.
type TokenKind int

// token kinds.
const (
	TokEOF       TokenKind = iota // End of input
	TokInt                        // Integer literal
	TokFloat                      // Float literal
	TokString                     // String literal
	TokBoolean                    // true or false
	TokPlus                       // +
	TokMinus                      // -
	TokMul                        // *
	TokDiv                        // /
	TokMod                        // %
	TokPow                        // **
	TokTetr                       // ***
	TokAbs                        // |
	TokAnd                        // &&
	TokOr                         // ||
	TokNot                        // !
	TokEq                         // ==
	TokNe                         // !=
	TokGt                         // >
	TokGe                         // >=
	TokLt                         // <
	TokLe                         // <=
	TokAssign                     // =
	TokLParen                     // (
	TokRParen                     // )
	TokLBrace                     // {
	TokRBrace                     // }
	TokLBracket                   // [
	TokRBracket                   // ]
	TokSemicolon                  // ;
	TokDot                        // .
	TokComma                      // ,
	TokKeyword                    // Reserved word
	TokNamespace                  // Free identifier
)

var tokenNames = [...]string{
	TokEOF:       "EOF",
	TokInt:       "INT",
	TokFloat:     "FLOAT",
	TokString:    "STRING",
	TokBoolean:   "BOOLEAN",
	TokPlus:      "PLUS",
	TokMinus:     "MINUS",
	TokMul:       "MUL",
	TokDiv:       "DIV",
	TokMod:       "MOD",
	TokPow:       "POW",
	TokTetr:      "TETR",
	TokAbs:       "ABS",
	TokAnd:       "AND",
	TokOr:        "OR",
	TokNot:       "NOT",
	TokEq:        "EQ",
	TokNe:        "NE",
	TokGt:        "GT",
	TokGe:        "GE",
	TokLt:        "LT",
	TokLe:        "LE",
	TokAssign:    "ASSIGN",
	TokLParen:    "LPAREN",
	TokRParen:    "RPAREN",
	TokLBrace:    "LBRACE",
	TokRBrace:    "RBRACE",
	TokLBracket:  "LBRACKET",
	TokRBracket:  "RBRACKET",
	TokSemicolon: "SEMICOLON",
	TokDot:       "DOT",
	TokComma:     "COMMA",
	TokKeyword:   "KEYWORD",
	TokNamespace: "NAMESPACE",
}

var tokenSymbols = map[TokenKind]string{
	TokPlus:      "+",
	TokMinus:     "-",
	TokMul:       "*",
	TokDiv:       "/",
	TokMod:       "%",
	TokPow:       "**",
	TokTetr:      "***",
	TokAbs:       "|",
	TokAnd:       "&&",
	TokOr:        "||",
	TokNot:       "!",
	TokEq:        "==",
	TokNe:        "!=",
	TokGt:        ">",
	TokGe:        ">=",
	TokLt:        "<",
	TokLe:        "<=",
	TokAssign:    "=",
	TokLParen:    "(",
	TokRParen:    ")",
	TokLBrace:    "{",
	TokRBrace:    "}",
	TokLBracket:  "[",
	TokRBracket:  "]",
	TokSemicolon: ";",
	TokDot:       ".",
	TokComma:     ",",
}

// String returns the name of the kind.
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}

	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Symbol returns the source text of an operator or punctuation kind, or "" for
// literal, keyword, namespace and EOF kinds.
func (k TokenKind) Symbol() string {
	return tokenSymbols[k]
}

// keywords are reserved words. They are recognized but not executed.
var keywords = map[string]struct{}{
	"if":    {},
	"else":  {},
	"func":  {},
	"for":   {},
	"while": {},
}

// Token is a lexical token.
type Token struct {
	Val  any       // *big.Int, float64, string or bool depending on Kind
	Lit  string    // Source text of the token
	Kind TokenKind // Kind of the token
	Line int       // Line number of the token
	Col  int       // Column number of the token
}

// String renders the token as KIND or KIND : value.
func (t Token) String() string {
	switch t.Kind {
	case TokInt, TokFloat, TokBoolean, TokKeyword, TokNamespace:
		return fmt.Sprintf("%s : %s", t.Kind, t.Lit)
	case TokString:
		return fmt.Sprintf("%s : %q", t.Kind, t.Val)
	}

	return t.Kind.String()
}

// endsOperand reports whether a token of this kind can close an operand, which
// makes a following '-' a binary minus rather than a literal sign.
func (k TokenKind) endsOperand() bool {
	switch k {
	case TokInt, TokFloat, TokString, TokBoolean, TokNamespace, TokRParen, TokRBracket, TokRBrace:
		return true
	}

	return false
}
