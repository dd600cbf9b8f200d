package maple

import (
	"errors"
	"testing"
)

func kindsOf(toks []Token) []TokenKind {
	out := make([]TokenKind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokenKind
	}{
		{"empty", "", nil},
		{"whitespace", " \n\t ", nil},
		{"integer", "42", []TokenKind{TokInt}},
		{"float", "4.25", []TokenKind{TokFloat}},
		{"second_dot", "1.2.3", []TokenKind{TokInt, TokDot, TokFloat}},
		{"negative_literal", "-5", []TokenKind{TokInt}},
		{"binary_minus", "3-1", []TokenKind{TokInt, TokMinus, TokInt}},
		{"minus_negative", "3 - -1", []TokenKind{TokInt, TokMinus, TokInt}},
		{"minus_after_paren", "(1)-2", []TokenKind{TokLParen, TokInt, TokRParen, TokMinus, TokInt}},
		{"abs_negative", "|-3|", []TokenKind{TokAbs, TokInt, TokAbs}},
		{"minus_after_abs", "|x|-1", []TokenKind{TokAbs, TokNamespace, TokAbs, TokMinus, TokInt}},
		{"lone_minus", "- x", []TokenKind{TokMinus, TokNamespace}},
		{"arith", "1 ** 2 *** 3 * 4 / 5 % 6 + 7", []TokenKind{
			TokInt, TokPow, TokInt, TokTetr, TokInt, TokMul, TokInt, TokDiv, TokInt, TokMod, TokInt, TokPlus, TokInt,
		}},
		{"comparisons", "a != b == c = d > e >= f < g <= h", []TokenKind{
			TokNamespace, TokNe, TokNamespace, TokEq, TokNamespace, TokAssign, TokNamespace,
			TokGt, TokNamespace, TokGe, TokNamespace, TokLt, TokNamespace, TokLe, TokNamespace,
		}},
		{"logic", "!true || false && true", []TokenKind{TokNot, TokBoolean, TokOr, TokBoolean, TokAnd, TokBoolean}},
		{"keywords", "if while x_1 else func for", []TokenKind{
			TokKeyword, TokKeyword, TokNamespace, TokKeyword, TokKeyword, TokKeyword,
		}},
		{"punctuation", "( ) { } [ ] ; . ,", []TokenKind{
			TokLParen, TokRParen, TokLBrace, TokRBrace, TokLBracket, TokRBracket, TokSemicolon, TokDot, TokComma,
		}},
		{"int_attribute", "5.abs", []TokenKind{TokInt, TokDot, TokNamespace}},
		{"float_attribute", "1.5.abs", []TokenKind{TokFloat, TokDot, TokNamespace}},
		{"strings", `"a\"b" 'c'`, []TokenKind{TokString, TokString}},
		{"comments", "1 // line\n+ /* block */ 2", []TokenKind{TokInt, TokPlus, TokInt}},
		{"abs_at_end", "|1|", []TokenKind{TokAbs, TokInt, TokAbs}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.src, nil)
			if err != nil {
				t.Fatalf("tokenize %q: %v", tt.src, err)
			}
			want := append(tt.want, TokEOF)
			got := kindsOf(toks)
			if len(got) != len(want) {
				t.Fatalf("tokens %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("token %d: %v, want %v (all %v)", i, got[i], want[i], got)
				}
			}
		})
	}
}

func TestTokenizeValues(t *testing.T) {
	toks, err := Tokenize(`1.2.3, -17 "x\ty" true name`, nil)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(toks) != 9 {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	if toks[0].Lit != "1" || toks[2].Lit != "2.3" {
		t.Fatalf("second dot split: %q %q", toks[0].Lit, toks[2].Lit)
	}
	if f := toks[2].Val.(float64); f != 2.3 {
		t.Fatalf("float value %v", f)
	}
	if toks[4].Kind != TokInt || toks[4].Lit != "-17" {
		t.Fatalf("negative literal %v", toks[4])
	}
	if s := toks[5].Val.(string); s != "x\ty" {
		t.Fatalf("string value %q", s)
	}
	if b := toks[6].Val.(bool); !b {
		t.Fatalf("boolean value %v", b)
	}
	if toks[7].Kind != TokNamespace || toks[7].Lit != "name" {
		t.Fatalf("namespace token %v", toks[7])
	}
}

func TestTokenizeMinusAfterOperand(t *testing.T) {
	toks, err := Tokenize("2.3 -17", nil)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(toks) != 4 {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	if toks[1].Kind != TokMinus || toks[1].Lit != "-" {
		t.Fatalf("expected binary minus, got %v", toks[1])
	}
	if toks[2].Kind != TokInt || toks[2].Lit != "17" {
		t.Fatalf("expected INT 17, got %v", toks[2])
	}
}

func TestTokenizeDisableComments(t *testing.T) {
	toks, err := Tokenize("4 // 2", &ParseOptions{DisableComments: true})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	got := kindsOf(toks)
	want := []TokenKind{TokInt, TokDiv, TokDiv, TokInt, TokEOF}
	if len(got) != len(want) {
		t.Fatalf("tokens %v, want %v", got, want)
	}
}

func TestTokenizePositions(t *testing.T) {
	toks, err := Tokenize("1 +\n  22", nil)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[1].Line != 1 || toks[1].Col != 3 {
		t.Fatalf("plus at %d:%d", toks[1].Line, toks[1].Col)
	}
	if toks[2].Line != 2 || toks[2].Col != 3 {
		t.Fatalf("22 at %d:%d", toks[2].Line, toks[2].Col)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		incomplete bool
	}{
		{"unterminated_double", `"abc`, true},
		{"unterminated_single", `'abc`, true},
		{"lone_ampersand", "true & false", false},
		{"ampersand_at_end", "true &", true},
		{"minus_at_end", "1 -", true},
		{"star_at_end", "2 *", true},
		{"bang_at_end", "!", true},
		{"assign_at_end", "1 =", true},
		{"greater_at_end", "1 >", true},
		{"less_at_end", "1 <", true},
		{"unknown_character", "1 @ 2", false},
		{"unterminated_comment", "1 /* never closed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src, nil)
			if err == nil {
				t.Fatalf("expected error for %q", tt.src)
			}
			if !errors.Is(err, ErrLex) {
				t.Fatalf("expected ErrLex, got %v", err)
			}
			var e *Error
			if !errors.As(err, &e) || e.Kind != LexicalError {
				t.Fatalf("expected *Error with LexicalError, got %#v", err)
			}
			if IsIncomplete(err) != tt.incomplete {
				t.Fatalf("IsIncomplete = %v, want %v", IsIncomplete(err), tt.incomplete)
			}
		})
	}
}

func TestTokenizeSingleEOF(t *testing.T) {
	for _, src := range []string{"", "1", "1 + 2; 3;", "{1, 2}[0]"} {
		toks, err := Tokenize(src, nil)
		if err != nil {
			t.Fatalf("tokenize %q: %v", src, err)
		}
		n := 0
		for _, tok := range toks {
			if tok.Kind == TokEOF {
				n++
			}
		}
		if n != 1 || toks[len(toks)-1].Kind != TokEOF {
			t.Fatalf("%q: expected exactly one trailing EOF, got %v", src, toks)
		}
	}
}
