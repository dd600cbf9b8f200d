package maple

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, src string) *Script {
	t.Helper()

	s, err := Parse(src, nil)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return s
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"2 ** 3 ** 2", "((2 ** 3) ** 2)"},
		{"2 *** 3 * 4", "((2 *** 3) * 4)"},
		{"1 == 1 && 2 < 3", "((1 == 1) && (2 < 3))"},
		{"true || false && true", "((true || false) && true)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"!5 + 1", "(!5 + 1)"},
		{"!!true", "!(!true)"},
		{"{1, {2}, {}}", "{1, {2}, {}}"},
		{"|-3| * 2", "(|-3| * 2)"},
		{"|1 - 4|", "|(1 - 4)|"},
		{"3 - -1", "(3 - -1)"},
		{"'a' + \"b\"", `("a" + "b")`},
		{"1.5 % 2", "(1.5 % 2)"},
		{"5.abs()", "5.abs()"},
		{"{1, 2}[0].float()", "{1, 2}[0].float()"},
		{"Integer('7')", `Integer("7")`},
		{"!x.y", "!x.y"},
		{"(!x).y", "(!x).y"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s := mustParse(t, tt.src)
			if len(s.Stmts) != 1 {
				t.Fatalf("expected one statement, got %d", len(s.Stmts))
			}
			if got := FormatNode(s.Stmts[0]); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParsePostfixChain(t *testing.T) {
	s := mustParse(t, "a.b(c)[0]")

	idx, ok := s.Stmts[0].(*GetIndex)
	if !ok {
		t.Fatalf("outer node %T, want *GetIndex", s.Stmts[0])
	}
	if n, ok := idx.Index.(*Number); !ok || !n.IsInt || n.Int.Sign() != 0 {
		t.Fatalf("index %#v, want 0", idx.Index)
	}

	call, ok := idx.X.(*Invoke)
	if !ok {
		t.Fatalf("indexed node %T, want *Invoke", idx.X)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected one argument, got %d", len(call.Args))
	}
	if ns, ok := call.Args[0].(*Namespace); !ok || ns.Name != "c" {
		t.Fatalf("argument %#v, want namespace c", call.Args[0])
	}

	attr, ok := call.Callee.(*GetAttribute)
	if !ok || attr.Name != "b" {
		t.Fatalf("callee %#v, want attribute b", call.Callee)
	}
	if ns, ok := attr.X.(*Namespace); !ok || ns.Name != "a" {
		t.Fatalf("object %#v, want namespace a", attr.X)
	}
}

func TestParseNegationBindsPostfix(t *testing.T) {
	s := mustParse(t, "!x.y")
	neg, ok := s.Stmts[0].(*Negation)
	if !ok {
		t.Fatalf("node %T, want *Negation", s.Stmts[0])
	}
	if _, ok := neg.X.(*GetAttribute); !ok {
		t.Fatalf("operand %T, want *GetAttribute", neg.X)
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"1", 1},
		{"1;", 1},
		{"1; 2", 2},
		{"1 + 1; 2 * 3;", 2},
		{"1;\n2;\n3", 3},
	}

	for _, tt := range tests {
		s := mustParse(t, tt.src)
		if len(s.Stmts) != tt.want {
			t.Fatalf("%q: %d statements, want %d", tt.src, len(s.Stmts), tt.want)
		}
	}
}

func TestParsePositions(t *testing.T) {
	s := mustParse(t, "1;\n  {2, 3}")
	line, col := s.Stmts[1].Pos()
	if line != 2 || col != 3 {
		t.Fatalf("array at %d:%d, want 2:3", line, col)
	}

	b := mustParse(t, "1 +\n2").Stmts[0].(*BinaryOp)
	if b.Op.Line != 1 || b.Op.Col != 3 {
		t.Fatalf("operator at %d:%d, want 1:3", b.Op.Line, b.Op.Col)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		incomplete bool
	}{
		{"empty", "", true},
		{"only_semicolon", ";", false},
		{"double_semicolon", "1;;", false},
		{"unclosed_paren", "(1", true},
		{"array_missing_comma", "{1 2}", false},
		{"array_unclosed", "{1,", true},
		{"abs_unclosed", "|1", true},
		{"call_missing_comma", "f(1 2)", false},
		{"leading_bracket", "[1]", false},
		{"keyword", "if", false},
		{"adjacent_operands", "1 2", false},
		{"attribute_number", "a.1", false},
		{"unclosed_index", "x[1", true},
		{"dangling_operator", "1 + ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src, nil)
			if err == nil {
				t.Fatalf("expected error for %q", tt.src)
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			if IsIncomplete(err) != tt.incomplete {
				t.Fatalf("IsIncomplete = %v, want %v (%v)", IsIncomplete(err), tt.incomplete, err)
			}
		})
	}
}

func TestParseLexErrorPassesThrough(t *testing.T) {
	_, err := Parse(`"open`, nil)
	if !errors.Is(err, ErrLex) {
		t.Fatalf("expected ErrLex, got %v", err)
	}
}

func TestParseTokensRequiresEOF(t *testing.T) {
	toks, err := Tokenize("1 + 2", nil)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	if _, err := ParseTokens(toks[:len(toks)-1]); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse without EOF, got %v", err)
	}
	if _, err := ParseTokens(nil); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for empty input, got %v", err)
	}

	s, err := ParseTokens(toks)
	if err != nil {
		t.Fatalf("parse tokens: %v", err)
	}
	if got := FormatNode(s); got != "(1 + 2)" {
		t.Fatalf("got %s", got)
	}
}

func TestParseTokensMalformedLiteral(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
	}{
		{"int_without_value", Token{Kind: TokInt, Lit: "1", Line: 1, Col: 1}},
		{"float_with_string", Token{Kind: TokFloat, Lit: "1.5", Val: "1.5", Line: 1, Col: 1}},
		{"string_with_int", Token{Kind: TokString, Lit: `"a"`, Val: 1, Line: 1, Col: 1}},
		{"boolean_without_value", Token{Kind: TokBoolean, Lit: "true", Line: 1, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTokens([]Token{tt.tok, {Kind: TokEOF, Line: 1, Col: 2}})
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			var e *Error
			if !errors.As(err, &e) || e.Kind != SyntaxError || e.Line != 1 || e.Col != 1 {
				t.Fatalf("expected SyntaxError at 1:1, got %#v", err)
			}
		})
	}
}
