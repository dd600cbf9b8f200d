package maple

import (
	"errors"
	"testing"

	"github.com/woozymasta/lintkit/lint"
	"github.com/woozymasta/lintkit/linttest"
)

func TestLintCatalogContract(t *testing.T) {
	catalog, err := LintCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	linttest.AssertCodeCatalogContract(t, catalog)

	if got := catalog.PublicCode(CodeOperandKind); got != "MAPLE2001" {
		t.Fatalf("public code %q", got)
	}
}

func TestValidate(t *testing.T) {
	type want struct {
		level IssueLevel
		code  lint.Code
	}
	tests := []struct {
		name string
		src  string
		opt  *ValidateOptions
		want []want
	}{
		{"clean", "1 + 2; 'x'.upper(); {1}[0]; Integer('4')", nil, nil},
		{"string_plus_int", `"a" + 1`, nil, []want{{IssueError, CodeOperandKind}}},
		{"index_bound", "{1, 2}[5]", nil, []want{{IssueError, CodeIndexRange}}},
		{"index_disabled", "{1, 2}[5]", &ValidateOptions{DisableIndexCheck: true}, nil},
		{"attribute", "5.nope", nil, []want{{IssueWarning, CodeUnknownAttribute}}},
		{"attribute_disabled", "5.nope", &ValidateOptions{DisableAttributeCheck: true}, nil},
		{"namespace", "foo + 1", nil, []want{{IssueWarning, CodeUnknownNamespace}}},
		{"namespace_chain", "foo.bar", nil, []want{{IssueWarning, CodeUnknownNamespace}}},
		{"namespace_disabled", "foo", &ValidateOptions{DisableNamespaceCheck: true}, nil},
		{"mixed_comparison", `1 == "1"`, nil, []want{{IssueWarning, CodeMixedComparison}}},
		{"numeric_comparison", "1 == 1.0", nil, nil},
		{"factorial", "!5", nil, []want{{IssueWarning, CodeFactorial}}},
		{"boolean_not", "!true", nil, nil},
		{"tetration_exponent", "2 *** 1.5", nil, []want{{IssueError, CodeOperandKind}}},
		{"division_by_zero", "1 / 0", nil, []want{{IssueWarning, CodeDivisionByZero}}},
		{"float_modulo_by_zero", "1.5 % 0.0", nil, []want{{IssueWarning, CodeDivisionByZero}}},
		{"string_by_zero", `"a" / 0`, nil, []want{{IssueError, CodeOperandKind}}},
		{"type_disabled", "1 / 0", &ValidateOptions{DisableTypeCheck: true}, nil},
		{"not_invokable", "5(1)", nil, []want{{IssueError, CodeNotInvokable}}},
		{"bad_constructor", "Integer('x')", nil, []want{{IssueError, CodeOperandKind}}},
		{"keeps_going", `"a" + 1; foo; 5.nope`, nil, []want{
			{IssueError, CodeOperandKind},
			{IssueWarning, CodeUnknownNamespace},
			{IssueWarning, CodeUnknownAttribute},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Validate(mustParse(t, tt.src), tt.opt)
			if len(issues) != len(tt.want) {
				t.Fatalf("got %v, want %v", issues, tt.want)
			}
			for i, w := range tt.want {
				if issues[i].Level != w.level || issues[i].Code != w.code {
					t.Fatalf("issue %d: %v, want %s/%d", i, issues[i], w.level, w.code)
				}
			}
		})
	}
}

func TestIssueString(t *testing.T) {
	issues := Validate(mustParse(t, `"a" + 1`), nil)
	if len(issues) != 1 {
		t.Fatalf("got %v", issues)
	}

	want := "1:5: error MAPLE2001: STRING and INT don't support PLUS operations together."
	if got := issues[0].String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDiagnostics(t *testing.T) {
	issues := Validate(mustParse(t, "{1}[3];\n5.nope"), nil)
	if len(issues) != 2 {
		t.Fatalf("got %v", issues)
	}
	catalog, err := LintCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	indexRule, err := catalog.RuleID(CodeIndexRange)
	if err != nil {
		t.Fatalf("rule id: %v", err)
	}
	attrRule, err := catalog.RuleID(CodeUnknownAttribute)
	if err != nil {
		t.Fatalf("rule id: %v", err)
	}

	got := Diagnostics(issues)
	want := []lint.Diagnostic{
		{
			RuleID:   indexRule,
			Code:     "MAPLE2002",
			Severity: lint.SeverityError,
			Message:  issues[0].Message,
			Start:    lint.Position{Line: 1, Column: issues[0].Col},
		},
		{
			RuleID:   attrRule,
			Code:     "MAPLE2004",
			Severity: lint.SeverityWarning,
			Message:  issues[1].Message,
			Start:    lint.Position{Line: 2, Column: issues[1].Col},
		},
	}
	linttest.AssertDiagnosticsEqual(t, got, want)

	var de *lint.DiagnosticsError
	if err := lint.ErrorFromDiagnostics(got, lint.SeverityError); !errors.As(err, &de) || len(de.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic at error threshold, got %v", err)
	}
	if err := lint.ErrorFromDiagnostics(Diagnostics(Validate(mustParse(t, "5.nope"), nil)), lint.SeverityError); err != nil {
		t.Fatalf("warnings alone must not fail: %v", err)
	}
}
