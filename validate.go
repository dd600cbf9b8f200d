package maple

import (
	"errors"
	"fmt"

	"github.com/woozymasta/lintkit/lint"
)

// IssueLevel represents severity of validation issue.
type IssueLevel = lint.Severity

const (
	// IssueError indicates an expression that always fails at evaluation.
	IssueError = lint.SeverityError
	// IssueWarning indicates a suspicious expression.
	IssueWarning = lint.SeverityWarning
)

// StageValidate is the lint stage of all validation codes.
const StageValidate lint.Stage = "validate"

const lintCodePrefix = "MAPLE"

// Validation codes.
const (
	CodeOperandKind      lint.Code = 2001 // operator on unsupported literal kinds
	CodeIndexRange       lint.Code = 2002 // literal index out of range
	CodeNotInvokable     lint.Code = 2003 // call of a value that is not a method or class
	CodeUnknownAttribute lint.Code = 2004
	CodeUnknownNamespace lint.Code = 2005
	CodeDivisionByZero   lint.Code = 2006
	CodeMixedComparison  lint.Code = 2007
	CodeFactorial        lint.Code = 2008
)

var lintCatalog = lint.NewCodeCatalogHandle(
	lint.CodeCatalogConfig{
		Module:            "maple",
		CodePrefix:        lintCodePrefix,
		ModuleName:        "MAPLe",
		ModuleDescription: "Static checks of MAPLe scripts.",
		ScopeDescriptions: map[lint.Stage]string{
			StageValidate: "Folding of literal subexpressions without evaluation.",
		},
	},
	[]lint.CodeSpec{
		lint.ErrorCodeSpec(CodeOperandKind, StageValidate, "operand kinds not supported"),
		lint.ErrorCodeSpec(CodeIndexRange, StageValidate, "index out of range"),
		lint.ErrorCodeSpec(CodeNotInvokable, StageValidate, "value is not invokable"),
		lint.WarningCodeSpec(CodeUnknownAttribute, StageValidate, "unknown attribute"),
		lint.WarningCodeSpec(CodeUnknownNamespace, StageValidate, "unknown namespace"),
		lint.WarningCodeSpec(CodeDivisionByZero, StageValidate, "division by literal zero"),
		lint.WarningCodeSpec(CodeMixedComparison, StageValidate, "constant mixed-kind comparison"),
		lint.WarningCodeSpec(CodeFactorial, StageValidate, "factorial negation"),
	},
)

// LintCatalog returns the catalog of validation codes.
func LintCatalog() (lint.CodeCatalog, error) {
	return lintCatalog.Catalog()
}

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    lint.Code  `json:"code,omitempty" yaml:"code,omitempty"` // Catalog code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Line    int        `json:"line" yaml:"line"`                     // Line of the expression
	Col     int        `json:"col" yaml:"col"`                       // Column of the expression
}

// PublicCode returns the exported code token, for example MAPLE2001.
func (i Issue) PublicCode() string {
	return lint.ApplyCodePrefix(lintCodePrefix, i.Code)
}

// String renders the issue as line:col: level CODE: message.
func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s %s: %s", i.Line, i.Col, i.Level, i.PublicCode(), i.Message)
}

// Diagnostic converts the issue into a lint diagnostic.
func (i Issue) Diagnostic() lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   lintCatalog.RuleIDOrUnknown(i.Code),
		Code:     i.PublicCode(),
		Severity: i.Level,
		Message:  i.Message,
		Start:    lint.Position{Line: i.Line, Column: i.Col},
	}
}

// Diagnostics converts issues into lint diagnostics.
func Diagnostics(issues []Issue) []lint.Diagnostic {
	out := make([]lint.Diagnostic, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Diagnostic())
	}

	return out
}

// Validate checks a script without evaluating it. Subexpressions built only from
// literals and built-in classes are folded, and every operation on them that
// would fail at evaluation is reported. Unlike evaluation, validation does not
// stop at the first problem.
func Validate(s *Script, opt *ValidateOptions) []Issue {
	v := &validator{opt: opt.normalize()}
	for _, stmt := range s.Stmts {
		v.fold(stmt)
	}

	return v.out
}

// validator folds constant subexpressions and collects issues.
type validator struct {
	out []Issue
	ops Ops
	opt ValidateOptions
}

// report adds an issue at line:col unless the check is disabled. The level
// comes from the catalog entry of code.
func (v *validator) report(disabled bool, code lint.Code, line, col int, format string, args ...any) {
	if disabled {
		return
	}
	spec, ok := lintCatalog.ByCode(code)
	if !ok {
		panic(internalf("validation code %d is not in the catalog", code))
	}
	v.out = append(v.out, Issue{Level: spec.Severity, Code: code, Message: fmt.Sprintf(format, args...), Line: line, Col: col})
}

// reportErr reports an evaluation error as an issue.
func (v *validator) reportErr(disabled bool, code lint.Code, line, col int, err error) {
	var e *Error
	if errors.As(err, &e) {
		v.report(disabled, code, line, col, "%s", e.Msg)
		return
	}
	v.report(disabled, code, line, col, "%v", err)
}

// fold returns the constant value of n, or nil when it is not known statically.
func (v *validator) fold(n Node) *Value {
	line, col := n.Pos()

	switch n := n.(type) {
	case *Number:
		if n.IsInt {
			return BigInt(n.Int)
		}
		return Float(n.Float)

	case *String:
		return Str(n.Value)

	case *Boolean:
		return Bool(n.Value)

	case *Namespace:
		if c, ok := LookupClass(n.Name); ok {
			return c
		}
		v.report(v.opt.DisableNamespaceCheck, CodeUnknownNamespace, line, col, "unknown namespace `%s`", n.Name)
		return nil

	case *Array:
		elems := make([]*Value, 0, len(n.Elems))
		for _, e := range n.Elems {
			elems = append(elems, v.fold(e))
		}
		for _, e := range elems {
			if e == nil {
				return nil
			}
		}
		return Arr(elems...)

	case *BinaryOp:
		l, r := v.fold(n.Left), v.fold(n.Right)
		if l == nil || r == nil {
			return nil
		}
		if (n.Op.Kind == TokEq || n.Op.Kind == TokNe) && !sameFamily(l, r) {
			v.report(v.opt.DisableTypeCheck, CodeMixedComparison, n.Op.Line, n.Op.Col,
				"comparison between %s and %s is constant", l.kind, r.kind)
		}
		if (n.Op.Kind == TokDiv || n.Op.Kind == TokMod) && l.isNumeric() && r.isNumeric() && isZero(r) {
			v.report(v.opt.DisableTypeCheck, CodeDivisionByZero, n.Op.Line, n.Op.Col,
				"%s by literal zero always fails", opNames[n.Op.Kind])
			return nil
		}
		out, err := v.ops.Binary(n.Op.Kind, l, r)
		if err != nil {
			v.reportErr(v.opt.DisableTypeCheck, CodeOperandKind, n.Op.Line, n.Op.Col, err)
			return nil
		}
		return out

	case *Negation:
		x := v.fold(n.X)
		if x == nil {
			return nil
		}
		if x.kind == KindInteger {
			v.report(v.opt.DisableTypeCheck, CodeFactorial, line, col, "`!` on INT computes a factorial")
		}
		out, err := v.ops.Not(x)
		if err != nil {
			v.reportErr(v.opt.DisableTypeCheck, CodeOperandKind, line, col, err)
			return nil
		}
		return out

	case *AbsoluteValue:
		x := v.fold(n.X)
		if x == nil {
			return nil
		}
		out, err := v.ops.Abs(x)
		if err != nil {
			v.reportErr(v.opt.DisableTypeCheck, CodeOperandKind, line, col, err)
			return nil
		}
		return out

	case *GetAttribute:
		x := v.fold(n.X)
		if x == nil {
			return nil
		}
		out, err := v.ops.GetAttr(x, n.Name)
		if err != nil {
			v.report(v.opt.DisableAttributeCheck, CodeUnknownAttribute, line, col,
				"%s has no attribute `%s` (known: %v)", x.kind, n.Name, Builtins(x.kind))
			return nil
		}
		return out

	case *SetAttribute:
		v.fold(n.X)
		return v.fold(n.Value)

	case *Invoke:
		callee := v.fold(n.Callee)
		args := make([]*Value, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, v.fold(a))
		}
		if callee == nil {
			return nil
		}
		if callee.kind != KindMethod && callee.kind != KindClass {
			v.report(v.opt.DisableTypeCheck, CodeNotInvokable, line, col, "%s is not invokable", callee.kind)
			return nil
		}
		for _, a := range args {
			if a == nil {
				return nil
			}
		}
		out, err := v.ops.Invoke(callee, args)
		if err != nil {
			v.reportErr(v.opt.DisableTypeCheck, CodeOperandKind, line, col, err)
			return nil
		}
		return out

	case *GetIndex:
		x, idx := v.fold(n.X), v.fold(n.Index)
		if x == nil || idx == nil {
			return nil
		}
		out, err := v.ops.Index(x, idx)
		if err != nil {
			v.reportErr(v.opt.DisableIndexCheck, CodeIndexRange, line, col, err)
			return nil
		}
		return out

	case *Script:
		for _, stmt := range n.Stmts {
			v.fold(stmt)
		}
		return nil
	}

	panic(internalf("no validation rule defined for %T", n))
}

// sameFamily reports whether two values can compare equal.
func sameFamily(l, r *Value) bool {
	if l.isNumeric() && r.isNumeric() {
		return true
	}

	return l.kind == r.kind
}
