/*
Package maple implements the MAPLe scripting language: a tokenizer, a
recursive-descent parser producing an AST, and a tree-walking interpreter
over a closed set of runtime value kinds (INT, FLOAT, STRING, BOOLEAN, ARRAY,
METHOD and CLASS).

A script is one or more expressions separated by ';'. There are no variables,
functions or control flow; every statement evaluates to a value.

Evaluation example:

	v, err := maple.Eval(`{1, 2, 3}[2] ** 2`, nil)
	if err != nil {
		// handle error
	}
	_ = v // INT 9

Script example:

	vals, err := maple.Run(`1 + 1; "ab" + "cd"; !5`, nil)
	if err != nil {
		// handle error
	}
	_ = vals // 2, "abcd", 120

Parser example:

	s, err := maple.Parse(`"text".upper().length()`, nil)
	if err != nil {
		// handle error
	}
	fmt.Println(maple.FormatNode(s))

Validator example:

	issues := maple.Validate(s, nil)
	for _, is := range issues {
		fmt.Println(is) // 1:5: error MAPLE2001: ...
	}

Issues carry codes from a lintkit catalog (see LintCatalog) and convert to
lint.Diagnostic values with Diagnostics.

Errors returned by Tokenize, Parse, Eval and Run are *Error values that unwrap
to one of ErrLex, ErrParse, ErrType, ErrAttribute, ErrInvoke or ErrNamespace.
Defects of the interpreter itself are raised as panics carrying *InternalError.

Note that '!' applied to an INT computes its factorial rather than a logical
negation; values below 1 yield 1.
*/
package maple
