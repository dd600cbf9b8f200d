package maple

import (
	"errors"
	"fmt"
)

var (
	// ErrLex indicates a lexer failure.
	ErrLex = errors.New("lex error")

	// ErrParse indicates a parser failure.
	ErrParse = errors.New("parse error")

	// ErrType indicates an operation applied to operand kinds that do not support it,
	// or a value outside of the required range.
	ErrType = errors.New("type error")

	// ErrAttribute indicates a lookup of a missing attribute.
	ErrAttribute = errors.New("attribute error")

	// ErrInvoke indicates an invocation of a value that is not callable.
	ErrInvoke = errors.New("invocation error")

	// ErrNamespace indicates a reference to an unknown namespace.
	ErrNamespace = errors.New("namespace error")
)

// ErrorKind tags a user-facing error.
type ErrorKind int

const (
	// LexicalError is raised by the tokenizer.
	LexicalError ErrorKind = iota
	// SyntaxError is raised by the parser.
	SyntaxError
	// TypeError is raised by the operator protocol.
	TypeError
	// AttributeError is raised by attribute lookup.
	AttributeError
	// InvocationError is raised when invoking a non-callable value.
	InvocationError
	// NamespaceError is raised when resolving an unknown namespace.
	NamespaceError
)

// sentinel returns the sentinel error matching the kind.
func (k ErrorKind) sentinel() error {
	switch k {
	case LexicalError:
		return ErrLex
	case SyntaxError:
		return ErrParse
	case TypeError:
		return ErrType
	case AttributeError:
		return ErrAttribute
	case InvocationError:
		return ErrInvoke
	case NamespaceError:
		return ErrNamespace
	}

	panic(internalf("unknown error kind %d", int(k)))
}

// String returns the name of the kind.
func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

// Error is a structured user-facing error. It unwraps to the sentinel of its kind.
type Error struct {
	Msg  string    // Human-readable message
	Kind ErrorKind // Error kind
	Line int       // Line of the offending token, 0 when unknown
	Col  int       // Column of the offending token
	// Incomplete is set when the input ended before the construct was complete.
	Incomplete bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}

	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Col, e.Msg)
}

// Unwrap returns the sentinel error for the kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// IsIncomplete reports whether err was caused by input ending too early, so
// that more input could make it valid.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Incomplete
}

// newError creates an Error without a position.
func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// typeErrorf creates a TypeError without a position.
func typeErrorf(format string, args ...any) *Error {
	return newError(TypeError, format, args...)
}

// withPos attaches a position to err when it is an *Error without one.
func withPos(err error, line, col int) error {
	var e *Error
	if errors.As(err, &e) && e.Line == 0 {
		e.Line, e.Col = line, col
	}

	return err
}

// InternalError reports an interpreter defect: an operand that is not a runtime value
// or an AST node without an evaluation rule. It is raised with panic, never returned.
type InternalError struct {
	Msg string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return "internal consistency error: " + e.Msg
}

// internalf formats an InternalError.
func internalf(format string, args ...any) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
