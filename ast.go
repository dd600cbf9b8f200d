package maple

import "math/big"

// Node is a parsed AST node. The set of implementations is closed.
type Node interface {
	// Pos returns the line and column of the first token of the node.
	Pos() (line, col int)
	node()
}

// pos is embedded by every node to record its start position.
type pos struct {
	Line int // Line of the first token
	Col  int // Column of the first token
}

// Pos implements the Node interface.
func (p pos) Pos() (int, int) { return p.Line, p.Col }

// node implements the Node interface.
func (pos) node() {}

// posOf returns the position of a token.
func posOf(t Token) pos {
	return pos{Line: t.Line, Col: t.Col}
}

// Number represents an integer or float literal.
type Number struct {
	Int   *big.Int // Integer value when IsInt
	Float float64  // Float value when !IsInt
	pos
	IsInt bool // Whether the literal is an integer
}

// String represents a string literal.
type String struct {
	Value string // Literal text
	pos
}

// Boolean represents true or false.
type Boolean struct {
	pos
	Value bool // Literal value
}

// Array represents {a, b, ...}.
type Array struct {
	Elems []Node // Element expressions
	pos
}

// BinaryOp represents left OP right.
type BinaryOp struct {
	Left  Node  // Left operand
	Right Node  // Right operand
	Op    Token // Operator token
	pos
}

// Negation represents !x.
type Negation struct {
	X Node // Operand
	pos
}

// AbsoluteValue represents |x|.
type AbsoluteValue struct {
	X Node // Operand
	pos
}

// GetAttribute represents x.name.
type GetAttribute struct {
	X    Node   // Object
	Name string // Attribute name
	pos
}

// SetAttribute stores Value into x.name. No surface syntax produces it yet.
type SetAttribute struct {
	X     Node   // Object
	Value Node   // Assigned value
	Name  string // Attribute name
	pos
}

// Invoke represents callee(args...).
type Invoke struct {
	Callee Node   // Invoked expression
	Args   []Node // Arguments in order
	pos
}

// GetIndex represents x[index].
type GetIndex struct {
	X     Node // Indexed object
	Index Node // Index expression
	pos
}

// Namespace represents a bare identifier.
type Namespace struct {
	Name string // Identifier text
	pos
}

// Script represents a sequence of statements separated by ';'.
type Script struct {
	Stmts []Node // Statements in source order
	pos
}
