package maple

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// Format renders a runtime value. Integer, finite Float, String, Boolean and
// Array values render in source syntax and tokenize back to an equivalent
// literal. Non-finite floats render as nan, inf and -inf, which are not
// literals and read back as namespaces.
func Format(v *Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

// FormatNode renders an AST node as source text. Binary operations are fully
// parenthesized so the output parses back to the same tree.
func FormatNode(n Node) string {
	var b strings.Builder
	w := &writer{w: &b}
	w.writeNode(n)
	return b.String()
}

// EncodeScript writes a script as source text, one statement per line.
func EncodeScript(w io.Writer, s *Script) error {
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)
	wr := &writer{w: bw}
	for _, stmt := range s.Stmts {
		wr.writeNode(stmt)
		wr.writeString(";\n")
	}

	return bw.Flush()
}

// writeValue writes a runtime value.
func writeValue(b *strings.Builder, v *Value) {
	if v == nil {
		panic(internalf("cannot format a missing value"))
	}

	switch v.kind {
	case KindInteger:
		b.WriteString(v.i.String())
	case KindFloat:
		b.WriteString(formatFloat(v.f))
	case KindString:
		b.WriteString(quote(v.s))
	case KindBoolean:
		b.WriteString(strconv.FormatBool(v.b))
	case KindArray:
		b.WriteByte('{')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, e)
		}
		b.WriteByte('}')
	case KindMethod:
		b.WriteString("<method " + v.method.Recv.kind.String() + "." + v.method.Name + ">")
	case KindClass:
		b.WriteString("<class " + v.class.Name + ">")
	default:
		panic(internalf("unknown value kind %d", int(v.kind)))
	}
}

// writer writes AST nodes.
type writer struct {
	w io.StringWriter // Destination
}

// writeString writes s.
func (w *writer) writeString(s string) {
	_, _ = w.w.WriteString(s)
}

// writeList writes comma separated nodes.
func (w *writer) writeList(ns []Node) {
	for i, n := range ns {
		if i > 0 {
			w.writeString(", ")
		}
		w.writeNode(n)
	}
}

// writeOperand writes the operand of a postfix operator, wrapping negations
// so that the postfix does not bind to their inner operand.
func (w *writer) writeOperand(n Node) {
	if _, ok := n.(*Negation); ok {
		w.writeString("(")
		w.writeNode(n)
		w.writeString(")")
		return
	}
	w.writeNode(n)
}

// writeNode writes a node.
func (w *writer) writeNode(n Node) {
	switch n := n.(type) {
	case *Number:
		if n.IsInt {
			w.writeString(n.Int.String())
		} else {
			w.writeString(formatFloat(n.Float))
		}
	case *String:
		w.writeString(quote(n.Value))
	case *Boolean:
		w.writeString(strconv.FormatBool(n.Value))
	case *Namespace:
		w.writeString(n.Name)
	case *Array:
		w.writeString("{")
		w.writeList(n.Elems)
		w.writeString("}")
	case *BinaryOp:
		w.writeString("(")
		w.writeNode(n.Left)
		w.writeString(" " + n.Op.Kind.Symbol() + " ")
		w.writeNode(n.Right)
		w.writeString(")")
	case *Negation:
		w.writeString("!")
		w.writeOperand(n.X)
	case *AbsoluteValue:
		w.writeString("|")
		w.writeNode(n.X)
		w.writeString("|")
	case *GetAttribute:
		w.writeOperand(n.X)
		w.writeString("." + n.Name)
	case *SetAttribute:
		w.writeOperand(n.X)
		w.writeString("." + n.Name + " = ")
		w.writeNode(n.Value)
	case *Invoke:
		w.writeOperand(n.Callee)
		w.writeString("(")
		w.writeList(n.Args)
		w.writeString(")")
	case *GetIndex:
		w.writeOperand(n.X)
		w.writeString("[")
		w.writeNode(n.Index)
		w.writeString("]")
	case *Script:
		for i, stmt := range n.Stmts {
			if i > 0 {
				w.writeString("; ")
			}
			w.writeNode(stmt)
		}
	default:
		panic(internalf("no writer defined for %T", n))
	}
}

// formatFloat renders a float so that it lexes back as a FLOAT literal.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// quote renders s as a double-quoted string literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')

	return b.String()
}
