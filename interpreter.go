package maple

import (
	"github.com/rs/zerolog"
)

// Eval evaluates source text. A single statement yields its value, several
// statements yield an Array of per-statement values.
func Eval(src string, opt *EvalOptions) (*Value, error) {
	vals, err := Run(src, opt)
	if err != nil {
		return nil, err
	}
	if len(vals) == 1 {
		return vals[0], nil
	}

	return Arr(vals...), nil
}

// Run evaluates source text and returns the value of every statement in order.
func Run(src string, opt *EvalOptions) ([]*Value, error) {
	eopt := opt.normalize()
	s, err := Parse(src, &eopt.Parse)
	if err != nil {
		eopt.Logger.Debug().Err(err).Msg("parse failed")
		return nil, err
	}

	return NewInterpreter(&eopt).RunScript(s)
}

// Interpreter is a tree-walking evaluator. It keeps no state between calls
// besides its options and may be reused for any number of scripts.
type Interpreter struct {
	log zerolog.Logger // Trace logger
	ops Ops            // Operator protocol
}

// NewInterpreter creates an interpreter.
func NewInterpreter(opt *EvalOptions) *Interpreter {
	eopt := opt.normalize()
	return &Interpreter{
		log: *eopt.Logger,
		ops: Ops{MaxIntBits: eopt.MaxIntBits},
	}
}

// Ops returns the operator protocol used by the interpreter.
func (ip *Interpreter) Ops() *Ops {
	return &ip.ops
}

// RunScript evaluates every statement of s in source order.
func (ip *Interpreter) RunScript(s *Script) ([]*Value, error) {
	out := make([]*Value, 0, len(s.Stmts))
	for i, stmt := range s.Stmts {
		v, err := ip.Evaluate(stmt)
		if err != nil {
			line, col := stmt.Pos()
			ip.log.Debug().Err(err).Int("stmt", i).Int("line", line).Int("col", col).Msg("evaluation failed")
			return nil, err
		}

		ip.log.Trace().Int("stmt", i).Stringer("kind", v.kind).Stringer("value", v).Msg("statement evaluated")
		out = append(out, v)
	}

	return out, nil
}

// Evaluate evaluates a node in post-order. A Script evaluates to an Array of
// its statement values. A node type without an evaluation rule panics with an
// *InternalError.
func (ip *Interpreter) Evaluate(n Node) (*Value, error) {
	v, err := ip.eval(n)
	if err != nil {
		line, col := n.Pos()
		return nil, withPos(err, line, col)
	}

	return v, nil
}

// eval dispatches on the node type.
func (ip *Interpreter) eval(n Node) (*Value, error) {
	switch n := n.(type) {
	case *Number:
		if n.IsInt {
			return BigInt(n.Int), nil
		}
		return Float(n.Float), nil

	case *String:
		return Str(n.Value), nil

	case *Boolean:
		return Bool(n.Value), nil

	case *Array:
		elems := make([]*Value, 0, len(n.Elems))
		for _, e := range n.Elems {
			v, err := ip.Evaluate(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return Arr(elems...), nil

	case *BinaryOp:
		l, err := ip.Evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := ip.Evaluate(n.Right)
		if err != nil {
			return nil, err
		}
		v, err := ip.ops.Binary(n.Op.Kind, l, r)
		return v, withPos(err, n.Op.Line, n.Op.Col)

	case *Negation:
		x, err := ip.Evaluate(n.X)
		if err != nil {
			return nil, err
		}
		return ip.ops.Not(x)

	case *AbsoluteValue:
		x, err := ip.Evaluate(n.X)
		if err != nil {
			return nil, err
		}
		return ip.ops.Abs(x)

	case *GetAttribute:
		x, err := ip.Evaluate(n.X)
		if err != nil {
			return nil, err
		}
		return ip.ops.GetAttr(x, n.Name)

	case *SetAttribute:
		x, err := ip.Evaluate(n.X)
		if err != nil {
			return nil, err
		}
		v, err := ip.Evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		if err := ip.ops.SetAttr(x, n.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *Invoke:
		callee, err := ip.Evaluate(n.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]*Value, 0, len(n.Args))
		for _, a := range n.Args {
			v, err := ip.Evaluate(a)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return ip.ops.Invoke(callee, args)

	case *GetIndex:
		x, err := ip.Evaluate(n.X)
		if err != nil {
			return nil, err
		}
		idx, err := ip.Evaluate(n.Index)
		if err != nil {
			return nil, err
		}
		return ip.ops.Index(x, idx)

	case *Namespace:
		if c, ok := LookupClass(n.Name); ok {
			return c, nil
		}
		return nil, newError(NamespaceError, "Unknown namespace: `%s`.", n.Name)

	case *Script:
		vals, err := ip.RunScript(n)
		if err != nil {
			return nil, err
		}
		return Arr(vals...), nil
	}

	panic(internalf("no evaluation rule defined for %T", n))
}
