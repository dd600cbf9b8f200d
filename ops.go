package maple

import (
	"math"
	"math/big"
)

// DefaultMaxIntBits bounds the size of Integer results.
const DefaultMaxIntBits = 1 << 20

// Ops applies the operator protocol to runtime values.
type Ops struct {
	// MaxIntBits bounds the bit length of Integer results. Zero means DefaultMaxIntBits.
	MaxIntBits int
}

// opNames are the operation names used in type errors.
var opNames = map[TokenKind]string{
	TokPlus:  "PLUS",
	TokMinus: "MINUS",
	TokMul:   "MUL",
	TokPow:   "POW",
	TokDiv:   "DIV",
	TokMod:   "MOD",
	TokTetr:  "TETR",
	TokAnd:   "logical conjunction",
	TokOr:    "logical alternative",
	TokEq:    "EQ",
	TokNe:    "NE",
	TokGt:    "GT",
	TokGe:    "GE",
	TokLt:    "LT",
	TokLe:    "LE",
}

// unsupported returns the fallthrough error of a binary operator.
func unsupported(op TokenKind, l, r *Value) error {
	return typeErrorf("%s and %s don't support %s operations together.", l.kind, r.kind, opNames[op])
}

// maxBits returns the effective Integer size bound.
func (o *Ops) maxBits() int {
	if o == nil || o.MaxIntBits <= 0 {
		return DefaultMaxIntBits
	}

	return o.MaxIntBits
}

// checkInt fails when n exceeds the Integer size bound.
func (o *Ops) checkInt(n *big.Int) (*Value, error) {
	if n.BitLen() > o.maxBits() {
		return nil, typeErrorf("integer overflow: result exceeds %d bits", o.maxBits())
	}

	return &Value{kind: KindInteger, i: n}, nil
}

// Binary applies a binary operator. op is the operator token kind.
func (o *Ops) Binary(op TokenKind, l, r *Value) (*Value, error) {
	mustValue(l, "left operand")
	mustValue(r, "right operand")

	switch op {
	case TokPlus, TokMinus, TokMul:
		return o.arith(op, l, r)
	case TokPow:
		return o.pow(l, r)
	case TokDiv:
		return o.div(l, r)
	case TokMod:
		return o.mod(l, r)
	case TokTetr:
		return o.tetr(l, r)
	case TokAnd, TokOr:
		if l.kind != KindBoolean || r.kind != KindBoolean {
			return nil, unsupported(op, l, r)
		}
		if op == TokAnd {
			return Bool(l.b && r.b), nil
		}
		return Bool(l.b || r.b), nil
	case TokEq:
		return Bool(equal(l, r)), nil
	case TokNe:
		return Bool(!equal(l, r)), nil
	case TokGt, TokGe, TokLt, TokLe:
		return compare(op, l, r)
	}

	panic(internalf("token %s is not a binary operator", op))
}

// arith implements +, - and * including String and Array concatenation.
func (o *Ops) arith(op TokenKind, l, r *Value) (*Value, error) {
	switch {
	case l.kind == KindInteger && r.kind == KindInteger:
		n := new(big.Int)
		switch op {
		case TokPlus:
			n.Add(l.i, r.i)
		case TokMinus:
			n.Sub(l.i, r.i)
		default:
			if l.i.BitLen()+r.i.BitLen() > o.maxBits()+1 {
				return nil, typeErrorf("integer overflow: result exceeds %d bits", o.maxBits())
			}
			n.Mul(l.i, r.i)
		}
		return o.checkInt(n)

	case l.isNumeric() && r.isNumeric():
		x, y := l.toFloat(), r.toFloat()
		switch op {
		case TokPlus:
			return Float(x + y), nil
		case TokMinus:
			return Float(x - y), nil
		default:
			return Float(x * y), nil
		}

	case op == TokPlus && l.kind == KindString && r.kind == KindString:
		return Str(l.s + r.s), nil

	case op == TokPlus && l.kind == KindArray && r.kind == KindArray:
		elems := make([]*Value, 0, len(l.elems)+len(r.elems))
		elems = append(elems, l.elems...)
		return Arr(append(elems, r.elems...)...), nil
	}

	return nil, unsupported(op, l, r)
}

// pow implements **.
func (o *Ops) pow(l, r *Value) (*Value, error) {
	if !l.isNumeric() || !r.isNumeric() {
		return nil, unsupported(TokPow, l, r)
	}

	if l.kind == KindInteger && r.kind == KindInteger && r.i.Sign() >= 0 {
		// 0, 1 and -1 stay small under any exponent.
		if l.i.CmpAbs(big.NewInt(1)) > 0 {
			limit := int64(o.maxBits())
			if !r.i.IsInt64() || r.i.Int64() > limit || int64(l.i.BitLen()-1)*r.i.Int64() > limit {
				return nil, typeErrorf("integer overflow: result exceeds %d bits", o.maxBits())
			}
		}
		return o.checkInt(new(big.Int).Exp(l.i, r.i, nil))
	}

	x, y := l.toFloat(), r.toFloat()
	if x == 0 && y < 0 {
		return nil, typeErrorf("division by zero: 0 cannot be raised to a negative power")
	}

	return Float(math.Pow(x, y)), nil
}

// div implements /, which always yields a Float.
func (o *Ops) div(l, r *Value) (*Value, error) {
	if !l.isNumeric() || !r.isNumeric() {
		return nil, unsupported(TokDiv, l, r)
	}
	if isZero(r) {
		return nil, typeErrorf("division by zero")
	}

	if l.kind == KindInteger && r.kind == KindInteger {
		f, _ := new(big.Rat).SetFrac(l.i, r.i).Float64()
		return Float(f), nil
	}

	return Float(l.toFloat() / r.toFloat()), nil
}

// mod implements %, a floored modulo whose sign follows the divisor. It yields an Integer.
func (o *Ops) mod(l, r *Value) (*Value, error) {
	if !l.isNumeric() || !r.isNumeric() {
		return nil, unsupported(TokMod, l, r)
	}
	if isZero(r) {
		return nil, typeErrorf("modulo by zero")
	}

	if l.kind == KindInteger && r.kind == KindInteger {
		m := new(big.Int).Rem(l.i, r.i)
		if m.Sign() != 0 && m.Sign() != r.i.Sign() {
			m.Add(m, r.i)
		}
		return &Value{kind: KindInteger, i: m}, nil
	}

	x, y := l.toFloat(), r.toFloat()
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}

	return floatToInt(m)
}

// tetr implements ***: starting from 1, acc = base ** acc is repeated n times.
func (o *Ops) tetr(l, r *Value) (*Value, error) {
	if !l.isNumeric() {
		return nil, unsupported(TokTetr, l, r)
	}
	if r.kind != KindInteger {
		return nil, typeErrorf("Expected the TETR operation exponent to be INT-type, got %s.", r.kind)
	}

	acc := Int(1)
	if l.kind == KindFloat {
		acc = Float(1)
	}

	var prev *Value
	for n := new(big.Int).Set(r.i); n.Sign() > 0; n.Sub(n, big.NewInt(1)) {
		next, err := o.pow(l, acc)
		if err != nil {
			return nil, err
		}

		switch {
		case equal(next, acc):
			// Fixed point: further iterations change nothing.
			return next, nil
		case prev != nil && equal(next, prev):
			// Two-cycle: the parity of the remaining iterations decides.
			if n.Bit(0) == 1 {
				return next, nil
			}
			return acc, nil
		case next.kind == KindFloat && (math.IsNaN(next.f) || math.IsInf(next.f, 0)):
			return next, nil
		}

		prev, acc = acc, next
	}

	return acc, nil
}

// Not applies '!': factorial on Integers, negation on Booleans.
// Integers below 1 yield 1, the product over an empty range.
func (o *Ops) Not(v *Value) (*Value, error) {
	mustValue(v, "operand")

	switch v.kind {
	case KindBoolean:
		return Bool(!v.b), nil
	case KindInteger:
		if v.i.Sign() <= 0 {
			return Int(1), nil
		}
		if !v.i.IsInt64() {
			return nil, typeErrorf("integer overflow: factorial of %s", v.i)
		}

		n := v.i.Int64()
		acc := big.NewInt(1)
		for k := int64(2); k <= n; k++ {
			acc.Mul(acc, big.NewInt(k))
			if acc.BitLen() > o.maxBits() {
				return nil, typeErrorf("integer overflow: result exceeds %d bits", o.maxBits())
			}
		}
		return &Value{kind: KindInteger, i: acc}, nil
	}

	return nil, typeErrorf("%s doesn't support logical negation operations.", v.kind)
}

// Abs returns the absolute value of an Integer or Float.
func (o *Ops) Abs(v *Value) (*Value, error) {
	mustValue(v, "operand")

	switch v.kind {
	case KindInteger:
		return &Value{kind: KindInteger, i: new(big.Int).Abs(v.i)}, nil
	case KindFloat:
		return Float(math.Abs(v.f)), nil
	}

	return nil, typeErrorf("%s-type object doesn't have an Absolute Value.", v.kind)
}

// Index returns v[idx]. Only Arrays are indexable and idx must be an Integer within bounds.
func (o *Ops) Index(v, idx *Value) (*Value, error) {
	mustValue(v, "indexed object")
	mustValue(idx, "index")

	if v.kind != KindArray {
		return nil, typeErrorf("%s doesn't support INDEX operations.", v.kind)
	}
	if idx.kind != KindInteger {
		return nil, typeErrorf("ARRAY index must be INT-type, got %s.", idx.kind)
	}
	if idx.i.Sign() < 0 || !idx.i.IsInt64() || idx.i.Int64() > int64(len(v.elems)-1) {
		return nil, typeErrorf("ARRAY index %s out of bound, upper bound is %d.", idx.i, len(v.elems)-1)
	}

	return v.elems[idx.i.Int64()], nil
}

// Invoke calls a Method or Class value with args.
func (o *Ops) Invoke(v *Value, args []*Value) (*Value, error) {
	mustValue(v, "invoked object")
	for i, a := range args {
		if a == nil {
			panic(internalf("argument %d is not a runtime value", i))
		}
	}

	switch v.kind {
	case KindMethod:
		out, err := v.method.Fn(o, v.method.Recv, args)
		if err != nil {
			return nil, err
		}
		mustValue(out, "method result")
		return out, nil

	case KindClass:
		if v.class.New == nil {
			return nil, typeErrorf("%s class cannot be constructed.", v.class.Name)
		}
		out, err := v.class.New(o, args)
		if err != nil {
			return nil, err
		}
		mustValue(out, "constructor result")
		return out, nil
	}

	return nil, newError(InvocationError, "%s is not invokable.", v.kind)
}

// GetAttr looks name up in the explicit attribute storage of v, then in the
// built-in registry of its kind.
func (o *Ops) GetAttr(v *Value, name string) (*Value, error) {
	mustValue(v, "object")

	if a, ok := v.attrs[name]; ok {
		return a, nil
	}
	if a, ok := lookupBuiltin(v, name); ok {
		return a, nil
	}

	return nil, newError(AttributeError, "%s object has no attribute `%s`.", v.kind, name)
}

// SetAttr stores val under name in the attribute storage of v.
func (o *Ops) SetAttr(v *Value, name string, val *Value) error {
	mustValue(v, "object")
	if val == nil {
		return typeErrorf("cannot assign an empty value to attribute `%s`.", name)
	}

	if v.attrs == nil {
		v.attrs = make(map[string]*Value)
	}
	v.attrs[name] = val

	return nil
}

// equal reports structural equality. Values of unrelated kinds are never equal.
func equal(l, r *Value) bool {
	switch {
	case l.isNumeric() && r.isNumeric():
		c, ok := numCmp(l, r)
		return ok && c == 0
	case l.kind != r.kind:
		return false
	}

	switch l.kind {
	case KindString:
		return l.s == r.s
	case KindBoolean:
		return l.b == r.b
	case KindArray:
		if len(l.elems) != len(r.elems) {
			return false
		}
		for i := range l.elems {
			if !equal(l.elems[i], r.elems[i]) {
				return false
			}
		}
		return true
	case KindMethod:
		return l.method.Name == r.method.Name && l.method.Recv == r.method.Recv
	case KindClass:
		return l.class == r.class
	}

	panic(internalf("unknown value kind %d", int(l.kind)))
}

// compare implements >, >=, < and <= between numeric values.
func compare(op TokenKind, l, r *Value) (*Value, error) {
	if !l.isNumeric() || !r.isNumeric() {
		return nil, unsupported(op, l, r)
	}

	c, ok := numCmp(l, r)
	if !ok {
		// NaN is unordered.
		return Bool(false), nil
	}

	switch op {
	case TokGt:
		return Bool(c > 0), nil
	case TokGe:
		return Bool(c >= 0), nil
	case TokLt:
		return Bool(c < 0), nil
	default:
		return Bool(c <= 0), nil
	}
}

// numCmp compares two numeric values exactly. ok is false when either is NaN.
func numCmp(l, r *Value) (int, bool) {
	if l.kind == KindInteger && r.kind == KindInteger {
		return l.i.Cmp(r.i), true
	}

	x, ok := bigFloat(l)
	if !ok {
		return 0, false
	}
	y, ok := bigFloat(r)
	if !ok {
		return 0, false
	}

	return x.Cmp(y), true
}

// bigFloat converts a numeric value to an exact big.Float.
func bigFloat(v *Value) (*big.Float, bool) {
	if v.kind == KindInteger {
		return new(big.Float).SetInt(v.i), true
	}
	if math.IsNaN(v.f) {
		return nil, false
	}

	return big.NewFloat(v.f), true
}

// isZero reports whether a numeric value is zero.
func isZero(v *Value) bool {
	if v.kind == KindInteger {
		return v.i.Sign() == 0
	}

	return v.f == 0
}

// floatToInt truncates a float toward zero into an Integer.
func floatToInt(f float64) (*Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, typeErrorf("cannot convert %s to INT.", formatFloat(f))
	}

	n, _ := big.NewFloat(math.Trunc(f)).Int(nil)
	return &Value{kind: KindInteger, i: n}, nil
}
