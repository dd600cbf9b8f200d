package maple

import (
	"math"
	"math/big"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// builtinKey identifies a native method.
type builtinKey struct {
	name string
	kind Kind
}

// builtins maps (kind, name) to a zero-argument native method.
// It is populated at init and read-only afterwards.
var builtins = map[builtinKey]NativeFunc{}

// classes holds one descriptor per kind.
var classes = map[Kind]*Class{
	KindInteger: {Name: "Integer", Kind: KindInteger, New: newInteger},
	KindFloat:   {Name: "Float", Kind: KindFloat, New: newFloat},
	KindString:  {Name: "String", Kind: KindString, New: newString},
	KindBoolean: {Name: "Boolean", Kind: KindBoolean, New: newBoolean},
	KindArray:   {Name: "Array", Kind: KindArray, New: newArray},
	KindMethod:  {Name: "Method", Kind: KindMethod},
	KindClass:   {Name: "Class", Kind: KindClass},
}

// ClassOf returns the Class value describing kind k.
func ClassOf(k Kind) *Value {
	c, ok := classes[k]
	if !ok {
		panic(internalf("no class registered for kind %d", int(k)))
	}

	return NewClass(c)
}

// LookupClass resolves a class by name (Integer, Float, ...).
func LookupClass(name string) (*Value, bool) {
	for _, c := range classes {
		if c.Name == name {
			return NewClass(c), true
		}
	}

	return nil, false
}

// Builtins returns the sorted built-in attribute names of kind k, including "type".
func Builtins(k Kind) []string {
	names := []string{"type"}
	for key := range builtins {
		if key.kind == k {
			names = append(names, key.name)
		}
	}
	sort.Strings(names)

	return names
}

// hasBuiltin reports whether kind k exposes name.
func hasBuiltin(k Kind, name string) bool {
	if name == "type" {
		return true
	}
	_, ok := builtins[builtinKey{kind: k, name: name}]
	return ok
}

// lookupBuiltin returns the registry entry for name bound to v.
func lookupBuiltin(v *Value, name string) (*Value, bool) {
	if name == "type" {
		return ClassOf(v.kind), true
	}

	fn, ok := builtins[builtinKey{kind: v.kind, name: name}]
	if !ok {
		return nil, false
	}

	return NewMethod(name, v, fn), true
}

// register adds zero-argument methods for kind k.
func register(k Kind, methods map[string]func(o *Ops, v *Value) (*Value, error)) {
	for name, fn := range methods {
		builtins[builtinKey{kind: k, name: name}] = noArgs(name, fn)
	}
}

// noArgs adapts a zero-argument method to NativeFunc.
func noArgs(name string, fn func(o *Ops, v *Value) (*Value, error)) NativeFunc {
	return func(o *Ops, recv *Value, args []*Value) (*Value, error) {
		if len(args) != 0 {
			return nil, typeErrorf("%s.%s takes no arguments (%d given).", recv.kind, name, len(args))
		}
		return fn(o, recv)
	}
}

func init() {
	for k := range classes {
		register(k, map[string]func(o *Ops, v *Value) (*Value, error){
			"string": func(_ *Ops, v *Value) (*Value, error) { return Str(Format(v)), nil },
		})
	}

	register(KindInteger, map[string]func(o *Ops, v *Value) (*Value, error){
		"abs":       (*Ops).Abs,
		"factorial": (*Ops).Not,
		"float":     func(_ *Ops, v *Value) (*Value, error) { return Float(v.toFloat()), nil },
		"bits":      func(_ *Ops, v *Value) (*Value, error) { return Int(int64(v.i.BitLen())), nil },
	})

	register(KindFloat, map[string]func(o *Ops, v *Value) (*Value, error){
		"abs":     (*Ops).Abs,
		"floor":   func(_ *Ops, v *Value) (*Value, error) { return floatToInt(math.Floor(v.f)) },
		"ceil":    func(_ *Ops, v *Value) (*Value, error) { return floatToInt(math.Ceil(v.f)) },
		"round":   func(_ *Ops, v *Value) (*Value, error) { return floatToInt(math.Round(v.f)) },
		"integer": func(_ *Ops, v *Value) (*Value, error) { return floatToInt(v.f) },
	})

	register(KindString, map[string]func(o *Ops, v *Value) (*Value, error){
		"length": func(_ *Ops, v *Value) (*Value, error) { return Int(int64(len([]rune(v.s)))), nil },
		"upper":  func(_ *Ops, v *Value) (*Value, error) { return Str(strings.ToUpper(v.s)), nil },
		"lower":  func(_ *Ops, v *Value) (*Value, error) { return Str(strings.ToLower(v.s)), nil },
		"trim":   func(_ *Ops, v *Value) (*Value, error) { return Str(strings.TrimSpace(v.s)), nil },
		"reverse": func(_ *Ops, v *Value) (*Value, error) {
			r := []rune(v.s)
			slices.Reverse(r)
			return Str(string(r)), nil
		},
		"integer": func(o *Ops, v *Value) (*Value, error) { return newInteger(o, []*Value{v}) },
		"float":   func(o *Ops, v *Value) (*Value, error) { return newFloat(o, []*Value{v}) },
	})

	register(KindBoolean, map[string]func(o *Ops, v *Value) (*Value, error){
		"not":     (*Ops).Not,
		"integer": func(o *Ops, v *Value) (*Value, error) { return newInteger(o, []*Value{v}) },
	})

	register(KindArray, map[string]func(o *Ops, v *Value) (*Value, error){
		"length": func(_ *Ops, v *Value) (*Value, error) { return Int(int64(len(v.elems))), nil },
		"first":  func(o *Ops, v *Value) (*Value, error) { return o.Index(v, Int(0)) },
		"last":   func(o *Ops, v *Value) (*Value, error) { return o.Index(v, Int(int64(len(v.elems)-1))) },
		"reverse": func(_ *Ops, v *Value) (*Value, error) {
			elems := slices.Clone(v.elems)
			slices.Reverse(elems)
			return Arr(elems...), nil
		},
		"sum": func(o *Ops, v *Value) (*Value, error) {
			acc := Int(0)
			for _, e := range v.elems {
				var err error
				if acc, err = o.Binary(TokPlus, acc, e); err != nil {
					return nil, err
				}
			}
			return acc, nil
		},
	})

	register(KindMethod, map[string]func(o *Ops, v *Value) (*Value, error){
		"name": func(_ *Ops, v *Value) (*Value, error) { return Str(v.method.Name), nil },
	})

	register(KindClass, map[string]func(o *Ops, v *Value) (*Value, error){
		"name": func(_ *Ops, v *Value) (*Value, error) { return Str(v.class.Name), nil },
	})
}

// oneArg validates a single constructor argument.
func oneArg(class string, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, typeErrorf("%s() takes exactly one argument (%d given).", class, len(args))
	}

	return args[0], nil
}

// newInteger converts its argument to an Integer.
func newInteger(o *Ops, args []*Value) (*Value, error) {
	v, err := oneArg("Integer", args)
	if err != nil {
		return nil, err
	}

	switch v.kind {
	case KindInteger:
		return BigInt(v.i), nil
	case KindFloat:
		return floatToInt(v.f)
	case KindBoolean:
		if v.b {
			return Int(1), nil
		}
		return Int(0), nil
	case KindString:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v.s), 10)
		if !ok {
			return nil, typeErrorf("cannot convert %q to INT.", v.s)
		}
		return o.checkInt(n)
	}

	return nil, typeErrorf("cannot convert %s to INT.", v.kind)
}

// newFloat converts its argument to a Float.
func newFloat(_ *Ops, args []*Value) (*Value, error) {
	v, err := oneArg("Float", args)
	if err != nil {
		return nil, err
	}

	switch v.kind {
	case KindInteger, KindFloat:
		return Float(v.toFloat()), nil
	case KindBoolean:
		if v.b {
			return Float(1), nil
		}
		return Float(0), nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return nil, typeErrorf("cannot convert %q to FLOAT.", v.s)
		}
		return Float(f), nil
	}

	return nil, typeErrorf("cannot convert %s to FLOAT.", v.kind)
}

// newString renders its argument as text. Strings are returned unquoted.
func newString(_ *Ops, args []*Value) (*Value, error) {
	v, err := oneArg("String", args)
	if err != nil {
		return nil, err
	}
	if v.kind == KindString {
		return Str(v.s), nil
	}

	return Str(Format(v)), nil
}

// newBoolean converts its argument to its truth value.
func newBoolean(_ *Ops, args []*Value) (*Value, error) {
	v, err := oneArg("Boolean", args)
	if err != nil {
		return nil, err
	}

	switch v.kind {
	case KindBoolean:
		return Bool(v.b), nil
	case KindInteger:
		return Bool(v.i.Sign() != 0), nil
	case KindFloat:
		return Bool(v.f != 0), nil
	case KindString:
		return Bool(v.s != ""), nil
	case KindArray:
		return Bool(len(v.elems) != 0), nil
	}

	return Bool(true), nil
}

// newArray collects its arguments into an Array.
func newArray(_ *Ops, args []*Value) (*Value, error) {
	return Arr(slices.Clone(args)...), nil
}
