package maple

import (
	"math/big"
	"sort"
)

// Kind is the type tag of a runtime value.
type Kind int

// value kinds.
const (
	KindInteger Kind = iota // Arbitrary precision integer
	KindFloat               // float64
	KindString              // Text
	KindBoolean             // true or false
	KindArray               // Ordered sequence of values
	KindMethod              // Native function bound to a receiver
	KindClass               // Type descriptor with an optional constructor
)

var kindNames = [...]string{
	KindInteger: "INT",
	KindFloat:   "FLOAT",
	KindString:  "STRING",
	KindBoolean: "BOOLEAN",
	KindArray:   "ARRAY",
	KindMethod:  "METHOD",
	KindClass:   "CLASS",
}

// String returns the register name of the kind (INT, FLOAT, ...).
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		panic(internalf("unknown value kind %d", int(k)))
	}

	return kindNames[k]
}

// NativeFunc implements a built-in method. Recv is the value the method was read from.
type NativeFunc func(o *Ops, recv *Value, args []*Value) (*Value, error)

// Method is a native function bound to its receiver.
type Method struct {
	Recv *Value     // Receiver the method was looked up on
	Fn   NativeFunc // Native implementation
	Name string     // Attribute name the method was read as
}

// Class describes a value kind. New is its constructor hook, nil when the
// kind cannot be constructed from a call.
type Class struct {
	New  func(o *Ops, args []*Value) (*Value, error) // Constructor hook
	Name string                                      // Class name (Integer, Float, ...)
	Kind Kind                                        // Kind of the constructed values
}

// Value is a runtime value. The payload field in use is selected by kind.
// Values are created fresh for every evaluation step and are not shared
// between top-level invocations.
type Value struct {
	i      *big.Int          // KindInteger
	method *Method           // KindMethod
	class  *Class            // KindClass
	attrs  map[string]*Value // Explicitly set attributes
	s      string            // KindString
	elems  []*Value          // KindArray
	f      float64           // KindFloat
	kind   Kind              // Type tag
	b      bool              // KindBoolean
}

// Int returns an Integer value.
func Int(n int64) *Value {
	return &Value{kind: KindInteger, i: big.NewInt(n)}
}

// BigInt returns an Integer value holding a copy of n.
func BigInt(n *big.Int) *Value {
	return &Value{kind: KindInteger, i: new(big.Int).Set(n)}
}

// Float returns a Float value.
func Float(f float64) *Value {
	return &Value{kind: KindFloat, f: f}
}

// Str returns a String value.
func Str(s string) *Value {
	return &Value{kind: KindString, s: s}
}

// Bool returns a Boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBoolean, b: b}
}

// Arr returns an Array value over elems.
func Arr(elems ...*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}

	return &Value{kind: KindArray, elems: elems}
}

// NewMethod returns a Method value binding fn to recv.
func NewMethod(name string, recv *Value, fn NativeFunc) *Value {
	return &Value{kind: KindMethod, method: &Method{Name: name, Recv: recv, Fn: fn}}
}

// NewClass returns a Class value for c.
func NewClass(c *Class) *Value {
	return &Value{kind: KindClass, class: c}
}

// Kind returns the type tag of the value.
func (v *Value) Kind() Kind {
	return v.kind
}

// Integer returns the integer payload. It is nil unless Kind is KindInteger.
func (v *Value) Integer() *big.Int {
	return v.i
}

// Float64 returns the float payload.
func (v *Value) Float64() float64 {
	return v.f
}

// Text returns the string payload.
func (v *Value) Text() string {
	return v.s
}

// Truth returns the boolean payload.
func (v *Value) Truth() bool {
	return v.b
}

// Elems returns the array payload.
func (v *Value) Elems() []*Value {
	return v.elems
}

// Method returns the method payload.
func (v *Value) Method() *Method {
	return v.method
}

// Class returns the class payload.
func (v *Value) Class() *Class {
	return v.class
}

// String renders the value in source syntax.
func (v *Value) String() string {
	return Format(v)
}

// Attr returns an explicitly set attribute.
func (v *Value) Attr(name string) (*Value, bool) {
	a, ok := v.attrs[name]
	return a, ok
}

// AttrNames returns the sorted names of explicitly set attributes.
func (v *Value) AttrNames() []string {
	names := make([]string, 0, len(v.attrs))
	for k := range v.attrs {
		names = append(names, k)
	}
	sort.Strings(names)

	return names
}

// isNumeric reports whether the value is an Integer or a Float.
func (v *Value) isNumeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// toFloat converts a numeric value to float64.
func (v *Value) toFloat() float64 {
	if v.kind == KindFloat {
		return v.f
	}

	f, _ := new(big.Float).SetInt(v.i).Float64()
	return f
}

// mustValue panics with an InternalError when v is not a runtime value.
func mustValue(v *Value, role string) {
	if v == nil {
		panic(internalf("%s is not a runtime value", role))
	}
}
