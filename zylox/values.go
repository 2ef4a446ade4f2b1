package zylox

import (
	"math"
	"strconv"
	"strings"
)

// Value is the closed set of runtime values: LoxNil, LoxBool,
// LoxNumber, LoxString, *LoxFunction, *NativeFunction, *LoxClass
// and *LoxInstance. String gives the text `print` writes.
type Value interface {
	String() string
	TypeName() string
}

type LoxNil struct{}

var Nil Value = LoxNil{}

func (LoxNil) String() string { return "nil" }
func (LoxNil) TypeName() string { return "nil" }

type LoxBool bool

func (b LoxBool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (LoxBool) TypeName() string { return "boolean" }

type LoxNumber float64

// String drops a trailing ".0", so 3.0 prints as 3. Magnitudes of
// 1e21 and up, or below 1e-7, print in exponent form such as 1E24.
func (n LoxNumber) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); abs >= 1e21 || (abs != 0 && abs < 1e-7) {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'E', -1, 64), "E")
		e, _ := strconv.Atoi(exp)
		return mant + "E" + strconv.Itoa(e)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
func (LoxNumber) TypeName() string { return "number" }

type LoxString string

func (s LoxString) String() string { return string(s) }
func (LoxString) TypeName() string { return "string" }

// Callable is implemented by user functions, natives and classes.
// The interpreter checks Arity against the argument count before
// it ever calls Call.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// LoxFunction pairs a declaration with the environment that was
// current when the declaration ran. Calls run in a fresh child of
// that closure, never of the caller's environment.
type LoxFunction struct {
	Decl    *FunctionStmt
	Closure *Environment
}

func NewLoxFunction(decl *FunctionStmt, closure *Environment) *LoxFunction {
	return &LoxFunction{Decl: decl, Closure: closure}
}

func (f *LoxFunction) String() string { return "<fn " + f.Decl.Name.Lexeme + ">" }
func (*LoxFunction) TypeName() string { return "function" }
func (f *LoxFunction) Arity() int { return len(f.Decl.Params) }
func (f *LoxFunction) Name() string { return f.Decl.Name.Lexeme }

func (f *LoxFunction) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	done, err := in.ExecuteBlock(f.Decl.Body, env)
	if err != nil {
		return Nil, err
	}
	if done.Returned {
		return done.Value, nil
	}
	return Nil, nil
}

type NativeFn func(in *Interpreter, args []Value) (Value, error)

type NativeFunction struct {
	Name  string
	arity int
	Fn    NativeFn
}

func NewNativeFunction(name string, arity int, fn NativeFn) *NativeFunction {
	return &NativeFunction{Name: name, arity: arity, Fn: fn}
}

func (*NativeFunction) String() string { return "<native fn>" }
func (*NativeFunction) TypeName() string { return "native function" }
func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

// LoxClass can only be instantiated: no fields, no methods.
type LoxClass struct {
	Name string
}

func (c *LoxClass) String() string { return c.Name }
func (*LoxClass) TypeName() string { return "class" }
func (*LoxClass) Arity() int { return 0 }

func (c *LoxClass) Call(in *Interpreter, args []Value) (Value, error) {
	return &LoxInstance{Class: c}, nil
}

type LoxInstance struct {
	Class *LoxClass
}

func (i *LoxInstance) String() string { return i.Class.Name + " instance" }
func (*LoxInstance) TypeName() string { return "instance" }

// IsTruthy: nil and false are falsy, everything else is truthy.
func IsTruthy(v Value) bool {
	switch x := v.(type) {
	case nil, LoxNil:
		return false
	case LoxBool:
		return bool(x)
	}
	return true
}

// ValuesEqual never coerces across types: nil only equals nil,
// numbers compare by value, callables and instances by identity.
func ValuesEqual(a, b Value) bool {
	if an, ok := a.(LoxNumber); ok {
		bn, ok := b.(LoxNumber)
		if !ok {
			return false
		}
		if math.IsNaN(float64(an)) && math.IsNaN(float64(bn)) {
			return true
		}
		return an == bn
	}
	return a == b
}

// Stringify is what `print` writes for v.
func Stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
