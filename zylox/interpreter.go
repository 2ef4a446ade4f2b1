package zylox

import (
	"fmt"
	"io"
	"os"
)

// Completion says how a statement finished. A `return` yields
// Returned=true with its value, and every statement-sequence runner
// passes it straight up; only a function call boundary consumes it.
type Completion struct {
	Returned bool
	Value    Value
}

var normal = Completion{}

// Interpreter walks the AST against a chain of environments. It
// persists across runs, so the repl keeps globals and closures alive
// from one line to the next.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[Expr]int
	out     io.Writer
	depth   int
}

// MaxCallDepth bounds recursion so a runaway program gets a
// runtime error instead of exhausting the goroutine stack.
const MaxCallDepth = 4096

func NewInterpreter(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	globals := NewEnvironment(nil)
	in := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[Expr]int),
		out:     out,
	}
	in.ImportNatives()
	return in
}

func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// AddLocals merges a resolver table. Nodes from different runs never
// collide, since the table is keyed by node identity.
func (in *Interpreter) AddLocals(locals map[Expr]int) {
	for e, d := range locals {
		in.locals[e] = d
	}
}

// Interpret runs the statements in order and stops at the first
// runtime error, which is returned as a *RuntimeError.
func (in *Interpreter) Interpret(stmts []Stmt) error {
	for _, s := range stmts {
		done, err := in.Execute(s)
		if err != nil {
			in.env = in.globals
			in.depth = 0
			return err
		}
		if done.Returned {
			// the resolver rejects top-level return; nothing to unwind.
			return nil
		}
	}
	return nil
}

func (in *Interpreter) Execute(s Stmt) (Completion, error) {
	switch s := s.(type) {
	case *ExpressionStmt:
		VPrintf("exec expression stmt")
		_, err := in.Evaluate(s.Expr)
		return normal, err

	case *PrintStmt:
		v, err := in.Evaluate(s.Expr)
		if err != nil {
			return normal, err
		}
		VPrintf("exec print -> %s", Stringify(v))
		fmt.Fprintln(in.out, Stringify(v))
		return normal, nil

	case *VarStmt:
		var v Value = Nil
		if s.Init != nil {
			var err error
			v, err = in.Evaluate(s.Init)
			if err != nil {
				return normal, err
			}
		}
		VPrintf("exec var %s = %s", s.Name.Lexeme, Stringify(v))
		in.env.Define(s.Name.Lexeme, v)
		return normal, nil

	case *BlockStmt:
		return in.ExecuteBlock(s.Stmts, NewEnvironment(in.env))

	case *IfStmt:
		cond, err := in.Evaluate(s.Cond)
		if err != nil {
			return normal, err
		}
		if IsTruthy(cond) {
			return in.Execute(s.Then)
		}
		if s.Else != nil {
			return in.Execute(s.Else)
		}
		return normal, nil

	case *WhileStmt:
		for {
			cond, err := in.Evaluate(s.Cond)
			if err != nil {
				return normal, err
			}
			if !IsTruthy(cond) {
				return normal, nil
			}
			done, err := in.Execute(s.Body)
			if err != nil || done.Returned {
				return done, err
			}
		}

	case *FunctionStmt:
		VPrintf("exec fun %s/%d", s.Name.Lexeme, len(s.Params))
		in.env.Define(s.Name.Lexeme, NewLoxFunction(s, in.env))
		return normal, nil

	case *ReturnStmt:
		var v Value = Nil
		if s.Value != nil {
			var err error
			v, err = in.Evaluate(s.Value)
			if err != nil {
				return normal, err
			}
		}
		return Completion{Returned: true, Value: v}, nil

	case *ClassStmt:
		// two-phase: bind the name first, then the class value.
		in.env.Define(s.Name.Lexeme, Nil)
		class := &LoxClass{Name: s.Name.Lexeme}
		if err := in.env.Assign(s.Name, class); err != nil {
			return normal, err
		}
		return normal, nil
	}
	return normal, fmt.Errorf("unknown statement type %T", s)
}

// ExecuteBlock runs stmts in env and restores the previous environment
// on every way out, returns and errors included.
func (in *Interpreter) ExecuteBlock(stmts []Stmt, env *Environment) (Completion, error) {
	previous := in.env
	in.env = env
	defer func() {
		in.env = previous
	}()

	for _, s := range stmts {
		done, err := in.Execute(s)
		if err != nil || done.Returned {
			return done, err
		}
	}
	return normal, nil
}

func (in *Interpreter) Evaluate(e Expr) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		if e.Value == nil {
			return Nil, nil
		}
		return e.Value, nil

	case *Grouping:
		return in.Evaluate(e.Inner)

	case *Unary:
		right, err := in.Evaluate(e.Operand)
		if err != nil {
			return Nil, err
		}
		switch e.Op.Kind {
		case TokenMinus:
			n, ok := right.(LoxNumber)
			if !ok {
				return Nil, runtimeErrorf(e.Op, "Operand must be a number.")
			}
			return -n, nil
		case TokenBang:
			return LoxBool(!IsTruthy(right)), nil
		}
		return Nil, runtimeErrorf(e.Op, "Unknown unary operator '%s'.", e.Op.Lexeme)

	case *Binary:
		return in.evalBinary(e)

	case *Logical:
		left, err := in.Evaluate(e.Left)
		if err != nil {
			return Nil, err
		}
		if e.Op.Kind == TokenOr {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return in.Evaluate(e.Right)

	case *Variable:
		return in.lookUpVariable(e.Name, e)

	case *Assign:
		v, err := in.Evaluate(e.Value)
		if err != nil {
			return Nil, err
		}
		if d, ok := in.locals[e]; ok {
			err = in.env.AssignAt(d, e.Name, v)
		} else {
			err = in.globals.Assign(e.Name, v)
		}
		if err != nil {
			return Nil, err
		}
		return v, nil

	case *Call:
		return in.evalCall(e)
	}
	return Nil, fmt.Errorf("unknown expression type %T", e)
}

func (in *Interpreter) lookUpVariable(name Token, e Expr) (Value, error) {
	if d, ok := in.locals[e]; ok {
		return in.env.GetAt(d, name)
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evalCall(e *Call) (Value, error) {
	callee, err := in.Evaluate(e.Callee)
	if err != nil {
		return Nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := in.Evaluate(a)
		if err != nil {
			return Nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return Nil, runtimeErrorf(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return Nil, runtimeErrorf(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	if in.depth >= MaxCallDepth {
		return Nil, runtimeErrorf(e.Paren, "Stack overflow.")
	}
	VPrintf("call %s with %d args", Stringify(fn), len(args))
	in.depth++
	defer func() { in.depth-- }()
	return fn.Call(in, args)
}

func (in *Interpreter) evalBinary(e *Binary) (Value, error) {
	left, err := in.Evaluate(e.Left)
	if err != nil {
		return Nil, err
	}
	right, err := in.Evaluate(e.Right)
	if err != nil {
		return Nil, err
	}

	switch e.Op.Kind {
	case TokenEqualEqual:
		return LoxBool(ValuesEqual(left, right)), nil
	case TokenBangEqual:
		return LoxBool(!ValuesEqual(left, right)), nil
	case TokenPlus:
		return addValues(e.Op, left, right)
	}

	l, r, err := numberOperands(e.Op, left, right)
	if err != nil {
		return Nil, err
	}
	switch e.Op.Kind {
	case TokenMinus:
		return l - r, nil
	case TokenStar:
		return l * r, nil
	case TokenSlash:
		if r == 0 {
			return Nil, runtimeErrorf(e.Op, "Division by zero.")
		}
		return l / r, nil
	case TokenGreater:
		return LoxBool(l > r), nil
	case TokenGreaterEqual:
		return LoxBool(l >= r), nil
	case TokenLess:
		return LoxBool(l < r), nil
	case TokenLessEqual:
		return LoxBool(l <= r), nil
	}
	return Nil, runtimeErrorf(e.Op, "Unknown binary operator '%s'.", e.Op.Lexeme)
}

// addValues: number+number sums, string+string concatenates, and a
// string with a number in either order concatenates the number's
// printed form.
func addValues(op Token, left, right Value) (Value, error) {
	switch l := left.(type) {
	case LoxNumber:
		switch r := right.(type) {
		case LoxNumber:
			return l + r, nil
		case LoxString:
			return LoxString(l.String()) + r, nil
		}
	case LoxString:
		switch r := right.(type) {
		case LoxString:
			return l + r, nil
		case LoxNumber:
			return l + LoxString(r.String()), nil
		}
	}
	return Nil, runtimeErrorf(op, "Operands must be two numbers or two strings.")
}

func numberOperands(op Token, left, right Value) (LoxNumber, LoxNumber, error) {
	l, lok := left.(LoxNumber)
	r, rok := right.(LoxNumber)
	if !lok || !rok {
		return 0, 0, runtimeErrorf(op, "Operands must be numbers.")
	}
	return l, r, nil
}
