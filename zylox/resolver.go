package zylox

type FunctionType int

const (
	FunctionNone FunctionType = iota
	FunctionPlain
)

// Resolver is the static pass run over a finished AST before any of
// it executes. It records, for every Variable and Assign node, how
// many scopes out from the innermost one the name lives. Names found
// in no scope are left out of the table and resolve as globals.
//
// The distances count exactly the frames the interpreter creates:
// one per block and one per function call (holding the parameters),
// with the global frame never pushed.
type Resolver struct {
	scopes          []map[string]bool
	locals          map[Expr]int
	currentFunction FunctionType
	errs            ErrorList
}

func NewResolver() *Resolver {
	return &Resolver{
		locals: make(map[Expr]int),
	}
}

// Resolve walks every statement. The returned table is complete
// even when errors are returned, but a program with errors must not run.
func (r *Resolver) Resolve(stmts []Stmt) (map[Expr]int, error) {
	r.resolveStmts(stmts)
	return r.locals, r.errs.Err()
}

func (r *Resolver) errorAt(tok Token, msg string) {
	r.errs = append(r.errs, newSyntaxErrorAt(tok, msg))
}

func (r *Resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s Stmt) {
	switch s := s.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *FunctionStmt:
		// defined before the body so the function can recurse.
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, FunctionPlain)
	case *ClassStmt:
		r.declare(s.Name)
		r.define(s.Name)
	case *ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *PrintStmt:
		r.resolveExpr(s.Expr)
	case *IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ReturnStmt:
		if r.currentFunction == FunctionNone {
			r.errorAt(s.Keyword, "Cannot return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	}
}

func (r *Resolver) resolveExpr(e Expr) {
	switch e := e.(type) {
	case *Variable:
		if n := len(r.scopes); n > 0 {
			if defined, declared := r.scopes[n-1][e.Name.Lexeme]; declared && !defined {
				r.errorAt(e.Name, "Cannot read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Unary:
		r.resolveExpr(e.Operand)
	case *Grouping:
		r.resolveExpr(e.Inner)
	case *Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *Literal:
	}
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, kind FunctionType) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	// parameters and body share one scope: a call creates a single
	// frame and runs the body statements directly in it.
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *Resolver) resolveLocal(e Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, "Variable with this name already declared in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
