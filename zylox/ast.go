package zylox

// Expr and Stmt are closed sums: only the node types in this file
// implement them, and every consumer switches over all of them.
// Nodes are always handled by pointer and never mutated after the
// parser builds them; pointer identity keys the resolver's table.
type Expr interface {
	exprNode()
}

type Stmt interface {
	stmtNode()
}

type Literal struct {
	Value Value
}

type Grouping struct {
	Inner Expr
}

type Unary struct {
	Op      Token
	Operand Expr
}

type Binary struct {
	Left  Expr
	Op    Token
	Right Expr
}

// Logical is a short-circuiting `and` / `or`.
type Logical struct {
	Left  Expr
	Op    Token
	Right Expr
}

type Variable struct {
	Name Token
}

type Assign struct {
	Name  Token
	Value Expr
}

type Call struct {
	Callee Expr
	Args   []Expr
	Paren  Token
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}

type ExpressionStmt struct {
	Expr Expr
}

type PrintStmt struct {
	Expr Expr
}

// VarStmt has a nil Init when no initializer was written.
type VarStmt struct {
	Name Token
	Init Expr
}

type BlockStmt struct {
	Stmts []Stmt
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// ReturnStmt keeps the keyword for error line attribution.
type ReturnStmt struct {
	Keyword Token
	Value   Expr
}

type ClassStmt struct {
	Name Token
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
func (*ClassStmt) stmtNode()      {}
